package codec

import (
	"encoding/binary"
	"math"
)

// Writer accumulates the binary ABI wire form of a value into an in-memory
// buffer. It never fails — every Write* call is unconditional append — so
// callers chain calls freely and only check errors at the BinaryMarshaler
// boundary where a value refuses to encode at all (TypeNotEncodableError).
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer. size is a capacity hint, not a limit.
func NewWriter(size int) *Writer {
	return &Writer{buf: make([]byte, 0, size)}
}

// Bytes returns the accumulated buffer. The returned slice aliases the
// Writer's internal storage; callers that keep it across further writes
// should copy it first.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

func (w *Writer) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

// WriteRawBytes appends b without any length prefix.
func (w *Writer) WriteRawBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

func (w *Writer) WriteUint8(v uint8)   { w.buf = append(w.buf, v) }
func (w *Writer) WriteInt8(v int8)     { w.WriteUint8(uint8(v)) }

func (w *Writer) WriteUint16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}
func (w *Writer) WriteInt16(v int16) { w.WriteUint16(uint16(v)) }

func (w *Writer) WriteUint32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}
func (w *Writer) WriteInt32(v int32) { w.WriteUint32(uint32(v)) }

func (w *Writer) WriteUint64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}
func (w *Writer) WriteInt64(v int64) { w.WriteUint64(uint64(v)) }

func (w *Writer) WriteFloat32(v float32) { w.WriteUint32(math.Float32bits(v)) }
func (w *Writer) WriteFloat64(v float64) { w.WriteUint64(math.Float64bits(v)) }

// WriteVaruint32 writes v base-128, least-significant group first, with the
// continuation bit in the MSB of each byte.
func (w *Writer) WriteVaruint32(v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf = append(w.buf, b)
		if v == 0 {
			break
		}
	}
}

// WriteVaruint64 is the 64-bit sibling of WriteVaruint32, used for array and
// string/blob length prefixes that may legitimately exceed 32 bits of data.
func (w *Writer) WriteVaruint64(v uint64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf = append(w.buf, b)
		if v == 0 {
			break
		}
	}
}

// WriteVarint32 writes the little-endian bit pattern of a signed int32 as a
// varuint — not zig-zag encoded, per the ABI wire format.
func (w *Writer) WriteVarint32(v int32) {
	w.WriteVaruint32(uint32(v))
}

// WriteString writes a varuint length prefix followed by the UTF-8 bytes.
func (w *Writer) WriteString(s string) {
	w.WriteVaruint64(uint64(len(s)))
	w.buf = append(w.buf, s...)
}

// WriteBytes writes a varuint length prefix followed by the raw bytes —
// used for Bytes/Blob/Data fields.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteVaruint64(uint64(len(b)))
	w.buf = append(w.buf, b...)
}
