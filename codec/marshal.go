package codec

// BinaryMarshaler is implemented by every chain/crypto value that knows its
// own ABI wire encoding.
type BinaryMarshaler interface {
	MarshalBinary(w *Writer) error
}

// BinaryUnmarshaler is the read-side counterpart of BinaryMarshaler.
type BinaryUnmarshaler interface {
	UnmarshalBinary(r *Reader) error
}

// EncodeBinary is a convenience wrapper that allocates a Writer, marshals v
// and returns the resulting bytes.
func EncodeBinary(v BinaryMarshaler) ([]byte, error) {
	w := NewWriter(64)
	if err := v.MarshalBinary(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// DecodeBinary is the read-side counterpart of EncodeBinary.
func DecodeBinary(data []byte, v BinaryUnmarshaler) error {
	r := NewReader(data)
	return v.UnmarshalBinary(r)
}
