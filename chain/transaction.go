package chain

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"eosiogo/codec"
	"eosiogo/crypto"
)

// Extension is a (type, data) pair carried in a transaction's extensions
// list — an escape hatch for protocol features added after the fact.
type Extension struct {
	Type uint16 `json:"type"`
	Data []byte `json:"data"`
}

func (e Extension) MarshalBinary(w *codec.Writer) error {
	w.WriteUint16(e.Type)
	w.WriteBytes(e.Data)
	return nil
}

func (e *Extension) UnmarshalBinary(r *codec.Reader) error {
	t, err := r.ReadUint16()
	if err != nil {
		return err
	}
	data, err := r.ReadBytes()
	if err != nil {
		return err
	}
	e.Type, e.Data = t, data
	return nil
}

// Transaction is the header plus context-free actions, actions and
// extensions that together get signed and broadcast.
type Transaction struct {
	Expiration            TimePointSec `json:"expiration"`
	RefBlockNum           uint16       `json:"ref_block_num"`
	RefBlockPrefix        uint32       `json:"ref_block_prefix"`
	MaxNetUsageWords      uint64       `json:"max_net_usage_words"`
	MaxCPUUsageMs         uint8        `json:"max_cpu_usage_ms"`
	DelaySec              uint64       `json:"delay_sec"`
	ContextFreeActions    []Action     `json:"context_free_actions"`
	Actions               []Action     `json:"actions"`
	TransactionExtensions []Extension  `json:"transaction_extensions"`
}

// NewTaposTransaction builds a transaction header referencing the given
// block (refBlockNum is that block's low 16 bits, refBlockPrefix its id's
// second little-endian 32-bit word) with the conventional now+60s
// expiration used as a default by the signing-request resolver.
func NewTaposTransaction(refBlockNum uint16, refBlockPrefix uint32, now time.Time) Transaction {
	return Transaction{
		Expiration:     NewTimePointSec(now.Add(60 * time.Second)),
		RefBlockNum:    refBlockNum,
		RefBlockPrefix: refBlockPrefix,
	}
}

func (t Transaction) MarshalBinary(w *codec.Writer) error {
	if err := t.Expiration.MarshalBinary(w); err != nil {
		return err
	}
	w.WriteUint16(t.RefBlockNum)
	w.WriteUint32(t.RefBlockPrefix)
	w.WriteVaruint64(t.MaxNetUsageWords)
	w.WriteUint8(t.MaxCPUUsageMs)
	w.WriteVaruint64(t.DelaySec)

	w.WriteVaruint64(uint64(len(t.ContextFreeActions)))
	for _, a := range t.ContextFreeActions {
		if err := a.MarshalBinary(w); err != nil {
			return err
		}
	}
	w.WriteVaruint64(uint64(len(t.Actions)))
	for _, a := range t.Actions {
		if err := a.MarshalBinary(w); err != nil {
			return err
		}
	}
	w.WriteVaruint64(uint64(len(t.TransactionExtensions)))
	for _, e := range t.TransactionExtensions {
		if err := e.MarshalBinary(w); err != nil {
			return err
		}
	}
	return nil
}

func (t *Transaction) UnmarshalBinary(r *codec.Reader) error {
	if err := t.Expiration.UnmarshalBinary(r); err != nil {
		return err
	}
	refBlockNum, err := r.ReadUint16()
	if err != nil {
		return err
	}
	refBlockPrefix, err := r.ReadUint32()
	if err != nil {
		return err
	}
	maxNetUsageWords, err := r.ReadVaruint64()
	if err != nil {
		return err
	}
	maxCPUUsageMs, err := r.ReadUint8()
	if err != nil {
		return err
	}
	delaySec, err := r.ReadVaruint64()
	if err != nil {
		return err
	}
	t.RefBlockNum, t.RefBlockPrefix = refBlockNum, refBlockPrefix
	t.MaxNetUsageWords, t.MaxCPUUsageMs, t.DelaySec = maxNetUsageWords, maxCPUUsageMs, delaySec

	cfaCount, err := r.ReadVaruint64()
	if err != nil {
		return err
	}
	t.ContextFreeActions = make([]Action, cfaCount)
	for i := range t.ContextFreeActions {
		if err := t.ContextFreeActions[i].UnmarshalBinary(r); err != nil {
			return err
		}
	}

	actionCount, err := r.ReadVaruint64()
	if err != nil {
		return err
	}
	t.Actions = make([]Action, actionCount)
	for i := range t.Actions {
		if err := t.Actions[i].UnmarshalBinary(r); err != nil {
			return err
		}
	}

	extCount, err := r.ReadVaruint64()
	if err != nil {
		return err
	}
	t.TransactionExtensions = make([]Extension, extCount)
	for i := range t.TransactionExtensions {
		if err := t.TransactionExtensions[i].UnmarshalBinary(r); err != nil {
			return err
		}
	}
	return nil
}

// canonicalBytes encodes t the way ID and SigningDigest both require,
// returning (nil, err) rather than panicking on an unencodable value.
func (t Transaction) canonicalBytes() ([]byte, error) {
	w := codec.NewWriter(256)
	if err := t.MarshalBinary(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// zeroChecksum256 is the all-zero sentinel ID/SigningDigest return when
// canonical encoding fails; callers must treat it as invalid rather than
// as a legitimate hash of the empty transaction.
var zeroChecksum256 Checksum256

// ID returns the transaction id: SHA-256 of the canonical binary encoding
// of the transaction alone.
func (t Transaction) ID() Checksum256 {
	raw, err := t.canonicalBytes()
	if err != nil {
		return zeroChecksum256
	}
	return HashSHA256(raw)
}

// SigningDigest returns the digest a signature over this transaction
// covers: chain-id (32 bytes) || canonical transaction bytes || 32 zero
// bytes (a placeholder for context-free data's digest, unused here since
// context-free data is carried out of band).
func (t Transaction) SigningDigest(chainID Checksum256) Checksum256 {
	raw, err := t.canonicalBytes()
	if err != nil {
		return zeroChecksum256
	}
	buf := make([]byte, 0, 32+len(raw)+32)
	buf = append(buf, chainID[:]...)
	buf = append(buf, raw...)
	buf = append(buf, make([]byte, 32)...)
	return Checksum256(sha256.Sum256(buf))
}

// SignedTransaction is a Transaction plus its signatures and any
// context-free data blobs the context-free actions reference.
type SignedTransaction struct {
	Transaction
	Signatures      []crypto.Signature `json:"signatures"`
	ContextFreeData [][]byte           `json:"context_free_data"`
}

// PackedTransaction is the wire form broadcast to a node: signatures plus
// a compression tag and the (optionally compressed) packed context-free
// data and transaction bytes.
type PackedTransaction struct {
	Signatures            []crypto.Signature `json:"signatures"`
	Compression           uint8              `json:"compression"`
	PackedContextFreeData []byte             `json:"packed_context_free_data"`
	PackedTrx             []byte             `json:"packed_trx"`
}

const (
	CompressionNone = 0
	CompressionGzip = 1
)

// Pack builds a PackedTransaction from a SignedTransaction, gzip-compressing
// the transaction and context-free data bytes when compress is true.
func Pack(tx SignedTransaction, compress bool) (PackedTransaction, error) {
	trxBytes, err := tx.Transaction.canonicalBytes()
	if err != nil {
		return PackedTransaction{}, fmt.Errorf("chain: cannot pack transaction: %w", err)
	}

	cfdWriter := codec.NewWriter(32)
	cfdWriter.WriteVaruint64(uint64(len(tx.ContextFreeData)))
	for _, blob := range tx.ContextFreeData {
		cfdWriter.WriteBytes(blob)
	}
	cfdBytes := cfdWriter.Bytes()

	out := PackedTransaction{Signatures: tx.Signatures}
	if !compress {
		out.Compression = CompressionNone
		out.PackedTrx = trxBytes
		out.PackedContextFreeData = cfdBytes
		return out, nil
	}

	packedTrx, err := gzipCompress(trxBytes)
	if err != nil {
		return PackedTransaction{}, err
	}
	packedCfd, err := gzipCompress(cfdBytes)
	if err != nil {
		return PackedTransaction{}, err
	}
	out.Compression = CompressionGzip
	out.PackedTrx = packedTrx
	out.PackedContextFreeData = packedCfd
	return out, nil
}

// Unpack decompresses (if needed) and decodes a PackedTransaction back
// into its SignedTransaction.
func Unpack(pt PackedTransaction) (SignedTransaction, error) {
	trxBytes, err := maybeGunzip(pt.PackedTrx, pt.Compression)
	if err != nil {
		return SignedTransaction{}, fmt.Errorf("chain: cannot unpack transaction: %w", err)
	}
	cfdBytes, err := maybeGunzip(pt.PackedContextFreeData, pt.Compression)
	if err != nil {
		return SignedTransaction{}, fmt.Errorf("chain: cannot unpack context-free data: %w", err)
	}

	var trx Transaction
	if err := trx.UnmarshalBinary(codec.NewReader(trxBytes)); err != nil {
		return SignedTransaction{}, fmt.Errorf("chain: malformed packed transaction: %w", err)
	}

	r := codec.NewReader(cfdBytes)
	count, err := r.ReadVaruint64()
	if err != nil {
		return SignedTransaction{}, fmt.Errorf("chain: malformed context-free data: %w", err)
	}
	cfd := make([][]byte, count)
	for i := range cfd {
		cfd[i], err = r.ReadBytes()
		if err != nil {
			return SignedTransaction{}, fmt.Errorf("chain: malformed context-free data: %w", err)
		}
	}

	return SignedTransaction{
		Transaction:     trx,
		Signatures:      pt.Signatures,
		ContextFreeData: cfd,
	}, nil
}

func gzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return nil, fmt.Errorf("chain: gzip compression failed: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("chain: gzip compression failed: %w", err)
	}
	return buf.Bytes(), nil
}

func maybeGunzip(data []byte, compression uint8) ([]byte, error) {
	if compression == CompressionNone {
		return data, nil
	}
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("chain: malformed gzip stream: %w", err)
	}
	defer gz.Close()
	return io.ReadAll(gz)
}
