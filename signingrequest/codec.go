package signingrequest

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"

	"eosiogo/chain"
	"eosiogo/codec"
	"eosiogo/crypto"
)

// DefaultInflateCap bounds the inflated size of a compressed payload
// (§5: "MUST cap inflated size (recommended 5 MiB)").
const DefaultInflateCap = 5 << 20

const (
	versionMask      = 0x7f
	compressionFlag  = 0x80
)

// deflate/inflate wrap the raw-DEFLATE codec §4.6 calls for: no zlib
// header or Adler-32 trailer, just the DEFLATE bitstream itself (the form
// every EEP-7 client actually emits). klauspost/compress/flate is used in
// place of stdlib compress/flate for parity with the rest of this
// module's compression dependency.
func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, fmt.Errorf("signingrequest: deflate: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("signingrequest: deflate: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("signingrequest: deflate: %w", err)
	}
	logger.Debugf("signingrequest: deflated body %d -> %d bytes", len(data), buf.Len())
	return buf.Bytes(), nil
}

func inflate(data []byte, cap int64) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(data))
	defer fr.Close()
	limited := io.LimitReader(fr, cap+1)
	out, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("signingrequest: inflate: %w", err)
	}
	if int64(len(out)) > cap {
		return nil, ErrPayloadTooLarge
	}
	logger.Debugf("signingrequest: inflated body %d -> %d bytes", len(data), len(out))
	return out, nil
}

// contentVariantIndex returns the request-variant index (§4.6) for kind.
func contentVariantIndex(kind ContentKind) uint64 {
	switch kind {
	case ContentAction:
		return 0
	case ContentActions:
		return 1
	case ContentTransaction:
		return 2
	case ContentIdentity:
		return 3
	default:
		return 0
	}
}

func (c ChainID) marshalBinary(w *codec.Writer) error {
	if c.isAlias {
		w.WriteVaruint64(0)
		return w.WriteByte(byte(c.alias))
	}
	w.WriteVaruint64(1)
	return c.full.MarshalBinary(w)
}

func unmarshalChainID(r *codec.Reader) (ChainID, error) {
	idx, err := r.ReadVaruint64()
	if err != nil {
		return ChainID{}, err
	}
	switch idx {
	case 0:
		b, err := r.ReadByte()
		if err != nil {
			return ChainID{}, err
		}
		return ChainIDFromAlias(ChainAlias(b)), nil
	case 1:
		var full chain.Checksum256
		if err := full.UnmarshalBinary(r); err != nil {
			return ChainID{}, err
		}
		return ChainIDFromFull(full), nil
	default:
		return ChainID{}, &codec.UnknownVariantError{Tag: idx}
	}
}

func marshalOptionalPublicKey(pub *crypto.PublicKey, w *codec.Writer) error {
	w.WriteBool(pub != nil)
	if pub == nil {
		return nil
	}
	return pub.MarshalBinary(w)
}

func unmarshalOptionalPublicKey(r *codec.Reader) (*crypto.PublicKey, error) {
	present, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	var pub crypto.PublicKey
	if err := pub.UnmarshalBinary(r); err != nil {
		return nil, err
	}
	return &pub, nil
}

func marshalOptionalName(n *chain.Name, w *codec.Writer) error {
	w.WriteBool(n != nil)
	if n == nil {
		return nil
	}
	return n.MarshalBinary(w)
}

func unmarshalOptionalName(r *codec.Reader) (*chain.Name, error) {
	present, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	var n chain.Name
	if err := n.UnmarshalBinary(r); err != nil {
		return nil, err
	}
	return &n, nil
}

func (id Identity) marshalBinary(version Version, w *codec.Writer) error {
	if err := id.Account.MarshalBinary(w); err != nil {
		return err
	}
	if err := marshalOptionalPublicKey(id.RequestKey, w); err != nil {
		return err
	}
	if version >= Version3 {
		return marshalOptionalName(id.Scope, w)
	}
	return nil
}

func unmarshalIdentity(version Version, r *codec.Reader) (Identity, error) {
	var id Identity
	if err := id.Account.UnmarshalBinary(r); err != nil {
		return Identity{}, err
	}
	pub, err := unmarshalOptionalPublicKey(r)
	if err != nil {
		return Identity{}, err
	}
	id.RequestKey = pub
	if version >= Version3 {
		scope, err := unmarshalOptionalName(r)
		if err != nil {
			return Identity{}, err
		}
		id.Scope = scope
	}
	return id, nil
}

func (c Content) marshalBinary(version Version, w *codec.Writer) error {
	w.WriteVaruint64(contentVariantIndex(c.Kind))
	switch c.Kind {
	case ContentAction:
		return c.Action.MarshalBinary(w)
	case ContentActions:
		w.WriteVaruint64(uint64(len(c.Actions)))
		for _, a := range c.Actions {
			if err := a.MarshalBinary(w); err != nil {
				return err
			}
		}
		return nil
	case ContentTransaction:
		return c.Transaction.MarshalBinary(w)
	case ContentIdentity:
		return c.Identity.marshalBinary(version, w)
	default:
		return fmt.Errorf("signingrequest: unknown content kind %d", c.Kind)
	}
}

func unmarshalContent(version Version, r *codec.Reader) (Content, error) {
	idx, err := r.ReadVaruint64()
	if err != nil {
		return Content{}, err
	}
	switch idx {
	case 0:
		var a chain.Action
		if err := a.UnmarshalBinary(r); err != nil {
			return Content{}, err
		}
		return NewActionContent(a), nil
	case 1:
		count, err := r.ReadVaruint64()
		if err != nil {
			return Content{}, err
		}
		actions := make([]chain.Action, count)
		for i := range actions {
			if err := actions[i].UnmarshalBinary(r); err != nil {
				return Content{}, err
			}
		}
		return NewActionsContent(actions), nil
	case 2:
		var t chain.Transaction
		if err := t.UnmarshalBinary(r); err != nil {
			return Content{}, err
		}
		return NewTransactionContent(t), nil
	case 3:
		id, err := unmarshalIdentity(version, r)
		if err != nil {
			return Content{}, err
		}
		return NewIdentityContent(id), nil
	default:
		return Content{}, &codec.UnknownVariantError{Tag: idx}
	}
}

// marshalBody writes every field of the request body (§4.6: chain-id
// variant, request variant, flags byte, callback string, info list) but
// not the trailing signature block.
func (r *Request) marshalBody(w *codec.Writer) error {
	if err := r.ChainID.marshalBinary(w); err != nil {
		return err
	}
	if err := r.Content.marshalBinary(r.Version, w); err != nil {
		return err
	}
	if err := w.WriteByte(byte(r.Flags)); err != nil {
		return err
	}
	w.WriteString(r.Callback)
	w.WriteVaruint64(uint64(len(r.Info)))
	for _, p := range r.Info {
		w.WriteString(p.Key)
		w.WriteBytes(p.Value)
	}
	return nil
}

func unmarshalBody(version Version, rd *codec.Reader) (*Request, error) {
	req := &Request{Version: version}
	chainID, err := unmarshalChainID(rd)
	if err != nil {
		return nil, err
	}
	req.ChainID = chainID

	content, err := unmarshalContent(version, rd)
	if err != nil {
		return nil, err
	}
	req.Content = content

	flagByte, err := rd.ReadByte()
	if err != nil {
		return nil, err
	}
	req.Flags = Flags(flagByte)

	callback, err := rd.ReadString()
	if err != nil {
		return nil, err
	}
	req.Callback = callback

	infoCount, err := rd.ReadVaruint64()
	if err != nil {
		return nil, err
	}
	req.Info = make([]InfoPair, infoCount)
	for i := range req.Info {
		key, err := rd.ReadString()
		if err != nil {
			return nil, err
		}
		value, err := rd.ReadBytes()
		if err != nil {
			return nil, err
		}
		req.Info[i] = InfoPair{Key: key, Value: value}
	}
	return req, nil
}

// EncodeOptions controls Pack/Encode's wire-level choices.
type EncodeOptions struct {
	Compress bool
}

var DefaultEncodeOptions = EncodeOptions{Compress: true}

// Pack renders req's wire payload: header byte, then the (optionally
// deflated) ABI encoding of the body plus, if signed, the trailing
// signature block.
func Pack(req *Request, opts EncodeOptions) ([]byte, error) {
	if req.Version != Version2 && req.Version != Version3 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, req.Version)
	}

	bodyWriter := codec.NewWriter(256)
	if err := req.marshalBody(bodyWriter); err != nil {
		return nil, err
	}
	tail := bodyWriter.Bytes()

	if req.Signature != nil {
		sigWriter := codec.NewWriter(len(tail) + 8 + 66)
		sigWriter.WriteRawBytes(tail)
		if err := req.Signature.Signer.MarshalBinary(sigWriter); err != nil {
			return nil, err
		}
		if err := req.Signature.Signature.MarshalBinary(sigWriter); err != nil {
			return nil, err
		}
		tail = sigWriter.Bytes()
	}

	header := byte(req.Version) & versionMask
	if opts.Compress {
		compressed, err := deflate(tail)
		if err != nil {
			return nil, err
		}
		header |= compressionFlag
		out := make([]byte, 0, 1+len(compressed))
		out = append(out, header)
		out = append(out, compressed...)
		return out, nil
	}

	out := make([]byte, 0, 1+len(tail))
	out = append(out, header)
	out = append(out, tail...)
	return out, nil
}

// Unpack reverses Pack: it reads the header byte, inflates the tail if
// the compression bit is set (capping the inflated size at inflateCap, or
// DefaultInflateCap if zero), decodes the request body, and — if any
// bytes remain — decodes a trailing (signer, signature) block.
func Unpack(data []byte, inflateCap int64) (*Request, error) {
	if len(data) == 0 {
		return nil, &DecodingFailedError{Reason: "empty payload"}
	}
	if inflateCap <= 0 {
		inflateCap = DefaultInflateCap
	}

	header := data[0]
	version := Version(header & versionMask)
	if version != Version2 && version != Version3 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	tail := data[1:]
	if header&compressionFlag != 0 {
		inflated, err := inflate(tail, inflateCap)
		if err != nil {
			if err == ErrPayloadTooLarge {
				return nil, &DecodingFailedError{Reason: "payload too large", Err: err}
			}
			return nil, &DecodingFailedError{Reason: "decompression failed", Err: err}
		}
		tail = inflated
	}

	rd := codec.NewReader(tail)
	req, err := unmarshalBody(version, rd)
	if err != nil {
		return nil, &DecodingFailedError{Reason: "malformed request body", Err: err}
	}

	if !rd.AtEnd() {
		var sig RequestSignature
		if err := sig.Signer.UnmarshalBinary(rd); err != nil {
			return nil, &DecodingFailedError{Reason: "malformed signature block", Err: err}
		}
		if err := sig.Signature.UnmarshalBinary(rd); err != nil {
			return nil, &DecodingFailedError{Reason: "malformed signature block", Err: err}
		}
		req.Signature = &sig
	}
	return req, nil
}

// uriPrefix is the scheme every signing request URI carries, with or
// without the "//" authority marker (§4.6).
const uriPrefix = "esr:"

// base64Encoding is the url-safe, padding-stripped alphabet §4.6 specifies
// for the URI body.
var base64Encoding = base64.URLEncoding.WithPadding(base64.NoPadding)

// EncodeURI renders req as a complete "esr:[//]<url-safe-base64>" URI.
func EncodeURI(req *Request, opts EncodeOptions) (string, error) {
	packed, err := Pack(req, opts)
	if err != nil {
		return "", err
	}
	return uriPrefix + "//" + base64Encoding.EncodeToString(packed), nil
}

// DecodeURI parses a "esr:[//]<url-safe-base64>" URI, accepting both the
// "esr://" and bare "esr:" forms, with or without '=' padding. A body in
// the standard base64 alphabet ('+' and '/') is rejected.
func DecodeURI(uri string, inflateCap int64) (*Request, error) {
	body := strings.TrimPrefix(uri, uriPrefix)
	body = strings.TrimPrefix(body, "//")
	if body == uri {
		return nil, &DecodingFailedError{Reason: fmt.Sprintf("missing %q scheme", uriPrefix)}
	}

	data, err := decodeRequestBase64(body)
	if err != nil {
		return nil, &DecodingFailedError{Reason: "malformed base64 body", Err: err}
	}
	return Unpack(data, inflateCap)
}

// decodeRequestBase64 accepts the url-safe unpadded alphabet the encoder
// emits, repairing missing padding first since some transports strip or
// mangle it (mirrors codec.DecodeBase64Padded's leniency for Blob, but
// over the URL-safe alphabet this URI body uses).
func decodeRequestBase64(s string) ([]byte, error) {
	if m := len(s) % 4; m != 0 {
		s += strings.Repeat("=", 4-m)
	}
	return base64.URLEncoding.DecodeString(s)
}
