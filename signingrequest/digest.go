package signingrequest

import (
	"eosiogo/chain"
	"eosiogo/codec"
	"eosiogo/crypto"
)

// SigningDigest computes the digest a signing request's own signature
// covers (§4.6): SHA-256 of the header byte, the ASCII bytes "request",
// and the canonical binary encoding of the request body excluding any
// signature block. The header byte used here always has the compression
// bit cleared — signing covers the logical request, not the transport
// encoding chosen when it happens to be packed, so the same request
// signs identically whether or not the caller later compresses it.
func SigningDigest(req *Request) (chain.Checksum256, error) {
	bodyWriter := codec.NewWriter(256)
	if err := req.marshalBody(bodyWriter); err != nil {
		return chain.Checksum256{}, err
	}

	header := byte(req.Version) & versionMask
	buf := make([]byte, 0, 1+len("request")+bodyWriter.Len())
	buf = append(buf, header)
	buf = append(buf, "request"...)
	buf = append(buf, bodyWriter.Bytes()...)
	return chain.HashSHA256(buf), nil
}

// Sign signs req with priv, attaching a RequestSignature with the given
// signer Name. It returns a shallow copy of req carrying the new
// signature; req itself is left unmodified.
func Sign(req *Request, signerName chain.Name, priv crypto.PrivateKey) (*Request, error) {
	digest, err := SigningDigest(req)
	if err != nil {
		return nil, err
	}
	sig, err := crypto.K1Sign(priv, [32]byte(digest))
	if err != nil {
		return nil, err
	}
	out := *req
	out.Signature = &RequestSignature{Signer: signerName, Signature: sig}
	return &out, nil
}

// Verify checks req's signature, recovering the signer's public key from
// it and comparing against expected. It returns an error if req is
// unsigned.
func Verify(req *Request, expected crypto.PublicKey) (bool, error) {
	if req.Signature == nil {
		return false, ErrNotSigned
	}
	digest, err := SigningDigest(req)
	if err != nil {
		return false, err
	}
	return crypto.K1Verify(expected, [32]byte(digest), req.Signature.Signature)
}

// RecoverSigner recovers the public key that produced req's signature.
func RecoverSigner(req *Request) (crypto.PublicKey, error) {
	if req.Signature == nil {
		return crypto.PublicKey{}, ErrNotSigned
	}
	digest, err := SigningDigest(req)
	if err != nil {
		return crypto.PublicKey{}, err
	}
	return crypto.K1Recover(req.Signature.Signature, [32]byte(digest))
}
