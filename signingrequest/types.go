package signingrequest

import (
	"eosiogo/chain"
	"eosiogo/crypto"
)

// Version is the low-7-bits value carried in a signing request's header
// byte (§4.6).
type Version uint8

const (
	// Version2 is the current version.
	Version2 Version = 2
	// Version3 adds an optional scope Name to identity requests and MUST
	// be accepted on decode (§6).
	Version3 Version = 3
)

// Flags holds the two single-bit request flags from §4.6.
type Flags uint8

const (
	FlagBroadcast  Flags = 1 << 0
	FlagBackground Flags = 1 << 1
)

func (f Flags) Broadcast() bool  { return f&FlagBroadcast != 0 }
func (f Flags) Background() bool { return f&FlagBackground != 0 }

// InfoPair is one (key, value) entry of a request's info list — arbitrary
// user metadata (§4.6).
type InfoPair struct {
	Key   string
	Value []byte
}

// Identity is the request-variant-3 shape: an account to identify as,
// optionally constrained to a specific requested key, and — for Version3
// requests only — a scope Name narrowing which application the identity
// proof is valid for (§6, open question resolution: the scope field only
// exists on the wire at all for Version3; it is not a binary-extension
// field within a Version2 body).
type Identity struct {
	Account    chain.Name
	RequestKey *crypto.PublicKey
	Scope      *chain.Name
}

// ContentKind discriminates which alternative of the request variant
// (§4.6) a Content value carries.
type ContentKind int

const (
	ContentAction ContentKind = iota
	ContentActions
	ContentTransaction
	ContentIdentity
)

// Content is the request variant from §4.6: exactly one of a single
// Action, a list of Actions, a full Transaction, or an Identity request.
type Content struct {
	Kind        ContentKind
	Action      chain.Action
	Actions     []chain.Action
	Transaction chain.Transaction
	Identity    Identity
}

func NewActionContent(a chain.Action) Content {
	return Content{Kind: ContentAction, Action: a}
}

func NewActionsContent(as []chain.Action) Content {
	return Content{Kind: ContentActions, Actions: as}
}

func NewTransactionContent(t chain.Transaction) Content {
	return Content{Kind: ContentTransaction, Transaction: t}
}

func NewIdentityContent(id Identity) Content {
	return Content{Kind: ContentIdentity, Identity: id}
}

// Actions flattens any content kind that carries one or more actions into
// a single slice; an Identity request has none.
func (c Content) Actions() []chain.Action {
	switch c.Kind {
	case ContentAction:
		return []chain.Action{c.Action}
	case ContentActions:
		return c.Actions
	case ContentTransaction:
		return c.Transaction.Actions
	default:
		return nil
	}
}

// RequestSignature is the optional trailing (signer, signature) block a
// signed request's wire payload carries after its body (§4.6).
type RequestSignature struct {
	Signer    chain.Name
	Signature crypto.Signature
}

// Request is the decoded, in-memory form of an EEP-7 signing request.
type Request struct {
	Version  Version
	ChainID  ChainID
	Content  Content
	Flags    Flags
	Callback string
	Info     []InfoPair

	// Signature is nil for an unsigned request.
	Signature *RequestSignature
}

// InfoValue returns the raw bytes of the first info entry under key, and
// whether one was present.
func (r *Request) InfoValue(key string) ([]byte, bool) {
	for _, p := range r.Info {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// SetInfo adds or replaces the info entry under key.
func (r *Request) SetInfo(key string, value []byte) {
	for i := range r.Info {
		if r.Info[i].Key == key {
			r.Info[i].Value = value
			return
		}
	}
	r.Info = append(r.Info, InfoPair{Key: key, Value: value})
}

// IsSigned reports whether the request carries a signature block.
func (r *Request) IsSigned() bool { return r.Signature != nil }
