package signingrequest

import (
	"eosiogo/chain"
	"eosiogo/crypto"
)

// Builder assembles a Request fluently: NewBuilder(chainID).WithActions(...)
// .Sign(signer, priv).Encode(). Each method returns the same *Builder so
// calls chain; a failure in any step (only Sign can fail) is latched and
// surfaced by Build/Encode/Pack, matching the teacher's err-latching
// fluent-builder idiom.
type Builder struct {
	req *Request
	err error
}

// NewBuilder starts a Version2 request for the given chain.
func NewBuilder(chainID ChainID) *Builder {
	return &Builder{req: &Request{Version: Version2, ChainID: chainID}}
}

// WithVersion overrides the request version (e.g. Version3 for a scoped
// identity request).
func (b *Builder) WithVersion(v Version) *Builder {
	b.req.Version = v
	return b
}

// WithAction sets the request content to a single action.
func (b *Builder) WithAction(a chain.Action) *Builder {
	b.req.Content = NewActionContent(a)
	return b
}

// WithActions sets the request content to a list of actions.
func (b *Builder) WithActions(actions ...chain.Action) *Builder {
	b.req.Content = NewActionsContent(actions)
	return b
}

// WithTransaction sets the request content to a full transaction.
func (b *Builder) WithTransaction(t chain.Transaction) *Builder {
	b.req.Content = NewTransactionContent(t)
	return b
}

// WithIdentity sets the request content to an identity request.
func (b *Builder) WithIdentity(id Identity) *Builder {
	b.req.Content = NewIdentityContent(id)
	return b
}

// WithCallback sets the callback URL and whether it is a background
// (fetch, no redirect) callback.
func (b *Builder) WithCallback(url string, background bool) *Builder {
	b.req.Callback = url
	if background {
		b.req.Flags |= FlagBackground
	} else {
		b.req.Flags &^= FlagBackground
	}
	return b
}

// WithBroadcast sets or clears the broadcast flag.
func (b *Builder) WithBroadcast(broadcast bool) *Builder {
	if broadcast {
		b.req.Flags |= FlagBroadcast
	} else {
		b.req.Flags &^= FlagBroadcast
	}
	return b
}

// WithInfo adds or replaces an info entry.
func (b *Builder) WithInfo(key string, value []byte) *Builder {
	b.req.SetInfo(key, value)
	return b
}

// Sign computes the request's signing digest and attaches a signature for
// signerName, using priv. A prior latched error short-circuits this step.
func (b *Builder) Sign(signerName chain.Name, priv crypto.PrivateKey) *Builder {
	if b.err != nil {
		return b
	}
	signed, err := Sign(b.req, signerName, priv)
	if err != nil {
		b.err = err
		return b
	}
	b.req = signed
	return b
}

// Build returns the assembled request, or the first error latched while
// building it.
func (b *Builder) Build() (*Request, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.req, nil
}

// Pack renders the built request to its binary wire form.
func (b *Builder) Pack(opts EncodeOptions) ([]byte, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	return Pack(req, opts)
}

// Encode renders the built request as a complete "esr:" URI, compressed
// per DefaultEncodeOptions.
func (b *Builder) Encode() (string, error) {
	req, err := b.Build()
	if err != nil {
		return "", err
	}
	return EncodeURI(req, DefaultEncodeOptions)
}
