package signingrequest

import (
	"fmt"
	"time"

	"eosiogo/abi"
	"eosiogo/chain"
	"eosiogo/codec"
)

// TaposSource supplies the (refBlockNum, refBlockPrefix, expiration)
// triple a resolved transaction needs when the originating request
// didn't already carry one (§4.6 step 2). A nil expiration tells Resolve
// to default to "now + 60s".
type TaposSource interface {
	Tapos() (refBlockNum uint16, refBlockPrefix uint32, expiration *chain.TimePointSec, err error)
}

// ResolvedTransaction is Resolve's result: the fully substituted, TaPoS-
// filled transaction alongside the request it came from, which callback
// templating (§4.6) needs for its "req" token.
type ResolvedTransaction struct {
	Transaction Transaction
	Request     *Request
}

// Transaction is a thin alias kept distinct from chain.Transaction so a
// resolved identity request (which has no transaction) can be represented
// uniformly: IsIdentity is true and Identity is populated instead.
type Transaction struct {
	chain.Transaction
	IsIdentity bool
	Identity   Identity
}

// Resolve implements §4.6 "Resolution": it decodes each action's data
// against the ABI for its account, substitutes placeholders using signer,
// and — for a non-identity request whose header carries no TaPoS fields —
// fills expiration/refBlockNum/refBlockPrefix from tapos. An identity
// request decodes nothing: only an actor placeholder in its Account is
// replaced by the signer's actor.
func Resolve(req *Request, signer chain.PermissionLevel, abis map[chain.Name]abi.ABI, tapos TaposSource) (*ResolvedTransaction, error) {
	if req.Content.Kind == ContentIdentity {
		id := req.Content.Identity
		if id.Account == chain.ActorPlaceholder {
			id.Account = signer.Actor
		}
		return &ResolvedTransaction{
			Transaction: Transaction{IsIdentity: true, Identity: id},
			Request:     req,
		}, nil
	}

	actions := req.Content.Actions()
	resolvedActions := make([]chain.Action, len(actions))
	for i, a := range actions {
		resolved, err := resolveAction(a, signer, abis)
		if err != nil {
			return nil, err
		}
		resolvedActions[i] = resolved
	}

	var trx chain.Transaction
	if req.Content.Kind == ContentTransaction {
		trx = req.Content.Transaction
	}
	trx.Actions = resolvedActions

	if needsTapos(trx) {
		if tapos == nil {
			return nil, ErrMissingTaposSource
		}
		refBlockNum, refBlockPrefix, expiration, err := tapos.Tapos()
		if err != nil {
			return nil, fmt.Errorf("signingrequest: tapos source: %w", err)
		}
		trx.RefBlockNum = refBlockNum
		trx.RefBlockPrefix = refBlockPrefix
		if expiration != nil {
			trx.Expiration = *expiration
		} else {
			trx.Expiration = chain.NewTimePointSec(time.Now().Add(60 * time.Second))
		}
	}

	return &ResolvedTransaction{Transaction: Transaction{Transaction: trx}, Request: req}, nil
}

// needsTapos reports whether none of the transaction's TaPoS fields are
// set, per §4.6 step 2's "none of (expiration, refBlockNum,
// refBlockPrefix) are set" condition.
func needsTapos(trx chain.Transaction) bool {
	return trx.Expiration == 0 && trx.RefBlockNum == 0 && trx.RefBlockPrefix == 0
}

func resolveAction(a chain.Action, signer chain.PermissionLevel, abis map[chain.Name]abi.ABI) (chain.Action, error) {
	contractABI, ok := abis[a.Account]
	if !ok {
		return chain.Action{}, &abi.MissingABIError{Account: a.Account.String()}
	}

	structName, err := actionStructName(contractABI, a.Name)
	if err != nil {
		return chain.Action{}, err
	}

	resolver := abi.NewResolver(contractABI)
	rt, err := resolver.Resolve(structName)
	if err != nil {
		return chain.Action{}, err
	}

	decoded, err := abi.DynamicDecodeBinary(rt, codec.NewReader(a.Data))
	if err != nil {
		return chain.Action{}, fmt.Errorf("signingrequest: decode action %s::%s: %w", a.Account, a.Name, err)
	}

	substituted := substitutePlaceholders(decoded, signer)

	w := codec.NewWriter(len(a.Data))
	if err := abi.DynamicEncodeBinary(rt, substituted, w); err != nil {
		return chain.Action{}, fmt.Errorf("signingrequest: re-encode action %s::%s: %w", a.Account, a.Name, err)
	}

	out := a
	out.Data = w.Bytes()
	out.Authorization = make([]chain.PermissionLevel, len(a.Authorization))
	for i, pl := range a.Authorization {
		out.Authorization[i] = substitutePermissionLevel(pl, signer)
	}
	return out, nil
}

func actionStructName(contractABI abi.ABI, actionName chain.Name) (string, error) {
	name := actionName.String()
	for _, act := range contractABI.Actions {
		if act.Name == name {
			return act.Type, nil
		}
	}
	return "", fmt.Errorf("signingrequest: unknown action %q for its declaring ABI", name)
}
