package signingrequest

import (
	"eosiogo/abi"
	"eosiogo/chain"
)

// substitutePlaceholders walks a decoded abi.Value tree (the untyped sum
// type from the abi package), replacing any chain.Name equal to the actor
// or permission placeholder with the given signer's actor/permission
// (§4.6 "Placeholders"). It returns a new tree; the input is not mutated.
func substitutePlaceholders(v abi.Value, signer chain.PermissionLevel) abi.Value {
	switch x := v.(type) {
	case chain.Name:
		switch x {
		case chain.ActorPlaceholder:
			return signer.Actor
		case chain.PermissionPlaceholder:
			return signer.Permission
		default:
			return x
		}
	case *abi.OrderedMap:
		out := abi.NewOrderedMap()
		for _, k := range x.Keys() {
			fv, _ := x.Get(k)
			out.Set(k, substitutePlaceholders(fv, signer))
		}
		return out
	case []abi.Value:
		out := make([]abi.Value, len(x))
		for i, el := range x {
			out[i] = substitutePlaceholders(el, signer)
		}
		return out
	case abi.Variant:
		return abi.Variant{TypeName: x.TypeName, Value: substitutePlaceholders(x.Value, signer)}
	default:
		return v
	}
}

// substitutePermissionLevel resolves the actor/permission placeholders in
// a single PermissionLevel, the authorization-list counterpart to
// substitutePlaceholders.
func substitutePermissionLevel(pl chain.PermissionLevel, signer chain.PermissionLevel) chain.PermissionLevel {
	out := pl
	if out.Actor == chain.ActorPlaceholder {
		out.Actor = signer.Actor
	}
	if out.Permission == chain.PermissionPlaceholder {
		out.Permission = signer.Permission
	}
	return out
}
