package signingrequest

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"eosiogo/chain"
	"eosiogo/crypto"
)

// CallbackContext carries everything callback templating (§4.6) can
// substitute into a `{{key}}` token: the signatures produced, the
// resulting transaction id, the block number it landed in (if known),
// the signer, and its TaPoS fields.
type CallbackContext struct {
	Signatures     []crypto.Signature
	TransactionID  chain.Checksum256
	BlockNum       *uint64
	Signer         chain.PermissionLevel
	Expiration     chain.TimePointSec
	RefBlockNum    uint16
	RefBlockPrefix uint32
	Request        *Request
}

// callbackTokens computes the full token → value map §4.6 names, in the
// order listed there. sig0..sigN are included whenever there is at least
// one signature (sig is always the first, mirroring sig0).
func callbackTokens(ctx CallbackContext) (map[string]string, error) {
	tokens := map[string]string{
		"sa":  ctx.Signer.Actor.String(),
		"sp":  ctx.Signer.Permission.String(),
		"ex":  ctx.Expiration.String(),
		"rbn": strconv.FormatUint(uint64(ctx.RefBlockNum), 10),
		"rid": strconv.FormatUint(uint64(ctx.RefBlockPrefix), 10),
		"tx":  strings.ToLower(hex.EncodeToString(ctx.TransactionID[:])),
	}
	if ctx.BlockNum != nil {
		tokens["bn"] = strconv.FormatUint(*ctx.BlockNum, 10)
	} else {
		tokens["bn"] = ""
	}
	if len(ctx.Signatures) > 0 {
		tokens["sig"] = ctx.Signatures[0].String()
	}
	for i, sig := range ctx.Signatures {
		tokens[fmt.Sprintf("sig%d", i)] = sig.String()
	}
	if ctx.Request != nil {
		reqURI, err := EncodeURI(ctx.Request, EncodeOptions{Compress: false})
		if err != nil {
			return nil, err
		}
		tokens["req"] = strings.TrimPrefix(reqURI, uriPrefix+"//")
	}
	return tokens, nil
}

// RenderCallback substitutes every `{{key}}` token in the request's
// callback URL with the values in ctx, per §4.6 "Callback templating".
// An unrecognized token is left untouched rather than erroring, matching
// the leniency a template engine extends to keys it doesn't know about.
func RenderCallback(req *Request, ctx CallbackContext) (string, error) {
	tokens, err := callbackTokens(ctx)
	if err != nil {
		return "", err
	}
	return substituteTokens(req.Callback, tokens), nil
}

func substituteTokens(template string, tokens map[string]string) string {
	var b strings.Builder
	rest := template
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.Index(rest[start:], "}}")
		if end < 0 {
			b.WriteString(rest)
			break
		}
		end += start
		b.WriteString(rest[:start])
		key := strings.TrimSpace(rest[start+2 : end])
		if v, ok := tokens[key]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(rest[start : end+2])
		}
		rest = rest[end+2:]
	}
	return b.String()
}

// reservedBackgroundKeys are the token names BackgroundPayload always
// controls; a caller-supplied extra key matching one of these is rejected
// (§4.6: "rejecting any caller-supplied extra key that conflicts with
// these reserved names").
var reservedBackgroundKeys = map[string]bool{
	"sig": true, "tx": true, "bn": true, "sa": true, "sp": true,
	"ex": true, "rbn": true, "rid": true, "req": true,
}

// BackgroundPayload builds the JSON-able object a background callback
// delivers (§4.6): every non-empty reserved token, plus sig0..sigN when
// more than one signature is present, plus extra caller-supplied
// key/values — erroring if any extra key collides with a reserved name.
func BackgroundPayload(ctx CallbackContext, extra map[string]string) (map[string]string, error) {
	tokens, err := callbackTokens(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(tokens)+len(extra))
	for k, v := range tokens {
		if v == "" {
			continue
		}
		if k != "sig" && strings.HasPrefix(k, "sig") && len(ctx.Signatures) < 2 {
			continue // sig0..sigN accompany sig only for multi-sig
		}
		out[k] = v
	}
	for k, v := range extra {
		if reservedBackgroundKeys[k] || strings.HasPrefix(k, "sig") {
			return nil, fmt.Errorf("%w: %q", ErrReservedCallbackKey, k)
		}
		out[k] = v
	}
	return out, nil
}
