package signingrequest

import (
	"strings"

	"eosiogo/chain"
)

// ChainAlias is the one-byte shorthand for a well-known 32-byte chain id
// (§4.6, glossary: "chain alias").
type ChainAlias uint8

const (
	ChainAliasUnknown  ChainAlias = 0
	ChainAliasEOS      ChainAlias = 1
	ChainAliasTelos    ChainAlias = 2
	ChainAliasJungle   ChainAlias = 3
	ChainAliasKylin    ChainAlias = 4
	ChainAliasWorbli   ChainAlias = 5
	ChainAliasBOS      ChainAlias = 6
	ChainAliasMeetOne  ChainAlias = 7
	ChainAliasInsights ChainAlias = 8
	ChainAliasBEOS     ChainAlias = 9
)

// aliasChainIDs is the built-in alias table (§4.6): a one-byte alias
// standing in for each network's full 32-byte chain id. §1 places node
// transport out of scope for this library, so these ids are never dialed
// against a live node to confirm them. The table is fixed at build time;
// this package exposes no way to change an entry.
var aliasChainIDs = map[ChainAlias]chain.Checksum256{
	ChainAliasEOS:      mustChecksum256("aca376f206b8fc25a6ed44dbdc66547c36c6c33e3a119ffbeaef943642f0e906"),
	ChainAliasTelos:    mustChecksum256("4667b205c6838ef70ff7988f6e8257e8be0e1284a2f59699054a018f743b1d11"),
	ChainAliasJungle:   mustChecksum256("e70aaab8997e1dfce58fbfac80cbbb8fecec7b99cf982a9444273cbc64c41473"),
	ChainAliasKylin:    mustChecksum256("5fff1dae8dc8e2fc4d5b23b2c7665c97f9e9d8edf2b6485a86ba311c25639191"),
	ChainAliasWorbli:   mustChecksum256("73647cde120091e0a4b85bced2f3cfdb3041e266cbbe95cee59b73235a1b3b6f"),
	ChainAliasBOS:      mustChecksum256("d5a3d18fbb3c084e3b1f3fa98c21014b5f3db536cc15d08f9f6479517c6a3d86"),
	ChainAliasMeetOne:  mustChecksum256("cfe6486a83bad4962f232d48003b1824ab5665c36778141034d75e57b956e422"),
	ChainAliasInsights: mustChecksum256("b042025541e25a472bffde2d62edd457b7e70cee943412b1ea0f044f88591664"),
	ChainAliasBEOS:     mustChecksum256("b912d19a6abd2b1b05611ae5be473355d64d95aeff0c09bedc8c166cd6468fe4"),
}

var chainIDAliases = func() map[chain.Checksum256]ChainAlias {
	m := make(map[chain.Checksum256]ChainAlias, len(aliasChainIDs))
	for alias, id := range aliasChainIDs {
		m[id] = alias
	}
	return m
}()

func mustChecksum256(hexStr string) chain.Checksum256 {
	c, err := chain.ParseChecksum256(hexStr)
	if err != nil {
		panic("signingrequest: malformed built-in chain id literal: " + err.Error())
	}
	return c
}

// ChainID is the chain-id variant from §4.6: either a one-byte alias into
// the built-in table or a full 32-byte chain id.
type ChainID struct {
	alias   ChainAlias
	full    chain.Checksum256
	isAlias bool
}

// ChainIDFromAlias builds a ChainID carrying only the one-byte alias.
func ChainIDFromAlias(alias ChainAlias) ChainID {
	return ChainID{alias: alias, isAlias: true}
}

// ChainIDFromFull builds a ChainID from a full 32-byte id, compacting it
// to its built-in alias automatically when the id matches one.
func ChainIDFromFull(id chain.Checksum256) ChainID {
	if alias, ok := chainIDAliases[id]; ok {
		return ChainIDFromAlias(alias)
	}
	return ChainID{full: id}
}

// IsAlias reports whether this ChainID was built (or decoded) from the
// one-byte alias form rather than a full 32-byte id.
func (c ChainID) IsAlias() bool { return c.isAlias }

// Alias returns the one-byte alias if IsAlias is true, else ChainAliasUnknown.
func (c ChainID) Alias() ChainAlias { return c.alias }

// Resolve returns the full 32-byte chain id this ChainID denotes. An
// alias with no matching table entry (including ChainAliasUnknown)
// resolves to the all-zero id.
func (c ChainID) Resolve() chain.Checksum256 {
	if !c.isAlias {
		return c.full
	}
	return aliasChainIDs[c.alias]
}

func (c ChainID) Equal(o ChainID) bool {
	return c.Resolve() == o.Resolve()
}

// aliasNames is the lowercase short name cmd/eosioctl and internal/server
// accept for each built-in alias (the network's common ticker/handle).
var aliasNames = map[string]ChainAlias{
	"eos":      ChainAliasEOS,
	"telos":    ChainAliasTelos,
	"jungle":   ChainAliasJungle,
	"kylin":    ChainAliasKylin,
	"worbli":   ChainAliasWorbli,
	"bos":      ChainAliasBOS,
	"meetone":  ChainAliasMeetOne,
	"insights": ChainAliasInsights,
	"beos":     ChainAliasBEOS,
}

// ChainAliasFromName resolves a short network name (case-insensitive) to
// its built-in alias.
func ChainAliasFromName(name string) (ChainAlias, bool) {
	alias, ok := aliasNames[strings.ToLower(name)]
	return alias, ok
}
