package abi

// Kind discriminates the shape a ResolvedType ultimately settled on,
// after any chain of type aliases has been flattened away.
type Kind int

const (
	KindUnknown Kind = iota
	KindBuiltin
	KindStruct
	KindVariant
)

// ResolvedField is a struct field after type resolution.
type ResolvedField struct {
	Name string
	Type *ResolvedType
}

// ResolvedAlternative is a variant alternative after type resolution.
type ResolvedAlternative struct {
	TypeName string
	Type     *ResolvedType
}

// ResolvedType is the output of type resolution (§4.3): a node carrying
// the array/optional/binaryExt flags parsed from the name's suffixes —
// accumulated across any alias chain the name passed through — plus
// exactly one of a builtin identifier, a struct's (base-prepended) field
// list, or a variant's alternatives. Aliases are flattened away entirely
// during resolution rather than kept as their own kind: a field typed as
// an alias to `uint16` resolves straight to a builtin uint16 node, the
// same as the chain's own abi_serializer treats typedefs.
type ResolvedType struct {
	Name  string
	Flags typeSuffixes
	Kind  Kind

	Builtin string

	Fields []ResolvedField

	Alternatives []ResolvedAlternative
}

// IsArray, IsOptional and IsBinaryExtension expose the parsed name
// suffixes under names that read naturally at call sites.
func (t *ResolvedType) IsArray() bool           { return t.Flags.Array }
func (t *ResolvedType) IsOptional() bool        { return t.Flags.Optional }
func (t *ResolvedType) IsBinaryExtension() bool { return t.Flags.BinaryExt }

// Resolver resolves type names against one ABI's types/structs/variants,
// memoizing completed (and in-progress) nodes for the lifetime of the
// Resolver so that repeated or self-referential lookups of the same
// decorated name share one node — the mechanism that lets a struct
// reference itself through an optional or array field without resolution
// looping forever (§4.3 step 2, §9 lifecycle note).
type Resolver struct {
	aliases  map[string]string
	structs  map[string]Struct
	variants map[string]VariantDef

	cache map[string]*ResolvedType
}

// NewResolver builds a Resolver for a's type aliases, structs and
// variants.
func NewResolver(a ABI) *Resolver {
	r := &Resolver{
		aliases:  make(map[string]string, len(a.Types)),
		structs:  make(map[string]Struct, len(a.Structs)),
		variants: make(map[string]VariantDef, len(a.Variants)),
		cache:    make(map[string]*ResolvedType),
	}
	for _, t := range a.Types {
		r.aliases[t.NewTypeName] = t.Type
	}
	for _, s := range a.Structs {
		r.structs[s.Name] = s
	}
	for _, v := range a.Variants {
		r.variants[v.Name] = v
	}
	return r
}

// Resolve resolves a full type name (suffixes included) to a
// ResolvedType, reusing the cached node if this exact decorated name was
// already resolved — or is still being resolved further up the call
// stack, which is what lets a directly self-referential struct field
// (e.g. a field of the struct's own name) terminate: the placeholder
// node is inserted into the cache before its fields are filled in, so
// the recursive lookup gets a pointer to the same node rather than
// recursing again.
func (r *Resolver) Resolve(name string) (*ResolvedType, error) {
	if cached, ok := r.cache[name]; ok {
		return cached, nil
	}

	node := &ResolvedType{Name: name}
	r.cache[name] = node

	bare, flags, err := r.flattenAliases(name)
	if err != nil {
		return nil, err
	}
	node.Flags = flags

	if err := r.fillKind(node, bare); err != nil {
		return nil, err
	}
	return node, nil
}

// flattenAliases strips suffixes from name and, while the remaining bare
// name matches a type alias, substitutes the alias's target and strips
// suffixes again — accumulating the array/optional/binaryExt flags seen
// at every step, matching how the chain's own type resolver walks
// typedef chains. A typedef chain that never bottoms out in a concrete
// name is a SchemaError, not an infinite loop.
func (r *Resolver) flattenAliases(name string) (string, typeSuffixes, error) {
	var flags typeSuffixes
	visited := make(map[string]bool)
	current := name
	for {
		bare, f := stripSuffixes(current)
		flags.BinaryExt = flags.BinaryExt || f.BinaryExt
		flags.Optional = flags.Optional || f.Optional
		flags.Array = flags.Array || f.Array

		target, isAlias := r.aliases[bare]
		if !isAlias {
			return bare, flags, nil
		}
		if visited[bare] {
			return "", typeSuffixes{}, &SchemaError{Detail: "circular alias graph at " + bare}
		}
		visited[bare] = true
		current = target
	}
}

func (r *Resolver) fillKind(node *ResolvedType, bare string) error {
	if s, ok := r.structs[bare]; ok {
		fields, err := r.resolveStructFields(s, make(map[string]bool))
		if err != nil {
			return err
		}
		node.Kind = KindStruct
		node.Fields = fields
		return nil
	}

	if v, ok := r.variants[bare]; ok {
		alts := make([]ResolvedAlternative, len(v.Types))
		for i, t := range v.Types {
			altNode, err := r.Resolve(t)
			if err != nil {
				return err
			}
			alts[i] = ResolvedAlternative{TypeName: t, Type: altNode}
		}
		node.Kind = KindVariant
		node.Alternatives = alts
		return nil
	}

	if builtinNames[bare] {
		node.Kind = KindBuiltin
		node.Builtin = bare
		return nil
	}

	node.Kind = KindUnknown
	return nil
}

// resolveStructFields resolves s's own fields with its base struct's
// fields (resolved recursively) prepended. baseStack tracks the base
// names currently being expanded in this inheritance chain, rejecting a
// genuine circular base chain (A bases on B bases on A) — this is
// distinct from, and stricter than, the general field-recursion cache in
// Resolve: a struct may legally reference itself through a field, but
// never through its own base chain.
func (r *Resolver) resolveStructFields(s Struct, baseStack map[string]bool) ([]ResolvedField, error) {
	var fields []ResolvedField
	if s.Base != "" {
		if baseStack[s.Base] {
			return nil, &SchemaError{Detail: "circular struct inheritance at " + s.Base}
		}
		base, ok := r.structs[s.Base]
		if !ok {
			return nil, &SchemaError{Detail: "struct " + s.Name + " has unknown base " + s.Base}
		}
		baseStack[s.Base] = true
		baseFields, err := r.resolveStructFields(base, baseStack)
		delete(baseStack, s.Base)
		if err != nil {
			return nil, err
		}
		fields = append(fields, baseFields...)
	}
	for _, f := range s.Fields {
		t, err := r.Resolve(f.Type)
		if err != nil {
			return nil, err
		}
		fields = append(fields, ResolvedField{Name: f.Name, Type: t})
	}
	return fields, nil
}
