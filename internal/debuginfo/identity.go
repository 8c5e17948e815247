package debuginfo

import (
	"debug/dwarf"

	"github.com/rs/zerolog"
)

// Inline classification values of the DW_AT_inline attribute (DWARF 4,
// section 3.3.8). An absent attribute is equivalent to InlineNone.
const (
	InlineNone               int64 = 0 // not declared inline, not inlined
	InlineInlined            int64 = 1 // inlined by the compiler on its own
	InlineDeclaredNotInlined int64 = 2 // declared inline, never inlined
	InlineDeclaredInlined    int64 = 3 // declared inline and inlined
)

// Identity is the resolved declaration identity of a function entry:
// its attributes merged across the DW_AT_specification chain, so that a
// split declaration/definition pair reads as one logical function.
//
// Absent values use zero sentinels (empty string, line 0); a file path and
// a declaration line are never legitimately empty/zero in DWARF, and the
// sentinels order before any present value, which is exactly the order the
// report wants.
type Identity struct {
	// Name is the source-level name, "" when unresolvable.
	Name string
	// DeclFile is the normalized declaring file path, "" when unknown.
	DeclFile string
	// DeclLine is the declaring line, 0 when unknown.
	DeclLine int64
	// LinkageName is the mangled linker symbol, "" when unknown.
	LinkageName string
	// InlineEnum is the DW_AT_inline classification, InlineNone when
	// absent anywhere on the chain.
	InlineEnum int64

	entry *Entry
	spec  *Identity
}

// IsInlined reports whether the compiler actually inlined the function.
func (id *Identity) IsInlined() bool {
	return id.InlineEnum == InlineInlined || id.InlineEnum == InlineDeclaredInlined
}

// DeclaredInline reports whether the function was declared inline in source.
func (id *Identity) DeclaredInline() bool {
	return id.InlineEnum == InlineDeclaredNotInlined || id.InlineEnum == InlineDeclaredInlined
}

// Specification returns the resolved identity of the entry's
// DW_AT_specification target, or nil when the entry has none (or the
// reference could not be resolved).
func (id *Identity) Specification() *Identity {
	return id.spec
}

// Entry returns the entry this identity was resolved from.
func (id *Identity) Entry() *Entry {
	return id.entry
}

// ResolveIdentity computes the identity of a function entry within its
// unit. Each attribute falls back independently through the specification
// chain: a declaration entry typically carries name/file/line while the
// out-of-line definition carries the linkage name and inline class.
//
// Every derived value is computed exactly once. An unresolvable
// specification offset or a reference cycle ends the chain with a warning;
// only a corrupt file-table index is an error.
func ResolveIdentity(u *Unit, e *Entry, logger zerolog.Logger) (*Identity, error) {
	r := resolver{unit: u, logger: logger}
	return r.resolve(e, map[dwarf.Offset]bool{e.Offset: true})
}

type resolver struct {
	unit   *Unit
	logger zerolog.Logger
}

func (r resolver) resolve(e *Entry, seen map[dwarf.Offset]bool) (*Identity, error) {
	id := &Identity{entry: e}

	spec, err := r.specification(e, seen)
	if err != nil {
		return nil, err
	}
	id.spec = spec

	if name, ok := e.String(dwarf.AttrName); ok {
		id.Name = name
	} else if id.spec != nil {
		id.Name = id.spec.Name
	}

	if fileIdx, ok := e.Int(dwarf.AttrDeclFile); ok {
		file, err := r.unit.ResolveFile(fileIdx)
		if err != nil {
			return nil, err
		}
		id.DeclFile = file
	} else if id.spec != nil {
		id.DeclFile = id.spec.DeclFile
	}

	if line, ok := e.Int(dwarf.AttrDeclLine); ok {
		id.DeclLine = line
	} else if id.spec != nil {
		id.DeclLine = id.spec.DeclLine
	}

	if linkage, ok := e.linkageName(); ok {
		id.LinkageName = linkage
	} else if id.spec != nil {
		id.LinkageName = id.spec.LinkageName
	}

	if inline, ok := e.Int(dwarf.AttrInline); ok {
		id.InlineEnum = inline
	} else if id.spec != nil {
		id.InlineEnum = id.spec.InlineEnum
	}

	return id, nil
}

// specification resolves the single-hop DW_AT_specification reference.
// The seen set guards against reference cycles: the format only promises
// acyclicity by convention, and a malformed chain must degrade the
// identity, not hang the run.
func (r resolver) specification(e *Entry, seen map[dwarf.Offset]bool) (*Identity, error) {
	off, ok := e.Ref(dwarf.AttrSpecification)
	if !ok {
		return nil, nil
	}
	if seen[off] {
		r.logger.Warn().
			Uint64("offset", uint64(off)).
			Str("unit", r.unit.Name).
			Msg("Specification reference cycle, treating as unresolvable")
		return nil, nil
	}
	seen[off] = true

	target, ok := r.unit.Lookup(off)
	if !ok {
		r.logger.Warn().
			Uint64("offset", uint64(off)).
			Str("unit", r.unit.Name).
			Msg("No entry at specification offset")
		return nil, nil
	}
	return r.resolve(target, seen)
}
