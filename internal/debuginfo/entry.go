package debuginfo

import (
	"debug/dwarf"
)

// Kind is the closed set of entry kinds this tool dispatches on. Every
// other DWARF tag is carried along as KindOther so units can still be
// walked and cross-references into arbitrary entries still resolve.
type Kind int

const (
	// KindOther is any entry that is neither a function declaration nor
	// an inlined call site.
	KindOther Kind = iota
	// KindSubprogram is a function-defining entry (DW_TAG_subprogram).
	KindSubprogram
	// KindInlinedSubroutine is an inlined call site (DW_TAG_inlined_subroutine).
	KindInlinedSubroutine
)

func (k Kind) String() string {
	switch k {
	case KindSubprogram:
		return "subprogram"
	case KindInlinedSubroutine:
		return "inlined-subroutine"
	default:
		return "other"
	}
}

func kindOf(tag dwarf.Tag) Kind {
	switch tag {
	case dwarf.TagSubprogram:
		return KindSubprogram
	case dwarf.TagInlinedSubroutine:
		return KindInlinedSubroutine
	default:
		return KindOther
	}
}

// attrMIPSLinkageName is the pre-standard linkage name attribute emitted by
// older GCC releases. Checked as a fallback for dwarf.AttrLinkageName.
const attrMIPSLinkageName dwarf.Attr = 0x2007

// Entry is one debugging information entry, materialized from the DWARF
// reader. Its Offset identifies it within the debug-info section and is the
// target of DW_AT_specification / DW_AT_abstract_origin references.
type Entry struct {
	Offset dwarf.Offset
	Kind   Kind

	attrs map[dwarf.Attr]interface{}
}

func newEntry(e *dwarf.Entry) *Entry {
	attrs := make(map[dwarf.Attr]interface{}, len(e.Field))
	for _, f := range e.Field {
		attrs[f.Attr] = f.Val
	}
	return &Entry{
		Offset: e.Offset,
		Kind:   kindOf(e.Tag),
		attrs:  attrs,
	}
}

// String returns the string value of an attribute.
func (e *Entry) String(attr dwarf.Attr) (string, bool) {
	v, ok := e.attrs[attr].(string)
	return v, ok
}

// Int returns the integer value of a constant-class attribute.
func (e *Entry) Int(attr dwarf.Attr) (int64, bool) {
	v, ok := e.attrs[attr].(int64)
	return v, ok
}

// Ref returns the entry offset a reference-class attribute points at.
// The stdlib DWARF reader has already adjusted unit-relative reference
// forms to section offsets, so the result can be looked up directly in
// the entry's unit.
func (e *Entry) Ref(attr dwarf.Attr) (dwarf.Offset, bool) {
	v, ok := e.attrs[attr].(dwarf.Offset)
	return v, ok
}

// linkageName returns the mangled linker symbol, preferring the DWARF 4
// attribute over the legacy MIPS one.
func (e *Entry) linkageName() (string, bool) {
	if v, ok := e.String(dwarf.AttrLinkageName); ok {
		return v, true
	}
	return e.String(attrMIPSLinkageName)
}
