package debuginfo

import (
	"debug/dwarf"
	"fmt"
	"path"
)

// Unit is one materialized compilation unit: its entries in document order,
// an offset index for cross-reference lookups, and the unit's file table
// from the line program. Read-only after construction.
type Unit struct {
	// Name is the compilation unit's source name (DW_AT_name of the root
	// entry), used only for diagnostics.
	Name string
	// CompDir is the compilation directory of the unit's root entry.
	CompDir string

	entries []*Entry
	index   map[dwarf.Offset]*Entry

	// files is the line-program file table. The line reader resolves
	// directory indexes (including the comp-dir fallback for directory
	// index zero) while building it, so files[i].Name is already a full
	// path. Slot 0 is nil for DWARF versions before 5.
	files []*dwarf.LineFile
}

func newUnit(root *dwarf.Entry, files []*dwarf.LineFile) *Unit {
	name, _ := root.Val(dwarf.AttrName).(string)
	compDir, _ := root.Val(dwarf.AttrCompDir).(string)
	u := &Unit{
		Name:    name,
		CompDir: compDir,
		index:   make(map[dwarf.Offset]*Entry),
		files:   files,
	}
	u.add(newEntry(root))
	return u
}

func (u *Unit) add(e *Entry) {
	u.entries = append(u.entries, e)
	u.index[e.Offset] = e
}

// Entries returns all entries of the unit in document order.
func (u *Unit) Entries() []*Entry {
	return u.entries
}

// Lookup finds the entry at the given section offset, as used by
// specification and abstract-origin references.
func (u *Unit) Lookup(off dwarf.Offset) (*Entry, bool) {
	e, ok := u.index[off]
	return e, ok
}

// ResolveFile maps a file-table index (the value of DW_AT_decl_file or
// DW_AT_call_file) to a normalized path. Index zero means "no file known"
// and resolves to the empty string. An index outside the table indicates
// corrupt debug info and is returned as an error rather than clamped.
func (u *Unit) ResolveFile(idx int64) (string, error) {
	if idx == 0 {
		return "", nil
	}
	if idx < 0 || idx >= int64(len(u.files)) || u.files[idx] == nil {
		return "", fmt.Errorf("file index %d out of range for unit %q (%d files)", idx, u.Name, len(u.files))
	}
	return path.Clean(u.files[idx].Name), nil
}
