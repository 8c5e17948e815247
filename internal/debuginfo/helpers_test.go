package debuginfo

import (
	"debug/dwarf"
)

// testEntry builds a materialized entry without going through the DWARF
// reader, so resolution logic can be exercised on hand-written trees.
func testEntry(off dwarf.Offset, kind Kind, attrs map[dwarf.Attr]interface{}) *Entry {
	if attrs == nil {
		attrs = map[dwarf.Attr]interface{}{}
	}
	return &Entry{Offset: off, Kind: kind, attrs: attrs}
}

// testUnit builds a unit whose file table contains the given paths at
// indexes 1..n, matching the DWARF<5 convention of a nil slot 0.
func testUnit(files []string, entries ...*Entry) *Unit {
	u := &Unit{
		Name:    "test.c",
		CompDir: "/src",
		index:   make(map[dwarf.Offset]*Entry),
	}
	if files != nil {
		u.files = make([]*dwarf.LineFile, len(files)+1)
		for i, f := range files {
			u.files[i+1] = &dwarf.LineFile{Name: f}
		}
	}
	for _, e := range entries {
		u.add(e)
	}
	return u
}
