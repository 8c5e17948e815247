// Package debuginfo resolves which functions a compiler actually inlined,
// using the DWARF debug information embedded in a binary.
//
// The package materializes each compilation unit's debugging information
// entries (DIEs) into an offset-indexed tree, then resolves every
// function-defining entry to its true declaration identity: name, declaring
// file and line, and link-time symbol. Identities are merged across
// DW_AT_specification cross-references, since compilers routinely split a
// function between a declaration entry (name, file, line) and an out-of-line
// definition entry (linkage name, inline classification).
//
// The main entry points are Open (load a binary's DWARF data),
// Session.Units (materialize compilation units), CollectInlined (the
// inlined-declaration report) and CollectCallSites (the "where was it
// inlined" report).
package debuginfo
