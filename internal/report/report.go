// Package report turns resolved inlined-function identities into the final
// line-oriented report: deduplicated, deterministically sorted, optionally
// demangled.
package report

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/coral-mesh/inlined/internal/debuginfo"
)

// Options controls how report lines are rendered.
type Options struct {
	// ShowDeclaration prefixes each line with "file:line ".
	ShowDeclaration bool
	// Demangle renders the demangled symbol instead of the raw one.
	Demangle bool
}

// Demangler converts a mangled linker symbol to its human-readable form.
type Demangler interface {
	Demangle(symbol string) (string, error)
}

// Key is the canonical identity of a report entry. Two identities are the
// same function iff their keys are equal, and the report is sorted by key.
type Key struct {
	File   string
	Line   int64
	Symbol string
}

// Less orders keys by file, then line, then symbol. Unknown values are the
// zero sentinels ("" and 0) and therefore sort before any known value.
func (k Key) Less(other Key) bool {
	if k.File != other.File {
		return k.File < other.File
	}
	if k.Line != other.Line {
		return k.Line < other.Line
	}
	return k.Symbol < other.Symbol
}

func keyOf(id *debuginfo.Identity) Key {
	return Key{File: id.DeclFile, Line: id.DeclLine, Symbol: id.LinkageName}
}

// Render deduplicates the identities by key, sorts them, and produces one
// line per surviving identity. A demangler is only consulted when
// opts.Demangle is set; a per-symbol demangling failure is logged and the
// mangled symbol printed instead, so one bad symbol never spoils the run.
func Render(ids []*debuginfo.Identity, dem Demangler, opts Options, logger zerolog.Logger) []string {
	unique := make(map[Key]struct{}, len(ids))
	keys := make([]Key, 0, len(ids))
	for _, id := range ids {
		k := keyOf(id)
		if _, ok := unique[k]; ok {
			continue
		}
		unique[k] = struct{}{}
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		symbol := k.Symbol
		if opts.Demangle && dem != nil {
			demangled, err := dem.Demangle(k.Symbol)
			if err != nil {
				logger.Warn().
					Err(err).
					Str("symbol", k.Symbol).
					Msg("Demangling failed, printing mangled name")
			} else {
				symbol = demangled
			}
		}
		if opts.ShowDeclaration {
			lines = append(lines, fmt.Sprintf("%s:%d %s", k.File, k.Line, symbol))
		} else {
			lines = append(lines, symbol)
		}
	}
	return lines
}
