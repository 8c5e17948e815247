package debuginfo

import (
	"debug/dwarf"
	"fmt"

	"github.com/rs/zerolog"
)

// CallSite is one place where a function was inlined: the function's
// source name and the location of the call that got inlined away. File and
// line come from the call-site entry itself (DW_AT_call_file/line), never
// from the function's declaration.
type CallSite struct {
	Name string
	File string
	Line int64
}

func (c CallSite) String() string {
	return fmt.Sprintf("%s inlined at %s:%d", c.Name, c.File, c.Line)
}

// CollectCallSites locates every inlined call site in the unit and resolves
// the name of the function it instantiates: follow the call site's
// DW_AT_abstract_origin, then specification references from there, until an
// entry with a direct name turns up. Sites whose origin or name cannot be
// resolved are logged and skipped. Sites called from a file matching one of
// the ignored prefixes are skipped.
func CollectCallSites(u *Unit, ignoredPrefixes []string, logger zerolog.Logger) ([]CallSite, error) {
	var sites []CallSite
	for _, e := range u.Entries() {
		if e.Kind != KindInlinedSubroutine {
			continue
		}

		name, ok := originName(u, e, logger)
		if !ok {
			continue
		}

		fileIdx, _ := e.Int(dwarf.AttrCallFile)
		file, err := u.ResolveFile(fileIdx)
		if err != nil {
			return nil, err
		}
		if hasAnyPrefix(file, ignoredPrefixes) {
			continue
		}
		line, _ := e.Int(dwarf.AttrCallLine)

		sites = append(sites, CallSite{Name: name, File: file, Line: line})
	}
	return sites, nil
}

// originName chases an inlined call site to the source name of the function
// it inlines. The walk is cycle-guarded for the same reason identity
// resolution is: reference chains are acyclic by convention only.
func originName(u *Unit, site *Entry, logger zerolog.Logger) (string, bool) {
	off, ok := site.Ref(dwarf.AttrAbstractOrigin)
	if !ok {
		logger.Warn().
			Uint64("offset", uint64(site.Offset)).
			Str("unit", u.Name).
			Msg("Inlined call site has no abstract origin")
		return "", false
	}

	seen := map[dwarf.Offset]bool{site.Offset: true}
	for {
		if seen[off] {
			logger.Warn().
				Uint64("offset", uint64(off)).
				Str("unit", u.Name).
				Msg("Reference cycle while resolving call site origin")
			return "", false
		}
		seen[off] = true

		origin, ok := u.Lookup(off)
		if !ok {
			logger.Warn().
				Uint64("offset", uint64(off)).
				Str("unit", u.Name).
				Msg("No entry at origin offset")
			return "", false
		}
		if name, ok := origin.String(dwarf.AttrName); ok {
			return name, true
		}
		if off, ok = origin.Ref(dwarf.AttrSpecification); !ok {
			logger.Warn().
				Uint64("offset", uint64(origin.Offset)).
				Str("unit", u.Name).
				Msg("Call site origin has no name")
			return "", false
		}
	}
}
