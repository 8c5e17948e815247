package debuginfo

import (
	"strings"

	"github.com/rs/zerolog"
)

// CollectInlined resolves every function-defining entry of the unit and
// keeps those the compiler actually inlined. Identities with no known
// declaring file or no linkage name are excluded (there is nothing useful
// to report for them), as are identities declared in a file matching one of
// the ignored prefixes (plain string-prefix match on the normalized path).
//
// The result may contain duplicates, both within a unit and across units;
// deduplication is the reporter's job.
func CollectInlined(u *Unit, ignoredPrefixes []string, logger zerolog.Logger) ([]*Identity, error) {
	var inlined []*Identity
	for _, e := range u.Entries() {
		if e.Kind != KindSubprogram {
			continue
		}
		id, err := ResolveIdentity(u, e, logger)
		if err != nil {
			return nil, err
		}
		if !id.IsInlined() {
			continue
		}
		if id.DeclFile == "" {
			continue
		}
		if hasAnyPrefix(id.DeclFile, ignoredPrefixes) {
			continue
		}
		if id.LinkageName == "" {
			continue
		}
		inlined = append(inlined, id)
	}
	return inlined, nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
