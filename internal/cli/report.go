package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coral-mesh/inlined/internal/debuginfo"
	"github.com/coral-mesh/inlined/internal/demangle"
	inlerrors "github.com/coral-mesh/inlined/internal/errors"
	"github.com/coral-mesh/inlined/internal/report"
)

func newReportCmd() *cobra.Command {
	var (
		ignorePrefixes  []string
		demangleSymbols bool
		showDeclaration bool
	)

	cmd := &cobra.Command{
		Use:   "inlined [binary]",
		Short: "Report the functions a compiler actually inlined",
		Long: `inlined reads the DWARF debug information of a binary and reports every
function the compiler actually inlined, resolved to its true declaration
identity across specification cross-references.

Output is one line per inlined function declaration: the link-time symbol,
deduplicated and sorted by (file, line, symbol). With --declaration each
line is prefixed with "file:line "; with --demangle symbols are rendered
human-readable (via c++filt, or in-process when c++filt is missing).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			sess, err := debuginfo.Open(binaryArg(args), logger)
			if err != nil {
				return err
			}
			defer inlerrors.DeferClose(logger, sess, "failed to close binary")

			units, err := sess.Units()
			if err != nil {
				return err
			}

			var identities []*debuginfo.Identity
			for _, u := range units {
				ids, err := debuginfo.CollectInlined(u, ignorePrefixes, logger)
				if err != nil {
					return fmt.Errorf("failed to collect inlined functions: %w", err)
				}
				identities = append(identities, ids...)
			}

			var dem report.Demangler
			if demangleSymbols {
				dem = demangle.Default(logger)
			}

			lines := report.Render(identities, dem, report.Options{
				ShowDeclaration: showDeclaration,
				Demangle:        demangleSymbols,
			}, logger)

			// cobra's own Println falls back to stderr; the report
			// contract is one line per identity on stdout.
			out := cmd.OutOrStdout()
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}

			return nil
		},
	}

	cmd.Flags().StringArrayVar(&ignorePrefixes, "ignore", nil, "Skip functions declared in files with this path prefix (repeatable)")
	cmd.Flags().BoolVar(&demangleSymbols, "demangle", false, "Render demangled symbols")
	cmd.Flags().BoolVar(&showDeclaration, "declaration", false, "Prefix each line with \"file:line \"")

	return cmd
}
