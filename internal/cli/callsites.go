package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coral-mesh/inlined/internal/debuginfo"
	inlerrors "github.com/coral-mesh/inlined/internal/errors"
)

func newCallSitesCmd() *cobra.Command {
	var ignorePrefixes []string

	cmd := &cobra.Command{
		Use:   "callsites [binary]",
		Short: "Report where each function was inlined",
		Long: `callsites answers "where was X inlined" instead of "which declarations
were inlined": it walks the inlined call-site entries directly and prints
one line per site, in document order, with the call location taken from
the call site itself.`,
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

			out := cmd.OutOrStdout()
			for _, u := range units {
				sites, err := debuginfo.CollectCallSites(u, ignorePrefixes, logger)
				if err != nil {
					return fmt.Errorf("failed to collect call sites: %w", err)
				}
				for _, site := range sites {
					fmt.Fprintln(out, site.String())
				}
			}

			return nil
		},
	}

	cmd.Flags().StringArrayVar(&ignorePrefixes, "ignore", nil, "Skip call sites in files with this path prefix (repeatable)")

	return cmd
}
