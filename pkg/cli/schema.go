package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/synaptica-ai/heartrisk/pkg/clinical"
	"github.com/synaptica-ai/heartrisk/pkg/features"
	"github.com/synaptica-ai/heartrisk/pkg/serving/artifacts"
)

func newSchemaCommand(s *settings) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the expected columns and check them against the form's categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := artifacts.Load(s.artifactDir())
			if err != nil {
				return fmt.Errorf("load artifacts: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "model: %s %s\n", bundle.ModelType, bundle.ModelVersion)
			fmt.Fprintf(out, "columns (%d):\n", bundle.Schema.Len())
			for i, col := range bundle.Schema.Columns() {
				fmt.Fprintf(out, "  %2d %s\n", i, col)
			}

			gaps := features.CheckDomain(bundle.Schema, clinical.CategoricalDomains())
			if len(gaps) == 0 {
				fmt.Fprintln(out, "every selectable category is representable")
				return nil
			}
			for _, g := range gaps {
				fmt.Fprintf(out, "gap: %s has no column for %s\n", g.Field, strings.Join(g.Missing, ", "))
			}
			if strict {
				return fmt.Errorf("%d categorical field(s) cannot be represented", len(gaps))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when a field has gaps")
	return cmd
}
