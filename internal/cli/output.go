package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rwese/gitlab-toolbox/internal/render"
)

// addOutputFlag registers the shared -o/--output flag.
func addOutputFlag(cmd *cobra.Command, formats string) {
	cmd.Flags().StringP("output", "o", "",
		"output format ("+formats+"); defaults depend on whether stdout is a terminal")
}

// resolveFormat picks the output format: an explicit --output wins, otherwise
// interactive terminals get interactiveDefault and piped output gets
// scriptDefault, so scripts receive machine-readable data without asking.
func resolveFormat(cmd *cobra.Command, interactiveDefault, scriptDefault render.Format) (render.Format, error) {
	raw, err := cmd.Flags().GetString("output")
	if err != nil || raw == "" {
		if isTerminal(os.Stdout) {
			return interactiveDefault, nil
		}
		return scriptDefault, nil
	}
	return render.Parse(raw)
}
