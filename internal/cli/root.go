// Package cli wires the gitlab-toolbox Cobra commands: groups, projects,
// merge requests, pipelines, and pipeline schedules, each with list and show
// operations rendered through internal/render.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rwese/gitlab-toolbox/internal/config"
	"github.com/rwese/gitlab-toolbox/internal/gitlab"
	"github.com/rwese/gitlab-toolbox/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// settings holds the connection configuration resolved by the root command.
var settings config.Settings //nolint:gochecknoglobals // Resolved once per invocation

// NewRootCmd creates the root Cobra command for gitlab-toolbox. It wires up
// logging and the entity subcommands with their short aliases.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup so
// tests can inject environment variables.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	var (
		gitlabURL string
		token     string
		debug     bool
	)

	cmd := &cobra.Command{
		Use:          "gitlab-toolbox",
		Short:        "Query GitLab groups, projects, merge requests, and pipelines",
		Long:         "gitlab-toolbox: a read-only CLI for GitLab groups, projects, merge requests, CI pipelines, and pipeline schedules",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		// Errors are reported by main so NotFound can be presented as a
		// clean message with its own exit code.
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if debug {
				level = "debug"
			}
			root := logging.New(cmd.ErrOrStderr(), logging.Config{Level: level, Console: true})
			root = logging.WithTraceID(root, logging.NewTraceID())
			logger = logging.ComponentLogger(root, "cli")

			settings = config.Resolve(gitlabURL, token, lookupEnv)
			logger.Debug().
				Str("base_url", settings.BaseURL).
				Bool("token_set", settings.Token != "").
				Msg("resolved settings")
		},
	}

	cmd.PersistentFlags().StringVar(&gitlabURL, "gitlab-url", "",
		"GitLab instance URL (defaults to GITLAB_URL, glab config, then https://gitlab.com)")
	cmd.PersistentFlags().StringVar(&token, "token", "",
		"personal access token (defaults to GITLAB_TOKEN and friends)")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	addWithAlias(cmd, newGroupsCmd(), "g")
	addWithAlias(cmd, newProjectsCmd(), "proj")
	addWithAlias(cmd, newMergeRequestsCmd(), "mr")
	addWithAlias(cmd, newPipelinesCmd(), "p")
	addWithAlias(cmd, newSchedulesCmd(), "ps")

	return cmd
}

// addWithAlias registers a subcommand under its primary name plus a short
// alias.
func addWithAlias(parent, child *cobra.Command, alias string) {
	child.Aliases = append(child.Aliases, alias)
	parent.AddCommand(child)
}

// newSource builds the HTTP data source from the resolved settings. Split out
// so command tests can swap in a stub via the source package variable.
var newSource = func() gitlab.Source { //nolint:gochecknoglobals // Test seam, mirrors resolved settings
	return gitlab.NewClient(settings, logging.ComponentLogger(logger, "gitlab"))
}

const rootCmdExample = `  # List all groups as a tree with their members
  gitlab-toolbox groups list --output tree

  # List open merge requests whose latest pipeline failed
  gitlab-toolbox mr list --project mygroup/myproject --pipeline-status failed

  # Show a project
  gitlab-toolbox proj show mygroup/myproject

  # Export the last 50 pipelines as CSV
  gitlab-toolbox pipelines list mygroup/myproject --limit 50 --output csv

  # List pipeline schedules with their most recent pipeline
  gitlab-toolbox ps list mygroup/myproject --with-last-pipeline`
