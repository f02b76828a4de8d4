// Command gitlab-toolbox is a read-only CLI for GitLab groups, projects,
// merge requests, CI pipelines, and pipeline schedules.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rwese/gitlab-toolbox/internal/cli"
	"github.com/rwese/gitlab-toolbox/internal/gitlab"
	"github.com/rwese/gitlab-toolbox/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps errors to exit codes. NotFound is a
// clean user-facing condition and gets its own exit code so scripts can tell
// it apart from transport failures.
func run() int {
	err := cli.NewRootCmd(version.GetVersion()).Execute()
	if err == nil {
		return 0
	}

	var notFound *gitlab.NotFoundError
	if errors.As(err, &notFound) {
		fmt.Fprintln(os.Stderr, notFound.Error())
		return 2
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return 1
}
