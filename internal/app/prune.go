// Where: internal/app/prune.go
// What: The prune command.
// Why: Routine disk cleanup with a docker system prune-like prompt.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/docker/go-units"

	"github.com/waspdock/waspdock/internal/dockerx"
	"github.com/waspdock/waspdock/internal/ui"
)

// runPrune truncates container logs and prunes stopped containers, dangling
// images, build cache, and unused networks.
func runPrune(cli CLI, deps Dependencies, projectDir string, out io.Writer) int {
	cfg, err := loadConfig(cli, projectDir)
	if err != nil {
		return exitWithError(out, err)
	}

	fmt.Fprintln(out, "WARNING! This will remove:")
	fmt.Fprintln(out, "  - log contents of the managed containers")
	fmt.Fprintln(out, "  - all stopped containers")
	fmt.Fprintln(out, "  - all dangling images")
	fmt.Fprintln(out, "  - all build cache")
	fmt.Fprintln(out, "  - all networks not used by at least one container")
	fmt.Fprintln(out, "")

	if !cli.Prune.Yes {
		if !isTerminal(os.Stdin) {
			return exitWithError(out, fmt.Errorf("prune requires --yes in non-interactive mode"))
		}
		confirmed, err := promptYesNo("Are you sure you want to continue?")
		if err != nil {
			return exitWithError(out, err)
		}
		if !confirmed {
			fmt.Fprintln(out, "Aborted.")
			return 1
		}
	}

	console := ui.New(out)
	report := dockerx.Cleanup(context.Background(), deps.Docker, []string{cfg.Server.Container, cfg.Client.Container})
	for _, warning := range report.Warnings {
		console.Warn(warning)
	}
	console.Item("Logs truncated", len(report.LogsTruncated))
	console.Item("Containers", len(report.ContainersDeleted))
	console.Item("Images", report.ImagesDeleted)
	console.Item("Networks", len(report.NetworksDeleted))
	console.Item("Build cache", report.BuildCacheDeleted)
	console.Item("Reclaimed", units.HumanSize(float64(report.SpaceReclaimed)))
	console.Success("prune complete")
	return 0
}
