// Where: internal/app/status.go
// What: The status command.
// Why: Surface last deploy, container state, and disk usage in one view.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/waspdock/waspdock/internal/dockerx"
	"github.com/waspdock/waspdock/internal/state"
	"github.com/waspdock/waspdock/internal/ui"
)

func runStatus(cli CLI, deps Dependencies, projectDir string, out io.Writer) int {
	cfg, err := loadConfig(cli, projectDir)
	if err != nil {
		return exitWithError(out, err)
	}
	console := ui.New(out)

	rec, found, err := state.Load(projectDir)
	if err != nil {
		return exitWithError(out, err)
	}
	if found {
		console.Info(fmt.Sprintf("last deploy: %s (%s)", rec.Time.Format("2006-01-02 15:04:05"), rec.Outcome))
		if rec.FailedStep != "" {
			console.Item("Failed step", rec.FailedStep)
		}
	} else {
		console.Info("no deploy recorded for this project")
	}

	ctx := context.Background()
	statuses, err := dockerx.ContainerStates(ctx, deps.Docker, []string{cfg.Server.Container, cfg.Client.Container})
	if err != nil {
		return exitWithError(out, err)
	}
	for _, status := range statuses {
		value := status.State
		if status.Image != "" {
			value += "  " + status.Image
		}
		console.Item(status.Name, value)
	}

	du, err := dockerx.Usage(ctx, deps.Docker)
	if err != nil {
		return exitWithError(out, err)
	}
	for _, line := range dockerx.UsageSummary(du) {
		console.ItemPlain(line)
	}
	return 0
}
