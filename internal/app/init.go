// Where: internal/app/init.go
// What: The init command.
// Why: Scaffold the files a project needs before its first deploy.
package app

import (
	"io"

	"github.com/waspdock/waspdock/internal/config"
	"github.com/waspdock/waspdock/internal/scaffold"
	"github.com/waspdock/waspdock/internal/ui"
)

func runInit(cli CLI, projectDir string, out io.Writer) int {
	cfg := config.Default()
	if cli.Init.App != "" {
		cfg = config.DefaultFor(cli.Init.App)
	}

	data := scaffold.Data{Config: cfg, NginxTag: cli.Init.NginxTag}
	written, err := scaffold.Generate(projectDir, data, cli.Init.Force)
	console := ui.New(out)
	for _, path := range written {
		console.Info("wrote " + path)
	}
	if err != nil {
		return exitWithError(out, err)
	}
	if len(written) == 0 {
		console.Info("nothing to do; use --force to overwrite existing files")
	}
	console.Success("project scaffolded")
	return 0
}
