// Where: internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/waspdock/waspdock/internal/backup"
	"github.com/waspdock/waspdock/internal/config"
	"github.com/waspdock/waspdock/internal/dockerx"
	"github.com/waspdock/waspdock/internal/execx"
	"github.com/waspdock/waspdock/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command
// execution. This structure enables swapping implementations in tests.
type Dependencies struct {
	ProjectDir      string
	Out             io.Writer
	Docker          dockerx.Client
	Runner          execx.CommandRunner
	Environ         func() []string
	NewBackupClient func(ctx context.Context, cfg config.BackupConfig) (backup.S3Client, error)
	Now             func() time.Time
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	Config     string `short:"c" help:"Path to waspdock.yml (default: <project>/waspdock.yml)"`
	ProjectDir string `short:"C" name:"project-dir" help:"Project directory (default: current directory)"`

	Deploy  DeployCmd  `cmd:"" help:"Rebuild artifacts and replace the running containers"`
	Prune   PruneCmd   `cmd:"" help:"Truncate container logs and prune unused Docker resources"`
	Status  StatusCmd  `cmd:"" help:"Show managed containers and disk usage"`
	Backup  BackupCmd  `cmd:"" help:"Back up the uploads directory to S3"`
	Init    InitCmd    `cmd:"" help:"Scaffold waspdock.yml and client image files"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

type (
	DeployCmd struct {
		SkipBackup bool `help:"Skip the uploads backup step"`
	}
	PruneCmd struct {
		Yes bool `short:"y" help:"Skip confirmation prompt"`
	}
	StatusCmd struct{}
	BackupCmd struct{}
	InitCmd   struct {
		App      string `help:"Application name used for generated defaults"`
		NginxTag string `name:"nginx-tag" help:"Nginx base image tag for the generated client Dockerfile"`
		Force    bool   `help:"Overwrite existing files"`
	}
	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution.
// Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}

	cli := CLI{}
	parser, err := kong.New(&cli)
	if err != nil {
		return exitWithError(out, err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return exitWithError(out, err)
	}

	projectDir := cli.ProjectDir
	if projectDir == "" {
		projectDir = deps.ProjectDir
	}
	if projectDir == "" {
		projectDir = "."
	}

	switch ctx.Command() {
	case "deploy":
		return runDeploy(cli, deps, projectDir, out)
	case "prune":
		return runPrune(cli, deps, projectDir, out)
	case "status":
		return runStatus(cli, deps, projectDir, out)
	case "backup":
		return runBackup(cli, deps, projectDir, out)
	case "init":
		return runInit(cli, projectDir, out)
	case "version":
		fmt.Fprintln(out, version.GetVersion())
		return 0
	}

	fmt.Fprintln(out, "unknown command")
	return 1
}

// loadConfig resolves the config path from the flag or project directory.
func loadConfig(cli CLI, projectDir string) (config.Config, error) {
	if cli.Config != "" {
		return config.Load(cli.Config)
	}
	return config.LoadFromProject(projectDir)
}

func exitWithError(out io.Writer, err error) int {
	fmt.Fprintln(out, err)
	return 1
}
