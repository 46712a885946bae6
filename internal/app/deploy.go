// Where: internal/app/deploy.go
// What: The deploy command.
// Why: Wire config and dependencies into the deployment sequencer.
package app

import (
	"context"
	"io"
	"os"

	"github.com/waspdock/waspdock/internal/backup"
	"github.com/waspdock/waspdock/internal/config"
	"github.com/waspdock/waspdock/internal/deploy"
	"github.com/waspdock/waspdock/internal/ui"
)

// runDeploy executes the full deployment sequence. The sequencer reports
// every step; a fatal step failure has already been printed when this
// returns non-zero.
func runDeploy(cli CLI, deps Dependencies, projectDir string, out io.Writer) int {
	cfg, err := loadConfig(cli, projectDir)
	if err != nil {
		return exitWithError(out, err)
	}

	environ := deps.Environ
	if environ == nil {
		environ = os.Environ
	}

	sequencer := &deploy.Sequencer{
		Docker:  deps.Docker,
		Runner:  deps.Runner,
		Console: ui.New(out),
		Environ: environ,
		Backup:  backupFunc(cli, deps, cfg),
		Now:     deps.Now,
	}
	if err := sequencer.Run(context.Background(), cfg, projectDir); err != nil {
		return 1
	}
	return 0
}

// backupFunc returns the uploads backup operation, or nil when backups are
// disabled, skipped, or unwired.
func backupFunc(cli CLI, deps Dependencies, cfg config.Config) deploy.BackupFunc {
	if !cfg.Backup.Enabled || cli.Deploy.SkipBackup || deps.NewBackupClient == nil {
		return nil
	}
	return func(ctx context.Context, dir string) (string, error) {
		client, err := deps.NewBackupClient(ctx, cfg.Backup)
		if err != nil {
			return "", err
		}
		uploader := backup.Uploader{Client: client, Now: deps.Now}
		return uploader.Backup(ctx, dir, cfg.App, cfg.Backup)
	}
}
