// Where: internal/app/backup.go
// What: The backup command.
// Why: Allow on-demand uploads backups outside the deploy sequence.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/waspdock/waspdock/internal/backup"
	"github.com/waspdock/waspdock/internal/ui"
)

func runBackup(cli CLI, deps Dependencies, projectDir string, out io.Writer) int {
	cfg, err := loadConfig(cli, projectDir)
	if err != nil {
		return exitWithError(out, err)
	}
	if cfg.Backup.Bucket == "" {
		return exitWithError(out, fmt.Errorf("backup.bucket is not configured in %s", projectDir))
	}
	if deps.NewBackupClient == nil {
		return exitWithError(out, fmt.Errorf("backup client is not configured"))
	}

	ctx := context.Background()
	client, err := deps.NewBackupClient(ctx, cfg.Backup)
	if err != nil {
		return exitWithError(out, err)
	}
	uploader := backup.Uploader{Client: client, Now: deps.Now}
	key, err := uploader.Backup(ctx, cfg.Uploads.HostDir, cfg.App, cfg.Backup)
	if err != nil {
		return exitWithError(out, err)
	}
	ui.New(out).Success(fmt.Sprintf("uploads backed up to s3://%s/%s", cfg.Backup.Bucket, key))
	return 0
}
