// Where: internal/uploads/uploads.go
// What: Host-side uploads directory migration.
// Why: User uploads must survive container replacement.
package uploads

import (
	"context"
	"fmt"

	"github.com/waspdock/waspdock/internal/dockerx"
	"github.com/waspdock/waspdock/internal/execx"
	"github.com/waspdock/waspdock/internal/fileops"
)

// Migrator pulls uploaded files out of a server container before it is
// removed so they can be bind-mounted into its replacement.
type Migrator struct {
	Docker dockerx.Client
	Runner execx.CommandRunner
}

// EnsureHostDir creates the host uploads directory if missing.
func (m Migrator) EnsureHostDir(hostDir string) error {
	if err := fileops.EnsureDir(hostDir); err != nil {
		return fmt.Errorf("ensure uploads dir %s: %w", hostDir, err)
	}
	return nil
}

// PullFromContainer copies the uploads subtree of the named container into
// the host directory. A missing container is not an error; there is simply
// nothing to migrate.
func (m Migrator) PullFromContainer(ctx context.Context, containerName, containerDir, hostDir string) error {
	_, found, err := dockerx.FindContainer(ctx, m.Docker, containerName)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	return dockerx.CopyFromContainer(ctx, m.Runner, containerName, containerDir, hostDir)
}
