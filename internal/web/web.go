// Where: internal/web/web.go
// What: Front-end dependency install and production build.
// Why: Drive npm inside the generated web-app tree with a controlled env.
package web

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/waspdock/waspdock/internal/execx"
	"github.com/waspdock/waspdock/internal/fileops"
)

// Builder invokes the front-end package manager.
type Builder struct {
	Runner execx.CommandRunner
}

// Install fetches package dependencies in the web-app directory.
func (b Builder) Install(ctx context.Context, webAppDir string) error {
	if err := b.Runner.Run(ctx, webAppDir, "npm", "install"); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("npm not found; install node to build the client")
		}
		return fmt.Errorf("npm install: %w", err)
	}
	return nil
}

// Build runs the production front-end build with the given environment.
// The environment replaces the process env entirely so unset variables stay
// unset inside the build.
func (b Builder) Build(ctx context.Context, webAppDir string, env []string) error {
	if err := b.Runner.RunEnv(ctx, webAppDir, env, "npm", "run", "build"); err != nil {
		return fmt.Errorf("npm run build: %w", err)
	}
	return nil
}

// PublishStatic replaces the static assets directory with the freshly built
// output.
func PublishStatic(builtDir, staticDir string) error {
	if !fileops.DirExists(builtDir) {
		return fmt.Errorf("build output %s does not exist", builtDir)
	}
	if err := fileops.ReplaceDir(builtDir, staticDir); err != nil {
		return fmt.Errorf("publish static assets: %w", err)
	}
	return nil
}
