// Where: internal/wasp/wasp.go
// What: Wasp build tool invocation and generated path layout.
// Why: Own the .wasp/build tree knowledge in one place.
package wasp

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/waspdock/waspdock/internal/execx"
)

// BuildDir is where wasp build places the deployable server artifacts,
// including the server Dockerfile.
func BuildDir(projectDir string) string {
	return filepath.Join(projectDir, ".wasp", "build")
}

// WebAppDir is the generated front-end project inside the build tree.
func WebAppDir(projectDir string) string {
	return filepath.Join(BuildDir(projectDir), "web-app")
}

// WebAppBuildDir holds the static assets produced by the front-end build.
func WebAppBuildDir(projectDir string) string {
	return filepath.Join(WebAppDir(projectDir), "build")
}

// Builder invokes the wasp CLI.
type Builder struct {
	Runner execx.CommandRunner
}

// Build regenerates server and web-app artifacts under .wasp/build.
func (b Builder) Build(ctx context.Context, projectDir string) error {
	if err := b.Runner.Run(ctx, projectDir, "wasp", "build"); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("wasp not found; install the wasp CLI to build the app")
		}
		return fmt.Errorf("wasp build: %w", err)
	}
	return nil
}
