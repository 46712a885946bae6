// Where: internal/dockerx/build.go
// What: Image builds through the docker CLI.
// Why: Keep BuildKit progress output and builder selection with the CLI.
package dockerx

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/waspdock/waspdock/internal/execx"
)

// BuildImage builds an image from dir and tags it. An empty dockerfile uses
// the default Dockerfile in the build context.
func BuildImage(ctx context.Context, runner execx.CommandRunner, dir, tag, dockerfile string) error {
	args := []string{"build", "-t", tag}
	if dockerfile != "" {
		args = append(args, "-f", dockerfile)
	}
	args = append(args, ".")
	if err := runner.Run(ctx, dir, "docker", args...); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("docker not found; install docker to build images")
		}
		return fmt.Errorf("build image %s: %w", tag, err)
	}
	return nil
}

// CopyFromContainer copies the contents of a container path into a host
// directory via docker cp. The trailing /. copies the subtree contents
// rather than the directory itself.
func CopyFromContainer(ctx context.Context, runner execx.CommandRunner, containerName, containerDir, hostDir string) error {
	source := fmt.Sprintf("%s:%s/.", containerName, containerDir)
	if output, err := runner.RunOutput(ctx, "", "docker", "cp", source, hostDir); err != nil {
		return fmt.Errorf("copy %s: %w\n%s", source, err, output)
	}
	return nil
}
