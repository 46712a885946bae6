// Where: cmd/waspdock/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"io"
	"os"

	"github.com/waspdock/waspdock/internal/app"
	"github.com/waspdock/waspdock/internal/backup"
	"github.com/waspdock/waspdock/internal/dockerx"
	"github.com/waspdock/waspdock/internal/execx"
)

var (
	getwd           = os.Getwd
	newDockerClient = dockerx.New
)

// buildDependencies constructs all runtime dependencies required by the CLI.
// Returns the dependencies, a closer for cleanup, and any initialization
// error.
func buildDependencies() (app.Dependencies, io.Closer, error) {
	projectDir, err := getwd()
	if err != nil {
		return app.Dependencies{}, nil, err
	}

	client, err := newDockerClient()
	if err != nil {
		return app.Dependencies{}, nil, err
	}

	deps := app.Dependencies{
		ProjectDir:      projectDir,
		Out:             os.Stdout,
		Docker:          client,
		Runner:          execx.ExecRunner{},
		Environ:         os.Environ,
		NewBackupClient: backup.NewS3Client,
	}
	return deps, asCloser(client), nil
}

// asCloser attempts to cast the Docker client to an io.Closer.
func asCloser(client dockerx.Client) io.Closer {
	if closer, ok := client.(io.Closer); ok {
		return closer
	}
	return nil
}
