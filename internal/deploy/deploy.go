// Where: internal/deploy/deploy.go
// What: The single-host deployment sequence.
// Why: Express the deploy as an ordered list of fatal/best-effort steps.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/waspdock/waspdock/internal/config"
	"github.com/waspdock/waspdock/internal/dockerx"
	"github.com/waspdock/waspdock/internal/envfile"
	"github.com/waspdock/waspdock/internal/execx"
	"github.com/waspdock/waspdock/internal/fileops"
	"github.com/waspdock/waspdock/internal/sequence"
	"github.com/waspdock/waspdock/internal/state"
	"github.com/waspdock/waspdock/internal/uploads"
	"github.com/waspdock/waspdock/internal/wasp"
	"github.com/waspdock/waspdock/internal/web"
)

const (
	// The generated server listens on 3001; the client image serves on 80.
	serverContainerPort = 3001
	clientContainerPort = 80

	// Lets the server reach services on the host from inside the container.
	hostGatewayAlias = "host.docker.internal:host-gateway"

	clientWebRoot    = "/usr/share/nginx/html"
	clientUploadsDir = "/var/www/uploads"

	stepCheckProject = "Check project directory"
)

// BackupFunc uploads the given directory to off-host storage and returns
// the stored object key.
type BackupFunc func(ctx context.Context, dir string) (string, error)

// Sequencer runs the full deployment for one project.
type Sequencer struct {
	Docker  dockerx.Client
	Runner  execx.CommandRunner
	Console Console
	Environ func() []string
	Backup  BackupFunc
	Now     func() time.Time
}

// Console is the subset of ui.Console the sequencer reports through.
type Console interface {
	Step(name string)
	Success(msg string)
	Warn(msg string)
	Error(msg string)
	Info(msg string)
	ItemPlain(msg string)
}

// Run executes the deploy sequence and records the outcome. The returned
// error is the *sequence.FatalError of the first failing fatal step, or nil.
func (s *Sequencer) Run(ctx context.Context, cfg config.Config, projectDir string) error {
	err := sequence.Run(ctx, s.Steps(cfg, projectDir), reporter{s.Console})

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	rec := state.Record{
		App:         cfg.App,
		Time:        now(),
		Outcome:     "success",
		ServerImage: cfg.Server.Image,
		ClientImage: cfg.Client.Image,
	}
	if err != nil {
		rec.Outcome = "failed"
		var fatal *sequence.FatalError
		if errors.As(err, &fatal) {
			rec.FailedStep = fatal.Step
		}
	}
	// A missing project directory must not be created just to record the
	// failure in it.
	if rec.FailedStep != stepCheckProject {
		if saveErr := state.Save(projectDir, rec); saveErr != nil {
			s.Console.Warn(fmt.Sprintf("record deploy state: %v", saveErr))
		}
	}

	if err == nil {
		s.Console.Success(fmt.Sprintf("%s deployed", cfg.App))
	}
	return err
}

// Steps builds the ordered step list for one deploy.
func (s *Sequencer) Steps(cfg config.Config, projectDir string) []sequence.Step {
	migrator := uploads.Migrator{Docker: s.Docker, Runner: s.Runner}
	waspBuilder := wasp.Builder{Runner: s.Runner}
	webBuilder := web.Builder{Runner: s.Runner}
	staticDir := filepath.Join(projectDir, cfg.Client.StaticDir)

	steps := []sequence.Step{
		{
			Name:     stepCheckProject,
			Severity: sequence.Fatal,
			Run: func(context.Context) error {
				if !fileops.DirExists(projectDir) {
					return fmt.Errorf("project directory %s does not exist", projectDir)
				}
				return nil
			},
		},
		{
			Name:     "Build application artifacts",
			Severity: sequence.Fatal,
			Run: func(ctx context.Context) error {
				return waspBuilder.Build(ctx, projectDir)
			},
		},
		{
			Name:     "Ensure uploads directory",
			Severity: sequence.BestEffort,
			Run: func(context.Context) error {
				return migrator.EnsureHostDir(cfg.Uploads.HostDir)
			},
		},
		{
			Name:     "Migrate uploads from previous server",
			Severity: sequence.BestEffort,
			Run: func(ctx context.Context) error {
				return migrator.PullFromContainer(ctx, cfg.Server.Container, cfg.Uploads.ContainerDir, cfg.Uploads.HostDir)
			},
		},
	}

	if cfg.Backup.Enabled && s.Backup != nil {
		steps = append(steps, sequence.Step{
			Name:     "Back up uploads",
			Severity: sequence.BestEffort,
			Run: func(ctx context.Context) error {
				key, err := s.Backup(ctx, cfg.Uploads.HostDir)
				if err != nil {
					return err
				}
				s.Console.Info(fmt.Sprintf("uploads backed up to %s", key))
				return nil
			},
		})
	}

	steps = append(steps,
		sequence.Step{
			Name:     "Remove previous containers",
			Severity: sequence.BestEffort,
			Run: func(ctx context.Context) error {
				return errors.Join(
					dockerx.StopAndRemove(ctx, s.Docker, cfg.Server.Container),
					dockerx.StopAndRemove(ctx, s.Docker, cfg.Client.Container),
				)
			},
		},
		sequence.Step{
			Name:     "Build server image",
			Severity: sequence.Fatal,
			Run: func(ctx context.Context) error {
				return dockerx.BuildImage(ctx, s.Runner, wasp.BuildDir(projectDir), cfg.Server.Image, "")
			},
		},
		sequence.Step{
			Name:     "Ensure network",
			Severity: sequence.Fatal,
			Run: func(ctx context.Context) error {
				return dockerx.EnsureNetwork(ctx, s.Docker, cfg.Network)
			},
		},
		sequence.Step{
			Name:     "Start server container",
			Severity: sequence.Fatal,
			Run: func(ctx context.Context) error {
				vars, err := envfile.Load(filepath.Join(projectDir, cfg.Server.EnvFile))
				if err != nil {
					return err
				}
				_, err = dockerx.RunContainer(ctx, s.Docker, dockerx.RunOptions{
					Name:          cfg.Server.Container,
					Image:         cfg.Server.Image,
					Env:           envfile.Environ(vars),
					Binds:         []string{cfg.Uploads.HostDir + ":" + cfg.Uploads.ContainerDir},
					HostPort:      cfg.Server.Port,
					ContainerPort: serverContainerPort,
					Network:       cfg.Network,
					ExtraHosts:    []string{hostGatewayAlias},
				})
				return err
			},
		},
		sequence.Step{
			Name:     "Install web dependencies",
			Severity: sequence.Fatal,
			Run: func(ctx context.Context) error {
				return webBuilder.Install(ctx, wasp.WebAppDir(projectDir))
			},
		},
		sequence.Step{
			Name:     "Build web app",
			Severity: sequence.Fatal,
			Run: func(ctx context.Context) error {
				vars, err := envfile.Load(filepath.Join(projectDir, cfg.Client.EnvFile))
				if err != nil {
					return err
				}
				env := envfile.ClientBuildEnv(s.environ(), vars)
				return webBuilder.Build(ctx, wasp.WebAppDir(projectDir), env)
			},
		},
		sequence.Step{
			Name:     "Publish static assets",
			Severity: sequence.Fatal,
			Run: func(context.Context) error {
				return web.PublishStatic(wasp.WebAppBuildDir(projectDir), staticDir)
			},
		},
		sequence.Step{
			Name:     "Build client image",
			Severity: sequence.Fatal,
			Run: func(ctx context.Context) error {
				return dockerx.BuildImage(ctx, s.Runner, projectDir, cfg.Client.Image, cfg.Client.Dockerfile)
			},
		},
		sequence.Step{
			Name:     "Start client container",
			Severity: sequence.Fatal,
			Run: func(ctx context.Context) error {
				_, err := dockerx.RunContainer(ctx, s.Docker, dockerx.RunOptions{
					Name:  cfg.Client.Container,
					Image: cfg.Client.Image,
					Binds: []string{
						staticDir + ":" + clientWebRoot + ":ro",
						cfg.Uploads.HostDir + ":" + clientUploadsDir + ":ro",
					},
					HostPort:      cfg.Client.Port,
					ContainerPort: clientContainerPort,
					Network:       cfg.Network,
				})
				return err
			},
		},
		sequence.Step{
			Name:     "Report usage",
			Severity: sequence.BestEffort,
			Run: func(ctx context.Context) error {
				return s.report(ctx, cfg)
			},
		},
	)

	return steps
}

func (s *Sequencer) report(ctx context.Context, cfg config.Config) error {
	statuses, err := dockerx.ContainerStates(ctx, s.Docker, []string{cfg.Server.Container, cfg.Client.Container})
	if err != nil {
		return err
	}
	for _, status := range statuses {
		line := fmt.Sprintf("%-24s %s", status.Name, status.State)
		if status.Image != "" {
			line += "  " + status.Image
		}
		s.Console.ItemPlain(line)
	}

	du, err := dockerx.Usage(ctx, s.Docker)
	if err != nil {
		return err
	}
	for _, line := range dockerx.UsageSummary(du) {
		s.Console.ItemPlain(line)
	}
	return nil
}

func (s *Sequencer) environ() []string {
	if s.Environ != nil {
		return s.Environ()
	}
	return nil
}

type reporter struct {
	console Console
}

func (r reporter) StepStart(name string) {
	r.console.Step(name)
}

func (r reporter) StepDone(string) {}

func (r reporter) StepWarn(name string, err error) {
	r.console.Warn(fmt.Sprintf("%s: %v (continuing)", name, err))
}

func (r reporter) StepFailed(name string, err error) {
	r.console.Error(fmt.Sprintf("%s: %v", name, err))
}
