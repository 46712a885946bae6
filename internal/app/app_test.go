// Where: internal/app/app_test.go
// What: CLI dispatch tests against fakes.
package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

type fakeDocker struct {
	created []string
	started []string
	pruned  int
}

func (f *fakeDocker) ContainerList(_ context.Context, _ container.ListOptions) ([]container.Summary, error) {
	return nil, nil
}

func (f *fakeDocker) ContainerCreate(
	_ context.Context,
	_ *container.Config,
	_ *container.HostConfig,
	_ *network.NetworkingConfig,
	_ *ocispec.Platform,
	name string,
) (container.CreateResponse, error) {
	f.created = append(f.created, name)
	return container.CreateResponse{ID: "id-" + name}, nil
}

func (f *fakeDocker) ContainerStart(_ context.Context, id string, _ container.StartOptions) error {
	f.started = append(f.started, id)
	return nil
}

func (f *fakeDocker) ContainerStop(_ context.Context, _ string, _ container.StopOptions) error {
	return nil
}

func (f *fakeDocker) ContainerRemove(_ context.Context, _ string, _ container.RemoveOptions) error {
	return nil
}

func (f *fakeDocker) ContainerInspect(_ context.Context, _ string) (container.InspectResponse, error) {
	return container.InspectResponse{}, nil
}

func (f *fakeDocker) NetworkList(_ context.Context, _ network.ListOptions) ([]network.Summary, error) {
	return nil, nil
}

func (f *fakeDocker) NetworkCreate(_ context.Context, name string, _ network.CreateOptions) (network.CreateResponse, error) {
	return network.CreateResponse{ID: "net-" + name}, nil
}

func (f *fakeDocker) ContainersPrune(_ context.Context, _ filters.Args) (container.PruneReport, error) {
	f.pruned++
	return container.PruneReport{}, nil
}

func (f *fakeDocker) ImagesPrune(_ context.Context, _ filters.Args) (image.PruneReport, error) {
	return image.PruneReport{}, nil
}

func (f *fakeDocker) NetworksPrune(_ context.Context, _ filters.Args) (network.PruneReport, error) {
	return network.PruneReport{}, nil
}

func (f *fakeDocker) BuildCachePrune(_ context.Context, _ build.CachePruneOptions) (*build.CachePruneReport, error) {
	return &build.CachePruneReport{}, nil
}

func (f *fakeDocker) DiskUsage(_ context.Context, _ types.DiskUsageOptions) (types.DiskUsage, error) {
	return types.DiskUsage{}, nil
}

type fakeRunner struct {
	commands []string
	fail     map[string]error
}

func (f *fakeRunner) record(name string, args []string) error {
	key := name
	if len(args) > 0 {
		key += " " + args[0]
	}
	f.commands = append(f.commands, key)
	return f.fail[key]
}

func (f *fakeRunner) Run(_ context.Context, _, name string, args ...string) error {
	return f.record(name, args)
}

func (f *fakeRunner) RunEnv(_ context.Context, _ string, _ []string, name string, args ...string) error {
	return f.record(name, args)
}

func (f *fakeRunner) RunOutput(_ context.Context, _, name string, args ...string) ([]byte, error) {
	return nil, f.record(name, args)
}

func testDeps(out *bytes.Buffer, docker *fakeDocker, runner *fakeRunner) Dependencies {
	return Dependencies{
		Out:     out,
		Docker:  docker,
		Runner:  runner,
		Environ: func() []string { return []string{"PATH=/usr/bin"} },
		Now:     func() time.Time { return time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC) },
	}
}

// newProject lays out a deployable project with a config pointing the
// uploads directory inside the temp tree.
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	cfgYAML := "app: crm\nuploads:\n  host_dir: " + filepath.Join(dir, "uploads") + "\n"
	writeFile(t, filepath.Join(dir, "waspdock.yml"), cfgYAML)
	writeFile(t, filepath.Join(dir, ".env.server"), "DATABASE_URL=postgres://db/crm\n")
	writeFile(t, filepath.Join(dir, ".env.client"), "REACT_APP_TITLE=CRM\n")

	buildDir := filepath.Join(dir, ".wasp", "build", "web-app", "build")
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(buildDir, "index.html"), "<html></html>")
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunVersion(t *testing.T) {
	out := &bytes.Buffer{}
	code := Run([]string{"version"}, testDeps(out, &fakeDocker{}, &fakeRunner{}))
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, out.String())
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Fatal("version output is empty")
	}
}

func TestRunInitScaffolds(t *testing.T) {
	dir := t.TempDir()
	out := &bytes.Buffer{}
	code := Run([]string{"init", "--app", "crm", "-C", dir}, testDeps(out, &fakeDocker{}, &fakeRunner{}))
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, out.String())
	}
	for _, name := range []string{"waspdock.yml", "client.Dockerfile", "nginx.conf"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("%s not scaffolded: %v", name, err)
		}
	}
}

func TestRunStatusWithoutDeploy(t *testing.T) {
	dir := t.TempDir()
	out := &bytes.Buffer{}
	code := Run([]string{"status", "-C", dir}, testDeps(out, &fakeDocker{}, &fakeRunner{}))
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, out.String())
	}
	if !strings.Contains(out.String(), "no deploy recorded") {
		t.Fatalf("missing empty-state message: %s", out.String())
	}
	if !strings.Contains(out.String(), "absent") {
		t.Fatalf("missing container states: %s", out.String())
	}
}

func TestRunDeploySuccess(t *testing.T) {
	dir := newProject(t)
	docker := &fakeDocker{}
	out := &bytes.Buffer{}

	code := Run([]string{"deploy", "-C", dir}, testDeps(out, docker, &fakeRunner{}))
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, out.String())
	}
	if len(docker.created) != 2 {
		t.Fatalf("expected two containers, got %v", docker.created)
	}
	if !strings.Contains(out.String(), "crm deployed") {
		t.Fatalf("missing success message: %s", out.String())
	}
}

func TestRunDeployFailureExitsNonZero(t *testing.T) {
	dir := newProject(t)
	runner := &fakeRunner{fail: map[string]error{"wasp build": errors.New("exit status 1")}}
	out := &bytes.Buffer{}

	code := Run([]string{"deploy", "-C", dir}, testDeps(out, &fakeDocker{}, runner))
	if code != 1 {
		t.Fatalf("expected exit 1, got %d: %s", code, out.String())
	}
	if !strings.Contains(out.String(), "Build application artifacts") {
		t.Fatalf("failing step not reported: %s", out.String())
	}
}

func TestRunPruneRequiresConfirmation(t *testing.T) {
	orig := isTerminal
	isTerminal = func(*os.File) bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	docker := &fakeDocker{}
	out := &bytes.Buffer{}
	code := Run([]string{"prune", "-C", t.TempDir()}, testDeps(out, docker, &fakeRunner{}))
	if code != 1 {
		t.Fatalf("expected exit 1, got %d: %s", code, out.String())
	}
	if docker.pruned != 0 {
		t.Fatal("prune must not run without confirmation")
	}
	if !strings.Contains(out.String(), "--yes") {
		t.Fatalf("missing non-interactive hint: %s", out.String())
	}
}

func TestRunPruneWithYes(t *testing.T) {
	docker := &fakeDocker{}
	out := &bytes.Buffer{}
	code := Run([]string{"prune", "--yes", "-C", t.TempDir()}, testDeps(out, docker, &fakeRunner{}))
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, out.String())
	}
	if docker.pruned != 1 {
		t.Fatal("prune did not run")
	}
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	out := &bytes.Buffer{}
	code := Run([]string{"deploy", "--bogus"}, testDeps(out, &fakeDocker{}, &fakeRunner{}))
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}
