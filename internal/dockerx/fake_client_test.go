// Where: internal/dockerx/fake_client_test.go
// What: Shared fake Docker client and runner for package tests.
package dockerx

import (
	"context"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

type createCall struct {
	name    string
	config  *container.Config
	host    *container.HostConfig
	network *network.NetworkingConfig
}

type fakeClient struct {
	containers []container.Summary
	inspect    map[string]container.InspectResponse
	networks   []network.Summary

	listFilters  []filters.Args
	stopped      []string
	removed      []string
	created      []createCall
	started      []string
	networksMade []string

	containerPruneCalls int
	imagePruneFilters   []filters.Args
	networkPruneCalls   int
	cachePruneCalls     int

	pruneContainers container.PruneReport
	pruneImages     image.PruneReport
	pruneNetworks   network.PruneReport
	pruneCache      build.CachePruneReport
	diskUsage       types.DiskUsage

	failImagesPrune error
}

func (f *fakeClient) ContainerList(_ context.Context, options container.ListOptions) ([]container.Summary, error) {
	f.listFilters = append(f.listFilters, options.Filters)
	return f.containers, nil
}

func (f *fakeClient) ContainerCreate(
	_ context.Context,
	config *container.Config,
	hostConfig *container.HostConfig,
	networkingConfig *network.NetworkingConfig,
	_ *ocispec.Platform,
	containerName string,
) (container.CreateResponse, error) {
	f.created = append(f.created, createCall{
		name:    containerName,
		config:  config,
		host:    hostConfig,
		network: networkingConfig,
	})
	return container.CreateResponse{ID: "id-" + containerName}, nil
}

func (f *fakeClient) ContainerStart(_ context.Context, containerID string, _ container.StartOptions) error {
	f.started = append(f.started, containerID)
	return nil
}

func (f *fakeClient) ContainerStop(_ context.Context, containerID string, _ container.StopOptions) error {
	f.stopped = append(f.stopped, containerID)
	return nil
}

func (f *fakeClient) ContainerRemove(_ context.Context, containerID string, _ container.RemoveOptions) error {
	f.removed = append(f.removed, containerID)
	return nil
}

func (f *fakeClient) ContainerInspect(_ context.Context, containerID string) (container.InspectResponse, error) {
	return f.inspect[containerID], nil
}

func (f *fakeClient) NetworkList(_ context.Context, _ network.ListOptions) ([]network.Summary, error) {
	return f.networks, nil
}

func (f *fakeClient) NetworkCreate(_ context.Context, name string, _ network.CreateOptions) (network.CreateResponse, error) {
	f.networksMade = append(f.networksMade, name)
	return network.CreateResponse{ID: "net-" + name}, nil
}

func (f *fakeClient) ContainersPrune(_ context.Context, _ filters.Args) (container.PruneReport, error) {
	f.containerPruneCalls++
	return f.pruneContainers, nil
}

func (f *fakeClient) ImagesPrune(_ context.Context, pruneFilters filters.Args) (image.PruneReport, error) {
	f.imagePruneFilters = append(f.imagePruneFilters, pruneFilters)
	if f.failImagesPrune != nil {
		return image.PruneReport{}, f.failImagesPrune
	}
	return f.pruneImages, nil
}

func (f *fakeClient) NetworksPrune(_ context.Context, _ filters.Args) (network.PruneReport, error) {
	f.networkPruneCalls++
	return f.pruneNetworks, nil
}

func (f *fakeClient) BuildCachePrune(_ context.Context, _ build.CachePruneOptions) (*build.CachePruneReport, error) {
	f.cachePruneCalls++
	return &f.pruneCache, nil
}

func (f *fakeClient) DiskUsage(_ context.Context, _ types.DiskUsageOptions) (types.DiskUsage, error) {
	return f.diskUsage, nil
}

type cmdCall struct {
	dir  string
	name string
	args []string
}

type fakeRunner struct {
	calls []cmdCall
	fail  error
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) error {
	f.calls = append(f.calls, cmdCall{dir: dir, name: name, args: args})
	return f.fail
}

func (f *fakeRunner) RunEnv(_ context.Context, dir string, _ []string, name string, args ...string) error {
	f.calls = append(f.calls, cmdCall{dir: dir, name: name, args: args})
	return f.fail
}

func (f *fakeRunner) RunOutput(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, cmdCall{dir: dir, name: name, args: args})
	return nil, f.fail
}

func namedContainer(id, name string) container.Summary {
	return container.Summary{ID: id, Names: []string{"/" + name}}
}
