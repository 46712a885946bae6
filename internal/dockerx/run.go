// Where: internal/dockerx/run.go
// What: Detached container startup with ports, binds, and network.
// Why: Replace docker run shell-outs with explicit SDK calls.
package dockerx

import (
	"context"
	"fmt"
	"strconv"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/go-connections/nat"
)

// RunOptions describes a detached container to create and start.
type RunOptions struct {
	Name          string
	Image         string
	Env           []string
	Binds         []string
	HostPort      int
	ContainerPort int
	Network       string
	ExtraHosts    []string
}

// RunContainer creates and starts a container in detached mode, returning
// the new container ID. The caller is responsible for removing any previous
// container with the same name first.
func RunContainer(ctx context.Context, client Client, opts RunOptions) (string, error) {
	port, err := nat.NewPort("tcp", strconv.Itoa(opts.ContainerPort))
	if err != nil {
		return "", fmt.Errorf("container port %d: %w", opts.ContainerPort, err)
	}

	cfg := &container.Config{
		Image:        opts.Image,
		Env:          opts.Env,
		ExposedPorts: nat.PortSet{port: struct{}{}},
	}
	hostCfg := &container.HostConfig{
		Binds: opts.Binds,
		PortBindings: nat.PortMap{
			port: []nat.PortBinding{{HostPort: strconv.Itoa(opts.HostPort)}},
		},
		ExtraHosts:    opts.ExtraHosts,
		RestartPolicy: container.RestartPolicy{Name: container.RestartPolicyUnlessStopped},
	}
	var netCfg *network.NetworkingConfig
	if opts.Network != "" {
		netCfg = &network.NetworkingConfig{
			EndpointsConfig: map[string]*network.EndpointSettings{
				opts.Network: {},
			},
		}
	}

	created, err := client.ContainerCreate(ctx, cfg, hostCfg, netCfg, nil, opts.Name)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", opts.Name, err)
	}
	if err := client.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return "", fmt.Errorf("start %s: %w", opts.Name, err)
	}
	return created.ID, nil
}

// EnsureNetwork creates the named bridge network if it does not exist.
func EnsureNetwork(ctx context.Context, client Client, name string) error {
	networks, err := client.NetworkList(ctx, network.ListOptions{})
	if err != nil {
		return err
	}
	for _, nw := range networks {
		if nw.Name == name {
			return nil
		}
	}
	if _, err := client.NetworkCreate(ctx, name, network.CreateOptions{Driver: "bridge"}); err != nil {
		return fmt.Errorf("create network %s: %w", name, err)
	}
	return nil
}
