// Where: internal/dockerx/usage.go
// What: Disk and container usage reporting.
// Why: Give the post-deploy summary the data docker system df would show.
package dockerx

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types"
	"github.com/docker/go-units"
)

// ContainerStatus is a one-line state summary for a managed container.
type ContainerStatus struct {
	Name  string
	State string
	Image string
}

// ContainerStates reports the state of each named container. Missing
// containers are reported as absent rather than omitted.
func ContainerStates(ctx context.Context, client Client, names []string) ([]ContainerStatus, error) {
	statuses := make([]ContainerStatus, 0, len(names))
	for _, name := range names {
		id, found, err := FindContainer(ctx, client, name)
		if err != nil {
			return nil, err
		}
		if !found {
			statuses = append(statuses, ContainerStatus{Name: name, State: "absent"})
			continue
		}
		inspected, err := client.ContainerInspect(ctx, id)
		if err != nil {
			return nil, err
		}
		status := ContainerStatus{Name: name}
		if inspected.Config != nil {
			status.Image = inspected.Config.Image
		}
		if inspected.State != nil {
			status.State = inspected.State.Status
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// Usage fetches the Docker disk usage report.
func Usage(ctx context.Context, client Client) (types.DiskUsage, error) {
	return client.DiskUsage(ctx, types.DiskUsageOptions{})
}

// UsageSummary formats a Docker disk usage report as human-readable lines.
func UsageSummary(du types.DiskUsage) []string {
	var containerSize int64
	for _, ctr := range du.Containers {
		containerSize += ctr.SizeRw
	}
	var cacheSize int64
	for _, entry := range du.BuildCache {
		if !entry.Shared {
			cacheSize += entry.Size
		}
	}
	return []string{
		fmt.Sprintf("Images:      %d (%s)", len(du.Images), units.HumanSize(float64(du.LayersSize))),
		fmt.Sprintf("Containers:  %d (%s)", len(du.Containers), units.HumanSize(float64(containerSize))),
		fmt.Sprintf("Volumes:     %d", len(du.Volumes)),
		fmt.Sprintf("Build cache: %d entries (%s)", len(du.BuildCache), units.HumanSize(float64(cacheSize))),
	}
}
