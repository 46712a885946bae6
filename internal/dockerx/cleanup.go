// Where: internal/dockerx/cleanup.go
// What: Routine disk cleanup for a deployment host.
// Why: Reclaim space from logs, stopped containers, and build leftovers.
package dockerx

import (
	"context"
	"fmt"
	"os"

	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/filters"
)

// CleanupReport summarizes what a cleanup pass removed. Warnings collect
// sub-steps that failed; every sub-step is independently best-effort.
type CleanupReport struct {
	LogsTruncated     []string
	ContainersDeleted []string
	ImagesDeleted     int
	NetworksDeleted   []string
	BuildCacheDeleted int
	SpaceReclaimed    uint64
	Warnings          []string
}

// Cleanup truncates the log files of the named containers and prunes
// stopped containers, dangling images, build cache, and unused networks.
// Sub-steps that find nothing to do, or fail, do not stop the pass.
func Cleanup(ctx context.Context, client Client, containerNames []string) CleanupReport {
	report := CleanupReport{}

	for _, name := range containerNames {
		path, err := truncateContainerLog(ctx, client, name)
		if err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("truncate logs of %s: %v", name, err))
			continue
		}
		if path != "" {
			report.LogsTruncated = append(report.LogsTruncated, name)
		}
	}

	none := filters.NewArgs()

	if pruned, err := client.ContainersPrune(ctx, none); err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("prune containers: %v", err))
	} else {
		report.ContainersDeleted = pruned.ContainersDeleted
		report.SpaceReclaimed += pruned.SpaceReclaimed
	}

	dangling := filters.NewArgs(filters.Arg("dangling", "true"))
	if pruned, err := client.ImagesPrune(ctx, dangling); err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("prune images: %v", err))
	} else {
		report.ImagesDeleted = len(pruned.ImagesDeleted)
		report.SpaceReclaimed += pruned.SpaceReclaimed
	}

	if pruned, err := client.BuildCachePrune(ctx, build.CachePruneOptions{}); err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("prune build cache: %v", err))
	} else if pruned != nil {
		report.BuildCacheDeleted = len(pruned.CachesDeleted)
		report.SpaceReclaimed += pruned.SpaceReclaimed
	}

	if pruned, err := client.NetworksPrune(ctx, none); err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("prune networks: %v", err))
	} else {
		report.NetworksDeleted = pruned.NetworksDeleted
	}

	return report
}

// truncateContainerLog empties the json log file of a named container.
// Returns the truncated path, or "" when the container does not exist.
func truncateContainerLog(ctx context.Context, client Client, name string) (string, error) {
	id, found, err := FindContainer(ctx, client, name)
	if err != nil {
		return "", err
	}
	if !found {
		return "", nil
	}
	inspected, err := client.ContainerInspect(ctx, id)
	if err != nil {
		return "", err
	}
	if inspected.LogPath == "" {
		return "", nil
	}
	if err := os.Truncate(inspected.LogPath, 0); err != nil {
		return "", err
	}
	return inspected.LogPath, nil
}
