// Where: internal/dockerx/containers.go
// What: Container lookup and replacement helpers.
// Why: Guarantee at most one container per managed name.
package dockerx

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
)

// FindContainer returns the ID of the container with the exact name, if any.
// Stopped containers are included.
func FindContainer(ctx context.Context, client Client, name string) (string, bool, error) {
	nameFilter := filters.NewArgs(filters.Arg("name", name))
	containers, err := client.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: nameFilter,
	})
	if err != nil {
		return "", false, err
	}
	// The name filter matches substrings; require an exact name.
	for _, ctr := range containers {
		for _, ctrName := range ctr.Names {
			if strings.TrimPrefix(ctrName, "/") == name {
				return ctr.ID, true, nil
			}
		}
	}
	return "", false, nil
}

// StopAndRemove stops and removes the named container. A missing container
// is not an error.
func StopAndRemove(ctx context.Context, client Client, name string) error {
	id, found, err := FindContainer(ctx, client, name)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if err := client.ContainerStop(ctx, id, container.StopOptions{}); err != nil {
		return fmt.Errorf("stop %s: %w", name, err)
	}
	if err := client.ContainerRemove(ctx, id, container.RemoveOptions{}); err != nil {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}
