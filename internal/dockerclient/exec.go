package dockerclient

import (
	"bytes"
	"context"
	"fmt"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
)

// RunCommand runs argv in a throwaway container of the given image and
// returns the combined output and the exit code. Used by verification to
// probe the provisioned environment.
func (dc *dockerClient) RunCommand(ctx context.Context, imageTag string, argv []string) (string, int64, error) {
	cfg := &container.Config{
		Image: imageTag,
		Cmd:   argv,
	}

	created, err := dc.client.ContainerCreate(ctx, cfg, nil, nil, nil, resolveContainerName(imageTag))
	if err != nil {
		return "", 0, fmt.Errorf("container create: %w", err)
	}
	id := created.ID

	defer func() {
		_ = dc.client.ContainerRemove(context.Background(), id, container.RemoveOptions{
			Force: true,
		})
	}()

	if err := dc.client.ContainerStart(ctx, id, container.StartOptions{}); err != nil {
		return "", 0, fmt.Errorf("container start: %w", err)
	}

	var exitCode int64
	statusCh, errCh := dc.client.ContainerWait(ctx, id, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		if err != nil {
			return "", 0, fmt.Errorf("container wait: %w", err)
		}
	case st := <-statusCh:
		exitCode = st.StatusCode
	case <-ctx.Done():
		return "", 0, ctx.Err()
	}

	logs, err := dc.client.ContainerLogs(ctx, id, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
	})
	if err != nil {
		return "", exitCode, fmt.Errorf("container logs: %w", err)
	}
	defer logs.Close()

	var out bytes.Buffer
	if _, err := stdcopy.StdCopy(&out, &out, logs); err != nil {
		return "", exitCode, fmt.Errorf("read logs: %w", err)
	}

	return out.String(), exitCode, nil
}
