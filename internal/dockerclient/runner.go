package dockerclient

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/moby/term"
)

const (
	dockerMaxNameLen = 255
	shortLen         = 6       // length of the hash-like suffix
	tailMarker       = "tail-" // visible indicator that we trimmed the left side
)

type DockerContainerRunner interface {
	RunInteractive(ctx context.Context, imageTag string, binds []string) (int64, error)
	RunCommand(ctx context.Context, imageTag string, argv []string) (string, int64, error)
}

// RunInteractive emulates:
//
//	docker run --rm -it -v ...binds... IMAGE
//
// - uses the image's default CMD (the provisioned shell)
// - attaches with a real TTY
// - removes the container on exit
func (dc *dockerClient) RunInteractive(ctx context.Context, imageTag string, binds []string) (int64, error) {
	cfg := &container.Config{
		Image:        imageTag,
		Tty:          true,
		OpenStdin:    true,
		AttachStdin:  true,
		AttachStdout: true,
		AttachStderr: true,
		// use image's CMD (interactive shell)
	}

	hostCfg := &container.HostConfig{
		Binds: binds,
	}

	created, err := dc.client.ContainerCreate(ctx, cfg, hostCfg, nil, nil, resolveContainerName(imageTag))
	if err != nil {
		return 0, fmt.Errorf("container create: %w", err)
	}
	id := created.ID

	defer func() {
		_ = dc.client.ContainerRemove(context.Background(), id, container.RemoveOptions{
			Force: true,
		})
	}()

	// Put the local terminal in raw mode so the shell gets real key events.
	inFd, isTerm := term.GetFdInfo(os.Stdin)
	var oldState *term.State
	if isTerm {
		oldState, err = term.MakeRaw(inFd)
		if err != nil {
			return 0, fmt.Errorf("make raw: %w", err)
		}
		defer term.RestoreTerminal(inFd, oldState)
	}

	// Attach BEFORE start (like docker run)
	attach, err := dc.client.ContainerAttach(ctx, id, container.AttachOptions{
		Stream: true,
		Stdin:  true,
		Stdout: true,
		Stderr: true,
		Logs:   false,
	})
	if err != nil {
		return 0, fmt.Errorf("container attach: %w", err)
	}
	defer attach.Close()

	if err := dc.client.ContainerStart(ctx, id, container.StartOptions{}); err != nil {
		return 0, fmt.Errorf("container start: %w", err)
	}

	// Initial resize AFTER start so it takes effect immediately.
	if isTerm {
		if ws, err := term.GetWinsize(inFd); err == nil {
			_ = dc.client.ContainerResize(ctx, id, container.ResizeOptions{
				Height: uint(ws.Height),
				Width:  uint(ws.Width),
			})
		}
	}

	// Watch for future resizes (SIGWINCH)
	if isTerm {
		resizeCh := make(chan os.Signal, 1)
		signal.Notify(resizeCh, syscall.SIGWINCH)
		go func() {
			for range resizeCh {
				if ws, err := term.GetWinsize(inFd); err == nil {
					_ = dc.client.ContainerResize(context.Background(), id, container.ResizeOptions{
						Height: uint(ws.Height),
						Width:  uint(ws.Width),
					})
				}
			}
		}()
	}

	// Let Ctrl+C go *into* the shell; only treat SIGTERM as "kill from outside".
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGTERM)
	go func() {
		<-stopCh
		_ = dc.client.ContainerKill(context.Background(), id, "SIGTERM")
	}()

	// stdin → container
	go func() {
		_, _ = io.Copy(attach.Conn, os.Stdin)
	}()

	// container → stdout (TTY=true: merged)
	go func() {
		_, _ = io.Copy(os.Stdout, attach.Reader)
	}()

	statusCh, errCh := dc.client.ContainerWait(ctx, id, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		if err != nil {
			return 0, fmt.Errorf("container wait: %w", err)
		}
	case st := <-statusCh:
		return st.StatusCode, nil
	}

	return 0, nil
}

// ContainerName: "<image>-<short>", trimming from the LEFT if needed and
// prefixing with "tail-" to show it was trimmed.
func resolveContainerName(image string) string {
	short := shortHash(image+
		"|"+time.Now().UTC().Format(time.RFC3339Nano)+
		"|"+procTag(),
		shortLen)

	base := sanitizeName(image)

	need := len(base) + 1 + len(short)
	if need <= dockerMaxNameLen {
		return base + "-" + short
	}

	maxBase := dockerMaxNameLen - 1 - len(short) // room for '-' + short
	keep := maxBase - len(tailMarker)
	if keep < 1 {
		keep = 1
	}
	if keep > len(base) {
		keep = len(base)
	}
	trimmedTail := base[len(base)-keep:]

	return tailMarker + trimmedTail + "-" + short
}

func sanitizeName(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '.', c == '-':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

// tiny process tag without extra deps
func procTag() string {
	pid := os.Getpid()
	return hex.EncodeToString([]byte{
		byte(pid >> 24), byte(pid >> 16), byte(pid >> 8), byte(pid),
	})
}

func shortHash(s string, n int) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])[:n]
}
