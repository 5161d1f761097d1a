package dloenv

import (
	"context"
	"fmt"
	"strings"

	"github.com/0xa1bed0/dloenv/internal/guardrails"
	"github.com/0xa1bed0/dloenv/internal/logs"
)

// validateBinds checks each 'host:container' bind before it reaches
// docker: forbidden host paths abort, suspicious-looking files need an
// explicit confirmation.
func validateBinds(ctx context.Context, binds []string) error {
	for _, bind := range binds {
		hostPath, _, ok := strings.Cut(bind, ":")
		if !ok || hostPath == "" {
			return fmt.Errorf("invalid bind %q, want 'host:container'", bind)
		}

		if guardrails.IsAbsolutelyForbidden(hostPath) {
			return fmt.Errorf("refusing to mount %s", hostPath)
		}

		warnings, err := guardrails.ScanSuspiciousFiles(ctx, hostPath)
		if err != nil {
			return err
		}
		if len(warnings) == 0 {
			continue
		}

		for _, w := range warnings {
			logs.Warnf("%s: %s", w.Path, w.Reason)
		}
		ok, err = logs.PromptConfirm(fmt.Sprintf("%s contains %d potentially sensitive files. Mount anyway?", hostPath, len(warnings)))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("mount of %s declined", hostPath)
		}
	}

	return nil
}
