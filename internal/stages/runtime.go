package stages

import (
	"errors"

	"github.com/0xa1bed0/dloenv/internal/provision"
)

// RuntimeDefaults sets the working directory and the default launched
// shell of the produced image.
func RuntimeDefaults() provision.Stage {
	return provision.Stage{
		ID:          StageRuntime,
		Description: "Set runtime working directory and default shell",
		Apply: func(cfg provision.Config, st *provision.State) error {
			st.WorkDir = cfg.WorkDir
			st.Cmd = append([]string(nil), cfg.Shell...)
			return nil
		},
		Check: func(st *provision.State) error {
			if st.WorkDir == "" {
				return errors.New("working directory not set")
			}
			if len(st.Cmd) == 0 {
				return errors.New("default command not set")
			}
			return nil
		},
	}
}
