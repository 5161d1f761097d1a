package stages

import (
	"errors"
	"fmt"
	"strings"

	"github.com/0xa1bed0/dloenv/internal/provision"
)

// PythonEnv installs the Miniconda distribution fetched by the artifact
// stage and registers its bin directory at the head of PATH, so every
// later conda/python invocation resolves to it.
func PythonEnv() provision.Stage {
	return provision.Stage{
		ID:          StagePython,
		Description: "Install the Python distribution manager",
		Apply: func(cfg provision.Config, st *provision.State) error {
			if cfg.CondaPrefix == "" {
				return errors.New("conda prefix required")
			}

			st.Append(provision.ShellCommand(fmt.Sprintf(
				"set -e\nbash %s -b -p %s\nrm -f %s\n",
				minicondaInstallerPath, cfg.CondaPrefix, minicondaInstallerPath,
			)))
			st.SetEnv("PATH", cfg.CondaPrefix+"/bin:$PATH")
			return nil
		},
		Check: func(st *provision.State) error {
			if !strings.Contains(st.Env["PATH"], "/bin:") {
				return errors.New("conda bin directory not on PATH")
			}
			return nil
		},
	}
}
