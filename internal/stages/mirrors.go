package stages

import (
	"errors"
	"strings"

	"github.com/0xa1bed0/dloenv/internal/mirrors"
	"github.com/0xa1bed0/dloenv/internal/provision"
)

// Mirrors rewrites the package-source list wholesale to the fixed xenial
// mirror set. The previous configuration is kept as a one-time backup, so
// rerunning the stage does not stack backups.
func Mirrors() provision.Stage {
	list := mirrors.Xenial()

	return provision.Stage{
		ID:          StageMirrors,
		Description: "Rewrite apt sources to the fixed mirror set",
		Apply: func(cfg provision.Config, st *provision.State) error {
			st.Append(provision.ShellCommand(list.RewriteScript()))
			return nil
		},
		Check: func(st *provision.State) error {
			for _, cmd := range st.Run {
				for _, arg := range cmd.Argv {
					if strings.Contains(arg, "/etc/apt/sources.list") {
						return nil
					}
				}
			}
			return errors.New("no sources.list rewrite recorded")
		},
	}
}
