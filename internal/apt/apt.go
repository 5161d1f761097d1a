// Package apt expands abstract OS package requests into concrete apt-get
// build commands.
package apt

import (
	"github.com/0xa1bed0/dloenv/internal/provision"
	"github.com/0xa1bed0/dloenv/internal/utils"
)

// Spec is one requested OS package. Pin, when set, is appended as an
// exact apt version ("name=pin").
type Spec struct {
	Name string
	Pin  string
}

type Manager struct{}

func (Manager) Name() string { return "apt" }

// Install produces one apt transaction: update, a single install call
// with the deduplicated sorted package names, and list cleanup to keep
// the layer small. Duplicate requests collapse to a no-op.
func (Manager) Install(specs []Spec) []provision.Command {
	names := []string{}
	for _, spec := range specs {
		name := spec.Name
		if spec.Pin != "" {
			name = name + "=" + spec.Pin
		}
		names = append(names, name)
	}

	names = utils.UniqueSorted(names)

	installArgv := []string{"apt-get", "install", "-y", "--no-install-recommends"}

	out := make([]provision.Command, 3)
	out[0] = provision.Command{When: "build", Argv: []string{"apt-get", "update"}}
	out[1] = provision.Command{When: "build", Argv: append(installArgv, names...)}
	// the glob needs a shell; exec form would pass it to rm literally.
	out[2] = provision.ShellCommand("rm -rf /var/lib/apt/lists/*")

	return out
}
