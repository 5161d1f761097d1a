// Package conda produces the channel configuration and dependency
// installation commands for the Miniconda distribution inside the image.
package conda

import (
	"fmt"
	"sort"
	"strings"

	"github.com/0xa1bed0/dloenv/internal/provision"
)

type Channel string

const (
	ChannelBioconda   Channel = "bioconda"
	ChannelCondaForge Channel = "conda-forge"
	ChannelDefaults   Channel = "defaults"
)

// AddedChannels is the fixed registration order. `conda config --add`
// prepends, so the later add ends up with the higher priority; swapping
// the two entries silently changes which channel wins on name collisions.
func AddedChannels() []Channel {
	return []Channel{ChannelBioconda, ChannelCondaForge}
}

// AddChannelCommands emits one `conda config --add channels` call per
// channel, preserving order.
func AddChannelCommands(channels []Channel) []provision.Command {
	out := make([]provision.Command, 0, len(channels))
	for _, ch := range channels {
		out = append(out, provision.Command{
			When: "build",
			Argv: []string{"conda", "config", "--add", "channels", string(ch)},
		})
	}
	return out
}

// UpgradeCommand self-updates conda before any dependency install.
func UpgradeCommand() provision.Command {
	return provision.Command{When: "build", Argv: []string{"conda", "upgrade", "-y", "conda"}}
}

// PriorityList is the channel priority after registering added in order:
// the last-added channel ranks first, defaults last.
func PriorityList(added []Channel) []Channel {
	out := make([]Channel, 0, len(added)+1)
	for i := len(added) - 1; i >= 0; i-- {
		out = append(out, added[i])
	}
	out = append(out, ChannelDefaults)
	return out
}

// Batch is one dependency installation transaction. Batches are invoked
// separately so a failure points at the batch that broke, but the final
// installed set does not depend on the batching.
type Batch struct {
	Name     string
	Channel  Channel // empty means the configured channel priority decides
	Packages []string
}

// InstallCommand renders the batch as a single `conda install -y` call.
// pins maps package name to an exact version; pinned packages render as
// "name=version". Package order inside the call is sorted for determinism.
func (b Batch) InstallCommand(pins map[string]string) (provision.Command, error) {
	if len(b.Packages) == 0 {
		return provision.Command{}, fmt.Errorf("batch %s has no packages", b.Name)
	}

	names := make([]string, 0, len(b.Packages))
	for _, pkg := range b.Packages {
		if strings.ContainsAny(pkg, " =") {
			return provision.Command{}, fmt.Errorf("batch %s: invalid package name %q", b.Name, pkg)
		}
		if pin, ok := pins[pkg]; ok && pin != "" {
			pkg = pkg + "=" + pin
		}
		names = append(names, pkg)
	}
	sort.Strings(names)

	argv := []string{"conda", "install", "-y"}
	if b.Channel != "" {
		argv = append(argv, "-c", string(b.Channel))
	}
	argv = append(argv, names...)

	return provision.Command{When: "build", Argv: argv}, nil
}

// DefaultBatches are the three transactions the environment is installed
// with: the general scientific stack, the bioinformatics toolchain, and
// the compression library.
func DefaultBatches() []Batch {
	return []Batch{
		{
			Name:     "scientific",
			Packages: []string{"numpy", "scipy", "pandas", "matplotlib", "h5py", "click", "jinja2"},
		},
		{
			Name:     "bioinformatics",
			Channel:  ChannelBioconda,
			Packages: []string{"bwa", "samtools", "pairix", "tabix", "cooler", "pysam"},
		},
		{
			Name:     "compression",
			Packages: []string{"zlib"},
		},
	}
}
