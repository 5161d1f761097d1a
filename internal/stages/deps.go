package stages

import (
	"github.com/0xa1bed0/dloenv/internal/conda"
	"github.com/0xa1bed0/dloenv/internal/manifest"
	"github.com/0xa1bed0/dloenv/internal/provision"
)

// Dependencies installs the scientific and bioinformatics stack as three
// separate transactions. Splitting them only changes which call fails,
// not the final installed set.
func Dependencies(m *manifest.Manifest) provision.Stage {
	return provision.Stage{
		ID:          StageDeps,
		Description: "Install scientific and bioinformatics dependencies",
		Apply: func(cfg provision.Config, st *provision.State) error {
			for _, batch := range conda.DefaultBatches() {
				cmd, err := batch.InstallCommand(m.Packages)
				if err != nil {
					return err
				}
				st.Append(cmd)
			}
			return nil
		},
	}
}
