package stages

import (
	"fmt"
	"path"

	"github.com/0xa1bed0/dloenv/internal/artifacts"
	"github.com/0xa1bed0/dloenv/internal/manifest"
	"github.com/0xa1bed0/dloenv/internal/provision"
)

const (
	artifactJuicer    = "juicer-tools"
	artifactMiniconda = "miniconda-installer"

	minicondaInstallerPath = "/tmp/miniconda.sh"
)

// Artifacts fetches the fixed-URL downloads: the juicer_tools jar into
// the runtime working directory and the Miniconda installer into /tmp.
// Checksums from the manifest are enforced when present.
func Artifacts(m *manifest.Manifest) provision.Stage {
	return provision.Stage{
		ID:          StageArtifacts,
		Description: "Fetch external artifacts",
		Apply: func(cfg provision.Config, st *provision.State) error {
			st.SetEnv("JUICER_TOOLS_URL", cfg.JuicerToolsURL)
			st.SetEnv("MINICONDA_URL", cfg.MinicondaURL)

			list := []artifacts.Artifact{
				{
					Name:   artifactJuicer,
					URL:    cfg.JuicerToolsURL,
					Dest:   path.Join(cfg.WorkDir, "juicer_tools.jar"),
					SHA256: m.Artifacts[artifactJuicer],
				},
				{
					Name:   artifactMiniconda,
					URL:    cfg.MinicondaURL,
					Dest:   minicondaInstallerPath,
					SHA256: m.Artifacts[artifactMiniconda],
				},
			}

			st.Append(provision.ShellCommand(fmt.Sprintf("mkdir -p %s", cfg.WorkDir)))
			for _, a := range list {
				if err := a.Validate(); err != nil {
					return err
				}
				if a.SHA256 == "" {
					st.Warnf("artifact %s is fetched without checksum verification", a.Name)
				}
				st.Append(a.FetchCommand())
			}
			return nil
		},
	}
}
