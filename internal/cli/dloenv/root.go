// Package dloenv holds the cobra command tree of the dloenv binary.
package dloenv

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/0xa1bed0/dloenv/internal/appdir"
	"github.com/0xa1bed0/dloenv/internal/cache"
	"github.com/0xa1bed0/dloenv/internal/cli"
	"github.com/0xa1bed0/dloenv/internal/dockerclient"
	"github.com/0xa1bed0/dloenv/internal/logs"
	"github.com/0xa1bed0/dloenv/internal/manifest"
	"github.com/0xa1bed0/dloenv/internal/provision"
	"github.com/0xa1bed0/dloenv/internal/stages"
	"github.com/0xa1bed0/dloenv/internal/versioncheck"
)

var (
	verbosity    int
	manifestPath string
)

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   "dloenv",
		Short: "Reproducible DLO-HiC-Tools analysis environments",
		Long: `dloenv builds and runs the containerized DLO-HiC-Tools environment.

By default, 'dloenv' is equivalent to 'dloenv run'.`,
		Args: cobra.NoArgs,
		// Default behavior is the same as 'run'
		RunE: runCmdRunE,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logs.SetDebugVerbosity(verbosity)
			logs.EnableFullLog()
			return nil
		},
		// we will handle that
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity level")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", appdir.ManifestFile(), "path to the pin manifest")

	// Root should accept the same flags as `run`
	attachRunCmdFlags(rootCmd)

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newStagesCmd())
	rootCmd.AddCommand(newBuildsCmd())
	rootCmd.AddCommand(newVersionCmd())

	updateChan := make(chan *versioncheck.Result, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), versioncheck.RequestTimeout)
		defer cancel()
		updateChan <- versioncheck.Check(ctx)
	}()

	err := rootCmd.Execute()

	select {
	case res := <-updateChan:
		versioncheck.PrintUpdateBanner(res)
	default:
		// the check did not finish in time, skip the banner
	}

	return err
}

// loadManifest reads the pin manifest; a missing file means no pins.
func loadManifest() (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// newOrchestrator assembles the standard build path: default config,
// manifest pins, the stage pipeline, the image cache and the docker
// client.
func newOrchestrator() (*cli.DockerImageBuildOrchestrator, dockerclient.DockerClient, provision.Config, *manifest.Manifest, error) {
	cfg := provision.DefaultConfig()

	m, err := loadManifest()
	if err != nil {
		return nil, nil, cfg, nil, err
	}

	cacheManager, err := cache.NewCacheManager(appdir.ImageCacheFile())
	if err != nil {
		return nil, nil, cfg, nil, err
	}

	dockerClient, err := dockerclient.NewDockerClient()
	if err != nil {
		return nil, nil, cfg, nil, err
	}

	orc := cli.NewDockerImageBuildOrchestrator(dockerClient, cacheManager, cfg, m, stages.DefaultPipeline(m))
	return orc, dockerClient, cfg, m, nil
}
