package stages

import (
	"github.com/0xa1bed0/dloenv/internal/provision"
)

const appUnpackDir = "/tmp/dlo-hic-tools"

// Application downloads the DLO-HiC-Tools source archive, unpacks it and
// runs its standard install entry point.
func Application() provision.Stage {
	return provision.Stage{
		ID:          StageApp,
		Description: "Install the DLO-HiC-Tools package from source",
		Apply: func(cfg provision.Config, st *provision.State) error {
			st.SetEnv("DLOHIC_URL", cfg.AppArchiveURL)
			st.Append(provision.ShellCommand(
				"set -e\n" +
					"wget -q -O " + appUnpackDir + ".tar.gz \"$DLOHIC_URL\"\n" +
					"mkdir -p " + appUnpackDir + "\n" +
					"tar -xzf " + appUnpackDir + ".tar.gz -C " + appUnpackDir + " --strip-components=1\n" +
					"cd " + appUnpackDir + "\n" +
					"python setup.py install\n" +
					"rm -rf " + appUnpackDir + " " + appUnpackDir + ".tar.gz\n",
			))
			return nil
		},
	}
}
