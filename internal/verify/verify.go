// Package verify runs smoke checks inside a built image to confirm the
// provisioned environment actually works.
package verify

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/0xa1bed0/dloenv/internal/conda"
	"github.com/0xa1bed0/dloenv/internal/manifest"
	"github.com/0xa1bed0/dloenv/internal/provision"
	"github.com/0xa1bed0/dloenv/internal/utils"
	"github.com/0xa1bed0/dloenv/internal/versions"
)

// Check is one command executed inside the image. Expect inspects the
// combined output once the command exits zero; a nil Expect only cares
// about the exit code.
type Check struct {
	Name   string
	Argv   []string
	Expect func(output string) error
}

// Result pairs a check with its outcome.
type Result struct {
	Check  Check
	Output string
	Err    error
}

func (r Result) OK() bool { return r.Err == nil }

// CommandRunner is the slice of the docker client verification needs.
type CommandRunner interface {
	RunCommand(ctx context.Context, imageTag string, argv []string) (string, int64, error)
}

// Checks builds the default check list for the given provisioning
// config. Manifest tool constraints, when present, add one version
// check per tool.
func Checks(cfg provision.Config, m *manifest.Manifest) []Check {
	pythonPath := path.Join(cfg.CondaPrefix, "bin", "python")
	jarPath := path.Join(cfg.WorkDir, "juicer_tools.jar")

	checks := []Check{
		{
			Name: "python-on-path",
			Argv: []string{"/bin/sh", "-lc", "command -v python"},
			Expect: func(out string) error {
				got := strings.TrimSpace(out)
				if got != pythonPath {
					return fmt.Errorf("python resolves to %q, want %q", got, pythonPath)
				}
				return nil
			},
		},
		{
			Name: "conda-channel-order",
			Argv: []string{"/bin/sh", "-lc", "conda config --show channels"},
			Expect: func(out string) error {
				return expectChannelOrder(out, conda.PriorityList(conda.AddedChannels()))
			},
		},
		{
			Name: "juicer-tools-jar",
			Argv: []string{"/bin/sh", "-lc", "test -s " + jarPath},
		},
		{
			Name: "application-importable",
			Argv: []string{"python", "-c", "import dlo_hic"},
		},
	}

	if m != nil {
		for _, tool := range utils.SortedKeys(m.Tools) {
			constraint := m.Tools[tool]
			checks = append(checks, toolVersionCheck(tool, constraint))
		}
	}

	return checks
}

func toolVersionCheck(tool, constraint string) Check {
	// most bioinformatics tools print their version on stderr or exit
	// non-zero on --version, so the script tolerates both.
	script := fmt.Sprintf("%s --version 2>&1 || %s 2>&1 || true", tool, tool)

	return Check{
		Name: "version-" + tool,
		Argv: []string{"/bin/sh", "-lc", script},
		Expect: func(out string) error {
			ok, err := versions.Satisfies(out, constraint)
			if err != nil {
				return fmt.Errorf("%s: %w", tool, err)
			}
			if !ok {
				got, _ := versions.ParseFirst(out)
				return fmt.Errorf("%s version %s does not satisfy %q", tool, got, constraint)
			}
			return nil
		},
	}
}

// expectChannelOrder parses `conda config --show channels` output:
//
//	channels:
//	  - conda-forge
//	  - bioconda
//	  - defaults
//
// and compares the listed order against want.
func expectChannelOrder(out string, want []conda.Channel) error {
	var got []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if name, ok := strings.CutPrefix(line, "- "); ok {
			got = append(got, strings.TrimSpace(name))
		}
	}

	if len(got) < len(want) {
		return fmt.Errorf("expected %d channels, got %d in %q", len(want), len(got), out)
	}
	for i, ch := range want {
		if got[i] != string(ch) {
			return fmt.Errorf("channel %d is %q, want %q", i, got[i], ch)
		}
	}
	return nil
}

// Run executes every check inside the image, in order, and returns all
// results. Checks keep running after a failure so the report is
// complete.
func Run(ctx context.Context, runner CommandRunner, imageTag string, checks []Check) []Result {
	results := make([]Result, 0, len(checks))

	for _, chk := range checks {
		out, exitCode, err := runner.RunCommand(ctx, imageTag, chk.Argv)

		res := Result{Check: chk, Output: out}
		switch {
		case err != nil:
			res.Err = fmt.Errorf("verify: %s: %w", chk.Name, err)
		case exitCode != 0:
			res.Err = fmt.Errorf("verify: %s: exit code %d: %s", chk.Name, exitCode, strings.TrimSpace(out))
		case chk.Expect != nil:
			if eErr := chk.Expect(out); eErr != nil {
				res.Err = fmt.Errorf("verify: %s: %w", chk.Name, eErr)
			}
		}

		results = append(results, res)
	}

	return results
}

// Failed filters results down to the failing ones.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}
