// Package dockerfile renders the final provisioning state into a
// deterministic Dockerfile.
package dockerfile

import (
	"encoding/json"
	"fmt"

	"github.com/0xa1bed0/dloenv/internal/provision"
	"github.com/0xa1bed0/dloenv/internal/utils"
	"github.com/0xa1bed0/dloenv/internal/version"
)

type Dockerfile []string

func (df Dockerfile) String() string {
	out := ""
	for _, line := range df {
		out += line + "\n"
	}
	return out
}

// Generate renders the state the sequencer produced. Ordering is fully
// deterministic: ENV lines are sorted by key, RUN lines keep the stage
// order, audit labels come last.
func Generate(st *provision.State) Dockerfile {
	lines := Dockerfile{}

	lines = append(lines, "# ───────────────────────────────────────────")
	lines = append(lines, "# BASE IMAGE (PINNED)")
	lines = append(lines, fmt.Sprintf("FROM %s", st.BaseImage))

	if len(st.Env) > 0 {
		lines = append(lines, "", "# ───────────────────────────────────────────")
		lines = append(lines, "# ENVIRONMENT")
		for _, k := range utils.SortedKeys(st.Env) {
			lines = append(lines, fmt.Sprintf("ENV %s=%s", k, st.Env[k]))
		}
	}

	if len(st.Run) > 0 {
		lines = append(lines, "", "# ───────────────────────────────────────────")
		lines = append(lines, "# PROVISIONING STEPS (exec form)")
		for _, cmd := range st.Run {
			if cmd.When == "build" {
				lines = append(lines, "RUN "+jsonExec(cmd.Argv))
			}
		}
	}

	if st.WorkDir != "" {
		lines = append(lines, "", "# ───────────────────────────────────────────")
		lines = append(lines, "# RUNTIME DEFAULTS")
		lines = append(lines, fmt.Sprintf("WORKDIR %s", st.WorkDir))
	}
	if len(st.Cmd) > 0 {
		lines = append(lines, "CMD "+jsonExec(st.Cmd))
	}

	if len(st.Applied) > 0 {
		lines = append(lines, "", "# ───────────────────────────────────────────")
		lines = append(lines, "# AUDIT LABELS")
		lines = append(lines, fmt.Sprintf("LABEL dloenv.stages=\"%s\"", joinStageIDs(st.Applied)))
	}
	lines = append(lines, "LABEL dloenv=true")
	lines = append(lines, fmt.Sprintf("LABEL %s=%d", version.ImageSchemaVersionLabel, version.ImageSchemaVersion))

	return lines
}

func jsonExec(argv []string) string {
	b, _ := json.Marshal(argv)
	return string(b)
}

func joinStageIDs(ids []provision.StageID) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += string(id)
	}
	return out
}
