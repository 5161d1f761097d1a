// Package mirrors models the apt source list the image is provisioned
// with: four suite lines in a fixed order, each carrying the same four
// components. Order determines package-resolution priority, so rendering
// is deterministic.
package mirrors

import (
	"fmt"
	"strings"
)

// components every suite line carries, in the order they are written.
var components = []string{"main", "restricted", "universe", "multiverse"}

// suite suffixes in resolution-priority order: release, updates,
// backports, security.
var suiteSuffixes = []string{"", "-updates", "-backports", "-security"}

// List describes the mirror set for one release.
type List struct {
	// Release is the distribution codename, e.g. "xenial".
	Release string

	// ArchiveURL serves release/updates/backports.
	ArchiveURL string

	// SecurityURL serves the security suite.
	SecurityURL string
}

// Xenial is the mirror set for the ubuntu:16.04 base.
func Xenial() List {
	return List{
		Release:     "xenial",
		ArchiveURL:  "http://archive.ubuntu.com/ubuntu/",
		SecurityURL: "http://security.ubuntu.com/ubuntu/",
	}
}

// Line is one rendered "deb" entry.
type Line struct {
	URL        string
	Suite      string
	Components []string
}

func (l Line) String() string {
	return fmt.Sprintf("deb %s %s %s", l.URL, l.Suite, strings.Join(l.Components, " "))
}

// Lines returns exactly four entries in the fixed order.
func (m List) Lines() []Line {
	out := make([]Line, 0, len(suiteSuffixes))
	for _, suffix := range suiteSuffixes {
		url := m.ArchiveURL
		if suffix == "-security" {
			url = m.SecurityURL
		}
		out = append(out, Line{
			URL:        url,
			Suite:      m.Release + suffix,
			Components: append([]string(nil), components...),
		})
	}
	return out
}

// Render produces the sources.list body, one line per suite.
func (m List) Render() string {
	var b strings.Builder
	for _, line := range m.Lines() {
		b.WriteString(line.String())
		b.WriteString("\n")
	}
	return b.String()
}

const backupMarker = "# ---- previous sources (kept once, commented out) ----"

// Rewrite replaces the current sources.list content wholesale with the
// mirror set, keeping the previous content appended as comments. The
// replacement is idempotent: rewriting an already-rewritten file keeps
// exactly one backup section instead of stacking a new one per run.
func Rewrite(current string, m List) string {
	backup := current
	if idx := strings.Index(current, backupMarker); idx >= 0 {
		backup = strings.TrimPrefix(current[idx+len(backupMarker):], "\n")
	} else {
		backup = commentOut(current)
	}

	var b strings.Builder
	b.WriteString(m.Render())
	b.WriteString(backupMarker)
	b.WriteString("\n")
	b.WriteString(backup)
	return b.String()
}

func commentOut(content string) string {
	if content == "" {
		return ""
	}
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "# " + line
	}
	return strings.Join(lines, "\n") + "\n"
}

// RewriteScript is the in-container equivalent of Rewrite: back up the
// existing file once, then write the mirror lines followed by the
// commented-out backup.
func (m List) RewriteScript() string {
	var b strings.Builder
	b.WriteString("set -e\n")
	b.WriteString("test -f /etc/apt/sources.list.orig || cp /etc/apt/sources.list /etc/apt/sources.list.orig\n")
	b.WriteString("{\n")
	b.WriteString("cat <<'SOURCES'\n")
	b.WriteString(m.Render())
	b.WriteString(backupMarker)
	b.WriteString("\nSOURCES\n")
	b.WriteString("sed 's/^/# /' /etc/apt/sources.list.orig\n")
	b.WriteString("} > /etc/apt/sources.list\n")
	return b.String()
}
