// Tests in this file exercise mirror list rendering and the idempotent
// sources.list rewrite.
package mirrors

import (
	"strings"
	"testing"
)

func TestXenialLinesOrderAndComponents(t *testing.T) {
	t.Parallel()

	lines := Xenial().Lines()
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}

	wantSuites := []string{"xenial", "xenial-updates", "xenial-backports", "xenial-security"}
	for i, line := range lines {
		if line.Suite != wantSuites[i] {
			t.Fatalf("line %d suite = %q, want %q", i, line.Suite, wantSuites[i])
		}
		if got := strings.Join(line.Components, " "); got != "main restricted universe multiverse" {
			t.Fatalf("line %d components = %q", i, got)
		}
	}

	if lines[3].URL != "http://security.ubuntu.com/ubuntu/" {
		t.Fatalf("security line URL = %q", lines[3].URL)
	}
	for _, line := range lines[:3] {
		if line.URL != "http://archive.ubuntu.com/ubuntu/" {
			t.Fatalf("archive line URL = %q", line.URL)
		}
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	t.Parallel()

	m := Xenial()
	if m.Render() != m.Render() {
		t.Fatal("Render output changed between calls")
	}
	if !strings.HasPrefix(m.Render(), "deb http://archive.ubuntu.com/ubuntu/ xenial main") {
		t.Fatalf("unexpected first line: %q", strings.SplitN(m.Render(), "\n", 2)[0])
	}
}

func TestRewriteKeepsOriginalAsComments(t *testing.T) {
	t.Parallel()

	original := "deb http://old.example.com/ubuntu/ xenial main\n"
	out := Rewrite(original, Xenial())

	if !strings.Contains(out, "# deb http://old.example.com/ubuntu/ xenial main") {
		t.Fatalf("original content not preserved as comment:\n%s", out)
	}
	if !strings.HasPrefix(out, "deb http://archive.ubuntu.com/ubuntu/ xenial main") {
		t.Fatalf("mirror lines not first:\n%s", out)
	}
}

func TestRewriteIsIdempotent(t *testing.T) {
	t.Parallel()

	original := "deb http://old.example.com/ubuntu/ xenial main\n"
	once := Rewrite(original, Xenial())
	twice := Rewrite(once, Xenial())
	thrice := Rewrite(twice, Xenial())

	if twice != thrice {
		t.Fatal("repeated rewrites keep changing the file")
	}
	if got := strings.Count(thrice, backupMarker); got != 1 {
		t.Fatalf("backup marker appears %d times, want exactly 1", got)
	}
	if got := strings.Count(thrice, "# deb http://old.example.com"); got != 1 {
		t.Fatalf("backup section appears %d times, want exactly 1", got)
	}
}

func TestRewriteMarkerAtEndOfFile(t *testing.T) {
	t.Parallel()

	// an editor may strip the trailing newline, leaving the marker as
	// the very last bytes of the file.
	truncated := "deb http://old.example.com/ubuntu/ xenial main\n" + backupMarker
	out := Rewrite(truncated, Xenial())

	if got := strings.Count(out, backupMarker); got != 1 {
		t.Fatalf("backup marker appears %d times, want exactly 1", got)
	}
	if !strings.HasPrefix(out, "deb http://archive.ubuntu.com/ubuntu/ xenial main") {
		t.Fatalf("mirror lines not first:\n%s", out)
	}
	if Rewrite(out, Xenial()) != Rewrite(Rewrite(out, Xenial()), Xenial()) {
		t.Fatal("rewrite does not stabilize after a truncated marker")
	}
}

func TestRewriteEmptyOriginal(t *testing.T) {
	t.Parallel()

	out := Rewrite("", Xenial())
	if !strings.Contains(out, backupMarker) {
		t.Fatal("marker missing for empty original")
	}
	if strings.Contains(out, "# deb") {
		t.Fatalf("unexpected commented lines:\n%s", out)
	}
}

func TestRewriteScriptBacksUpOnce(t *testing.T) {
	t.Parallel()

	script := Xenial().RewriteScript()
	if !strings.Contains(script, "test -f /etc/apt/sources.list.orig || cp /etc/apt/sources.list /etc/apt/sources.list.orig") {
		t.Fatalf("script does not guard the backup:\n%s", script)
	}
	if !strings.Contains(script, "> /etc/apt/sources.list") {
		t.Fatalf("script does not replace sources.list:\n%s", script)
	}
	if !strings.Contains(script, "deb http://security.ubuntu.com/ubuntu/ xenial-security main restricted universe multiverse") {
		t.Fatalf("script misses the security line:\n%s", script)
	}
}
