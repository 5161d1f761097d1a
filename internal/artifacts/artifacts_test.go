package artifacts

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	ok := Artifact{Name: "jar", URL: "https://example.com/tool.jar", Dest: "/data/tool.jar"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid artifact rejected: %v", err)
	}

	for _, a := range []Artifact{
		{URL: "https://example.com/x", Dest: "/x"},
		{Name: "x", Dest: "/x"},
		{Name: "x", URL: "https://example.com/x"},
	} {
		if err := a.Validate(); err == nil {
			t.Fatalf("incomplete artifact %+v accepted", a)
		}
	}
}

func TestFetchCommandFailsFast(t *testing.T) {
	t.Parallel()

	a := Artifact{Name: "jar", URL: "https://example.com/tool.jar", Dest: "/data/tool.jar"}
	cmd := a.FetchCommand()

	script := cmd.Argv[len(cmd.Argv)-1]
	if !strings.HasPrefix(script, "set -e") {
		t.Fatalf("script does not fail fast:\n%s", script)
	}
	if !strings.Contains(script, "wget -q -O /data/tool.jar https://example.com/tool.jar") {
		t.Fatalf("script misses the download:\n%s", script)
	}
	if !strings.Contains(script, "test -s /data/tool.jar") {
		t.Fatalf("script misses the non-empty check:\n%s", script)
	}
	if strings.Contains(script, "sha256sum") {
		t.Fatalf("unpinned artifact must not verify a checksum:\n%s", script)
	}
}

func TestFetchCommandVerifiesPin(t *testing.T) {
	t.Parallel()

	a := Artifact{
		Name:   "installer",
		URL:    "https://example.com/installer.sh",
		Dest:   "/tmp/installer.sh",
		SHA256: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
	}
	script := a.FetchCommand().Argv[2]
	if !strings.Contains(script, "sha256sum -c -") {
		t.Fatalf("pinned artifact not verified:\n%s", script)
	}
	if !strings.Contains(script, a.SHA256+"  /tmp/installer.sh") {
		t.Fatalf("checksum line malformed:\n%s", script)
	}
}
