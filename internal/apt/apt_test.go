package apt

import (
	"strings"
	"testing"
)

func TestInstallProducesOneTransaction(t *testing.T) {
	t.Parallel()

	cmds := Manager{}.Install([]Spec{{Name: "wget"}, {Name: "bzip2"}})
	if len(cmds) != 3 {
		t.Fatalf("got %d commands, want update/install/cleanup", len(cmds))
	}

	if got := strings.Join(cmds[0].Argv, " "); got != "apt-get update" {
		t.Fatalf("first command = %q", got)
	}
	if got := strings.Join(cmds[1].Argv, " "); got != "apt-get install -y --no-install-recommends bzip2 wget" {
		t.Fatalf("install command = %q", got)
	}
	if got := strings.Join(cmds[2].Argv, " "); got != "/bin/sh -lc rm -rf /var/lib/apt/lists/*" {
		t.Fatalf("cleanup command = %q", got)
	}
}

func TestInstallDeduplicatesAndSorts(t *testing.T) {
	t.Parallel()

	cmds := Manager{}.Install([]Spec{
		{Name: "zlib1g-dev"},
		{Name: "curl"},
		{Name: "curl"},
		{Name: "git"},
	})

	install := cmds[1].Argv
	pkgs := install[4:]
	want := []string{"curl", "git", "zlib1g-dev"}
	if len(pkgs) != len(want) {
		t.Fatalf("packages = %v, want %v", pkgs, want)
	}
	for i := range want {
		if pkgs[i] != want[i] {
			t.Fatalf("packages = %v, want %v", pkgs, want)
		}
	}
}

func TestInstallAppliesPins(t *testing.T) {
	t.Parallel()

	cmds := Manager{}.Install([]Spec{{Name: "git", Pin: "1:2.7.4-0ubuntu1"}})
	install := strings.Join(cmds[1].Argv, " ")
	if !strings.Contains(install, "git=1:2.7.4-0ubuntu1") {
		t.Fatalf("pin missing from install command: %q", install)
	}
}
