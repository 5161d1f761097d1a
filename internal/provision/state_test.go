package provision

import "testing"

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	orig := NewState()
	orig.BaseImage = "ubuntu:16.04"
	orig.SetEnv("LC_ALL", "C.UTF-8")
	orig.Append(ShellCommand("apt-get update"))
	orig.Cmd = []string{"/bin/bash"}
	orig.Applied = []StageID{"base"}

	clone := orig.Clone()
	clone.SetEnv("LC_ALL", "POSIX")
	clone.SetEnv("EXTRA", "1")
	clone.Append(ShellCommand("apt-get install -y wget"))
	clone.Cmd[0] = "/bin/sh"
	clone.Applied = append(clone.Applied, "mirrors")

	if orig.Env["LC_ALL"] != "C.UTF-8" {
		t.Fatalf("original env mutated: %q", orig.Env["LC_ALL"])
	}
	if _, ok := orig.Env["EXTRA"]; ok {
		t.Fatal("original env gained a key from the clone")
	}
	if len(orig.Run) != 1 {
		t.Fatalf("original run list mutated: %d commands", len(orig.Run))
	}
	if orig.Cmd[0] != "/bin/bash" {
		t.Fatalf("original cmd mutated: %q", orig.Cmd[0])
	}
	if len(orig.Applied) != 1 {
		t.Fatalf("original applied list mutated: %v", orig.Applied)
	}
}

func TestSetEnvLastWriteWins(t *testing.T) {
	t.Parallel()

	st := NewState()
	st.SetEnv("PATH", "/usr/bin")
	st.SetEnv("PATH", "/opt/conda/bin:/usr/bin")

	if got := st.Env["PATH"]; got != "/opt/conda/bin:/usr/bin" {
		t.Fatalf("PATH = %q, want the later write", got)
	}
}

func TestShellCommandWrapsScript(t *testing.T) {
	t.Parallel()

	cmd := ShellCommand("echo hi")
	if cmd.When != "build" {
		t.Fatalf("When = %q, want build", cmd.When)
	}
	if len(cmd.Argv) != 3 || cmd.Argv[0] != "/bin/sh" || cmd.Argv[1] != "-lc" || cmd.Argv[2] != "echo hi" {
		t.Fatalf("Argv = %v", cmd.Argv)
	}
}
