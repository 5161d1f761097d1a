// Tests in this file pin down channel priority and install command
// rendering.
package conda

import (
	"strings"
	"testing"
)

func TestAddChannelCommandsPreserveOrder(t *testing.T) {
	t.Parallel()

	cmds := AddChannelCommands(AddedChannels())
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2", len(cmds))
	}
	if got := strings.Join(cmds[0].Argv, " "); got != "conda config --add channels bioconda" {
		t.Fatalf("first add = %q", got)
	}
	if got := strings.Join(cmds[1].Argv, " "); got != "conda config --add channels conda-forge" {
		t.Fatalf("second add = %q", got)
	}
}

func TestPriorityListLastAddedWins(t *testing.T) {
	t.Parallel()

	got := PriorityList(AddedChannels())
	want := []Channel{ChannelCondaForge, ChannelBioconda, ChannelDefaults}
	if len(got) != len(want) {
		t.Fatalf("priority = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("priority = %v, want %v", got, want)
		}
	}
}

func TestInstallCommandSortsAndPins(t *testing.T) {
	t.Parallel()

	b := Batch{Name: "test", Packages: []string{"scipy", "numpy"}}
	cmd, err := b.InstallCommand(map[string]string{"numpy": "1.15.4"})
	if err != nil {
		t.Fatalf("InstallCommand returned error: %v", err)
	}
	if got := strings.Join(cmd.Argv, " "); got != "conda install -y numpy=1.15.4 scipy" {
		t.Fatalf("install = %q", got)
	}
}

func TestInstallCommandChannelFlag(t *testing.T) {
	t.Parallel()

	b := Batch{Name: "bio", Channel: ChannelBioconda, Packages: []string{"bwa"}}
	cmd, err := b.InstallCommand(nil)
	if err != nil {
		t.Fatalf("InstallCommand returned error: %v", err)
	}
	if got := strings.Join(cmd.Argv, " "); got != "conda install -y -c bioconda bwa" {
		t.Fatalf("install = %q", got)
	}
}

func TestInstallCommandRejectsBadInput(t *testing.T) {
	t.Parallel()

	if _, err := (Batch{Name: "empty"}).InstallCommand(nil); err == nil {
		t.Fatal("expected error for empty batch")
	}
	if _, err := (Batch{Name: "bad", Packages: []string{"numpy=1.0"}}).InstallCommand(nil); err == nil {
		t.Fatal("expected error for package name carrying a version")
	}
}

func TestDefaultBatchesCoverToolchain(t *testing.T) {
	t.Parallel()

	batches := DefaultBatches()
	if len(batches) != 3 {
		t.Fatalf("got %d batches, want 3", len(batches))
	}

	all := map[string]bool{}
	for _, b := range batches {
		for _, pkg := range b.Packages {
			all[pkg] = true
		}
	}
	for _, pkg := range []string{"numpy", "scipy", "pandas", "matplotlib", "h5py", "click", "jinja2", "bwa", "samtools", "pairix", "tabix", "cooler", "pysam", "zlib"} {
		if !all[pkg] {
			t.Fatalf("package %s missing from default batches", pkg)
		}
	}

	if batches[1].Channel != ChannelBioconda {
		t.Fatalf("bioinformatics batch channel = %q", batches[1].Channel)
	}
}
