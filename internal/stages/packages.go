package stages

import (
	"github.com/0xa1bed0/dloenv/internal/apt"
	"github.com/0xa1bed0/dloenv/internal/provision"
)

// systemPackages is the fixed OS-level set: toolchain, VCS, crypto and
// compression dev libraries, the Java runtime for juicer_tools, locales.
// Set semantics: order is irrelevant, duplicates are no-ops.
var systemPackages = []apt.Spec{
	{Name: "build-essential"},
	{Name: "bzip2"},
	{Name: "ca-certificates"},
	{Name: "curl"},
	{Name: "default-jre"},
	{Name: "git"},
	{Name: "less"},
	{Name: "libcurl4-openssl-dev"},
	{Name: "libssl-dev"},
	{Name: "locales"},
	{Name: "unzip"},
	{Name: "wget"},
	{Name: "zlib1g-dev"},
}

// SystemPackages installs the OS package set in one apt transaction.
func SystemPackages() provision.Stage {
	mgr := apt.Manager{}

	return provision.Stage{
		ID:          StagePackages,
		Description: "Install OS development and runtime packages",
		Apply: func(cfg provision.Config, st *provision.State) error {
			st.Append(mgr.Install(systemPackages)...)
			return nil
		},
	}
}
