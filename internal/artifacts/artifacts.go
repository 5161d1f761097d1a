// Package artifacts describes the fixed-URL files fetched during
// provisioning and the commands that retrieve and verify them.
package artifacts

import (
	"errors"
	"fmt"

	"github.com/0xa1bed0/dloenv/internal/provision"
)

// Artifact is a (source URL, destination path) tuple, optionally pinned
// to a sha256 sum. The original build fetched without verification; a pin
// closes that gap for builds that want it.
type Artifact struct {
	Name   string
	URL    string
	Dest   string
	SHA256 string
}

func (a Artifact) Validate() error {
	if a.Name == "" {
		return errors.New("artifact without name")
	}
	if a.URL == "" {
		return fmt.Errorf("artifact %s: url required", a.Name)
	}
	if a.Dest == "" {
		return fmt.Errorf("artifact %s: destination required", a.Name)
	}
	return nil
}

// FetchCommand downloads the artifact to its destination and fails the
// stage when the download is unreachable or, for pinned artifacts, when
// the checksum does not match.
func (a Artifact) FetchCommand() provision.Command {
	script := fmt.Sprintf("set -e\nwget -q -O %s %s\n", a.Dest, a.URL)
	if a.SHA256 != "" {
		script += fmt.Sprintf("echo '%s  %s' | sha256sum -c -\n", a.SHA256, a.Dest)
	}
	script += fmt.Sprintf("test -s %s\n", a.Dest)
	return provision.ShellCommand(script)
}
