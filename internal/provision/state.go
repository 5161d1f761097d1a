package provision

import (
	"fmt"
	"maps"
	"strings"
)

// Command is one build-time invocation recorded by a stage.
type Command struct {
	When string   // currently only "build" supported
	Argv []string // e.g. []string{"/bin/sh", "-lc", "echo hi"}
}

func (c *Command) String() string {
	return fmt.Sprintf("[%s time]: %s", c.When, strings.Join(c.Argv, " "))
}

// ShellCommand wraps a script into an exec-form login-shell invocation so
// ENV bindings from earlier stages are visible to it.
func ShellCommand(script string) Command {
	return Command{When: "build", Argv: []string{"/bin/sh", "-lc", script}}
}

// State is the build state produced by the stages that ran so far. Each
// stage receives a clone of the previous state, so a failing stage cannot
// leave a half-applied mutation behind.
type State struct {
	BaseImage string

	// Env holds key->value bindings visible to all later stages.
	// Last write wins; there is no deletion.
	Env map[string]string

	// Run is the ordered list of build commands accumulated so far.
	Run []Command

	WorkDir string
	Cmd     []string

	// Applied records stage IDs in execution order, for audit labels.
	Applied []StageID

	// Warnings collects non-fatal observations stages made while
	// applying. The sequencer forwards them as Warning events.
	Warnings []string
}

func NewState() *State {
	return &State{
		Env: map[string]string{},
	}
}

// SetEnv binds k to v. Later writes override earlier ones.
func (s *State) SetEnv(k, v string) {
	if s.Env == nil {
		s.Env = map[string]string{}
	}
	s.Env[k] = v
}

func (s *State) Append(cmds ...Command) {
	s.Run = append(s.Run, cmds...)
}

func (s *State) Warnf(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}

func (s *State) Clone() *State {
	out := &State{
		BaseImage: s.BaseImage,
		Env:       make(map[string]string, len(s.Env)),
		Run:       make([]Command, len(s.Run)),
		WorkDir:   s.WorkDir,
		Cmd:       append([]string(nil), s.Cmd...),
		Applied:   append([]StageID(nil), s.Applied...),
		Warnings:  append([]string(nil), s.Warnings...),
	}
	maps.Copy(out.Env, s.Env)
	copy(out.Run, s.Run)
	return out
}
