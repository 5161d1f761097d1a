package provision

import (
	"context"
	"errors"
	"fmt"
)

// Event is progress information emitted while the sequencer runs.
type Event interface {
	isEvent()
}

type StageStarted struct {
	ID          StageID
	Description string
}

func (StageStarted) isEvent() {}

type StageCompleted struct {
	ID StageID
}

func (StageCompleted) isEvent() {}

// Warning carries a non-fatal observation a stage recorded while it ran.
type Warning struct {
	ID  StageID
	Msg string
}

func (Warning) isEvent() {}

type RunResult struct {
	State *State
	Err   error
}

// Sequencer executes an ordered list of stages against a fixed Config.
// Stages run strictly one after another; the first failure aborts the
// whole run. There is no rollback and no retry: a failed run produces no
// usable state and must be restarted from the first stage.
type Sequencer interface {
	Run(ctx context.Context) <-chan RunResult
	Events() <-chan Event
}

type sequencer struct {
	cfg    Config
	stages []Stage
	events chan Event
}

func NewSequencer(cfg Config, stages []Stage) Sequencer {
	return &sequencer{
		cfg:    cfg,
		stages: stages,
		events: make(chan Event, 1),
	}
}

func (s *sequencer) Events() <-chan Event {
	return s.events
}

func (s *sequencer) Run(ctx context.Context) <-chan RunResult {
	ch := make(chan RunResult, 1)

	go func() {
		defer close(s.events)
		defer close(ch)

		st, err := s.run(ctx)
		ch <- RunResult{State: st, Err: err}
	}()

	return ch
}

func (s *sequencer) run(ctx context.Context) (*State, error) {
	if len(s.stages) == 0 {
		return nil, errors.New("no stages to run")
	}
	if err := validateStages(s.stages); err != nil {
		return nil, err
	}

	cur := NewState()

	for _, stage := range s.stages {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		s.emit(ctx, StageStarted{ID: stage.ID, Description: stage.Description})

		// The stage works on a clone so an error cannot leave a
		// half-applied mutation in the state we hand to the caller.
		next := cur.Clone()
		if err := stage.Apply(s.cfg, next); err != nil {
			return nil, &StageError{ID: stage.ID, Err: err}
		}
		if stage.Check != nil {
			if err := stage.Check(next); err != nil {
				return nil, &StageError{ID: stage.ID, Err: fmt.Errorf("postcondition: %w", err)}
			}
		}

		for _, msg := range next.Warnings[len(cur.Warnings):] {
			s.emit(ctx, Warning{ID: stage.ID, Msg: msg})
		}

		next.Applied = append(next.Applied, stage.ID)
		cur = next

		s.emit(ctx, StageCompleted{ID: stage.ID})
	}

	return cur, nil
}

// emit never blocks forever: a slow consumer cannot wedge the build past
// context cancellation.
func (s *sequencer) emit(ctx context.Context, ev Event) {
	select {
	case s.events <- ev:
	case <-ctx.Done():
	}
}

func validateStages(stages []Stage) error {
	seen := map[StageID]bool{}
	for _, st := range stages {
		if st.ID == "" {
			return errors.New("stage with empty id")
		}
		if st.Apply == nil {
			return fmt.Errorf("stage %s has no apply function", st.ID)
		}
		if seen[st.ID] {
			return fmt.Errorf("duplicate stage id %s", st.ID)
		}
		seen[st.ID] = true
	}
	return nil
}
