package ingest

import (
	"fmt"

	"studyvault-be/internal/dto"
)

// stageRank orders the pipeline stages. Terminal stages have no successor.
var stageRank = map[string]int{
	dto.StageParsingPdf: 0,
	dto.StageExtracting: 1,
	dto.StageEmbedding:  2,
	dto.StageComplete:   3,
	dto.StageError:      3,
}

// StateMachine enforces the monotonic stage progression of one ingestion
// job. Transitions only move forward and the terminal stages are final;
// error is reachable from any non-terminal stage.
type StateMachine struct {
	stage string
}

func NewStateMachine() *StateMachine {
	return &StateMachine{stage: dto.StageParsingPdf}
}

func (s *StateMachine) Stage() string {
	return s.stage
}

func (s *StateMachine) Terminal() bool {
	return s.stage == dto.StageComplete || s.stage == dto.StageError
}

// Advance moves to the next stage. Moving backwards, skipping a stage, or
// leaving a terminal stage is a programming error, not a runtime
// condition, so it is returned as a plain error for the orchestrator to
// treat as fatal.
func (s *StateMachine) Advance(next string) error {
	nextRank, ok := stageRank[next]
	if !ok {
		return fmt.Errorf("unknown stage %q", next)
	}
	if s.Terminal() {
		return fmt.Errorf("stage %s is terminal, cannot advance to %s", s.stage, next)
	}
	if next == dto.StageError {
		s.stage = next
		return nil
	}
	if nextRank != stageRank[s.stage]+1 {
		return fmt.Errorf("invalid transition %s -> %s", s.stage, next)
	}
	s.stage = next
	return nil
}
