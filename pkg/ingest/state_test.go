package ingest

import (
	"testing"

	"studyvault-be/internal/dto"
)

func TestStateMachineProgression(t *testing.T) {
	m := NewStateMachine()

	if m.Stage() != dto.StageParsingPdf {
		t.Fatalf("initial stage = %s, want %s", m.Stage(), dto.StageParsingPdf)
	}

	steps := []string{dto.StageExtracting, dto.StageEmbedding, dto.StageComplete}
	for _, step := range steps {
		if err := m.Advance(step); err != nil {
			t.Fatalf("Advance(%s) failed: %v", step, err)
		}
		if m.Stage() != step {
			t.Fatalf("stage = %s, want %s", m.Stage(), step)
		}
	}

	if !m.Terminal() {
		t.Error("complete should be terminal")
	}
	if err := m.Advance(dto.StageError); err == nil {
		t.Error("advancing out of a terminal stage should fail")
	}
}

func TestStateMachineInvalidTransitions(t *testing.T) {
	tests := []struct {
		name  string
		setup []string
		next  string
	}{
		{
			name: "skip extracting",
			next: dto.StageEmbedding,
		},
		{
			name: "skip embedding",
			setup: []string{
				dto.StageExtracting,
			},
			next: dto.StageComplete,
		},
		{
			name:  "backwards",
			setup: []string{dto.StageExtracting, dto.StageEmbedding},
			next:  dto.StageExtracting,
		},
		{
			name: "unknown stage",
			next: "uploading",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewStateMachine()
			for _, step := range tt.setup {
				if err := m.Advance(step); err != nil {
					t.Fatalf("setup Advance(%s) failed: %v", step, err)
				}
			}
			if err := m.Advance(tt.next); err == nil {
				t.Errorf("Advance(%s) from %s should fail", tt.next, m.Stage())
			}
		})
	}
}

func TestStateMachineErrorFromAnyStage(t *testing.T) {
	setups := [][]string{
		{},
		{dto.StageExtracting},
		{dto.StageExtracting, dto.StageEmbedding},
	}

	for _, setup := range setups {
		m := NewStateMachine()
		for _, step := range setup {
			if err := m.Advance(step); err != nil {
				t.Fatalf("setup Advance(%s) failed: %v", step, err)
			}
		}
		if err := m.Advance(dto.StageError); err != nil {
			t.Errorf("Advance(error) from %s failed: %v", m.Stage(), err)
		}
		if !m.Terminal() {
			t.Error("error stage should be terminal")
		}
	}
}
