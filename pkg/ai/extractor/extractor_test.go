package extractor

import (
	"context"
	"errors"
	"testing"

	"studyvault-be/pkg/extract"
	"studyvault-be/pkg/llm"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeLLM struct {
	response string
	err      error
	calls    int
	prompt   string
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	if len(history) > 0 {
		f.prompt = history[len(history)-1].Content
	}
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.response, f.err
}

const validResponse = `{
  "sections": [
    {
      "title": "Derivatives",
      "summary": "Rates of change",
      "source_pages": [1],
      "knowledge_points": [
        {"title": "Definition", "content": "The derivative is a limit.", "source_pages": [1]},
        {"title": "Power rule", "content": "d/dx x^n = n x^(n-1).", "source_pages": [1], "key_formulas": ["n x^(n-1)"]}
      ]
    },
    {
      "title": "Integrals",
      "summary": "Accumulation",
      "source_pages": [2],
      "knowledge_points": [
        {"title": "Antiderivative", "content": "Integration reverses differentiation.", "source_pages": [2]}
      ]
    }
  ]
}`

func testPages() []extract.Page {
	return []extract.Page{{Page: 1, Text: "derivatives"}, {Page: 2, Text: "integrals"}}
}

func TestExtractParsesValidResponse(t *testing.T) {
	provider := &fakeLLM{response: validResponse}
	e := NewStructuredExtractor(provider, nopLogger{})

	sections, err := e.Extract(context.Background(), testPages())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(sections))
	}
	// Model-assigned ordering preserved
	if sections[0].Title != "Derivatives" || sections[1].Title != "Integrals" {
		t.Errorf("order = %q, %q", sections[0].Title, sections[1].Title)
	}
	if len(sections[0].KnowledgePoints) != 2 || len(sections[1].KnowledgePoints) != 1 {
		t.Errorf("point counts = %d, %d", len(sections[0].KnowledgePoints), len(sections[1].KnowledgePoints))
	}
	if provider.calls != 1 {
		t.Errorf("model calls = %d, want 1 for the whole document", provider.calls)
	}
}

func TestExtractHandlesFencedResponse(t *testing.T) {
	provider := &fakeLLM{response: "```json\n" + validResponse + "\n```"}
	e := NewStructuredExtractor(provider, nopLogger{})

	sections, err := e.Extract(context.Background(), testPages())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(sections))
	}
}

func TestExtractNoPagesSkipsModel(t *testing.T) {
	provider := &fakeLLM{response: validResponse}
	e := NewStructuredExtractor(provider, nopLogger{})

	sections, err := e.Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if sections != nil {
		t.Errorf("sections = %v, want nil", sections)
	}
	if provider.calls != 0 {
		t.Errorf("model calls = %d, want 0", provider.calls)
	}
}

func TestExtractModelFailurePropagates(t *testing.T) {
	provider := &fakeLLM{err: errors.New("timeout")}
	e := NewStructuredExtractor(provider, nopLogger{})

	if _, err := e.Extract(context.Background(), testPages()); err == nil {
		t.Error("transport failure should propagate")
	}
}

func TestParseSectionsSoftFailures(t *testing.T) {
	tests := []struct {
		name         string
		response     string
		wantSections int
		wantPoints   int // points in first surviving section
	}{
		{
			name:         "prose only",
			response:     "I could not process this document.",
			wantSections: 0,
		},
		{
			name:         "malformed json",
			response:     `{"sections": [{"title": "A"`,
			wantSections: 0,
		},
		{
			name:         "empty sections array",
			response:     `{"sections": []}`,
			wantSections: 0,
		},
		{
			name: "untitled section dropped",
			response: `{"sections": [
				{"title": "", "knowledge_points": [{"title": "T", "content": "C"}]},
				{"title": "Kept", "knowledge_points": [{"title": "T", "content": "C"}]}
			]}`,
			wantSections: 1,
			wantPoints:   1,
		},
		{
			name: "invalid points dropped, valid kept",
			response: `{"sections": [
				{"title": "Mixed", "knowledge_points": [
					{"title": "", "content": "no title"},
					{"title": "no content", "content": "  "},
					{"title": "Valid", "content": "Survives"}
				]}
			]}`,
			wantSections: 1,
			wantPoints:   1,
		},
		{
			name: "section with only invalid points dropped",
			response: `{"sections": [
				{"title": "Empty", "knowledge_points": [{"title": "", "content": ""}]}
			]}`,
			wantSections: 0,
		},
		{
			name: "json embedded in prose",
			response: `Here is the structure you asked for:
{"sections": [{"title": "S", "knowledge_points": [{"title": "T", "content": "C"}]}]}
Let me know if you need anything else.`,
			wantSections: 1,
			wantPoints:   1,
		},
	}

	e := NewStructuredExtractor(nil, nopLogger{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections := e.parseSections(tt.response)
			if len(sections) != tt.wantSections {
				t.Fatalf("sections = %d, want %d", len(sections), tt.wantSections)
			}
			if tt.wantSections > 0 && len(sections[0].KnowledgePoints) != tt.wantPoints {
				t.Errorf("points = %d, want %d", len(sections[0].KnowledgePoints), tt.wantPoints)
			}
		})
	}
}

func TestParseSectionsDefaultsSourcePages(t *testing.T) {
	e := NewStructuredExtractor(nil, nopLogger{})
	sections := e.parseSections(`{"sections": [{"title": "S", "knowledge_points": [{"title": "T", "content": "C"}]}]}`)

	if len(sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(sections))
	}
	if sections[0].SourcePages == nil {
		t.Error("section source pages should default to empty, not nil")
	}
	if sections[0].KnowledgePoints[0].SourcePages == nil {
		t.Error("point source pages should default to empty, not nil")
	}
}
