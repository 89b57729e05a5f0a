package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"studyvault-be/internal/pkg/logger"
	"studyvault-be/pkg/extract"
	"studyvault-be/pkg/llm"
)

// KnowledgePoint is an atomic, self-contained unit of academic content
// pulled out of a document section.
type KnowledgePoint struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	SourcePages []int    `json:"source_pages"`
	KeyConcepts []string `json:"key_concepts,omitempty"`
	KeyFormulas []string `json:"key_formulas,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// Section groups knowledge points under a model-assigned heading. Sections
// are transient: they are flattened into chunks and an outline, never
// persisted as-is.
type Section struct {
	Title           string           `json:"title"`
	Summary         string           `json:"summary"`
	SourcePages     []int            `json:"source_pages"`
	KnowledgePoints []KnowledgePoint `json:"knowledge_points"`
}

type extractionResult struct {
	Sections []Section `json:"sections"`
}

// StructuredExtractor asks a generative model to structure raw page text
// into sections and knowledge points.
type StructuredExtractor struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewStructuredExtractor(llmProvider llm.LLMProvider, logger logger.ILogger) *StructuredExtractor {
	return &StructuredExtractor{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Extract sends a single prompt covering all pages and validates the
// structured response. Model output is untrusted: malformed JSON or an
// empty structure degrades to zero sections rather than an error, and
// individually invalid sections or knowledge points are dropped while
// the rest survive.
func (e *StructuredExtractor) Extract(ctx context.Context, pages []extract.Page) ([]Section, error) {
	if len(pages) == 0 {
		return nil, nil
	}

	prompt := e.buildPrompt(pages)

	// Temperature 0 for deterministic structure
	response, err := e.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		return nil, fmt.Errorf("model request failed: %w", err)
	}

	sections := e.parseSections(response)
	e.logger.Info("StructuredExtractor.Extract", "extraction finished", map[string]interface{}{
		"pages":    len(pages),
		"sections": len(sections),
	})

	return sections, nil
}

func (e *StructuredExtractor) buildPrompt(pages []extract.Page) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You are an academic content analyzer. You read lecture material and structure it into sections of atomic knowledge points.\n")
	prompt.WriteString("A knowledge point is one self-contained concept a student could review in isolation.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<document>\n")
	for _, page := range pages {
		prompt.WriteString(fmt.Sprintf("--- PAGE %d ---\n", page.Page))
		prompt.WriteString(page.Text)
		prompt.WriteString("\n")
	}
	prompt.WriteString("</document>\n\n")

	prompt.WriteString("<rules>\n")
	prompt.WriteString("- Cover the WHOLE document. Do not stop after the first pages.\n")
	prompt.WriteString("- Group related material into sections with a short descriptive title and a one-sentence summary.\n")
	prompt.WriteString("- Each knowledge point needs a non-empty title and non-empty content written in full sentences.\n")
	prompt.WriteString("- A concept spanning multiple pages is ONE knowledge point listing all its source pages. Never emit duplicates.\n")
	prompt.WriteString("- source_pages are the 1-indexed page numbers the material came from.\n")
	prompt.WriteString("- key_concepts, key_formulas and examples are optional; include them only when the material actually contains them.\n")
	prompt.WriteString("</rules>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"sections\": [\n")
	prompt.WriteString("    {\n")
	prompt.WriteString("      \"title\": \"Section title\",\n")
	prompt.WriteString("      \"summary\": \"One sentence summary\",\n")
	prompt.WriteString("      \"source_pages\": [1, 2],\n")
	prompt.WriteString("      \"knowledge_points\": [\n")
	prompt.WriteString("        {\n")
	prompt.WriteString("          \"title\": \"Concept title\",\n")
	prompt.WriteString("          \"content\": \"Full explanation of the concept\",\n")
	prompt.WriteString("          \"source_pages\": [1],\n")
	prompt.WriteString("          \"key_concepts\": [\"term\"],\n")
	prompt.WriteString("          \"key_formulas\": [\"a^2 + b^2 = c^2\"],\n")
	prompt.WriteString("          \"examples\": [\"worked example\"]\n")
	prompt.WriteString("        }\n")
	prompt.WriteString("      ]\n")
	prompt.WriteString("    }\n")
	prompt.WriteString("  ]\n")
	prompt.WriteString("}\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

// parseSections validates the raw model response. Soft-fail policy: any
// problem at the document level yields nil, problems at the section or
// knowledge-point level drop only the offending substructure. Ordering of
// the surviving sections follows the model output.
func (e *StructuredExtractor) parseSections(response string) []Section {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		e.logger.Warn("StructuredExtractor.parseSections", "no JSON found in model response", nil)
		return nil
	}

	var result extractionResult
	if err := json.Unmarshal([]byte(jsonContent), &result); err != nil {
		e.logger.Warn("StructuredExtractor.parseSections", "model response is not valid JSON", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	sections := make([]Section, 0, len(result.Sections))
	for _, section := range result.Sections {
		if strings.TrimSpace(section.Title) == "" {
			continue
		}
		if section.SourcePages == nil {
			section.SourcePages = []int{}
		}

		points := make([]KnowledgePoint, 0, len(section.KnowledgePoints))
		for _, point := range section.KnowledgePoints {
			if strings.TrimSpace(point.Title) == "" || strings.TrimSpace(point.Content) == "" {
				continue
			}
			if point.SourcePages == nil {
				point.SourcePages = []int{}
			}
			points = append(points, point)
		}
		if len(points) == 0 {
			continue
		}

		section.KnowledgePoints = points
		sections = append(sections, section)
	}

	if len(sections) == 0 {
		return nil
	}
	return sections
}

// extractJSON isolates JSON content from a response that may be wrapped in
// markdown fences or prose.
func extractJSON(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")

	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}
