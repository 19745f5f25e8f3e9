package llm

import (
	"fmt"
	"strings"
)

// OutputSchema describes the JSON shape a prompt asks the model to return.
// It renders into a compact schema hint appended to the prompt.
type OutputSchema struct {
	Name   string
	Fields []SchemaField
}

// SchemaField defines a single field in the expected output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // type hint, e.g. "string", "[{...}]"
	Description string
	Required    bool
}

// Hint renders the schema as a JSON-like outline with inline comments.
func (s OutputSchema) Hint() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for i, field := range s.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `"string"`
		}
		required := ""
		if field.Required {
			required = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  %q: %s%s", field.Name, typeHint, required))
		if field.Description != "" {
			sb.WriteString(" // " + field.Description)
		}
		if i < len(s.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// BuildStructuredPrompt appends the output contract to prompt.
func BuildStructuredPrompt(prompt, schemaHint string) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(prompt))
	sb.WriteString("\n\nReturn ONLY valid JSON matching this exact structure:\n")
	sb.WriteString(schemaHint)
	sb.WriteString("\n\nIMPORTANT:\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")
	sb.WriteString("- Use only the enumerated values where a field lists them.\n")
	return sb.String()
}

// RecommendationSchema is the output outline for one career recommendation.
func RecommendationSchema() OutputSchema {
	return OutputSchema{
		Name: "Recommendation",
		Fields: []SchemaField{
			{
				Name:        "pathway",
				Type:        `[{"order": int, "title": "string", "description": "string", "duration": "string"}]`,
				Description: "3-6 ordered steps, each naming the career",
				Required:    true,
			},
			{
				Name:        "timeline",
				Type:        `"string"`,
				Description: "overall time from today to entering the career",
				Required:    true,
			},
			{
				Name:        "skill_gaps",
				Type:        `[{"skill": "string", "importance": "critical|important|helpful", "acquisition": "string"}]`,
				Description: "2-5 skills the student still needs",
				Required:    true,
			},
			{
				Name:        "action_items",
				Type:        `[{"priority": "high|medium|low", "timeline": "string", "category": "academic|experience|certification|networking|exploration", "description": "string"}]`,
				Description: "2-6 concrete next steps",
				Required:    true,
			},
			{
				Name:        "courses",
				Type:        `[{"course": "string", "subject": "string", "relevance": "high|medium|low", "reason": "string"}]`,
				Description: "high school or early college courses",
				Required:    false,
			},
		},
	}
}
