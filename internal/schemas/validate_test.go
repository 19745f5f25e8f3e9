package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRecommendation = `{
  "pathway": [
    {"order": 1, "title": "Finish high school", "description": "Take biology"},
    {"order": 2, "title": "Enroll in an ADN program", "description": "Two years"},
    {"order": 3, "title": "Pass the NCLEX-RN", "description": "Licensure"}
  ],
  "timeline": "About 3 years",
  "skill_gaps": [
    {"skill": "Anatomy", "importance": "critical", "acquisition": "Biology classes"},
    {"skill": "Patient communication", "importance": "important", "acquisition": "Volunteer"}
  ],
  "action_items": [
    {"priority": "high", "timeline": "This semester", "category": "academic", "description": "Take chemistry"},
    {"priority": "medium", "timeline": "This summer", "category": "experience", "description": "Volunteer at a clinic"}
  ]
}`

func TestValidate_ValidRecommendation(t *testing.T) {
	assert.NoError(t, Validate(Recommendation, []byte(validRecommendation)))
}

func TestValidate_RecommendationConstraints(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing pathway", `{"timeline":"x","skill_gaps":[],"action_items":[]}`},
		{"short pathway", `{"pathway":[{"order":1,"title":"a","description":"b"}],"timeline":"x",
			"skill_gaps":[{"skill":"a","importance":"critical","acquisition":"b"},{"skill":"c","importance":"helpful","acquisition":"d"}],
			"action_items":[{"priority":"high","timeline":"now","category":"academic","description":"a"},{"priority":"low","timeline":"later","category":"networking","description":"b"}]}`},
		{"bad importance", `{"pathway":[{"order":1,"title":"a","description":"b"},{"order":2,"title":"a","description":"b"},{"order":3,"title":"a","description":"b"}],"timeline":"x",
			"skill_gaps":[{"skill":"a","importance":"urgent","acquisition":"b"},{"skill":"c","importance":"helpful","acquisition":"d"}],
			"action_items":[{"priority":"high","timeline":"now","category":"academic","description":"a"},{"priority":"low","timeline":"later","category":"networking","description":"b"}]}`},
		{"wrong type", `{"pathway":"step one","timeline":3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(Recommendation, []byte(tt.doc))
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Errors)
		})
	}
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("transcript", []byte(`{}`))
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, Name("transcript"), le.Schema)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(Recommendation, []byte(`{not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")
}

func TestValidate_ReportsRuleAndOrdersByField(t *testing.T) {
	doc := `{"pathway":[{"order":1,"title":"a","description":"b"},{"order":2,"title":"a","description":"b"},{"order":3,"title":"a","description":"b"}],
		"skill_gaps":[{"skill":"a","importance":"urgent","acquisition":"b"},{"skill":"c","importance":"helpful","acquisition":"d"}],
		"action_items":[{"priority":"high","timeline":"now","category":"academic","description":"a"},{"priority":"low","timeline":"later","category":"networking","description":"b"}]}`

	err := Validate(Recommendation, []byte(doc))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, Recommendation, ve.Schema)

	rules := map[string]string{}
	for _, fe := range ve.Errors {
		rules[fe.Field] = fe.Rule
	}
	assert.Equal(t, "required", rules["(root)"])
	assert.Equal(t, "enum", rules["skill_gaps.0.importance"])
	assert.IsNonDecreasing(t, ve.Fields())
	assert.Contains(t, ve.Error(), "recommendation schema:")
}

func TestValidateValue(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(validRecommendation), &doc))
	assert.NoError(t, ValidateValue(Recommendation, doc))

	doc["timeline"] = 3
	var ve *ValidationError
	require.ErrorAs(t, ValidateValue(Recommendation, doc), &ve)
	assert.Equal(t, []string{"timeline"}, ve.Fields())
}

func TestSource_EmbedsAllSchemas(t *testing.T) {
	for _, name := range []Name{Recommendation, Submission} {
		src, err := Source(name)
		require.NoError(t, err, name)
		assert.Contains(t, src, `"$schema"`)
	}
}
