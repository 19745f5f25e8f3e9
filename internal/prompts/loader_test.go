package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get(CareerRecommendation)
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.CareerTitle}}")

	_, err = Get("cover-letter")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestKeys(t *testing.T) {
	keys, err := Keys()
	require.NoError(t, err)
	assert.Equal(t, []Key{CareerRecommendation, CoursePlanReason}, keys)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		data map[string]string
		want string
	}{
		{
			name: "replaces every occurrence",
			tmpl: "Become a {{.Title}}. A {{.Title}} works in {{.Sector}}.",
			data: map[string]string{"Title": "Welder", "Sector": "infrastructure"},
			want: "Become a Welder. A Welder works in infrastructure.",
		},
		{
			name: "value containing a placeholder is not expanded again",
			tmpl: "{{.A}}",
			data: map[string]string{"A": "{{.B}}", "B": "b"},
			want: "{{.B}}",
		},
		{
			name: "missing value keeps placeholder",
			tmpl: "Hello {{.Name}}",
			data: map[string]string{},
			want: "Hello {{.Name}}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.tmpl, tt.data))
		})
	}
}

func TestRender_FillsEveryPlaceholder(t *testing.T) {
	tmpl, err := Get(CareerRecommendation)
	require.NoError(t, err)
	data := map[string]string{"Unused": "ignored"}
	for _, name := range Placeholders(tmpl) {
		data[name] = "x"
	}

	out, err := Render(CareerRecommendation, data)
	require.NoError(t, err)
	assert.NotContains(t, out, "{{.")
}

func TestRender_MissingData(t *testing.T) {
	_, err := Render(CareerRecommendation, map[string]string{"CareerTitle": "Electrician"})
	var missing *MissingDataError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, CareerRecommendation, missing.Key)
	assert.Contains(t, missing.Missing, "Sector")
	assert.NotContains(t, missing.Missing, "CareerTitle")
}

func TestRender_CoursePlanReason(t *testing.T) {
	out, err := Render(CoursePlanReason, map[string]string{"CareerTitle": "Dental Hygienist"})
	require.NoError(t, err)
	assert.Equal(t, "Builds toward Dental Hygienist", out)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, Placeholders("{{.B}} and {{.A}} and {{.B}}"))
	assert.Empty(t, Placeholders("plain {{ .NotOne }}"))
}
