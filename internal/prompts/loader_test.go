package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		key     string
		wantErr string
	}{
		{name: "extraction prompt", file: "parsing.json", key: "resume-extraction"},
		{name: "system prompt", file: "parsing.json", key: "resume-extraction-system"},
		{name: "missing file", file: "nonexistent.json", key: "resume-extraction", wantErr: "failed to read prompt file"},
		{name: "missing key", file: "parsing.json", key: "cover-letter", wantErr: "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ClearCache()
			prompt, err := Get(tt.file, tt.key)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, prompt)
		})
	}
}

func TestExtractionPromptContent(t *testing.T) {
	ClearCache()

	prompt := MustGet("parsing.json", "resume-extraction")
	assert.Contains(t, prompt, "Total Estimated Years of Experience")
	assert.Equal(t, []string{"ResumeText"}, Placeholders(prompt))

	system := MustGet("parsing.json", "resume-extraction-system")
	assert.Contains(t, system, "Return ONLY valid JSON")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()
	assert.Panics(t, func() { MustGet("parsing.json", "cover-letter") })
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{"fills placeholders", "Candidate {{.Name}} applied for {{.Role}}", map[string]string{"Name": "Jane", "Role": "SRE"}, "Candidate Jane applied for SRE"},
		{"no placeholders", "Plain text", map[string]string{"Name": "Jane"}, "Plain text"},
		{"missing value kept", "Resume: {{.ResumeText}}", nil, "Resume: {{.ResumeText}}"},
		{"single pass", "A {{.X}} B {{.Y}}", map[string]string{"X": "{{.Y}}", "Y": "y"}, "A {{.Y}} B y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, Placeholders("{{.B}} {{.A}} {{.B}}"))
	assert.Empty(t, Placeholders("none"))
}

func TestRender(t *testing.T) {
	ClearCache()

	prompt, err := Render("parsing.json", "resume-extraction", map[string]string{"ResumeText": "Jane Doe\nEngineer"})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Jane Doe\nEngineer")
	assert.NotContains(t, prompt, "{{.ResumeText}}")
	assert.Contains(t, prompt, `"n/a"`)

	_, err = Render("parsing.json", "resume-extraction", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ResumeText")
}

func TestListAndCache(t *testing.T) {
	ClearCache()

	keys, err := List("parsing.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"resume-extraction", "resume-extraction-system"}, keys)

	first, err := Get("parsing.json", "resume-extraction")
	require.NoError(t, err)
	second, err := Get("parsing.json", "resume-extraction")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
