package languages

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDetector struct {
	lang string
	err  error
}

func (f fakeDetector) Detect(string) (string, error) {
	return f.lang, f.err
}

func TestMatch_OrderAndMultiWord(t *testing.T) {
	e := New([]string{"English", "French", "Swahili", "Mandarin Chinese", "Mandarin", "english"}, nil)
	assert.Equal(t, []string{"English", "French", "Swahili", "Mandarin Chinese"}, e.Names()[:4])

	got := e.Match("Languages: swahili (native), Mandarin Chinese, FRENCH; some English.")
	assert.Equal(t, []string{"Swahili", "Mandarin", "Mandarin Chinese", "French", "English"}, got)
}

func TestMatch_WholeWordsOnly(t *testing.T) {
	e := New([]string{"Thai", "Lao"}, nil)
	assert.Empty(t, e.Match("Thailand and Laos"))
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		detector Detector
		text     string
		want     []string
	}{
		{
			name:     "detected language appended",
			detector: fakeDetector{lang: "Spanish"},
			text:     "Speaks French",
			want:     []string{"French", "Spanish"},
		},
		{
			name:     "detected language already present",
			detector: fakeDetector{lang: "english"},
			text:     "Fluent in English and French",
			want:     []string{"English", "French"},
		},
		{
			name:     "no matches uses detection",
			detector: fakeDetector{lang: "German"},
			text:     "Ich bin Ingenieur",
			want:     []string{"German"},
		},
		{
			name:     "no matches and detection fails",
			detector: fakeDetector{err: errors.New("unknown")},
			text:     "12345",
			want:     []string{"English"},
		},
		{
			name: "no detector",
			text: "",
			want: []string{"English"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New([]string{"English", "French", "German", "Spanish"}, tt.detector)
			assert.Equal(t, tt.want, e.Extract(tt.text))
		})
	}
}

func TestExtract_Idempotent(t *testing.T) {
	e := New([]string{"English"}, fakeDetector{lang: "English"})
	first := e.Extract("English speaker")
	assert.Equal(t, []string{"English"}, first)
	assert.Equal(t, first, e.Extract("English speaker"))
}

func TestWhatlangDetector(t *testing.T) {
	d := WhatlangDetector{}
	_, err := d.Detect("   ")
	assert.Error(t, err)

	got, err := d.Detect("I have worked as a software engineer for many years and I enjoy building reliable distributed systems with my team.")
	require.NoError(t, err)
	assert.Equal(t, "English", got)
}

func TestDefault(t *testing.T) {
	e := Default()
	assert.Contains(t, e.Names(), "Swahili")
	assert.NotContains(t, e.Names(), "Language")
	assert.Contains(t, e.Match("I speak Kiswahili and Sign Language"), "Kiswahili")
}

func TestLoadNames(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "langs.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("\ufeffCode,Language\nen,English\nsw, Swahili\nxx,\n"), 0644))
	names, err := LoadNames(csvPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"English", "Swahili"}, names)

	txtPath := filepath.Join(dir, "langs.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("Yoruba\nIgbo\n\nHausa\n"), 0644))
	names, err = LoadNames(txtPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Yoruba", "Igbo", "Hausa"}, names)

	_, err = LoadNames(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
