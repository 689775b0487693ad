package skills

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNER struct {
	phrases []string
	err     error
	calls   int
}

func (f *fakeNER) Tag(_ context.Context, _ string) ([]string, error) {
	f.calls++
	return f.phrases, f.err
}

func intPtr(i int) *int { return &i }

func TestExtract_NGrams(t *testing.T) {
	vocab := DefaultVocabulary()
	text := "Built REST services in Python and Node.js, deployed with Docker on Amazon Web Services. Practised test driven development and CI/CD. Strong problem solving."

	got := Extract(text, vocab)

	want := []string{"python", "node.js", "docker", "amazon web services", "test driven development", "ci/cd", "problem solving"}
	assert.Equal(t, want, filterKnown(got, want...))
	assert.NotContains(t, got, "aws")
}

// filterKnown keeps only the entries of got that appear in want, preserving got's order.
func filterKnown(got []string, want ...string) []string {
	keep := make(map[string]bool)
	for _, w := range want {
		keep[w] = true
	}
	var out []string
	for _, g := range got {
		if keep[g] {
			out = append(out, g)
		}
	}
	return out
}

func TestExtract_SymbolSkills(t *testing.T) {
	got := Extract("Languages: C++, C#, Go.", DefaultVocabulary())
	assert.Contains(t, got, "c++")
	assert.Contains(t, got, "c#")
	assert.Contains(t, got, "go")
}

func TestExtract_NoFuzzyMatching(t *testing.T) {
	got := Extract("Pythonic scripting and dockerized apps", DefaultVocabulary())
	assert.NotContains(t, got, "python")
	assert.NotContains(t, got, "docker")
}

func TestExtract_Deduplicated(t *testing.T) {
	got := Extract("python PYTHON Python", DefaultVocabulary())
	assert.Equal(t, []string{"python"}, got)
}

func TestExtract_NilVocabulary(t *testing.T) {
	assert.Empty(t, Extract("python", nil))
}

func TestLoadVocabulary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.csv")
	require.NoError(t, os.WriteFile(path, []byte("\ufeffQuantum Computing, Bioinformatics ,Zig\n1,0,1\n"), 0644))

	vocab, err := LoadVocabulary(path)
	require.NoError(t, err)
	assert.True(t, vocab.Contains("quantum computing"))
	assert.True(t, vocab.Contains("Bioinformatics"))
	assert.True(t, vocab.Contains("zig"))
	assert.True(t, vocab.Contains("python"))
	assert.Greater(t, vocab.Len(), DefaultVocabulary().Len())
}

func TestLoadVocabulary_Errors(t *testing.T) {
	_, err := LoadVocabulary(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = LoadVocabulary(empty)
	assert.Error(t, err)
}

func TestCategorize(t *testing.T) {
	vocab := DefaultVocabulary()
	groups := vocab.Categorize([]string{"python", "docker", "mysql", "payroll"})
	assert.Equal(t, []string{"python"}, groups[CategoryProgrammingLanguage])
	assert.Equal(t, []string{"docker"}, groups[CategoryCloudDevOps])
	assert.Equal(t, []string{"mysql"}, groups[CategoryDatabase])
	assert.Equal(t, []string{"payroll"}, groups["Other"])
}

func TestExtractor_NoEscalationWhenEnoughSkills(t *testing.T) {
	ner := &fakeNER{phrases: []string{"quantum computing"}}
	e := NewExtractor(nil, ner)

	got, err := e.Extract(context.Background(), "python and docker")
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "docker"}, got)
	assert.Equal(t, 0, ner.calls)
}

func TestExtractor_EscalatesBelowTwo(t *testing.T) {
	ner := &fakeNER{phrases: []string{"Quantum Computing", "Python", "quantum computing quantum computing"}}
	e := NewExtractor(nil, ner)

	got, err := e.Extract(context.Background(), "Experienced in python and quantum computing")
	require.NoError(t, err)
	assert.Equal(t, 1, ner.calls)
	assert.Equal(t, []string{"python", "quantum computing"}, got)
}

func TestExtractor_EscalationFailureKeepsDictionary(t *testing.T) {
	ner := &fakeNER{err: errors.New("endpoint down")}
	e := NewExtractor(nil, ner)

	got, err := e.Extract(context.Background(), "python")
	assert.Error(t, err)
	assert.Equal(t, []string{"python"}, got)
}

func TestPostProcess(t *testing.T) {
	in := []string{
		"  Node.js node.js ",
		"jane@x.com",
		"https://github.com/jane",
		"janedoe.com",
		"ASP.NET development",
		"2019",
		"a",
		"(react)",
		"the and",
		"Kubernetes",
		"kubernetes",
	}
	assert.Equal(t, []string{"node.js", "asp.net development", "kubernetes"}, PostProcess(in))
}

func TestMergeEntities_BIO(t *testing.T) {
	entities := []Entity{
		{Entity: "B-SKILL", Word: "machine"},
		{Entity: "I-SKILL", Word: "learning"},
		{Entity: "O", Word: "and"},
		{Entity: "B-SKILL", Word: "ku"},
		{Entity: "B-SKILL", Word: "##bernetes"},
		{Entity: "I-SKILL", Word: "orphan"},
		{Entity: "O", Word: "x"},
		{Entity: "I-SKILL", Word: "dangling"},
	}
	assert.Equal(t, []string{"machine learning", "kubernetes orphan"}, MergeEntities("", entities))
}

func TestMergeEntities_OffsetsAndGroups(t *testing.T) {
	text := "Skilled in Power BI and SQL"
	entities := []Entity{
		{Entity: "B-SKILL", Word: "power", Start: intPtr(11), End: intPtr(16)},
		{Entity: "I-SKILL", Word: "bi", Start: intPtr(17), End: intPtr(19)},
		{EntityGroup: "SKILL", Word: "SQL", Start: intPtr(24), End: intPtr(27)},
	}
	assert.Equal(t, []string{"Power BI", "SQL"}, MergeEntities(text, entities))
}

func TestHTTPTagger(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Knows terraform", req["inputs"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]Entity{{EntityGroup: "SKILL", Word: "terraform", Start: intPtr(6), End: intPtr(15)}})
	}))
	defer server.Close()

	tagger := NewHTTPTagger(server.URL, "secret", time.Second)
	got, err := tagger.Tag(context.Background(), "Knows terraform")
	require.NoError(t, err)
	assert.Equal(t, []string{"terraform"}, got)
}

func TestHTTPTagger_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewHTTPTagger(server.URL, "", time.Second).Tag(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
