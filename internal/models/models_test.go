package models

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-parser/internal/classify"
	"github.com/jonathan/resume-parser/internal/config"
)

const (
	vectorizerJSON = `{"vocabulary":{"senior":0,"lead":1,"intern":2,"graduate":3},"idf":[1,1,1,1]}`
	modelJSON      = `{"coef":[[2,1,-2,-1]],"intercept":[0],"classes":[0,1]}`
	encoderJSON    = `{"classes":["Entry","Senior"]}`
)

func writeArtifacts(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for name, data := range map[string]string{
		"model.json":   modelJSON,
		"tfidf.json":   vectorizerJSON,
		"encoder.json": encoderJSON,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0644))
	}
}

func localSource(dir string) config.ModelSource {
	return config.ModelSource{
		Source:     "local",
		Dir:        dir,
		Model:      "model.json",
		Vectorizer: "tfidf.json",
		Encoder:    "encoder.json",
	}
}

type objectMap map[string]string

func (o objectMap) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := o[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return []byte(data), nil
}

func TestLoad_Local(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir)

	langs := filepath.Join(dir, "languages.txt")
	require.NoError(t, os.WriteFile(langs, []byte("Language\nKlingon\nEnglish\n"), 0644))

	cfg := config.Default()
	cfg.Models.Experience = localSource(dir)
	cfg.Models.JobRole = localSource(dir)
	cfg.Languages = config.LanguagesConfig{Path: langs, DisableDetection: true}

	m, err := Load(context.Background(), &cfg, nil)
	require.NoError(t, err)

	level, err := m.Experience.Predict(context.Background(), "Senior engineer and team lead")
	require.NoError(t, err)
	assert.Equal(t, "Senior", level)

	_, ok := m.JobRole.(*classify.JobRole)
	assert.True(t, ok)

	assert.Equal(t, []string{"Klingon"}, m.Languages.Extract("Speaks Klingon fluently"))
	assert.NotNil(t, m.Skills)

	edu := m.Education.Entries("Education\nPhD in Computer Science")
	require.Len(t, edu, 1)
	assert.Equal(t, "phd", edu[0].Level)
}

func TestLoad_EducationReferenceFallback(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir)

	cfg := config.Default()
	cfg.Models.Experience = localSource(dir)
	cfg.Education = config.EducationConfig{Path: filepath.Join(dir, "missing.csv")}

	m, err := Load(context.Background(), &cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, m.Education)
	assert.NotEmpty(t, m.Education.Entries("MBA, Strathmore University"))
}

func TestLoad_MissingExperienceIsFatal(t *testing.T) {
	cfg := config.Default()
	cfg.Models.Experience = localSource(filepath.Join(t.TempDir(), "missing"))

	_, err := Load(context.Background(), &cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "experience classifier")
}

func TestLoad_JobRoleFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir)

	cfg := config.Default()
	cfg.Models.Experience = localSource(dir)
	cfg.Models.JobRole = localSource(filepath.Join(dir, "missing"))

	m, err := Load(context.Background(), &cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, m.JobRole)
}

func TestLoad_ObjectSource(t *testing.T) {
	objects := objectMap{
		"models/experience/model.json":   modelJSON,
		"models/experience/tfidf.json":   vectorizerJSON,
		"models/experience/encoder.json": encoderJSON,
	}
	src := localSource("")
	src.Source = "object"
	src.Prefix = "models/experience"

	cfg := config.Default()
	cfg.Models.Experience = src

	m, err := Load(context.Background(), &cfg, objects)
	require.NoError(t, err)

	level, err := m.Experience.Predict(context.Background(), "graduate intern")
	require.NoError(t, err)
	assert.Equal(t, "Entry", level)
}

func TestArtifactStore(t *testing.T) {
	src := localSource("")
	src.Source = "object"
	_, err := ArtifactStore(src, nil)
	assert.Error(t, err)

	src.Source = "ftp"
	_, err = ArtifactStore(src, nil)
	assert.Error(t, err)

	hub := config.Default().Models.JobRole
	hub.CacheDir = t.TempDir()
	store, err := ArtifactStore(hub, nil)
	require.NoError(t, err)
	cached, ok := store.(*classify.CachedStore)
	require.True(t, ok)
	assert.Equal(t, hub.CacheDir, cached.Dir)
}

func TestLoadJobRole_RemoteIsLazy(t *testing.T) {
	hub := config.Default().Models.JobRole
	hub.CacheDir = t.TempDir()

	role, err := LoadJobRole(hub, nil)
	require.NoError(t, err)
	remote, ok := role.(*classify.RemoteJobRole)
	require.True(t, ok)
	assert.False(t, remote.Loaded())
}
