package classify

import (
	"context"
	"io/fs"
)

// ExperienceLevel predicts a seniority label (Entry, Mid, Senior, ...) from resume text.
type ExperienceLevel struct {
	clf *Classifier
}

// NewExperienceLevel wraps a loaded classifier.
func NewExperienceLevel(clf *Classifier) *ExperienceLevel {
	return &ExperienceLevel{clf: clf}
}

// LoadExperienceLevel loads the experience-level artifacts from fsys.
func LoadExperienceLevel(fsys fs.FS, names ArtifactNames) (*ExperienceLevel, error) {
	clf, err := LoadClassifier(fsys, names, CleanForExperience)
	if err != nil {
		return nil, err
	}
	return NewExperienceLevel(clf), nil
}

// Predict returns the experience level of text.
func (e *ExperienceLevel) Predict(_ context.Context, text string) (string, error) {
	return e.clf.Predict(text)
}
