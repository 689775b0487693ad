// Package classify runs the pretrained linear text classifiers: the experience-level model and
// the job-role model. Artifacts are JSON exports of a TF-IDF vectorizer, a linear model and a
// label encoder.
package classify

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
)

// ArtifactNames names the three artifacts of a classifier.
type ArtifactNames struct {
	Model      string `yaml:"model" json:"model"`
	Vectorizer string `yaml:"vectorizer" json:"vectorizer"`
	Encoder    string `yaml:"encoder" json:"encoder"`
}

// RemoteJobRoleNames are the artifact names published for the job-role model.
var RemoteJobRoleNames = ArtifactNames{
	Model:      "model_exp1.json",
	Vectorizer: "tfidf_exp1.json",
	Encoder:    "encoder_exp1.json",
}

// Classifier is a loaded clean → vectorize → decide → decode chain. It is read-only after
// loading and safe for concurrent use.
type Classifier struct {
	clean      Cleaner
	vectorizer *Vectorizer
	model      *LinearModel
	encoder    *LabelEncoder
}

// NewClassifier assembles a classifier from decoded artifacts.
func NewClassifier(clean Cleaner, v *Vectorizer, m *LinearModel, e *LabelEncoder) *Classifier {
	return &Classifier{clean: clean, vectorizer: v, model: m, encoder: e}
}

// Labels returns the labels the classifier can produce.
func (c *Classifier) Labels() []string {
	return append([]string(nil), c.encoder.Classes...)
}

// Predict returns the label for text.
func (c *Classifier) Predict(text string) (string, error) {
	if c == nil || c.vectorizer == nil || c.model == nil || c.encoder == nil {
		return "", &PredictError{Message: "classifier is not loaded"}
	}
	if c.clean != nil {
		text = c.clean(text)
	}
	if strings.TrimSpace(text) == "" {
		return "", &PredictError{Message: "no text left after cleaning"}
	}
	return c.encoder.Decode(c.model.Decide(c.vectorizer.Transform(text)))
}

// LoadClassifier loads the named artifacts from a filesystem, typically os.DirFS(dir).
func LoadClassifier(fsys fs.FS, names ArtifactNames, clean Cleaner) (*Classifier, error) {
	return LoadFromStore(context.Background(), FSStore{FS: fsys}, names, clean)
}

// LoadFromStore fetches and decodes the named artifacts from store. When a fetched artifact
// fails to decode and the store keeps a local copy, the copy is dropped and fetched once more.
func LoadFromStore(ctx context.Context, store ArtifactStore, names ArtifactNames, clean Cleaner) (*Classifier, error) {
	var v *Vectorizer
	if err := fetchDecoded(ctx, store, names.Vectorizer, func(data []byte) (err error) {
		v, err = DecodeVectorizer(data)
		return err
	}); err != nil {
		return nil, err
	}

	var m *LinearModel
	if err := fetchDecoded(ctx, store, names.Model, func(data []byte) (err error) {
		m, err = DecodeLinearModel(data, v.Features())
		return err
	}); err != nil {
		return nil, err
	}

	var e *LabelEncoder
	if err := fetchDecoded(ctx, store, names.Encoder, func(data []byte) (err error) {
		e, err = DecodeLabelEncoder(data)
		return err
	}); err != nil {
		return nil, err
	}

	for _, class := range m.Classes {
		if class < 0 || class >= len(e.Classes) {
			return nil, &ArtifactError{Name: names.Encoder, Message: fmt.Sprintf("model class %d has no label", class)}
		}
	}
	return NewClassifier(clean, v, m, e), nil
}

func fetchDecoded(ctx context.Context, store ArtifactStore, name string, decode func([]byte) error) error {
	if name == "" {
		return &ArtifactError{Name: "<unnamed>", Message: "artifact name is empty"}
	}
	data, err := store.Fetch(ctx, name)
	if err != nil {
		return &ArtifactError{Name: name, Message: "fetch failed", Cause: err}
	}
	err = decode(data)
	if err == nil {
		return nil
	}

	inv, ok := store.(Invalidator)
	if !ok {
		return &ArtifactError{Name: name, Message: "decode failed", Cause: err}
	}
	if rmErr := inv.Invalidate(name); rmErr != nil {
		return &ArtifactError{Name: name, Message: "decode failed", Cause: err}
	}
	if data, err = store.Fetch(ctx, name); err != nil {
		return &ArtifactError{Name: name, Message: "refetch failed", Cause: err}
	}
	if err := decode(data); err != nil {
		return &ArtifactError{Name: name, Message: "decode failed", Cause: err}
	}
	return nil
}
