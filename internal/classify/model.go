package classify

import (
	"encoding/json"
	"fmt"
)

// LinearModel is a fitted one-vs-rest linear classifier exported as JSON.
type LinearModel struct {
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
	Classes   []int       `json:"classes"`
}

// DecodeLinearModel parses a model artifact and checks its shape against features columns.
func DecodeLinearModel(data []byte, features int) (*LinearModel, error) {
	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	if len(m.Coef) == 0 {
		return nil, fmt.Errorf("model has no coefficients")
	}
	if len(m.Intercept) != len(m.Coef) {
		return nil, fmt.Errorf("model has %d intercepts for %d coefficient rows", len(m.Intercept), len(m.Coef))
	}
	for i, row := range m.Coef {
		if len(row) != features {
			return nil, fmt.Errorf("coefficient row %d has %d columns, vectorizer has %d", i, len(row), features)
		}
	}
	want := len(m.Coef)
	if want == 1 {
		want = 2
	}
	if len(m.Classes) != want {
		return nil, fmt.Errorf("model has %d classes, expected %d", len(m.Classes), want)
	}
	return &m, nil
}

// Decide scores a sparse row and returns the predicted class index.
func (m *LinearModel) Decide(row map[int]float64) int {
	scores := make([]float64, len(m.Coef))
	for i, coef := range m.Coef {
		score := m.Intercept[i]
		for idx, x := range row {
			score += coef[idx] * x
		}
		scores[i] = score
	}

	if len(scores) == 1 {
		if scores[0] > 0 {
			return m.Classes[1]
		}
		return m.Classes[0]
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return m.Classes[best]
}

// LabelEncoder maps class indices back to label strings.
type LabelEncoder struct {
	Classes []string `json:"classes"`
}

// DecodeLabelEncoder parses an encoder artifact.
func DecodeLabelEncoder(data []byte) (*LabelEncoder, error) {
	var e LabelEncoder
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to decode label encoder: %w", err)
	}
	if len(e.Classes) == 0 {
		return nil, fmt.Errorf("label encoder has no classes")
	}
	return &e, nil
}

// Decode returns the label of class index i.
func (e *LabelEncoder) Decode(i int) (string, error) {
	if i < 0 || i >= len(e.Classes) {
		return "", &PredictError{Message: fmt.Sprintf("class index %d outside encoder of %d labels", i, len(e.Classes))}
	}
	return e.Classes[i], nil
}
