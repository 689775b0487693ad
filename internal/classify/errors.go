package classify

import "fmt"

// ArtifactError represents a failure to fetch or decode a classifier artifact.
type ArtifactError struct {
	Name    string
	Message string
	Cause   error
}

func (e *ArtifactError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("artifact %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("artifact %s: %s", e.Name, e.Message)
}

func (e *ArtifactError) Unwrap() error {
	return e.Cause
}

// PredictError represents a failure while scoring or decoding a prediction.
type PredictError struct {
	Message string
	Cause   error
}

func (e *PredictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("prediction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("prediction failed: %s", e.Message)
}

func (e *PredictError) Unwrap() error {
	return e.Cause
}
