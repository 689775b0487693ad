package classify

import (
	"context"
	"io/fs"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/resume-parser/internal/types"
)

// relabels renames model labels that are reported under a broader role.
var relabels = map[string]string{
	"Java Developer": "Backend Developer",
}

func relabel(role string) string {
	if r, ok := relabels[role]; ok {
		return r
	}
	return role
}

// JobRolePredictor predicts a job role from resume text.
type JobRolePredictor interface {
	PredictRole(ctx context.Context, text string) (string, error)
}

// JobRole is a job-role classifier loaded up front.
type JobRole struct {
	clf *Classifier
}

// NewJobRole wraps a loaded classifier.
func NewJobRole(clf *Classifier) *JobRole {
	return &JobRole{clf: clf}
}

// LoadJobRole loads the job-role artifacts from fsys.
func LoadJobRole(fsys fs.FS, names ArtifactNames) (*JobRole, error) {
	clf, err := LoadClassifier(fsys, names, CleanResume)
	if err != nil {
		return nil, err
	}
	return NewJobRole(clf), nil
}

// PredictRole implements JobRolePredictor.
func (j *JobRole) PredictRole(_ context.Context, text string) (string, error) {
	role, err := j.clf.Predict(text)
	if err != nil {
		return "", err
	}
	return relabel(role), nil
}

// RemoteJobRole loads the job-role artifacts from a store on first use. A failed load is not
// cached, so the next call tries again. Failures never surface: PredictRole answers
// types.NotSpecified instead.
type RemoteJobRole struct {
	store       ArtifactStore
	names       ArtifactNames
	loadTimeout time.Duration

	loaded atomic.Pointer[Classifier]
	group  singleflight.Group
}

// NewRemoteJobRole creates a lazy classifier backed by store.
func NewRemoteJobRole(store ArtifactStore, names ArtifactNames, loadTimeout time.Duration) *RemoteJobRole {
	if names == (ArtifactNames{}) {
		names = RemoteJobRoleNames
	}
	if loadTimeout <= 0 {
		loadTimeout = 2 * time.Minute
	}
	return &RemoteJobRole{store: store, names: names, loadTimeout: loadTimeout}
}

// Loaded reports whether the artifacts have been loaded.
func (r *RemoteJobRole) Loaded() bool {
	return r.loaded.Load() != nil
}

// PredictRole implements JobRolePredictor.
func (r *RemoteJobRole) PredictRole(ctx context.Context, text string) (string, error) {
	clf, err := r.classifier(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("job-role model unavailable")
		return types.NotSpecified, nil
	}
	role, err := clf.Predict(text)
	if err != nil {
		log.Warn().Err(err).Msg("job-role prediction failed")
		return types.NotSpecified, nil
	}
	return relabel(role), nil
}

func (r *RemoteJobRole) classifier(ctx context.Context) (*Classifier, error) {
	if clf := r.loaded.Load(); clf != nil {
		return clf, nil
	}
	// The load is shared by every waiting caller, so it must outlive any single caller's cancel.
	ch := r.group.DoChan("load", func() (any, error) {
		if clf := r.loaded.Load(); clf != nil {
			return clf, nil
		}
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.loadTimeout)
		defer cancel()

		log.Info().Str("model", r.names.Model).Msg("loading job-role model")
		clf, err := LoadFromStore(loadCtx, r.store, r.names, CleanResume)
		if err != nil {
			return nil, err
		}
		r.loaded.Store(clf)
		return clf, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Classifier), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
