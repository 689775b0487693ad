// Package models loads the classifiers, vocabularies and reference lists used by the resolver.
package models

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-parser/internal/classify"
	"github.com/jonathan/resume-parser/internal/config"
	"github.com/jonathan/resume-parser/internal/education"
	"github.com/jonathan/resume-parser/internal/languages"
	"github.com/jonathan/resume-parser/internal/resolve"
	"github.com/jonathan/resume-parser/internal/skills"
)

// Load builds the resolver models from cfg. objects may be nil when no object store is
// configured. The experience classifier is required; every other piece degrades to a logged
// warning so the matching resolution step falls back on its own.
func Load(ctx context.Context, cfg *config.Config, objects classify.ObjectGetter) (*resolve.Models, error) {
	m := &resolve.Models{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		exp, err := LoadExperience(gctx, cfg.Models.Experience, objects)
		if err != nil {
			return fmt.Errorf("failed to load experience classifier: %w", err)
		}
		m.Experience = exp
		return nil
	})

	g.Go(func() error {
		role, err := LoadJobRole(cfg.Models.JobRole, objects)
		if err != nil {
			log.Warn().Err(err).Msg("job-role classifier unavailable, job role fallback disabled")
			return nil
		}
		m.JobRole = role
		return nil
	})

	g.Go(func() error {
		m.Languages = loadLanguages(cfg.Languages)
		return nil
	})

	g.Go(func() error {
		m.Skills = loadSkills(cfg.Skills)
		return nil
	})

	g.Go(func() error {
		m.Education = loadEducation(cfg.Education)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

// ArtifactStore returns the store a model source reads from.
func ArtifactStore(src config.ModelSource, objects classify.ObjectGetter) (classify.ArtifactStore, error) {
	switch src.Source {
	case "local":
		return classify.FSStore{FS: os.DirFS(src.Dir)}, nil
	case "hub":
		hub := classify.NewHTTPStore(src.HubURL, src.Repo, src.LoadTimeout)
		return classify.NewCachedStore(hub, src.CacheDir, src.Repo), nil
	case "object":
		if objects == nil {
			return nil, fmt.Errorf("model source %q needs an object store", src.Source)
		}
		return classify.ObjectStoreSource{Store: objects, Prefix: src.Prefix}, nil
	default:
		return nil, fmt.Errorf("unknown model source %q", src.Source)
	}
}

func names(src config.ModelSource) classify.ArtifactNames {
	return classify.ArtifactNames{
		Model:      filepath.ToSlash(src.Model),
		Vectorizer: filepath.ToSlash(src.Vectorizer),
		Encoder:    filepath.ToSlash(src.Encoder),
	}
}

// LoadExperience loads the experience-level classifier described by src.
func LoadExperience(ctx context.Context, src config.ModelSource, objects classify.ObjectGetter) (*classify.ExperienceLevel, error) {
	store, err := ArtifactStore(src, objects)
	if err != nil {
		return nil, err
	}
	clf, err := classify.LoadFromStore(ctx, store, names(src), classify.CleanForExperience)
	if err != nil {
		return nil, err
	}
	log.Info().Str("source", src.Source).Strs("labels", clf.Labels()).Msg("experience classifier loaded")
	return classify.NewExperienceLevel(clf), nil
}

// LoadJobRole loads a local model eagerly; remote sources load on first prediction.
func LoadJobRole(src config.ModelSource, objects classify.ObjectGetter) (classify.JobRolePredictor, error) {
	store, err := ArtifactStore(src, objects)
	if err != nil {
		return nil, err
	}
	if src.Source == "local" {
		clf, err := classify.LoadFromStore(context.Background(), store, names(src), classify.CleanResume)
		if err != nil {
			return nil, err
		}
		log.Info().Strs("labels", clf.Labels()).Msg("job-role classifier loaded")
		return classify.NewJobRole(clf), nil
	}
	log.Info().Str("source", src.Source).Str("repo", src.Repo).Msg("job-role classifier will load on first use")
	return classify.NewRemoteJobRole(store, names(src), src.LoadTimeout), nil
}

func loadLanguages(cfg config.LanguagesConfig) *languages.Extractor {
	var detector languages.Detector = languages.WhatlangDetector{}
	if cfg.DisableDetection {
		detector = nil
	}

	list := languages.DefaultNames()
	if cfg.Path != "" {
		loaded, err := languages.LoadNames(cfg.Path)
		if err != nil {
			log.Warn().Err(err).Msg("using built-in language list")
		} else {
			list = loaded
		}
	}
	return languages.New(list, detector)
}

func loadEducation(cfg config.EducationConfig) *education.Extractor {
	ref := education.DefaultReference()
	if cfg.Path != "" {
		loaded, err := education.LoadReference(cfg.Path)
		if err != nil {
			log.Warn().Err(err).Msg("using built-in education reference")
		} else {
			ref = loaded
		}
	}
	return education.New(ref)
}

func loadSkills(cfg config.SkillsConfig) *skills.Extractor {
	vocab := skills.DefaultVocabulary()
	if cfg.Dataset != "" {
		loaded, err := skills.LoadVocabulary(cfg.Dataset)
		if err != nil {
			log.Warn().Err(err).Msg("using built-in skills vocabulary")
		} else {
			vocab = loaded
		}
	}

	var ner skills.NER
	if cfg.NEREndpoint != "" {
		ner = skills.NewHTTPTagger(cfg.NEREndpoint, cfg.NERToken, cfg.NERTimeout)
	}
	log.Info().Int("vocabulary", vocab.Len()).Bool("ner", ner != nil).Msg("skills extractor ready")
	return skills.NewExtractor(vocab, ner)
}
