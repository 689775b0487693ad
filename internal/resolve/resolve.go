// Package resolve merges the AI extraction with the heuristic extractors into one resume record.
package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jonathan/resume-parser/internal/classify"
	"github.com/jonathan/resume-parser/internal/contact"
	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/names"
	"github.com/jonathan/resume-parser/internal/social"
	"github.com/jonathan/resume-parser/internal/types"
)

var tracer = otel.Tracer("github.com/jonathan/resume-parser/internal/resolve")

// AI produces the structured record of a resume.
type AI interface {
	Parse(ctx context.Context, text string) (*types.AIRecord, error)
}

// ExperienceClassifier predicts the experience level of a resume.
type ExperienceClassifier interface {
	Predict(ctx context.Context, text string) (string, error)
}

// SkillsExtractor finds skills in a resume. It may return partial results with an error.
type SkillsExtractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

// LanguageExtractor lists the spoken languages of a resume. The result is never empty.
type LanguageExtractor interface {
	Extract(text string) []string
}

// EducationExtractor builds education entries from resume text.
type EducationExtractor interface {
	Entries(text string) []types.Education
}

// SocialFunc finds the social and portfolio links of a resume, grouped by platform.
type SocialFunc func(text string) social.Links

// Models holds the loaded extractors. It is built once at startup and is read-only afterwards.
type Models struct {
	Experience ExperienceClassifier
	JobRole    classify.JobRolePredictor
	Languages  LanguageExtractor
	Skills     SkillsExtractor
	Social     SocialFunc
	Education  EducationExtractor
}

// Resolver runs the AI extraction and the field fallback cascade.
type Resolver struct {
	AI     AI
	Models *Models
}

// New creates a Resolver. A nil Social func uses the regex link extractor.
func New(ai AI, models *Models) *Resolver {
	if models == nil {
		models = &Models{}
	}
	if models.Social == nil {
		models.Social = social.Extract
	}
	return &Resolver{AI: ai, Models: models}
}

// Resolve builds the record for raw resume text. Contact details and the experience level are
// computed from the normalized text before the single AI call. Only an AI failure is returned
// as an error; every other fault degrades a single field.
func (r *Resolver) Resolve(ctx context.Context, text string) (*types.ResumeRecord, error) {
	ctx, span := tracer.Start(ctx, "resolve")
	defer span.End()

	normalized := ingestion.Normalize(text)
	if normalized == "" {
		err := errors.New("resume text is empty")
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	sig := r.Signals(ctx, normalized)

	aiCtx, aiSpan := tracer.Start(ctx, "resolve.ai")
	aiRecord, err := r.AI.Parse(aiCtx, ingestion.PreprocessForAI(normalized))
	if err != nil {
		aiSpan.RecordError(err)
		aiSpan.SetStatus(codes.Error, err.Error())
		aiSpan.End()
		span.SetStatus(codes.Error, "AI extraction failed")
		return nil, fmt.Errorf("AI extraction failed: %w", err)
	}
	aiSpan.End()

	rec := aiRecord.ToResumeRecord(normalized)
	r.apply(ctx, rec, normalized, sig)
	return rec, nil
}

// Signals holds the fields computed from the text alone, independent of the AI record.
type Signals struct {
	Email           string
	Phone           string
	ExperienceLevel string
}

// Signals runs the contact extractor and the experience classifier over text. A classifier
// failure yields "Not specified".
func (r *Resolver) Signals(ctx context.Context, text string) Signals {
	m := r.models()
	var sig Signals

	r.step(ctx, "contact", func(ctx context.Context) error {
		sig.Email = contact.Emails(text)
		sig.Phone = contact.FirstPhone(text)
		return nil
	}, nil)

	r.step(ctx, "experience_level", func(ctx context.Context) error {
		if m.Experience == nil {
			return errors.New("no experience classifier loaded")
		}
		level, err := m.Experience.Predict(ctx, text)
		if err != nil {
			return err
		}
		sig.ExperienceLevel = level
		return nil
	}, func() { sig.ExperienceLevel = types.NotSpecified })

	return sig
}

// Apply computes the Signals of text and runs the fallback cascade over rec in a fixed order.
// Each step is independent and idempotent; a failing or panicking step only resets its own field.
func (r *Resolver) Apply(ctx context.Context, rec *types.ResumeRecord, text string) {
	r.apply(ctx, rec, text, r.Signals(ctx, text))
}

func (r *Resolver) apply(ctx context.Context, rec *types.ResumeRecord, text string, sig Signals) {
	m := r.models()

	rec.Email = sig.Email
	rec.Phone = sig.Phone
	rec.ExperienceLevel = sig.ExperienceLevel

	r.step(ctx, "job_role", func(ctx context.Context) error {
		if !types.IsMissing(rec.JobRole) {
			return nil
		}
		if m.JobRole == nil {
			return errors.New("no job-role classifier loaded")
		}
		role, err := m.JobRole.PredictRole(ctx, text)
		if err != nil {
			return err
		}
		if types.IsMissing(role) {
			role = types.NotSpecified
		}
		rec.JobRole = role
		return nil
	}, func() { rec.JobRole = types.NotSpecified })

	// The platform view always comes from the text; the flat list prefers the AI's links.
	r.step(ctx, "social_media", func(ctx context.Context) error {
		fromAI := !types.IsMissingList(rec.SocialMedia)
		if fromAI {
			rec.SocialMedia = types.WithoutPlaceholders(rec.SocialMedia)
		}
		links := m.socialFunc()(text)
		rec.SocialProfiles = links.ByPlatform()
		if !fromAI {
			rec.SocialMedia = types.WithoutPlaceholders(social.Flatten(links))
		}
		return nil
	}, func() {
		rec.SocialProfiles = nil
		if types.IsMissingList(rec.SocialMedia) {
			rec.SocialMedia = []string{}
		}
	})

	r.step(ctx, "name", func(ctx context.Context) error {
		if !types.IsMissing(rec.Name) {
			return nil
		}
		name := names.FromEmails(rec.Email)
		if name == "" {
			name = types.NotSpecified
		}
		rec.Name = name
		return nil
	}, func() { rec.Name = types.NotSpecified })

	r.step(ctx, "skills", func(ctx context.Context) error {
		if types.IsMissingList(rec.Skills) {
			rec.Skills = []string{}
			if m.Skills == nil {
				return errors.New("no skills extractor loaded")
			}
			found, err := m.Skills.Extract(ctx, text)
			rec.Skills = types.DedupeFold(found)
			if err != nil {
				return err
			}
			return nil
		}
		rec.Skills = types.DedupeFold(types.WithoutPlaceholders(rec.Skills))
		return nil
	}, func() {
		if rec.Skills == nil {
			rec.Skills = []string{}
		}
	})

	r.step(ctx, "languages", func(ctx context.Context) error {
		if m.Languages == nil {
			return errors.New("no language extractor loaded")
		}
		rec.Skills = MergeLanguages(rec.Skills, m.Languages.Extract(text))
		return nil
	}, nil)

	r.step(ctx, "education", func(ctx context.Context) error {
		if len(rec.Education) > 0 {
			return nil
		}
		if m.Education == nil {
			return errors.New("no education extractor loaded")
		}
		rec.Education = m.Education.Entries(text)
		return nil
	}, func() { rec.Education = []types.Education{} })

	finalize(rec)
}

// MergeLanguages appends each language not already in skills, ignoring case.
func MergeLanguages(skills, langs []string) []string {
	out := append([]string(nil), skills...)
	for _, lang := range langs {
		if !types.IsMissing(lang) && !types.ContainsFold(out, lang) {
			out = append(out, lang)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func (r *Resolver) models() *Models {
	if r.Models == nil {
		return &Models{}
	}
	return r.Models
}

func (m *Models) socialFunc() SocialFunc {
	if m.Social == nil {
		return social.Extract
	}
	return m.Social
}

// finalize drops placeholder list entries and replaces nil collections with empty ones.
func finalize(rec *types.ResumeRecord) {
	rec.Certifications = types.WithoutPlaceholders(rec.Certifications)
	if rec.SocialMedia == nil {
		rec.SocialMedia = []string{}
	}
	if rec.Skills == nil {
		rec.Skills = []string{}
	}
	if rec.Education == nil {
		rec.Education = []types.Education{}
	}
	if rec.Experience == nil {
		rec.Experience = []types.Experience{}
	}
	for i := range rec.Experience {
		if rec.Experience[i].Roles == nil {
			rec.Experience[i].Roles = []string{}
		}
	}
	if types.IsMissing(rec.ExperienceLevel) {
		rec.ExperienceLevel = types.NotSpecified
	}
}

// step runs one cascade step inside a span. Errors and panics are logged, recorded on the
// span and handed to onFail.
func (r *Resolver) step(ctx context.Context, name string, fn func(context.Context) error, onFail func()) {
	ctx, span := tracer.Start(ctx, "resolve."+name)
	defer span.End()
	span.SetAttributes(attribute.String("field", name))

	err := func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("panic: %v", p)
			}
		}()
		return fn(ctx)
	}()
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	log.Warn().Err(err).Str("stage", "resolve").Str("field", name).Msg("fallback step failed")
	if onFail != nil {
		onFail()
	}
}
