// Package config provides configuration loading and validation for the parser.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-parser/internal/logging"
)

// Config is the parser configuration. It can be loaded from a YAML or JSON file; missing
// values use defaults and environment variables override the file.
type Config struct {
	Log       logging.Config  `yaml:"log" json:"log"`
	AI        AIConfig        `yaml:"ai" json:"ai"`
	Models    ModelsConfig    `yaml:"models" json:"models"`
	Languages LanguagesConfig `yaml:"languages" json:"languages"`
	Skills    SkillsConfig    `yaml:"skills" json:"skills"`
	Education EducationConfig `yaml:"education" json:"education"`
	OCR       OCRConfig       `yaml:"ocr" json:"ocr"`
	Server    ServerConfig    `yaml:"server" json:"server"`
	Storage   StorageConfig   `yaml:"storage" json:"storage"`
	Queue     QueueConfig     `yaml:"queue" json:"queue"`
}

// AIConfig configures the structured extraction call.
type AIConfig struct {
	Tier    string        `yaml:"tier" json:"tier" validate:"oneof=lite standard advanced"`
	APIKey  string        `yaml:"api_key" json:"api_key"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" validate:"gt=0"`
	Retries int           `yaml:"retries" json:"retries" validate:"min=0,max=1"`
}

// ModelSource locates the three artifacts of a classifier.
type ModelSource struct {
	// Source is "local" (Dir), "hub" (HubURL/Repo with CacheDir) or "object" (object store Prefix).
	Source      string        `yaml:"source" json:"source" validate:"oneof=local hub object"`
	Dir         string        `yaml:"dir" json:"dir" validate:"required_if=Source local"`
	Model       string        `yaml:"model" json:"model" validate:"required"`
	Vectorizer  string        `yaml:"vectorizer" json:"vectorizer" validate:"required"`
	Encoder     string        `yaml:"encoder" json:"encoder" validate:"required"`
	HubURL      string        `yaml:"hub_url" json:"hub_url" validate:"omitempty,url"`
	Repo        string        `yaml:"repo" json:"repo"`
	CacheDir    string        `yaml:"cache_dir" json:"cache_dir"`
	Prefix      string        `yaml:"prefix" json:"prefix"`
	LoadTimeout time.Duration `yaml:"load_timeout" json:"load_timeout"`
}

// ModelsConfig locates the classifier artifacts.
type ModelsConfig struct {
	Experience ModelSource `yaml:"experience" json:"experience"`
	JobRole    ModelSource `yaml:"job_role" json:"job_role"`
}

// LanguagesConfig configures the language reference list.
type LanguagesConfig struct {
	// Path is a text or CSV list; empty uses the built-in list.
	Path             string `yaml:"path" json:"path"`
	DisableDetection bool   `yaml:"disable_detection" json:"disable_detection"`
}

// EducationConfig configures the education reference lists.
type EducationConfig struct {
	// Path is a CSV with "Education Levels", "Institutions" and "Field of Study" columns; empty
	// uses the built-in lists.
	Path string `yaml:"path" json:"path"`
}

// SkillsConfig configures skill extraction.
type SkillsConfig struct {
	Dataset     string        `yaml:"dataset" json:"dataset"`
	NEREndpoint string        `yaml:"ner_endpoint" json:"ner_endpoint" validate:"omitempty,url"`
	NERToken    string        `yaml:"ner_token" json:"ner_token"`
	NERTimeout  time.Duration `yaml:"ner_timeout" json:"ner_timeout"`
}

// OCRConfig configures image text recognition.
type OCRConfig struct {
	Command  string `yaml:"command" json:"command"`
	Language string `yaml:"language" json:"language"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int             `yaml:"port" json:"port" validate:"min=1,max=65535"`
	MaxUploadBytes int64           `yaml:"max_upload_bytes" json:"max_upload_bytes" validate:"gt=0"`
	CORSOrigins    []string        `yaml:"cors_origins" json:"cors_origins"`
	ValidateOutput bool            `yaml:"validate_output" json:"validate_output"`
	JWT            JWTConfig       `yaml:"jwt" json:"jwt"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`
}

// RateLimitConfig configures the per-client token buckets of the HTTP API.
type RateLimitConfig struct {
	Disabled     bool          `yaml:"disabled" json:"disabled"`
	ParseLimit   int           `yaml:"parse_limit" json:"parse_limit" validate:"min=0"`
	ParseWindow  time.Duration `yaml:"parse_window" json:"parse_window"`
	ParseBurst   int           `yaml:"parse_burst" json:"parse_burst" validate:"min=0"`
	DefaultLimit int           `yaml:"default_limit" json:"default_limit" validate:"min=0"`
	Whitelist    []string      `yaml:"whitelist" json:"whitelist"`
	Blacklist    []string      `yaml:"blacklist" json:"blacklist"`
}

// StorageConfig configures the object store.
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint" json:"endpoint"`
	AccessKey string `yaml:"access_key" json:"access_key"`
	SecretKey string `yaml:"secret_key" json:"secret_key"`
	Bucket    string `yaml:"bucket" json:"bucket" validate:"required_with=Endpoint"`
	Region    string `yaml:"region" json:"region"`
	UseSSL    bool   `yaml:"use_ssl" json:"use_ssl"`
}

// Enabled reports whether an object store is configured.
func (s StorageConfig) Enabled() bool {
	return s.Endpoint != ""
}

// QueueConfig configures the AMQP worker.
type QueueConfig struct {
	URL         string `yaml:"url" json:"url" validate:"omitempty,url"`
	JobQueue    string `yaml:"job_queue" json:"job_queue" validate:"required"`
	ResultQueue string `yaml:"result_queue" json:"result_queue" validate:"required"`
	Prefetch    int    `yaml:"prefetch" json:"prefetch" validate:"min=1"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: logging.Config{Level: "info", Format: "json"},
		AI: AIConfig{
			Tier:    "standard",
			Timeout: 60 * time.Second,
			Retries: 1,
		},
		Models: ModelsConfig{
			Experience: ModelSource{
				Source:     "local",
				Dir:        "models/experience",
				Model:      "model.json",
				Vectorizer: "tfidf.json",
				Encoder:    "encoder.json",
			},
			JobRole: ModelSource{
				Source:      "hub",
				Model:       "model_exp1.json",
				Vectorizer:  "tfidf_exp1.json",
				Encoder:     "encoder_exp1.json",
				HubURL:      "https://huggingface.co",
				Repo:        "habib-ashraf/resume-job-classifier",
				CacheDir:    "./cache",
				LoadTimeout: 2 * time.Minute,
			},
		},
		Skills: SkillsConfig{NERTimeout: 30 * time.Second},
		OCR:    OCRConfig{Command: "tesseract", Language: "eng"},
		Server: ServerConfig{
			Port:           8080,
			MaxUploadBytes: 10 << 20,
			CORSOrigins:    []string{"*"},
			JWT:            JWTConfig{ExpirationHours: 24},
			RateLimit: RateLimitConfig{
				ParseLimit:   60,
				ParseWindow:  time.Minute,
				ParseBurst:   10,
				DefaultLimit: 1000,
			},
		},
		Storage: StorageConfig{Bucket: "resumes"},
		Queue: QueueConfig{
			JobQueue:    "resume.parse.jobs",
			ResultQueue: "resume.parse.results",
			Prefetch:    1,
		},
	}
}

// LoadConfig reads a YAML or JSON file. The result is not merged with defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Load builds the effective configuration: the file at path (optional), merged with
// defaults, then overridden by environment variables, then validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	merged := cfg.MergeWithDefaults(Default())
	merged.ApplyEnv(os.Getenv)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
// Bools cannot distinguish unset from false and are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	setString(&result.Log.Level, defaults.Log.Level)
	setString(&result.Log.Format, defaults.Log.Format)
	setString(&result.Log.TimeFormat, defaults.Log.TimeFormat)

	setString(&result.AI.Tier, defaults.AI.Tier)
	setString(&result.AI.APIKey, defaults.AI.APIKey)
	setDuration(&result.AI.Timeout, defaults.AI.Timeout)
	if c.AI == (AIConfig{}) {
		result.AI.Retries = defaults.AI.Retries
	}

	mergeModel(&result.Models.Experience, defaults.Models.Experience)
	mergeModel(&result.Models.JobRole, defaults.Models.JobRole)

	setString(&result.Languages.Path, defaults.Languages.Path)

	setString(&result.Skills.Dataset, defaults.Skills.Dataset)
	setString(&result.Education.Path, defaults.Education.Path)
	setString(&result.Skills.NEREndpoint, defaults.Skills.NEREndpoint)
	setString(&result.Skills.NERToken, defaults.Skills.NERToken)
	setDuration(&result.Skills.NERTimeout, defaults.Skills.NERTimeout)

	setString(&result.OCR.Command, defaults.OCR.Command)
	setString(&result.OCR.Language, defaults.OCR.Language)

	setInt(&result.Server.Port, defaults.Server.Port)
	if result.Server.MaxUploadBytes == 0 {
		result.Server.MaxUploadBytes = defaults.Server.MaxUploadBytes
	}
	if len(result.Server.CORSOrigins) == 0 {
		result.Server.CORSOrigins = defaults.Server.CORSOrigins
	}
	setString(&result.Server.JWT.Secret, defaults.Server.JWT.Secret)
	setInt(&result.Server.JWT.ExpirationHours, defaults.Server.JWT.ExpirationHours)
	rl := &result.Server.RateLimit
	setInt(&rl.ParseLimit, defaults.Server.RateLimit.ParseLimit)
	setDuration(&rl.ParseWindow, defaults.Server.RateLimit.ParseWindow)
	setInt(&rl.ParseBurst, defaults.Server.RateLimit.ParseBurst)
	setInt(&rl.DefaultLimit, defaults.Server.RateLimit.DefaultLimit)

	setString(&result.Storage.Endpoint, defaults.Storage.Endpoint)
	setString(&result.Storage.AccessKey, defaults.Storage.AccessKey)
	setString(&result.Storage.SecretKey, defaults.Storage.SecretKey)
	setString(&result.Storage.Bucket, defaults.Storage.Bucket)
	setString(&result.Storage.Region, defaults.Storage.Region)

	setString(&result.Queue.URL, defaults.Queue.URL)
	setString(&result.Queue.JobQueue, defaults.Queue.JobQueue)
	setString(&result.Queue.ResultQueue, defaults.Queue.ResultQueue)
	setInt(&result.Queue.Prefetch, defaults.Queue.Prefetch)

	return result
}

func mergeModel(m *ModelSource, d ModelSource) {
	setString(&m.Source, d.Source)
	setString(&m.Dir, d.Dir)
	setString(&m.Model, d.Model)
	setString(&m.Vectorizer, d.Vectorizer)
	setString(&m.Encoder, d.Encoder)
	setString(&m.HubURL, d.HubURL)
	setString(&m.Repo, d.Repo)
	setString(&m.CacheDir, d.CacheDir)
	setString(&m.Prefix, d.Prefix)
	setDuration(&m.LoadTimeout, d.LoadTimeout)
}

func setString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func setInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}

func setDuration(dst *time.Duration, def time.Duration) {
	if *dst == 0 {
		*dst = def
	}
}

// ApplyEnv overrides fields from environment variables looked up with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	override := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	override(&c.AI.APIKey, "GEMINI_API_KEY")
	override(&c.Log.Level, "RESUME_PARSER_LOG_LEVEL")
	override(&c.Storage.Endpoint, "MINIO_ENDPOINT")
	override(&c.Storage.AccessKey, "MINIO_ACCESS_KEY")
	override(&c.Storage.SecretKey, "MINIO_SECRET_KEY")
	override(&c.Queue.URL, "AMQP_URL")
	override(&c.Skills.NEREndpoint, "NER_ENDPOINT")
	override(&c.Skills.NERToken, "NER_TOKEN")
	override(&c.Models.JobRole.Repo, "HF_REPO")
	if v := getenv("RESUME_PARSER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	c.Server.JWT.applyEnv(getenv)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field values. The error lists every invalid field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return c.Server.JWT.normalize()
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config error: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
}
