// Package config provides runtime settings for the orchestrator.
//
// Settings merge three layers, lowest precedence first: built-in defaults,
// an optional YAML file (orchestrator.yaml), and ORCH_-prefixed environment
// variables. The result is loaded once at startup and treated as a
// read-only process-wide snapshot; endpoint path templates live here so
// upstream URLs are never hardcoded.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DataEndpoints holds the data API path templates. Each template contains
// exactly one placeholder substituted with the relevant identifier.
type DataEndpoints struct {
	StudentFullProfile string `mapstructure:"student_full_profile"`
	RoleTaxonomy       string `mapstructure:"role_taxonomy"`
	JDTaxonomy         string `mapstructure:"jd_taxonomy"`
	TemplateInfo       string `mapstructure:"template_info"`
}

// GenerationEndpoints holds the generation API path templates.
type GenerationEndpoints struct {
	GenerateCV string `mapstructure:"generate_cv"`
}

// Settings is the orchestrator runtime configuration.
type Settings struct {
	ServiceName string `mapstructure:"service_name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`

	DataAPIBaseURL       string `mapstructure:"data_api_base_url"`
	GenerationAPIBaseURL string `mapstructure:"generation_api_base_url"`

	// Per-call timeouts: the generation service is typically slower than
	// the data API, so the two are configured independently.
	HTTPTimeout       time.Duration `mapstructure:"http_timeout"`
	GenerationTimeout time.Duration `mapstructure:"generation_timeout"`
	MaxRetries        int           `mapstructure:"max_retries"`

	EnableUserOrLLMComments bool `mapstructure:"enable_user_or_llm_comments"`

	DataEndpoints       DataEndpoints       `mapstructure:"data_endpoints"`
	GenerationEndpoints GenerationEndpoints `mapstructure:"generation_endpoints"`
}

// Load reads settings from the given config file (or the default search
// path when empty), applying defaults and ORCH_ environment overrides.
func Load(cfgFile string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("service_name", "cv-orchestrator")
	// Registered with empty defaults so env-only values are still picked
	// up by Unmarshal.
	v.SetDefault("data_api_base_url", "")
	v.SetDefault("generation_api_base_url", "")
	v.SetDefault("environment", "local")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_timeout", 15*time.Second)
	v.SetDefault("generation_timeout", 60*time.Second)
	v.SetDefault("max_retries", 2)
	v.SetDefault("enable_user_or_llm_comments", false)
	v.SetDefault("data_endpoints.student_full_profile", "/v1/students/{student_id}/full-profile")
	v.SetDefault("data_endpoints.role_taxonomy", "/v1/roles/{role_id}/taxonomy")
	v.SetDefault("data_endpoints.jd_taxonomy", "/v1/jds/{jd_id}/taxonomy")
	v.SetDefault("data_endpoints.template_info", "/v1/templates/{template_id}")
	v.SetDefault("generation_endpoints.generate_cv", "/v1/generate-cv")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("orchestrator")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ORCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine: defaults plus env may be a full config.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that the configuration has usable values.
func (s *Settings) Validate() error {
	missing := []string{}
	if s.DataAPIBaseURL == "" {
		missing = append(missing, "data_api_base_url")
	}
	if s.GenerationAPIBaseURL == "" {
		missing = append(missing, "generation_api_base_url")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s (set them in orchestrator.yaml or via ORCH_* environment variables)",
			strings.Join(missing, ", "))
	}

	for name, raw := range map[string]string{
		"data_api_base_url":       s.DataAPIBaseURL,
		"generation_api_base_url": s.GenerationAPIBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: %s is not a valid URL: %q", name, raw)
		}
	}

	if s.MaxRetries < 0 {
		return fmt.Errorf("config error: max_retries must be non-negative")
	}
	if s.HTTPTimeout <= 0 || s.GenerationTimeout <= 0 {
		return fmt.Errorf("config error: timeouts must be positive")
	}

	for name, tmpl := range map[string]string{
		"data_endpoints.student_full_profile": s.DataEndpoints.StudentFullProfile,
		"data_endpoints.role_taxonomy":        s.DataEndpoints.RoleTaxonomy,
		"data_endpoints.jd_taxonomy":          s.DataEndpoints.JDTaxonomy,
		"data_endpoints.template_info":        s.DataEndpoints.TemplateInfo,
		"generation_endpoints.generate_cv":    s.GenerationEndpoints.GenerateCV,
	} {
		if tmpl == "" {
			return fmt.Errorf("config error: endpoint template %s is empty", name)
		}
	}

	return nil
}
