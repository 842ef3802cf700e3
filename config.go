package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LLMProvider     string `yaml:"llm_provider"`
	LLMModel        string `yaml:"llm_model"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	OpenAIAPIKey    string `yaml:"openai_api_key"`

	SampleSize        int    `yaml:"sample_size"`
	LLMTimeoutSeconds int    `yaml:"llm_timeout_seconds"`
	GlossaryPath      string `yaml:"glossary_path"`
	SQLiteTable       string `yaml:"sqlite_table"`
	Workers           int    `yaml:"workers"`
}

// LoadConfig reads the optional yaml config, then applies env overrides,
// defaults, and validation. The tool runs fine with no config at all: the
// disambiguator is simply left unset and classification stays heuristic.
func LoadConfig(path string) Config {
	var cfg Config

	if path == "" {
		path = "config.yaml"
		if envPath := os.Getenv("CSVMAP_CONFIG"); envPath != "" {
			path = envPath
		}
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", path, err)
		}
		log.Printf("Loaded config from %s", path)
	}

	envOverride(&cfg.LLMProvider, "LLM_PROVIDER")
	envOverride(&cfg.LLMModel, "LLM_MODEL")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	envOverrideInt(&cfg.SampleSize, "CSVMAP_SAMPLE_SIZE")
	envOverrideInt(&cfg.LLMTimeoutSeconds, "CSVMAP_LLM_TIMEOUT_SECONDS")
	envOverride(&cfg.GlossaryPath, "CSVMAP_GLOSSARY_PATH")
	envOverride(&cfg.SQLiteTable, "CSVMAP_SQLITE_TABLE")
	envOverrideInt(&cfg.Workers, "CSVMAP_WORKERS")

	// Defaults
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "anthropic"
	}
	if cfg.SampleSize == 0 {
		cfg.SampleSize = defaultSampleSize
	}
	if cfg.LLMTimeoutSeconds == 0 {
		cfg.LLMTimeoutSeconds = 30
	}
	if cfg.SQLiteTable == "" {
		cfg.SQLiteTable = "customers"
	}
	if cfg.Workers == 0 {
		cfg.Workers = 4
	}

	switch cfg.LLMProvider {
	case "anthropic", "openai":
	default:
		log.Fatalf("llm_provider must be 'anthropic' or 'openai', got '%s'", cfg.LLMProvider)
	}
	if cfg.SampleSize < 1 {
		log.Fatalf("invalid sample_size '%d': must be >= 1", cfg.SampleSize)
	}
	if cfg.LLMTimeoutSeconds < 1 {
		log.Fatalf("invalid llm_timeout_seconds '%d': must be >= 1", cfg.LLMTimeoutSeconds)
	}
	if cfg.Workers < 1 {
		log.Fatalf("invalid workers '%d': must be >= 1", cfg.Workers)
	}
	if cfg.GlossaryPath != "" {
		if _, err := LoadHeaderGlossary(cfg.GlossaryPath); err != nil {
			log.Fatalf("invalid glossary_path '%s': %v", cfg.GlossaryPath, err)
		}
	}

	return cfg
}

func (c Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLMTimeoutSeconds) * time.Second
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}
