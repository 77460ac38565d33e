// Package config provides file- and environment-based configuration,
// built once at startup and passed explicitly to every component.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// AppConfig is the root configuration structure.
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	AWS      AWSConfig      `yaml:"aws"`
	Analysis AnalysisConfig `yaml:"analysis"`
	History  HistoryConfig  `yaml:"history"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int    `yaml:"port"`
	BindAddress  string `yaml:"bindAddress"`
	ReadTimeout  int    `yaml:"readTimeoutSeconds"`
	WriteTimeout int    `yaml:"writeTimeoutSeconds"`
	IdleTimeout  int    `yaml:"idleTimeoutSeconds"`
	BodyLimit    string `yaml:"bodyLimit"`
	EnableCORS   bool   `yaml:"enableCORS"`
}

// AWSConfig identifies the managed services the pipeline talks to.
// Bucket has no default and must be supplied via config file or the
// S3_BUCKET environment variable.
type AWSConfig struct {
	Bucket string `yaml:"bucket"`
	Region string `yaml:"region"`
}

// AnalysisConfig carries the model identifier, the default prompt shown
// in the UI, and the default sampling parameters.
type AnalysisConfig struct {
	ModelID             string  `yaml:"modelId"`
	DefaultPrompt       string  `yaml:"defaultPrompt"`
	DefaultMaxNewTokens int     `yaml:"defaultMaxNewTokens"`
	DefaultTemperature  float64 `yaml:"defaultTemperature"`
	DefaultTopP         float64 `yaml:"defaultTopP"`
	DefaultTopK         int     `yaml:"defaultTopK"`
}

// HistoryConfig controls the recent-analyses store.
type HistoryConfig struct {
	Path    string `yaml:"path"`
	MaxSize int    `yaml:"maxSize"`
}

const defaultPrompt = "Extract the following details from chemistry lab notes into CSV format: " +
	"Chemical Compound Name, Initial Temperature (°C), Final Temperature (°C), Reaction Time (min). " +
	"If any value is not specified, leave it blank. Output only the CSV record."

// DefaultConfig returns the default configuration.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         8090,
			BindAddress:  "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 120,
			IdleTimeout:  120,
			BodyLimit:    "32M",
			EnableCORS:   true,
		},
		AWS: AWSConfig{
			Region: "us-east-1",
		},
		Analysis: AnalysisConfig{
			ModelID:             "amazon.nova-micro-v1:0",
			DefaultPrompt:       defaultPrompt,
			DefaultMaxNewTokens: 1000,
			DefaultTemperature:  0.7,
			DefaultTopP:         0.9,
			DefaultTopK:         20,
		},
		History: HistoryConfig{
			Path:    "./data/history.msgpack",
			MaxSize: 50,
		},
	}
}

// LoadConfig loads configuration from a YAML file, falling back to
// defaults when the file does not exist, and applies environment
// overrides last.
func LoadConfig(configPath string) (*AppConfig, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnvironmentOverrides()
	return cfg, nil
}

// applyEnvironmentOverrides allows environment variables to override
// config values. S3_BUCKET and AWS_REGION mirror the deployment
// environment of the managed services.
func (c *AppConfig) applyEnvironmentOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		c.AWS.Bucket = bucket
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		c.AWS.Region = region
	}
	if model := os.Getenv("MODEL_ID"); model != "" {
		c.Analysis.ModelID = model
	}
	if path := os.Getenv("HISTORY_PATH"); path != "" {
		c.History.Path = path
	}
}

// Validate reports configuration problems that block meaningful use.
// A missing bucket is surfaced once at startup; the server still comes
// up so the UI can display the error.
func (c *AppConfig) Validate() error {
	if c.AWS.Bucket == "" {
		return fmt.Errorf("S3 bucket is not configured: set S3_BUCKET or aws.bucket")
	}
	return nil
}

// GetServerAddr returns the server bind address.
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}
