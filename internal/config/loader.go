// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/simacreation/timecapsule-admin/internal/log"
)

// Environment keys.
const (
	EnvConfigFile      = "TIMECAPSULE_CONFIG"
	EnvCredentialsFile = "TIMECAPSULE_CREDENTIALS_FILE"
	EnvProjectID       = "TIMECAPSULE_PROJECT_ID"
	EnvWriteTimeout    = "TIMECAPSULE_WRITE_TIMEOUT"
	EnvReceiptPath     = "TIMECAPSULE_RECEIPT_PATH"
	EnvEnvironment     = "TIMECAPSULE_ENVIRONMENT"
	EnvLogLevel        = "LOG_LEVEL"
	EnvTracingEnabled  = "TIMECAPSULE_TRACING_ENABLED"
	EnvTracingExporter = "TIMECAPSULE_TRACING_EXPORTER"
	EnvTracingEndpoint = "TIMECAPSULE_TRACING_ENDPOINT"
	EnvTracingSampling = "TIMECAPSULE_TRACING_SAMPLING_RATE"
	EnvPushgatewayURL  = "TIMECAPSULE_PUSHGATEWAY_URL"
	EnvPushgatewayJob  = "TIMECAPSULE_PUSHGATEWAY_JOB"

	EnvReleaseVersion     = "TIMECAPSULE_RELEASE_VERSION"
	EnvReleaseLatestBuild = "TIMECAPSULE_RELEASE_LATEST_BUILD_NUMBER"
	EnvReleaseMinBuild    = "TIMECAPSULE_RELEASE_MIN_BUILD_NUMBER"

	maxConfigFileBytes  = 1 << 20
	supportedFileFormat = "only YAML supported"
)

// Loader handles configuration loading with precedence
type Loader struct {
	configPath      string
	ConsumedEnvKeys map[string]struct{} // keys read during Load, for diagnostics
}

// NewLoader creates a new configuration loader. An empty path means "no file".
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath:      configPath,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

// PathFromEnv returns the config file path named by TIMECAPSULE_CONFIG, if any.
func PathFromEnv() string {
	return strings.TrimSpace(os.Getenv(EnvConfigFile))
}

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

func (l *Loader) envBool(key string, defaultVal bool) bool {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseBool(key, defaultVal)
}

func (l *Loader) envInt64(key string, defaultVal int64) (int64, error) {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt64Strict(key, defaultVal)
}

func (l *Loader) envDuration(key string, defaultVal time.Duration) time.Duration {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseDuration(key, defaultVal)
}

func (l *Loader) envFloat(key string, defaultVal float64) float64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseFloat(key, defaultVal)
}

// Load loads configuration with precedence: ENV > File > Defaults, then validates.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()

	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		if err := mergeFileConfig(&cfg, fileCfg); err != nil {
			return cfg, fmt.Errorf("merge file config: %w", err)
		}
	}

	if err := l.mergeEnvConfig(&cfg); err != nil {
		return cfg, fmt.Errorf("merge env config: %w", err)
	}
	l.logConsumedEnv()

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// logConsumedEnv reports which environment keys were set during Load.
func (l *Loader) logConsumedEnv() {
	set := make([]string, 0, len(l.ConsumedEnvKeys))
	for key := range l.ConsumedEnvKeys {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			set = append(set, key)
		}
	}
	sort.Strings(set)
	logger := log.WithComponent("config")
	logger.Debug().
		Strs("env_keys", set).
		Int("consumed", len(l.ConsumedEnvKeys)).
		Msg("configuration loaded")
}

// Defaults returns the configuration used when neither file nor env say otherwise.
func Defaults() AppConfig {
	return AppConfig{
		CredentialsFile: DefaultCredentialsFile,
		WriteTimeout:    DefaultWriteTimeout,
		Environment:     DefaultEnvironment,
		Logging:         LoggingConfig{Level: DefaultLogLevel},
		Telemetry: TelemetryConfig{
			Exporter:     DefaultTracingExporter,
			SamplingRate: DefaultSamplingRate,
		},
		Metrics: MetricsConfig{Job: DefaultPushgatewayJob},
	}
}

// loadFile loads configuration from a YAML file with STRICT parsing.
// Unknown fields are rejected so typos never silently fall back to defaults.
func (l *Loader) loadFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported config format: %s (%s)", ext, supportedFileFormat)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxConfigFileBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(data) > maxConfigFileBytes {
		return nil, fmt.Errorf("config file exceeds %d bytes", maxConfigFileBytes)
	}

	return ParseFile(data)
}

// ParseFile decodes a YAML document strictly into a FileConfig.
func ParseFile(data []byte) (*FileConfig, error) {
	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &FileConfig{}, nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("strict config parse error: %w: %w", ErrUnknownConfigField, err)
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}
	return &fileCfg, nil
}

func mergeFileConfig(cfg *AppConfig, fc *FileConfig) error {
	if fc == nil {
		return nil
	}
	setString(&cfg.CredentialsFile, fc.CredentialsFile)
	setString(&cfg.ProjectID, fc.ProjectID)
	setString(&cfg.ReceiptPath, fc.ReceiptPath)
	setString(&cfg.Environment, fc.Environment)
	if fc.WriteTimeout != nil {
		d, err := time.ParseDuration(*fc.WriteTimeout)
		if err != nil {
			return fmt.Errorf("write_timeout: %w", err)
		}
		cfg.WriteTimeout = d
	}

	if fc.Logging != nil {
		setString(&cfg.Logging.Level, fc.Logging.Level)
	}

	if t := fc.Telemetry; t != nil {
		if t.Enabled != nil {
			cfg.Telemetry.Enabled = *t.Enabled
		}
		setString(&cfg.Telemetry.Exporter, t.Exporter)
		setString(&cfg.Telemetry.Endpoint, t.Endpoint)
		if t.SamplingRate != nil {
			cfg.Telemetry.SamplingRate = *t.SamplingRate
		}
	}

	if m := fc.Metrics; m != nil {
		setString(&cfg.Metrics.PushgatewayURL, m.PushgatewayURL)
		setString(&cfg.Metrics.Job, m.Job)
	}

	if r := fc.Release; r != nil {
		setString(&cfg.Release.LatestVersion, r.LatestVersion)
		setString(&cfg.Release.UpdateMessage, r.UpdateMessage)
		setString(&cfg.Release.UpdateURL, r.UpdateURL)
		if r.LatestBuildNumber != nil {
			cfg.Release.LatestBuildNumber = *r.LatestBuildNumber
		}
		if r.MinBuildNumber != nil {
			cfg.Release.MinBuildNumber = *r.MinBuildNumber
		}
	}
	return nil
}

func (l *Loader) mergeEnvConfig(cfg *AppConfig) error {
	cfg.CredentialsFile = l.envString(EnvCredentialsFile, cfg.CredentialsFile)
	cfg.ProjectID = l.envString(EnvProjectID, cfg.ProjectID)
	cfg.WriteTimeout = l.envDuration(EnvWriteTimeout, cfg.WriteTimeout)
	cfg.ReceiptPath = l.envString(EnvReceiptPath, cfg.ReceiptPath)
	cfg.Environment = l.envString(EnvEnvironment, cfg.Environment)

	cfg.Logging.Level = l.envString(EnvLogLevel, cfg.Logging.Level)

	cfg.Telemetry.Enabled = l.envBool(EnvTracingEnabled, cfg.Telemetry.Enabled)
	cfg.Telemetry.Exporter = l.envString(EnvTracingExporter, cfg.Telemetry.Exporter)
	cfg.Telemetry.Endpoint = l.envString(EnvTracingEndpoint, cfg.Telemetry.Endpoint)
	cfg.Telemetry.SamplingRate = l.envFloat(EnvTracingSampling, cfg.Telemetry.SamplingRate)

	cfg.Metrics.PushgatewayURL = l.envString(EnvPushgatewayURL, cfg.Metrics.PushgatewayURL)
	cfg.Metrics.Job = l.envString(EnvPushgatewayJob, cfg.Metrics.Job)

	cfg.Release.LatestVersion = l.envString(EnvReleaseVersion, cfg.Release.LatestVersion)

	var err error
	if cfg.Release.LatestBuildNumber, err = l.envInt64(EnvReleaseLatestBuild, cfg.Release.LatestBuildNumber); err != nil {
		return err
	}
	if cfg.Release.MinBuildNumber, err = l.envInt64(EnvReleaseMinBuild, cfg.Release.MinBuildNumber); err != nil {
		return err
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
