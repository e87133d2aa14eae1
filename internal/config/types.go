// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "time"

// Defaults. DefaultCredentialsFile is resolved against the working directory.
const (
	DefaultCredentialsFile = "../firebase-service-account.json"
	DefaultLogLevel        = "warn"
	DefaultTracingExporter = "grpc"
	DefaultSamplingRate    = 1.0
	DefaultPushgatewayJob  = "init_update_config"
	DefaultEnvironment     = "production"
	DefaultWriteTimeout    = time.Duration(0)
	supportedExporterHint  = "grpc, http"
)

// AppConfig is the resolved configuration after defaults, file and env merging.
type AppConfig struct {
	CredentialsFile string
	ProjectID       string
	// WriteTimeout bounds the Firestore write; zero leaves the client default in place.
	WriteTimeout time.Duration
	ReceiptPath  string
	Environment  string

	Logging   LoggingConfig
	Telemetry TelemetryConfig
	Metrics   MetricsConfig
	Release   ReleaseConfig
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level string
}

// TelemetryConfig controls OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled      bool
	Exporter     string
	Endpoint     string
	SamplingRate float64
}

// MetricsConfig controls pushing job metrics to a Prometheus Pushgateway.
type MetricsConfig struct {
	PushgatewayURL string
	Job            string
}

// ReleaseConfig overrides individual fields of the built-in release record.
// Zero values mean "keep the built-in value".
type ReleaseConfig struct {
	LatestVersion     string
	LatestBuildNumber int64
	MinBuildNumber    int64
	UpdateMessage     string
	UpdateURL         string
}

// FileConfig mirrors the YAML file. Pointers distinguish "absent" from "zero".
type FileConfig struct {
	CredentialsFile *string            `yaml:"credentials_file"`
	ProjectID       *string            `yaml:"project_id"`
	WriteTimeout    *string            `yaml:"write_timeout"`
	ReceiptPath     *string            `yaml:"receipt_path"`
	Environment     *string            `yaml:"environment"`
	Logging         *FileLogging       `yaml:"logging"`
	Telemetry       *FileTelemetry     `yaml:"telemetry"`
	Metrics         *FileMetrics       `yaml:"metrics"`
	Release         *FileReleaseConfig `yaml:"release"`
}

// FileLogging is the logging section of the YAML file.
type FileLogging struct {
	Level *string `yaml:"level"`
}

// FileTelemetry is the telemetry section of the YAML file.
type FileTelemetry struct {
	Enabled      *bool    `yaml:"enabled"`
	Exporter     *string  `yaml:"exporter"`
	Endpoint     *string  `yaml:"endpoint"`
	SamplingRate *float64 `yaml:"sampling_rate"`
}

// FileMetrics is the metrics section of the YAML file.
type FileMetrics struct {
	PushgatewayURL *string `yaml:"pushgateway_url"`
	Job            *string `yaml:"job"`
}

// FileReleaseConfig is the release section of the YAML file.
type FileReleaseConfig struct {
	LatestVersion     *string `yaml:"latest_version"`
	LatestBuildNumber *int64  `yaml:"latest_build_number"`
	MinBuildNumber    *int64  `yaml:"min_build_number"`
	UpdateMessage     *string `yaml:"update_message"`
	UpdateURL         *string `yaml:"update_url"`
}
