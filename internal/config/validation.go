// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// Validate checks the resolved configuration. The release override is not
// validated here: record values are linted, never rejected.
func Validate(cfg AppConfig) error {
	if strings.TrimSpace(cfg.CredentialsFile) == "" {
		return fmt.Errorf("%w: credentials file must not be empty", ErrInvalidConfig)
	}
	if cfg.WriteTimeout < 0 {
		return fmt.Errorf("%w: write timeout must not be negative (got %s)", ErrInvalidConfig, cfg.WriteTimeout)
	}
	if cfg.Logging.Level != "" {
		if _, err := zerolog.ParseLevel(cfg.Logging.Level); err != nil {
			return fmt.Errorf("%w: logging level: %v", ErrInvalidConfig, err)
		}
	}

	if cfg.Telemetry.Enabled {
		switch cfg.Telemetry.Exporter {
		case "grpc", "http":
		default:
			return fmt.Errorf("%w: unsupported tracing exporter %q (supported: %s)", ErrInvalidConfig, cfg.Telemetry.Exporter, supportedExporterHint)
		}
		if cfg.Telemetry.Endpoint == "" {
			return fmt.Errorf("%w: tracing endpoint is required when tracing is enabled", ErrInvalidConfig)
		}
	}
	if cfg.Telemetry.SamplingRate < 0 || cfg.Telemetry.SamplingRate > 1 {
		return fmt.Errorf("%w: sampling rate must be within [0,1] (got %v)", ErrInvalidConfig, cfg.Telemetry.SamplingRate)
	}

	if cfg.Metrics.PushgatewayURL != "" {
		u, err := url.Parse(cfg.Metrics.PushgatewayURL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("%w: pushgateway url %q must be an absolute http(s) URL", ErrInvalidConfig, cfg.Metrics.PushgatewayURL)
		}
		if strings.TrimSpace(cfg.Metrics.Job) == "" {
			return fmt.Errorf("%w: pushgateway job name must not be empty", ErrInvalidConfig)
		}
	}
	return nil
}
