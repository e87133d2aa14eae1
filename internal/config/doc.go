// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config loads settings for the administrative commands.
//
// Precedence is ENV > YAML file > defaults. Without a file and without
// environment overrides the defaults reproduce the historical behavior:
// the service-account key is read from ../firebase-service-account.json and
// the built-in release record is published.
package config
