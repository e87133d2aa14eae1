// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldService   = "service"
	FieldVersion   = "version"
	FieldRunID     = "run_id"
	FieldProjectID = "project_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldStage     = "stage"

	// Document fields
	FieldPath       = "path"
	FieldUpdateTime = "update_time"

	// Local files
	FieldCredentialsFile = "credentials_file"
	FieldReceiptPath     = "receipt_path"
)
