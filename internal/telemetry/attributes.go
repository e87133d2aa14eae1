// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing.
const (
	// Document store attributes
	DBSystemKey       = "db.system"
	DBOperationKey    = "db.operation"
	DocCollectionKey  = "firestore.collection"
	DocIDKey          = "firestore.document"
	DocProjectIDKey   = "gcp.project_id"
	DocFieldCountKey  = "firestore.field_count"
	DocUpdateTimeKey  = "firestore.update_time"
	ReleaseVersionKey = "release.latest_version"
	ReleaseBuildKey   = "release.latest_build_number"

	// Run attributes
	RunIDKey    = "run.id"
	RunStageKey = "run.stage"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// DocumentWriteAttributes describes a full-overwrite write of one document.
func DocumentWriteAttributes(projectID, collection, docID string, fieldCount int) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(DBSystemKey, "firestore"),
		attribute.String(DBOperationKey, "set"),
		attribute.String(DocCollectionKey, collection),
		attribute.String(DocIDKey, docID),
		attribute.Int(DocFieldCountKey, fieldCount),
	}
	if projectID != "" {
		attrs = append(attrs, attribute.String(DocProjectIDKey, projectID))
	}
	return attrs
}

// ReleaseAttributes annotates a span with the release being published.
func ReleaseAttributes(latestVersion string, latestBuild int64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(ReleaseVersionKey, latestVersion),
		attribute.Int64(ReleaseBuildKey, latestBuild),
	}
}

// RunAttributes identifies an administrative run.
func RunAttributes(runID string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(RunIDKey, runID),
	}
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(stage string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, "initialization_failure"),
		attribute.String(RunStageKey, stage),
	}
}
