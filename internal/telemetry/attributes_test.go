// SPDX-License-Identifier: MIT
package telemetry

import (
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestDocumentWriteAttributes(t *testing.T) {
	tests := []struct {
		name      string
		projectID string
		wantLen   int
	}{
		{name: "with project", projectID: "timecapsule-prod", wantLen: 6},
		{name: "project resolved later", projectID: "", wantLen: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := DocumentWriteAttributes(tt.projectID, "app_config", "version", 5)
			if len(attrs) != tt.wantLen {
				t.Fatalf("Expected %d attributes, got %d", tt.wantLen, len(attrs))
			}
			verifyAttribute(t, attrs, DBSystemKey, "firestore")
			verifyAttribute(t, attrs, DBOperationKey, "set")
			verifyAttribute(t, attrs, DocCollectionKey, "app_config")
			verifyAttribute(t, attrs, DocIDKey, "version")
			verifyIntAttribute(t, attrs, DocFieldCountKey, 5)
			if tt.projectID != "" {
				verifyAttribute(t, attrs, DocProjectIDKey, tt.projectID)
			}
		})
	}
}

func TestReleaseAttributes(t *testing.T) {
	attrs := ReleaseAttributes("1.0.0", 63)

	if len(attrs) != 2 {
		t.Fatalf("Expected 2 attributes, got %d", len(attrs))
	}
	verifyAttribute(t, attrs, ReleaseVersionKey, "1.0.0")
	verifyInt64Attribute(t, attrs, ReleaseBuildKey, 63)
}

func TestRunAttributes(t *testing.T) {
	attrs := RunAttributes("5f0c")

	if len(attrs) != 1 {
		t.Fatalf("Expected 1 attribute, got %d", len(attrs))
	}
	verifyAttribute(t, attrs, RunIDKey, "5f0c")
}

func TestErrorAttributes(t *testing.T) {
	attrs := ErrorAttributes("write")

	if len(attrs) != 3 {
		t.Fatalf("Expected 3 attributes, got %d", len(attrs))
	}
	verifyBoolAttribute(t, attrs, ErrorKey, true)
	verifyAttribute(t, attrs, ErrorTypeKey, "initialization_failure")
	verifyAttribute(t, attrs, RunStageKey, "write")
}

func verifyAttribute(t *testing.T, attrs []attribute.KeyValue, key, expectedValue string) {
	t.Helper()
	for _, attr := range attrs {
		if string(attr.Key) == key {
			if attr.Value.AsString() != expectedValue {
				t.Errorf("Expected %s=%s, got %s", key, expectedValue, attr.Value.AsString())
			}
			return
		}
	}
	t.Errorf("Attribute %s not found", key)
}

func verifyIntAttribute(t *testing.T, attrs []attribute.KeyValue, key string, expectedValue int) {
	t.Helper()
	verifyInt64Attribute(t, attrs, key, int64(expectedValue))
}

func verifyInt64Attribute(t *testing.T, attrs []attribute.KeyValue, key string, expectedValue int64) {
	t.Helper()
	for _, attr := range attrs {
		if string(attr.Key) == key {
			if attr.Value.AsInt64() != expectedValue {
				t.Errorf("Expected %s=%d, got %d", key, expectedValue, attr.Value.AsInt64())
			}
			return
		}
	}
	t.Errorf("Attribute %s not found", key)
}

func verifyBoolAttribute(t *testing.T, attrs []attribute.KeyValue, key string, expectedValue bool) {
	t.Helper()
	for _, attr := range attrs {
		if string(attr.Key) == key {
			if attr.Value.AsBool() != expectedValue {
				t.Errorf("Expected %s=%t, got %t", key, expectedValue, attr.Value.AsBool())
			}
			return
		}
	}
	t.Errorf("Attribute %s not found", key)
}
