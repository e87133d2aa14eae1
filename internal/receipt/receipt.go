// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package receipt keeps a local YAML record of the last document written to
// app_config/version, so operators can tell what was published and when
// without reading the remote store.
package receipt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	xglog "github.com/simacreation/timecapsule-admin/internal/log"
	"github.com/simacreation/timecapsule-admin/internal/updateconfig"
)

// ErrEmptyPath is returned when no receipt path is configured.
var ErrEmptyPath = errors.New("receipt path is empty")

// Receipt is the on-disk record of one successful write.
type Receipt struct {
	Path        string                    `yaml:"path"`
	ProjectID   string                    `yaml:"project_id"`
	RunID       string                    `yaml:"run_id"`
	UpdateTime  time.Time                 `yaml:"update_time"`
	ToolVersion string                    `yaml:"tool_version"`
	Record      updateconfig.UpdateConfig `yaml:"record"`
}

// Write replaces the file at path with r. The file is either the previous
// receipt or the new one, never a partial write.
func Write(ctx context.Context, path string, r Receipt) error {
	if path == "" {
		return ErrEmptyPath
	}
	logger := xglog.FromContext(ctx)

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode receipt: %w", err)
	}

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending receipt file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending receipt file")
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write receipt data: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace receipt file: %w", err)
	}

	logger.Debug().Str(xglog.FieldReceiptPath, path).Msg("receipt written")
	return nil
}

// Read loads a receipt written by Write.
func Read(path string) (Receipt, error) {
	var r Receipt
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied path
	if err != nil {
		return r, fmt.Errorf("read receipt: %w", err)
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("decode receipt %s: %w", path, err)
	}
	return r, nil
}
