// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package docstore

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
)

// Scopes requested for the service account. Firestore accepts the datastore scope.
var Scopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/datastore",
}

// ErrEmptyCredentials is returned for a zero-length key file.
var ErrEmptyCredentials = errors.New("credentials file is empty")

// Credentials is a parsed service-account key.
type Credentials struct {
	// Path is the file the key was read from.
	Path string
	// ProjectID is the project named in the key, if any.
	ProjectID string

	google *google.Credentials
}

// Google returns the parsed oauth2 credentials.
func (c *Credentials) Google() *google.Credentials {
	return c.google
}

// LoadCredentials reads and parses a JSON key file. Key contents are not
// inspected beyond what the oauth2 library requires to build a token source.
func LoadCredentials(ctx context.Context, path string) (*Credentials, error) {
	// #nosec G304 -- the key path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read service account key: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("read service account key %s: %w", path, ErrEmptyCredentials)
	}
	return ParseCredentials(ctx, path, data)
}

// ParseCredentials parses key material already in memory. path is informational.
func ParseCredentials(ctx context.Context, path string, data []byte) (*Credentials, error) {
	gc, err := google.CredentialsFromJSON(ctx, data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse service account key %s: %w", path, err)
	}
	return &Credentials{Path: path, ProjectID: gc.ProjectID, google: gc}, nil
}
