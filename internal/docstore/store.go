// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package docstore

import (
	"context"
	"time"
)

// Writer overwrites whole documents.
type Writer interface {
	// Set replaces the document at collection/docID with data, discarding
	// any field not present in data. It returns the server commit time.
	Set(ctx context.Context, collection, docID string, data any) (time.Time, error)
	// Close releases the underlying client and its connections.
	Close() error
}

// Opener constructs a Writer for a project using already-loaded credentials.
type Opener interface {
	Open(ctx context.Context, creds *Credentials, projectID string) (Writer, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context, creds *Credentials, projectID string) (Writer, error)

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, creds *Credentials, projectID string) (Writer, error) {
	return f(ctx, creds, projectID)
}
