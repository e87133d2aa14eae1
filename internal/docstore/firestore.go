// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/status"

	xglog "github.com/simacreation/timecapsule-admin/internal/log"
)

// ErrNoProjectID is returned when neither configuration nor the key names a project.
var ErrNoProjectID = errors.New("no project id: set one in configuration or use a key that names a project")

// FirestoreStore writes documents through a Firestore client owned by a Firebase app.
type FirestoreStore struct {
	client    *firestore.Client
	projectID string
}

// OpenFirebase initializes a Firebase app from creds and returns its Firestore
// client wrapped as a Writer. projectID overrides the project named in the key.
func OpenFirebase(ctx context.Context, creds *Credentials, projectID string) (*FirestoreStore, error) {
	if creds == nil {
		return nil, errors.New("open firestore: nil credentials")
	}
	if projectID == "" {
		projectID = creds.ProjectID
	}
	if projectID == "" {
		return nil, ErrNoProjectID
	}

	logger := xglog.WithComponentFromContext(ctx, "docstore")
	logger.Debug().
		Str(xglog.FieldProjectID, projectID).
		Str(xglog.FieldCredentialsFile, creds.Path).
		Msg("initializing firebase app")

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, option.WithCredentials(creds.Google()))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("open firestore client: %w", err)
	}
	return &FirestoreStore{client: client, projectID: projectID}, nil
}

// FirebaseOpener opens FirestoreStore writers.
var FirebaseOpener Opener = OpenerFunc(func(ctx context.Context, creds *Credentials, projectID string) (Writer, error) {
	s, err := OpenFirebase(ctx, creds, projectID)
	if err != nil {
		return nil, err
	}
	return s, nil
})

// Set overwrites collection/docID with data. No merge option is passed, so
// fields absent from data are removed from the stored document.
func (s *FirestoreStore) Set(ctx context.Context, collection, docID string, data any) (time.Time, error) {
	wr, err := s.client.Collection(collection).Doc(docID).Set(ctx, data)
	if err != nil {
		return time.Time{}, fmt.Errorf("set %s/%s in project %s (%s): %w", collection, docID, s.projectID, status.Code(err), err)
	}
	return wr.UpdateTime, nil
}

// Close releases the Firestore client.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
