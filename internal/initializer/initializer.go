// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package initializer publishes the app update document: it loads the
// service-account key, opens a document store client, overwrites
// app_config/version with one record and releases the client.
package initializer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/simacreation/timecapsule-admin/internal/docstore"
	xglog "github.com/simacreation/timecapsule-admin/internal/log"
	"github.com/simacreation/timecapsule-admin/internal/telemetry"
	"github.com/simacreation/timecapsule-admin/internal/updateconfig"
)

// CredentialsLoader reads a key file.
type CredentialsLoader func(ctx context.Context, path string) (*docstore.Credentials, error)

// Options configures an Initializer.
type Options struct {
	CredentialsFile string
	// ProjectID overrides the project named in the key.
	ProjectID string
	// WriteTimeout bounds the write. Zero means no deadline of our own.
	WriteTimeout time.Duration
	Record       updateconfig.UpdateConfig

	Opener      docstore.Opener   // defaults to docstore.FirebaseOpener
	Credentials CredentialsLoader // defaults to docstore.LoadCredentials
	Tracer      trace.Tracer      // defaults to the global tracer
	NewRunID    func() string     // defaults to uuid.NewString
}

// Result describes a completed write.
type Result struct {
	RunID      string
	Path       string
	ProjectID  string
	Record     updateconfig.UpdateConfig
	UpdateTime time.Time
	Duration   time.Duration
}

// Initializer performs one publication per Run.
type Initializer struct {
	opts Options
}

// New returns an Initializer with defaults filled in.
func New(opts Options) *Initializer {
	if opts.Opener == nil {
		opts.Opener = docstore.FirebaseOpener
	}
	if opts.Credentials == nil {
		opts.Credentials = docstore.LoadCredentials
	}
	if opts.Tracer == nil {
		opts.Tracer = telemetry.Tracer(telemetry.TracerName)
	}
	if opts.NewRunID == nil {
		opts.NewRunID = uuid.NewString
	}
	return &Initializer{opts: opts}
}

// Run loads credentials, opens the store, overwrites app_config/version with
// the configured record and closes the store. The prior document is never read.
func (i *Initializer) Run(ctx context.Context) (Result, error) {
	started := time.Now()
	rec := i.opts.Record
	res := Result{
		RunID:  i.opts.NewRunID(),
		Path:   updateconfig.Path(),
		Record: rec,
	}

	ctx = xglog.ContextWithRunID(ctx, res.RunID)
	logger := xglog.WithComponentFromContext(ctx, "initializer")

	ctx, span := i.opts.Tracer.Start(ctx, "updateconfig.initialize",
		trace.WithAttributes(telemetry.RunAttributes(res.RunID)...),
		trace.WithAttributes(telemetry.ReleaseAttributes(rec.LatestVersion, rec.LatestBuildNumber)...),
	)
	defer span.End()

	abort := func(stage Stage, err error) (Result, error) {
		res.Duration = time.Since(started)
		span.SetAttributes(telemetry.ErrorAttributes(string(stage))...)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(stage))
		logger.Info().
			Str(xglog.FieldStage, string(stage)).
			Str(xglog.FieldEvent, "initialize.aborted").
			Msg("initialization aborted")
		return res, fail(stage, err)
	}

	creds, err := i.opts.Credentials(ctx, i.opts.CredentialsFile)
	if err != nil {
		return abort(StageCredentials, err)
	}

	res.ProjectID = i.opts.ProjectID
	if res.ProjectID == "" {
		res.ProjectID = creds.ProjectID
	}

	store, err := i.opts.Opener.Open(ctx, creds, res.ProjectID)
	if err != nil {
		return abort(StageClient, err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("close document store client")
		}
	}()

	logger.Info().
		Str(xglog.FieldProjectID, res.ProjectID).
		Str(xglog.FieldPath, res.Path).
		Msg("overwriting update config")

	updateTime, err := i.write(ctx, store, rec, res.ProjectID)
	if err != nil {
		return abort(StageWrite, err)
	}

	res.UpdateTime = updateTime
	res.Duration = time.Since(started)
	span.SetStatus(codes.Ok, "")
	logger.Info().
		Time(xglog.FieldUpdateTime, updateTime).
		Dur("duration", res.Duration).
		Str(xglog.FieldEvent, "initialize.completed").
		Msg("update config written")
	return res, nil
}

func (i *Initializer) write(ctx context.Context, store docstore.Writer, rec updateconfig.UpdateConfig, projectID string) (time.Time, error) {
	ctx, span := i.opts.Tracer.Start(ctx, "firestore.set",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(telemetry.DocumentWriteAttributes(projectID, updateconfig.Collection, updateconfig.DocumentID, updateconfig.FieldCount)...),
	)
	defer span.End()

	if i.opts.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.opts.WriteTimeout)
		defer cancel()
	}

	t, err := store.Set(ctx, updateconfig.Collection, updateconfig.DocumentID, rec.Fields())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "set failed")
		return time.Time{}, err
	}
	span.SetAttributes(attribute.String(telemetry.DocUpdateTimeKey, t.UTC().Format(time.RFC3339Nano)))
	return t, nil
}
