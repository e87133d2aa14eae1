// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// init-update-config publishes the app update document to Firestore.
//
// It overwrites app_config/version with the release record the mobile app
// polls to decide whether to offer or force an update.
//
// Usage:
//
//	init-update-config
//	init-update-config -config timecapsule-admin.yaml
//	init-update-config -dry-run
//
// Exit codes:
//   - 0: Document written (or dry run / version printed)
//   - 1: Configuration or initialization error
//   - 2: Usage error (unknown flag or stray argument)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/simacreation/timecapsule-admin/internal/config"
	"github.com/simacreation/timecapsule-admin/internal/docstore"
	"github.com/simacreation/timecapsule-admin/internal/initializer"
	xglog "github.com/simacreation/timecapsule-admin/internal/log"
	"github.com/simacreation/timecapsule-admin/internal/metrics"
	"github.com/simacreation/timecapsule-admin/internal/receipt"
	"github.com/simacreation/timecapsule-admin/internal/telemetry"
	"github.com/simacreation/timecapsule-admin/internal/updateconfig"
	"github.com/simacreation/timecapsule-admin/internal/version"
)

const (
	serviceName = "init-update-config"
	pushTimeout = 10 * time.Second
)

// deps are the seams tests replace.
type deps struct {
	opener      docstore.Opener
	credentials initializer.CredentialsLoader
	now         func() time.Time
}

func defaultDeps() deps {
	return deps{
		opener:      docstore.FirebaseOpener,
		credentials: docstore.LoadCredentials,
		now:         time.Now,
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, defaultDeps()))
}

func run(args []string, stdout, stderr io.Writer, d deps) int {
	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.PathFromEnv(), "path to optional YAML configuration file")
	dryRun := fs.Bool("dry-run", false, "print the record that would be written and exit")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: %s [-config file] [-dry-run] [-version]\n", serviceName)
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nThe service account key defaults to %s, resolved against the\n", config.DefaultCredentialsFile)
		fmt.Fprintf(out, "current working directory (not the binary's location). Override it with\n")
		fmt.Fprintf(out, "%s or credentials_file in the config file.\n", config.EnvCredentialsFile)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", serviceName, version.String())
		return 0
	}

	cfg, err := config.NewLoader(*configPath).Load()
	if err != nil {
		fmt.Fprintf(stderr, "❌ Configuration error: %v\n", err)
		return 1
	}

	xglog.Configure(xglog.Config{
		Level:   cfg.Logging.Level,
		Output:  stderr,
		Service: serviceName,
		Version: version.Version,
	})
	logger := xglog.WithComponent("cli")

	rec := cfg.Record()
	if !cfg.Release.IsZero() {
		logger.Info().Str("record", rec.String()).Msg("release override active")
	}
	for _, f := range rec.Lint() {
		logger.Warn().Str("field", f.Field).Msg("release record: " + f.Message)
	}

	if *dryRun {
		fmt.Fprintf(stdout, "Dry run: would overwrite %s\n", updateconfig.Path())
		fmt.Fprintf(stdout, "Configuration: %s\n", rec)
		if cfg.ReceiptPath != "" {
			if last, err := receipt.Read(cfg.ReceiptPath); err == nil {
				fmt.Fprintf(stdout, "Last published: %s (run %s)\n", last.UpdateTime.Format(time.RFC3339), last.RunID)
				fmt.Fprintf(stdout, "Previous configuration: %s\n", last.Record)
			} else {
				logger.Debug().Err(err).Str(xglog.FieldReceiptPath, cfg.ReceiptPath).Msg("no previous receipt")
			}
		}
		return 0
	}

	ctx := context.Background()

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    serviceName,
		ServiceVersion: version.Version,
		Environment:    cfg.Environment,
		ExporterType:   cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("tracing disabled")
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Warn().Err(err).Msg("tracer shutdown")
		}
	}()

	var reporter *metrics.JobReporter
	if cfg.Metrics.PushgatewayURL != "" {
		reporter = metrics.NewJobReporter(cfg.Metrics.PushgatewayURL, cfg.Metrics.Job,
			metrics.WithHTTPClient(&http.Client{Timeout: pushTimeout}))
	}

	started := d.now()
	res, runErr := initializer.New(initializer.Options{
		CredentialsFile: cfg.CredentialsFile,
		ProjectID:       cfg.ProjectID,
		WriteTimeout:    cfg.WriteTimeout,
		Record:          rec,
		Opener:          d.opener,
		Credentials:     d.credentials,
	}).Run(ctx)

	if reporter != nil {
		if runErr != nil {
			reporter.ObserveFailure(started, res.Duration)
		} else {
			reporter.ObserveSuccess(started, res.Duration, rec.LatestBuildNumber, rec.MinBuildNumber)
		}
		if err := reporter.Push(ctx, runErr == nil); err != nil {
			logger.Warn().Err(err).Msg("metrics push failed")
		}
	}

	if runErr != nil {
		fmt.Fprintf(stderr, "❌ Initialization failed: %v\n", runErr)
		return 1
	}

	if cfg.ReceiptPath != "" {
		err := receipt.Write(xglog.ContextWithRunID(ctx, res.RunID), cfg.ReceiptPath, receipt.Receipt{
			Path:        res.Path,
			ProjectID:   res.ProjectID,
			RunID:       res.RunID,
			UpdateTime:  res.UpdateTime,
			ToolVersion: version.Version,
			Record:      res.Record,
		})
		if err != nil {
			logger.Warn().Err(err).Str(xglog.FieldReceiptPath, cfg.ReceiptPath).Msg("receipt not written")
		}
	}

	fmt.Fprintln(stdout, "✅ Update configuration initialized successfully!")
	fmt.Fprintf(stdout, "Configuration: %s\n", res.Record)
	return 0
}
