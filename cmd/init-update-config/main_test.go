// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simacreation/timecapsule-admin/internal/config"
	"github.com/simacreation/timecapsule-admin/internal/docstore"
	"github.com/simacreation/timecapsule-admin/internal/receipt"
	"github.com/simacreation/timecapsule-admin/internal/updateconfig"
)

const wantRecord = `{latestVersion: "1.0.0", latestBuildNumber: 63, minBuildNumber: 60, updateMessage: "Une nouvelle version est disponible !", updateUrl: "https://play.google.com/store/apps/details?id=com.simacreation.timecapsule"}`

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvConfigFile, config.EnvCredentialsFile, config.EnvProjectID, config.EnvWriteTimeout,
		config.EnvReceiptPath, config.EnvEnvironment, config.EnvLogLevel, config.EnvTracingEnabled,
		config.EnvTracingExporter, config.EnvTracingEndpoint, config.EnvTracingSampling,
		config.EnvPushgatewayURL, config.EnvPushgatewayJob,
		config.EnvReleaseVersion, config.EnvReleaseLatestBuild, config.EnvReleaseMinBuild,
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

type fakeStore struct {
	mu     sync.Mutex
	docs   map[string]any
	opens  int
	closes int
	setErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: map[string]any{}}
}

func (f *fakeStore) Set(_ context.Context, collection, docID string, data any) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return time.Time{}, f.setErr
	}
	f.docs[collection+"/"+docID] = data
	return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC), nil
}

func (f *fakeStore) Close() error {
	f.mu.Lock()
	f.closes++
	f.mu.Unlock()
	return nil
}

func testDeps(store *fakeStore) deps {
	return deps{
		opener: docstore.OpenerFunc(func(_ context.Context, _ *docstore.Credentials, _ string) (docstore.Writer, error) {
			store.mu.Lock()
			store.opens++
			store.mu.Unlock()
			return store, nil
		}),
		credentials: func(_ context.Context, path string) (*docstore.Credentials, error) {
			return &docstore.Credentials{Path: path, ProjectID: "timecapsule-test"}, nil
		},
		now: func() time.Time { return time.Unix(1_790_000_000, 0) },
	}
}

func runCLI(t *testing.T, d deps, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr, d)
	return code, stdout.String(), stderr.String()
}

func TestRun_Success(t *testing.T) {
	clearEnv(t)
	store := newFakeStore()

	code, stdout, stderr := runCLI(t, testDeps(store))

	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Equal(t,
		"✅ Update configuration initialized successfully!\nConfiguration: "+wantRecord+"\n",
		stdout)
	assert.Empty(t, stderr)
	assert.Equal(t, updateconfig.Default().Fields(), store.docs["app_config/version"])
	assert.Equal(t, 1, store.closes)
}

func TestRun_MissingCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvCredentialsFile, filepath.Join(t.TempDir(), "firebase-service-account.json"))
	store := newFakeStore()
	d := testDeps(store)
	d.credentials = docstore.LoadCredentials

	code, stdout, stderr := runCLI(t, d)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.True(t, strings.HasPrefix(stderr, "❌ Initialization failed: load credentials: read service account key:"), stderr)
	assert.Equal(t, 1, strings.Count(stderr, "\n"), "exactly one error line")
	assert.Zero(t, store.opens)
	assert.Empty(t, store.docs)
}

func TestRun_WriteFailure(t *testing.T) {
	clearEnv(t)
	store := newFakeStore()
	store.setErr = errors.New("rpc error: code = PermissionDenied desc = Missing or insufficient permissions.")

	code, stdout, stderr := runCLI(t, testDeps(store))

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "❌ Initialization failed: write update config: rpc error: code = PermissionDenied")
	assert.Equal(t, 1, store.closes)
}

func TestRun_Idempotent(t *testing.T) {
	clearEnv(t)
	store := newFakeStore()

	code, first, _ := runCLI(t, testDeps(store))
	require.Equal(t, 0, code)
	doc := store.docs["app_config/version"]

	code, second, _ := runCLI(t, testDeps(store))
	require.Equal(t, 0, code)

	assert.Equal(t, first, second)
	assert.Equal(t, doc, store.docs["app_config/version"])
	assert.Len(t, store.docs, 1)
}

func TestRun_DryRunTouchesNothing(t *testing.T) {
	clearEnv(t)
	store := newFakeStore()
	d := testDeps(store)
	d.credentials = func(context.Context, string) (*docstore.Credentials, error) {
		t.Fatal("dry run must not load credentials")
		return nil, nil
	}

	code, stdout, _ := runCLI(t, d, "-dry-run")

	assert.Equal(t, 0, code)
	assert.Equal(t, "Dry run: would overwrite app_config/version\nConfiguration: "+wantRecord+"\n", stdout)
	assert.Zero(t, store.opens)
}

func TestRun_DryRunShowsLastReceipt(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	receiptPath := filepath.Join(dir, "last.yaml")
	t.Setenv(config.EnvReceiptPath, receiptPath)

	prev := updateconfig.Default()
	prev.LatestBuildNumber = 62
	require.NoError(t, receipt.Write(context.Background(), receiptPath, receipt.Receipt{
		Path:       updateconfig.Path(),
		RunID:      "run-prev",
		UpdateTime: time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC),
		Record:     prev,
	}))

	code, stdout, _ := runCLI(t, testDeps(newFakeStore()), "-dry-run")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Last published: 2026-10-01T08:00:00Z (run run-prev)\n")
	assert.Contains(t, stdout, "Previous configuration: {latestVersion: \"1.0.0\", latestBuildNumber: 62,")
}

func TestRun_HelpExplainsCredentialsPath(t *testing.T) {
	clearEnv(t)
	code, stdout, stderr := runCLI(t, testDeps(newFakeStore()), "-help")

	assert.Equal(t, 0, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "../firebase-service-account.json")
	assert.Contains(t, stderr, "current working directory")
	assert.Contains(t, stderr, config.EnvCredentialsFile)
}

func TestRun_ReleaseOverrideIsLogged(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvLogLevel, "info")
	t.Setenv(config.EnvReleaseLatestBuild, "64")

	code, stdout, stderr := runCLI(t, testDeps(newFakeStore()), "-dry-run")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "latestBuildNumber: 64")
	assert.Contains(t, stderr, "release override active")
}

func TestRun_Version(t *testing.T) {
	clearEnv(t)
	code, stdout, _ := runCLI(t, testDeps(newFakeStore()), "-version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "init-update-config v"), stdout)
}

func TestRun_UsageErrors(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-force"}},
		{"stray argument", []string{"production"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			code, stdout, stderr := runCLI(t, testDeps(store), tt.args...)
			assert.Equal(t, 2, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "Usage: init-update-config")
			assert.Zero(t, store.opens)
		})
	}
}

func TestRun_ConfigErrors(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "admin.yaml")
	require.NoError(t, os.WriteFile(path, []byte("collection: other\n"), 0o600))
	store := newFakeStore()

	code, stdout, stderr := runCLI(t, testDeps(store), "-config", path)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "❌ Configuration error:")
	assert.Zero(t, store.opens)
}

func TestRun_MalformedBuildNumberIsNotPublished(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvReleaseLatestBuild, "64x")
	store := newFakeStore()

	code, stdout, stderr := runCLI(t, testDeps(store))

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "❌ Configuration error:")
	assert.Contains(t, stderr, config.EnvReleaseLatestBuild)
	assert.Zero(t, store.opens)
	assert.Empty(t, store.docs)
}

func TestRun_ReleaseOverrideAndReceipt(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	receiptPath := filepath.Join(dir, "last-update-config.yaml")
	cfgPath := filepath.Join(dir, "admin.yaml")
	cfg := "receipt_path: " + receiptPath + "\n" +
		"release:\n  latest_version: \"1.1.0\"\n  latest_build_number: 70\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	store := newFakeStore()

	code, stdout, stderr := runCLI(t, testDeps(store), "-config", cfgPath)
	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, `latestVersion: "1.1.0", latestBuildNumber: 70, minBuildNumber: 60`)

	got, err := receipt.Read(receiptPath)
	require.NoError(t, err)
	assert.Equal(t, "app_config/version", got.Path)
	assert.Equal(t, "timecapsule-test", got.ProjectID)
	assert.Equal(t, int64(70), got.Record.LatestBuildNumber)
	assert.NotEmpty(t, got.RunID)
}

func TestRun_PushesMetrics(t *testing.T) {
	clearEnv(t)
	var (
		mu      sync.Mutex
		methods []string
		paths   []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		mu.Lock()
		methods = append(methods, r.Method)
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	t.Setenv(config.EnvPushgatewayURL, srv.URL)

	code, _, stderr := runCLI(t, testDeps(newFakeStore()))
	require.Equal(t, 0, code, "stderr: %s", stderr)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, methods, 1)
	assert.Equal(t, http.MethodPut, methods[0])
	assert.Equal(t, "/metrics/job/init_update_config", paths[0])
}

func TestRun_MetricsFailureDoesNotChangeOutcome(t *testing.T) {
	clearEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	t.Setenv(config.EnvPushgatewayURL, srv.URL)

	code, stdout, stderr := runCLI(t, testDeps(newFakeStore()))
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "✅ Update configuration initialized successfully!")
	assert.Contains(t, stderr, "metrics push failed")
}
