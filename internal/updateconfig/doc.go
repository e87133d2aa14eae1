// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package updateconfig defines the app update document published to
// Firestore at app_config/version and read by the mobile client to decide
// whether to prompt (or force) an upgrade.
//
// The document is always written whole. Clients compare their own build
// number against minBuildNumber (forced update) and latestBuildNumber
// (optional update).
package updateconfig
