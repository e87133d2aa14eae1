// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package updateconfig

import (
	"strconv"
	"strings"
)

// Document location. Fixed: the mobile client reads exactly this path.
const (
	Collection = "app_config"
	DocumentID = "version"
)

// Built-in release values.
const (
	DefaultLatestVersion     = "1.0.0"
	DefaultLatestBuildNumber = 63
	DefaultMinBuildNumber    = 60
	DefaultUpdateMessage     = "Une nouvelle version est disponible !"
	DefaultUpdateURL         = "https://play.google.com/store/apps/details?id=com.simacreation.timecapsule"
)

// FieldCount is the number of fields in the stored document.
const FieldCount = 5

// UpdateConfig is the app_config/version document.
//
// MinBuildNumber <= LatestBuildNumber is expected but not enforced here;
// see Lint.
type UpdateConfig struct {
	LatestVersion     string `firestore:"latestVersion" json:"latestVersion" yaml:"latest_version"`
	LatestBuildNumber int64  `firestore:"latestBuildNumber" json:"latestBuildNumber" yaml:"latest_build_number"`
	MinBuildNumber    int64  `firestore:"minBuildNumber" json:"minBuildNumber" yaml:"min_build_number"`
	UpdateMessage     string `firestore:"updateMessage" json:"updateMessage" yaml:"update_message"`
	UpdateURL         string `firestore:"updateUrl" json:"updateUrl" yaml:"update_url"`
}

// Default returns a fresh copy of the built-in release record.
func Default() UpdateConfig {
	return UpdateConfig{
		LatestVersion:     DefaultLatestVersion,
		LatestBuildNumber: DefaultLatestBuildNumber,
		MinBuildNumber:    DefaultMinBuildNumber,
		UpdateMessage:     DefaultUpdateMessage,
		UpdateURL:         DefaultUpdateURL,
	}
}

// Path returns the slash-separated document path.
func Path() string {
	return Collection + "/" + DocumentID
}

// Fields returns the document exactly as it is written to Firestore, keyed by
// the stored field names. Integers stay int64 so they are stored as integers.
func (c UpdateConfig) Fields() map[string]any {
	return map[string]any{
		"latestVersion":     c.LatestVersion,
		"latestBuildNumber": c.LatestBuildNumber,
		"minBuildNumber":    c.MinBuildNumber,
		"updateMessage":     c.UpdateMessage,
		"updateUrl":         c.UpdateURL,
	}
}

// String renders the record with its stored field names, in stored order.
func (c UpdateConfig) String() string {
	var b strings.Builder
	b.WriteString("{latestVersion: ")
	b.WriteString(strconv.Quote(c.LatestVersion))
	b.WriteString(", latestBuildNumber: ")
	b.WriteString(strconv.FormatInt(c.LatestBuildNumber, 10))
	b.WriteString(", minBuildNumber: ")
	b.WriteString(strconv.FormatInt(c.MinBuildNumber, 10))
	b.WriteString(", updateMessage: ")
	b.WriteString(strconv.Quote(c.UpdateMessage))
	b.WriteString(", updateUrl: ")
	b.WriteString(strconv.Quote(c.UpdateURL))
	b.WriteString("}")
	return b.String()
}
