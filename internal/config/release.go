// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "github.com/simacreation/timecapsule-admin/internal/updateconfig"

// IsZero reports whether no release field is overridden.
func (r ReleaseConfig) IsZero() bool {
	return r == ReleaseConfig{}
}

// Apply overlays the non-zero override fields on base.
func (r ReleaseConfig) Apply(base updateconfig.UpdateConfig) updateconfig.UpdateConfig {
	out := base
	if r.LatestVersion != "" {
		out.LatestVersion = r.LatestVersion
	}
	if r.LatestBuildNumber != 0 {
		out.LatestBuildNumber = r.LatestBuildNumber
	}
	if r.MinBuildNumber != 0 {
		out.MinBuildNumber = r.MinBuildNumber
	}
	if r.UpdateMessage != "" {
		out.UpdateMessage = r.UpdateMessage
	}
	if r.UpdateURL != "" {
		out.UpdateURL = r.UpdateURL
	}
	return out
}

// Record returns the release record this configuration publishes.
func (c AppConfig) Record() updateconfig.UpdateConfig {
	return c.Release.Apply(updateconfig.Default())
}
