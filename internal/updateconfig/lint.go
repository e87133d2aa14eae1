// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package updateconfig

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/mod/semver"
)

// Finding is an advisory remark about a record. Findings never block a write.
type Finding struct {
	Field   string
	Message string
}

func (f Finding) String() string {
	return f.Field + ": " + f.Message
}

// Lint reports values the mobile client is likely to mishandle.
func (c UpdateConfig) Lint() []Finding {
	var out []Finding

	if msg := checkVersion(c.LatestVersion); msg != "" {
		out = append(out, Finding{Field: "latestVersion", Message: msg})
	}
	if c.LatestBuildNumber <= 0 {
		out = append(out, Finding{Field: "latestBuildNumber", Message: "should be positive"})
	}
	if c.MinBuildNumber < 0 {
		out = append(out, Finding{Field: "minBuildNumber", Message: "should not be negative"})
	}
	if c.MinBuildNumber > c.LatestBuildNumber {
		out = append(out, Finding{
			Field:   "minBuildNumber",
			Message: fmt.Sprintf("%d exceeds latestBuildNumber %d; every client would be forced to update to a build that does not exist", c.MinBuildNumber, c.LatestBuildNumber),
		})
	}
	if strings.TrimSpace(c.UpdateMessage) == "" {
		out = append(out, Finding{Field: "updateMessage", Message: "is empty"})
	}
	if msg := checkStoreURL(c.UpdateURL); msg != "" {
		out = append(out, Finding{Field: "updateUrl", Message: msg})
	}
	return out
}

func checkVersion(v string) string {
	if v == "" {
		return "is empty"
	}
	sv := "v" + strings.TrimPrefix(v, "v")
	if !semver.IsValid(sv) {
		return fmt.Sprintf("%q is not a semantic version", v)
	}
	core, _, _ := strings.Cut(sv, "+")
	if semver.Canonical(sv) != core {
		return fmt.Sprintf("%q is not fully qualified (want MAJOR.MINOR.PATCH)", v)
	}
	return ""
}

func checkStoreURL(raw string) string {
	if raw == "" {
		return "is empty"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Sprintf("does not parse: %v", err)
	}
	if u.Scheme != "https" || u.Host == "" {
		return fmt.Sprintf("%q is not an absolute https URL", raw)
	}
	return ""
}
