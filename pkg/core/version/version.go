// ============================================================================
// grocer - Catalog and shopping list toolkit
// ============================================================================
//
// Package:     version
// Description: Central version and build information
// Author:      msto63
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Application identity
const (
	Name   = "grocer"
	Author = "msto63"
)

// Build information, overridden via -ldflags "-X ..."
var (
	Version   = "1.0.0"
	GitCommit = "development"
	BuildDate = "unknown"
)

// Info describes the running binary
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Author    string `json:"author"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information of the running binary
func Get() Info {
	return Info{
		Name:      Name,
		Version:   Version,
		Author:    Author,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns "grocer v1.0.0"
func (i Info) String() string {
	return fmt.Sprintf("%s v%s", i.Name, i.Version)
}
