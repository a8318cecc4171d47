// Package contracts holds what the DRE server and its clients share: the
// release identity here and the v1 wire types under api/v1.
package contracts

import (
	"fmt"
	"runtime"
)

const (
	Version    = "0.3.0"
	APIVersion = "v1"

	// CSVLayout versions the column layout of exported CSV files.
	CSVLayout = "v1"
)

// Stamped at release time:
//
//	go build -ldflags "-X drecli/pkg/contracts.BuildTime=... -X drecli/pkg/contracts.GitCommit=..."
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// BuildInfo identifies a running binary.
type BuildInfo struct {
	Version    string `json:"version"`
	APIVersion string `json:"api_version"`
	CSVLayout  string `json:"csv_layout"`
	BuildTime  string `json:"build_time"`
	GitCommit  string `json:"git_commit"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Build describes the current binary.
func Build() BuildInfo {
	return BuildInfo{
		Version:    Version,
		APIVersion: APIVersion,
		CSVLayout:  CSVLayout,
		BuildTime:  BuildTime,
		GitCommit:  GitCommit,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("dre %s (api %s, commit %s, built %s, %s %s)",
		b.Version, b.APIVersion, b.GitCommit, b.BuildTime, b.GoVersion, b.Platform)
}
