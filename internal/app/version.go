package app

import "fmt"

// Version, Commit, and BuildTime are stamped by the release build:
//
//	go build -ldflags "-X github.com/jaapghar/jaapghar-backend/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion formats the stamped values for startup logs and /health.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
