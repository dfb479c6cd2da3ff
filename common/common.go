// Package common holds shared service constants and logging setup.
package common

// PackageName identifies the service in logs and metrics.
const PackageName = "secretstore-backend"

// Version is set at build time via -ldflags.
var Version = "dev"
