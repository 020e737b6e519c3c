// Package hatch holds build information for the hatch CLI.
package hatch

// Version is set at build time with
//
//	-ldflags "-X github.com/simonhull/firebird-suite/hatch.Version=v0.3.0"
var Version = "dev"
