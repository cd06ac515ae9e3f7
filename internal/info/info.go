// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

// Package info holds application version information.
package info

var (
	// AppName is the name of the application.
	AppName = "portinfra"
	// Version is dynamically set by the ci or overridden by the Makefile.
	Version = "DEV"
	// BuildDate is dynamically set at build time by the ci or overridden in the Makefile.
	BuildDate = "" // YYYY-MM-DD
)
