// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

// Package logger wraps the underlying logging stack behind a consistent interface.
// It centralizes configuration and makes loggers available through context helpers.
package logger
