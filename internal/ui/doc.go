// Package ui provides helpers for rendering human-readable console output.
//
// The helpers translate command lifecycle events into concise progress
// messages so that repository operations remain observable for CLI users
// while detailed telemetry continues to flow through structured loggers.
package ui
