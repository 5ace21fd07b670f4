// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and defines the abstractions used throughout
// hubrepo to run git and the GitHub CLI in a testable manner. Executable paths
// are injected through ToolPaths rather than resolved from global state.
package execshell
