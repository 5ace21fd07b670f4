package githubcli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/hubrepo/internal/execshell"
)

const (
	githubCLIExecutableNameConstant       = "gh"
	versionFlagConstant                   = "--version"
	authSubcommandConstant                = "auth"
	statusSubcommandConstant              = "status"
	hostnameFlagConstant                  = "--hostname"
	defaultHostnameConstant               = "github.com"
	lookupNotConfiguredMessageConstant    = "executable lookup not configured"
	runnerNotConfiguredMessageConstant    = "preflight command runner not configured"
	authenticationDetailSeparatorConstant = "\n\n"
)

const (
	installationGuidanceConstant = "GitHub CLI (gh) is required for repository access.\n" +
		"Install instructions: https://cli.github.com/\n" +
		"Linux command (Ubuntu/Debian): sudo apt install gh\n" +
		"Arch Linux: sudo pacman -S github-cli"
	authenticationGuidanceConstant = "GitHub CLI authentication is required.\n" +
		"Command to copy: \n" +
		"gh auth login --hostname github.com --git-protocol https --web\n" +
		"Then run:\n" +
		"gh auth status"
)

var (
	// ErrExecutableLookupNotConfigured indicates the preflight was constructed without a lookup function.
	ErrExecutableLookupNotConfigured = errors.New(lookupNotConfiguredMessageConstant)
	// ErrPreflightRunnerNotConfigured indicates the preflight was constructed without a command runner.
	ErrPreflightRunnerNotConfigured = errors.New(runnerNotConfiguredMessageConstant)
)

// InstallationRequiredError indicates the GitHub CLI is missing or broken.
type InstallationRequiredError struct {
	Guidance string
}

// Error returns the installation guidance.
func (installationError InstallationRequiredError) Error() string {
	return installationError.Guidance
}

// AuthenticationRequiredError indicates the GitHub CLI is present but not authenticated.
type AuthenticationRequiredError struct {
	Detail   string
	Guidance string
}

// Error returns the authentication guidance, prefixed with detail when available.
func (authenticationError AuthenticationRequiredError) Error() string {
	trimmedDetail := strings.TrimSpace(authenticationError.Detail)
	if len(trimmedDetail) == 0 {
		return authenticationError.Guidance
	}
	return fmt.Sprintf("%s%s%s", trimmedDetail, authenticationDetailSeparatorConstant, authenticationError.Guidance)
}

// PreflightDependencies supplies collaborators for CLI availability checks.
type PreflightDependencies struct {
	LookupExecutable func(executableName string) (string, error)
	Runner           execshell.CommandRunner
}

// Preflight verifies GitHub CLI availability and authentication before use.
type Preflight struct {
	dependencies PreflightDependencies
}

// NewPreflight constructs a preflight checker around the provided dependencies.
func NewPreflight(dependencies PreflightDependencies) (*Preflight, error) {
	if dependencies.LookupExecutable == nil {
		return nil, ErrExecutableLookupNotConfigured
	}
	if dependencies.Runner == nil {
		return nil, ErrPreflightRunnerNotConfigured
	}
	return &Preflight{dependencies: dependencies}, nil
}

// EnsureGitHubCLI resolves the gh executable, verifies it runs, and confirms
// authentication against github.com. The resolved path is returned for the
// caller to carry in its configuration.
func (preflight *Preflight) EnsureGitHubCLI(executionContext context.Context) (string, error) {
	executablePath, lookupError := preflight.dependencies.LookupExecutable(githubCLIExecutableNameConstant)
	if lookupError != nil || len(strings.TrimSpace(executablePath)) == 0 {
		return "", InstallationRequiredError{Guidance: installationGuidanceConstant}
	}

	versionCommand := execshell.ShellCommand{
		Name:    execshell.CommandGitHub,
		Path:    executablePath,
		Details: execshell.CommandDetails{Arguments: []string{versionFlagConstant}},
	}
	versionResult, versionError := preflight.dependencies.Runner.Run(executionContext, versionCommand)
	if versionError != nil || versionResult.ExitCode != 0 {
		return "", InstallationRequiredError{Guidance: installationGuidanceConstant}
	}

	statusCommand := execshell.ShellCommand{
		Name: execshell.CommandGitHub,
		Path: executablePath,
		Details: execshell.CommandDetails{
			Arguments: []string{authSubcommandConstant, statusSubcommandConstant, hostnameFlagConstant, defaultHostnameConstant},
		},
	}
	statusResult, statusError := preflight.dependencies.Runner.Run(executionContext, statusCommand)
	if statusError != nil {
		return "", AuthenticationRequiredError{Guidance: authenticationGuidanceConstant}
	}
	if statusResult.ExitCode != 0 {
		return "", AuthenticationRequiredError{Detail: statusResult.StandardError, Guidance: authenticationGuidanceConstant}
	}

	return executablePath, nil
}
