package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant        = "logger not configured"
	commandRunnerNotConfiguredMessageConstant = "command runner not configured"
	commandFailedErrorTemplateConstant        = "%s failed with exit code %d%s"
	commandExecutionErrorTemplateConstant     = "%s failed: %s"
	standardErrorDetailTemplateConstant       = ": %s"
	commandGitNameConstant                    = CommandName("git")
	commandGitHubNameConstant                 = CommandName("gh")
)

// CommandName identifies a supported external tool.
type CommandName string

// Supported tool enumerations.
const (
	CommandGit    = commandGitNameConstant
	CommandGitHub = commandGitHubNameConstant
)

// CommandDetails describes a tool invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand combines a CommandName with invocation details. Path carries the
// caller-resolved executable location and falls back to the command name.
type ShellCommand struct {
	Name    CommandName
	Path    string
	Details CommandDetails
}

// Executable returns the resolved executable path for the command.
func (command ShellCommand) Executable() string {
	trimmedPath := strings.TrimSpace(command.Path)
	if len(trimmedPath) > 0 {
		return trimmedPath
	}
	return string(command.Name)
}

// ExecutionResult captures the observable results of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner represents the ability to run shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// ToolPaths stores caller-resolved executable locations for supported tools.
type ToolPaths struct {
	Git       string
	GitHubCLI string
}

// PathFor returns the configured path for the named tool, empty when unset.
func (paths ToolPaths) PathFor(name CommandName) string {
	switch name {
	case CommandGit:
		return paths.Git
	case CommandGitHub:
		return paths.GitHubCLI
	default:
		return ""
	}
}

// Sentinel initialization errors.
var (
	// ErrLoggerNotConfigured indicates the executor was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrCommandRunnerNotConfigured indicates the executor was constructed without a runner.
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
)

// CommandFailedError indicates a command completed with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the command failure including trimmed standard error output.
func (failedError CommandFailedError) Error() string {
	detailSuffix := ""
	trimmedStandardError := strings.TrimSpace(failedError.Result.StandardError)
	if len(trimmedStandardError) > 0 {
		detailSuffix = fmt.Sprintf(standardErrorDetailTemplateConstant, trimmedStandardError)
	}
	return fmt.Sprintf(commandFailedErrorTemplateConstant, failedError.Command.Executable(), failedError.Result.ExitCode, detailSuffix)
}

// CommandExecutionError indicates the command could not be executed at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (executionError CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, executionError.Command.Executable(), executionError.Cause)
}

// Unwrap exposes the underlying cause.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// ShellExecutor coordinates command construction, execution, logging, and observation.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	observer  CommandEventObserver
	toolPaths ToolPaths
	formatter CommandMessageFormatter
}

// NewShellExecutor constructs an executor around the provided logger and runner.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	return &ShellExecutor{
		logger:    logger,
		runner:    runner,
		observer:  noopCommandEventObserver{},
		formatter: CommandMessageFormatter{},
	}, nil
}

// WithObserver registers a lifecycle observer and returns the executor for chaining.
func (executor *ShellExecutor) WithObserver(observer CommandEventObserver) *ShellExecutor {
	if observer == nil {
		executor.observer = noopCommandEventObserver{}
		return executor
	}
	executor.observer = observer
	return executor
}

// WithToolPaths stores caller-resolved executable locations and returns the executor for chaining.
func (executor *ShellExecutor) WithToolPaths(toolPaths ToolPaths) *ShellExecutor {
	executor.toolPaths = toolPaths
	return executor
}

// ExecuteGit runs git with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.execute(executionContext, CommandGit, details)
}

// ExecuteGitHubCLI runs the GitHub CLI with the provided details.
func (executor *ShellExecutor) ExecuteGitHubCLI(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.execute(executionContext, CommandGitHub, details)
}

func (executor *ShellExecutor) execute(executionContext context.Context, commandName CommandName, details CommandDetails) (ExecutionResult, error) {
	command := ShellCommand{
		Name:    commandName,
		Path:    executor.toolPaths.PathFor(commandName),
		Details: details,
	}

	executor.logger.Debug(executor.formatter.BuildStartedMessage(command))
	executor.observer.CommandStarted(command)

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.logger.Error(executor.formatter.BuildExecutionFailureMessage(command, runError))
		executor.observer.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.observer.CommandCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		executor.logger.Warn(executor.formatter.BuildFailureMessage(command, executionResult))
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(executor.formatter.BuildSuccessMessage(command))
	return executionResult, nil
}
