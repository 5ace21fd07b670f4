package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitCloneSubcommandNameConstant          = "clone"
	gitSparseCheckoutSubcommandNameConstant = "sparse-checkout"
	gitCheckoutSubcommandNameConstant       = "checkout"
	gitInitSubcommandNameConstant           = "init"
	gitAddSubcommandNameConstant            = "add"
	gitCommitSubcommandNameConstant         = "commit"
	gitBranchSubcommandNameConstant         = "branch"
	gitRemoteSubcommandNameConstant         = "remote"
	gitPushSubcommandNameConstant           = "push"
	gitRemoteAddSubcommandNameConstant      = "add"
	gitRemoteSetURLSubcommandNameConstant   = "set-url"
	gitMessageFlagConstant                  = "-m"
	gitBranchMoveFlagConstant               = "-M"
)

const (
	gitCloneStartTemplateConstant                   = "Cloning %s into %s"
	gitCloneSuccessTemplateConstant                 = "Cloned %s into %s"
	gitCloneFailureTemplateConstant                 = "Failed to clone %s into %s (exit code %d%s)"
	gitCloneExecutionFailureTemplateConstant        = "Unable to clone %s into %s: %s"
	gitSparseCheckoutStartTemplateConstant          = "Configuring sparse checkout in %s"
	gitSparseCheckoutSuccessTemplateConstant        = "Configured sparse checkout in %s"
	gitSparseCheckoutFailureTemplateConstant        = "Failed to configure sparse checkout in %s (exit code %d%s)"
	gitSparseCheckoutExecutionFailureConstant       = "Unable to configure sparse checkout in %s: %s"
	gitCheckoutStartTemplateConstant                = "Materializing files in %s"
	gitCheckoutSuccessTemplateConstant              = "Materialized files in %s"
	gitCheckoutFailureTemplateConstant              = "Failed to materialize files in %s (exit code %d%s)"
	gitCheckoutExecutionFailureTemplateConstant     = "Unable to materialize files in %s: %s"
	gitInitStartTemplateConstant                    = "Initializing repository at %s"
	gitInitSuccessTemplateConstant                  = "Initialized repository at %s"
	gitInitFailureTemplateConstant                  = "Failed to initialize repository at %s (exit code %d%s)"
	gitInitExecutionFailureTemplateConstant         = "Unable to initialize repository at %s: %s"
	gitAddStartTemplateConstant                     = "Staging %s in %s"
	gitAddSuccessTemplateConstant                   = "Staged %s in %s"
	gitAddFailureTemplateConstant                   = "Failed to stage %s in %s (exit code %d%s)"
	gitAddExecutionFailureTemplateConstant          = "Unable to stage %s in %s: %s"
	gitCommitStartTemplateConstant                  = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant                = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant                = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant       = "Unable to create commit in %s with message %q: %s"
	gitBranchRenameStartTemplateConstant            = "Setting branch %s in %s"
	gitBranchRenameSuccessTemplateConstant          = "Set branch %s in %s"
	gitBranchRenameFailureTemplateConstant          = "Failed to set branch %s in %s (exit code %d%s)"
	gitBranchRenameExecutionFailureTemplateConstant = "Unable to set branch %s in %s: %s"
	gitRemoteConfigureStartTemplateConstant         = "Configuring remote %s in %s"
	gitRemoteConfigureSuccessTemplateConstant       = "Configured remote %s in %s"
	gitRemoteConfigureFailureTemplateConstant       = "Failed to configure remote %s in %s (exit code %d%s)"
	gitRemoteConfigureExecutionFailureConstant      = "Unable to configure remote %s in %s: %s"
	gitPushStartTemplateConstant                    = "Pushing %s to %s from %s"
	gitPushSuccessTemplateConstant                  = "Pushed %s to %s from %s"
	gitPushFailureTemplateConstant                  = "Failed to push %s to %s from %s (exit code %d%s)"
	gitPushExecutionFailureTemplateConstant         = "Unable to push %s to %s from %s: %s"
)

const (
	githubRepoSubcommandNameConstant        = "repo"
	githubRepoCreateSubcommandNameConstant  = "create"
	githubRepoCloneSubcommandNameConstant   = "clone"
	githubRepoViewSubcommandNameConstant    = "view"
	githubAPICommandNameConstant            = "api"
	githubContentsEndpointSubstringConstant = "/contents/"
	githubUserEndpointConstant              = "user"
	githubUserOrgsEndpointConstant          = "user/orgs"
	githubRepositoryArgumentIndexConstant   = 2
)

const (
	githubRepoCreateStartTemplateConstant           = "Creating repository %s"
	githubRepoCreateSuccessTemplateConstant         = "Created repository %s"
	githubRepoCreateFailureTemplateConstant         = "Failed to create repository %s (exit code %d%s)"
	githubRepoCreateExecutionFailureConstant        = "Unable to create repository %s: %s"
	githubRepoCloneStartTemplateConstant            = "Cloning repository %s"
	githubRepoCloneSuccessTemplateConstant          = "Cloned repository %s"
	githubRepoCloneFailureTemplateConstant          = "Failed to clone repository %s (exit code %d%s)"
	githubRepoCloneExecutionFailureConstant         = "Unable to clone repository %s: %s"
	githubRepoViewStartTemplateConstant             = "Retrieving repository details for %s"
	githubRepoViewSuccessTemplateConstant           = "Retrieved repository details for %s"
	githubRepoViewFailureTemplateConstant           = "Failed to retrieve repository details for %s (exit code %d%s)"
	githubRepoViewExecutionFailureConstant          = "Unable to retrieve repository details for %s: %s"
	githubContentsStartTemplateConstant             = "Fetching file contents from %s"
	githubContentsSuccessTemplateConstant           = "Fetched file contents from %s"
	githubContentsFailureTemplateConstant           = "Failed to fetch file contents from %s (exit code %d%s)"
	githubContentsExecutionFailureConstant          = "Unable to fetch file contents from %s: %s"
	githubUserLookupStartTemplateConstant           = "Resolving authenticated GitHub user"
	githubUserLookupSuccessTemplateConstant         = "Resolved authenticated GitHub user"
	githubUserLookupFailureTemplateConstant         = "Failed to resolve authenticated GitHub user (exit code %d%s)"
	githubUserLookupExecutionFailureConstant        = "Unable to resolve authenticated GitHub user: %s"
	githubOrganizationsStartTemplateConstant        = "Listing GitHub organizations"
	githubOrganizationsSuccessTemplateConstant      = "Listed GitHub organizations"
	githubOrganizationsFailureTemplateConstant      = "Failed to list GitHub organizations (exit code %d%s)"
	githubOrganizationsExecutionFailureConstant     = "Unable to list GitHub organizations: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandGitHub:
		return formatter.describeGitHubMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitCloneSubcommandNameConstant:
		return formatter.describeGitCloneMessage(command, result, failure, stage)
	case gitSparseCheckoutSubcommandNameConstant:
		return formatter.describeLocationMessage(command, result, failure, stage, gitSparseCheckoutStartTemplateConstant, gitSparseCheckoutSuccessTemplateConstant, gitSparseCheckoutFailureTemplateConstant, gitSparseCheckoutExecutionFailureConstant)
	case gitCheckoutSubcommandNameConstant:
		return formatter.describeLocationMessage(command, result, failure, stage, gitCheckoutStartTemplateConstant, gitCheckoutSuccessTemplateConstant, gitCheckoutFailureTemplateConstant, gitCheckoutExecutionFailureTemplateConstant)
	case gitInitSubcommandNameConstant:
		return formatter.describeLocationMessage(command, result, failure, stage, gitInitStartTemplateConstant, gitInitSuccessTemplateConstant, gitInitFailureTemplateConstant, gitInitExecutionFailureTemplateConstant)
	case gitAddSubcommandNameConstant:
		return formatter.describeGitAddMessage(command, result, failure, stage)
	case gitCommitSubcommandNameConstant:
		return formatter.describeGitCommitMessage(command, result, failure, stage)
	case gitBranchSubcommandNameConstant:
		return formatter.describeGitBranchMessage(command, result, failure, stage)
	case gitRemoteSubcommandNameConstant:
		return formatter.describeGitRemoteMessage(command, result, failure, stage)
	case gitPushSubcommandNameConstant:
		return formatter.describeGitPushMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCloneMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	remoteURL, destination := formatter.extractCloneEndpoints(command.Details.Arguments[1:])
	trimmedRemote := formatter.ensureValue(remoteURL)
	trimmedDestination := formatter.ensureValue(destination)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCloneStartTemplateConstant, trimmedRemote, trimmedDestination)
	case messageStageSuccess:
		return fmt.Sprintf(gitCloneSuccessTemplateConstant, trimmedRemote, trimmedDestination)
	case messageStageFailure:
		return fmt.Sprintf(gitCloneFailureTemplateConstant, trimmedRemote, trimmedDestination, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCloneExecutionFailureTemplateConstant, trimmedRemote, trimmedDestination, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeLocationMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage, startTemplate string, successTemplate string, failureTemplate string, executionFailureTemplate string) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(startTemplate, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(successTemplate, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(failureTemplate, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(executionFailureTemplate, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitAddMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	targetPath := formatter.ensureValue(formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:]))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitAddStartTemplateConstant, targetPath, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitAddSuccessTemplateConstant, targetPath, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitAddFailureTemplateConstant, targetPath, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitAddExecutionFailureTemplateConstant, targetPath, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCommitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	commitMessage := formatter.extractFlagValue(command.Details.Arguments, gitMessageFlagConstant)
	if len(commitMessage) == 0 {
		commitMessage = fallbackUnknownValueLabelConstant
	}
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCommitStartTemplateConstant, workingDirectory, commitMessage)
	case messageStageSuccess:
		return fmt.Sprintf(gitCommitSuccessTemplateConstant, workingDirectory, commitMessage)
	case messageStageFailure:
		return fmt.Sprintf(gitCommitFailureTemplateConstant, workingDirectory, commitMessage, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCommitExecutionFailureTemplateConstant, workingDirectory, commitMessage, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitBranchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	branchName := formatter.ensureValue(formatter.extractFlagValue(command.Details.Arguments, gitBranchMoveFlagConstant))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitBranchRenameStartTemplateConstant, branchName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitBranchRenameSuccessTemplateConstant, branchName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitBranchRenameFailureTemplateConstant, branchName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitBranchRenameExecutionFailureTemplateConstant, branchName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(arguments[1])
	if subcommand != gitRemoteAddSubcommandNameConstant && subcommand != gitRemoteSetURLSubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitRemoteConfigureStartTemplateConstant, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitRemoteConfigureSuccessTemplateConstant, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitRemoteConfigureFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitRemoteConfigureExecutionFailureConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitPushMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	arguments := command.Details.Arguments
	remoteName := formatter.ensureValue(formatter.extractNonFlagArgumentAt(arguments[1:], 0))
	branchReference := formatter.ensureValue(formatter.extractNonFlagArgumentAt(arguments[1:], 1))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitPushStartTemplateConstant, branchReference, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitPushSuccessTemplateConstant, branchReference, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitPushFailureTemplateConstant, branchReference, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitPushExecutionFailureTemplateConstant, branchReference, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	primary := strings.TrimSpace(arguments[0])
	switch primary {
	case githubRepoSubcommandNameConstant:
		return formatter.describeGitHubRepoMessage(command, result, failure, stage)
	case githubAPICommandNameConstant:
		return formatter.describeGitHubAPIMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubRepoMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) <= githubRepositoryArgumentIndexConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(arguments[1])
	repository := formatter.ensureValue(strings.TrimSpace(arguments[githubRepositoryArgumentIndexConstant]))

	var startTemplate string
	var successTemplate string
	var failureTemplate string
	var executionFailureTemplate string

	switch subcommand {
	case githubRepoCreateSubcommandNameConstant:
		startTemplate, successTemplate, failureTemplate, executionFailureTemplate = githubRepoCreateStartTemplateConstant, githubRepoCreateSuccessTemplateConstant, githubRepoCreateFailureTemplateConstant, githubRepoCreateExecutionFailureConstant
	case githubRepoCloneSubcommandNameConstant:
		startTemplate, successTemplate, failureTemplate, executionFailureTemplate = githubRepoCloneStartTemplateConstant, githubRepoCloneSuccessTemplateConstant, githubRepoCloneFailureTemplateConstant, githubRepoCloneExecutionFailureConstant
	case githubRepoViewSubcommandNameConstant:
		startTemplate, successTemplate, failureTemplate, executionFailureTemplate = githubRepoViewStartTemplateConstant, githubRepoViewSuccessTemplateConstant, githubRepoViewFailureTemplateConstant, githubRepoViewExecutionFailureConstant
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(startTemplate, repository)
	case messageStageSuccess:
		return fmt.Sprintf(successTemplate, repository)
	case messageStageFailure:
		return fmt.Sprintf(failureTemplate, repository, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(executionFailureTemplate, repository, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubAPIMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	endpoint := strings.TrimSpace(arguments[1])
	switch {
	case strings.Contains(endpoint, githubContentsEndpointSubstringConstant):
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubContentsStartTemplateConstant, endpoint)
		case messageStageSuccess:
			return fmt.Sprintf(githubContentsSuccessTemplateConstant, endpoint)
		case messageStageFailure:
			return fmt.Sprintf(githubContentsFailureTemplateConstant, endpoint, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(githubContentsExecutionFailureConstant, endpoint, formatter.describeFailure(failure))
		}
	case endpoint == githubUserOrgsEndpointConstant:
		switch stage {
		case messageStageStart:
			return githubOrganizationsStartTemplateConstant
		case messageStageSuccess:
			return githubOrganizationsSuccessTemplateConstant
		case messageStageFailure:
			return fmt.Sprintf(githubOrganizationsFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(githubOrganizationsExecutionFailureConstant, formatter.describeFailure(failure))
		}
	case endpoint == githubUserEndpointConstant:
		switch stage {
		case messageStageStart:
			return githubUserLookupStartTemplateConstant
		case messageStageSuccess:
			return githubUserLookupSuccessTemplateConstant
		case messageStageFailure:
			return fmt.Sprintf(githubUserLookupFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(githubUserLookupExecutionFailureConstant, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	return formatter.extractNonFlagArgumentAt(arguments, 0)
}

func (formatter CommandMessageFormatter) extractNonFlagArgumentAt(arguments []string, position int) string {
	observed := 0
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, "-") {
			continue
		}
		if observed == position {
			return trimmed
		}
		observed++
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractCloneEndpoints(arguments []string) (string, string) {
	remoteURL := formatter.extractNonFlagArgumentAt(arguments, 0)
	destination := formatter.extractNonFlagArgumentAt(arguments, 1)
	return remoteURL, destination
}

func (formatter CommandMessageFormatter) extractFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}
