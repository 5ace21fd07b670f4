package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForCloneIncludesRemoteAndDestination(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments: []string{"clone", "--filter=blob:none", "https://github.com/acme/widget.git", "/tmp/widget"},
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Cloning https://github.com/acme/widget.git into /tmp/widget", message)
}

func TestBuildFailureMessageForCloneIncludesExitCodeAndStandardError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments: []string{"clone", "https://github.com/acme/widget.git", "/tmp/widget"},
		},
	}
	result := ExecutionResult{ExitCode: 128, StandardError: "fatal: repository not found\n"}

	message := formatter.BuildFailureMessage(command, result)

	require.Equal(t, "Failed to clone https://github.com/acme/widget.git into /tmp/widget (exit code 128: fatal: repository not found)", message)
}

func TestBuildStartedMessageForSparseCheckoutUsesWorkingDirectory(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"sparse-checkout", "set", "configs/app.yaml"},
			WorkingDirectory: "/tmp/sparse",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Configuring sparse checkout in /tmp/sparse", message)
}

func TestBuildSuccessMessageForCommitIncludesMessageText(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"commit", "-m", "Initial commit"},
			WorkingDirectory: "/workspace/widget",
		},
	}

	message := formatter.BuildSuccessMessage(command)

	require.Equal(t, "Created commit in /workspace/widget with message \"Initial commit\"", message)
}

func TestBuildStartedMessageForBranchRenameNamesBranch(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"branch", "-M", "main"},
			WorkingDirectory: "/workspace/widget",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Setting branch main in /workspace/widget", message)
}

func TestBuildStartedMessageForRemoteAddNamesRemote(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"remote", "add", "origin", "git@github.com:acme/widget.git"},
			WorkingDirectory: "/workspace/widget",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Configuring remote origin in /workspace/widget", message)
}

func TestBuildStartedMessageForRemoteSetURLNamesRemote(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"remote", "set-url", "origin", "git@github.com:acme/widget.git"},
			WorkingDirectory: "/workspace/widget",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Configuring remote origin in /workspace/widget", message)
}

func TestBuildStartedMessageForPushIncludesBranchRemoteAndDirectory(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"push", "-u", "origin", "main"},
			WorkingDirectory: "/workspace/widget",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Pushing main to origin from /workspace/widget", message)
}

func TestBuildStartedMessageForRepositoryCreationNamesRepository(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGitHub,
		Details: CommandDetails{
			Arguments: []string{"repo", "create", "acme/widget", "--private", "--confirm"},
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Creating repository acme/widget", message)
}

func TestBuildStartedMessageForRepositoryViewNamesRepository(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGitHub,
		Details: CommandDetails{
			Arguments: []string{"repo", "view", "acme/widget", "--json", "nameWithOwner,defaultBranchRef"},
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Retrieving repository details for acme/widget", message)
}

func TestBuildStartedMessageForContentsEndpointNamesEndpoint(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGitHub,
		Details: CommandDetails{
			Arguments: []string{"api", "repos/acme/widget/contents/README.md?ref=main"},
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Fetching file contents from repos/acme/widget/contents/README.md?ref=main", message)
}

func TestBuildStartedMessageForAuthenticatedUserLookup(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGitHub,
		Details: CommandDetails{
			Arguments: []string{"api", "user", "--jq", ".login"},
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Resolving authenticated GitHub user", message)
}

func TestBuildStartedMessageForOrganizationListing(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGitHub,
		Details: CommandDetails{
			Arguments: []string{"api", "user/orgs", "--paginate", "--jq", ".[].login"},
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Listing GitHub organizations", message)
}

func TestBuildExecutionFailureMessageFallsBackToGenericLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"status"},
			WorkingDirectory: "/workspace/widget",
		},
	}

	message := formatter.BuildExecutionFailureMessage(command, errors.New("executable not found"))

	require.Equal(t, "git status (in /workspace/widget) failed: executable not found", message)
}

func TestBuildSuccessMessageForUnknownCommandUsesGenericTemplate(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandName("hub"),
		Details: CommandDetails{Arguments: []string{"sync"}},
	}

	message := formatter.BuildSuccessMessage(command)

	require.Equal(t, "Completed hub sync", message)
}
