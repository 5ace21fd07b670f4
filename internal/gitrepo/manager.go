package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/hubrepo/internal/execshell"
	"github.com/temirov/hubrepo/internal/reporef"
)

const (
	initSubcommandConstant               = "init"
	addSubcommandConstant                = "add"
	commitSubcommandConstant             = "commit"
	branchSubcommandConstant             = "branch"
	remoteSubcommandConstant             = "remote"
	remoteAddSubcommandConstant          = "add"
	remoteSetURLSubcommandConstant       = "set-url"
	pushSubcommandConstant               = "push"
	cloneSubcommandConstant              = "clone"
	allPathsFlagConstant                 = "--all"
	messageFlagConstant                  = "-m"
	moveBranchFlagConstant               = "-M"
	setUpstreamFlagConstant              = "-u"
	depthFlagTemplateConstant            = "--depth=%s"
	branchFlagConstant                   = "--branch"
	defaultRemoteNameConstant            = "origin"
	defaultRemoteHostConstant            = "github.com"
	defaultInitialBranchNameConstant     = "main"
	defaultInitialCommitMessageConstant  = "init commit"
	requiredValueMessageConstant         = "value required"
	executorNotConfiguredMessageConstant = "git executor not configured"
	repositoryPathFieldNameConstant      = "repository path"
	commitMessageFieldNameConstant       = "commit message"
	branchNameFieldNameConstant          = "branch"
	remoteNameFieldNameConstant          = "remote name"
	remoteURLFieldNameConstant           = "remote url"
	destinationFieldNameConstant         = "destination"
	gitOperationErrorTemplateConstant    = "%s failed: %s"
)

var (
	// ErrGitExecutorNotConfigured indicates the manager was constructed without an executor.
	ErrGitExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// GitOperationName identifies a named git workflow supported by the manager.
type GitOperationName string

// Supported git operations.
const (
	InitializeOperationName      GitOperationName = GitOperationName("InitializeRepository")
	StageAllOperationName        GitOperationName = GitOperationName("StageAll")
	CreateCommitOperationName    GitOperationName = GitOperationName("CreateCommit")
	RenameBranchOperationName    GitOperationName = GitOperationName("RenameBranch")
	ConfigureRemoteOperationName GitOperationName = GitOperationName("ConfigureRemote")
	PushOperationName            GitOperationName = GitOperationName("Push")
	CloneOperationName           GitOperationName = GitOperationName("CloneRepository")
	SparseFetchOperationName     GitOperationName = GitOperationName("FetchFileSparse")
)

// GitOperationError wraps execution failures for git workflows.
type GitOperationError struct {
	Operation GitOperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError GitOperationError) Error() string {
	return fmt.Sprintf(gitOperationErrorTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError GitOperationError) Unwrap() error {
	return operationError.Cause
}

// InvalidInputError surfaces validation issues for git operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(remoteURLParseErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// GitCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitCommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager performs git operations through execshell.
type RepositoryManager struct {
	executor GitCommandExecutor
}

// NewRepositoryManager constructs a repository manager around the provided executor.
func NewRepositoryManager(executor GitCommandExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// InitializeRepository runs git init inside the provided directory.
func (manager *RepositoryManager) InitializeRepository(executionContext context.Context, repositoryPath string) error {
	trimmedPath, validationError := requireValue(repositoryPath, repositoryPathFieldNameConstant)
	if validationError != nil {
		return validationError
	}
	return manager.runOperation(executionContext, InitializeOperationName, execshell.CommandDetails{
		Arguments:        []string{initSubcommandConstant},
		WorkingDirectory: trimmedPath,
	})
}

// StageAll stages every file in the repository work tree.
func (manager *RepositoryManager) StageAll(executionContext context.Context, repositoryPath string) error {
	trimmedPath, validationError := requireValue(repositoryPath, repositoryPathFieldNameConstant)
	if validationError != nil {
		return validationError
	}
	return manager.runOperation(executionContext, StageAllOperationName, execshell.CommandDetails{
		Arguments:        []string{addSubcommandConstant, allPathsFlagConstant},
		WorkingDirectory: trimmedPath,
	})
}

// CreateCommit records a commit carrying the provided message.
func (manager *RepositoryManager) CreateCommit(executionContext context.Context, repositoryPath string, message string) error {
	trimmedPath, validationError := requireValue(repositoryPath, repositoryPathFieldNameConstant)
	if validationError != nil {
		return validationError
	}
	trimmedMessage, messageValidationError := requireValue(message, commitMessageFieldNameConstant)
	if messageValidationError != nil {
		return messageValidationError
	}
	return manager.runOperation(executionContext, CreateCommitOperationName, execshell.CommandDetails{
		Arguments:        []string{commitSubcommandConstant, messageFlagConstant, trimmedMessage},
		WorkingDirectory: trimmedPath,
	})
}

// RenameBranch forces the current branch to the provided name.
func (manager *RepositoryManager) RenameBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	trimmedPath, validationError := requireValue(repositoryPath, repositoryPathFieldNameConstant)
	if validationError != nil {
		return validationError
	}
	trimmedBranch, branchValidationError := requireValue(branchName, branchNameFieldNameConstant)
	if branchValidationError != nil {
		return branchValidationError
	}
	return manager.runOperation(executionContext, RenameBranchOperationName, execshell.CommandDetails{
		Arguments:        []string{branchSubcommandConstant, moveBranchFlagConstant, trimmedBranch},
		WorkingDirectory: trimmedPath,
	})
}

// ConfigureRemote registers the remote, updating its URL when the remote
// already exists.
func (manager *RepositoryManager) ConfigureRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	trimmedPath, validationError := requireValue(repositoryPath, repositoryPathFieldNameConstant)
	if validationError != nil {
		return validationError
	}
	trimmedRemoteName, remoteValidationError := requireValue(remoteName, remoteNameFieldNameConstant)
	if remoteValidationError != nil {
		return remoteValidationError
	}
	trimmedRemoteURL, urlValidationError := requireValue(remoteURL, remoteURLFieldNameConstant)
	if urlValidationError != nil {
		return urlValidationError
	}
	if _, parseError := ParseRemoteURL(trimmedRemoteURL); parseError != nil {
		return parseError
	}

	addError := manager.runOperation(executionContext, ConfigureRemoteOperationName, execshell.CommandDetails{
		Arguments:        []string{remoteSubcommandConstant, remoteAddSubcommandConstant, trimmedRemoteName, trimmedRemoteURL},
		WorkingDirectory: trimmedPath,
	})
	if addError == nil {
		return nil
	}

	setURLError := manager.runOperation(executionContext, ConfigureRemoteOperationName, execshell.CommandDetails{
		Arguments:        []string{remoteSubcommandConstant, remoteSetURLSubcommandConstant, trimmedRemoteName, trimmedRemoteURL},
		WorkingDirectory: trimmedPath,
	})
	if setURLError == nil {
		return nil
	}
	return setURLError
}

// Push publishes the branch to the remote with upstream tracking.
func (manager *RepositoryManager) Push(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	trimmedPath, validationError := requireValue(repositoryPath, repositoryPathFieldNameConstant)
	if validationError != nil {
		return validationError
	}
	trimmedRemoteName, remoteValidationError := requireValue(remoteName, remoteNameFieldNameConstant)
	if remoteValidationError != nil {
		return remoteValidationError
	}
	trimmedBranch, branchValidationError := requireValue(branchName, branchNameFieldNameConstant)
	if branchValidationError != nil {
		return branchValidationError
	}
	return manager.runOperation(executionContext, PushOperationName, execshell.CommandDetails{
		Arguments:        []string{pushSubcommandConstant, setUpstreamFlagConstant, trimmedRemoteName, trimmedBranch},
		WorkingDirectory: trimmedPath,
	})
}

// InitialCommitOptions configures PushInitialCommit. RemoteURL overrides the
// canonical https remote when the caller pushes over a different protocol.
type InitialCommitOptions struct {
	RepositoryPath string
	Owner          string
	Name           string
	Branch         string
	Message        string
	RemoteURL      string
}

// PushInitialCommit initializes a repository, commits the work tree, and
// pushes the first commit to the canonical GitHub remote.
func (manager *RepositoryManager) PushInitialCommit(executionContext context.Context, options InitialCommitOptions) error {
	remoteURL := strings.TrimSpace(options.RemoteURL)
	if len(remoteURL) == 0 {
		canonicalRemote := RemoteURLFromReference(reporef.Reference{
			Owner: strings.TrimSpace(options.Owner),
			Name:  reporef.SanitizeRepositoryName(options.Name),
			Host:  defaultRemoteHostConstant,
		}, RemoteProtocolHTTPS)
		builtRemoteURL, buildError := FormatRemoteURL(canonicalRemote)
		if buildError != nil {
			return buildError
		}
		remoteURL = builtRemoteURL
	}

	branchName := strings.TrimSpace(options.Branch)
	if len(branchName) == 0 {
		branchName = defaultInitialBranchNameConstant
	}
	commitMessage := strings.TrimSpace(options.Message)
	if len(commitMessage) == 0 {
		commitMessage = defaultInitialCommitMessageConstant
	}

	if initializeError := manager.InitializeRepository(executionContext, options.RepositoryPath); initializeError != nil {
		return initializeError
	}
	if stageError := manager.StageAll(executionContext, options.RepositoryPath); stageError != nil {
		return stageError
	}
	if commitError := manager.CreateCommit(executionContext, options.RepositoryPath, commitMessage); commitError != nil {
		return commitError
	}
	if renameError := manager.RenameBranch(executionContext, options.RepositoryPath, branchName); renameError != nil {
		return renameError
	}
	if remoteError := manager.ConfigureRemote(executionContext, options.RepositoryPath, defaultRemoteNameConstant, remoteURL); remoteError != nil {
		return remoteError
	}
	return manager.Push(executionContext, options.RepositoryPath, defaultRemoteNameConstant, branchName)
}

// CloneOptions configures CloneRepository.
type CloneOptions struct {
	Branch string
	Depth  int
}

// CloneRepository clones the remote into the destination directory.
func (manager *RepositoryManager) CloneRepository(executionContext context.Context, remoteURL string, destination string, options CloneOptions) error {
	trimmedRemoteURL, urlValidationError := requireValue(remoteURL, remoteURLFieldNameConstant)
	if urlValidationError != nil {
		return urlValidationError
	}
	trimmedDestination, destinationValidationError := requireValue(destination, destinationFieldNameConstant)
	if destinationValidationError != nil {
		return destinationValidationError
	}

	arguments := []string{cloneSubcommandConstant}
	if options.Depth > 0 {
		arguments = append(arguments, fmt.Sprintf(depthFlagTemplateConstant, strconv.Itoa(options.Depth)))
	}
	if len(strings.TrimSpace(options.Branch)) > 0 {
		arguments = append(arguments, branchFlagConstant, options.Branch)
	}
	arguments = append(arguments, trimmedRemoteURL, trimmedDestination)

	return manager.runOperation(executionContext, CloneOperationName, execshell.CommandDetails{Arguments: arguments})
}

func (manager *RepositoryManager) runOperation(executionContext context.Context, operation GitOperationName, details execshell.CommandDetails) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, details)
	if executionError != nil {
		return GitOperationError{Operation: operation, Cause: executionError}
	}
	return nil
}

func requireValue(value string, fieldName string) (string, error) {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return "", InvalidInputError{FieldName: fieldName, Message: requiredValueMessageConstant}
	}
	return trimmedValue, nil
}
