package repo

import (
	"context"
	"os/exec"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/hubrepo/internal/execshell"
	"github.com/temirov/hubrepo/internal/gitclone"
	"github.com/temirov/hubrepo/internal/githubapi"
	"github.com/temirov/hubrepo/internal/githubauth"
	"github.com/temirov/hubrepo/internal/githubcli"
	"github.com/temirov/hubrepo/internal/gitrepo"
	"github.com/temirov/hubrepo/internal/repoaccess"
	"github.com/temirov/hubrepo/internal/tempdirs"
	"github.com/temirov/hubrepo/internal/ui"
	pathutils "github.com/temirov/hubrepo/internal/utils/path"
)

var destinationHomeDirectoryExpander = pathutils.NewHomeExpander()

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider yields the repository tools configuration section.
type ConfigurationProvider func() ToolsConfiguration

// RepositoryService describes the transport-dispatched operations the commands invoke.
type RepositoryService interface {
	Resolve(executionContext context.Context, reference string, branchOverride string) (repoaccess.Resolution, error)
	CreateRepository(executionContext context.Context, options repoaccess.CreateOptions) (string, error)
	Clone(executionContext context.Context, options repoaccess.CloneOptions) error
	FetchFile(executionContext context.Context, options repoaccess.FetchOptions) ([]byte, error)
	PushInitialCommit(executionContext context.Context, options repoaccess.PushOptions) error
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveConfiguration(provider ConfigurationProvider) ToolsConfiguration {
	if provider == nil {
		return DefaultToolsConfiguration()
	}
	return provider().sanitize()
}

func noopServiceTeardown() {}

// resolveService builds the transport service when no override is injected.
// The cli transport runs the GitHub CLI preflight and pins the resolved
// executable path on the shell executor. The returned teardown releases any
// temporary directories the service created and must run after the operation.
func resolveService(override RepositoryService, configuration ToolsConfiguration, logger *zap.Logger, humanReadableLogging bool) (RepositoryService, func(), error) {
	if override != nil {
		return override, noopServiceTeardown, nil
	}

	transport, transportError := repoaccess.ParseTransport(configuration.Transport)
	if transportError != nil {
		return nil, nil, transportError
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner)
	if executorError != nil {
		return nil, nil, executorError
	}
	if humanReadableLogging {
		shellExecutor = shellExecutor.WithObserver(ui.NewConsoleCommandEventLogger(logger))
	}

	gitManager, managerError := gitrepo.NewRepositoryManager(shellExecutor)
	if managerError != nil {
		return nil, nil, managerError
	}

	temporaryDirectories := tempdirs.NewManager(logger)
	dependencies := repoaccess.Dependencies{
		GitManager:      gitManager,
		TempDirectories: temporaryDirectories,
		Logger:          logger,
	}

	switch transport {
	case repoaccess.TransportCLI:
		preflight, preflightError := githubcli.NewPreflight(githubcli.PreflightDependencies{
			LookupExecutable: exec.LookPath,
			Runner:           commandRunner,
		})
		if preflightError != nil {
			return nil, nil, preflightError
		}
		githubCLIPath, ensureError := preflight.EnsureGitHubCLI(context.Background())
		if ensureError != nil {
			return nil, nil, ensureError
		}
		shellExecutor = shellExecutor.WithToolPaths(execshell.ToolPaths{GitHubCLI: githubCLIPath})

		cliClient, clientError := githubcli.NewClient(shellExecutor)
		if clientError != nil {
			return nil, nil, clientError
		}
		dependencies.CLIClient = cliClient

	case repoaccess.TransportSSH:
		cloner, clonerError := gitclone.NewCloner(logger)
		if clonerError != nil {
			return nil, nil, clonerError
		}
		dependencies.Cloner = cloner

	case repoaccess.TransportHTTPS:
		token, _ := githubauth.ResolveToken(nil)
		apiClient, apiError := githubapi.NewClient(githubapi.ClientConfiguration{TokenSource: githubauth.TokenSource(nil)})
		if apiError != nil {
			return nil, nil, apiError
		}
		dependencies.APIClient = apiClient
		dependencies.RawFetcher = githubapi.NewRawFileFetcher(githubapi.RawFileFetcherConfiguration{Token: token})
	}

	service, serviceError := repoaccess.NewService(transport, dependencies)
	if serviceError != nil {
		return nil, nil, serviceError
	}
	return service, temporaryDirectories.CleanupAll, nil
}

// operationContext derives a deadline-bound context from the command context.
func operationContext(command *cobra.Command, timeoutSeconds int) (context.Context, context.CancelFunc) {
	parentContext := context.Background()
	if command != nil && command.Context() != nil {
		parentContext = command.Context()
	}
	if timeoutSeconds <= 0 {
		return parentContext, func() {}
	}
	return context.WithTimeout(parentContext, time.Duration(timeoutSeconds)*time.Second)
}
