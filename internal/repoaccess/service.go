package repoaccess

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/hubrepo/internal/gitclone"
	"github.com/temirov/hubrepo/internal/githubapi"
	"github.com/temirov/hubrepo/internal/githubcli"
	"github.com/temirov/hubrepo/internal/gitrepo"
	"github.com/temirov/hubrepo/internal/reporef"
)

const (
	cliClientNotConfiguredMessageConstant  = "repoaccess: GitHub CLI client not configured"
	apiClientNotConfiguredMessageConstant  = "repoaccess: GitHub API client not configured"
	rawFetcherNotConfiguredMessageConstant = "repoaccess: raw content fetcher not configured"
	gitManagerNotConfiguredMessageConstant = "repoaccess: git repository manager not configured"
	clonerNotConfiguredMessageConstant     = "repoaccess: repository cloner not configured"
	tempDirsNotConfiguredMessageConstant   = "repoaccess: temporary directory manager not configured"
	branchRequiredMessageConstant          = "repoaccess: branch is required for sparse fetch over ssh"
	cloneDepthArgumentTemplateConstant     = "--depth=%d"
	operationErrorTemplateConstant         = "%s over %s failed: %s"
	metadataFallbackMessageConstant        = "Using parsed reference; transport metadata lookup failed"
	referenceLogFieldNameConstant          = "reference"
	resolveOperationNameConstant           = OperationName("Resolve")
	createRepositoryOperationNameConstant  = OperationName("CreateRepository")
	cloneOperationNameConstant             = OperationName("Clone")
	fetchFileOperationNameConstant         = OperationName("FetchFile")
	pushInitialCommitOperationNameConstant = OperationName("PushInitialCommit")
)

// OperationName identifies a transport-dispatched repository operation.
type OperationName string

// Sentinel errors for missing dependency wiring and invalid requests.
var (
	ErrCLIClientNotConfigured       = errors.New(cliClientNotConfiguredMessageConstant)
	ErrAPIClientNotConfigured       = errors.New(apiClientNotConfiguredMessageConstant)
	ErrRawFetcherNotConfigured      = errors.New(rawFetcherNotConfiguredMessageConstant)
	ErrGitManagerNotConfigured      = errors.New(gitManagerNotConfiguredMessageConstant)
	ErrClonerNotConfigured          = errors.New(clonerNotConfiguredMessageConstant)
	ErrTempDirectoriesNotConfigured = errors.New(tempDirsNotConfiguredMessageConstant)
	ErrBranchRequired               = errors.New(branchRequiredMessageConstant)
)

// OperationError wraps a transport failure with the operation that observed it.
type OperationError struct {
	Operation OperationName
	Transport Transport
	Cause     error
}

// Error describes the failed operation.
func (operationError OperationError) Error() string {
	return fmt.Sprintf(operationErrorTemplateConstant, operationError.Operation, operationError.Transport, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// CLIRepositoryClient describes the GitHub CLI operations the service dispatches to.
type CLIRepositoryClient interface {
	ResolveRepoMetadata(executionContext context.Context, repository string) (githubcli.RepositoryMetadata, error)
	CreateRepository(executionContext context.Context, options githubcli.RepositoryCreateOptions) (string, error)
	CloneRepository(executionContext context.Context, options githubcli.RepositoryCloneOptions) error
	FetchFileContents(executionContext context.Context, repository string, branch string, filePath string) ([]byte, error)
}

// APIRepositoryClient describes the REST API operations the service dispatches to.
type APIRepositoryClient interface {
	ResolveRepoMetadata(executionContext context.Context, owner string, name string) (githubapi.RepositoryMetadata, error)
	CreateRepository(executionContext context.Context, options githubapi.RepositoryCreateOptions) (githubapi.RepositoryMetadata, error)
}

// RawContentFetcher retrieves single files from the raw content endpoint.
type RawContentFetcher interface {
	FetchRawFile(executionContext context.Context, repository string, branch string, filePath string) ([]byte, error)
}

// GitRepositoryManager describes the shell git operations the service dispatches to.
type GitRepositoryManager interface {
	CloneRepository(executionContext context.Context, remoteURL string, destination string, options gitrepo.CloneOptions) error
	FetchFileSparse(executionContext context.Context, remoteURL string, branch string, filePath string, tempDirectories gitrepo.TemporaryDirectoryManager) ([]byte, error)
	PushInitialCommit(executionContext context.Context, options gitrepo.InitialCommitOptions) error
}

// RepositoryCloner clones repositories without shelling out to git.
type RepositoryCloner interface {
	Clone(executionContext context.Context, request gitclone.CloneRequest) error
}

// Dependencies wires the transport clients consumed by the Service. Only the
// clients required by the configured transport must be present.
type Dependencies struct {
	CLIClient       CLIRepositoryClient
	APIClient       APIRepositoryClient
	RawFetcher      RawContentFetcher
	GitManager      GitRepositoryManager
	Cloner          RepositoryCloner
	TempDirectories gitrepo.TemporaryDirectoryManager
	Logger          *zap.Logger
}

// Service dispatches repository operations over the configured transport.
type Service struct {
	transport    Transport
	dependencies Dependencies
}

// NewService validates the transport and constructs a Service.
func NewService(transport Transport, dependencies Dependencies) (*Service, error) {
	parsedTransport, parseError := ParseTransport(string(transport))
	if parseError != nil {
		return nil, parseError
	}
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	return &Service{transport: parsedTransport, dependencies: dependencies}, nil
}

// Transport reports the transport the service dispatches over.
func (service *Service) Transport() Transport {
	return service.transport
}

// Resolution carries the canonical identity of a repository reference.
type Resolution struct {
	Reference     reporef.Reference
	NameWithOwner string
	Branch        string
	Description   string
}

// Resolve normalizes the reference and, where the transport supports it,
// enriches the result with canonical metadata. An explicit branch override
// always wins; otherwise the default branch reported by the transport is used.
func (service *Service) Resolve(executionContext context.Context, reference string, branchOverride string) (Resolution, error) {
	parsedReference, parseError := reporef.Resolve(reference)
	if parseError != nil {
		return Resolution{}, parseError
	}

	resolution := Resolution{
		Reference:     parsedReference,
		NameWithOwner: parsedReference.BareName(),
		Branch:        strings.TrimSpace(branchOverride),
	}

	switch service.transport {
	case TransportCLI:
		if service.dependencies.CLIClient == nil {
			return Resolution{}, ErrCLIClientNotConfigured
		}
		metadata, metadataError := service.dependencies.CLIClient.ResolveRepoMetadata(executionContext, resolution.NameWithOwner)
		if metadataError != nil {
			service.dependencies.Logger.Debug(metadataFallbackMessageConstant, zap.String(referenceLogFieldNameConstant, resolution.NameWithOwner), zap.Error(metadataError))
			return resolution, nil
		}
		service.applyMetadata(&resolution, metadata.NameWithOwner, metadata.Description, metadata.DefaultBranch, branchOverride)
		return resolution, nil

	case TransportHTTPS:
		if service.dependencies.APIClient == nil {
			return Resolution{}, ErrAPIClientNotConfigured
		}
		metadata, metadataError := service.dependencies.APIClient.ResolveRepoMetadata(executionContext, parsedReference.Owner, parsedReference.Name)
		if metadataError != nil {
			return Resolution{}, OperationError{Operation: resolveOperationNameConstant, Transport: service.transport, Cause: metadataError}
		}
		service.applyMetadata(&resolution, metadata.NameWithOwner, metadata.Description, metadata.DefaultBranch, branchOverride)
		return resolution, nil

	default:
		return resolution, nil
	}
}

func (service *Service) applyMetadata(resolution *Resolution, nameWithOwner string, description string, defaultBranch string, branchOverride string) {
	if len(strings.TrimSpace(nameWithOwner)) > 0 {
		resolution.NameWithOwner = strings.TrimSpace(nameWithOwner)
	}
	resolution.Description = description
	if len(strings.TrimSpace(branchOverride)) == 0 {
		resolution.Branch = defaultBranch
	}
}

// CreateOptions configures CreateRepository. An empty Owner creates the
// repository under the authenticated identity. SourcePath pushes an existing
// directory during creation and is only supported by the cli transport.
type CreateOptions struct {
	Owner       string
	Name        string
	Private     bool
	Description string
	SourcePath  string
}

// CreateRepository creates the repository over the configured transport and
// returns its canonical owner/name.
func (service *Service) CreateRepository(executionContext context.Context, options CreateOptions) (string, error) {
	switch service.transport {
	case TransportCLI:
		if service.dependencies.CLIClient == nil {
			return "", ErrCLIClientNotConfigured
		}
		nameWithOwner, createError := service.dependencies.CLIClient.CreateRepository(executionContext, githubcli.RepositoryCreateOptions{
			Owner:       options.Owner,
			Name:        options.Name,
			Private:     options.Private,
			Description: options.Description,
			Source:      options.SourcePath,
		})
		if createError != nil {
			return "", OperationError{Operation: createRepositoryOperationNameConstant, Transport: service.transport, Cause: createError}
		}
		return nameWithOwner, nil

	default:
		if len(strings.TrimSpace(options.SourcePath)) > 0 {
			return "", UnsupportedOperationError{Operation: createRepositoryOperationNameConstant, Transport: service.transport}
		}
		if service.dependencies.APIClient == nil {
			return "", ErrAPIClientNotConfigured
		}
		metadata, createError := service.dependencies.APIClient.CreateRepository(executionContext, githubapi.RepositoryCreateOptions{
			Organization: options.Owner,
			Name:         options.Name,
			Private:      options.Private,
			Description:  options.Description,
		})
		if createError != nil {
			return "", OperationError{Operation: createRepositoryOperationNameConstant, Transport: service.transport, Cause: createError}
		}
		return metadata.NameWithOwner, nil
	}
}

// CloneOptions configures Clone.
type CloneOptions struct {
	Reference   string
	Destination string
	Branch      string
	Depth       int
}

// Clone clones the referenced repository into the destination directory.
func (service *Service) Clone(executionContext context.Context, options CloneOptions) error {
	parsedReference, parseError := reporef.Resolve(options.Reference)
	if parseError != nil {
		return parseError
	}

	switch service.transport {
	case TransportCLI:
		if service.dependencies.CLIClient == nil {
			return ErrCLIClientNotConfigured
		}
		var cloneArguments []string
		if options.Depth > 0 {
			cloneArguments = []string{fmt.Sprintf(cloneDepthArgumentTemplateConstant, options.Depth)}
		}
		cloneError := service.dependencies.CLIClient.CloneRepository(executionContext, githubcli.RepositoryCloneOptions{
			Repository:     parsedReference.BareName(),
			Destination:    options.Destination,
			Branch:         options.Branch,
			CloneArguments: cloneArguments,
		})
		if cloneError != nil {
			return OperationError{Operation: cloneOperationNameConstant, Transport: service.transport, Cause: cloneError}
		}
		return nil

	case TransportSSH:
		if service.dependencies.Cloner == nil {
			return ErrClonerNotConfigured
		}
		cloneError := service.dependencies.Cloner.Clone(executionContext, gitclone.CloneRequest{
			RemoteURL:   parsedReference.SSHURL(),
			Destination: options.Destination,
			Branch:      options.Branch,
			Depth:       options.Depth,
		})
		if cloneError != nil {
			return OperationError{Operation: cloneOperationNameConstant, Transport: service.transport, Cause: cloneError}
		}
		return nil

	default:
		if service.dependencies.GitManager == nil {
			return ErrGitManagerNotConfigured
		}
		cloneError := service.dependencies.GitManager.CloneRepository(executionContext, parsedReference.HTTPSURL(), options.Destination, gitrepo.CloneOptions{
			Branch: options.Branch,
			Depth:  options.Depth,
		})
		if cloneError != nil {
			return OperationError{Operation: cloneOperationNameConstant, Transport: service.transport, Cause: cloneError}
		}
		return nil
	}
}

// FetchOptions configures FetchFile.
type FetchOptions struct {
	Reference string
	Branch    string
	FilePath  string
}

// FetchFile retrieves a single file from the referenced repository. The ssh
// transport performs a sparse checkout and requires an explicit branch; the
// other transports default to the repository's default branch.
func (service *Service) FetchFile(executionContext context.Context, options FetchOptions) ([]byte, error) {
	parsedReference, parseError := reporef.Resolve(options.Reference)
	if parseError != nil {
		return nil, parseError
	}

	switch service.transport {
	case TransportCLI:
		if service.dependencies.CLIClient == nil {
			return nil, ErrCLIClientNotConfigured
		}
		contents, fetchError := service.dependencies.CLIClient.FetchFileContents(executionContext, parsedReference.BareName(), options.Branch, options.FilePath)
		if fetchError != nil {
			return nil, OperationError{Operation: fetchFileOperationNameConstant, Transport: service.transport, Cause: fetchError}
		}
		return contents, nil

	case TransportSSH:
		if service.dependencies.GitManager == nil {
			return nil, ErrGitManagerNotConfigured
		}
		if service.dependencies.TempDirectories == nil {
			return nil, ErrTempDirectoriesNotConfigured
		}
		if len(strings.TrimSpace(options.Branch)) == 0 {
			return nil, ErrBranchRequired
		}
		contents, fetchError := service.dependencies.GitManager.FetchFileSparse(executionContext, parsedReference.SSHURL(), options.Branch, options.FilePath, service.dependencies.TempDirectories)
		if fetchError != nil {
			return nil, OperationError{Operation: fetchFileOperationNameConstant, Transport: service.transport, Cause: fetchError}
		}
		return contents, nil

	default:
		if service.dependencies.RawFetcher == nil {
			return nil, ErrRawFetcherNotConfigured
		}
		branch := strings.TrimSpace(options.Branch)
		if len(branch) == 0 {
			resolution, resolveError := service.Resolve(executionContext, options.Reference, "")
			if resolveError != nil {
				return nil, resolveError
			}
			branch = resolution.Branch
		}
		if len(branch) == 0 {
			return nil, ErrBranchRequired
		}
		contents, fetchError := service.dependencies.RawFetcher.FetchRawFile(executionContext, parsedReference.BareName(), branch, options.FilePath)
		if fetchError != nil {
			return nil, OperationError{Operation: fetchFileOperationNameConstant, Transport: service.transport, Cause: fetchError}
		}
		return contents, nil
	}
}

// PushOptions configures PushInitialCommit.
type PushOptions struct {
	RepositoryPath string
	Owner          string
	Name           string
	Branch         string
	Message        string
}

// PushInitialCommit publishes the working tree at RepositoryPath as the first
// commit of the owner/name repository. The ssh transport pushes over the SSH
// remote; the other transports use the canonical https remote.
func (service *Service) PushInitialCommit(executionContext context.Context, options PushOptions) error {
	if service.dependencies.GitManager == nil {
		return ErrGitManagerNotConfigured
	}

	commitOptions := gitrepo.InitialCommitOptions{
		RepositoryPath: options.RepositoryPath,
		Owner:          options.Owner,
		Name:           options.Name,
		Branch:         options.Branch,
		Message:        options.Message,
	}
	if service.transport == TransportSSH {
		bareName := strings.TrimSpace(options.Owner) + "/" + reporef.SanitizeRepositoryName(options.Name)
		commitOptions.RemoteURL = reporef.ToSSHURL(bareName)
	}

	if pushError := service.dependencies.GitManager.PushInitialCommit(executionContext, commitOptions); pushError != nil {
		return OperationError{Operation: pushInitialCommitOperationNameConstant, Transport: service.transport, Cause: pushError}
	}
	return nil
}
