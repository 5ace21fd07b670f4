package repoaccess_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/hubrepo/internal/gitclone"
	"github.com/temirov/hubrepo/internal/githubapi"
	"github.com/temirov/hubrepo/internal/githubcli"
	"github.com/temirov/hubrepo/internal/gitrepo"
	"github.com/temirov/hubrepo/internal/repoaccess"
	"github.com/temirov/hubrepo/internal/reporef"
)

type stubCLIClient struct {
	metadata          githubcli.RepositoryMetadata
	metadataError     error
	createdName       string
	createError       error
	cloneError        error
	fetchContents     []byte
	fetchError        error
	recordedResolve   []string
	recordedCreate    []githubcli.RepositoryCreateOptions
	recordedClone     []githubcli.RepositoryCloneOptions
	recordedFetchRepo []string
}

func (client *stubCLIClient) ResolveRepoMetadata(_ context.Context, repository string) (githubcli.RepositoryMetadata, error) {
	client.recordedResolve = append(client.recordedResolve, repository)
	return client.metadata, client.metadataError
}

func (client *stubCLIClient) CreateRepository(_ context.Context, options githubcli.RepositoryCreateOptions) (string, error) {
	client.recordedCreate = append(client.recordedCreate, options)
	return client.createdName, client.createError
}

func (client *stubCLIClient) CloneRepository(_ context.Context, options githubcli.RepositoryCloneOptions) error {
	client.recordedClone = append(client.recordedClone, options)
	return client.cloneError
}

func (client *stubCLIClient) FetchFileContents(_ context.Context, repository string, _ string, _ string) ([]byte, error) {
	client.recordedFetchRepo = append(client.recordedFetchRepo, repository)
	return client.fetchContents, client.fetchError
}

type stubAPIClient struct {
	metadata       githubapi.RepositoryMetadata
	metadataError  error
	created        githubapi.RepositoryMetadata
	createError    error
	recordedOwner  string
	recordedName   string
	recordedCreate []githubapi.RepositoryCreateOptions
}

func (client *stubAPIClient) ResolveRepoMetadata(_ context.Context, owner string, name string) (githubapi.RepositoryMetadata, error) {
	client.recordedOwner = owner
	client.recordedName = name
	return client.metadata, client.metadataError
}

func (client *stubAPIClient) CreateRepository(_ context.Context, options githubapi.RepositoryCreateOptions) (githubapi.RepositoryMetadata, error) {
	client.recordedCreate = append(client.recordedCreate, options)
	return client.created, client.createError
}

type stubRawFetcher struct {
	contents       []byte
	fetchError     error
	recordedRepo   string
	recordedBranch string
	recordedPath   string
}

func (fetcher *stubRawFetcher) FetchRawFile(_ context.Context, repository string, branch string, filePath string) ([]byte, error) {
	fetcher.recordedRepo = repository
	fetcher.recordedBranch = branch
	fetcher.recordedPath = filePath
	return fetcher.contents, fetcher.fetchError
}

type stubGitManager struct {
	cloneError        error
	sparseContents    []byte
	sparseError       error
	pushError         error
	recordedCloneURL  string
	recordedCloneDest string
	recordedCloneOpts gitrepo.CloneOptions
	recordedSparseURL string
	recordedPush      []gitrepo.InitialCommitOptions
}

func (manager *stubGitManager) CloneRepository(_ context.Context, remoteURL string, destination string, options gitrepo.CloneOptions) error {
	manager.recordedCloneURL = remoteURL
	manager.recordedCloneDest = destination
	manager.recordedCloneOpts = options
	return manager.cloneError
}

func (manager *stubGitManager) FetchFileSparse(_ context.Context, remoteURL string, _ string, _ string, _ gitrepo.TemporaryDirectoryManager) ([]byte, error) {
	manager.recordedSparseURL = remoteURL
	return manager.sparseContents, manager.sparseError
}

func (manager *stubGitManager) PushInitialCommit(_ context.Context, options gitrepo.InitialCommitOptions) error {
	manager.recordedPush = append(manager.recordedPush, options)
	return manager.pushError
}

type stubCloner struct {
	cloneError      error
	recordedRequest gitclone.CloneRequest
}

func (cloner *stubCloner) Clone(_ context.Context, request gitclone.CloneRequest) error {
	cloner.recordedRequest = request
	return cloner.cloneError
}

type stubTempDirectories struct{}

func (stubTempDirectories) MakeDirectory(string) (string, error) { return "", nil }
func (stubTempDirectories) Cleanup(string)                       {}

func TestNewServiceRejectsUnknownTransport(testInstance *testing.T) {
	_, serviceError := repoaccess.NewService(repoaccess.Transport("ftp"), repoaccess.Dependencies{})
	require.Error(testInstance, serviceError)
	require.IsType(testInstance, repoaccess.UnsupportedTransportError{}, serviceError)
}

func TestServiceResolve(testInstance *testing.T) {
	testCases := []struct {
		name               string
		transport          repoaccess.Transport
		dependencies       repoaccess.Dependencies
		reference          string
		branchOverride     string
		expectedResolution repoaccess.Resolution
		expectedErrorType  error
	}{
		{
			name:      "cli_uses_gh_metadata",
			transport: repoaccess.TransportCLI,
			dependencies: repoaccess.Dependencies{
				CLIClient: &stubCLIClient{metadata: githubcli.RepositoryMetadata{NameWithOwner: "acme/widget", DefaultBranch: "main", Description: "Widget service"}},
			},
			reference: "https://github.com/acme/widget.git",
			expectedResolution: repoaccess.Resolution{
				Reference:     reporef.Reference{Owner: "acme", Name: "widget", Host: "github.com"},
				NameWithOwner: "acme/widget",
				Branch:        "main",
				Description:   "Widget service",
			},
		},
		{
			name:      "cli_branch_override_wins",
			transport: repoaccess.TransportCLI,
			dependencies: repoaccess.Dependencies{
				CLIClient: &stubCLIClient{metadata: githubcli.RepositoryMetadata{NameWithOwner: "acme/widget", DefaultBranch: "main"}},
			},
			reference:      "acme/widget",
			branchOverride: "release",
			expectedResolution: repoaccess.Resolution{
				Reference:     reporef.Reference{Owner: "acme", Name: "widget", Host: "github.com"},
				NameWithOwner: "acme/widget",
				Branch:        "release",
			},
		},
		{
			name:      "cli_falls_back_to_parsed_reference",
			transport: repoaccess.TransportCLI,
			dependencies: repoaccess.Dependencies{
				CLIClient: &stubCLIClient{metadataError: errors.New("gh unavailable")},
			},
			reference: "git@github.com:acme/widget.git",
			expectedResolution: repoaccess.Resolution{
				Reference:     reporef.Reference{Owner: "acme", Name: "widget", Host: "github.com"},
				NameWithOwner: "acme/widget",
			},
		},
		{
			name:      "https_uses_api_metadata",
			transport: repoaccess.TransportHTTPS,
			dependencies: repoaccess.Dependencies{
				APIClient: &stubAPIClient{metadata: githubapi.RepositoryMetadata{NameWithOwner: "acme/widget", DefaultBranch: "trunk"}},
			},
			reference: "acme/widget",
			expectedResolution: repoaccess.Resolution{
				Reference:     reporef.Reference{Owner: "acme", Name: "widget", Host: "github.com"},
				NameWithOwner: "acme/widget",
				Branch:        "trunk",
			},
		},
		{
			name:         "ssh_resolves_without_network",
			transport:    repoaccess.TransportSSH,
			dependencies: repoaccess.Dependencies{},
			reference:    "ssh://git@github.com/acme/widget.git",
			expectedResolution: repoaccess.Resolution{
				Reference:     reporef.Reference{Owner: "acme", Name: "widget", Host: "github.com"},
				NameWithOwner: "acme/widget",
			},
		},
		{
			name:      "https_metadata_failure_surfaces_operation_error",
			transport: repoaccess.TransportHTTPS,
			dependencies: repoaccess.Dependencies{
				APIClient: &stubAPIClient{metadataError: errors.New("api unavailable")},
			},
			reference:         "acme/widget",
			expectedErrorType: repoaccess.OperationError{},
		},
		{
			name:              "empty_reference_rejected",
			transport:         repoaccess.TransportSSH,
			dependencies:      repoaccess.Dependencies{},
			reference:         "   ",
			expectedErrorType: reporef.ErrEmptyReference,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			service, serviceError := repoaccess.NewService(testCase.transport, testCase.dependencies)
			require.NoError(subtestInstance, serviceError)

			resolution, resolveError := service.Resolve(context.Background(), testCase.reference, testCase.branchOverride)
			if testCase.expectedErrorType != nil {
				require.Error(subtestInstance, resolveError)
				if errors.Is(testCase.expectedErrorType, reporef.ErrEmptyReference) {
					require.ErrorIs(subtestInstance, resolveError, reporef.ErrEmptyReference)
				} else {
					require.IsType(subtestInstance, testCase.expectedErrorType, resolveError)
				}
				return
			}
			require.NoError(subtestInstance, resolveError)
			require.Equal(subtestInstance, testCase.expectedResolution, resolution)
		})
	}
}

func TestServiceCreateRepository(testInstance *testing.T) {
	testInstance.Run("cli_transport_uses_gh", func(subtestInstance *testing.T) {
		cliClient := &stubCLIClient{createdName: "acme/widget"}
		service, serviceError := repoaccess.NewService(repoaccess.TransportCLI, repoaccess.Dependencies{CLIClient: cliClient})
		require.NoError(subtestInstance, serviceError)

		nameWithOwner, createError := service.CreateRepository(context.Background(), repoaccess.CreateOptions{
			Owner:       "acme",
			Name:        "widget",
			Private:     true,
			Description: "Widget service",
			SourcePath:  "/tmp/widget",
		})
		require.NoError(subtestInstance, createError)
		require.Equal(subtestInstance, "acme/widget", nameWithOwner)
		require.Len(subtestInstance, cliClient.recordedCreate, 1)
		require.Equal(subtestInstance, githubcli.RepositoryCreateOptions{
			Owner:       "acme",
			Name:        "widget",
			Private:     true,
			Description: "Widget service",
			Source:      "/tmp/widget",
		}, cliClient.recordedCreate[0])
	})

	testInstance.Run("https_transport_uses_api", func(subtestInstance *testing.T) {
		apiClient := &stubAPIClient{created: githubapi.RepositoryMetadata{NameWithOwner: "acme/widget"}}
		service, serviceError := repoaccess.NewService(repoaccess.TransportHTTPS, repoaccess.Dependencies{APIClient: apiClient})
		require.NoError(subtestInstance, serviceError)

		nameWithOwner, createError := service.CreateRepository(context.Background(), repoaccess.CreateOptions{Owner: "acme", Name: "widget"})
		require.NoError(subtestInstance, createError)
		require.Equal(subtestInstance, "acme/widget", nameWithOwner)
		require.Len(subtestInstance, apiClient.recordedCreate, 1)
		require.Equal(subtestInstance, "acme", apiClient.recordedCreate[0].Organization)
	})

	testInstance.Run("source_path_unsupported_off_cli", func(subtestInstance *testing.T) {
		service, serviceError := repoaccess.NewService(repoaccess.TransportHTTPS, repoaccess.Dependencies{APIClient: &stubAPIClient{}})
		require.NoError(subtestInstance, serviceError)

		_, createError := service.CreateRepository(context.Background(), repoaccess.CreateOptions{Name: "widget", SourcePath: "/tmp/widget"})
		require.Error(subtestInstance, createError)
		require.IsType(subtestInstance, repoaccess.UnsupportedOperationError{}, createError)
	})

	testInstance.Run("missing_cli_client_reported", func(subtestInstance *testing.T) {
		service, serviceError := repoaccess.NewService(repoaccess.TransportCLI, repoaccess.Dependencies{})
		require.NoError(subtestInstance, serviceError)

		_, createError := service.CreateRepository(context.Background(), repoaccess.CreateOptions{Name: "widget"})
		require.ErrorIs(subtestInstance, createError, repoaccess.ErrCLIClientNotConfigured)
	})
}

func TestServiceClone(testInstance *testing.T) {
	testInstance.Run("cli_transport_clones_via_gh", func(subtestInstance *testing.T) {
		cliClient := &stubCLIClient{}
		service, serviceError := repoaccess.NewService(repoaccess.TransportCLI, repoaccess.Dependencies{CLIClient: cliClient})
		require.NoError(subtestInstance, serviceError)

		cloneError := service.Clone(context.Background(), repoaccess.CloneOptions{
			Reference:   "https://github.com/acme/widget.git",
			Destination: "/tmp/widget",
			Branch:      "main",
		})
		require.NoError(subtestInstance, cloneError)
		require.Len(subtestInstance, cliClient.recordedClone, 1)
		require.Equal(subtestInstance, "acme/widget", cliClient.recordedClone[0].Repository)
		require.Equal(subtestInstance, "/tmp/widget", cliClient.recordedClone[0].Destination)
	})

	testInstance.Run("cli_transport_forwards_requested_depth", func(subtestInstance *testing.T) {
		cliClient := &stubCLIClient{}
		service, serviceError := repoaccess.NewService(repoaccess.TransportCLI, repoaccess.Dependencies{CLIClient: cliClient})
		require.NoError(subtestInstance, serviceError)

		cloneError := service.Clone(context.Background(), repoaccess.CloneOptions{
			Reference:   "acme/widget",
			Destination: "/tmp/widget",
			Depth:       5,
		})
		require.NoError(subtestInstance, cloneError)
		require.Len(subtestInstance, cliClient.recordedClone, 1)
		require.Equal(subtestInstance, []string{"--depth=5"}, cliClient.recordedClone[0].CloneArguments)
	})

	testInstance.Run("cli_transport_leaves_depth_to_gh_default", func(subtestInstance *testing.T) {
		cliClient := &stubCLIClient{}
		service, serviceError := repoaccess.NewService(repoaccess.TransportCLI, repoaccess.Dependencies{CLIClient: cliClient})
		require.NoError(subtestInstance, serviceError)

		cloneError := service.Clone(context.Background(), repoaccess.CloneOptions{
			Reference:   "acme/widget",
			Destination: "/tmp/widget",
		})
		require.NoError(subtestInstance, cloneError)
		require.Len(subtestInstance, cliClient.recordedClone, 1)
		require.Empty(subtestInstance, cliClient.recordedClone[0].CloneArguments)
	})

	testInstance.Run("ssh_transport_clones_via_library", func(subtestInstance *testing.T) {
		cloner := &stubCloner{}
		service, serviceError := repoaccess.NewService(repoaccess.TransportSSH, repoaccess.Dependencies{Cloner: cloner})
		require.NoError(subtestInstance, serviceError)

		cloneError := service.Clone(context.Background(), repoaccess.CloneOptions{
			Reference:   "acme/widget",
			Destination: "/tmp/widget",
			Branch:      "main",
			Depth:       1,
		})
		require.NoError(subtestInstance, cloneError)
		require.Equal(subtestInstance, "git@github.com:acme/widget.git", cloner.recordedRequest.RemoteURL)
		require.Equal(subtestInstance, 1, cloner.recordedRequest.Depth)
	})

	testInstance.Run("https_transport_clones_via_git", func(subtestInstance *testing.T) {
		gitManager := &stubGitManager{}
		service, serviceError := repoaccess.NewService(repoaccess.TransportHTTPS, repoaccess.Dependencies{GitManager: gitManager})
		require.NoError(subtestInstance, serviceError)

		cloneError := service.Clone(context.Background(), repoaccess.CloneOptions{
			Reference:   "acme/widget",
			Destination: "/tmp/widget",
			Depth:       1,
		})
		require.NoError(subtestInstance, cloneError)
		require.Equal(subtestInstance, "https://github.com/acme/widget.git", gitManager.recordedCloneURL)
		require.Equal(subtestInstance, "/tmp/widget", gitManager.recordedCloneDest)
		require.Equal(subtestInstance, gitrepo.CloneOptions{Depth: 1}, gitManager.recordedCloneOpts)
	})

	testInstance.Run("clone_failure_wrapped", func(subtestInstance *testing.T) {
		cliClient := &stubCLIClient{cloneError: errors.New("network down")}
		service, serviceError := repoaccess.NewService(repoaccess.TransportCLI, repoaccess.Dependencies{CLIClient: cliClient})
		require.NoError(subtestInstance, serviceError)

		cloneError := service.Clone(context.Background(), repoaccess.CloneOptions{Reference: "acme/widget", Destination: "/tmp/widget"})
		require.Error(subtestInstance, cloneError)
		require.IsType(subtestInstance, repoaccess.OperationError{}, cloneError)
	})
}

func TestServiceFetchFile(testInstance *testing.T) {
	testInstance.Run("cli_transport_uses_contents_api", func(subtestInstance *testing.T) {
		cliClient := &stubCLIClient{fetchContents: []byte("contents")}
		service, serviceError := repoaccess.NewService(repoaccess.TransportCLI, repoaccess.Dependencies{CLIClient: cliClient})
		require.NoError(subtestInstance, serviceError)

		contents, fetchError := service.FetchFile(context.Background(), repoaccess.FetchOptions{
			Reference: "acme/widget",
			Branch:    "main",
			FilePath:  "configs/app.yaml",
		})
		require.NoError(subtestInstance, fetchError)
		require.Equal(subtestInstance, []byte("contents"), contents)
		require.Equal(subtestInstance, []string{"acme/widget"}, cliClient.recordedFetchRepo)
	})

	testInstance.Run("ssh_transport_requires_branch", func(subtestInstance *testing.T) {
		service, serviceError := repoaccess.NewService(repoaccess.TransportSSH, repoaccess.Dependencies{
			GitManager:      &stubGitManager{},
			TempDirectories: stubTempDirectories{},
		})
		require.NoError(subtestInstance, serviceError)

		_, fetchError := service.FetchFile(context.Background(), repoaccess.FetchOptions{Reference: "acme/widget", FilePath: "configs/app.yaml"})
		require.ErrorIs(subtestInstance, fetchError, repoaccess.ErrBranchRequired)
	})

	testInstance.Run("ssh_transport_sparse_checkout", func(subtestInstance *testing.T) {
		gitManager := &stubGitManager{sparseContents: []byte("contents")}
		service, serviceError := repoaccess.NewService(repoaccess.TransportSSH, repoaccess.Dependencies{
			GitManager:      gitManager,
			TempDirectories: stubTempDirectories{},
		})
		require.NoError(subtestInstance, serviceError)

		contents, fetchError := service.FetchFile(context.Background(), repoaccess.FetchOptions{
			Reference: "acme/widget",
			Branch:    "main",
			FilePath:  "configs/app.yaml",
		})
		require.NoError(subtestInstance, fetchError)
		require.Equal(subtestInstance, []byte("contents"), contents)
		require.Equal(subtestInstance, "git@github.com:acme/widget.git", gitManager.recordedSparseURL)
	})

	testInstance.Run("https_transport_defaults_branch_from_metadata", func(subtestInstance *testing.T) {
		rawFetcher := &stubRawFetcher{contents: []byte("contents")}
		apiClient := &stubAPIClient{metadata: githubapi.RepositoryMetadata{NameWithOwner: "acme/widget", DefaultBranch: "trunk"}}
		service, serviceError := repoaccess.NewService(repoaccess.TransportHTTPS, repoaccess.Dependencies{
			RawFetcher: rawFetcher,
			APIClient:  apiClient,
		})
		require.NoError(subtestInstance, serviceError)

		contents, fetchError := service.FetchFile(context.Background(), repoaccess.FetchOptions{Reference: "acme/widget", FilePath: "configs/app.yaml"})
		require.NoError(subtestInstance, fetchError)
		require.Equal(subtestInstance, []byte("contents"), contents)
		require.Equal(subtestInstance, "trunk", rawFetcher.recordedBranch)
		require.Equal(subtestInstance, "acme/widget", rawFetcher.recordedRepo)
		require.Equal(subtestInstance, "configs/app.yaml", rawFetcher.recordedPath)
	})

	testInstance.Run("https_transport_uses_explicit_branch", func(subtestInstance *testing.T) {
		rawFetcher := &stubRawFetcher{contents: []byte("contents")}
		service, serviceError := repoaccess.NewService(repoaccess.TransportHTTPS, repoaccess.Dependencies{RawFetcher: rawFetcher})
		require.NoError(subtestInstance, serviceError)

		_, fetchError := service.FetchFile(context.Background(), repoaccess.FetchOptions{
			Reference: "acme/widget",
			Branch:    "release",
			FilePath:  "configs/app.yaml",
		})
		require.NoError(subtestInstance, fetchError)
		require.Equal(subtestInstance, "release", rawFetcher.recordedBranch)
	})
}

func TestServicePushInitialCommit(testInstance *testing.T) {
	testInstance.Run("https_transport_uses_default_remote", func(subtestInstance *testing.T) {
		gitManager := &stubGitManager{}
		service, serviceError := repoaccess.NewService(repoaccess.TransportHTTPS, repoaccess.Dependencies{GitManager: gitManager})
		require.NoError(subtestInstance, serviceError)

		pushError := service.PushInitialCommit(context.Background(), repoaccess.PushOptions{
			RepositoryPath: "/tmp/widget",
			Owner:          "acme",
			Name:           "widget",
		})
		require.NoError(subtestInstance, pushError)
		require.Len(subtestInstance, gitManager.recordedPush, 1)
		require.Empty(subtestInstance, gitManager.recordedPush[0].RemoteURL)
		require.Equal(subtestInstance, "acme", gitManager.recordedPush[0].Owner)
	})

	testInstance.Run("ssh_transport_pushes_over_ssh_remote", func(subtestInstance *testing.T) {
		gitManager := &stubGitManager{}
		service, serviceError := repoaccess.NewService(repoaccess.TransportSSH, repoaccess.Dependencies{GitManager: gitManager})
		require.NoError(subtestInstance, serviceError)

		pushError := service.PushInitialCommit(context.Background(), repoaccess.PushOptions{
			RepositoryPath: "/tmp/widget",
			Owner:          "acme",
			Name:           "widget",
			Branch:         "main",
		})
		require.NoError(subtestInstance, pushError)
		require.Len(subtestInstance, gitManager.recordedPush, 1)
		require.Equal(subtestInstance, "git@github.com:acme/widget.git", gitManager.recordedPush[0].RemoteURL)
	})

	testInstance.Run("push_failure_wrapped", func(subtestInstance *testing.T) {
		gitManager := &stubGitManager{pushError: errors.New("push rejected")}
		service, serviceError := repoaccess.NewService(repoaccess.TransportCLI, repoaccess.Dependencies{GitManager: gitManager})
		require.NoError(subtestInstance, serviceError)

		pushError := service.PushInitialCommit(context.Background(), repoaccess.PushOptions{RepositoryPath: "/tmp/widget", Owner: "acme", Name: "widget"})
		require.Error(subtestInstance, pushError)
		require.IsType(subtestInstance, repoaccess.OperationError{}, pushError)
	})
}
