package githubapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/temirov/hubrepo/internal/reporef"
)

const (
	ownerFieldNameConstant                = "owner"
	repositoryNameFieldNameConstant       = "name"
	requiredValueMessageConstant          = "value required"
	invalidInputErrorTemplateConstant     = "%s: %s"
	operationErrorTemplateConstant        = "%s operation failed: %s"
	baseURLTrailingSlashConstant          = "/"
	resolveMetadataOperationNameConstant  = APIOperationName("ResolveRepoMetadata")
	createRepositoryOperationNameConstant = APIOperationName("CreateRepository")
)

// APIOperationName identifies a named REST API workflow supported by the client.
type APIOperationName string

// InvalidInputError surfaces validation issues for API operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// APIOperationError wraps REST API failures.
type APIOperationError struct {
	Operation APIOperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError APIOperationError) Error() string {
	return fmt.Sprintf(operationErrorTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError APIOperationError) Unwrap() error {
	return operationError.Cause
}

// RepositoryMetadata contains key details resolved from the REST API.
type RepositoryMetadata struct {
	NameWithOwner string
	Description   string
	DefaultBranch string
}

// RepositoryCreateOptions configures CreateRepository invocations. An empty
// Organization creates the repository under the authenticated user.
type RepositoryCreateOptions struct {
	Organization string
	Name         string
	Private      bool
	Description  string
}

// ClientConfiguration supplies construction inputs for the REST client.
// TokenSource takes precedence over Token when both are present.
type ClientConfiguration struct {
	Token       string
	TokenSource oauth2.TokenSource
	HTTPClient  *http.Client
	APIBaseURL  string
}

// Client wraps the go-github REST client.
type Client struct {
	apiClient *github.Client
}

// NewClient constructs a REST client. A token source or token builds an
// oauth2-backed HTTP client unless the caller supplies one; APIBaseURL
// overrides the endpoint for tests and GitHub Enterprise deployments.
func NewClient(configuration ClientConfiguration) (*Client, error) {
	tokenSource := configuration.TokenSource
	if tokenSource == nil && len(strings.TrimSpace(configuration.Token)) > 0 {
		tokenSource = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: configuration.Token})
	}

	httpClient := configuration.HTTPClient
	if httpClient == nil && tokenSource != nil {
		httpClient = oauth2.NewClient(context.Background(), tokenSource)
	}

	apiClient := github.NewClient(httpClient)
	trimmedBaseURL := strings.TrimSpace(configuration.APIBaseURL)
	if len(trimmedBaseURL) > 0 {
		if !strings.HasSuffix(trimmedBaseURL, baseURLTrailingSlashConstant) {
			trimmedBaseURL += baseURLTrailingSlashConstant
		}
		parsedBaseURL, parseError := url.Parse(trimmedBaseURL)
		if parseError != nil {
			return nil, parseError
		}
		apiClient.BaseURL = parsedBaseURL
	}

	return &Client{apiClient: apiClient}, nil
}

// ResolveRepoMetadata retrieves canonical metadata for a repository.
func (client *Client) ResolveRepoMetadata(executionContext context.Context, owner string, name string) (RepositoryMetadata, error) {
	trimmedOwner := strings.TrimSpace(owner)
	if len(trimmedOwner) == 0 {
		return RepositoryMetadata{}, InvalidInputError{FieldName: ownerFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedName := reporef.StripGitSuffix(strings.TrimSpace(name))
	if len(trimmedName) == 0 {
		return RepositoryMetadata{}, InvalidInputError{FieldName: repositoryNameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	repository, _, requestError := client.apiClient.Repositories.Get(executionContext, trimmedOwner, trimmedName)
	if requestError != nil {
		return RepositoryMetadata{}, APIOperationError{Operation: resolveMetadataOperationNameConstant, Cause: requestError}
	}

	return RepositoryMetadata{
		NameWithOwner: repository.GetFullName(),
		Description:   repository.GetDescription(),
		DefaultBranch: repository.GetDefaultBranch(),
	}, nil
}

// CreateRepository creates a repository under the organization or the
// authenticated user and returns its resolved metadata.
func (client *Client) CreateRepository(executionContext context.Context, options RepositoryCreateOptions) (RepositoryMetadata, error) {
	sanitizedName := reporef.SanitizeRepositoryName(options.Name)
	if len(sanitizedName) == 0 {
		return RepositoryMetadata{}, InvalidInputError{FieldName: repositoryNameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	repositoryRequest := &github.Repository{
		Name:    github.String(sanitizedName),
		Private: github.Bool(options.Private),
	}
	if len(strings.TrimSpace(options.Description)) > 0 {
		repositoryRequest.Description = github.String(options.Description)
	}

	createdRepository, _, requestError := client.apiClient.Repositories.Create(executionContext, strings.TrimSpace(options.Organization), repositoryRequest)
	if requestError != nil {
		return RepositoryMetadata{}, APIOperationError{Operation: createRepositoryOperationNameConstant, Cause: requestError}
	}

	return RepositoryMetadata{
		NameWithOwner: createdRepository.GetFullName(),
		Description:   createdRepository.GetDescription(),
		DefaultBranch: createdRepository.GetDefaultBranch(),
	}, nil
}
