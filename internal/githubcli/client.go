package githubcli

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/hubrepo/internal/execshell"
	"github.com/temirov/hubrepo/internal/reporef"
)

const (
	repoSubcommandConstant                  = "repo"
	viewSubcommandConstant                  = "view"
	createSubcommandConstant                = "create"
	cloneSubcommandConstant                 = "clone"
	apiSubcommandConstant                   = "api"
	jsonFlagConstant                        = "--json"
	jqFlagConstant                          = "--jq"
	paginateFlagConstant                    = "--paginate"
	publicFlagConstant                      = "--public"
	privateFlagConstant                     = "--private"
	confirmFlagConstant                     = "--confirm"
	sourceFlagConstant                      = "--source"
	descriptionFlagConstant                 = "--description"
	cloneArgumentsSeparatorConstant         = "--"
	branchFlagConstant                      = "--branch"
	defaultCloneDepthArgumentConstant       = "--depth=1"
	repositoryFieldNameConstant             = "repository"
	ownerFieldNameConstant                  = "owner"
	repositoryNameFieldNameConstant         = "name"
	destinationFieldNameConstant            = "destination"
	filePathFieldNameConstant               = "path"
	requiredValueMessageConstant            = "value required"
	executorNotConfiguredMessageConstant    = "github cli executor not configured"
	emptyLoginMessageConstant               = "github cli returned no authenticated user login"
	repoViewJSONFieldsConstant              = "nameWithOwner,defaultBranchRef,description"
	loginJQExpressionConstant               = ".login"
	organizationsJQExpressionConstant       = ".[]"
	userEndpointConstant                    = "user"
	organizationsEndpointConstant           = "user/orgs"
	contentsEndpointTemplateConstant        = "repos/%s/contents/%s"
	contentsReferenceSuffixTemplateConstant = "%s?ref=%s"
	base64ContentEncodingNameConstant       = "base64"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant   = "%s response decoding failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	repositoryMetadataOperationNameConstant = OperationName("ResolveRepoMetadata")
	createRepositoryOperationNameConstant   = OperationName("CreateRepository")
	cloneRepositoryOperationNameConstant    = OperationName("CloneRepository")
	fetchFileContentsOperationNameConstant  = OperationName("FetchFileContents")
	authenticatedLoginOperationNameConstant = OperationName("AuthenticatedUserLogin")
	listOrganizationsOperationNameConstant  = OperationName("ListOrganizations")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// RepositoryMetadata contains key details resolved from GitHub.
type RepositoryMetadata struct {
	NameWithOwner string
	Description   string
	DefaultBranch string
}

// RepositoryCreateOptions configures CreateRepository invocations.
type RepositoryCreateOptions struct {
	Owner       string
	Name        string
	Private     bool
	Description string
	Source      string
}

// RepositoryCloneOptions configures CloneRepository invocations.
type RepositoryCloneOptions struct {
	Repository     string
	Destination    string
	Branch         string
	CloneArguments []string
}

// Organization identifies a GitHub organization the authenticated user belongs to.
type Organization struct {
	Login string `json:"login"`
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
	// ErrEmptyAuthenticatedLogin indicates gh returned no login for the authenticated user.
	ErrEmptyAuthenticatedLogin = errors.New(emptyLoginMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates payload decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying decoding error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// ResolveRepoMetadata retrieves canonical metadata for a repository using gh repo view.
func (client *Client) ResolveRepoMetadata(executionContext context.Context, repository string) (RepositoryMetadata, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return RepositoryMetadata{}, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			viewSubcommandConstant,
			repositoryIdentifier,
			jsonFlagConstant,
			repoViewJSONFieldsConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return RepositoryMetadata{}, OperationError{Operation: repositoryMetadataOperationNameConstant, Cause: executionError}
	}

	var response struct {
		NameWithOwner    string `json:"nameWithOwner"`
		Description      string `json:"description"`
		DefaultBranchRef struct {
			Name string `json:"name"`
		} `json:"defaultBranchRef"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return RepositoryMetadata{}, ResponseDecodingError{Operation: repositoryMetadataOperationNameConstant, Cause: decodingError}
	}

	return RepositoryMetadata{
		NameWithOwner: response.NameWithOwner,
		Description:   response.Description,
		DefaultBranch: response.DefaultBranchRef.Name,
	}, nil
}

// CreateRepository creates a repository using gh repo create and returns its name with owner.
func (client *Client) CreateRepository(executionContext context.Context, options RepositoryCreateOptions) (string, error) {
	ownerIdentifier := strings.TrimSpace(options.Owner)
	if len(ownerIdentifier) == 0 {
		return "", InvalidInputError{FieldName: ownerFieldNameConstant, Message: requiredValueMessageConstant}
	}

	sanitizedName := reporef.SanitizeRepositoryName(options.Name)
	if len(sanitizedName) == 0 {
		return "", InvalidInputError{FieldName: repositoryNameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	nameWithOwner := fmt.Sprintf("%s/%s", ownerIdentifier, sanitizedName)

	visibilityFlag := publicFlagConstant
	if options.Private {
		visibilityFlag = privateFlagConstant
	}

	arguments := []string{
		repoSubcommandConstant,
		createSubcommandConstant,
		nameWithOwner,
		visibilityFlag,
		confirmFlagConstant,
	}
	if len(strings.TrimSpace(options.Source)) > 0 {
		arguments = append(arguments, sourceFlagConstant, options.Source)
	}
	if len(strings.TrimSpace(options.Description)) > 0 {
		arguments = append(arguments, descriptionFlagConstant, options.Description)
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, execshell.CommandDetails{Arguments: arguments})
	if executionError != nil {
		return "", OperationError{Operation: createRepositoryOperationNameConstant, Cause: executionError}
	}

	return nameWithOwner, nil
}

// CloneRepository clones a repository using gh repo clone. Extra clone arguments
// are forwarded to git behind the "--" separator; a shallow depth is applied
// when the caller supplies none.
func (client *Client) CloneRepository(executionContext context.Context, options RepositoryCloneOptions) error {
	repositoryIdentifier := strings.TrimSpace(options.Repository)
	if len(repositoryIdentifier) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	destinationPath := strings.TrimSpace(options.Destination)
	if len(destinationPath) == 0 {
		return InvalidInputError{FieldName: destinationFieldNameConstant, Message: requiredValueMessageConstant}
	}

	cloneArguments := options.CloneArguments
	if len(cloneArguments) == 0 {
		cloneArguments = []string{defaultCloneDepthArgumentConstant}
	}
	if len(strings.TrimSpace(options.Branch)) > 0 {
		cloneArguments = append(cloneArguments, branchFlagConstant, options.Branch)
	}

	arguments := []string{
		repoSubcommandConstant,
		cloneSubcommandConstant,
		repositoryIdentifier,
		destinationPath,
		cloneArgumentsSeparatorConstant,
	}
	arguments = append(arguments, cloneArguments...)

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, execshell.CommandDetails{Arguments: arguments})
	if executionError != nil {
		return OperationError{Operation: cloneRepositoryOperationNameConstant, Cause: executionError}
	}

	return nil
}

// FetchFileContents retrieves a single file through the contents API. Base64
// payloads are decoded; payloads that are not JSON pass through unchanged so
// raw endpoint responses remain usable.
func (client *Client) FetchFileContents(executionContext context.Context, repository string, branch string, filePath string) ([]byte, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return nil, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	cleanPath := strings.TrimLeft(strings.TrimSpace(filePath), "/")
	if len(cleanPath) == 0 {
		return nil, InvalidInputError{FieldName: filePathFieldNameConstant, Message: requiredValueMessageConstant}
	}

	endpoint := fmt.Sprintf(contentsEndpointTemplateConstant, repositoryIdentifier, cleanPath)
	if len(strings.TrimSpace(branch)) > 0 {
		endpoint = fmt.Sprintf(contentsReferenceSuffixTemplateConstant, endpoint, branch)
	}

	commandDetails := execshell.CommandDetails{Arguments: []string{apiSubcommandConstant, endpoint}}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, OperationError{Operation: fetchFileContentsOperationNameConstant, Cause: executionError}
	}

	rawOutput := []byte(executionResult.StandardOutput)
	if len(rawOutput) == 0 {
		return []byte{}, nil
	}

	var payload struct {
		Content  *string `json:"content"`
		Encoding string  `json:"encoding"`
	}
	if json.Unmarshal(rawOutput, &payload) != nil {
		return rawOutput, nil
	}

	if payload.Content == nil {
		return rawOutput, nil
	}

	normalizedContent := strings.TrimSpace(*payload.Content)
	if payload.Encoding != base64ContentEncodingNameConstant {
		return []byte(normalizedContent), nil
	}

	decodedContent, decodingError := base64.StdEncoding.DecodeString(normalizedContent)
	if decodingError != nil {
		return nil, ResponseDecodingError{Operation: fetchFileContentsOperationNameConstant, Cause: decodingError}
	}
	return decodedContent, nil
}

// AuthenticatedUserLogin resolves the login of the authenticated user.
func (client *Client) AuthenticatedUserLogin(executionContext context.Context) (string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{apiSubcommandConstant, userEndpointConstant, jqFlagConstant, loginJQExpressionConstant},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return "", OperationError{Operation: authenticatedLoginOperationNameConstant, Cause: executionError}
	}

	login := strings.TrimSpace(executionResult.StandardOutput)
	if len(login) == 0 {
		return "", OperationError{Operation: authenticatedLoginOperationNameConstant, Cause: ErrEmptyAuthenticatedLogin}
	}
	return login, nil
}

// ListOrganizations enumerates the authenticated user's organizations as
// line-delimited JSON objects produced by the paginated gh api call.
func (client *Client) ListOrganizations(executionContext context.Context) ([]Organization, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			organizationsEndpointConstant,
			paginateFlagConstant,
			jqFlagConstant,
			organizationsJQExpressionConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, OperationError{Operation: listOrganizationsOperationNameConstant, Cause: executionError}
	}

	payload := strings.TrimSpace(executionResult.StandardOutput)
	if len(payload) == 0 {
		return []Organization{}, nil
	}

	organizations := make([]Organization, 0)
	for _, payloadLine := range strings.Split(payload, "\n") {
		trimmedLine := strings.TrimSpace(payloadLine)
		if len(trimmedLine) == 0 {
			continue
		}
		var organization Organization
		decodingError := json.Unmarshal([]byte(trimmedLine), &organization)
		if decodingError != nil {
			return nil, ResponseDecodingError{Operation: listOrganizationsOperationNameConstant, Cause: decodingError}
		}
		organizations = append(organizations, organization)
	}

	return organizations, nil
}
