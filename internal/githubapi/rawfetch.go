package githubapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultRawContentBaseURLConstant      = "https://raw.githubusercontent.com"
	defaultRawFetchTimeoutConstant        = 15 * time.Second
	authorizationHeaderNameConstant       = "Authorization"
	bearerTokenTemplateConstant           = "Bearer %s"
	rawFileURLTemplateConstant            = "%s/%s/%s/%s"
	repositoryFieldNameConstant           = "repository"
	branchFieldNameConstant               = "branch"
	rawFilePathFieldNameConstant          = "path"
	unexpectedStatusErrorTemplateConstant = "fetching %s returned status %d"
)

// UnexpectedStatusError indicates the raw endpoint answered with a status the
// fetcher does not handle.
type UnexpectedStatusError struct {
	RequestURL string
	StatusCode int
}

// Error describes the unexpected response.
func (statusError UnexpectedStatusError) Error() string {
	return fmt.Sprintf(unexpectedStatusErrorTemplateConstant, statusError.RequestURL, statusError.StatusCode)
}

// RawFileFetcherConfiguration supplies construction inputs for the fetcher.
type RawFileFetcherConfiguration struct {
	Token      string
	HTTPClient *http.Client
	BaseURL    string
}

// RawFileFetcher retrieves single files from the raw content endpoint.
type RawFileFetcher struct {
	token      string
	httpClient *http.Client
	baseURL    string
}

// NewRawFileFetcher constructs a raw content fetcher. A default client with a
// fifteen second timeout is used when the caller supplies none.
func NewRawFileFetcher(configuration RawFileFetcherConfiguration) *RawFileFetcher {
	httpClient := configuration.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRawFetchTimeoutConstant}
	}
	baseURL := strings.TrimSuffix(strings.TrimSpace(configuration.BaseURL), "/")
	if len(baseURL) == 0 {
		baseURL = defaultRawContentBaseURLConstant
	}
	return &RawFileFetcher{token: configuration.Token, httpClient: httpClient, baseURL: baseURL}
}

// FetchRawFile retrieves a single file for the owner/name repository. A
// missing file yields nil contents without an error, matching the permissive
// behavior callers rely on when probing optional files.
func (fetcher *RawFileFetcher) FetchRawFile(executionContext context.Context, repository string, branch string, filePath string) ([]byte, error) {
	trimmedRepository := strings.TrimSpace(repository)
	if len(trimmedRepository) == 0 {
		return nil, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedBranch := strings.TrimSpace(branch)
	if len(trimmedBranch) == 0 {
		return nil, InvalidInputError{FieldName: branchFieldNameConstant, Message: requiredValueMessageConstant}
	}
	cleanFilePath := strings.TrimLeft(strings.TrimSpace(filePath), "/")
	if len(cleanFilePath) == 0 {
		return nil, InvalidInputError{FieldName: rawFilePathFieldNameConstant, Message: requiredValueMessageConstant}
	}

	requestURL := fmt.Sprintf(rawFileURLTemplateConstant, fetcher.baseURL, trimmedRepository, trimmedBranch, cleanFilePath)
	request, requestError := http.NewRequestWithContext(executionContext, http.MethodGet, requestURL, nil)
	if requestError != nil {
		return nil, requestError
	}
	if len(strings.TrimSpace(fetcher.token)) > 0 {
		request.Header.Set(authorizationHeaderNameConstant, fmt.Sprintf(bearerTokenTemplateConstant, fetcher.token))
	}

	response, responseError := fetcher.httpClient.Do(request)
	if responseError != nil {
		return nil, responseError
	}
	defer func() {
		_ = response.Body.Close()
	}()

	switch response.StatusCode {
	case http.StatusOK:
		return io.ReadAll(response.Body)
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, UnexpectedStatusError{RequestURL: requestURL, StatusCode: response.StatusCode}
	}
}
