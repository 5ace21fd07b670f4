package gitclone

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant = "cloner logger not configured"
	requiredValueMessageConstant       = "value required"
	remoteURLFieldNameConstant         = "remote url"
	destinationFieldNameConstant       = "destination"
	invalidInputErrorTemplateConstant  = "%s: %s"
	cloneErrorTemplateConstant         = "cloning %s failed: %s"
	cloneStartedMessageConstant        = "Cloning repository"
	cloneCompletedMessageConstant      = "Cloned repository"
	remoteURLLogFieldNameConstant      = "remote_url"
	destinationLogFieldNameConstant    = "destination"
)

var (
	// ErrClonerLoggerNotConfigured indicates the cloner was constructed without a logger.
	ErrClonerLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for clone requests.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// CloneError indicates a clone operation failed.
type CloneError struct {
	RemoteURL string
	Cause     error
}

// Error describes the clone failure.
func (cloneError CloneError) Error() string {
	return fmt.Sprintf(cloneErrorTemplateConstant, cloneError.RemoteURL, cloneError.Cause)
}

// Unwrap exposes the underlying go-git error.
func (cloneError CloneError) Unwrap() error {
	return cloneError.Cause
}

// CloneRequest describes a repository clone.
type CloneRequest struct {
	RemoteURL   string
	Destination string
	Branch      string
	Depth       int
}

// Cloner clones repositories through go-git.
type Cloner struct {
	logger *zap.Logger
}

// NewCloner constructs a cloner around the provided logger.
func NewCloner(logger *zap.Logger) (*Cloner, error) {
	if logger == nil {
		return nil, ErrClonerLoggerNotConfigured
	}
	return &Cloner{logger: logger}, nil
}

// Clone materializes the remote repository at the destination path.
func (cloner *Cloner) Clone(executionContext context.Context, request CloneRequest) error {
	trimmedRemoteURL := strings.TrimSpace(request.RemoteURL)
	if len(trimmedRemoteURL) == 0 {
		return InvalidInputError{FieldName: remoteURLFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedDestination := strings.TrimSpace(request.Destination)
	if len(trimmedDestination) == 0 {
		return InvalidInputError{FieldName: destinationFieldNameConstant, Message: requiredValueMessageConstant}
	}

	cloneOptions := &gogit.CloneOptions{URL: trimmedRemoteURL}
	if request.Depth > 0 {
		cloneOptions.Depth = request.Depth
	}
	trimmedBranch := strings.TrimSpace(request.Branch)
	if len(trimmedBranch) > 0 {
		cloneOptions.ReferenceName = plumbing.NewBranchReferenceName(trimmedBranch)
		cloneOptions.SingleBranch = true
	}

	cloner.logger.Debug(cloneStartedMessageConstant,
		zap.String(remoteURLLogFieldNameConstant, trimmedRemoteURL),
		zap.String(destinationLogFieldNameConstant, trimmedDestination),
	)

	_, cloneError := gogit.PlainCloneContext(executionContext, trimmedDestination, false, cloneOptions)
	if cloneError != nil {
		return CloneError{RemoteURL: trimmedRemoteURL, Cause: cloneError}
	}

	cloner.logger.Debug(cloneCompletedMessageConstant,
		zap.String(remoteURLLogFieldNameConstant, trimmedRemoteURL),
		zap.String(destinationLogFieldNameConstant, trimmedDestination),
	)
	return nil
}
