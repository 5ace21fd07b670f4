package gitrepo

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/hubrepo/internal/execshell"
)

const (
	sparseCheckoutSubcommandConstant  = "sparse-checkout"
	sparseInitSubcommandConstant      = "init"
	sparseSetSubcommandConstant       = "set"
	checkoutSubcommandConstant        = "checkout"
	bloblessFilterFlagConstant        = "--filter=blob:none"
	noCheckoutFlagConstant            = "--no-checkout"
	shallowDepthFlagConstant          = "--depth=1"
	noConeFlagConstant                = "--no-cone"
	sparseTempDirectoryPrefixConstant = "git"
	sparseFilePathFieldNameConstant   = "file path"
	sparseRemoteURLFieldNameConstant  = "remote url"
)

// TemporaryDirectoryManager provisions and releases scratch directories for
// sparse checkouts.
type TemporaryDirectoryManager interface {
	MakeDirectory(prefix string) (string, error)
	Cleanup(path string)
}

// FetchFileSparse retrieves a single file from the remote through a shallow
// blobless sparse checkout. The scratch clone is released on every path.
func (manager *RepositoryManager) FetchFileSparse(executionContext context.Context, remoteURL string, branch string, filePath string, tempDirectories TemporaryDirectoryManager) ([]byte, error) {
	trimmedRemoteURL, urlValidationError := requireValue(remoteURL, sparseRemoteURLFieldNameConstant)
	if urlValidationError != nil {
		return nil, urlValidationError
	}
	cleanFilePath := strings.TrimLeft(strings.TrimSpace(filePath), pathSeparatorConstant)
	if len(cleanFilePath) == 0 {
		return nil, InvalidInputError{FieldName: sparseFilePathFieldNameConstant, Message: requiredValueMessageConstant}
	}

	checkoutDirectory, directoryError := tempDirectories.MakeDirectory(sparseTempDirectoryPrefixConstant)
	if directoryError != nil {
		return nil, GitOperationError{Operation: SparseFetchOperationName, Cause: directoryError}
	}
	defer tempDirectories.Cleanup(checkoutDirectory)

	cloneArguments := []string{
		cloneSubcommandConstant,
		bloblessFilterFlagConstant,
		noCheckoutFlagConstant,
		shallowDepthFlagConstant,
	}
	if len(strings.TrimSpace(branch)) > 0 {
		cloneArguments = append(cloneArguments, branchFlagConstant, branch)
	}
	cloneArguments = append(cloneArguments, trimmedRemoteURL, checkoutDirectory)

	if cloneError := manager.runOperation(executionContext, SparseFetchOperationName, execshell.CommandDetails{Arguments: cloneArguments}); cloneError != nil {
		return nil, cloneError
	}

	sparseSteps := [][]string{
		{sparseCheckoutSubcommandConstant, sparseInitSubcommandConstant, noConeFlagConstant},
		{sparseCheckoutSubcommandConstant, sparseSetSubcommandConstant, cleanFilePath},
		{checkoutSubcommandConstant},
	}
	for _, stepArguments := range sparseSteps {
		stepError := manager.runOperation(executionContext, SparseFetchOperationName, execshell.CommandDetails{
			Arguments:        stepArguments,
			WorkingDirectory: checkoutDirectory,
		})
		if stepError != nil {
			return nil, stepError
		}
	}

	fileContents, readError := os.ReadFile(filepath.Join(checkoutDirectory, filepath.FromSlash(cleanFilePath)))
	if readError != nil {
		return nil, GitOperationError{Operation: SparseFetchOperationName, Cause: readError}
	}
	return fileContents, nil
}
