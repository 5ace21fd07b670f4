package gitclone_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/hubrepo/internal/gitclone"
)

const (
	testCommittedFileNameConstant     = "README.md"
	testCommittedFileContentsConstant = "# widget\n"
	testCommitAuthorNameConstant      = "Test Author"
	testCommitAuthorEmailConstant     = "author@example.com"
	testInitialCommitMessageConstant  = "initial"
)

func createSourceRepository(testInstance *testing.T) string {
	sourceDirectory := testInstance.TempDir()
	repository, initializationError := gogit.PlainInit(sourceDirectory, false)
	require.NoError(testInstance, initializationError)

	filePath := filepath.Join(sourceDirectory, testCommittedFileNameConstant)
	require.NoError(testInstance, os.WriteFile(filePath, []byte(testCommittedFileContentsConstant), 0o644))

	worktree, worktreeError := repository.Worktree()
	require.NoError(testInstance, worktreeError)
	_, addError := worktree.Add(testCommittedFileNameConstant)
	require.NoError(testInstance, addError)
	_, commitError := worktree.Commit(testInitialCommitMessageConstant, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  testCommitAuthorNameConstant,
			Email: testCommitAuthorEmailConstant,
			When:  time.Now(),
		},
	})
	require.NoError(testInstance, commitError)
	return sourceDirectory
}

func TestNewClonerValidation(testInstance *testing.T) {
	cloner, creationError := gitclone.NewCloner(nil)
	require.Error(testInstance, creationError)
	require.ErrorIs(testInstance, creationError, gitclone.ErrClonerLoggerNotConfigured)
	require.Nil(testInstance, cloner)
}

func TestCloneValidatesRequest(testInstance *testing.T) {
	cloner, creationError := gitclone.NewCloner(zap.NewNop())
	require.NoError(testInstance, creationError)

	testCases := []struct {
		name    string
		request gitclone.CloneRequest
	}{
		{
			name:    "missing_remote_url",
			request: gitclone.CloneRequest{Destination: "/tmp/clone-target"},
		},
		{
			name:    "missing_destination",
			request: gitclone.CloneRequest{RemoteURL: "https://github.com/acme/widget.git"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			cloneError := cloner.Clone(context.Background(), testCase.request)
			require.Error(testInstance, cloneError)
			require.IsType(testInstance, gitclone.InvalidInputError{}, cloneError)
		})
	}
}

func TestCloneMaterializesRepository(testInstance *testing.T) {
	sourceDirectory := createSourceRepository(testInstance)
	destinationDirectory := filepath.Join(testInstance.TempDir(), "clone")

	cloner, creationError := gitclone.NewCloner(zap.NewNop())
	require.NoError(testInstance, creationError)

	cloneError := cloner.Clone(context.Background(), gitclone.CloneRequest{
		RemoteURL:   sourceDirectory,
		Destination: destinationDirectory,
	})
	require.NoError(testInstance, cloneError)

	clonedContents, readError := os.ReadFile(filepath.Join(destinationDirectory, testCommittedFileNameConstant))
	require.NoError(testInstance, readError)
	require.Equal(testInstance, testCommittedFileContentsConstant, string(clonedContents))
}

func TestCloneReportsMissingRemote(testInstance *testing.T) {
	destinationDirectory := filepath.Join(testInstance.TempDir(), "clone")

	cloner, creationError := gitclone.NewCloner(zap.NewNop())
	require.NoError(testInstance, creationError)

	cloneError := cloner.Clone(context.Background(), gitclone.CloneRequest{
		RemoteURL:   filepath.Join(testInstance.TempDir(), "missing-repository"),
		Destination: destinationDirectory,
	})
	require.Error(testInstance, cloneError)
	require.IsType(testInstance, gitclone.CloneError{}, cloneError)
}
