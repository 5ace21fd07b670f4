// Package tempdirs tracks temporary directories created for repository
// operations and removes them when callers finish.
package tempdirs

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

const (
	cleanupFailedMessageConstant    = "Failed to remove temporary directory"
	directoryCreatedMessageConstant = "Created temporary directory"
	directoryPathFieldNameConstant  = "path"
)

// Manager creates temporary directories and removes them on request. A zero
// value is not usable; construct instances with NewManager.
type Manager struct {
	logger       *zap.Logger
	mutex        sync.Mutex
	createdPaths map[string]struct{}
}

// NewManager constructs a Manager. A nil logger defaults to a no-op logger.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{logger: logger, createdPaths: map[string]struct{}{}}
}

// MakeDirectory creates a temporary directory with the provided prefix and
// tracks it for later cleanup.
func (manager *Manager) MakeDirectory(prefix string) (string, error) {
	directoryPath, creationError := os.MkdirTemp("", prefix)
	if creationError != nil {
		return "", creationError
	}

	manager.mutex.Lock()
	manager.createdPaths[directoryPath] = struct{}{}
	manager.mutex.Unlock()

	manager.logger.Debug(directoryCreatedMessageConstant, zap.String(directoryPathFieldNameConstant, directoryPath))
	return directoryPath, nil
}

// Cleanup removes the directory at the provided path and stops tracking it.
// Removal failures are logged rather than returned so cleanup never masks the
// error of the operation it follows.
func (manager *Manager) Cleanup(path string) {
	manager.mutex.Lock()
	delete(manager.createdPaths, path)
	manager.mutex.Unlock()

	if removalError := os.RemoveAll(path); removalError != nil {
		manager.logger.Warn(cleanupFailedMessageConstant, zap.String(directoryPathFieldNameConstant, path), zap.Error(removalError))
	}
}

// CleanupAll removes every directory still tracked by the manager.
func (manager *Manager) CleanupAll() {
	manager.mutex.Lock()
	remainingPaths := make([]string, 0, len(manager.createdPaths))
	for directoryPath := range manager.createdPaths {
		remainingPaths = append(remainingPaths, directoryPath)
	}
	manager.createdPaths = map[string]struct{}{}
	manager.mutex.Unlock()

	for _, directoryPath := range remainingPaths {
		if removalError := os.RemoveAll(directoryPath); removalError != nil {
			manager.logger.Warn(cleanupFailedMessageConstant, zap.String(directoryPathFieldNameConstant, directoryPath), zap.Error(removalError))
		}
	}
}
