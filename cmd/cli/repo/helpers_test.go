package repo

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/hubrepo/internal/repoaccess"
)

func TestResolveServiceReturnsInjectedOverride(testInstance *testing.T) {
	override := &stubRepositoryService{}

	service, releaseService, serviceError := resolveService(override, DefaultToolsConfiguration(), zap.NewNop(), false)
	require.NoError(testInstance, serviceError)
	require.Equal(testInstance, RepositoryService(override), service)
	require.NotNil(testInstance, releaseService)
	releaseService()
}

func TestResolveServiceBuildsSSHTransportWithTeardown(testInstance *testing.T) {
	configuration := ToolsConfiguration{Transport: "ssh", CloneDepth: 1, TimeoutSeconds: 60}

	service, releaseService, serviceError := resolveService(nil, configuration, zap.NewNop(), false)
	require.NoError(testInstance, serviceError)
	require.NotNil(testInstance, releaseService)

	transportService, isTransportService := service.(*repoaccess.Service)
	require.True(testInstance, isTransportService)
	require.Equal(testInstance, repoaccess.TransportSSH, transportService.Transport())

	releaseService()
}

func TestResolveServiceRejectsUnknownTransport(testInstance *testing.T) {
	configuration := ToolsConfiguration{Transport: "carrier-pigeon"}

	service, releaseService, serviceError := resolveService(nil, configuration, zap.NewNop(), false)
	require.Error(testInstance, serviceError)
	require.IsType(testInstance, repoaccess.UnsupportedTransportError{}, serviceError)
	require.Nil(testInstance, service)
	require.Nil(testInstance, releaseService)
}
