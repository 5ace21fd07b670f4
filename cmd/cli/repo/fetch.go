package repo

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/temirov/hubrepo/internal/repoaccess"
	"github.com/temirov/hubrepo/internal/utils"
)

const (
	fetchUseConstant             = "fetch <reference> <path>"
	fetchShortDescription        = "Fetch a single file from a GitHub repository"
	fetchLongDescription         = "fetch retrieves one file without cloning the full repository. The cli transport uses the contents API, https reads the raw content endpoint, and ssh performs a sparse checkout."
	fetchBranchFlagNameConstant  = "branch"
	fetchBranchFlagUsageConstant = "Branch to fetch from instead of the default branch."
	fetchOutputFlagNameConstant  = "output"
	fetchOutputFlagUsageConstant = "Write the file contents to this path instead of standard output."
	fetchedFilePermissions       = 0o644
)

// FetchCommandBuilder assembles the repo fetch command.
type FetchCommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider func() bool
	Service                      RepositoryService

	branchFlagValue    string
	outputFlagValue    string
	transportFlagValue string
}

// Build constructs the repo fetch command.
func (builder *FetchCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   fetchUseConstant,
		Short: fetchShortDescription,
		Long:  fetchLongDescription,
		Args:  cobra.ExactArgs(2),
		RunE:  builder.run,
	}

	command.Flags().StringVar(&builder.branchFlagValue, fetchBranchFlagNameConstant, "", fetchBranchFlagUsageConstant)
	command.Flags().StringVar(&builder.outputFlagValue, fetchOutputFlagNameConstant, "", fetchOutputFlagUsageConstant)
	registerTransportFlag(command, &builder.transportFlagValue)

	return command, nil
}

func (builder *FetchCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := resolveConfiguration(builder.ConfigurationProvider)
	applyTransportOverride(command, &configuration, builder.transportFlagValue)

	branch := configuration.Branch
	if command.Flags().Changed(fetchBranchFlagNameConstant) {
		branch = builder.branchFlagValue
	}

	logger := resolveLogger(builder.LoggerProvider)
	service, releaseService, serviceError := resolveService(builder.Service, configuration, logger, humanReadableLogging(builder.HumanReadableLoggingProvider))
	if serviceError != nil {
		return serviceError
	}
	defer releaseService()

	executionContext, cancelOperation := operationContext(command, configuration.TimeoutSeconds)
	defer cancelOperation()

	contents, fetchError := service.FetchFile(executionContext, repoaccess.FetchOptions{
		Reference: arguments[0],
		Branch:    branch,
		FilePath:  arguments[1],
	})
	if fetchError != nil {
		return fetchError
	}

	if len(builder.outputFlagValue) > 0 {
		outputPath := destinationHomeDirectoryExpander.Expand(builder.outputFlagValue)
		return os.WriteFile(outputPath, contents, fetchedFilePermissions)
	}

	_, writeError := utils.NewFlushingWriter(command.OutOrStdout()).Write(contents)
	return writeError
}
