package repo

import (
	"github.com/spf13/cobra"

	"github.com/temirov/hubrepo/internal/repoaccess"
	"github.com/temirov/hubrepo/internal/reporef"
)

const (
	cloneUseConstant             = "clone <reference> [destination]"
	cloneShortDescription        = "Clone a GitHub repository"
	cloneLongDescription         = "clone retrieves a repository over the configured transport. The reference may be a bare owner/name, an HTTPS URL, or an SSH URL."
	cloneBranchFlagNameConstant  = "branch"
	cloneBranchFlagUsageConstant = "Branch to clone instead of the default branch."
	cloneDepthFlagNameConstant   = "depth"
	cloneDepthFlagUsageConstant  = "History depth for shallow clones."
)

// CloneCommandBuilder assembles the repo clone command.
type CloneCommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider func() bool
	Service                      RepositoryService

	branchFlagValue    string
	depthFlagValue     int
	transportFlagValue string
}

// Build constructs the repo clone command.
func (builder *CloneCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   cloneUseConstant,
		Short: cloneShortDescription,
		Long:  cloneLongDescription,
		Args:  cobra.RangeArgs(1, 2),
		RunE:  builder.run,
	}

	command.Flags().StringVar(&builder.branchFlagValue, cloneBranchFlagNameConstant, "", cloneBranchFlagUsageConstant)
	command.Flags().IntVar(&builder.depthFlagValue, cloneDepthFlagNameConstant, 0, cloneDepthFlagUsageConstant)
	registerTransportFlag(command, &builder.transportFlagValue)

	return command, nil
}

func (builder *CloneCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := resolveConfiguration(builder.ConfigurationProvider)
	applyTransportOverride(command, &configuration, builder.transportFlagValue)

	branch := configuration.Branch
	if command.Flags().Changed(cloneBranchFlagNameConstant) {
		branch = builder.branchFlagValue
	}
	depth := configuration.CloneDepth
	if command.Flags().Changed(cloneDepthFlagNameConstant) {
		depth = builder.depthFlagValue
	}

	destination := ""
	if len(arguments) > 1 {
		destination = destinationHomeDirectoryExpander.Expand(arguments[1])
	} else {
		parsedReference, parseError := reporef.Resolve(arguments[0])
		if parseError != nil {
			return parseError
		}
		destination = parsedReference.Name
	}

	logger := resolveLogger(builder.LoggerProvider)
	service, releaseService, serviceError := resolveService(builder.Service, configuration, logger, humanReadableLogging(builder.HumanReadableLoggingProvider))
	if serviceError != nil {
		return serviceError
	}
	defer releaseService()

	executionContext, cancelOperation := operationContext(command, configuration.TimeoutSeconds)
	defer cancelOperation()

	return service.Clone(executionContext, repoaccess.CloneOptions{
		Reference:   arguments[0],
		Destination: destination,
		Branch:      branch,
		Depth:       depth,
	})
}
