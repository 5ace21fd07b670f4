package repo

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	resolveUseConstant             = "resolve <reference>"
	resolveShortDescription        = "Resolve a repository reference into canonical form"
	resolveLongDescription         = "resolve normalizes a bare owner/name, HTTPS URL, or SSH URL into the canonical repository identity and prints its derived forms."
	resolveBranchFlagNameConstant  = "branch"
	resolveBranchFlagUsageConstant = "Branch override reported instead of the default branch."
	resolvedNameTemplateConstant   = "name:\t%s\n"
	resolvedHTTPSTemplateConstant  = "https:\t%s\n"
	resolvedSSHTemplateConstant    = "ssh:\t%s\n"
	resolvedBranchTemplateConstant = "branch:\t%s\n"
)

// ResolveCommandBuilder assembles the repo resolve command.
type ResolveCommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider func() bool
	Service                      RepositoryService

	branchFlagValue    string
	transportFlagValue string
}

// Build constructs the repo resolve command.
func (builder *ResolveCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   resolveUseConstant,
		Short: resolveShortDescription,
		Long:  resolveLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().StringVar(&builder.branchFlagValue, resolveBranchFlagNameConstant, "", resolveBranchFlagUsageConstant)
	registerTransportFlag(command, &builder.transportFlagValue)

	return command, nil
}

func (builder *ResolveCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := resolveConfiguration(builder.ConfigurationProvider)
	applyTransportOverride(command, &configuration, builder.transportFlagValue)

	branch := configuration.Branch
	if command.Flags().Changed(resolveBranchFlagNameConstant) {
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

	resolution, resolveError := service.Resolve(executionContext, arguments[0], branch)
	if resolveError != nil {
		return resolveError
	}

	output := command.OutOrStdout()
	fmt.Fprintf(output, resolvedNameTemplateConstant, resolution.NameWithOwner)
	fmt.Fprintf(output, resolvedHTTPSTemplateConstant, resolution.Reference.HTTPSURL())
	fmt.Fprintf(output, resolvedSSHTemplateConstant, resolution.Reference.SSHURL())
	if len(resolution.Branch) > 0 {
		fmt.Fprintf(output, resolvedBranchTemplateConstant, resolution.Branch)
	}
	return nil
}
