package repo

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/hubrepo/internal/repoaccess"
	flagutils "github.com/temirov/hubrepo/internal/utils/flags"
)

const (
	createUseConstant                 = "create <name>"
	createShortDescription            = "Create a GitHub repository"
	createLongDescription             = "create provisions a new GitHub repository and prints its canonical owner/name."
	createOwnerFlagNameConstant       = "owner"
	createOwnerFlagUsageConstant      = "Owner (user or organization) the repository is created under."
	createPrivateFlagNameConstant     = "private"
	createPrivateFlagUsageConstant    = "Create the repository as private."
	createDescriptionFlagNameConstant = "description"
	createDescriptionFlagUsage        = "Repository description."
	createSourceFlagNameConstant      = "source"
	createSourceFlagUsageConstant     = "Existing directory pushed during creation (cli transport only)."
	transportFlagNameConstant         = "transport"
	transportFlagDescriptionConstant  = "Transport used for GitHub operations."
	missingRepositoryNameMessage      = "repository name argument required"
)

// CreateCommandBuilder assembles the repo create command.
type CreateCommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider func() bool
	Service                      RepositoryService

	ownerFlagValue       string
	privateFlagValue     bool
	descriptionFlagValue string
	sourceFlagValue      string
	transportFlagValue   string
}

// Build constructs the repo create command.
func (builder *CreateCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   createUseConstant,
		Short: createShortDescription,
		Long:  createLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().StringVar(&builder.ownerFlagValue, createOwnerFlagNameConstant, "", createOwnerFlagUsageConstant)
	command.Flags().BoolVar(&builder.privateFlagValue, createPrivateFlagNameConstant, false, createPrivateFlagUsageConstant)
	command.Flags().StringVar(&builder.descriptionFlagValue, createDescriptionFlagNameConstant, "", createDescriptionFlagUsage)
	command.Flags().StringVar(&builder.sourceFlagValue, createSourceFlagNameConstant, "", createSourceFlagUsageConstant)
	registerTransportFlag(command, &builder.transportFlagValue)

	return command, nil
}

func (builder *CreateCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) == 0 {
		return errors.New(missingRepositoryNameMessage)
	}

	configuration := resolveConfiguration(builder.ConfigurationProvider)
	applyTransportOverride(command, &configuration, builder.transportFlagValue)

	owner := configuration.Owner
	if command.Flags().Changed(createOwnerFlagNameConstant) {
		owner = builder.ownerFlagValue
	}
	private := configuration.Private
	if command.Flags().Changed(createPrivateFlagNameConstant) {
		private = builder.privateFlagValue
	}
	description := configuration.Description
	if command.Flags().Changed(createDescriptionFlagNameConstant) {
		description = builder.descriptionFlagValue
	}

	logger := resolveLogger(builder.LoggerProvider)
	service, releaseService, serviceError := resolveService(builder.Service, configuration, logger, humanReadableLogging(builder.HumanReadableLoggingProvider))
	if serviceError != nil {
		return serviceError
	}
	defer releaseService()

	executionContext, cancelOperation := operationContext(command, configuration.TimeoutSeconds)
	defer cancelOperation()

	nameWithOwner, createError := service.CreateRepository(executionContext, repoaccess.CreateOptions{
		Owner:       owner,
		Name:        arguments[0],
		Private:     private,
		Description: description,
		SourcePath:  destinationHomeDirectoryExpander.Expand(builder.sourceFlagValue),
	})
	if createError != nil {
		return createError
	}

	_, writeError := fmt.Fprintln(command.OutOrStdout(), nameWithOwner)
	return writeError
}

func registerTransportFlag(command *cobra.Command, target *string) {
	usage := flagutils.FormatChoiceUsage(defaultTransportConstant, repoaccess.SupportedTransports(), transportFlagDescriptionConstant)
	command.Flags().StringVar(target, transportFlagNameConstant, "", usage)
}

func applyTransportOverride(command *cobra.Command, configuration *ToolsConfiguration, flagValue string) {
	if command != nil && command.Flags().Changed(transportFlagNameConstant) {
		configuration.Transport = flagValue
	}
}

func humanReadableLogging(provider func() bool) bool {
	if provider == nil {
		return false
	}
	return provider()
}
