package repo

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/hubrepo/internal/repoaccess"
)

const (
	pushUseConstant              = "push <directory>"
	pushShortDescription         = "Publish a directory as the initial commit of a repository"
	pushLongDescription          = "push initializes the directory as a git repository, commits its contents, and pushes the first commit to the owner/name remote."
	pushOwnerFlagNameConstant    = "owner"
	pushOwnerFlagUsageConstant   = "Owner of the target repository."
	pushNameFlagNameConstant     = "name"
	pushNameFlagUsageConstant    = "Target repository name; defaults to the directory basename."
	pushBranchFlagNameConstant   = "branch"
	pushBranchFlagUsageConstant  = "Branch name for the initial commit."
	pushMessageFlagNameConstant  = "message"
	pushMessageFlagUsageConstant = "Commit message for the initial commit."
	missingOwnerMessageConstant  = "repository owner required; specify --owner or configure a default"
)

// PushCommandBuilder assembles the repo push command.
type PushCommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider func() bool
	Service                      RepositoryService

	ownerFlagValue     string
	nameFlagValue      string
	branchFlagValue    string
	messageFlagValue   string
	transportFlagValue string
}

// Build constructs the repo push command.
func (builder *PushCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   pushUseConstant,
		Short: pushShortDescription,
		Long:  pushLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().StringVar(&builder.ownerFlagValue, pushOwnerFlagNameConstant, "", pushOwnerFlagUsageConstant)
	command.Flags().StringVar(&builder.nameFlagValue, pushNameFlagNameConstant, "", pushNameFlagUsageConstant)
	command.Flags().StringVar(&builder.branchFlagValue, pushBranchFlagNameConstant, "", pushBranchFlagUsageConstant)
	command.Flags().StringVar(&builder.messageFlagValue, pushMessageFlagNameConstant, "", pushMessageFlagUsageConstant)
	registerTransportFlag(command, &builder.transportFlagValue)

	return command, nil
}

func (builder *PushCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := resolveConfiguration(builder.ConfigurationProvider)
	applyTransportOverride(command, &configuration, builder.transportFlagValue)

	repositoryPath := destinationHomeDirectoryExpander.Expand(arguments[0])

	owner := configuration.Owner
	if command.Flags().Changed(pushOwnerFlagNameConstant) {
		owner = builder.ownerFlagValue
	}
	if len(strings.TrimSpace(owner)) == 0 {
		return errors.New(missingOwnerMessageConstant)
	}

	repositoryName := builder.nameFlagValue
	if len(strings.TrimSpace(repositoryName)) == 0 {
		repositoryName = filepath.Base(repositoryPath)
	}

	branch := configuration.Branch
	if command.Flags().Changed(pushBranchFlagNameConstant) {
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

	return service.PushInitialCommit(executionContext, repoaccess.PushOptions{
		RepositoryPath: repositoryPath,
		Owner:          owner,
		Name:           repositoryName,
		Branch:         branch,
		Message:        builder.messageFlagValue,
	})
}
