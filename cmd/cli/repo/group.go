package repo

import "github.com/spf13/cobra"

const (
	groupUseConstant      = "repo"
	groupShortDescription = "Work with GitHub repositories over a configurable transport"
	groupLongDescription  = "repo groups subcommands that create, clone, fetch from, and publish GitHub repositories using the GitHub CLI, raw git over SSH, or the HTTPS REST API."
)

// CommandGroupBuilder assembles the repo command group.
type CommandGroupBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider func() bool
	Service                      RepositoryService
}

// Build constructs the repo command hierarchy.
func (builder *CommandGroupBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   groupUseConstant,
		Short: groupShortDescription,
		Long:  groupLongDescription,
	}

	createBuilder := CreateCommandBuilder{
		LoggerProvider:               builder.LoggerProvider,
		ConfigurationProvider:        builder.ConfigurationProvider,
		HumanReadableLoggingProvider: builder.HumanReadableLoggingProvider,
		Service:                      builder.Service,
	}
	createCommand, createError := createBuilder.Build()
	if createError == nil {
		command.AddCommand(createCommand)
	}

	cloneBuilder := CloneCommandBuilder{
		LoggerProvider:               builder.LoggerProvider,
		ConfigurationProvider:        builder.ConfigurationProvider,
		HumanReadableLoggingProvider: builder.HumanReadableLoggingProvider,
		Service:                      builder.Service,
	}
	cloneCommand, cloneError := cloneBuilder.Build()
	if cloneError == nil {
		command.AddCommand(cloneCommand)
	}

	fetchBuilder := FetchCommandBuilder{
		LoggerProvider:               builder.LoggerProvider,
		ConfigurationProvider:        builder.ConfigurationProvider,
		HumanReadableLoggingProvider: builder.HumanReadableLoggingProvider,
		Service:                      builder.Service,
	}
	fetchCommand, fetchError := fetchBuilder.Build()
	if fetchError == nil {
		command.AddCommand(fetchCommand)
	}

	pushBuilder := PushCommandBuilder{
		LoggerProvider:               builder.LoggerProvider,
		ConfigurationProvider:        builder.ConfigurationProvider,
		HumanReadableLoggingProvider: builder.HumanReadableLoggingProvider,
		Service:                      builder.Service,
	}
	pushCommand, pushError := pushBuilder.Build()
	if pushError == nil {
		command.AddCommand(pushCommand)
	}

	resolveBuilder := ResolveCommandBuilder{
		LoggerProvider:               builder.LoggerProvider,
		ConfigurationProvider:        builder.ConfigurationProvider,
		HumanReadableLoggingProvider: builder.HumanReadableLoggingProvider,
		Service:                      builder.Service,
	}
	resolveCommand, resolveError := resolveBuilder.Build()
	if resolveError == nil {
		command.AddCommand(resolveCommand)
	}

	return command, nil
}
