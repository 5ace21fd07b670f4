package repo

import "strings"

const (
	configurationTransportKeyConstant   = "transport"
	configurationOwnerKeyConstant       = "owner"
	configurationBranchKeyConstant      = "branch"
	configurationCloneDepthKeyConstant  = "clone_depth"
	configurationPrivateKeyConstant     = "private"
	configurationDescriptionKeyConstant = "description"
	configurationTimeoutKeyConstant     = "timeout_seconds"
	defaultTransportConstant            = "cli"
	defaultCloneDepthConstant           = 1
	defaultTimeoutSecondsConstant       = 60
)

// ToolsConfiguration captures repository command configuration values.
type ToolsConfiguration struct {
	Transport      string `mapstructure:"transport"`
	Owner          string `mapstructure:"owner"`
	Branch         string `mapstructure:"branch"`
	CloneDepth     int    `mapstructure:"clone_depth"`
	Private        bool   `mapstructure:"private"`
	Description    string `mapstructure:"description"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// DefaultToolsConfiguration returns baseline configuration values for repository commands.
func DefaultToolsConfiguration() ToolsConfiguration {
	return ToolsConfiguration{
		Transport:      defaultTransportConstant,
		CloneDepth:     defaultCloneDepthConstant,
		TimeoutSeconds: defaultTimeoutSecondsConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for repository commands.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultToolsConfiguration()
	return map[string]any{
		rootKey + "." + configurationTransportKeyConstant:   defaults.Transport,
		rootKey + "." + configurationOwnerKeyConstant:       defaults.Owner,
		rootKey + "." + configurationBranchKeyConstant:      defaults.Branch,
		rootKey + "." + configurationCloneDepthKeyConstant:  defaults.CloneDepth,
		rootKey + "." + configurationPrivateKeyConstant:     defaults.Private,
		rootKey + "." + configurationDescriptionKeyConstant: defaults.Description,
		rootKey + "." + configurationTimeoutKeyConstant:     defaults.TimeoutSeconds,
	}
}

// sanitize normalizes repository configuration values.
func (configuration ToolsConfiguration) sanitize() ToolsConfiguration {
	sanitized := configuration
	sanitized.Transport = strings.TrimSpace(configuration.Transport)
	if len(sanitized.Transport) == 0 {
		sanitized.Transport = defaultTransportConstant
	}
	sanitized.Owner = strings.TrimSpace(configuration.Owner)
	sanitized.Branch = strings.TrimSpace(configuration.Branch)
	if sanitized.CloneDepth < 0 {
		sanitized.CloneDepth = defaultCloneDepthConstant
	}
	if sanitized.TimeoutSeconds <= 0 {
		sanitized.TimeoutSeconds = defaultTimeoutSecondsConstant
	}
	return sanitized
}
