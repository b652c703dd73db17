package session

// Config holds configuration for the EdgeGrid credentials and transport.
type Config struct {
	// Path is the location of the .edgerc credentials file.
	// Empty means ~/.edgerc.
	Path string `mapstructure:"path" default:""`
	// Section is the section of the .edgerc file to use.
	Section string `mapstructure:"section" default:"default"`
	// AccountSwitchKey is an optional key for operating on a managed
	// account. Attached to every request when set.
	AccountSwitchKey string `mapstructure:"account_switch_key" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
