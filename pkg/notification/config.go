package notification

// ContainerConfig overrides the global settings for one named container.
// Zero values fall back to the global Config values.
type ContainerConfig struct {
	Types   []string          `yaml:"types"`
	Format  string            `yaml:"format"`
	Formats map[string]string `yaml:"formats"`
}

// Config holds notification container configuration.
type Config struct {
	// DefaultContainer is the container used by Manager.Default and Manager.Call.
	DefaultContainer string `env:"NOTIFICATION_DEFAULT_CONTAINER" envDefault:"default" yaml:"default_container"`

	// Types registered in every container without its own list.
	Types []string `env:"NOTIFICATION_TYPES" envDefault:"success,error,warning,info" envSeparator:"," yaml:"types"`

	// Format is the default format of every container without its own.
	Format string `env:"NOTIFICATION_FORMAT" envDefault:":message" yaml:"format"`

	// Formats holds per-type formats shared by all containers.
	Formats map[string]string `yaml:"formats"`

	// ContainersFile points to a YAML file with a Config document, see config.LoadFile.
	ContainersFile string `env:"NOTIFICATION_CONTAINERS_FILE" yaml:"-"`

	Containers map[string]ContainerConfig `yaml:"containers"`
}

// DefaultConfig returns default notification configuration
func DefaultConfig() Config {
	return Config{
		DefaultContainer: "default",
		Types:            []string{"success", "error", "warning", "info"},
		Format:           ":message",
	}
}

// container returns the effective settings of the named container.
func (c Config) container(name string) ContainerConfig {
	cc := c.Containers[name]
	if cc.Types == nil {
		cc.Types = c.Types
	}
	if cc.Format == "" {
		cc.Format = c.Format
	}
	if cc.Formats == nil {
		cc.Formats = c.Formats
	}
	return cc
}
