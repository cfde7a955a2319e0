package config

const (
	defaultThreads   = 4
	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	// OrganizedDirName is created under the source when no output is given.
	OrganizedDirName = "organized"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Organize: Organize{
			Threads: defaultThreads,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
