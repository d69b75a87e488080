package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile     string
	Profile        string
	Region         string
	Bucket         string
	Channel        string
	Timezone       string
	Date           string
	DryRun         bool
	IncludeBudgets bool
	SkipIfExists   bool
	ReportName     string
	ReportType     []string
	Dir            string
	Verbose        bool
}

// Overrides converts the flags that map onto Config into a Config meant to be
// merged last. Verbose raises the log level to debug.
func (a *CLIArgs) Overrides() *Config {
	cfg := &Config{
		Profile:        a.Profile,
		Region:         a.Region,
		Bucket:         a.Bucket,
		SlackChannel:   a.Channel,
		Timezone:       a.Timezone,
		IncludeBudgets: a.IncludeBudgets,
		SkipIfExists:   a.SkipIfExists,
	}
	if a.Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg
}
