package logging

type Config struct {
	EnabledSinks    []string
	BufferSize      int
	MinimumSeverity Severity
	SQLitePath      string
}

func DefaultConfig() Config {
	return Config{
		EnabledSinks:    []string{"console"},
		BufferSize:      512,
		MinimumSeverity: SeverityInfo,
	}
}

func (c Config) HasSink(name string) bool {
	for _, s := range c.EnabledSinks {
		if s == name {
			return true
		}
	}
	return false
}
