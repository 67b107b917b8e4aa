package config

const (
	defaultConfigPath      = "~/.config/movietag/config.toml"
	defaultTMDBLanguage    = "en-US"
	defaultTMDBBaseURL     = "https://api.themoviedb.org/3"
	defaultTMDBTimeoutSecs = 15
	defaultMuxTool         = "mkvpropedit"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// SkipPropertyNames lists the built-in field categories that may be suppressed.
var SkipPropertyNames = []string{"Writers", "Directors", "Cast", "IMDbID", "TMDbID"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		TMDB: TMDB{
			Language:       defaultTMDBLanguage,
			BaseURL:        defaultTMDBBaseURL,
			TimeoutSeconds: defaultTMDBTimeoutSecs,
		},
		Mux: Mux{
			Tool: defaultMuxTool,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
