package config

const (
	defaultArchive         = "mrlEyes_2018_01.zip"
	defaultOutputRoot      = "dataset"
	defaultScratchDir      = "~/.cache/eyeset/scratch"
	defaultLogDir          = "~/.local/share/eyeset"
	defaultValidationRatio = 0.2
	defaultSeed            = 42
	defaultImageExtension  = ".png"
	defaultMinSegments     = 7
	defaultTokenIndex      = 5
	defaultClosedToken     = "1"
	defaultOpenToken       = "0"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultScratchMaxAge   = 24
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Archive:    defaultArchive,
			OutputRoot: defaultOutputRoot,
			ScratchDir: defaultScratchDir,
			LogDir:     defaultLogDir,
		},
		Split: Split{
			ValidationRatio: defaultValidationRatio,
			Seed:            defaultSeed,
			ImageExtension:  defaultImageExtension,
		},
		Labels: Labels{
			MinSegments: defaultMinSegments,
			TokenIndex:  defaultTokenIndex,
			ClosedToken: defaultClosedToken,
			OpenToken:   defaultOpenToken,
		},
		Scratch: Scratch{
			MaxAgeHours: defaultScratchMaxAge,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
