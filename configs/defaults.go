package configs

const defaultSeparator = "--------------------------------"

// Default returns the configuration used when nothing else is given.
func Default() Config {
	return Config{
		Enabled:  true,
		Colorize: ColorAuto,
		Separator: Separator{
			PreLog:         defaultSeparator,
			PostLog:        defaultSeparator,
			Color:          "hiwhite",
			SkipOnEmptyLog: true,
		},
		AddNewLine:       false,
		ShowFileName:     true,
		ShowFunctionName: true,
		Colors: PerMethod{
			Log:   "cyan",
			Info:  "green",
			Warn:  "yellow",
			Error: "red",
			Debug: "magenta",
		},
		Emojis: PerMethod{
			Log:   "📝",
			Info:  "ℹ️",
			Warn:  "⚠️",
			Error: "❌",
			Debug: "🐛",
		},
		Methods:       AllMethods(),
		CaptureStack:  true,
		MaxStackDepth: 3,
		Debug:         false,
	}
}
