// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConvertConfig holds settings for the conversion commands.
type ConvertConfig struct {
	// Mode is the direction used by `baseconv convert` when --mode is not given.
	Mode Mode `json:"mode" yaml:"mode"`

	// KeepGoing reports malformed tokens and continues instead of stopping
	// at the first one. The run still fails.
	KeepGoing bool `json:"keep_going" yaml:"keep_going"`

	// JSON emits one JSON Conversion object per line instead of the bare value.
	JSON bool `json:"json" yaml:"json"`

	// Record appends every conversion to the history store.
	Record bool `json:"record" yaml:"record"`
}

// HistoryConfig holds settings for the conversion history store.
type HistoryConfig struct {
	// DBPath is the SQLite database file (default ~/.local/share/baseconv/history.db).
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxResults is the default maximum number of rows a query returns (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// EncodeConfig holds output paths for the instruction encoder.
type EncodeConfig struct {
	// Output is the annotated listing file (default hex_instructions.s).
	// "-" writes the listing to stdout.
	Output string `json:"output" yaml:"output"`

	// Executable is the byte-per-line image file (default executable.s).
	Executable string `json:"executable" yaml:"executable"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level"`
}

// Config groups every section of the configuration file.
type Config struct {
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	History HistoryConfig `json:"history" yaml:"history"`
	Encode  EncodeConfig  `json:"encode" yaml:"encode"`
	Log     LogConfig     `json:"log" yaml:"log"`
}
