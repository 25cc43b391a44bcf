package config

// LoggingConfig controls the engine's diagnostic log. Command output never
// goes through it, so the default level keeps the CLI quiet.
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// json or text
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// stdout, stderr or file
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`

	// Appended to when Output is "file"
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`

	// Adds source file:line to every record
	IncludeCaller bool `mapstructure:"include_caller"`
}

// Structured reports whether records are emitted as JSON
func (c LoggingConfig) Structured() bool {
	return c.Format == "json"
}
