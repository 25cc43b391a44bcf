package config

// SessionConfig selects where the player's session is stored
type SessionConfig struct {
	// Storage backend: sqlite, postgres (both through the database section) or file
	Backend string `mapstructure:"backend" validate:"required,oneof=sqlite postgres file"`

	// JSON file used by the file backend
	FilePath string `mapstructure:"file_path" validate:"required_if=Backend file"`

	// Lock file guarding the local session against a second writer
	LockFile string `mapstructure:"lock_file" validate:"required"`

	// Player profile; one stored session per profile
	Profile string `mapstructure:"profile" validate:"required,max=64"`

	// Default habitat eco tier for processing: off, eco, ultra
	EcoTier string `mapstructure:"eco_tier" validate:"required,eco_tier"`
}
