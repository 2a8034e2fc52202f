package configs

// Config holds all configuration for the tool.
type Config struct {
	Log     LogConfig     `mapstructure:"log" validate:"required"`
	S3      S3Config      `mapstructure:"s3" validate:"required"`
	Staging StagingConfig `mapstructure:"staging" validate:"required"`
	Report  ReportConfig  `mapstructure:"report" validate:"required"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// S3Config holds the access-log bucket layout. BasePrefix is the account/
// region part of the key space; ExternalPrefix and InternalPrefix select
// the per-balancer key prefix under a day directory.
type S3Config struct {
	Bucket          string `mapstructure:"bucket" validate:"required"`
	Region          string `mapstructure:"region" validate:"required"`
	BasePrefix      string `mapstructure:"base_prefix" validate:"required"`
	ExternalPrefix  string `mapstructure:"external_prefix" validate:"required"`
	InternalPrefix  string `mapstructure:"internal_prefix" validate:"required"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// StagingConfig holds the local staging directory downloaded archives are
// kept in between runs.
type StagingConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// ReportConfig holds the directory CSV reports are written to.
type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir" validate:"required"`
}
