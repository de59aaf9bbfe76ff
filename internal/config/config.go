package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/gmds-pk-nachwuchs-2024-summit/tcga-fhir/internal/platform/blobstore"
)

// DefaultInputPath is the cBioPortal export the converter reads when no
// input is given.
const DefaultInputPath = "data/paad_tcga_pan_can_atlas_2018_clinical_data.tsv"

type Config struct {
	Env             string `mapstructure:"ENV"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	InputPath       string `mapstructure:"INPUT_PATH"`
	ResearchStudyID string `mapstructure:"RESEARCH_STUDY_ID"`
	RowErrorPolicy  string `mapstructure:"ROW_ERROR_POLICY"`
	OutputDriver    string `mapstructure:"OUTPUT_DRIVER"`
	OutputDir       string `mapstructure:"OUTPUT_DIR"`
	S3Bucket        string `mapstructure:"S3_BUCKET"`
	S3Region        string `mapstructure:"S3_REGION"`
	S3Endpoint      string `mapstructure:"S3_ENDPOINT"`
	S3PathStyle     bool   `mapstructure:"S3_PATH_STYLE"`
	S3Prefix        string `mapstructure:"S3_PREFIX"`
	AWSAccessKeyID  string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey    string `mapstructure:"AWS_SECRET_ACCESS_KEY"`
	AWSSessionToken string `mapstructure:"AWS_SESSION_TOKEN"`
	DatabaseURL     string `mapstructure:"DATABASE_URL"`
	DBMaxConns      int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns      int32  `mapstructure:"DB_MIN_CONNS"`
	MetricsFile     string `mapstructure:"METRICS_FILE"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("INPUT_PATH", DefaultInputPath)
	v.SetDefault("ROW_ERROR_POLICY", "abort")
	v.SetDefault("OUTPUT_DRIVER", string(blobstore.DriverFilesystem))
	v.SetDefault("OUTPUT_DIR", "bundles")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("DB_MAX_CONNS", 4)
	v.SetDefault("DB_MIN_CONNS", 1)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("ENV")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("INPUT_PATH")
	v.BindEnv("RESEARCH_STUDY_ID")
	v.BindEnv("ROW_ERROR_POLICY")
	v.BindEnv("OUTPUT_DRIVER")
	v.BindEnv("OUTPUT_DIR")
	v.BindEnv("S3_BUCKET")
	v.BindEnv("S3_REGION")
	v.BindEnv("S3_ENDPOINT")
	v.BindEnv("S3_PATH_STYLE")
	v.BindEnv("S3_PREFIX")
	v.BindEnv("AWS_ACCESS_KEY_ID")
	v.BindEnv("AWS_SECRET_ACCESS_KEY")
	v.BindEnv("AWS_SESSION_TOKEN")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("METRICS_FILE")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// StudyMode reports whether the run emits the ResearchStudy instead of
// converting rows.
func (c *Config) StudyMode() bool {
	return c.ResearchStudyID == ""
}

// Validate checks the settings after flag overrides have been applied.
func (c *Config) Validate() error {
	if c.RowErrorPolicy != "abort" && c.RowErrorPolicy != "skip" {
		return fmt.Errorf("ROW_ERROR_POLICY must be \"abort\" or \"skip\", got %q", c.RowErrorPolicy)
	}
	if !c.StudyMode() && c.InputPath == "" {
		return fmt.Errorf("INPUT_PATH is required when RESEARCH_STUDY_ID is set")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}

	switch blobstore.Driver(c.OutputDriver) {
	case blobstore.DriverFilesystem:
		if c.OutputDir == "" {
			return fmt.Errorf("OUTPUT_DIR is required for the fs driver")
		}
	case blobstore.DriverMemory:
	case blobstore.DriverS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 driver")
		}
		if c.AWSAccessKeyID != "" && c.AWSSecretKey == "" {
			return fmt.Errorf("AWS_SECRET_ACCESS_KEY is required when AWS_ACCESS_KEY_ID is set")
		}
	case blobstore.DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("OUTPUT_DRIVER must be one of fs, memory, s3, postgres, got %q", c.OutputDriver)
	}
	return nil
}

// Blobstore translates the output settings into a store configuration.
func (c *Config) Blobstore() blobstore.Config {
	return blobstore.Config{
		Driver: blobstore.Driver(c.OutputDriver),
		Dir:    c.OutputDir,
		S3: blobstore.S3Config{
			Bucket:          c.S3Bucket,
			Region:          c.S3Region,
			Endpoint:        c.S3Endpoint,
			Prefix:          c.S3Prefix,
			PathStyle:       c.S3PathStyle,
			AccessKeyID:     c.AWSAccessKeyID,
			SecretAccessKey: c.AWSSecretKey,
			SessionToken:    c.AWSSessionToken,
		},
		DatabaseURL: c.DatabaseURL,
		DBMaxConns:  c.DBMaxConns,
		DBMinConns:  c.DBMinConns,
	}
}
