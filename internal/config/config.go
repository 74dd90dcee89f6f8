package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "basketcli/internal/errors"
)

// Config represents the complete run configuration
type Config struct {
	Inputs  InputsConfig  `yaml:"inputs" envconfig:"INPUTS"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Clean   CleanConfig   `yaml:"clean" envconfig:"CLEAN"`
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// InputsConfig locates the two source tables
type InputsConfig struct {
	BasketsPath   string `yaml:"baskets_path" envconfig:"BASKETS_PATH" default:"basket_details.csv" validate:"required"`
	CustomersPath string `yaml:"customers_path" envconfig:"CUSTOMERS_PATH" default:"customer_details.csv" validate:"required"`
}

// OutputConfig contains artifact destinations. The write toggles are
// pointers so the file layer can distinguish "set to false" from "absent"
// when merging.
type OutputConfig struct {
	Dir          string `yaml:"dir" envconfig:"DIR" default:"reports" validate:"required"`
	WriteCharts  *bool  `yaml:"write_charts" envconfig:"WRITE_CHARTS" default:"true"`
	WriteCSV     *bool  `yaml:"write_csv" envconfig:"WRITE_CSV" default:"true"`
	ChartsFile   string `yaml:"charts_file" envconfig:"CHARTS_FILE" default:"basket_charts.xlsx"`
	EnrichedFile string `yaml:"enriched_file" envconfig:"ENRICHED_FILE" default:"basket_enriched.csv"`
}

// ChartsEnabled reports whether the chart workbook should be written.
func (o OutputConfig) ChartsEnabled() bool {
	return o.WriteCharts == nil || *o.WriteCharts
}

// CSVEnabled reports whether the CSV artifacts should be written.
func (o OutputConfig) CSVEnabled() bool {
	return o.WriteCSV == nil || *o.WriteCSV
}

// CleanConfig contains data cleaning thresholds
type CleanConfig struct {
	// MaxValidAge is the largest customer age treated as genuine; ages above
	// it are imputed with the column median.
	MaxValidAge int `yaml:"max_valid_age" envconfig:"MAX_VALID_AGE" default:"100" validate:"gt=0"`
}

// ReportConfig contains report rendering options
type ReportConfig struct {
	TopN int `yaml:"top_n" envconfig:"TOP_N" default:"10" validate:"gt=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stderr" validate:"oneof=stderr file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/basketcli.log"`
}

// Load loads configuration from environment variables and config file.
// Precedence: config file values override environment and defaults; the
// environment (with struct-tag defaults) fills whatever the file omits.
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first (defaults come from struct tags)
	if err := envconfig.Process("BASKET", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// ArtifactPath resolves an artifact file name inside the output directory
func (c *Config) ArtifactPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Output.Dir, name)
}

func configFilePath() string {
	if path := os.Getenv("BASKET_CONFIG_FILE"); path != "" {
		return path
	}
	return "basketcli.yaml"
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs overlays the file config on the env config. Fields the
// file sets win; fields it leaves at their zero value keep the env or
// default value.
func mergeConfigs(fileConfig, envConfig Config) Config {
	if fileConfig.Inputs.BasketsPath != "" {
		envConfig.Inputs.BasketsPath = fileConfig.Inputs.BasketsPath
	}
	if fileConfig.Inputs.CustomersPath != "" {
		envConfig.Inputs.CustomersPath = fileConfig.Inputs.CustomersPath
	}
	if fileConfig.Output.Dir != "" {
		envConfig.Output.Dir = fileConfig.Output.Dir
	}
	if fileConfig.Output.WriteCharts != nil {
		envConfig.Output.WriteCharts = fileConfig.Output.WriteCharts
	}
	if fileConfig.Output.WriteCSV != nil {
		envConfig.Output.WriteCSV = fileConfig.Output.WriteCSV
	}
	if fileConfig.Output.ChartsFile != "" {
		envConfig.Output.ChartsFile = fileConfig.Output.ChartsFile
	}
	if fileConfig.Output.EnrichedFile != "" {
		envConfig.Output.EnrichedFile = fileConfig.Output.EnrichedFile
	}
	if fileConfig.Clean.MaxValidAge != 0 {
		envConfig.Clean.MaxValidAge = fileConfig.Clean.MaxValidAge
	}
	if fileConfig.Report.TopN != 0 {
		envConfig.Report.TopN = fileConfig.Report.TopN
	}
	if fileConfig.Logging.Level != "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Output != "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if fileConfig.Logging.FilePath != "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}

	return envConfig
}
