/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "TABPREP"

// Config holds all configuration for the application
type Config struct {
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Source   SourceConfig   `mapstructure:"source"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Output   OutputConfig   `mapstructure:"output"`
}

// PipelineConfig holds the two mode switches of the pipeline. Values are kept
// as free-form strings; unrecognized values fall back inside the stages.
type PipelineConfig struct {
	Imputation string `mapstructure:"imputation"`
	Scaling    string `mapstructure:"scaling"`
}

// SourceConfig describes where the dataset is read from.
type SourceConfig struct {
	Path      string   `mapstructure:"path"`
	Delimiter string   `mapstructure:"delimiter"`
	NAValues  []string `mapstructure:"na_values"`
	Table     string   `mapstructure:"table"`
	Limit     int      `mapstructure:"limit"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Dialect                        string `mapstructure:"dialect"`
	Host                           string `mapstructure:"host"`
	Port                           int    `mapstructure:"port"`
	User                           string `mapstructure:"user"`
	Password                       string `mapstructure:"password"`
	DBName                         string `mapstructure:"name"`
	SSLMode                        string `mapstructure:"sslmode"`
	CloudSQLInstanceConnectionName string `mapstructure:"cloudsql_instance"`
	UsePrivateIP                   bool   `mapstructure:"private_ip"`
}

// LogConfig controls the diagnostic logger.
type LogConfig struct {
	Verbose bool   `mapstructure:"verbose"`
	Format  string `mapstructure:"format"`
}

// OutputConfig controls what the CLI does with the final table.
type OutputConfig struct {
	Path string `mapstructure:"path"`
	Head int    `mapstructure:"head"`
}

// SupportedDialects lists the database dialects a SQL source can use.
var SupportedDialects = []string{"postgres", "cloudsqlpostgres", "mysql", "cloudsqlmysql", "sqlserver", "cloudsqlsqlserver"}

// Defaults registers the default value of every key on v. Every key needs a
// default so that AutomaticEnv values are seen by Unmarshal.
func Defaults(v *viper.Viper) {
	v.SetDefault("pipeline.imputation", "mean")
	v.SetDefault("pipeline.scaling", "standard")

	v.SetDefault("source.path", "")
	v.SetDefault("source.delimiter", ",")
	v.SetDefault("source.na_values", []string{})
	v.SetDefault("source.table", "")
	v.SetDefault("source.limit", 0)

	v.SetDefault("database.dialect", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 0)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.cloudsql_instance", "")
	v.SetDefault("database.private_ip", false)

	v.SetDefault("log.verbose", false)
	v.SetDefault("log.format", "console")

	v.SetDefault("output.path", "")
	v.SetDefault("output.head", 5)
}

// Load reads configFile (when non-empty) and the TABPREP_* environment into
// v and unmarshals the merged result. Flags bound to v take precedence.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	Defaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.Database.Dialect = strings.ToLower(strings.TrimSpace(cfg.Database.Dialect))
	return &cfg, nil
}

// Validate checks the parts of the configuration that cannot fall back.
func (c *Config) Validate() error {
	if c.Output.Head < 0 {
		return fmt.Errorf("output head must not be negative, got %d", c.Output.Head)
	}
	if c.Source.Limit < 0 {
		return fmt.Errorf("source limit must not be negative, got %d", c.Source.Limit)
	}
	if c.Source.Table == "" {
		return nil
	}
	return c.Database.Validate()
}

// Validate checks the dialect and port of a database connection.
func (d *DatabaseConfig) Validate() error {
	if err := ValidateDialect(d.Dialect); err != nil {
		return err
	}
	if d.Port < 0 || d.Port > 65535 {
		return fmt.Errorf("invalid database port %d", d.Port)
	}
	if d.DBName == "" {
		return fmt.Errorf("database name is required for dialect %s", d.Dialect)
	}
	return nil
}

// ValidateDialect reports whether dialect is one of SupportedDialects.
func ValidateDialect(dialect string) error {
	for _, supported := range SupportedDialects {
		if dialect == supported {
			return nil
		}
	}
	return fmt.Errorf("unsupported dialect: %q (only %s are supported)", dialect, strings.Join(SupportedDialects, ", "))
}

// IsCloudSQL reports whether the dialect connects through the Cloud SQL connector.
func (d *DatabaseConfig) IsCloudSQL() bool {
	return strings.HasPrefix(d.Dialect, "cloudsql")
}
