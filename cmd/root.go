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
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/tabprep/internal/config"
	"github.com/GoogleCloudPlatform/tabprep/internal/database"
	_ "github.com/GoogleCloudPlatform/tabprep/internal/database/mysql"
	_ "github.com/GoogleCloudPlatform/tabprep/internal/database/postgres"
	_ "github.com/GoogleCloudPlatform/tabprep/internal/database/sqlserver"
	"github.com/GoogleCloudPlatform/tabprep/internal/logging"
	"github.com/GoogleCloudPlatform/tabprep/internal/utils"
)

// flagKeys maps command-line flags to configuration keys. Flags are bound
// for the command being run only, since run and explore share flag names.
var flagKeys = map[string]string{
	"verbose":    "log.verbose",
	"log-format": "log.format",

	"dialect":                           "database.dialect",
	"host":                              "database.host",
	"port":                              "database.port",
	"username":                          "database.user",
	"password":                          "database.password",
	"database":                          "database.name",
	"sslmode":                           "database.sslmode",
	"cloudsql-instance-connection-name": "database.cloudsql_instance",
	"cloudsql-use-private-ip":           "database.private_ip",

	"imputation": "pipeline.imputation",
	"scaling":    "pipeline.scaling",
	"delimiter":  "source.delimiter",
	"table":      "source.table",
	"limit":      "source.limit",
	"head":       "output.head",
	"out":        "output.path",
}

// app is the state shared by the commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "tabprep",
		Short: "A tool to clean tabular datasets for model training",
		Long: `tabprep loads a delimited file or a database table, reports its shape and
quality, imputes missing values, removes duplicate rows, one-hot encodes
categorical columns and scales numeric columns.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfigAndLogger,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "Path to a YAML configuration file")
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.String("log-format", "console", "Log format (console or json)")

	// Database connection flags
	pf.String("dialect", "", fmt.Sprintf("Database dialect (%s), required with --table", strings.Join(config.SupportedDialects, ", ")))
	pf.String("host", "localhost", "Database host")
	pf.Int("port", 0, "Database port")
	pf.String("username", "", "Database username")
	pf.String("password", "", "Database password")
	pf.String("database", "", "Database name")
	pf.String("sslmode", "disable", "PostgreSQL sslmode")
	pf.String("cloudsql-instance-connection-name", "", "Cloud SQL instance connection name (for Cloud SQL dialects)")
	pf.Bool("cloudsql-use-private-ip", false, "Use private IP for Cloud SQL connection")

	cmd.AddCommand(newRunCmd(a))
	cmd.AddCommand(newExploreCmd(a))
	cmd.AddCommand(newListTablesCmd(a))
	return cmd
}

// initConfigAndLogger merges flags, environment and the config file into a.cfg
// and installs the logger.
func (a *app) initConfigAndLogger(cmd *cobra.Command, args []string) error {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("na-values"); f != nil && f.Changed {
		cfg.Source.NAValues = utils.ParseListFlag(f.Value.String())
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log.Format, cfg.Log.Verbose)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)

	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) setupDatabase(ctx context.Context) (*database.DB, error) {
	if err := a.cfg.Database.Validate(); err != nil {
		return nil, err
	}
	db, err := database.New(ctx, a.cfg.Database)
	if err != nil {
		a.logger.Error("Failed to connect to database", zap.String("dialect", a.cfg.Database.Dialect), zap.Error(err))
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
