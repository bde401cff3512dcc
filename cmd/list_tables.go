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
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/tabprep/internal/report"
)

func newListTablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list-tables",
		Short:   "List the tables of the configured database",
		Long:    `Connects to the database given by the connection flags and prints its base tables, which can be passed to --table.`,
		Example: `  tabprep list-tables --dialect cloudsqlpostgres --username user --password pass --database mydb --cloudsql-instance-connection-name my-project:my-region:my-instance`,
		Args:    cobra.NoArgs,
		RunE:    a.runListTables,
	}
}

func (a *app) runListTables(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := a.setupDatabase(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tables, err := db.ListTables(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}
	a.logger.Debug("Listed tables", zap.String("dialect", a.cfg.Database.Dialect), zap.Int("count", len(tables)))

	rep := report.New(cmd.OutOrStdout())
	if len(tables) == 0 {
		rep.Printf("No tables found in database %s", a.cfg.Database.DBName)
		return nil
	}
	rows := make([][]string, len(tables))
	for i, name := range tables {
		rows[i] = []string{name}
	}
	rep.Table([]string{"Table"}, rows)
	return nil
}
