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

	"github.com/spf13/cobra"

	"github.com/GoogleCloudPlatform/tabprep/internal/loader"
	"github.com/GoogleCloudPlatform/tabprep/internal/utils"
)

// addSourceFlags registers the flags that select and parse the input.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("delimiter", ",", "Field delimiter (a single character, or 'tab')")
	cmd.Flags().String("na-values", "", "Comma-separated extra cell values to read as missing")
	cmd.Flags().String("table", "", "Read this database table instead of a file")
	cmd.Flags().Int("limit", 0, "Maximum number of rows read from --table (0 reads all)")
}

// buildSource returns the source named by args or the configuration, and a
// function releasing it.
func (a *app) buildSource(ctx context.Context, args []string) (loader.Source, func(), error) {
	noop := func() {}
	src := a.cfg.Source

	if src.Table != "" {
		if len(args) > 0 {
			return nil, noop, fmt.Errorf("give either a file or --table, not both")
		}
		db, err := a.setupDatabase(ctx)
		if err != nil {
			return nil, noop, err
		}
		release := func() {
			if err := db.Close(); err != nil {
				a.logger.Warn("Failed to close database connection")
			}
		}
		return &loader.SQLSource{
			Fetcher: db,
			Table:   src.Table,
			Limit:   src.Limit,
			Dialect: a.cfg.Database.Dialect,
		}, release, nil
	}

	path := src.Path
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, noop, fmt.Errorf("no input given: pass a file path or --table")
	}
	delimiter, err := utils.ParseDelimiter(src.Delimiter)
	if err != nil {
		return nil, noop, err
	}
	return &loader.CSVSource{Path: path, Delimiter: delimiter, NAValues: src.NAValues}, noop, nil
}
