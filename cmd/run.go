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
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/tabprep/internal/preprocess"
	"github.com/GoogleCloudPlatform/tabprep/internal/report"
	"github.com/GoogleCloudPlatform/tabprep/internal/table"
	"github.com/GoogleCloudPlatform/tabprep/internal/utils"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Run the full preprocessing pipeline",
		Long: `Loads the dataset and runs every stage in order: exploration, missing value
imputation, duplicate removal, one-hot encoding and scaling. The final table
is previewed and, with --out, written as CSV.`,
		Example: `  tabprep run data/raw/dataset.csv --imputation median --scaling minmax --out data/clean.csv
  tabprep run --dialect postgres --host localhost --port 5432 --username user --password pass --database shop --table customers`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runPipeline,
	}
	addSourceFlags(cmd)
	cmd.Flags().String("imputation", "mean", "Numeric imputation strategy (mean, median or constant)")
	cmd.Flags().String("scaling", "standard", "Scaling method (standard or minmax)")
	cmd.Flags().Int("head", 5, "Rows of the final table to preview (0 disables the preview)")
	cmd.Flags().StringP("out", "o", "", "Write the final table to this CSV file")
	return cmd
}

func (a *app) runPipeline(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	src, release, err := a.buildSource(ctx, args)
	if err != nil {
		return err
	}
	defer release()

	rep := report.New(cmd.OutOrStdout())
	p := preprocess.New(rep, a.logger)
	t, err := p.Run(ctx, src, preprocess.Options{
		Imputation: a.cfg.Pipeline.Imputation,
		Scaling:    a.cfg.Pipeline.Scaling,
	})
	if err != nil {
		return fmt.Errorf("preprocessing failed: %w", err)
	}

	previewHead(rep, t, a.cfg.Output.Head)

	if path := a.cfg.Output.Path; path != "" {
		if err := utils.WriteFileAtomically(path, func(f *os.File) error { return t.WriteCSV(f) }); err != nil {
			return fmt.Errorf("failed to write final dataset: %w", err)
		}
		rep.Printf("Final dataset written to: %s", path)
		a.logger.Info("Wrote final dataset", zap.String("path", path), zap.Int("rows", t.NumRows()))
	}
	return nil
}

// previewHead prints the first n rows of t as a table.
func previewHead(rep *report.Reporter, t *table.Table, n int) {
	if n <= 0 || t.NumCols() == 0 {
		return
	}
	records := t.Records()
	rows := records[1:]
	if len(rows) > n {
		rows = rows[:n]
	}
	rep.Printf("")
	rep.Printf("First %d rows:", len(rows))
	rep.Table(records[0], rows)
}
