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

	"github.com/GoogleCloudPlatform/tabprep/internal/preprocess"
	"github.com/GoogleCloudPlatform/tabprep/internal/report"
)

func newExploreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "explore [file]",
		Short:   "Load a dataset and report its shape, types and statistics",
		Long:    `Loads the dataset and prints the exploration report without transforming anything.`,
		Example: `  tabprep explore data/raw/dataset.csv --delimiter ';'`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    a.runExplore,
	}
	addSourceFlags(cmd)
	return cmd
}

func (a *app) runExplore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	src, release, err := a.buildSource(ctx, args)
	if err != nil {
		return err
	}
	defer release()

	p := preprocess.New(report.New(cmd.OutOrStdout()), a.logger)
	t, err := p.Load(ctx, src)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	p.Explore(t)
	return nil
}
