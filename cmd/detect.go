// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/cardinalhq/orcbridge/pkg/orcfile"
)

func init() {
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Report whether a file is recognizably ORC",
		RunE: func(c *cobra.Command, _ []string) error {
			filename, err := c.Flags().GetString("file")
			if err != nil {
				return fmt.Errorf("failed to get file flag: %w", err)
			}

			return runDetect(filename)
		},
	}

	rootCmd.AddCommand(cmd)

	cmd.Flags().String("file", "", "File to sniff")
	if err := cmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Errorf("failed to mark file flag as required: %w", err))
	}
}

func runDetect(filename string) error {
	ok, err := orcfile.DetectFormat(afero.NewOsFs(), filename)
	if err != nil {
		return fmt.Errorf("failed to sniff %s: %w", filename, err)
	}
	if ok {
		fmt.Printf("%s: ORC\n", filename)
	} else {
		fmt.Printf("%s: not ORC\n", filename)
	}
	return nil
}
