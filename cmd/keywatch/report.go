package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a plain-text activity report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctrl, _, err := buildController(cmd)
		if err != nil {
			return err
		}

		path, err := ctrl.Report(reportOutput)
		if err != nil {
			return err
		}

		fmt.Printf("Report generated: %s\n", path)

		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output file for the report")
}
