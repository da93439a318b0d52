package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"delivery-dashboard-service/internal/domain"
	"delivery-dashboard-service/internal/export"
	"delivery-dashboard-service/internal/ingest"
)

var rootCmd = &cobra.Command{
	Use:   "routecli",
	Short: "Work with weekday delivery reports without the web dashboard",
	Long: `Offline companion to the delivery dashboard.

Reads a PeerPlace "Report" export (.xlsx or legacy .xls), applies the same
route filtering as the dashboard, and can write the formatted delivery log
workbook directly.`,
}

var routesCmd = &cobra.Command{
	Use:   "routes <report file>",
	Short: "List the routes a report would show on the dashboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		routes, err := ingest.ReadReportFile(args[0])
		if err != nil {
			return err
		}

		if len(routes) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No routes found.")
			return nil
		}
		for _, rt := range routes {
			fmt.Fprintf(cmd.OutOrStdout(), "%-30s %d clients\n", rt.Name, rt.ClientCount())
		}
		return nil
	},
}

var (
	exportOut string
	exportDay string
)

var exportCmd = &cobra.Command{
	Use:   "export <report file>",
	Short: "Convert a report straight to a delivery log workbook",
	Long: `Convert a report to the delivery log workbook the dashboard exports:
one sheet per route with a TOTALS row, plus a Summary sheet. Every client
is marked delivered, as on a fresh upload.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !domain.IsWeekday(exportDay) {
			return fmt.Errorf("--day must be one of %v", domain.Weekdays)
		}

		routes, err := ingest.ReadReportFile(args[0])
		if err != nil {
			return err
		}
		day := &domain.Day{Name: exportDay, Routes: routes}

		out := exportOut
		if out == "" {
			out = day.Name + "_Delivery_Log.xlsx"
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %q: %w", out, err)
		}
		defer f.Close()

		if err := export.WriteWorkbook(day, f); err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %q: %w", out, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d routes, %d clients)\n", out, len(day.Routes), day.TotalClients())
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output workbook path (default <day>_Delivery_Log.xlsx)")
	exportCmd.Flags().StringVar(&exportDay, "day", "Monday", "Weekday name used for the output filename")
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
