package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/davidm/driver-scout/internal/transport"
)

var devicesCommand = &cobra.Command{
	Use:   "devices",
	Short: "List devices visible to the transport",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx := context.Background()

		adb, err := transport.NewADB()
		if err != nil {
			return err
		}
		if err := adb.Ensure(ctx); err != nil {
			return err
		}

		devices, err := transport.ListDevices(ctx, adb)
		if err != nil {
			return fmt.Errorf("listing devices failed: %w", err)
		}
		if len(devices) == 0 {
			fmt.Println("No devices attached.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SERIAL\tSTATE")
		for _, d := range devices {
			fmt.Fprintf(w, "%s\t%s\n", d.Serial, d.State)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(devicesCommand)
}
