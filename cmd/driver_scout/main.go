// Package main provides the entry point for the driver-scout CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "driver_scout",
	Short: "Device hardware scouting and driver research CLI",
	Long:  "driver_scout inventories the hardware of an adb-connected device, classifies its components with an LLM, researches existing Linux driver support per component, and emits placeholder driver stubs plus a summary report.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
