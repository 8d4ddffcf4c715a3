package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "grid-proxy",
	Short: "Selenium grid status and session proxy",
	Long: `grid-proxy fronts a selenium grid coordinator.

It flattens the grid status into nodes, sessions and statistics, forwards
session and node management calls, and hands out per-session VNC tokens.

Examples:
  grid-proxy run --grid-url http://selenium-hub:4444
  grid-proxy watch --proxy-url http://localhost:31590/api/selenium-grid`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}
