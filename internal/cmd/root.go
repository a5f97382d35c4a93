// Package cmd contains the CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adamancini/jsassist/internal/output"
)

var (
	// Global flags
	outputFormat string
	configPath   string
	projectDir   string
	verbose      bool
	quiet        bool
)

// buildInfo is set during command initialization.
var buildInfo = struct {
	version, commit, date string
}{"dev", "none", "unknown"}

func Execute(version, commit, date string) error {
	return newRootCmd(version, commit, date).Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	buildInfo.version, buildInfo.commit, buildInfo.date = version, commit, date

	rootCmd := newAssistCmd()
	rootCmd.Version = version
	rootCmd.SilenceUsage = true

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to settings file")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", ".", "Project directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Register completion function for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(output.FormatText), string(output.FormatJSON), string(output.FormatYAML)}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.MarkPersistentFlagDirname("dir")

	return rootCmd
}

// newLogger returns a logger on the command's streams gated by the global flags.
func newLogger(cmd *cobra.Command) *output.Logger {
	return output.NewLogger(cmd.OutOrStdout(), cmd.ErrOrStderr(), verbose, quiet)
}
