package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adamancini/jsassist/internal/config"
	"github.com/adamancini/jsassist/internal/types"
)

func newInitCmd() *cobra.Command {
	var (
		outputPath     string
		packageManager string
		force          bool
	)

	cmd := &cobra.Command{
		Use:   "init [editor]",
		Short: "Create a settings file with the default values",
		Long: `Create a jsassist settings file.

The file is written to $XDG_CONFIG_HOME/jsassist/config.yaml unless --path is
given. The format follows the file extension: .yaml, .toml or .json.

Examples:
  jsassist init                           # Defaults, editor code-insiders
  jsassist init code                      # Use the stable editor
  jsassist init --package-manager pnpm
  jsassist init --path ./jsassist.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.Defaults()
			if len(args) > 0 {
				settings.Editor = args[0]
			}
			pm, err := types.ParsePackageManager(packageManager)
			if err != nil {
				return err
			}
			settings.PackageManager = pm
			return runInit(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), settings, outputPath, force)
		},
	}

	cmd.Flags().StringVar(&outputPath, "path", "", "Output path for the settings file")
	cmd.Flags().StringVar(&packageManager, "package-manager", "", "Package manager for type definitions: npm, yarn, pnpm")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing settings file")

	return cmd
}

// runInit writes settings to outputPath, asking before overwriting.
func runInit(stdin io.Reader, stdout, stderr io.Writer, settings *config.Settings, outputPath string, force bool) error {
	if err := config.Validate(settings); err != nil {
		return err
	}

	// Determine output path
	if outputPath == "" {
		path, err := config.DefaultSettingsPath()
		if err != nil {
			return err
		}
		outputPath = path
	}
	outputPath = expandHomePath(outputPath)

	// Check if file exists
	if _, err := os.Stat(outputPath); err == nil && !force {
		_, _ = fmt.Fprintf(stderr, "Settings file already exists at %s\n", outputPath)
		_, _ = fmt.Fprintf(stdout, "Overwrite? [y/N]: ")
		answer, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read input: %w", err)
		}
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			_, _ = fmt.Fprintln(stdout, "Aborted.")
			return nil
		}
	}

	content, err := config.Marshal(settings, config.FormatForPath(outputPath))
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	// Ensure parent directory exists
	parentDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(parentDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", parentDir, err)
	}

	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	_, _ = fmt.Fprintf(stdout, "Created %s\n", outputPath)
	return nil
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
