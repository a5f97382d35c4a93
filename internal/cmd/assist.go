package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adamancini/jsassist/internal/config"
	"github.com/adamancini/jsassist/internal/output"
)

func newAssistCmd() *cobra.Command {
	var (
		assumeYes      bool
		showCommands   bool
		skipGitCheck   bool
		packageManager string
	)

	cmd := &cobra.Command{
		Use:   "jsassist [editor]",
		Short: "Set up a JavaScript project for the editor",
		Long: `jsassist inspects the project directory and asks a short series of
questions: create jsconfig.json, allow JavaScript in tsconfig.json, add
missing type definitions to package.json, and install the npm script runner
and eslint editor extensions.

Confirmed answers are applied immediately. Installs run in the background
and are not awaited.

The editor defaults to code-insiders.

Files about to be overwritten are checked for uncommitted git changes first.
Use --skip-git-check to bypass git status checking.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd)

			dir, err := resolveDir()
			if err != nil {
				return err
			}

			settings, err := loadSettings(cmd, dir, args, log)
			if err != nil {
				return err
			}

			service := NewAssistService(dir, settings, log)
			service.in = cmd.InOrStdin()
			return service.Run(cmd.Context(), AssistOptions{
				AssumeYes:    settings.AssumeYes,
				ShowCommands: showCommands,
				SkipGitCheck: skipGitCheck,
				OutputFormat: outputFormat,
			})
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to every applicable question")
	cmd.Flags().BoolVar(&showCommands, "show-commands", false, "Output the planned writes and installs instead of executing")
	cmd.Flags().BoolVar(&skipGitCheck, "skip-git-check", false, "Skip git status checks for files about to be overwritten")
	cmd.Flags().StringVar(&packageManager, config.FlagBindings[config.KeyPackageManager], "", "Package manager for type definitions: npm, yarn, pnpm")

	_ = cmd.RegisterFlagCompletionFunc(config.FlagBindings[config.KeyPackageManager], func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"npm", "yarn", "pnpm"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// greet prints the welcome banner.
func greet(log *output.Logger, format output.Format) {
	if format != output.FormatText {
		return
	}
	log.Infof("%s", output.Banner(output.Greeting))
}
