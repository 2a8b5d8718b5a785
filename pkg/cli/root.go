package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/insanefusion/fusionenv/pkg/global"
	"github.com/insanefusion/fusionenv/pkg/update"
	"github.com/insanefusion/fusionenv/pkg/util/console"
)

func NewRootCommand() (*cobra.Command, error) {
	rootCmd := cobra.Command{
		Use:     "fusionenv",
		Short:   "Provision the Python environment for the Fusion reconstruction pipeline",
		Version: fmt.Sprintf("%s (built %s)", global.Version, global.BuildTime),
		// This stops errors being printed because we print them in cmd/fusionenv/main.go
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if global.Verbose {
				console.SetLevel(console.DebugLevel)
			}
			cmd.SilenceUsage = true
			if err := update.DisplayAndCheckForRelease(); err != nil {
				console.Debugf("%s", err)
			}
		},
		SilenceErrors: true,
	}
	setPersistentFlags(&rootCmd)

	rootCmd.AddCommand(
		newSetupCommand(),
		newDownloadCommand(),
		newVerifyCommand(),
	)

	return &rootCmd, nil
}

func setPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "Verbose output")
}
