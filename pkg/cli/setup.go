package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/insanefusion/fusionenv/pkg/config"
	"github.com/insanefusion/fusionenv/pkg/global"
	"github.com/insanefusion/fusionenv/pkg/installer"
	"github.com/insanefusion/fusionenv/pkg/python"
	"github.com/insanefusion/fusionenv/pkg/setup"
	"github.com/insanefusion/fusionenv/pkg/shell"
	"github.com/insanefusion/fusionenv/pkg/util/console"
	"github.com/insanefusion/fusionenv/pkg/verify"
)

var (
	setupYes        bool
	setupConda      bool
	setupModelsDir  string
	setupSkipModels bool
	setupSkipVerify bool
)

func newSetupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Install the Fusion AI stack: Python packages, model weights, verification",
		RunE:  runSetup,
		Args:  cobra.NoArgs,
	}

	cmd.Flags().BoolVarP(&setupYes, "yes", "y", false, "Run non-interactively, declining optional prompts")
	cmd.Flags().BoolVar(&setupConda, "conda", false, "Create the conda environment without prompting")
	addModelsDirFlag(cmd, &setupModelsDir)
	cmd.Flags().BoolVar(&setupSkipModels, "skip-models", false, "Skip downloading model weights")
	cmd.Flags().BoolVar(&setupSkipVerify, "skip-verify", false, "Skip the post-install import check")

	return cmd
}

func runSetup(cmd *cobra.Command, args []string) error {
	console.Output("🔥 Fusion AI environment setup")
	console.Output(strings.Repeat("=", 50))

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The Python version check is the only fatal step.
	py, err := python.Find()
	if err != nil {
		return err
	}
	v, err := py.Version()
	if err != nil {
		return err
	}
	if err := python.CheckMinimum(v, global.MinPythonVersion); err != nil {
		return err
	}
	console.Successf("Python %s is compatible", v)

	runner := &shell.HostRunner{}

	creator := &installer.EnvCreator{
		Runner: runner,
		Name:   cfg.Environment.Name,
		Python: cfg.Environment.Python,
	}
	switch {
	case setupConda:
		creator.Ask = func() (bool, error) { return true, nil }
	case setupYes || !console.IsTerminal():
		creator.Ask = func() (bool, error) { return false, nil }
	}
	if err := creator.Create(); err != nil {
		console.Errorf("Conda environment creation failed: %s", err)
	}

	inst := installer.New(runner, py, cfg.Packages)

	steps := []setup.Step{
		{Name: "Installing PyTorch", Run: inst.InstallPyTorch},
		{Name: "Installing OpenCV", Run: inst.InstallOpenCV},
		{Name: "Installing MiDaS dependencies", Run: inst.InstallDepthDeps},
		{Name: "Installing Gaussian Splatting dependencies", Run: inst.InstallSplattingDeps},
		{Name: "Installing additional packages", Run: inst.InstallExtras},
		{Name: "Setting up MiDaS models", Run: func() error {
			if setupSkipModels {
				console.Info("Skipped (--skip-models)")
				return nil
			}
			return fetchModels(cfg, setupModelsDir)
		}},
		{Name: "Verifying installation", Run: func() error {
			if setupSkipVerify {
				console.Info("Skipped (--skip-verify)")
				return nil
			}
			verify.Run(py, verify.DefaultChecks)
			return nil
		}},
	}

	failed := setup.RunSteps(steps)
	printSummary(failed)
	return nil
}

func printSummary(failed int) {
	console.Output("")
	console.Output("🏆 Fusion AI environment setup complete!")
	if failed > 0 {
		console.Warnf("%d step(s) reported problems; review the output above.", failed)
	}
	console.Output("")
	console.Output("📋 Next steps:")
	console.Output("1. Start the Fusion server: npm run dev")
	console.Output("2. Upload a video to run depth estimation and 3D reconstruction")
	console.Output("3. Watch the console for processing updates")
}

func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Load(cwd)
}
