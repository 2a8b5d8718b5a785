package installer

import (
	"fmt"

	"github.com/insanefusion/fusionenv/pkg/shell"
	"github.com/insanefusion/fusionenv/pkg/util/console"
)

// EnvCreator offers to create a conda environment before the package
// groups are installed.
type EnvCreator struct {
	Runner shell.Runner
	Name   string
	Python string

	// Ask decides whether to create the environment. Defaults to an
	// interactive y/N prompt on stdin.
	Ask func() (bool, error)
}

// Create prompts and, on yes, issues the conda create and activate
// commands. Activation from a child shell cannot change this process's
// environment, so the limitation is stated and the manual activation
// command printed.
func (e *EnvCreator) Create() error {
	ask := e.Ask
	if ask == nil {
		ask = func() (bool, error) {
			interactive := console.InteractiveBool{
				Prompt:         fmt.Sprintf("🐍 Do you want to create a conda environment (%s)?", e.Name),
				Default:        false,
				NonDefaultFlag: "--conda",
			}
			return interactive.Read()
		}
	}

	yes, err := ask()
	if err != nil {
		return err
	}
	if !yes {
		console.Info("Skipping conda environment creation")
		return nil
	}

	console.Infof("Creating conda environment: %s", e.Name)
	commands := []string{
		fmt.Sprintf("conda create -n %s python=%s -y", e.Name, e.Python),
		fmt.Sprintf("conda activate %s", e.Name),
	}
	for _, command := range commands {
		e.Runner.Run(command, "Running: "+command)
	}

	console.Successf("Conda environment '%s' created!", e.Name)
	console.Warnf("Activating from a subprocess does not carry over to your shell. To use the environment, run: conda activate %s", e.Name)
	return nil
}
