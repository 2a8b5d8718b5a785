// Package shell runs provisioning commands through the platform shell.
package shell

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/insanefusion/fusionenv/pkg/util/console"
)

// Runner executes a shell command on behalf of a setup step. The bool
// result is advisory: callers log and move on, they never abort the
// run on a failed command.
type Runner interface {
	Run(command string, description string) bool
}

// HostRunner executes commands with the host's shell and reports the
// outcome on the console. Failures include the command's combined
// output so the user can see what the package manager said.
type HostRunner struct {
	// GOOS selects the shell. Defaults to runtime.GOOS.
	GOOS string
}

func (r *HostRunner) Run(command string, description string) bool {
	console.Infof("📦 %s", description)

	goos := r.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	var cmd *exec.Cmd
	if goos == "windows" {
		cmd = exec.Command("cmd", "/C", command)
	} else {
		cmd = exec.Command("/bin/sh", "-c", command)
	}
	console.Debug("$ " + command)

	out, err := cmd.CombinedOutput()
	if err != nil {
		console.Errorf("%s - Failed: %s", description, strings.TrimSpace(string(out)))
		return false
	}
	console.Successf("%s - Success", description)
	return true
}
