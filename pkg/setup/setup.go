// Package setup sequences the provisioning steps.
package setup

import (
	"github.com/insanefusion/fusionenv/pkg/util/console"
)

// Step is one top-level unit of the setup pipeline.
type Step struct {
	Name string
	Run  func() error
}

// RunSteps executes steps in order. Each step is isolated: a failure is
// reported and the next step still runs. Returns the number of steps
// that failed.
func RunSteps(steps []Step) int {
	failed := 0
	for _, step := range steps {
		console.Info("")
		console.Infof("📋 %s...", step.Name)
		if err := step.Run(); err != nil {
			console.Errorf("%s failed: %s", step.Name, err)
			failed++
		}
	}
	return failed
}
