// Package verify smoke-tests the provisioned environment by importing
// each expected package in the Python interpreter.
package verify

import (
	"github.com/insanefusion/fusionenv/pkg/python"
	"github.com/insanefusion/fusionenv/pkg/util/console"
)

// Check is one package the environment is expected to provide.
type Check struct {
	// Module is the Python import name.
	Module string
	// Display is the human-facing package name.
	Display string
}

// DefaultChecks covers the packages the Fusion pipeline imports at startup.
var DefaultChecks = []Check{
	{Module: "torch", Display: "PyTorch"},
	{Module: "torchvision", Display: "TorchVision"},
	{Module: "cv2", Display: "OpenCV"},
	{Module: "numpy", Display: "NumPy"},
	{Module: "scipy", Display: "SciPy"},
	{Module: "plyfile", Display: "PLY file support"},
}

// Result is the outcome of one check.
type Result struct {
	Check
	Version string
	Err     error
}

// cudaReporter is implemented by python.Interpreter; fakes in tests may
// leave it out.
type cudaReporter interface {
	CUDADeviceName() (string, bool)
}

// Run probes every check. Missing packages are reported, never fatal.
func Run(prober python.Prober, checks []Check) []Result {
	console.Info("🔍 Verifying installation...")

	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		info, err := prober.Probe(c.Module)
		switch {
		case err != nil:
			console.Errorf("%s: %s", c.Display, err)
		case info.Version != "":
			console.Successf("%s %s", c.Display, info.Version)
		default:
			console.Success(c.Display)
		}
		results = append(results, Result{Check: c, Version: info.Version, Err: err})

		if c.Module == "torch" && err == nil {
			reportCUDA(prober)
		}
	}

	console.Info("")
	console.Info("🎊 Installation verification complete!")
	return results
}

// FailureCount counts checks whose import failed.
func FailureCount(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

func reportCUDA(prober python.Prober) {
	cr, ok := prober.(cudaReporter)
	if !ok {
		return
	}
	if name, ok := cr.CUDADeviceName(); ok {
		console.Infof("🚀 CUDA available: %s", name)
	} else {
		console.Info("💻 Using CPU")
	}
}
