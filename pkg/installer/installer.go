// Package installer drives pip and the OS package manager to install
// the Fusion stack's Python dependencies.
package installer

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/insanefusion/fusionenv/pkg/config"
	"github.com/insanefusion/fusionenv/pkg/python"
	"github.com/insanefusion/fusionenv/pkg/shell"
	"github.com/insanefusion/fusionenv/pkg/util/console"
)

// pythonProbe is the part of python.Interpreter the installer needs:
// import probing for the PyTorch short-circuit.
type pythonProbe interface {
	Probe(module string) (python.ModuleInfo, error)
	CUDADeviceName() (string, bool)
}

// Installer installs the five package groups. Failures are reported per
// package and never stop the remaining packages in a group.
type Installer struct {
	Runner shell.Runner
	Python pythonProbe

	// GOOS selects the OS-conditional branches. Defaults to runtime.GOOS.
	GOOS string

	// Overrides replaces built-in package groups per fusionenv.yaml.
	Overrides *config.Packages
}

func New(runner shell.Runner, py pythonProbe, overrides *config.Packages) *Installer {
	return &Installer{
		Runner:    runner,
		Python:    py,
		Overrides: overrides,
	}
}

func (i *Installer) goos() string {
	if i.GOOS != "" {
		return i.GOOS
	}
	return runtime.GOOS
}

// InstallPyTorch installs torch, torchvision and torchaudio with a
// single pip command. If torch already imports and sees a CUDA device
// there is nothing to do.
func (i *Installer) InstallPyTorch() error {
	console.Info("🔥 Installing PyTorch...")

	if _, err := i.Python.Probe("torch"); err == nil {
		if name, ok := i.Python.CUDADeviceName(); ok {
			console.Successf("PyTorch with CUDA already installed (%s)", name)
			return nil
		}
	}

	command := "pip install " + strings.Join(i.group(pytorchPackages, i.overridesPyTorch()), " ")
	if i.goos() == "windows" {
		command += " --index-url " + torchCUDAIndexURL
	}
	if !i.Runner.Run(command, "Installing PyTorch") {
		return fmt.Errorf("PyTorch installation failed")
	}
	return nil
}

// InstallOpenCV installs the OpenCV packages.
func (i *Installer) InstallOpenCV() error {
	return i.installPackages(i.group(opencvPackages, i.overridesOpenCV()))
}

// InstallDepthDeps installs the MiDaS depth-estimation dependencies.
func (i *Installer) InstallDepthDeps() error {
	return i.installPackages(i.group(depthPackages, i.overridesDepth()))
}

// InstallSplattingDeps installs the Gaussian Splatting dependencies,
// then tries COLMAP through the OS package manager. COLMAP is optional:
// its failure never fails the step.
func (i *Installer) InstallSplattingDeps() error {
	console.Info("🎬 Installing Gaussian Splatting dependencies...")
	err := i.installPackages(i.group(splattingPackages, i.overridesSplatting()))

	switch i.goos() {
	case "linux":
		i.Runner.Run("sudo apt-get update && sudo apt-get install -y colmap", "Installing COLMAP (Linux)")
	case "darwin":
		i.Runner.Run("brew install colmap", "Installing COLMAP (macOS)")
	default:
		console.Warnf("COLMAP installation skipped on %s - manual installation required", i.goos())
	}

	return err
}

// InstallExtras installs the remaining processing packages.
func (i *Installer) InstallExtras() error {
	return i.installPackages(i.group(extraPackages, i.overridesExtras()))
}

// installPackages runs one pip command per package, in order,
// continuing past failures.
func (i *Installer) installPackages(packages []string) error {
	failed := 0
	for _, pkg := range packages {
		if !i.Runner.Run("pip install "+pkg, "Installing "+pkg) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d packages failed to install", failed, len(packages))
	}
	return nil
}

func (i *Installer) group(defaults, override []string) []string {
	if len(override) > 0 {
		return override
	}
	return defaults
}

func (i *Installer) overridesPyTorch() []string {
	if i.Overrides == nil {
		return nil
	}
	return i.Overrides.PyTorch
}

func (i *Installer) overridesOpenCV() []string {
	if i.Overrides == nil {
		return nil
	}
	return i.Overrides.OpenCV
}

func (i *Installer) overridesDepth() []string {
	if i.Overrides == nil {
		return nil
	}
	return i.Overrides.Depth
}

func (i *Installer) overridesSplatting() []string {
	if i.Overrides == nil {
		return nil
	}
	return i.Overrides.Splatting
}

func (i *Installer) overridesExtras() []string {
	if i.Overrides == nil {
		return nil
	}
	return i.Overrides.Extras
}
