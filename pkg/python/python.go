// Package python locates and inspects the Python interpreter the
// Fusion stack is provisioned into.
package python

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/insanefusion/fusionenv/pkg/global"
	"github.com/insanefusion/fusionenv/pkg/util/files"
)

// PythonEnvVarName overrides interpreter discovery with an explicit path.
const PythonEnvVarName = "FUSIONENV_PYTHON"

// ModuleInfo describes a successfully imported Python module.
type ModuleInfo struct {
	// Version is the module's __version__, or empty if it doesn't have one.
	Version string
}

// Prober checks whether a Python module can be imported.
type Prober interface {
	Probe(module string) (ModuleInfo, error)
}

// Interpreter is a Python executable on the host.
type Interpreter struct {
	Exe string

	// runOutput runs the interpreter and returns stdout. Overridable in tests.
	runOutput func(exe string, args ...string) ([]byte, error)
}

func New(exe string) *Interpreter {
	return &Interpreter{
		Exe: exe,
		runOutput: func(exe string, args ...string) ([]byte, error) {
			return exec.Command(exe, args...).Output()
		},
	}
}

// Find locates the interpreter to provision: the FUSIONENV_PYTHON
// override if set, otherwise the first of python3/python on PATH.
func Find() (*Interpreter, error) {
	if exe := os.Getenv(PythonEnvVarName); exe != "" {
		if !files.IsExecutable(exe) {
			return nil, fmt.Errorf("%s is set to %s, which is not an executable file", PythonEnvVarName, exe)
		}
		return New(exe), nil
	}
	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return New(path), nil
		}
	}
	return nil, fmt.Errorf("No Python interpreter found on PATH. Install Python %s or newer first", global.MinPythonVersion)
}

// Version reports the interpreter's version triple.
func (p *Interpreter) Version() (*goversion.Version, error) {
	out, err := p.runOutput(p.Exe, "-c", `import sys; print("%d.%d.%d" % sys.version_info[:3])`)
	if err != nil {
		return nil, fmt.Errorf("Failed to query %s for its version: %w", p.Exe, err)
	}
	v, err := goversion.NewVersion(strings.TrimSpace(string(out)))
	if err != nil {
		return nil, fmt.Errorf("Failed to parse Python version %q: %w", strings.TrimSpace(string(out)), err)
	}
	return v, nil
}

// CheckMinimum returns an error if v is older than the minimum
// supported interpreter version.
func CheckMinimum(v *goversion.Version, minimum string) error {
	min, err := goversion.NewVersion(minimum)
	if err != nil {
		return err
	}
	if v.LessThan(min) {
		return fmt.Errorf("Python %s+ required. Current version: %s", minimum, v)
	}
	return nil
}

// Probe imports a module in the interpreter and reports its version.
// A failed import returns an error carrying the interpreter's stderr.
func (p *Interpreter) Probe(module string) (ModuleInfo, error) {
	code := fmt.Sprintf("import %s; print(getattr(%s, '__version__', ''))", module, module)
	out, err := p.runOutput(p.Exe, "-c", code)
	if err != nil {
		return ModuleInfo{}, fmt.Errorf("import %s: %s", module, exitErrorDetail(err))
	}
	return ModuleInfo{Version: strings.TrimSpace(string(out))}, nil
}

// CUDADeviceName reports whether torch sees a CUDA device, and its name.
// Any failure (torch missing, no CUDA) reads as "no CUDA".
func (p *Interpreter) CUDADeviceName() (string, bool) {
	code := `import torch
if torch.cuda.is_available():
    print(torch.cuda.get_device_name(0))`
	out, err := p.runOutput(p.Exe, "-c", code)
	if err != nil {
		return "", false
	}
	name := strings.TrimSpace(string(out))
	if name == "" {
		return "", false
	}
	return name, true
}

func exitErrorDetail(err error) string {
	if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		// The last line of a Python traceback is the exception itself.
		lines := strings.Split(stderr, "\n")
		return lines[len(lines)-1]
	}
	return err.Error()
}
