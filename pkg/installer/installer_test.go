package installer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/insanefusion/fusionenv/pkg/config"
	"github.com/insanefusion/fusionenv/pkg/python"
)

var testPackages = config.Packages{Extras: []string{"rich"}}

// recordingRunner records every command and fails those listed in fail.
type recordingRunner struct {
	commands []string
	fail     map[string]bool
}

func (r *recordingRunner) Run(command string, description string) bool {
	r.commands = append(r.commands, command)
	return !r.fail[command]
}

// fakeProbe simulates the Python interpreter's view of installed modules.
type fakeProbe struct {
	modules map[string]string
	cuda    string
}

func (f *fakeProbe) Probe(module string) (python.ModuleInfo, error) {
	v, ok := f.modules[module]
	if !ok {
		return python.ModuleInfo{}, errors.New("import " + module + ": ModuleNotFoundError")
	}
	return python.ModuleInfo{Version: v}, nil
}

func (f *fakeProbe) CUDADeviceName() (string, bool) {
	return f.cuda, f.cuda != ""
}

func TestInstallOpenCVCommandsInOrder(t *testing.T) {
	r := &recordingRunner{}
	i := New(r, &fakeProbe{}, nil)

	require.NoError(t, i.InstallOpenCV())
	require.Equal(t, []string{
		"pip install opencv-python",
		"pip install opencv-contrib-python",
	}, r.commands)
}

func TestInstallContinuesPastFailure(t *testing.T) {
	r := &recordingRunner{fail: map[string]bool{"pip install timm": true}}
	i := New(r, &fakeProbe{}, nil)

	err := i.InstallDepthDeps()
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 of 7")
	// Every package after the failed one was still attempted, in order.
	require.Equal(t, []string{
		"pip install timm",
		"pip install einops",
		"pip install scipy",
		"pip install matplotlib",
		"pip install pillow",
		"pip install transforms3d",
		"pip install open3d",
	}, r.commands)
}

func TestInstallPyTorchShortCircuit(t *testing.T) {
	r := &recordingRunner{}
	i := New(r, &fakeProbe{modules: map[string]string{"torch": "2.1.0"}, cuda: "NVIDIA A100"}, nil)

	require.NoError(t, i.InstallPyTorch())
	require.Empty(t, r.commands)
}

func TestInstallPyTorchNoCUDAInstallsAnyway(t *testing.T) {
	r := &recordingRunner{}
	i := New(r, &fakeProbe{modules: map[string]string{"torch": "2.1.0"}}, nil)
	i.GOOS = "linux"

	require.NoError(t, i.InstallPyTorch())
	require.Equal(t, []string{"pip install torch torchvision torchaudio"}, r.commands)
}

func TestInstallPyTorchWindowsUsesCUDAChannel(t *testing.T) {
	r := &recordingRunner{}
	i := New(r, &fakeProbe{}, nil)
	i.GOOS = "windows"

	require.NoError(t, i.InstallPyTorch())
	require.Len(t, r.commands, 1)
	require.Contains(t, r.commands[0], "--index-url "+torchCUDAIndexURL)
}

func TestInstallPyTorchFailureReported(t *testing.T) {
	command := "pip install torch torchvision torchaudio"
	r := &recordingRunner{fail: map[string]bool{command: true}}
	i := New(r, &fakeProbe{}, nil)
	i.GOOS = "linux"

	require.Error(t, i.InstallPyTorch())
}

func TestInstallSplattingDepsCOLMAP(t *testing.T) {
	for goos, want := range map[string]string{
		"linux":  "apt-get",
		"darwin": "brew",
	} {
		r := &recordingRunner{}
		i := New(r, &fakeProbe{}, nil)
		i.GOOS = goos

		require.NoError(t, i.InstallSplattingDeps())
		last := r.commands[len(r.commands)-1]
		require.Contains(t, last, want, goos)
		require.Contains(t, last, "colmap", goos)
	}
}

func TestInstallSplattingDepsSkipsCOLMAPOnWindows(t *testing.T) {
	r := &recordingRunner{}
	i := New(r, &fakeProbe{}, nil)
	i.GOOS = "windows"

	require.NoError(t, i.InstallSplattingDeps())
	for _, c := range r.commands {
		require.NotContains(t, c, "colmap")
	}
}

func TestInstallSplattingDepsCOLMAPFailureIsNotAStepFailure(t *testing.T) {
	r := &recordingRunner{fail: map[string]bool{"sudo apt-get update && sudo apt-get install -y colmap": true}}
	i := New(r, &fakeProbe{}, nil)
	i.GOOS = "linux"

	require.NoError(t, i.InstallSplattingDeps())
}

func TestPackageOverrides(t *testing.T) {
	r := &recordingRunner{}
	i := New(r, &fakeProbe{}, nil)
	i.Overrides = &testPackages

	require.NoError(t, i.InstallExtras())
	require.Equal(t, []string{"pip install rich"}, r.commands)
}

func TestEnvCreatorDeclined(t *testing.T) {
	r := &recordingRunner{}
	e := &EnvCreator{
		Runner: r,
		Name:   "insane_fusion",
		Python: "3.9",
		Ask:    func() (bool, error) { return false, nil },
	}

	require.NoError(t, e.Create())
	require.Empty(t, r.commands)
}

func TestEnvCreatorAccepted(t *testing.T) {
	r := &recordingRunner{}
	e := &EnvCreator{
		Runner: r,
		Name:   "insane_fusion",
		Python: "3.9",
		Ask:    func() (bool, error) { return true, nil },
	}

	require.NoError(t, e.Create())
	require.Equal(t, []string{
		"conda create -n insane_fusion python=3.9 -y",
		"conda activate insane_fusion",
	}, r.commands)
}

func TestEnvCreatorCreateFailureStillRunsActivate(t *testing.T) {
	r := &recordingRunner{fail: map[string]bool{"conda create -n insane_fusion python=3.9 -y": true}}
	e := &EnvCreator{
		Runner: r,
		Name:   "insane_fusion",
		Python: "3.9",
		Ask:    func() (bool, error) { return true, nil },
	}

	require.NoError(t, e.Create())
	require.Len(t, r.commands, 2)
	require.True(t, strings.HasPrefix(r.commands[1], "conda activate"))
}
