package python

import (
	"errors"
	"testing"

	goversion "github.com/hashicorp/go-version"
	"github.com/stretchr/testify/require"
)

func fakeInterpreter(stdout string, err error) *Interpreter {
	return &Interpreter{
		Exe: "python3",
		runOutput: func(exe string, args ...string) ([]byte, error) {
			return []byte(stdout), err
		},
	}
}

func TestVersion(t *testing.T) {
	p := fakeInterpreter("3.11.4\n", nil)
	v, err := p.Version()
	require.NoError(t, err)
	require.Equal(t, "3.11.4", v.String())
}

func TestVersionUnparseable(t *testing.T) {
	p := fakeInterpreter("Python bogus\n", nil)
	_, err := p.Version()
	require.Error(t, err)
}

func TestCheckMinimum(t *testing.T) {
	for _, tt := range []struct {
		version string
		ok      bool
	}{
		{"3.7.9", false},
		{"2.7.18", false},
		{"3.8.0", true},
		{"3.8.17", true},
		{"3.12.1", true},
	} {
		v, err := goversion.NewVersion(tt.version)
		require.NoError(t, err)
		err = CheckMinimum(v, "3.8")
		if tt.ok {
			require.NoError(t, err, tt.version)
		} else {
			require.Error(t, err, tt.version)
		}
	}
}

func TestProbe(t *testing.T) {
	p := fakeInterpreter("2.1.0\n", nil)
	info, err := p.Probe("torch")
	require.NoError(t, err)
	require.Equal(t, "2.1.0", info.Version)
}

func TestProbeNoVersionAttribute(t *testing.T) {
	p := fakeInterpreter("\n", nil)
	info, err := p.Probe("plyfile")
	require.NoError(t, err)
	require.Equal(t, "", info.Version)
}

func TestProbeImportError(t *testing.T) {
	p := fakeInterpreter("", errors.New("exit status 1"))
	_, err := p.Probe("torch")
	require.Error(t, err)
	require.Contains(t, err.Error(), "import torch")
}

func TestCUDADeviceName(t *testing.T) {
	p := fakeInterpreter("NVIDIA GeForce RTX 3090\n", nil)
	name, ok := p.CUDADeviceName()
	require.True(t, ok)
	require.Equal(t, "NVIDIA GeForce RTX 3090", name)

	p = fakeInterpreter("", errors.New("exit status 1"))
	_, ok = p.CUDADeviceName()
	require.False(t, ok)

	p = fakeInterpreter("\n", nil)
	_, ok = p.CUDADeviceName()
	require.False(t, ok)
}
