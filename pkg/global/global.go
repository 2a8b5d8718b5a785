package global

var (
	Version   = "0.1.0"
	BuildTime = "none"
	Commit    = ""
	Verbose   = false

	ConfigFilename = "fusionenv.yaml"

	// MinPythonVersion is the oldest Python interpreter the Fusion
	// pipeline supports.
	MinPythonVersion = "3.8"

	// DefaultEnvName and DefaultEnvPython are the conda environment
	// defaults offered during setup.
	DefaultEnvName   = "insane_fusion"
	DefaultEnvPython = "3.9"

	// DefaultModelsDir is where pretrained weights are placed, relative
	// to the working directory unless overridden.
	DefaultModelsDir = "models"

	UpdateCheckURL = "https://update.insanefusion.dev/v1/check"
)
