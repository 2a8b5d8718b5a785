package weights

// ModelFile is one pretrained weight file in the download manifest.
type ModelFile struct {
	Name string
	URL  string
}

// DefaultManifest lists the MiDaS depth models the Fusion pipeline
// loads at runtime.
var DefaultManifest = []ModelFile{
	{
		Name: "midas_v21_small.pt",
		URL:  "https://github.com/intel-isl/MiDaS/releases/download/v2_1/midas_v21_small-70d51b78.pt",
	},
	{
		Name: "midas_v21.pt",
		URL:  "https://github.com/intel-isl/MiDaS/releases/download/v2_1/midas_v21-f6b98070.pt",
	},
}
