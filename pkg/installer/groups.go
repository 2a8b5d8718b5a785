package installer

// Package groups for each Fusion subsystem, installed in listed order.

// pytorchPackages is installed as a single pip command so the packages
// resolve against the same distribution channel.
var pytorchPackages = []string{"torch", "torchvision", "torchaudio"}

// torchCUDAIndexURL is the CUDA-enabled wheel channel used on Windows,
// where the default channel ships CPU-only builds.
const torchCUDAIndexURL = "https://download.pytorch.org/whl/cu118"

var opencvPackages = []string{
	"opencv-python",
	"opencv-contrib-python",
}

// depthPackages are the MiDaS depth-estimation dependencies.
var depthPackages = []string{
	"timm",
	"einops",
	"scipy",
	"matplotlib",
	"pillow",
	"transforms3d",
	"open3d",
}

// splattingPackages are the Gaussian Splatting dependencies. COLMAP is
// handled separately through the OS package manager.
var splattingPackages = []string{
	"plyfile",
	"tqdm",
	"numpy",
	"scipy",
	"matplotlib",
	"imageio",
	"configargparse",
}

var extraPackages = []string{
	"ffmpeg-python",
	"imageio-ffmpeg",
	"scikit-image",
	"scikit-learn",
	"trimesh",
	"pymeshlab",
}
