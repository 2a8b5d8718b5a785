package cli

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/insanefusion/fusionenv/pkg/config"
	"github.com/insanefusion/fusionenv/pkg/util/console"
	"github.com/insanefusion/fusionenv/pkg/weights"
)

var downloadModelsDir string

func newDownloadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download pretrained model weights",
		RunE:  runDownload,
		Args:  cobra.NoArgs,
	}

	addModelsDirFlag(cmd, &downloadModelsDir)

	return cmd
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return fetchModels(cfg, downloadModelsDir)
}

// fetchModels downloads the manifest into the models directory. Per-file
// failures are reported in the step error but never abort the run.
func fetchModels(cfg *config.Config, dirFlag string) error {
	dir := cfg.ModelsDir
	if dirFlag != "" {
		dir = dirFlag
	}
	dir, err := homedir.Expand(dir)
	if err != nil {
		return err
	}

	console.Infof("📥 Setting up model weights in %s...", dir)
	fetcher := &weights.Fetcher{
		Dir:      dir,
		Progress: console.IsTTY(os.Stderr),
	}
	results, err := fetcher.Fetch(manifest(cfg))
	if err != nil {
		return err
	}
	if n := weights.FailureCount(results); n > 0 {
		return fmt.Errorf("%d of %d model downloads failed", n, len(results))
	}
	return nil
}

func manifest(cfg *config.Config) []weights.ModelFile {
	if len(cfg.Models) == 0 {
		return weights.DefaultManifest
	}
	manifest := make([]weights.ModelFile, 0, len(cfg.Models))
	for _, m := range cfg.Models {
		manifest = append(manifest, weights.ModelFile{Name: m.Name, URL: m.URL})
	}
	return manifest
}

func addModelsDirFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "models-dir", "o", "", "Directory to download model weights into (defaults to ./models, or models_dir in fusionenv.yaml)")
}
