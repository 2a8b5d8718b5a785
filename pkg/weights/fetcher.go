// Package weights downloads pretrained model files into the models
// directory, skipping files that are already there.
package weights

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/insanefusion/fusionenv/pkg/util/console"
)

// Status of a single manifest entry after a fetch pass.
type Status int

const (
	Downloaded Status = iota
	Skipped
	Failed
)

// Result reports what happened to one manifest entry.
type Result struct {
	Name   string
	Status Status
	Err    error
}

// Fetcher downloads manifest entries into Dir. One failed download does
// not stop the remaining entries.
type Fetcher struct {
	Dir string

	// Client defaults to http.DefaultClient.
	Client *http.Client

	// Progress renders a byte progress bar per download. Off when
	// stderr isn't a terminal.
	Progress bool
}

// Fetch ensures Dir exists and downloads every entry not already
// present. The returned error covers only the directory; per-file
// outcomes are in the results.
func (f *Fetcher) Fetch(manifest []ModelFile) ([]Result, error) {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("Failed to create %s: %w", f.Dir, err)
	}

	results := make([]Result, 0, len(manifest))
	for _, m := range manifest {
		results = append(results, f.fetchOne(m))
	}
	return results, nil
}

// FailureCount counts failed entries in a fetch pass.
func FailureCount(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Status == Failed {
			n++
		}
	}
	return n
}

func (f *Fetcher) fetchOne(m ModelFile) Result {
	path := filepath.Join(f.Dir, m.Name)
	if info, err := os.Stat(path); err == nil {
		console.Successf("%s already exists (downloaded %s)", m.Name, console.FormatTime(info.ModTime()))
		return Result{Name: m.Name, Status: Skipped}
	}

	console.Infof("📥 Downloading %s...", m.Name)
	if err := f.download(m, path); err != nil {
		console.Errorf("Failed to download %s: %s", m.Name, err)
		return Result{Name: m.Name, Status: Failed, Err: err}
	}
	console.Successf("Downloaded %s", m.Name)
	return Result{Name: m.Name, Status: Downloaded}
}

func (f *Fetcher) download(m ModelFile, path string) error {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(m.URL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	body := resp.Body
	if f.Progress && resp.ContentLength > 0 {
		p := mpb.New(mpb.WithOutput(os.Stderr), mpb.WithWidth(60))
		bar := p.New(resp.ContentLength,
			mpb.BarStyle().Rbound("|"),
			mpb.PrependDecorators(
				decor.Name(m.Name+" "),
				decor.Counters(decor.SizeB1024(0), "% .2f / % .2f"),
			),
			mpb.AppendDecorators(
				decor.EwmaETA(decor.ET_STYLE_GO, 30),
			),
		)
		body = bar.ProxyReader(resp.Body)
		defer func() {
			bar.Abort(true)
			p.Wait()
		}()
	}

	// An interrupted copy leaves a partial file behind; the next run
	// will treat it as present. Delete it by hand to retry.
	if _, err := io.Copy(out, body); err != nil {
		return err
	}
	return out.Close()
}
