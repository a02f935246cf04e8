package hugo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// fileFingerprint is the content fingerprint used to detect unchanged output.
func fileFingerprint(data []byte) string {
	return mdfp.CalculateFingerprintFromParts("", string(data))
}

// previousFile returns the bytes of rel in the currently promoted output, or
// nil when there is none.
func (g *Generator) previousFile(rel string) []byte {
	// #nosec G304 -- rel is one of the generator's own output paths
	b, err := os.ReadFile(filepath.Join(g.outputDir, filepath.FromSlash(rel)))
	if err != nil {
		return nil
	}
	return b
}

// writeFile stages rel with data. When the promoted output already holds a
// file with the same fingerprint it is hard-linked into staging instead of
// being rewritten, and recorded as skipped.
func (bs *BuildState) writeFile(rel string, data []byte) error {
	g := bs.Generator
	target := filepath.Join(bs.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("create directory for %s: %w", rel, err)
	}

	if prev := g.previousFile(rel); prev != nil && fileFingerprint(prev) == fileFingerprint(data) {
		if err := os.Link(filepath.Join(g.outputDir, filepath.FromSlash(rel)), target); err == nil {
			bs.Report.addFile(rel, metrics.FileSkipped)
			g.recorder.IncFileResult(metrics.FileSkipped)
			g.logger.Debug("Output unchanged", logfields.Path(rel))
			return nil
		}
	}

	// #nosec G306 -- generated site files are public assets
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	bs.Report.addFile(rel, metrics.FileWritten)
	g.recorder.IncFileResult(metrics.FileWritten)
	return nil
}
