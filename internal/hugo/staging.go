package hugo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	if err := bs.Generator.beginStaging(); err != nil {
		return newFatalStageError(StagePrepareOutput, err)
	}
	bs.Root = bs.Generator.stageDir
	return nil
}

// beginStaging creates an isolated sibling directory all stages write into.
func (g *Generator) beginStaging() error {
	parent := filepath.Dir(g.outputDir)
	if err := os.MkdirAll(parent, 0o750); err != nil {
		return err
	}
	stage, err := os.MkdirTemp(parent, filepath.Base(g.outputDir)+".staging-")
	if err != nil {
		return err
	}
	g.stageDir = stage
	g.logger.Debug("Initialized staging directory", logfields.Path(stage))
	return nil
}

// finalizeStaging promotes the staging directory to the output location:
// the existing output moves to <output>.prev, staging is renamed into place
// and the backup is removed.
func (g *Generator) finalizeStaging() error {
	if g.stageDir == "" {
		return fmt.Errorf("no staging directory initialized")
	}
	if _, err := os.Stat(g.stageDir); err != nil {
		return fmt.Errorf("staging directory missing: %w", err)
	}

	prev := g.outputDir + ".prev"
	if err := os.RemoveAll(prev); err != nil {
		return fmt.Errorf("remove stale backup: %w", err)
	}
	if _, err := os.Stat(g.outputDir); err == nil {
		if err := os.Rename(g.outputDir, prev); err != nil {
			return fmt.Errorf("backup existing output: %w", err)
		}
	}
	if err := os.Rename(g.stageDir, g.outputDir); err != nil {
		// Put the previous output back so a failed promotion loses nothing.
		_ = os.Rename(prev, g.outputDir)
		return fmt.Errorf("promote staging: %w", err)
	}
	g.stageDir = ""
	if err := os.RemoveAll(prev); err != nil {
		g.logger.Warn("Failed to remove previous output", logfields.Path(prev), logfields.Error(err))
	}
	g.logger.Info("Promoted staging directory", logfields.Path(g.outputDir))
	return nil
}

// abortStaging removes the staging directory after a failed build.
func (g *Generator) abortStaging() {
	if g.stageDir == "" {
		return
	}
	dir := g.stageDir
	g.stageDir = ""
	if err := os.RemoveAll(dir); err != nil {
		g.logger.Warn("Failed to remove staging directory", logfields.Path(dir), logfields.Error(err))
		return
	}
	g.logger.Debug("Removed staging directory", logfields.Path(dir))
}
