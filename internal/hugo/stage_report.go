package hugo

import "context"

// stageReport finishes the report and writes it into the staging root so it
// is promoted together with the site.
func stageReport(_ context.Context, bs *BuildState) error {
	bs.Report.finish(bs.Generator.now())
	if err := bs.Report.Persist(bs.Root); err != nil {
		return newFatalStageError(StageReport, err)
	}
	return nil
}
