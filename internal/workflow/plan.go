package workflow

import (
	"context"

	"assetpress/internal/naming"
	"assetpress/internal/pdfrender"
	"assetpress/internal/scan"
	"assetpress/internal/services"
	"assetpress/internal/target"
)

// PlannedItem is one output a run would produce, without converting anything.
type PlannedItem struct {
	Source string
	Page   int // 0 for single-image sources
	Target string
}

// Plan walks the source tree and resolves the output name for every file and
// page, applying the same slug, prefix, and collision rules as a real run.
// Nothing is written and no lock is taken.
func (r *Runner) Plan(ctx context.Context, sourceDir string) ([]PlannedItem, error) {
	sources, err := scan.Walk(sourceDir, scan.Options{
		Extensions: r.cfg.Convert.Extensions,
		Exclude:    r.cfg.Convert.Exclude,
		SkipDir:    r.cfg.Paths.OutputDir,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "planning", "walk source tree", "", err)
	}

	prefix := naming.NormalizePrefix(r.cfg.Convert.Prefix)
	format := r.cfg.OutputFormat()
	allocator := target.NewAllocator(r.cfg.Paths.OutputDir, target.NewRegistry())

	var planned []PlannedItem
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		base := naming.ApplyPrefix(naming.Slugify(src.Stem), prefix)

		if src.Kind == scan.KindDocument {
			pages, err := pdfrender.PageCount(src.Path)
			if err != nil {
				// Unreadable documents are still listed so the dry run
				// mirrors what a real run would attempt.
				planned = append(planned, PlannedItem{Source: src.Path, Page: 1})
				continue
			}
			for page := 1; page <= pages; page++ {
				planned = append(planned, PlannedItem{
					Source: src.Path,
					Page:   page,
					Target: allocator.Allocate(base+naming.PageSuffix(page), format.Ext()),
				})
			}
			continue
		}

		planned = append(planned, PlannedItem{
			Source: src.Path,
			Target: allocator.Allocate(base, format.Ext()),
		})
	}
	return planned, nil
}
