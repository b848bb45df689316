package workflow

import (
	"context"
	"image"

	"assetpress/internal/imaging"
	"assetpress/internal/naming"
	"assetpress/internal/pdfrender"
	"assetpress/internal/scan"
	"assetpress/internal/services"
)

// processImage converts a single-image source.
func (s *Session) processImage(ctx context.Context, src scan.Source) Outcome {
	outcome := Outcome{Source: src.Path}

	img, _, err := imaging.Decode(src.Path)
	if err != nil {
		outcome.Err = services.Wrap(services.ErrTransient, "converting", "decode image", "", err)
		return outcome
	}

	path, err := s.writeImage(ctx, img, s.baseName(src.Stem))
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Target = path
	return outcome
}

// processDocument converts a multi-page source, one outcome per page. A page
// failure is recorded and the remaining pages still convert.
func (s *Session) processDocument(ctx context.Context, src scan.Source) []Outcome {
	pages, err := pdfrender.PageCount(src.Path)
	if err != nil {
		return []Outcome{{
			Source: src.Path,
			Err:    services.Wrap(services.ErrTransient, "converting", "open document", "", err),
		}}
	}

	base := s.baseName(src.Stem)
	outcomes := make([]Outcome, 0, pages)
	for page := 1; page <= pages; page++ {
		outcome := Outcome{Source: src.Path, Page: page}

		img, err := s.runner.renderer.RenderPage(ctx, src.Path, page)
		if err != nil {
			outcome.Err = services.Wrap(services.ErrExternalTool, "converting", "render page", "", err)
			outcomes = append(outcomes, outcome)
			continue
		}

		path, err := s.writeImage(ctx, img, base+naming.PageSuffix(page))
		if err != nil {
			outcome.Err = err
			outcomes = append(outcomes, outcome)
			continue
		}
		outcome.Target = path
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// writeImage resizes, normalizes, allocates, and encodes one pixel buffer.
func (s *Session) writeImage(ctx context.Context, img image.Image, base string) (string, error) {
	bounds := img.Bounds()
	width, height := imaging.FitWidth(bounds.Dx(), bounds.Dy(), s.runner.cfg.Convert.TargetWidth)
	img = imaging.Scale(img, width, height)
	img = imaging.Normalize(img, s.format)

	path := s.allocator.Allocate(base, s.format.Ext())
	if err := s.runner.encoder.Encode(ctx, img, s.format, s.runner.cfg.Convert.Quality, path); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "converting", "encode output", "", err)
	}
	return path, nil
}
