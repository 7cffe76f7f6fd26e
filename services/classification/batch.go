package classification

import (
	"context"

	"snpit/models"
	"snpit/services/catalog"

	"golang.org/x/sync/errgroup"
)

// Outcome is the classification of one file in a batch. Err holds the
// sample's own failure; it does not abort the other samples.
type Outcome struct {
	Path   string
	Result *models.Result
	Err    error
}

// ClassifyFiles classifies the files with at most concurrency of them in
// flight. Outcomes are returned in input order. The returned error is
// only set when ctx is cancelled.
func ClassifyFiles(ctx context.Context, c *catalog.Catalog, paths []string, opts Options, concurrency int) ([]Outcome, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	outcomes := make([]Outcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := ClassifyFile(c, path, opts)
			outcomes[i] = Outcome{Path: path, Result: result, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}
