package sam

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tepnology/sam-report/internal/config"
	"github.com/tepnology/sam-report/internal/pkg/logger"
)

// FetchError classifies a failed classification-code request. StatusCode is
// the upstream status when the API answered with a non-2xx, zero for
// transport-level failures (timeouts included).
type FetchError struct {
	Label      string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %q opportunities: %v", e.Label, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Result is the raw result list for one classification code, keyed by the
// caller-supplied sheet label.
type Result struct {
	Label         string
	Opportunities []Opportunity
	TotalRecords  int
}

// Fetcher issues one search per configured classification code, in parallel.
type Fetcher struct {
	client *Client
	limit  int
}

// NewFetcher creates a fetcher over the given client. limit caps each
// single-page response.
func NewFetcher(client *Client, limit int) *Fetcher {
	return &Fetcher{client: client, limit: limit}
}

// FetchAll runs every (label, code) query concurrently and waits for all of
// them to settle. Results come back in the caller's pair order so sheet order
// is deterministic. Any single failure fails the whole batch; there is no
// partial-result mode.
func (f *Fetcher) FetchAll(ctx context.Context, from, to time.Time, codes []config.NAICSCode) ([]Result, error) {
	results := make([]Result, len(codes))
	errs := make([]error, len(codes))

	start := time.Now()
	var wg sync.WaitGroup
	for i, pair := range codes {
		wg.Add(1)
		go func(i int, pair config.NAICSCode) {
			defer wg.Done()

			resp, err := f.client.Search(ctx, SearchQuery{
				PostedFrom: from,
				PostedTo:   to,
				Status:     "active",
				Limit:      f.limit,
				NCode:      pair.Code,
			})
			if err != nil {
				fe := &FetchError{Label: pair.Label, Err: err}
				var se *StatusError
				if errors.As(err, &se) {
					fe.StatusCode = se.StatusCode
				}
				errs[i] = fe
				return
			}

			results[i] = Result{
				Label:         pair.Label,
				Opportunities: resp.OpportunitiesData,
				TotalRecords:  resp.TotalRecords,
			}
		}(i, pair)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	logger.Info("fetched opportunities",
		"codes", len(codes),
		"elapsed", time.Since(start).Round(time.Millisecond).String())

	return results, nil
}
