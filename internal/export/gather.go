package export

import (
	"context"
	"fmt"
	"sync"

	"content-portal/internal/domain/content"
)

// sectionFetch is one independent document fetch in the resolver's fan-out.
type sectionFetch struct {
	Target string // "settings", "pages" or "content"
	ID     string
	Fetch  func(ctx context.Context) (content.SectionData, error)
}

type sectionResult struct {
	Target string
	ID     string
	Data   content.SectionData
	Err    error
}

// gather launches every fetch concurrently and waits for all of them to
// settle. One failing or slow fetch never blocks or fails the others; each
// result carries its own error. Callers fold successes into the bundle and
// route failures to the diagnostic side channel.
func gather(ctx context.Context, fetches []sectionFetch) []sectionResult {
	results := make([]sectionResult, len(fetches))

	var wg sync.WaitGroup
	for i, f := range fetches {
		wg.Add(1)
		go func(i int, f sectionFetch) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = sectionResult{
						Target: f.Target,
						ID:     f.ID,
						Err:    fmt.Errorf("fetch panicked: %v", r),
					}
				}
			}()

			data, err := f.Fetch(ctx)
			results[i] = sectionResult{Target: f.Target, ID: f.ID, Data: data, Err: err}
		}(i, f)
	}
	wg.Wait()

	return results
}
