package export

import (
	"context"
	"errors"
	"sync/atomic"

	"content-portal/internal/domain/client"
	"content-portal/internal/domain/content"
	apperrors "content-portal/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentGetter is the read side of the document store the resolver consumes.
type DocumentGetter interface {
	Get(ctx context.Context, path string) (content.SectionData, error)
}

// ClientGetter looks up the client base record.
type ClientGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error)
}

// SectionFailure records one swallowed per-section fetch failure.
type SectionFailure struct {
	Target string `json:"target"`
	ID     string `json:"id"`
	Error  string `json:"error"`
}

// Result is one resolution: the populated bundle plus the diagnostic side
// channel of per-section failures that were contained rather than propagated.
type Result struct {
	Client   *client.Client
	Bundle   *content.Bundle
	Failures []SectionFailure
}

// Resolver assembles a client's data bundle from every known document
// location. It is safe for concurrent use.
type Resolver struct {
	docs    DocumentGetter
	clients ClientGetter
	logger  *zap.Logger

	// connected flips false when the store itself is unreachable; the UI
	// shows a banner until a successful resolve flips it back.
	connected atomic.Bool
}

func NewResolver(docs DocumentGetter, clients ClientGetter, logger *zap.Logger) *Resolver {
	r := &Resolver{docs: docs, clients: clients, logger: logger}
	r.connected.Store(true)
	return r
}

// Connected reports whether the last store interaction succeeded.
func (r *Resolver) Connected() bool {
	return r.connected.Load()
}

// Resolve fetches the client's base record, then fans out one fetch per known
// settings section, one per known page, and the four special locations, all
// concurrently, joining on all-settled. Individual fetch failures are
// contained; only store-wide faults (permission, connectivity) or a fully
// empty result fail the resolution.
func (r *Resolver) Resolve(ctx context.Context, clientID uuid.UUID) (*Result, error) {
	c, err := r.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, r.structural(err)
	}

	fetches := r.buildFetches(clientID)
	results := gather(ctx, fetches)

	// The caller may have moved on mid-flight; discard late results instead
	// of publishing a half-resolved bundle.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	bundle := content.NewBundle(clientID)
	var failures []SectionFailure
	connectivityFailures := 0

	for _, res := range results {
		if res.Err != nil {
			if errors.Is(res.Err, apperrors.ErrNotFound) {
				continue // section simply not present
			}
			if errors.Is(res.Err, apperrors.ErrPermission) {
				return nil, r.structural(res.Err)
			}
			if errors.Is(res.Err, apperrors.ErrConnectivity) {
				connectivityFailures++
			}
			r.logger.Warn("section fetch failed",
				zap.String("target", res.Target),
				zap.String("section", res.ID),
				zap.Error(res.Err))
			failures = append(failures, SectionFailure{
				Target: res.Target,
				ID:     res.ID,
				Error:  res.Err.Error(),
			})
			continue
		}
		if len(res.Data) == 0 {
			continue
		}

		switch res.Target {
		case "settings":
			bundle.Settings[res.ID] = res.Data
		case "pages":
			bundle.Pages[res.ID] = res.Data
		case "content":
			bundle.Content[res.ID] = res.Data
		}
	}

	// Every fetch failing on connectivity means the store itself is gone,
	// not that sections are missing.
	if connectivityFailures == len(results) && len(results) > 0 {
		return nil, r.structural(apperrors.Connectivity("content store unreachable", nil))
	}

	r.connected.Store(true)

	if bundle.IsEmpty() {
		return nil, apperrors.NoContent("client has not submitted any content yet")
	}

	return &Result{Client: c, Bundle: bundle, Failures: failures}, nil
}

func (r *Resolver) buildFetches(clientID uuid.UUID) []sectionFetch {
	fetches := make([]sectionFetch, 0, len(content.SettingsSectionIDs)+len(content.PageSectionIDs)+4)

	get := func(path string) func(ctx context.Context) (content.SectionData, error) {
		return func(ctx context.Context) (content.SectionData, error) {
			return r.docs.Get(ctx, path)
		}
	}

	for _, id := range content.SettingsSectionIDs {
		fetches = append(fetches, sectionFetch{Target: "settings", ID: id, Fetch: get(settingsPath(clientID, id))})
	}
	for _, id := range content.PageSectionIDs {
		fetches = append(fetches, sectionFetch{Target: "pages", ID: id, Fetch: get(pagePath(clientID, id))})
	}

	fetches = append(fetches,
		sectionFetch{Target: "content", ID: content.SectionBlog, Fetch: get(blogPostsPath(clientID))},
		sectionFetch{Target: "content", ID: content.SectionLandingPages, Fetch: get(landingPagesPath)},
		sectionFetch{Target: "content", ID: content.SectionDiscoveryCall, Fetch: get(discoveryCallPath)},
		sectionFetch{Target: "content", ID: content.SectionUploads, Fetch: get(uploadsPath(clientID))},
	)

	return fetches
}

// structural translates store-wide faults and maintains the connected flag.
func (r *Resolver) structural(err error) error {
	if errors.Is(err, apperrors.ErrConnectivity) {
		r.connected.Store(false)
	}
	return err
}

// SectionData resolves one section from the bundle with the documented
// precedence: settings, then pages, then content, then the per-section legacy
// fallbacks. This table reproduces data migrated across schema versions; the
// order is contract, not tidiness.
func SectionData(b *content.Bundle, id string) (content.SectionData, bool) {
	switch id {
	case "home":
		// home predates the settings tree; page data wins over settings.
		if data, ok := b.Pages[id]; ok {
			return data, true
		}
		if data, ok := b.Settings[id]; ok {
			return data, true
		}
		return nil, false
	case content.SectionImages:
		// Synthesized: the union of image references found anywhere in the
		// bundle, not a single stored document.
		refs := FindImages(map[string]any{
			"settings": b.Settings,
			"pages":    b.Pages,
			"content":  b.Content,
		})
		if len(refs) == 0 {
			return nil, false
		}
		images := make([]any, len(refs))
		for i, ref := range refs {
			images[i] = ref
		}
		return content.SectionData{"images": images}, true
	}

	if data, ok := b.Settings[id]; ok {
		return data, true
	}
	if data, ok := b.Pages[id]; ok {
		return data, true
	}
	if data, ok := b.Content[id]; ok {
		return data, true
	}
	return nil, false
}
