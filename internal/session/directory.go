package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"im-client/internal/auth"
	"im-client/internal/imtypes"
	"im-client/internal/models"

	"github.com/samber/lo"
)

// Directory holds the "all users" listing and the current search result,
// both filtered against the social graph.
type Directory struct {
	session *auth.Session
	gateway imtypes.DirectoryGateway
	graph   *SocialGraph
	opts    Options

	mu        sync.RWMutex
	all       []models.Profile // unfiltered
	query     string
	results   []models.Profile // unfiltered; nil means no active search
	searchGen uint64
	listGen   uint64
}

func NewDirectory(s *auth.Session, gateway imtypes.DirectoryGateway, graph *SocialGraph, opts Options) *Directory {
	return &Directory{session: s, gateway: gateway, graph: graph, opts: opts.withDefaults()}
}

// ListAll fetches every user and returns those not excluded. A failed fetch
// empties the listing. A listing that completes after a newer one started,
// or after Reset, is dropped and the current listing is returned.
func (d *Directory) ListAll(ctx context.Context) ([]models.Profile, error) {
	identity, err := d.session.Identity()
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.listGen++
	gen := d.listGen
	d.mu.Unlock()

	callCtx, cancel := withTimeout(ctx, d.opts.CallTimeout)
	users, err := d.gateway.ListAllUsers(callCtx)
	cancel()
	if err != nil {
		d.opts.Logger.Warn("list users failed", slog.Any("error", err))
		users = nil
		err = communicationError("list users", err, FallbackCommunication)
	}

	d.mu.Lock()
	if gen != d.listGen {
		d.mu.Unlock()
		d.opts.Logger.Debug("discarding stale user listing")
		return d.Listing(), nil
	}
	d.all = users
	d.mu.Unlock()
	return d.filter(identity.ID, users), err
}

// Search runs a display-name search for query. Queries shorter than the
// configured minimum clear the result without a call. The collaborator's
// matches are taken as is and only the exclusion set is applied. A response
// that arrives after a newer query started is dropped and the newer state is
// returned instead.
func (d *Directory) Search(ctx context.Context, query string) ([]models.Profile, error) {
	identity, err := d.session.Identity()
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.searchGen++
	gen := d.searchGen
	d.query = query
	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < d.opts.MinQueryLength {
		d.results = nil
		d.mu.Unlock()
		return nil, nil
	}
	d.mu.Unlock()

	callCtx, cancel := withTimeout(ctx, d.opts.CallTimeout)
	found, err := d.gateway.SearchUsers(callCtx, trimmed)
	cancel()
	if err != nil {
		d.opts.Logger.Warn("search users failed", slog.String("query", trimmed), slog.Any("error", err))
		found = []models.Profile{}
		err = communicationError("search users", err, FallbackCommunication)
	}

	d.mu.Lock()
	if gen != d.searchGen {
		d.mu.Unlock()
		d.opts.Logger.Debug("discarding stale search result", slog.String("query", trimmed))
		return d.SearchResults(), nil
	}
	d.results = found
	d.mu.Unlock()
	return d.filter(identity.ID, found), err
}

// Forget removes id from the cached listing and search result.
func (d *Directory) Forget(id string) {
	drop := func(p models.Profile, _ int) bool { return p.ID != id }

	d.mu.Lock()
	defer d.mu.Unlock()
	d.all = lo.Filter(d.all, drop)
	if d.results != nil {
		d.results = lo.Filter(d.results, drop)
	}
}

// Reset clears the search and the listing.
func (d *Directory) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.searchGen++
	d.listGen++
	d.all = nil
	d.query = ""
	d.results = nil
}

// Listing returns the cached listing filtered against the current graph.
func (d *Directory) Listing() []models.Profile {
	d.mu.RLock()
	all := d.all
	d.mu.RUnlock()
	return d.filter(d.selfID(), all)
}

// SearchResults returns the cached search result filtered against the
// current graph, or nil when no search is active.
func (d *Directory) SearchResults() []models.Profile {
	d.mu.RLock()
	results := d.results
	d.mu.RUnlock()
	if results == nil {
		return nil
	}
	return d.filter(d.selfID(), results)
}

// Query returns the last query passed to Search.
func (d *Directory) Query() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.query
}

func (d *Directory) selfID() string {
	identity, _ := d.session.Identity()
	return identity.ID
}

// filter applies the exclusion set: self, the responder, friends and
// incoming requests. Outgoing pending requests are not known to the client
// and are not excluded.
func (d *Directory) filter(selfID string, users []models.Profile) []models.Profile {
	excluded := d.graph.excluded(selfID)
	out := lo.Filter(users, func(p models.Profile, _ int) bool {
		_, skip := excluded[p.ID]
		return !skip
	})
	if out == nil {
		out = []models.Profile{}
	}
	return out
}
