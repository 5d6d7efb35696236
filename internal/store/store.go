// Package store holds the aggregate catalog cache: one coordinated load of
// the four backend collections, converted to view models and published as a
// consistent snapshot for every consumer.
package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aurelle/aurelle-web/internal/api"
	"github.com/aurelle/aurelle-web/internal/catalog"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"
)

// State is the store lifecycle: Uninitialized -> Loading -> Ready on the
// first refresh, Ready -> Loading -> Ready on every later one. There is no
// error terminal state; failed resources degrade to empty collections.
type State int

const (
	Uninitialized State = iota
	Loading
	Ready
)

// Snapshot is one consistent view of the four collections. Refresh replaces
// it wholesale; consumers never observe a half-updated state.
type Snapshot struct {
	Products   []catalog.Product
	Categories []catalog.Category
	Tags       []catalog.Tag
	Banners    []catalog.HeroSlide
}

// Store is the single writable owner of the catalog collections. Consumers
// read snapshots and keep their own selection state; they never write back.
type Store struct {
	client *api.Client

	mu     sync.RWMutex
	snap   Snapshot
	state  State
	latest ulid.ULID
}

func New(client *api.Client) *Store {
	return &Store{client: client}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading reports whether a refresh is in flight and no snapshot has been
// published yet for it.
func (s *Store) Loading() bool {
	return s.State() == Loading
}

// Snapshot returns a copy of the current collections. The backing arrays are
// fresh on every call so callers can never mutate the store's state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Products:   append([]catalog.Product(nil), s.snap.Products...),
		Categories: append([]catalog.Category(nil), s.snap.Categories...),
		Tags:       append([]catalog.Tag(nil), s.snap.Tags...),
		Banners:    append([]catalog.HeroSlide(nil), s.snap.Banners...),
	}
}

// Refresh issues the four public fetches concurrently, converts the results,
// and replaces the snapshot. Each fetch failure is logged and substituted
// with an empty collection so one resource never blocks the other three.
// In-flight requests are not cancelled when a newer refresh starts; instead
// each refresh carries a monotonic token and a superseded refresh discards
// its results at apply time (last write wins).
func (s *Store) Refresh(ctx context.Context) {
	token := s.beginRefresh()

	var (
		rawSlides     []api.HeroSlide
		rawCategories []api.Category
		rawProducts   []api.Product
		rawTags       []api.Tag
	)

	// The group is a plain waitgroup here: fetch errors degrade to empty
	// collections instead of propagating.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slides, err := s.client.FetchHeroSlides(gctx)
		if err != nil {
			slog.Error("failed to fetch hero slides", "error", err)
			return nil
		}
		rawSlides = slides
		return nil
	})
	g.Go(func() error {
		categories, err := s.client.FetchCategories(gctx)
		if err != nil {
			slog.Error("failed to fetch categories", "error", err)
			return nil
		}
		rawCategories = categories
		return nil
	})
	g.Go(func() error {
		products, err := s.client.FetchProducts(gctx, 0, false)
		if err != nil {
			slog.Error("failed to fetch products", "error", err)
			return nil
		}
		rawProducts = products
		return nil
	})
	g.Go(func() error {
		tags, err := s.client.FetchTags(gctx)
		if err != nil {
			slog.Error("failed to fetch tags", "error", err)
			return nil
		}
		rawTags = tags
		return nil
	})
	_ = g.Wait()

	snap := buildSnapshot(rawSlides, rawCategories, rawProducts, rawTags)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.latest {
		// A newer refresh was issued while this one was in flight; it owns
		// the next snapshot.
		slog.Debug("discarding superseded refresh", "token", token.String())
		return
	}
	s.snap = snap
	s.state = Ready

	slog.Info("catalog refreshed",
		"products", len(snap.Products),
		"categories", len(snap.Categories),
		"tags", len(snap.Tags),
		"banners", len(snap.Banners),
	)
}

func (s *Store) beginRefresh() ulid.ULID {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := ulid.Make()
	s.latest = token
	s.state = Loading
	return token
}

// buildSnapshot converts the raw collections and derives the counts that
// converters leave to the caller: category counts from raw category_id
// references and tag counts from raw product tag lists.
func buildSnapshot(rawSlides []api.HeroSlide, rawCategories []api.Category, rawProducts []api.Product, rawTags []api.Tag) Snapshot {
	banners := make([]catalog.HeroSlide, 0, len(rawSlides))
	for _, s := range rawSlides {
		banners = append(banners, catalog.ConvertHeroSlide(s))
	}

	categories := make([]catalog.Category, 0, len(rawCategories))
	for i, c := range rawCategories {
		converted := catalog.ConvertCategory(c, i)
		for _, p := range rawProducts {
			if p.CategoryID != nil && *p.CategoryID == c.ID {
				converted.Count++
			}
		}
		categories = append(categories, converted)
	}

	products := make([]catalog.Product, 0, len(rawProducts))
	for _, p := range rawProducts {
		products = append(products, catalog.ConvertProduct(p))
	}

	tags := make([]catalog.Tag, 0, len(rawTags))
	for _, t := range rawTags {
		count := 0
		for _, p := range rawProducts {
			for _, pt := range p.Tags {
				if pt.ID == t.ID {
					count++
					break
				}
			}
		}
		tags = append(tags, catalog.ConvertTag(t, count))
	}

	return Snapshot{
		Products:   products,
		Categories: categories,
		Tags:       tags,
		Banners:    banners,
	}
}
