package pages

import (
	"context"
	"log/slog"
	"time"

	"github.com/webnotes/notesweb/pkg/backend"
	"github.com/webnotes/notesweb/pkg/cache"
)

// Public reads the data behind tenant pages through a shared cache, so a
// popular profile costs one backend call per TTL however many visitors
// arrive at once.
type Public struct {
	client   *backend.Client
	profiles *cache.Loader[backend.User]
	lists    *cache.Loader[[]backend.Note]
	notes    *cache.Loader[backend.Note]
}

func NewPublic(client *backend.Client, c cache.Cache, ttl time.Duration, log *slog.Logger) *Public {
	return &Public{
		client:   client,
		profiles: cache.NewLoader[backend.User](c, ttl, cache.WithPrefix("profile:"), cache.WithLogger(log)),
		lists:    cache.NewLoader[[]backend.Note](c, ttl, cache.WithPrefix("notes:"), cache.WithLogger(log)),
		notes:    cache.NewLoader[backend.Note](c, ttl, cache.WithPrefix("note:"), cache.WithLogger(log)),
	}
}

func (p *Public) Profile(ctx context.Context, username string) (backend.User, error) {
	return p.profiles.Load(ctx, username, func(ctx context.Context) (backend.User, error) {
		return p.client.PublicProfile(ctx, username)
	})
}

// Notes returns username's deployed notes.
func (p *Public) Notes(ctx context.Context, username string) ([]backend.Note, error) {
	return p.lists.Load(ctx, username, func(ctx context.Context) ([]backend.Note, error) {
		notes, err := p.client.PublicNotes(ctx, username)
		if err != nil {
			return nil, err
		}
		if notes == nil {
			notes = []backend.Note{}
		}
		return notes, nil
	})
}

func (p *Public) Note(ctx context.Context, username, slug string) (backend.Note, error) {
	return p.notes.Load(ctx, username+"/"+slug, func(ctx context.Context) (backend.Note, error) {
		return p.client.PublicNote(ctx, username, slug)
	})
}
