package notes

import (
	"context"
	"log/slog"
	"slices"

	"github.com/webnotes/notesweb/pkg/backend"
	"github.com/webnotes/notesweb/pkg/logger"
	"github.com/webnotes/notesweb/pkg/store"
)

// Store holds each session's note list.
type Store = store.Store[store.SessionKey, []backend.Note]

// NewStore returns an empty Store.
func NewStore(opts ...store.Option) *Store {
	return store.New[store.SessionKey, []backend.Note](opts...)
}

// Service serves a session's notes from its Store, going to the backend
// when the list is stale or a refresh is asked for. Deployment changes are
// applied to the stored list and pushed to subscribers.
type Service struct {
	client *backend.Client
	store  *Store
	log    *slog.Logger
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(client *backend.Client, st *Store, opts ...Option) *Service {
	if st == nil {
		st = NewStore()
	}
	s := &Service{client: client, store: st, log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the session's notes. force skips the stored list.
func (s *Service) List(ctx context.Context, token string, force bool) ([]backend.Note, error) {
	return s.store.Load(ctx, store.KeyForToken(token), force, func(ctx context.Context) ([]backend.Note, error) {
		notes, err := s.client.ListNotes(ctx, token)
		if err != nil {
			return nil, err
		}
		if notes == nil {
			notes = []backend.Note{}
		}
		return notes, nil
	})
}

func (s *Service) Get(ctx context.Context, token, id string) (backend.Note, error) {
	return s.client.GetNote(ctx, token, id)
}

// Deploy publishes a note and returns it as the backend now has it.
func (s *Service) Deploy(ctx context.Context, token, id string) (backend.Note, error) {
	n, err := s.client.Deploy(ctx, token, id)
	if err != nil {
		return backend.Note{}, err
	}
	n.Deployed = true
	s.apply(token, id, func(cur backend.Note) backend.Note {
		if n.ID == "" {
			cur.Deployed = true
			return cur
		}
		return n
	})
	return n, nil
}

func (s *Service) Undeploy(ctx context.Context, token, id string) error {
	if err := s.client.Undeploy(ctx, token, id); err != nil {
		return err
	}
	s.apply(token, id, func(cur backend.Note) backend.Note {
		cur.Deployed = false
		return cur
	})
	return nil
}

// apply replaces note id in the stored list. Nothing is stored when there
// is no fresh list or it lacks the note.
func (s *Service) apply(token, id string, fn func(backend.Note) backend.Note) {
	s.store.Update(store.KeyForToken(token), func(list []backend.Note, ok bool) ([]backend.Note, bool) {
		if !ok {
			return nil, false
		}
		i := slices.IndexFunc(list, func(n backend.Note) bool { return n.ID == id })
		if i < 0 {
			return nil, false
		}
		next := slices.Clone(list)
		next[i] = fn(next[i])
		return next, true
	})
}

// Subscribe streams every new list stored for the session.
func (s *Service) Subscribe(token string) (<-chan []backend.Note, func()) {
	return s.store.Subscribe(store.KeyForToken(token))
}

// Forget drops the session's list, e.g. on logout.
func (s *Service) Forget(token string) {
	s.store.Invalidate(store.KeyForToken(token))
}

// Split partitions notes into recent (not deployed) and deployed ones,
// keeping their order.
func Split(notes []backend.Note) (recent, deployed []backend.Note) {
	for _, n := range notes {
		if n.Deployed {
			deployed = append(deployed, n)
		} else {
			recent = append(recent, n)
		}
	}
	return recent, deployed
}
