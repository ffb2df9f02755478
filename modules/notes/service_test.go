package notes_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webnotes/notesweb/modules/notes"
	"github.com/webnotes/notesweb/pkg/backend"
	"github.com/webnotes/notesweb/pkg/backend/backendtest"
)

func setup(t *testing.T) (*notes.Service, *backendtest.Server, string) {
	t.Helper()
	srv := backendtest.New(t)
	token := srv.AddUser(backend.User{Username: "ada"}, "secret")
	srv.AddNote("ada", backend.Note{ID: "n1", Title: "First Note"})
	srv.AddNote("ada", backend.Note{ID: "n2", Title: "Second", Deployed: true, Slug: "second"})
	return notes.NewService(srv.Client(t), notes.NewStore()), srv, token
}

func TestService_List(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("reuses fresh list", func(t *testing.T) {
		t.Parallel()
		svc, srv, token := setup(t)

		first, err := svc.List(ctx, token, false)
		require.NoError(t, err)
		require.Len(t, first, 2)

		_, err = svc.List(ctx, token, false)
		require.NoError(t, err)
		assert.Equal(t, 1, srv.Calls("/notes/list"))

		_, err = svc.List(ctx, token, true)
		require.NoError(t, err)
		assert.Equal(t, 2, srv.Calls("/notes/list"))
	})

	t.Run("concurrent loads share one fetch", func(t *testing.T) {
		t.Parallel()
		svc, srv, token := setup(t)
		srv.Delay("/notes/list", 50*time.Millisecond)

		var wg sync.WaitGroup
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.List(ctx, token, false)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, srv.Calls("/notes/list"))
	})

	t.Run("sessions are separate", func(t *testing.T) {
		t.Parallel()
		svc, srv, token := setup(t)
		other := srv.AddUser(backend.User{Username: "grace"}, "pw")

		_, err := svc.List(ctx, token, false)
		require.NoError(t, err)
		list, err := svc.List(ctx, other, false)
		require.NoError(t, err)
		assert.Empty(t, list)
		assert.NotNil(t, list)
	})

	t.Run("unauthorized is not stored", func(t *testing.T) {
		t.Parallel()
		svc, srv, _ := setup(t)

		_, err := svc.List(ctx, "stale", false)
		assert.ErrorIs(t, err, backend.ErrUnauthorized)
		_, err = svc.List(ctx, "stale", false)
		assert.ErrorIs(t, err, backend.ErrUnauthorized)
		assert.Equal(t, 2, srv.Calls("/notes/list"))
	})
}

func TestService_Deploy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, srv, token := setup(t)

	_, err := svc.List(ctx, token, false)
	require.NoError(t, err)

	updates, cancel := svc.Subscribe(token)
	defer cancel()

	n, err := svc.Deploy(ctx, token, "n1")
	require.NoError(t, err)
	assert.True(t, n.Deployed)
	assert.Equal(t, "first-note", n.Slug)

	select {
	case list := <-updates:
		recent, deployed := notes.Split(list)
		assert.Empty(t, recent)
		assert.Len(t, deployed, 2)
	case <-time.After(time.Second):
		t.Fatal("no update after deploy")
	}

	require.NoError(t, svc.Undeploy(ctx, token, "n2"))
	select {
	case list := <-updates:
		recent, _ := notes.Split(list)
		require.Len(t, recent, 1)
		assert.Equal(t, "n2", recent[0].ID)
	case <-time.After(time.Second):
		t.Fatal("no update after undeploy")
	}

	list, err := svc.List(ctx, token, false)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 1, srv.Calls("/notes/list"))
}

func TestService_DeployErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, srv, token := setup(t)

	_, err := svc.Deploy(ctx, token, "missing")
	assert.ErrorIs(t, err, backend.ErrNotFound)

	srv.Fail("/notes/deploy/n1", http.StatusInternalServerError, "down")
	_, err = svc.Deploy(ctx, token, "n1")
	assert.Equal(t, http.StatusInternalServerError, backend.StatusOf(err))
}

func TestService_Forget(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, srv, token := setup(t)

	_, err := svc.List(ctx, token, false)
	require.NoError(t, err)
	svc.Forget(token)
	_, err = svc.List(ctx, token, false)
	require.NoError(t, err)
	assert.Equal(t, 2, srv.Calls("/notes/list"))
}

func TestSplit(t *testing.T) {
	t.Parallel()
	recent, deployed := notes.Split([]backend.Note{
		{ID: "a"}, {ID: "b", Deployed: true}, {ID: "c"},
	})
	assert.Equal(t, []string{"a", "c"}, []string{recent[0].ID, recent[1].ID})
	assert.Len(t, deployed, 1)
}
