package backend

import (
	"context"
	"net/http"
)

// ListNotes returns every note of the session's account.
func (c *Client) ListNotes(ctx context.Context, token string) ([]Note, error) {
	var notes []Note
	_, err := c.send(ctx, call{method: http.MethodGet, path: "/notes/list", token: token}, &notes)
	return notes, err
}

func (c *Client) GetNote(ctx context.Context, token, id string) (Note, error) {
	var n Note
	p, err := pathOf("/notes", id)
	if err != nil {
		return n, err
	}
	_, err = c.send(ctx, call{method: http.MethodGet, path: p, token: token}, &n)
	return n, err
}

// Deploy publishes a note and returns it with its slug set.
func (c *Client) Deploy(ctx context.Context, token, id string) (Note, error) {
	var n Note
	p, err := pathOf("/notes/deploy", id)
	if err != nil {
		return n, err
	}
	_, err = c.send(ctx, call{method: http.MethodPost, path: p, token: token}, &n)
	return n, err
}

func (c *Client) Undeploy(ctx context.Context, token, id string) error {
	p, err := pathOf("/notes/deploy", id)
	if err != nil {
		return err
	}
	_, err = c.send(ctx, call{method: http.MethodDelete, path: p, token: token}, nil)
	return err
}

// PublicNote returns a deployed note by its owner and slug.
func (c *Client) PublicNote(ctx context.Context, username, slug string) (Note, error) {
	var n Note
	p, err := pathOf("/notes", username, slug)
	if err != nil {
		return n, err
	}
	_, err = c.send(ctx, call{method: http.MethodGet, path: p}, &n)
	return n, err
}

// PublicNotes returns the deployed notes of username.
func (c *Client) PublicNotes(ctx context.Context, username string) ([]Note, error) {
	var notes []Note
	p, err := pathOf("/notes/list", username)
	if err != nil {
		return nil, err
	}
	_, err = c.send(ctx, call{method: http.MethodGet, path: p}, &notes)
	return notes, err
}
