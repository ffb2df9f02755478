package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

// PublicProfile returns the public part of username's account.
func (c *Client) PublicProfile(ctx context.Context, username string) (User, error) {
	var u User
	p, err := pathOf("/profile", username)
	if err != nil {
		return u, err
	}
	_, err = c.send(ctx, call{method: http.MethodGet, path: p}, &u)
	return u, err
}

func (c *Client) UpdateDescription(ctx context.Context, token, description string) error {
	body, err := jsonBody(map[string]string{"description": description})
	if err != nil {
		return err
	}
	_, err = c.send(ctx, call{
		method:      http.MethodPatch,
		path:        "/profile/description",
		token:       token,
		body:        body,
		contentType: "application/json",
	}, nil)
	return err
}

// UpdateProfilePicture uploads a new picture as multipart field
// "profile_picture".
func (c *Client) UpdateProfilePicture(ctx context.Context, token string, up Upload) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="profile_picture"; filename=%q`, up.Filename))
	ct := up.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)

	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("backend: build upload: %w", err)
	}
	if _, err := part.Write(up.Data); err != nil {
		return fmt.Errorf("backend: build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("backend: build upload: %w", err)
	}

	_, err = c.send(ctx, call{
		method:      http.MethodPatch,
		path:        "/profile/profile-picture",
		token:       token,
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}, nil)
	return err
}

func (c *Client) RemoveProfilePicture(ctx context.Context, token string) error {
	_, err := c.send(ctx, call{method: http.MethodDelete, path: "/profile/profile-picture", token: token}, nil)
	return err
}
