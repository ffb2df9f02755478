package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webnotes/notesweb/binder"
)

type loginForm struct {
	Identifier string `form:"identifier" json:"identifier"`
	Password   string `form:"password" json:"password"`
	Remember   bool   `form:"remember" json:"-"`
	Skipped    string `form:"-" json:"-"`
}

func TestBindJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes body", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"identifier":"alice","password":"pw"}`))
		r.Header.Set("Content-Type", "application/json; charset=utf-8")

		var f loginForm
		require.NoError(t, binder.BindJSON()(r, &f))
		assert.Equal(t, "alice", f.Identifier)
		assert.Equal(t, "pw", f.Password)
	})

	t.Run("form content type is not applicable", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("identifier=alice"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var f loginForm
		assert.ErrorIs(t, binder.BindJSON()(r, &f), binder.ErrBinderNotApplicable)
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"admin":true}`))
		r.Header.Set("Content-Type", "application/json")

		var f loginForm
		assert.ErrorIs(t, binder.BindJSON()(r, &f), binder.ErrInvalidJSON)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
		r.Header.Set("Content-Type", "application/json")

		var f loginForm
		assert.ErrorIs(t, binder.BindJSON()(r, &f), binder.ErrInvalidJSON)
	})
}

func TestBindForm(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("identifier=alice&password=pw&remember=on&Skipped=x"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var f loginForm
		require.NoError(t, binder.BindForm()(r, &f))
		assert.Equal(t, loginForm{Identifier: "alice", Password: "pw", Remember: true}, f)
	})

	t.Run("json is not applicable", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		r.Header.Set("Content-Type", "application/json")

		var f loginForm
		assert.ErrorIs(t, binder.BindForm()(r, &f), binder.ErrBinderNotApplicable)
	})

	t.Run("bad bool", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("remember=maybe"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var f loginForm
		assert.ErrorIs(t, binder.BindForm()(r, &f), binder.ErrInvalidForm)
	})
}

func TestBindQuery(t *testing.T) {
	t.Parallel()

	var q struct {
		Username string `query:"username"`
		Page     int    `query:"page"`
	}
	r := httptest.NewRequest(http.MethodGet, "/?username=alice&page=2", nil)
	require.NoError(t, binder.BindQuery()(r, &q))
	assert.Equal(t, "alice", q.Username)
	assert.Equal(t, 2, q.Page)

	r = httptest.NewRequest(http.MethodGet, "/?page=two", nil)
	assert.ErrorIs(t, binder.BindQuery()(r, &q), binder.ErrInvalidQuery)
}

func multipartRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.WriteField("note", "hi"))
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPatch, "/", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestGetFile(t *testing.T) {
	t.Parallel()

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()
		r := multipartRequest(t, "profile_picture", "dir/me.png", []byte("png-bytes"))

		f, err := binder.GetFile(r, "profile_picture", 1<<20)
		require.NoError(t, err)
		assert.Equal(t, "me.png", f.Filename)
		assert.Equal(t, []byte("png-bytes"), f.Content)
		assert.EqualValues(t, 9, f.Size)
		assert.NotEmpty(t, f.ContentType)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		r := multipartRequest(t, "", "", nil)

		_, err := binder.GetFile(r, "profile_picture", 0)
		assert.ErrorIs(t, err, binder.ErrMissingFile)
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()
		r := multipartRequest(t, "profile_picture", "me.png", bytes.Repeat([]byte("x"), 64))

		_, err := binder.GetFile(r, "profile_picture", 10)
		assert.ErrorIs(t, err, binder.ErrFileTooLarge)
	})

	t.Run("not multipart", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader("x"))
		r.Header.Set("Content-Type", "text/plain")

		_, err := binder.GetFile(r, "profile_picture", 0)
		assert.ErrorIs(t, err, binder.ErrInvalidFile)
	})
}
