package api

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ka2n/ufvdata/api/schema"
	"github.com/ka2n/ufvdata/api/session"
	"github.com/ka2n/ufvdata/log"
	"github.com/morikuni/failure/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingResponse struct {
	OK bool `json:"ok" validate:"eq=true"`
}

func TestClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ssb/ping":
			assert.Equal(t, "a=1; b=2", r.Header.Get("Cookie"))
			assert.Equal(t, "202309", r.URL.Query().Get("term"))
			w.Write([]byte(`{"ok": true}`))
		case "/ssb/invalid":
			w.Write([]byte(`{"ok": false, "extra": 1}`))
		case "/ssb/html":
			w.Write([]byte(`<html>maintenance</html>`))
		default:
			http.Error(w, "nope", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	ctx := context.Background()
	cookies := session.Cookies{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}

	t.Run("Decodes a valid payload", func(t *testing.T) {
		got, resp, err := GetJSON[pingResponse](ctx, c, Request{
			Name:    "ping",
			Path:    "/ssb/ping",
			Query:   map[string]string{"term": "202309"},
			Cookies: cookies,
		})
		require.NoError(t, err)
		require.True(t, got.OK)
		require.Equal(t, http.StatusOK, resp.StatusCode())
	})

	t.Run("Non-200 is a transport error", func(t *testing.T) {
		_, err := c.Get(ctx, Request{Name: "missing", Path: "/ssb/missing"})
		require.Error(t, err)
		require.True(t, failure.Is(err, ErrTransport), "got %v", err)
	})

	t.Run("Shape violations are reported", func(t *testing.T) {
		_, _, err := GetJSON[pingResponse](ctx, c, Request{Name: "invalid", Path: "/ssb/invalid"})
		require.True(t, failure.Is(err, schema.ErrViolation), "got %v", err)
	})

	t.Run("Non-JSON body", func(t *testing.T) {
		_, _, err := GetJSON[pingResponse](ctx, c, Request{Name: "html", Path: "/ssb/html"})
		require.True(t, failure.Is(err, schema.ErrNotJSON), "got %v", err)
	})
}

func TestClientGet_SendsOnlyRequestCookies(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/start" {
			http.SetCookie(w, &http.Cookie{Name: "a", Value: "1", Path: "/"})
			return
		}
		seen = append(seen, r.Header.Get("Cookie"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	resp, err := c.Get(ctx, Request{Name: "start", Path: "/start"})
	require.NoError(t, err)
	extracted, ok := session.Extract(resp.Header())
	require.True(t, ok)

	for _, cookies := range []session.Cookies{nil, {{Name: "a", Value: "2"}}, extracted} {
		_, err := c.Get(ctx, Request{Name: "next", Path: "/next", Cookies: cookies})
		require.NoError(t, err)
	}

	if diff := cmp.Diff([]string{"", "a=2", "a=1"}, seen); diff != "" {
		t.Errorf("Cookie headers mismatch (-want +got):\n%s", diff)
	}
}

type checkedDoc struct {
	Code  string   `json:"code" validate:"min=4"`
	Items []string `json:"items" validate:"dive,min=1"`
}

func TestCheck(t *testing.T) {
	var logs bytes.Buffer
	prev := log.Logger
	log.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	t.Cleanup(func() { log.Logger = prev })

	require.NoError(t, Check("document", checkedDoc{Code: "AB12", Items: []string{"x"}}))
	require.Empty(t, logs.String())

	err := Check("document", checkedDoc{Code: "AB", Items: []string{"x", ""}}, failure.Context{"term": "202309"})
	require.True(t, failure.Is(err, schema.ErrViolation), "got %v", err)
	require.Equal(t, "document failed validation", string(failure.MessageOf(err)))

	got := logs.String()
	require.Contains(t, got, "document failed validation")
	require.Contains(t, got, "code: must be at least 4 characters")
	require.Contains(t, got, "items[1]: must be at least 1 characters")
}

func TestPastTense(t *testing.T) {
	tests := map[string]string{
		"fetch":     "Fetched",
		"configure": "Configured",
	}
	for verb, want := range tests {
		if got := pastTense(verb); got != want {
			t.Errorf("pastTense(%q) = %q, want %q", verb, got, want)
		}
	}
}
