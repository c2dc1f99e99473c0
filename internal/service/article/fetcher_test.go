package article

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"repurpose/backend/internal/network"
	"repurpose/backend/internal/service/anubis"
)

const challengeBody = `<html><body><script id="anubis_challenge" type="application/json">{"rules":{"algorithm":"fast","difficulty":1},"challenge":{"id":"c1","randomData":"abc"}}</script></body></html>`

func TestHTTPFetcher_Fetch(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/post":
			gotUA = r.UserAgent()
			gotAccept = r.Header.Get("Accept")
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<p>hello</p>"))
		case "/moved":
			http.Redirect(w, r, "/post", http.StatusMovedPermanently)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.Client(), 1024)

	page, err := f.Fetch(context.Background(), srv.URL+"/moved")
	require.NoError(t, err)
	require.Equal(t, "<p>hello</p>", string(page.Body))
	require.Equal(t, "/post", page.URL.Path)
	require.Contains(t, gotUA, "Repurpose")
	require.Contains(t, gotAccept, "text/html")

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	require.ErrorIs(t, err, ErrFetch)
	require.Contains(t, err.Error(), "404")
}

func TestHTTPFetcher_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := NewHTTPFetcher(&http.Client{}, 0).Fetch(context.Background(), addr)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Zero(t, fetchErr.StatusCode)
	require.NotNil(t, fetchErr.Err)
}

func TestHTTPFetcher_BodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 64)))
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(srv.Client(), 16).Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrFetch)
	require.Contains(t, err.Error(), "exceeds 16 bytes")
}

func TestHTTPFetcher_SolvesChallenge(t *testing.T) {
	var passes int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/pass-challenge") {
			atomic.AddInt32(&passes, 1)
			http.SetCookie(w, &http.Cookie{Name: "techaro.lol-anubis-auth", Value: "token", Path: "/"})
			http.Redirect(w, r, "/post", http.StatusFound)
			return
		}
		if strings.Contains(r.Header.Get("Cookie"), "techaro.lol-anubis-auth=token") {
			_, _ = w.Write([]byte("<p>the real post</p>"))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(challengeBody))
	}))
	defer srv.Close()

	solver := anubis.NewSolver(srv.Client(), nil)
	f := NewHTTPFetcher(srv.Client(), 0).WithSolver(solver)

	page, err := f.Fetch(context.Background(), srv.URL+"/post")
	require.NoError(t, err)
	require.Equal(t, "<p>the real post</p>", string(page.Body))

	page, err = f.Fetch(context.Background(), srv.URL+"/post")
	require.NoError(t, err)
	require.Equal(t, "<p>the real post</p>", string(page.Body))
	require.EqualValues(t, 1, atomic.LoadInt32(&passes))
}

func TestHTTPFetcher_ChallengeWithoutSolver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(challengeBody))
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(srv.Client(), 0).Fetch(context.Background(), srv.URL)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, http.StatusForbidden, fetchErr.StatusCode)
}

func TestHTTPFetcher_RejectionPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Access Denied</title></head><body><p>Sorry, you have been blocked.</p>` +
			`<script id="anubis_challenge" type="application/json">null</script></body></html>`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.Client(), 0).WithSolver(anubis.NewSolver(srv.Client(), nil))

	page, err := f.Fetch(context.Background(), srv.URL+"/post")
	require.Nil(t, page)
	require.ErrorIs(t, err, ErrFetch)
	require.ErrorIs(t, err, anubis.ErrRejected)
}

func TestBrowserFetcher_ReportsFinalURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/moved" {
			http.Redirect(w, r, "/post", http.StatusMovedPermanently)
			return
		}
		_, _ = w.Write([]byte("<p>hello</p>"))
	}))
	defer srv.Close()

	f := NewBrowserFetcher(network.NewClientFactory(""), 5*time.Second, 0)

	page, err := f.Fetch(context.Background(), srv.URL+"/moved")
	require.NoError(t, err)
	require.Equal(t, "/post", page.URL.Path)
	require.Contains(t, string(page.Body), "hello")
}

func TestBrowserFetcher_HonorsContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewBrowserFetcher(network.NewClientFactory(""), 30*time.Second, 0).Fetch(ctx, srv.URL+"/slow")
	require.ErrorIs(t, err, ErrFetch)
	require.Less(t, time.Since(start), 10*time.Second)
}
