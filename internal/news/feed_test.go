package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func rss(n int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>feed</title>`)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `<item><title>Headline %d</title><link>https://example.com/%d</link></item>`, i, i)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func feedServer(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &gotQuery
}

func TestFeed_Latest(t *testing.T) {
	srv, gotQuery := feedServer(t, http.StatusOK, rss(8))

	f := NewFeed("BigBear.ai stock", 5, "")
	f.BaseURL = srv.URL
	items, err := f.Latest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *gotQuery != "BigBear.ai stock" {
		t.Errorf("unexpected query %q", *gotQuery)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}
	if items[0].Title != "Headline 1" || items[4].Link != "https://example.com/5" {
		t.Errorf("unexpected items %+v", items)
	}
}

func TestFeed_Empty(t *testing.T) {
	srv, _ := feedServer(t, http.StatusOK, rss(0))

	f := NewFeed("q", 5, "")
	f.BaseURL = srv.URL
	if _, err := f.Latest(context.Background()); !errors.Is(err, ErrNoNews) {
		t.Errorf("expected ErrNoNews, got %v", err)
	}
}

func TestFeed_HTTPError(t *testing.T) {
	srv, _ := feedServer(t, http.StatusServiceUnavailable, "down")

	f := NewFeed("q", 5, "")
	f.BaseURL = srv.URL
	if _, err := f.Latest(context.Background()); err == nil {
		t.Error("expected error on 503")
	}
}
