package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDetectNgrokURLPrefersHTTPS(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tunnels" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"tunnels":[{"public_url":"http://a.ngrok.io","proto":"http"},{"public_url":"https://a.ngrok.io","proto":"https"}]}`))
	}))
	defer srv.Close()

	got, err := detectNgrokURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://a.ngrok.io" {
		t.Errorf("expected https tunnel, got %s", got)
	}
}

func TestDetectNgrokURLStopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tunnels":[]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := detectNgrokURL(ctx, srv.URL); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}
