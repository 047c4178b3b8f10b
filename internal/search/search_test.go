package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/iconforge/iconforge/internal/log"
)

func TestWebSearcher_Search(t *testing.T) {
	mux := http.NewServeMux()
	var server *httptest.Server

	mux.HandleFunc("/images/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "star icon" {
			t.Errorf("q = %q, want 'star icon'", r.URL.Query().Get("q"))
		}
		fmt.Fprintf(w, `<html><body>
			<img src="%s/img/a.png">
			<img src="%s/img/b.png">
			<img src="data:image/gif;base64,xyz">
		</body></html>`, server.URL, server.URL)
	})
	mux.HandleFunc("/img/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("png bytes"))
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	dir := t.TempDir()
	s := NewWebSearcher(Options{
		BaseURL:     server.URL + "/images/search?q=%s",
		MaxResults:  5,
		PerSecond:   100,
		DownloadDir: dir,
	}, log.NewNop())

	paths, err := s.Search(context.Background(), "star icon")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d downloads, want 2 (data URI must be skipped)", len(paths))
	}
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("reading %s: %v", p, err)
		}
		if string(content) != "png bytes" {
			t.Errorf("%s content = %q", p, content)
		}
	}
}

func TestWebSearcher_MaxResults(t *testing.T) {
	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/images/search", func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i < 10; i++ {
			fmt.Fprintf(w, `<img src="%s/img/%d.png">`, server.URL, i)
		}
	})
	mux.HandleFunc("/img/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	s := NewWebSearcher(Options{
		BaseURL:     server.URL + "/images/search?q=%s",
		MaxResults:  3,
		PerSecond:   100,
		DownloadDir: t.TempDir(),
	}, log.NewNop())

	paths, err := s.Search(context.Background(), "gear")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(paths) != 3 {
		t.Errorf("got %d downloads, want 3", len(paths))
	}
}

func TestWebSearcher_EmptyKeyword(t *testing.T) {
	s := NewWebSearcher(Options{}, log.NewNop())
	if _, err := s.Search(context.Background(), "   "); err == nil {
		t.Error("expected error for empty keyword")
	}
}
