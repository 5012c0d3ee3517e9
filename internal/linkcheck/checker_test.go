package linkcheck_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fwarchive/internal/catalog"
	"fwarchive/internal/linkcheck"
)

func TestCheckReportsLiveAndDeadLinks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/live.zip":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	checker := linkcheck.NewChecker(5*time.Second, 0)

	live := checker.Check(context.Background(), server.URL+"/live.zip")
	if !live.OK || live.StatusCode != http.StatusOK {
		t.Fatalf("live link result = %+v", live)
	}

	dead := checker.Check(context.Background(), server.URL+"/gone.zip")
	if dead.OK {
		t.Fatalf("dead link reported OK: %+v", dead)
	}
	if dead.StatusCode != http.StatusNotFound {
		t.Fatalf("dead link status = %d", dead.StatusCode)
	}
}

func TestCheckFallsBackWhenHeadRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("Range") == "" {
			t.Errorf("fallback GET missing Range header")
		}
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write([]byte{0})
	}))
	t.Cleanup(server.Close)

	checker := linkcheck.NewChecker(5*time.Second, 0)
	result := checker.Check(context.Background(), server.URL+"/fw.zip")
	if !result.OK {
		t.Fatalf("result = %+v", result)
	}
}

func TestCheckEmptyURL(t *testing.T) {
	checker := linkcheck.NewChecker(time.Second, 0)
	result := checker.Check(context.Background(), "")
	if result.OK {
		t.Fatal("empty URL reported OK")
	}
}

func TestCheckEntriesAndBroken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok.zip" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusGone)
	}))
	t.Cleanup(server.Close)

	entries := []catalog.Entry{
		{CanonicalKey: "k1", DownloadURL: server.URL + "/ok.zip"},
		{CanonicalKey: "k2", DownloadURL: server.URL + "/rotated.zip"},
	}
	checker := linkcheck.NewChecker(5*time.Second, 0)
	results := checker.CheckEntries(context.Background(), entries)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	broken := linkcheck.Broken(results)
	if len(broken) != 1 || broken[0].CanonicalKey != "k2" {
		t.Fatalf("broken = %+v", broken)
	}
}
