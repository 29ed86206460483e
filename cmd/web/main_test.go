package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

const testPage = "<code>{{.SSHCommand}}</code> on {{.SSHHost}}"

func TestLandingPageUsesDisplayHost(t *testing.T) {
	h := newHandler(testPage, "play.example.com", 2222, log.New(io.Discard))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://web.internal:8080/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	want := "<code>ssh -p 2222 play.example.com</code> on play.example.com"
	if rec.Body.String() != want {
		t.Fatalf("body = %q, want %q", rec.Body.String(), want)
	}
}

func TestLandingPageFallsBackToRequestHost(t *testing.T) {
	h := newHandler(testPage, "", 22, log.New(io.Discard))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://evade.example.org:8080/", nil))

	if !strings.Contains(rec.Body.String(), "<code>ssh evade.example.org</code>") {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestLandingPageEscapesHost(t *testing.T) {
	h := newHandler(testPage, "<script>", 2222, log.New(io.Discard))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if strings.Contains(rec.Body.String(), "<script>") {
		t.Fatalf("host not escaped: %q", rec.Body.String())
	}
}

func TestUnknownPathNotFound(t *testing.T) {
	h := newHandler(testPage, "x", 2222, log.New(io.Discard))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
