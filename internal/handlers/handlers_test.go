package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestHomePage(t *testing.T) {
	r := newTestRouter(t, nil)
	rec := get(r, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`action="/api/qr"`, `name="moduleSize" value="15"`, `<option value="skip2" selected>`, `value="#000000"`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func TestGenericToast(t *testing.T) {
	r := newTestRouter(t, nil)
	form := url.Values{"title": {"Copied"}, "description": {"Link copied"}, "variant": {"warning"}, "dismissible": {"on"}}
	req := httptest.NewRequest(http.MethodPost, "/api/htmx/toast", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected html, got %s", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{"Copied", "Link copied", "border-yellow-500", "data-toast-dismiss"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected toast to contain %q, got %s", want, body)
		}
	}
}

func TestSitemapXML(t *testing.T) {
	r := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	req.Host = "qr.example.com"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<loc>https://qr.example.com/</loc>") {
		t.Errorf("unexpected sitemap: %s", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	req.Host = "localhost:8080"
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), "<loc>http://localhost:8080/</loc>") {
		t.Errorf("expected http for local host: %s", rec.Body.String())
	}
}
