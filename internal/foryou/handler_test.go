package foryou

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foryou-service/internal/shared/httpx"
	"foryou-service/internal/shared/jwt"
)

type stubService struct {
	gotViewer string
	gotLimit  int
	gotCursor string
	resp      *FeedResponse
	err       error
}

func (s *stubService) ForYou(_ context.Context, viewerID string, limit int, cursor string) (*FeedResponse, error) {
	s.gotViewer, s.gotLimit, s.gotCursor = viewerID, limit, cursor
	return s.resp, s.err
}

func (s *stubService) HomeFeed(_ context.Context, viewerID string, limit int, cursor string) (*FeedResponse, error) {
	s.gotViewer, s.gotLimit, s.gotCursor = viewerID, limit, cursor
	return s.resp, s.err
}

func newTestMux(svc Service) *http.ServeMux {
	h := NewHandler(svc)
	mux := http.NewServeMux()
	mux.Handle("GET /posts/foryou", httpx.AuthMiddleware(httpx.Wrap(h.GetForYouFeed)))
	mux.Handle("GET /posts/feed", httpx.AuthMiddleware(httpx.Wrap(h.GetHomeFeed)))
	return mux
}

func bearer(t *testing.T, uid string) string {
	t.Helper()
	tok, err := jwt.Sign(uid, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + tok
}

func TestGetForYouFeedOK(t *testing.T) {
	stub := &stubService{resp: &FeedResponse{Items: []FeedItem{}}}
	mux := newTestMux(stub)

	req := httptest.NewRequest(http.MethodGet, "/posts/foryou?limit=15&cursor=abc", nil)
	req.Header.Set("Authorization", bearer(t, "viewer-42"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if stub.gotViewer != "viewer-42" {
		t.Errorf("viewer = %q, want viewer-42", stub.gotViewer)
	}
	if stub.gotLimit != 15 || stub.gotCursor != "abc" {
		t.Errorf("limit/cursor = %d/%q, want 15/abc", stub.gotLimit, stub.gotCursor)
	}

	var body FeedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if body.Items == nil {
		t.Error(`"items" must be an empty array, not null`)
	}
	if body.NextCursor != nil {
		t.Errorf("nextCursor = %v, want null", *body.NextCursor)
	}
}

func TestGetForYouFeedRequiresAuth(t *testing.T) {
	mux := newTestMux(&stubService{resp: &FeedResponse{}})

	req := httptest.NewRequest(http.MethodGet, "/posts/foryou", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/posts/foryou", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", rec.Code)
	}
}

// Store failures surface as one opaque server error, never a partial page.
func TestGetForYouFeedStoreFailureIsOpaque500(t *testing.T) {
	stub := &stubService{err: errors.New("pq: connection refused")}
	mux := newTestMux(stub)

	req := httptest.NewRequest(http.MethodGet, "/posts/foryou", nil)
	req.Header.Set("Authorization", bearer(t, "viewer-42"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var apiErr httpx.APIError
	if err := json.Unmarshal(rec.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("bad error body: %v", err)
	}
	if apiErr.Error != "server error" {
		t.Errorf("error = %q, want the opaque %q", apiErr.Error, "server error")
	}
}

func TestGetHomeFeedOK(t *testing.T) {
	next := "2026-02-01T00:00:00Z"
	stub := &stubService{resp: &FeedResponse{Items: []FeedItem{{ID: "p1"}}, NextCursor: &next}}
	mux := newTestMux(stub)

	req := httptest.NewRequest(http.MethodGet, "/posts/feed", nil)
	req.Header.Set("Authorization", bearer(t, "viewer-7"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if stub.gotViewer != "viewer-7" || stub.gotLimit != 0 {
		t.Errorf("viewer/limit = %q/%d, want viewer-7/0", stub.gotViewer, stub.gotLimit)
	}
}
