package foryou

import (
	"net/http"

	"foryou-service/internal/shared/httpx"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

// Protected: personalized "For You" feed for the current user.
func (h *Handler) GetForYouFeed(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	limit := httpx.QueryInt(r, "limit", 0)
	cursor := r.URL.Query().Get("cursor")

	resp, err := h.svc.ForYou(r.Context(), uid, limit, cursor)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, resp, http.StatusOK)
	return nil
}

// Protected: chronological home feed.
func (h *Handler) GetHomeFeed(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	limit := httpx.QueryInt(r, "limit", 0)
	cursor := r.URL.Query().Get("cursor")

	resp, err := h.svc.HomeFeed(r.Context(), uid, limit, cursor)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, resp, http.StatusOK)
	return nil
}
