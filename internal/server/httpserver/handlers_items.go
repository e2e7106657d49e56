package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/server/auth"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

// ItemService is the item side of the API.
type ItemService interface {
	ItemFinder
	List(ctx context.Context, userID string) ([]models.Item, error)
	Create(ctx context.Context, userID, title, description string) (*models.Item, error)
	Update(ctx context.Context, item *models.Item, patch models.ItemPatch) (*models.Item, error)
	Delete(ctx context.Context, id string) error
}

type createItemRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

type updateItemRequest struct {
	Title       string `json:"title" validate:"max=200"`
	Description string `json:"description" validate:"max=2000"`
}

type itemResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func toItemResponse(it *models.Item) itemResponse {
	return itemResponse{
		ID:          it.ID,
		UserID:      it.UserID,
		Title:       it.Title,
		Description: it.Description,
		CreatedAt:   it.CreatedAt,
	}
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	items, err := s.items.List(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res := make([]itemResponse, 0, len(items))
	for i := range items {
		res = append(res, toItemResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := s.bind(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())
	it, err := s.items.Create(r.Context(), userID, req.Title, req.Description)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(it))
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := s.bind(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	it, _ := ItemFromContext(r.Context())
	updated, err := s.items.Update(r.Context(), it, models.ItemPatch{Title: req.Title, Description: req.Description})
	if err != nil {
		s.fail(w, r, notFoundAs(err, "Item not found"))
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(updated))
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	it, _ := ItemFromContext(r.Context())
	if err := s.items.Delete(r.Context(), it.ID); err != nil {
		s.fail(w, r, notFoundAs(err, "Item not found"))
		return
	}

	writeJSON(w, http.StatusOK, msgResponse{Msg: "Item removed"})
}
