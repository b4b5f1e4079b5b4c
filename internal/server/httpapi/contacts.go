package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/contacts"
)

// ContactProvider is the slice of the contact service the HTTP layer needs.
type ContactProvider interface {
	List(ctx context.Context, ownerID string, f contacts.Filter) ([]*models.Contact, error)
	Get(ctx context.Context, ownerID, id string) (*models.Contact, error)
	Create(ctx context.Context, ownerID, name, email, phone string, favorite bool) (*models.Contact, error)
	Update(ctx context.Context, ownerID, id, name, email, phone string, favorite bool) (*models.Contact, error)
	Delete(ctx context.Context, ownerID, id string) error
	SetFavorite(ctx context.Context, ownerID, id string, favorite bool) (*models.Contact, error)
}

// ContactHandler serves the /api/contacts endpoints. Every operation is
// scoped to the authenticated user from the request context.
type ContactHandler struct {
	contacts ContactProvider
}

func NewContactHandler(contacts ContactProvider) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

type contactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Favorite bool   `json:"favorite"`
}

type favoriteRequest struct {
	Favorite *bool `json:"favorite"`
}

type contactResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Favorite bool   `json:"favorite"`
}

func toContactResponse(c *models.Contact) contactResponse {
	return contactResponse{
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Favorite: c.Favorite,
	}
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := UserFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var f contacts.Filter
	q := r.URL.Query()
	if v := q.Get("favorite"); v != "" {
		fav, err := strconv.ParseBool(v)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, `"favorite" must be a boolean`)
			return
		}
		f.Favorite = &fav
	}
	if v := q.Get("page"); v != "" {
		f.Page, _ = strconv.Atoi(v)
	}
	if v := q.Get("limit"); v != "" {
		f.Limit, _ = strconv.Atoi(v)
	}

	list, err := h.contacts.List(r.Context(), user.ID, f)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]contactResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toContactResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := UserFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	contact, err := h.contacts.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toContactResponse(contact))
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := UserFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	contact, err := h.contacts.Create(r.Context(), user.ID, req.Name, req.Email, req.Phone, req.Favorite)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toContactResponse(contact))
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, err := UserFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	contact, err := h.contacts.Update(r.Context(), user.ID, chi.URLParam(r, "id"), req.Name, req.Email, req.Phone, req.Favorite)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toContactResponse(contact))
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := UserFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	if err := h.contacts.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "contact deleted")
}

func (h *ContactHandler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	user, err := UserFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Favorite == nil {
		writeMessage(w, http.StatusBadRequest, "missing field favorite")
		return
	}

	contact, err := h.contacts.SetFavorite(r.Context(), user.ID, chi.URLParam(r, "id"), *req.Favorite)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toContactResponse(contact))
}
