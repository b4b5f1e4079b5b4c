package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

// UserProvider is the slice of the user service the HTTP layer needs.
type UserProvider interface {
	SignUp(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context, userID string) error
	Current(ctx context.Context, userID string) (*models.User, error)
	UpdateSubscription(ctx context.Context, userID, subscription string) (*models.User, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// UserHandler serves the /api/users endpoints.
type UserHandler struct {
	users UserProvider
}

func NewUserHandler(users UserProvider) *UserHandler {
	return &UserHandler{users: users}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
}

type loginResponse struct {
	User  signupResponse `json:"user"`
	Token string         `json:"token"`
}

type currentResponse struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
}

type subscriptionRequest struct {
	Subscription string `json:"subscription"`
}

func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeMessage(w, http.StatusConflict, "Email in use")
			return
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, signupResponse{
		ID:           user.ID,
		Email:        user.Email,
		Subscription: user.Subscription,
	})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// the trailing spaces below are part of the published contract
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusBadRequest, "The user does not exist ")
			return
		}
		if errors.Is(err, common.ErrorUnauthorized) {
			writeMessage(w, http.StatusUnauthorized, "Email or password is wrong ")
			return
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		User: signupResponse{
			ID:           user.ID,
			Email:        user.Email,
			Subscription: user.Subscription,
		},
		Token: token,
	})
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, err := UserFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	if err := h.users.Logout(r.Context(), user.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	user, err := UserFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	writeJSON(w, http.StatusOK, currentResponse{
		Email:        user.Email,
		Subscription: user.Subscription,
	})
}

func (h *UserHandler) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	user, err := UserFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.users.UpdateSubscription(r.Context(), user.ID, req.Subscription)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, currentResponse{
		Email:        updated.Email,
		Subscription: updated.Subscription,
	})
}
