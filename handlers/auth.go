package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"bookcatalog/middleware"
	"bookcatalog/models"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the user lookup surface the login handler needs.
type UserStore interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error)
}

type AuthHandler struct {
	DB        UserStore
	JWTSecret string
	// Predefined credentials (from config); used if no user exists yet.
	DefaultEmail string
	DefaultPass  string
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Login checks credentials and issues a token whose claims carry the
// user's subscribed flag, which gates PDF access on book reads.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password required", nil)
		return
	}

	user, err := h.DB.UserByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Login failed", err)
		return
	}
	if user == nil {
		if req.Email != h.DefaultEmail || req.Password != h.DefaultPass {
			writeError(w, http.StatusUnauthorized, "Invalid email or password", nil)
			return
		}
		user, err = h.ensureDefaultUser(r)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Login failed", err)
			return
		}
	} else if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	token, err := h.createToken(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not create token", err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, Email: user.Email})
}

func (h *AuthHandler) ensureDefaultUser(r *http.Request) (*models.User, error) {
	// Check again in case of race
	user, err := h.DB.UserByEmail(r.Context(), h.DefaultEmail)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(h.DefaultPass), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	newUser := &models.User{
		Email:     h.DefaultEmail,
		Password:  string(hash),
		CreatedAt: time.Now(),
	}
	id, err := h.DB.CreateUser(r.Context(), newUser)
	if err != nil {
		return nil, err
	}
	newUser.ID = id
	return newUser, nil
}

func (h *AuthHandler) createToken(user *models.User) (string, error) {
	claims := &middleware.Claims{
		UserID:     user.ID.Hex(),
		Email:      user.Email,
		Subscribed: user.Subscribed,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour * 7)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.JWTSecret))
}
