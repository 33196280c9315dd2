package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type AuthHandler struct {
	users    *infraRepo.UserGormRepository
	sessions session.Store
	dns      validators.Resolver
	config   *config.Config
	log      *zap.Logger
}

func NewAuthHandler(
	users *infraRepo.UserGormRepository,
	sessions session.Store,
	dns validators.Resolver,
	cfg *config.Config,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		dns:      dns,
		config:   cfg,
		log:      log,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(ctx, h.dns, email) {
		httperr.BadRequest(c, "invalid_email_domain", httperr.Message("invalid_email_domain"))
		return
	}

	_, err := h.users.FindByEmail(ctx, email)
	if err == nil {
		httperr.BadRequest(c, "email_already_exists", httperr.Message("email_already_exists"))
		return
	}
	if !errors.Is(err, httperr.ErrNotFound) {
		httperr.Respond(c, h.log, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := h.users.Create(ctx, &user); err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "email_already_exists", httperr.Message("email_already_exists"))
			return
		}
		httperr.Respond(c, h.log, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, &user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.users.FindByEmail(c.Request.Context(), email)
	if errors.Is(err, httperr.ErrNotFound) {
		httperr.Unauthorized(c, "invalid_credentials", httperr.Message("invalid_credentials"))
		return
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", httperr.Message("invalid_credentials"))
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

// Logout closes the session. Its token stops authenticating and the active
// company is forgotten.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Delete(c.Request.Context(), middleware.SessionID(c)); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --------- JWT ---------

// Every login opens a fresh session, so a new token starts without an
// active company.
func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User) {
	sid := uuid.NewString()
	if err := session.Open(c.Request.Context(), h.sessions, sid, user.ID); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	token, err := middleware.IssueToken(h.config.JWTSecret, user.ID, sid, h.config.SessionTTL)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(status, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
		"token": token,
	})
}
