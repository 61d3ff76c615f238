package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"interviewai/internal/interview"
	"interviewai/internal/middleware"
	"interviewai/internal/models"
	"interviewai/internal/repositories"
	"interviewai/internal/utils"
)

const bcryptCost = 10

type quotaReporter interface {
	Quota(ctx context.Context, owner *models.User) (int64, int, int, error)
}

type AuthHandler struct {
	users     UserStore
	quota     quotaReporter
	secret    string
	expiresIn time.Duration
	logger    *zap.Logger
}

func NewAuthHandler(users UserStore, quota quotaReporter, secret string, expiresIn time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:     users,
		quota:     quota,
		secret:    secret,
		expiresIn: expiresIn,
		logger:    logger,
	}
}

func failure(w http.ResponseWriter, status int, message, details string) {
	body := map[string]interface{}{"success": false, "error": message}
	if details != "" {
		body["details"] = details
	}
	utils.JSON(w, status, body)
}

func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.RegisterRequest](r)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		h.logger.Error("Failed to hash password", zap.Error(err))
		failure(w, http.StatusInternalServerError, "Error registering user", err.Error())
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         models.RoleFree,
		IsActive:     true,
	}
	if err := h.users.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			failure(w, http.StatusBadRequest, "User already exists with this email", "")
			return
		}
		h.logger.Error("Failed to create user", zap.Error(err))
		failure(w, http.StatusInternalServerError, "Error registering user", err.Error())
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, user, "User registered successfully")
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.LoginRequest](r)

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			failure(w, http.StatusUnauthorized, "Invalid credentials", "")
			return
		}
		h.logger.Error("Failed to load user for login", zap.Error(err))
		failure(w, http.StatusInternalServerError, "Error logging in", err.Error())
		return
	}
	if !user.IsActive {
		failure(w, http.StatusUnauthorized, "Your account has been deactivated", "")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		failure(w, http.StatusUnauthorized, "Invalid credentials", "")
		return
	}

	h.respondWithToken(w, r, http.StatusOK, user, "Login successful")
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *models.User, message string) {
	token, err := h.issue(user)
	if err != nil {
		h.logger.Error("Failed to sign token", zap.String("user_id", user.ID), zap.Error(err))
		failure(w, http.StatusInternalServerError, "Error issuing token", err.Error())
		return
	}
	view, err := h.view(r, user)
	if err != nil {
		h.logger.Error("Failed to count interviews", zap.String("user_id", user.ID), zap.Error(err))
		failure(w, http.StatusInternalServerError, "Error loading user", err.Error())
		return
	}
	utils.JSON(w, status, map[string]interface{}{
		"success": true,
		"message": message,
		"token":   token,
		"user":    view,
	})
}

func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	view, err := h.view(r, user)
	if err != nil {
		failure(w, http.StatusInternalServerError, "Error fetching user", err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user": struct {
			*models.UserView
			CreatedAt time.Time `json:"createdAt"`
		}{view, user.CreatedAt},
	})
}

func (h *AuthHandler) UpdateDetailsHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpdateDetailsRequest](r)
	current := middleware.CurrentUser(r)

	user, err := h.users.UpdateUser(r.Context(), current.ID, &models.User{Name: req.Name, Email: req.Email, Phone: req.Phone})
	if err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			failure(w, http.StatusBadRequest, "User already exists with this email", "")
			return
		}
		h.logger.Error("Failed to update user", zap.String("user_id", current.ID), zap.Error(err))
		failure(w, http.StatusInternalServerError, "Error updating user details", err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User details updated successfully",
		"user": map[string]interface{}{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
			"role":  user.Role,
		},
	})
}

func (h *AuthHandler) UpdatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpdatePasswordRequest](r)
	user := middleware.CurrentUser(r)

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		failure(w, http.StatusUnauthorized, "Current password is incorrect", "")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		failure(w, http.StatusInternalServerError, "Error updating password", err.Error())
		return
	}
	if err := h.users.UpdatePassword(r.Context(), user.ID, string(hash)); err != nil {
		h.logger.Error("Failed to persist password", zap.String("user_id", user.ID), zap.Error(err))
		failure(w, http.StatusInternalServerError, "Error updating password", err.Error())
		return
	}

	token, err := h.issue(user)
	if err != nil {
		failure(w, http.StatusInternalServerError, "Error issuing token", err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password updated successfully",
		"token":   token,
	})
}

func (h *AuthHandler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		failure(w, http.StatusInternalServerError, "Error fetching users", err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(users),
		"users":   users,
	})
}

func (h *AuthHandler) issue(user *models.User) (string, error) {
	return utils.IssueToken(h.secret, utils.Identity{ID: user.ID, Email: user.Email, Role: string(user.Role)}, h.expiresIn)
}

func (h *AuthHandler) view(r *http.Request, user *models.User) (*models.UserView, error) {
	count, limit, remaining, err := h.quota.Quota(r.Context(), user)
	if err != nil {
		return nil, err
	}
	return &models.UserView{
		ID:                  user.ID,
		Name:                user.Name,
		Email:               user.Email,
		Phone:               user.Phone,
		Role:                user.Role,
		InterviewCount:      count,
		InterviewLimit:      quotaValue(limit),
		RemainingInterviews: quotaValue(remaining),
	}, nil
}

// quotaValue renders interview.Unlimited as "unlimited".
func quotaValue(n int) interface{} {
	if n == interview.Unlimited {
		return "unlimited"
	}
	return n
}

func limitDetails(limit int) string {
	return fmt.Sprintf("Free users can only create %d interviews. Please upgrade to premium for unlimited interviews.", limit)
}
