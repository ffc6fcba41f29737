package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bytedance/sonic"
	errorvalues "github.com/safi/checktick/internal/error_values"
	"github.com/safi/checktick/internal/service"
	"github.com/safi/checktick/pkg/httputil"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type UserSummary struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type LoginResponse struct {
	User UserSummary `json:"user"`
}

func sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	_, err = s.userService.Register(r.Context(), &service.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrEmailTaken) {
			logger.Error("registering error: email already registered")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "Email already registered", nil)
			return
		}
		logger.Error("registering error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during registration", nil)
		return
	}
	httputil.WriteMessageResponse(w, http.StatusCreated, "User created successfully")
	logger.Info("successful registration")
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	user, err := s.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, errorvalues.ErrWrongCredentials) {
			logger.Error("login error: wrong credentials")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}
		logger.Error("login error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during login", nil)
		return
	}
	session, err := s.sessionService.Create(r.Context(), user.ID)
	if err != nil {
		logger.Error("login error: creating session error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating session", nil)
		return
	}
	http.SetCookie(w, sessionCookie(session.Token, 7*24*60*60))
	httputil.WriteJSONResponse(w, http.StatusOK, LoginResponse{
		User: UserSummary{
			UserID: user.ID.String(),
			Email:  user.Email,
			Name:   user.Name,
		},
	})
	logger.Info("successful login")
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, err := GetUserFromContext(r)
	if err != nil {
		logger.Error("get me error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, user)
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	token, err := GetTokenFromRequest(r)
	if err == nil {
		if err = s.sessionService.Revoke(r.Context(), token); err != nil {
			logger.Error("logout error: revoking session error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error revoking session", nil)
			return
		}
	}
	http.SetCookie(w, sessionCookie("", -1))
	httputil.WriteMessageResponse(w, http.StatusOK, "Logged out")
	logger.Info("successful logout")
}

func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, err := GetUserFromContext(r)
	if err != nil {
		logger.Error("change password error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	var req ChangePasswordRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("change password error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	err = s.userService.ChangePassword(r.Context(), user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, errorvalues.ErrWrongCredentials) {
			logger.Error("change password error: wrong current password")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "Incorrect current password", nil)
			return
		}
		logger.Error("change password error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while changing password", nil)
		return
	}
	httputil.WriteMessageResponse(w, http.StatusOK, "Password updated successfully")
	logger.Info("password changed")
}
