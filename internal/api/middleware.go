package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	errorvalues "github.com/safi/checktick/internal/error_values"
	"github.com/safi/checktick/pkg/entity"
	"github.com/safi/checktick/pkg/httputil"
)

const sessionCookieName = "session_token"

type contextKey string

var (
	requestIDContextKey = contextKey("Request-ID")
	loggerContextKey    = contextKey("Logger")
	userContextKey      = contextKey("User")
)

func (s *Server) RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.New()
		ctx := context.WithValue(r.Context(), requestIDContextKey, reqID.String())
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) SettingUpLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.Default()
		reqID, ok := r.Context().Value(requestIDContextKey).(string)
		if ok && reqID != "" {
			logger = logger.With(slog.String("request_id", reqID))
		}
		logger = logger.With(slog.String("from", r.RemoteAddr))
		ctx := context.WithValue(r.Context(), loggerContextKey, logger)
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) LoggerExtensionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLoggerFromCtx(r.Context())
		user, ok := r.Context().Value(userContextKey).(*entity.User)
		if ok && user != nil {
			logger = logger.With(slog.String("uid", user.ID.String()))
		}
		ctx := context.WithValue(r.Context(), loggerContextKey, logger)
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}

// AuthMiddleware resolves the session token to a user and stores it in the
// request context. Every failure mode surfaces as the same generic 401.
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLoggerFromCtx(r.Context())
		token, err := GetTokenFromRequest(r)
		if err != nil {
			logger.Error("auth failed: no session token")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "not authenticated", nil)
			return
		}
		user, err := s.sessionService.Resolve(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, errorvalues.ErrSessionNotFound), errors.Is(err, errorvalues.ErrSessionExpired):
				logger.Error("auth failed: invalid or expired session")
				httputil.WriteErrorResponse(w, http.StatusUnauthorized, "invalid or expired session", nil)
				return
			default:
				logger.Error("auth failed: internal error while resolving session", slog.String("error", err.Error()))
				httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error resolving session", nil)
				return
			}
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}

func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerContextKey).(*slog.Logger)
	if ok {
		return logger
	}
	return slog.Default()
}

// GetTokenFromRequest extracts the raw session token, cookie first, bearer
// header as fallback.
func GetTokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errorvalues.ErrSessionNotFound
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errorvalues.ErrSessionNotFound
	}
	return parts[1], nil
}

func GetUserFromContext(r *http.Request) (*entity.User, error) {
	user, ok := r.Context().Value(userContextKey).(*entity.User)
	if !ok || user == nil {
		return nil, errors.New("user invalid or doesn't exist in context")
	}
	return user, nil
}
