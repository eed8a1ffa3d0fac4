package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"im-client/internal/services"
	"im-client/internal/session"
)

// contextKey 是用于在 context.Context 中存储值的自定义类型，以避免键冲突。
type contextKey string

// ControllerKey 是用于在上下文中存储会话控制器的键。
const ControllerKey contextKey = "controller"

// RequireSession rejects requests with 401 while nobody is logged in and
// otherwise stores the live controller in the request context.
func RequireSession(sessions services.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctrl, err := sessions.Controller()
			if err != nil {
				writeJSONError(w, "未登录", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ControllerKey, ctrl)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ControllerFromContext 从上下文中获取会话控制器。
func ControllerFromContext(ctx context.Context) (*session.Controller, bool) {
	ctrl, ok := ctx.Value(ControllerKey).(*session.Controller)
	return ctrl, ok && ctrl != nil
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
