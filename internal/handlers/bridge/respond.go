package bridge

import (
	"encoding/json"
	"errors"
	"net/http"

	"im-client/internal/auth"
	"im-client/internal/imtypes"
	"im-client/internal/services"
	"im-client/internal/session"
)

// ErrorResponse 是错误响应的通用结构体。
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSONResponse 是一个辅助函数，用于发送 JSON 响应。
func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		// 头部已发送，编码失败时无法再修改状态码
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeJSONError 是一个辅助函数，用于发送 JSON 格式的错误响应。
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSONResponse(w, statusCode, ErrorResponse{Error: message})
}

// errorStatus maps a session or collaborator error to a status code and the
// text to show.
func errorStatus(err error) (int, string) {
	var ve *session.ValidationError
	var ce *session.CommunicationError
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated), errors.Is(err, services.ErrNoSession):
		return http.StatusUnauthorized, "未登录"
	case errors.Is(err, auth.ErrCredentialsRequired):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	case errors.As(err, &ce):
		if ce.Timeout() {
			return http.StatusGatewayTimeout, ce.Message
		}
		return http.StatusBadGateway, ce.Message
	}
	var pe imtypes.PayloadError
	if errors.As(err, &pe) && pe.PayloadMessage() != "" {
		return http.StatusUnprocessableEntity, pe.PayloadMessage()
	}
	return http.StatusInternalServerError, session.FallbackCommunication
}
