// Package bridge exposes one session controller to a local presentation
// layer over HTTP. Every mutating route answers with the refreshed read model.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"im-client/internal/middleware"
	"im-client/internal/models"
	"im-client/internal/services"
	"im-client/internal/session"
)

// Handler 封装了桥接服务的 HTTP 处理器方法。
type Handler struct {
	sessions services.SessionService
	logger   *slog.Logger
}

func NewHandler(sessions services.SessionService, logger *slog.Logger) *Handler {
	return &Handler{sessions: sessions, logger: logger}
}

// NewRouter registers every bridge route.
func NewRouter(sessions services.SessionService, logger *slog.Logger) *mux.Router {
	h := NewHandler(sessions, logger)
	r := mux.NewRouter()

	authRouter := r.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	authRouter.HandleFunc("/signup", h.Signup).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.RequireSession(sessions))
	api.HandleFunc("/state", h.State).Methods(http.MethodGet)
	api.HandleFunc("/refresh", h.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/conversation", h.SelectConversation).Methods(http.MethodPut)
	api.HandleFunc("/conversation", h.ClearConversation).Methods(http.MethodDelete)
	api.HandleFunc("/draft", h.SetDraft).Methods(http.MethodPut)
	api.HandleFunc("/messages", h.SendMessage).Methods(http.MethodPost)
	api.HandleFunc("/friend-requests", h.SendFriendRequest).Methods(http.MethodPost)
	api.HandleFunc("/friend-requests/{fromID}/accept", h.respondHandler(true)).Methods(http.MethodPost)
	api.HandleFunc("/friend-requests/{fromID}/reject", h.respondHandler(false)).Methods(http.MethodPost)
	api.HandleFunc("/directory", h.Directory).Methods(http.MethodGet)
	api.HandleFunc("/directory/search", h.Search).Methods(http.MethodGet)
	api.HandleFunc("/notice", h.DismissNotice).Methods(http.MethodDelete)
	api.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)
	return r
}

// CredentialsRequest 是登录与注册请求的结构体。
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=72"`
	Avatar   string `json:"avatar,omitempty" validate:"omitempty,url"`
}

// SelectRequest names the counterpart to open; an empty id clears it.
type SelectRequest struct {
	ID string `json:"id"`
}

type DraftRequest struct {
	Text string `json:"text"`
}

type FriendRequestPayload struct {
	UserID string `json:"userId" validate:"required"`
}

// SearchResponse carries the results of GET /api/directory/search. Results
// is null when the query is too short to search.
type SearchResponse struct {
	Query   string           `json:"query"`
	Results []models.Profile `json:"results"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decode(w, r, &req) {
		return
	}
	ctrl, err := h.sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(w, "login", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, ctrl.Snapshot())
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decode(w, r, &req) {
		return
	}
	ctrl, err := h.sessions.Signup(r.Context(), req.Username, req.Password, req.Avatar)
	if err != nil {
		h.fail(w, "signup", err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, ctrl.Snapshot())
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	withController(w, r, func(ctrl *session.Controller) {
		writeJSONResponse(w, http.StatusOK, ctrl.Snapshot())
	})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	withController(w, r, func(ctrl *session.Controller) {
		h.answer(w, "refresh", ctrl, ctrl.Refresh(r.Context()))
	})
}

func (h *Handler) SelectConversation(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if !decode(w, r, &req) {
		return
	}
	withController(w, r, func(ctrl *session.Controller) {
		h.answer(w, "select conversation", ctrl, ctrl.SelectByID(r.Context(), req.ID))
	})
}

func (h *Handler) ClearConversation(w http.ResponseWriter, r *http.Request) {
	withController(w, r, func(ctrl *session.Controller) {
		h.answer(w, "clear conversation", ctrl, ctrl.Select(r.Context(), nil))
	})
}

func (h *Handler) SetDraft(w http.ResponseWriter, r *http.Request) {
	var req DraftRequest
	if !decode(w, r, &req) {
		return
	}
	withController(w, r, func(ctrl *session.Controller) {
		ctrl.SetDraft(req.Text)
		writeJSONResponse(w, http.StatusOK, ctrl.Snapshot())
	})
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	withController(w, r, func(ctrl *session.Controller) {
		h.answer(w, "send message", ctrl, ctrl.SendMessage(r.Context()))
	})
}

func (h *Handler) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	var req FriendRequestPayload
	if !decode(w, r, &req) {
		return
	}
	withController(w, r, func(ctrl *session.Controller) {
		h.answer(w, "send friend request", ctrl, ctrl.SendFriendRequest(r.Context(), req.UserID))
	})
}

func (h *Handler) respondHandler(accept bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fromID := mux.Vars(r)["fromID"]
		withController(w, r, func(ctrl *session.Controller) {
			h.answer(w, "respond to friend request", ctrl, ctrl.RespondToRequest(r.Context(), fromID, accept))
		})
	}
}

func (h *Handler) Directory(w http.ResponseWriter, r *http.Request) {
	withController(w, r, func(ctrl *session.Controller) {
		writeJSONResponse(w, http.StatusOK, ctrl.Snapshot().Directory)
	})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	withController(w, r, func(ctrl *session.Controller) {
		results, err := ctrl.Search(r.Context(), query)
		if err != nil {
			h.fail(w, "search", err)
			return
		}
		writeJSONResponse(w, http.StatusOK, SearchResponse{Query: query, Results: results})
	})
}

func (h *Handler) DismissNotice(w http.ResponseWriter, r *http.Request) {
	withController(w, r, func(ctrl *session.Controller) {
		ctrl.DismissNotice()
		w.WriteHeader(http.StatusNoContent)
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		h.fail(w, "logout", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// answer writes the read model on success and the mapped error otherwise.
func (h *Handler) answer(w http.ResponseWriter, op string, ctrl *session.Controller, err error) {
	if err != nil {
		h.fail(w, op, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, ctrl.Snapshot())
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	status, message := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("bridge request failed", slog.String("op", op), slog.Any("error", err))
	} else {
		h.logger.Debug("bridge request rejected", slog.String("op", op), slog.Int("status", status), slog.Any("error", err))
	}
	writeJSONError(w, message, status)
}

func withController(w http.ResponseWriter, r *http.Request, fn func(*session.Controller)) {
	ctrl, ok := middleware.ControllerFromContext(r.Context())
	if !ok {
		writeJSONError(w, "未登录", http.StatusUnauthorized)
		return
	}
	fn(ctrl)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// 错误信息使用 JSON 字段名
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into v and validates it.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSONError(w, "请求体无效", http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(v); err != nil {
		writeJSONError(w, validationMessage(err), http.StatusBadRequest)
		return false
	}
	return true
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "请求体无效"
	}
	fe := fieldErrs[0]
	if fe.Param() != "" {
		return fmt.Sprintf("%s: failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag())
}
