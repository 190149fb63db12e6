// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assistant

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/lumo/internal/platform/request"
	"github.com/taibuivan/lumo/internal/platform/respond"
	"github.com/taibuivan/lumo/internal/platform/validate"
	"github.com/taibuivan/lumo/internal/users/auth"
)

// # JSON Field Identifiers

const (
	FieldMessage = "message"
)

// MaxChatMessageLength bounds a single chat message.
const MaxChatMessageLength = 4000

// Handler implements assistant-related HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the assistant routes onto the given router.
//
// # Endpoints
//   - POST /suggest        : Next-action suggestion from tasks + spending.
//   - POST /analyze-budget : Financial analysis of recorded expenses.
//   - POST /prioritize     : Priority order for pending tasks.
//   - POST /chat           : Free-form chat with conversation memory.
//
// All endpoints return 503 when AI features are disabled.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/suggest", handler.suggest)
	router.Post("/analyze-budget", handler.analyzeBudget)
	router.Post("/prioritize", handler.prioritize)
	router.Post("/chat", handler.chat)
}

// # Request Payloads

type chatRequest struct {
	Message string `json:"message"`
}

func (handler *Handler) suggest(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	suggestion, err := handler.service.Suggest(request.Context(), user.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"suggestion": suggestion})
}

func (handler *Handler) analyzeBudget(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	analysis, err := handler.service.AnalyzeBudget(request.Context(), user.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"analysis": analysis})
}

func (handler *Handler) prioritize(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	priorities, err := handler.service.PrioritizeTasks(request.Context(), user.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"priorities": priorities})
}

func (handler *Handler) chat(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input chatRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldMessage, input.Message).
		MaxLen(FieldMessage, input.Message, MaxChatMessageLength)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	reply, err := handler.service.Chat(request.Context(), user.ID, input.Message)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"response": reply})
}
