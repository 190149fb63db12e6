// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package expense

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/lumo/internal/platform/request"
	"github.com/taibuivan/lumo/internal/platform/respond"
	"github.com/taibuivan/lumo/internal/platform/validate"
	"github.com/taibuivan/lumo/internal/users/auth"
	"github.com/taibuivan/lumo/pkg/pagination"
)

// Handler implements expense-related HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the expense routes onto the given router.
//
// # Endpoints
//   - GET    /        : Lists the owner's expenses (paginated, newest first).
//   - POST   /        : Records an expense.
//   - GET    /summary : Returns the spending summary.
//   - DELETE /{id}    : Deletes an expense.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/summary", handler.summary)
	router.Delete("/{id}", handler.delete)
}

// # Request Payloads

type createExpenseRequest struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	expenses, total, err := handler.service.List(request.Context(), user.ID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Keep the JSON array stable even when the page is empty.
	if expenses == nil {
		expenses = []*Expense{}
	}

	respond.Paginated(writer, expenses, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createExpenseRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	created, err := handler.service.Create(request.Context(), user.ID, CreateInput{
		Category: input.Category,
		Amount:   input.Amount,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

func (handler *Handler) summary(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.service.Summarize(request.Context(), user.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), user.ID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
