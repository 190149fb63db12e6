// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/lumo/internal/platform/request"
	"github.com/taibuivan/lumo/internal/platform/respond"
	"github.com/taibuivan/lumo/internal/platform/validate"
	"github.com/taibuivan/lumo/internal/users/auth"
	"github.com/taibuivan/lumo/pkg/pagination"
)

// Handler implements task-related HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the task routes onto the given router.
//
// # Endpoints
//   - GET    /     : Lists the owner's tasks (paginated, newest first).
//   - POST   /     : Creates a task.
//   - PATCH  /{id} : Partially updates a task (title and/or completed).
//   - DELETE /{id} : Deletes a task.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)
}

// # Request Payloads

type createTaskRequest struct {
	Title string `json:"title"`
}

type updateTaskRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	tasks, total, err := handler.service.List(request.Context(), user.ID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Keep the JSON array stable even when the page is empty.
	if tasks == nil {
		tasks = []*Task{}
	}

	respond.Paginated(writer, tasks, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createTaskRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	created, err := handler.service.Create(request.Context(), user.ID, CreateInput{Title: input.Title})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateTaskRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	updated, err := handler.service.Update(request.Context(), user.ID, requestutil.ID(request, "id"), UpdateInput{
		Title:     input.Title,
		Completed: input.Completed,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
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
