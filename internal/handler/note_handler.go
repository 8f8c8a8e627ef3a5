package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"reppi/internal/model"
	"reppi/internal/service"
)

// NoteHandler handles note endpoints.
type NoteHandler struct {
	base
	notes service.NoteService
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(notes service.NoteService, log *zap.Logger) *NoteHandler {
	return &NoteHandler{base: newBase(log), notes: notes}
}

// List godoc
// @Summary List notes
// @Description Newest first, each with its category.
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param categoryId query string false "Category ID"
// @Success 200 {array} model.Note
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	notes, err := h.notes.List(c.Request().Context(), identity(c), c.QueryParam("categoryId"))
	if err != nil {
		return h.fail(c, err, "Failed to fetch notes")
	}
	return c.JSON(http.StatusOK, notes)
}

// Create godoc
// @Summary Create a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateNoteInput true "Note"
// @Success 201 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	var req service.CreateNoteInput
	if err := bind(c, &req); err != nil {
		return err
	}

	note, err := h.notes.Create(c.Request().Context(), identity(c), req)
	if err != nil {
		return h.fail(c, err, "Failed to create note")
	}
	return c.JSON(http.StatusCreated, note)
}

// Update godoc
// @Summary Update a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Param request body model.NotePatch true "Fields to change"
// @Success 200 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes/{id} [patch]
func (h *NoteHandler) Update(c echo.Context) error {
	var patch model.NotePatch
	if err := bind(c, &patch); err != nil {
		return err
	}

	note, err := h.notes.Update(c.Request().Context(), identity(c), c.Param("id"), patch)
	if err != nil {
		return h.fail(c, err, "Failed to update note")
	}
	return c.JSON(http.StatusOK, note)
}

// Delete godoc
// @Summary Delete a note
// @Tags notes
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	if err := h.notes.Delete(c.Request().Context(), identity(c), c.Param("id")); err != nil {
		return h.fail(c, err, "Failed to delete note")
	}
	return c.NoContent(http.StatusNoContent)
}
