package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hammamsawalma/edusystem/internal/core/ports/services"
	"github.com/hammamsawalma/edusystem/internal/dto"
)

type timeEntryHandler struct {
	entryService portssvc.TimeEntrySvcFacade
}

func newTimeEntryHandler(es portssvc.TimeEntrySvcFacade) *timeEntryHandler {
	return &timeEntryHandler{entryService: es}
}

func registerTimeEntryRoutes(rg *gin.RouterGroup, entryService portssvc.TimeEntrySvcFacade) {
	h := newTimeEntryHandler(entryService)

	entries := rg.Group("/time-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.PUT("/:entry_id", h.updateEntry)
		entries.DELETE("/:entry_id", h.deleteEntry)
	}
}

// createEntry godoc
// @Summary Log worked hours
// @Description The entry total is derived server-side from hours x rate
// @Tags time-entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateTimeEntryRequest true "Entry details"
// @Success 201 {object} dto.Envelope{data=domain.TimeEntry}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /time-entries [post]
func (h *timeEntryHandler) createEntry(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusCreated, entry)
}

// listEntries godoc
// @Summary List time entries in a period
// @Description Teachers only see their own entries
// @Tags time-entries
// @Produce json
// @Param startDate query string false "Period start (YYYY-MM-DD)"
// @Param endDate query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.Envelope{data=[]domain.TimeEntry}
// @Security BearerAuth
// @Router /time-entries [get]
func (h *timeEntryHandler) listEntries(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	period, ok := parsePeriod(c)
	if !ok {
		return
	}

	entries, err := h.entryService.ListEntries(c.Request.Context(), actor, period)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, entries)
}

// getEntry godoc
// @Summary Get a time entry
// @Tags time-entries
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.Envelope{data=domain.TimeEntry}
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /time-entries/{entry_id} [get]
func (h *timeEntryHandler) getEntry(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), actor, c.Param("entry_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, entry)
}

// updateEntry godoc
// @Summary Update a time entry
// @Description The total is re-derived after any change
// @Tags time-entries
// @Accept json
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Param entry body dto.UpdateTimeEntryRequest true "Fields to update"
// @Success 200 {object} dto.Envelope{data=domain.TimeEntry}
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /time-entries/{entry_id} [put]
func (h *timeEntryHandler) updateEntry(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), actor, c.Param("entry_id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, entry)
}

// deleteEntry godoc
// @Summary Delete a time entry
// @Tags time-entries
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /time-entries/{entry_id} [delete]
func (h *timeEntryHandler) deleteEntry(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), actor, c.Param("entry_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	dto.RespondMessage(c, http.StatusOK, "Time entry deleted")
}
