package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"tutorly/models"
	"tutorly/services/earnings"
	"tutorly/services/schedule"
	"tutorly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler exposes the schedule aggregate over HTTP.
type ScheduleHandler struct {
	Svc      schedule.Service
	Earnings earnings.Service
	Logger   *zap.Logger
}

func NewScheduleHandler(svc schedule.Service, earnSvc earnings.Service, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{Svc: svc, Earnings: earnSvc, Logger: logger}
}

// occurrenceView decorates an occurrence with its Upcoming/Past
// classification, derived from the same end-instant test accrual uses.
type occurrenceView struct {
	models.Occurrence
	Past bool `json:"past"`
}

// GetOccurrences returns the combined occurrence window. Defaults to ±30
// days around today when from/to are omitted.
func (h *ScheduleHandler) GetOccurrences(c *gin.Context) {
	now := time.Now()
	from := now.AddDate(0, 0, -schedule.UIWindowDays)
	to := now.AddDate(0, 0, schedule.UIWindowDays)

	if v := c.Query("from"); v != "" {
		parsed, err := time.ParseInLocation(models.DateLayout, v, now.Location())
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid 'from' date", err.Error())
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.ParseInLocation(models.DateLayout, v, now.Location())
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid 'to' date", err.Error())
			return
		}
		to = parsed
	}

	occurrences := h.Svc.AllOccurrences(c.Request.Context(), from, to)
	views := make([]occurrenceView, 0, len(occurrences))
	for _, occ := range occurrences {
		views = append(views, occurrenceView{Occurrence: occ, Past: occ.IsPast(now)})
	}
	c.JSON(http.StatusOK, gin.H{"occurrences": views})
}

// CheckConflicts reports collisions between candidate weekly slots and the
// existing schedule.
func (h *ScheduleHandler) CheckConflicts(c *gin.Context) {
	var input struct {
		Slots            []models.WeeklyScheduleSlot `json:"slots" binding:"required"`
		ExcludeStudentID string                      `json:"excludeStudentId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	conflicts := h.Svc.DetectConflicts(c.Request.Context(), input.Slots, input.ExcludeStudentID)
	c.JSON(http.StatusOK, gin.H{"conflicts": conflicts})
}

// SuggestSlots offers free gaps for a day of week.
func (h *ScheduleHandler) SuggestSlots(c *gin.Context) {
	day, err := strconv.Atoi(c.Query("day"))
	if err != nil || day < 0 || day > 6 {
		utils.JSONError(c, http.StatusBadRequest, "invalid 'day'", "day must be 0 (Monday) through 6 (Sunday)")
		return
	}
	duration := schedule.DefaultPreferredDuration
	if v := c.Query("duration"); v != "" {
		duration, err = strconv.ParseFloat(v, 64)
		if err != nil || duration <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid 'duration'", "duration must be a positive number of hours")
			return
		}
	}

	suggestions := h.Svc.SuggestSlots(c.Request.Context(), day, duration)
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (h *ScheduleHandler) AddBooking(c *gin.Context) {
	var booking models.Occurrence
	if err := c.ShouldBindJSON(&booking); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Svc.AddBooking(c.Request.Context(), booking)
	if err != nil {
		utils.JSONError(c, http.StatusConflict, "failed to add booking", err.Error())
		return
	}
	h.triggerAccrual(c)
	c.JSON(http.StatusCreated, created)
}

func (h *ScheduleHandler) UpdateBooking(c *gin.Context) {
	var update schedule.BookingUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	updated, err := h.Svc.UpdateBooking(c.Request.Context(), c.Param("id"), update)
	if errors.Is(err, schedule.ErrBookingNotFound) {
		utils.JSONError(c, http.StatusNotFound, "booking not found", c.Param("id"))
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update booking", err.Error())
		return
	}
	h.triggerAccrual(c)
	c.JSON(http.StatusOK, updated)
}

func (h *ScheduleHandler) DeleteBooking(c *gin.Context) {
	err := h.Svc.DeleteBooking(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, schedule.ErrCannotDeleteRecurring):
		utils.JSONError(c, http.StatusUnprocessableEntity, "cannot delete recurring lesson", err.Error())
		return
	case errors.Is(err, schedule.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking not found", c.Param("id"))
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete booking", err.Error())
		return
	}
	h.triggerAccrual(c)
	c.Status(http.StatusNoContent)
}

func (h *ScheduleHandler) AddException(c *gin.Context) {
	var exception models.RecurringException
	if err := c.ShouldBindJSON(&exception); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Svc.AddException(c.Request.Context(), exception)
	if err != nil {
		utils.JSONError(c, http.StatusConflict, "failed to add exception", err.Error())
		return
	}
	h.triggerAccrual(c)
	c.JSON(http.StatusCreated, created)
}

func (h *ScheduleHandler) RemoveException(c *gin.Context) {
	err := h.Svc.RemoveException(c.Request.Context(), c.Param("id"))
	if errors.Is(err, schedule.ErrExceptionNotFound) {
		utils.JSONError(c, http.StatusNotFound, "exception not found", c.Param("id"))
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to remove exception", err.Error())
		return
	}
	h.triggerAccrual(c)
	c.Status(http.StatusNoContent)
}

// triggerAccrual re-evaluates earnings after a schedule mutation, the same
// pass the periodic tick runs.
func (h *ScheduleHandler) triggerAccrual(c *gin.Context) {
	if h.Earnings == nil {
		return
	}
	if _, err := h.Earnings.RunAccrualPass(c.Request.Context(), time.Now()); err != nil {
		h.Logger.Error("mutation-triggered accrual pass failed", zap.Error(err))
	}
}
