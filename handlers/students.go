package handlers

import (
	"errors"
	"net/http"
	"time"

	"tutorly/models"
	"tutorly/services/earnings"
	"tutorly/services/student"
	"tutorly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StudentHandler exposes roster management over HTTP.
type StudentHandler struct {
	Svc      student.Service
	Earnings earnings.Service
	Logger   *zap.Logger
}

func NewStudentHandler(svc student.Service, earnSvc earnings.Service, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{Svc: svc, Earnings: earnSvc, Logger: logger}
}

func (h *StudentHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"students": h.Svc.List(c.Request.Context())})
}

func (h *StudentHandler) Get(c *gin.Context) {
	st, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, student.ErrStudentNotFound) {
		utils.JSONError(c, http.StatusNotFound, "student not found", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *StudentHandler) Add(c *gin.Context) {
	var st models.Student
	if err := c.ShouldBindJSON(&st); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Svc.Add(c.Request.Context(), st)
	if err != nil {
		utils.JSONError(c, http.StatusConflict, "failed to add student", err.Error())
		return
	}
	h.triggerAccrual(c)
	c.JSON(http.StatusCreated, created)
}

func (h *StudentHandler) Update(c *gin.Context) {
	var update student.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	updated, err := h.Svc.Update(c.Request.Context(), c.Param("id"), update)
	if errors.Is(err, student.ErrStudentNotFound) {
		utils.JSONError(c, http.StatusNotFound, "student not found", c.Param("id"))
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update student", err.Error())
		return
	}
	h.triggerAccrual(c)
	c.JSON(http.StatusOK, updated)
}

func (h *StudentHandler) Remove(c *gin.Context) {
	err := h.Svc.Remove(c.Request.Context(), c.Param("id"))
	if errors.Is(err, student.ErrStudentNotFound) {
		utils.JSONError(c, http.StatusNotFound, "student not found", c.Param("id"))
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to remove student", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StudentHandler) triggerAccrual(c *gin.Context) {
	if h.Earnings == nil {
		return
	}
	if _, err := h.Earnings.RunAccrualPass(c.Request.Context(), time.Now()); err != nil {
		h.Logger.Error("mutation-triggered accrual pass failed", zap.Error(err))
	}
}
