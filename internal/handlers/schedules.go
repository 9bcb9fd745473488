package handlers

import (
	"errors"

	"clinic-app-server/internal/booking"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ScheduleHandler handles doctors' weekly availability windows.
type ScheduleHandler struct {
	DB        *gorm.DB
	Schedules *booking.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(db *gorm.DB, schedules *booking.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{DB: db, Schedules: schedules}
}

// GetDoctorSchedule returns a doctor's weekly schedule Monday-first. Public.
func (h *ScheduleHandler) GetDoctorSchedule(c *gin.Context) {
	doctorID := c.Param("id")

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	windows, err := h.Schedules.WeeklySchedule(c.Request.Context(), doctorID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch schedule")
		return
	}

	utils.Success(c, "Schedule fetched successfully", windows)
}

// GetMySchedule returns the authenticated doctor's weekly schedule.
func (h *ScheduleHandler) GetMySchedule(c *gin.Context) {
	doctor, ok := h.requireDoctor(c)
	if !ok {
		return
	}

	windows, err := h.Schedules.WeeklySchedule(c.Request.Context(), doctor.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch schedule")
		return
	}

	utils.Success(c, "Schedule fetched successfully", windows)
}

// ScheduleWindowRequest represents the request body for adding or updating a
// schedule window.
type ScheduleWindowRequest struct {
	DayOfWeek   string `json:"dayOfWeek" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime   string `json:"startTime" binding:"required"` // "HH:MM:SS"
	EndTime     string `json:"endTime" binding:"required"`
	IsAvailable *bool  `json:"isAvailable"`
}

// AddWindow creates a schedule window for the authenticated doctor.
func (h *ScheduleHandler) AddWindow(c *gin.Context) {
	doctor, ok := h.requireDoctor(c)
	if !ok {
		return
	}

	var req ScheduleWindowRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	window, err := h.Schedules.AddWindow(c.Request.Context(), doctor.ID, booking.WindowInput{
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	utils.Created(c, "Schedule window added successfully", window)
}

// UpdateWindow updates one of the authenticated doctor's windows.
func (h *ScheduleHandler) UpdateWindow(c *gin.Context) {
	doctor, ok := h.requireDoctor(c)
	if !ok {
		return
	}

	var req ScheduleWindowRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	window, err := h.Schedules.UpdateWindow(c.Request.Context(), doctor.ID, c.Param("id"), booking.WindowInput{
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	utils.Success(c, "Schedule window updated successfully", window)
}

// DeleteWindow removes one of the authenticated doctor's windows.
func (h *ScheduleHandler) DeleteWindow(c *gin.Context) {
	doctor, ok := h.requireDoctor(c)
	if !ok {
		return
	}

	if err := h.Schedules.DeleteWindow(c.Request.Context(), doctor.ID, c.Param("id")); err != nil {
		respondScheduleError(c, err)
		return
	}

	utils.Success(c, "Schedule window deleted successfully", nil)
}

func (h *ScheduleHandler) requireDoctor(c *gin.Context) (*models.Doctor, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}

	doctor, err := doctorProfileForUser(h.DB, userID)
	if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return nil, false
	}
	if doctor == nil {
		utils.NotFound(c, "Doctor profile not found for this user")
		return nil, false
	}
	return doctor, true
}

func respondScheduleError(c *gin.Context, err error) {
	var valErr *booking.ValidationError

	switch {
	case errors.Is(err, booking.ErrInvalidRange),
		errors.Is(err, booking.ErrWindowOverlap),
		errors.Is(err, booking.ErrInvalidDay):
		utils.BadRequest(c, err.Error())
	case errors.As(err, &valErr):
		utils.BadRequest(c, valErr.Error())
	case errors.Is(err, booking.ErrWindowNotFound):
		utils.NotFound(c, err.Error())
	default:
		utils.InternalServerError(c, "Failed to update schedule")
	}
}
