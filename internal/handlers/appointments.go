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

// AppointmentHandler handles booking, availability and appointment status
// requests.
type AppointmentHandler struct {
	DB           *gorm.DB
	Bookings     *booking.BookingService
	Availability *booking.AvailabilityService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, bookings *booking.BookingService, availability *booking.AvailabilityService) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Bookings: bookings, Availability: availability}
}

// BookAppointmentRequest represents the request body for booking.
type BookAppointmentRequest struct {
	DoctorID       string `json:"doctorId" binding:"required"`
	Date           string `json:"date" binding:"required"` // "YYYY-MM-DD"
	Time           string `json:"time" binding:"required"` // "HH:MM:SS"
	ReasonForVisit string `json:"reasonForVisit"`
}

// BookAppointment books a slot for the authenticated patient.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	patient, err := patientProfileForUser(h.DB, userID)
	if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if patient == nil {
		utils.NotFound(c, "Patient profile not found for this user")
		return
	}

	var doctor models.Doctor
	if err := h.DB.Preload("User").First(&doctor, "id = ?", req.DoctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}

	appt, err := h.Bookings.Book(c.Request.Context(), booking.BookRequest{
		DoctorID:     doctor.ID,
		PatientID:    patient.ID,
		Date:         req.Date,
		Time:         req.Time,
		Reason:       req.ReasonForVisit,
		PatientEmail: patient.User.Email,
		PatientName:  patient.User.FullName,
		DoctorName:   doctor.User.FullName,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.Created(c, "Appointment booked successfully", appt)
}

// GetAvailability returns the open and booked slots for a doctor on a date.
// Public. Rejections keep empty slot arrays in the payload so clients can
// render an empty day.
func (h *AppointmentHandler) GetAvailability(c *gin.Context) {
	doctorID := c.Query("doctorId")
	date := c.Query("date")
	if doctorID == "" || date == "" {
		utils.ErrorWithData(c, 400, "doctorId and date query parameters are required", emptyAvailability(doctorID, date))
		return
	}

	availability, err := h.Availability.Resolve(c.Request.Context(), doctorID, date)
	if err != nil {
		var dayErr *booking.DayUnavailableError
		var valErr *booking.ValidationError
		switch {
		case errors.As(err, &dayErr):
			payload := emptyAvailability(doctorID, date)
			payload.DayOfWeek = dayErr.Day
			utils.ErrorWithData(c, 400, dayErr.Error(), payload)
		case errors.As(err, &valErr):
			utils.ErrorWithData(c, 400, valErr.Error(), emptyAvailability(doctorID, date))
		default:
			utils.InternalServerError(c, "Failed to resolve availability")
		}
		return
	}

	utils.Success(c, "Availability fetched successfully", availability)
}

func emptyAvailability(doctorID, date string) *booking.DayAvailability {
	return &booking.DayAvailability{
		DoctorID:       doctorID,
		Date:           date,
		AvailableSlots: []string{},
		BookedSlots:    []string{},
	}
}

// GetMyAppointments lists the authenticated user's appointments: a patient
// sees their own bookings, a doctor their own calendar.
func (h *AppointmentHandler) GetMyAppointments(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	var appointments []models.Appointment
	query := h.DB.Order("appointment_date asc, appointment_time asc")

	switch role {
	case models.RolePatient:
		patient, err := patientProfileForUser(h.DB, userID)
		if err != nil {
			utils.InternalServerError(c, "Database error: "+err.Error())
			return
		}
		if patient == nil {
			utils.NotFound(c, "Patient profile not found for this user")
			return
		}
		if err := query.Where("patient_id = ?", patient.ID).Find(&appointments).Error; err != nil {
			utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
			return
		}
	case models.RoleDoctor:
		doctor, err := doctorProfileForUser(h.DB, userID)
		if err != nil {
			utils.InternalServerError(c, "Database error: "+err.Error())
			return
		}
		if doctor == nil {
			utils.NotFound(c, "Doctor profile not found for this user")
			return
		}
		if err := query.Where("doctor_id = ?", doctor.ID).Find(&appointments).Error; err != nil {
			utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
			return
		}
	case models.RoleAdmin:
		if err := query.Find(&appointments).Error; err != nil {
			utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
			return
		}
	default:
		utils.Forbidden(c, "User role not permitted to view appointments")
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// UpdateAppointmentStatusRequest represents the request body for a status
// change.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=completed cancelled no_show"`
}

// UpdateAppointmentStatus applies a status transition: patients cancel their
// own scheduled appointments, doctors mark theirs completed or no_show.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	actor, ok := h.resolveActor(c)
	if !ok {
		return
	}

	appt, err := h.Bookings.UpdateStatus(c.Request.Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.Success(c, "Appointment status updated successfully", appt)
}

// resolveActor builds the explicit caller identity passed into the booking
// service, including the caller's profile id for ownership checks.
func (h *AppointmentHandler) resolveActor(c *gin.Context) (booking.Actor, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return booking.Actor{}, false
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	actor := booking.Actor{UserID: userID, Role: role}
	switch role {
	case models.RolePatient:
		patient, err := patientProfileForUser(h.DB, userID)
		if err != nil {
			utils.InternalServerError(c, "Database error: "+err.Error())
			return booking.Actor{}, false
		}
		if patient == nil {
			utils.NotFound(c, "Patient profile not found for this user")
			return booking.Actor{}, false
		}
		actor.ProfileID = patient.ID
	case models.RoleDoctor:
		doctor, err := doctorProfileForUser(h.DB, userID)
		if err != nil {
			utils.InternalServerError(c, "Database error: "+err.Error())
			return booking.Actor{}, false
		}
		if doctor == nil {
			utils.NotFound(c, "Doctor profile not found for this user")
			return booking.Actor{}, false
		}
		actor.ProfileID = doctor.ID
	}
	return actor, true
}

// respondBookingError maps booking-layer errors onto the HTTP error taxonomy.
// Both conflict detection paths arrive here as the same ErrSlotTaken, so the
// client cannot tell the fast path from the constraint violation.
func respondBookingError(c *gin.Context, err error) {
	var dayErr *booking.DayUnavailableError
	var windowErr *booking.OutsideWindowError
	var valErr *booking.ValidationError

	switch {
	case errors.Is(err, booking.ErrSlotTaken):
		utils.Conflict(c, "Slot already booked")
	case errors.Is(err, booking.ErrPastDate):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, booking.ErrAppointmentNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, booking.ErrInvalidTransition):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, booking.ErrForbidden):
		utils.Forbidden(c, err.Error())
	case errors.As(err, &dayErr), errors.As(err, &windowErr), errors.As(err, &valErr):
		utils.BadRequest(c, err.Error())
	default:
		utils.InternalServerError(c, "Error booking appointment")
	}
}
