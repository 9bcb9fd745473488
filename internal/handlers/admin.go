package handlers

import (
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler handles administrator operations.
type AdminHandler struct {
	DB *gorm.DB
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

// CreateDoctorRequest represents the request body for creating a doctor
// account with its professional profile.
type CreateDoctorRequest struct {
	FullName        string  `json:"fullName" binding:"required"`
	Email           string  `json:"email" binding:"required,email"`
	Password        string  `json:"password" binding:"required,min=8"`
	PhoneNumber     string  `json:"phoneNumber"`
	Specialization  string  `json:"specialization" binding:"required"`
	Bio             string  `json:"bio"`
	ConsultationFee float64 `json:"consultationFee" binding:"gte=0"`
	RoomNumber      string  `json:"roomNumber"`
}

// CreateDoctor creates a doctor user and profile in one transaction.
func (h *AdminHandler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existingUser models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.BadRequest(c, "User with this email already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user := models.User{
		FullName:    req.FullName,
		Email:       req.Email,
		Role:        models.RoleDoctor,
		PhoneNumber: req.PhoneNumber,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	var doctor models.Doctor
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		doctor = models.Doctor{
			UserID:          user.ID,
			Specialization:  req.Specialization,
			Bio:             req.Bio,
			ConsultationFee: req.ConsultationFee,
			RoomNumber:      req.RoomNumber,
		}
		return tx.Create(&doctor).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create doctor: "+err.Error())
		return
	}

	doctor.User = user
	utils.Created(c, "Doctor created successfully", doctor)
}

// PlatformStats is the admin statistics payload.
type PlatformStats struct {
	Doctors      int64            `json:"doctors"`
	Patients     int64            `json:"patients"`
	Appointments int64            `json:"appointments"`
	ByStatus     map[string]int64 `json:"appointmentsByStatus"`
}

// GetStats returns platform-wide counts.
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats := PlatformStats{ByStatus: map[string]int64{}}

	if err := h.DB.Model(&models.Doctor{}).Count(&stats.Doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to compute stats: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.Patient{}).Count(&stats.Patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to compute stats: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.Appointment{}).Count(&stats.Appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to compute stats: "+err.Error())
		return
	}

	for _, status := range []models.AppointmentStatus{
		models.StatusScheduled, models.StatusCompleted, models.StatusCancelled, models.StatusNoShow,
	} {
		var count int64
		if err := h.DB.Model(&models.Appointment{}).Where("status = ?", status).Count(&count).Error; err != nil {
			utils.InternalServerError(c, "Failed to compute stats: "+err.Error())
			return
		}
		stats.ByStatus[string(status)] = count
	}

	utils.Success(c, "Stats fetched successfully", stats)
}
