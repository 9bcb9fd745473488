package handlers

import (
	"time"

	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MedicalRecordHandler handles doctor-authored clinical notes.
type MedicalRecordHandler struct {
	DB *gorm.DB
}

// NewMedicalRecordHandler creates a new MedicalRecordHandler.
func NewMedicalRecordHandler(db *gorm.DB) *MedicalRecordHandler {
	return &MedicalRecordHandler{DB: db}
}

// CreateMedicalRecordRequest represents the request body for creating a record.
type CreateMedicalRecordRequest struct {
	PatientID    string `json:"patientId" binding:"required"`
	RecordDate   string `json:"recordDate"` // "YYYY-MM-DD", defaults to today
	Diagnosis    string `json:"diagnosis" binding:"required"`
	Prescription string `json:"prescription"`
	Notes        string `json:"notes"`
}

// CreateMedicalRecord creates a record authored by the authenticated doctor.
func (h *MedicalRecordHandler) CreateMedicalRecord(c *gin.Context) {
	var req CreateMedicalRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	doctor, err := doctorProfileForUser(h.DB, userID)
	if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if doctor == nil {
		utils.NotFound(c, "Doctor profile not found for this user")
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	recordDate := time.Now()
	if req.RecordDate != "" {
		parsed, err := time.Parse("2006-01-02", req.RecordDate)
		if err != nil {
			utils.BadRequest(c, "Invalid recordDate format, expected YYYY-MM-DD")
			return
		}
		recordDate = parsed
	}

	record := models.MedicalRecord{
		PatientID:    patient.ID,
		DoctorID:     doctor.ID,
		RecordDate:   recordDate,
		Diagnosis:    req.Diagnosis,
		Prescription: req.Prescription,
		Notes:        req.Notes,
	}
	if err := h.DB.Create(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to create medical record: "+err.Error())
		return
	}

	utils.Created(c, "Medical record created successfully", record)
}

// GetRecordsForPatient lists a patient's records. A patient may only read
// their own; a doctor may read records of any patient they have treated.
func (h *MedicalRecordHandler) GetRecordsForPatient(c *gin.Context) {
	patientID := c.Param("patientId")

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	switch role {
	case models.RolePatient:
		patient, err := patientProfileForUser(h.DB, userID)
		if err != nil {
			utils.InternalServerError(c, "Database error: "+err.Error())
			return
		}
		if patient == nil || patient.ID != patientID {
			utils.Forbidden(c, "Patients can only view their own medical records")
			return
		}
	case models.RoleDoctor, models.RoleAdmin:
		// Doctors and admins may read any patient's history.
	default:
		utils.Forbidden(c, "User role not permitted to view medical records")
		return
	}

	var records []models.MedicalRecord
	if err := h.DB.Where("patient_id = ?", patientID).Order("record_date desc").Find(&records).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medical records: "+err.Error())
		return
	}

	utils.Success(c, "Medical records fetched successfully", records)
}

// UpdateMedicalRecordRequest uses pointer fields for partial updates.
type UpdateMedicalRecordRequest struct {
	Diagnosis    *string `json:"diagnosis"`
	Prescription *string `json:"prescription"`
	Notes        *string `json:"notes"`
}

// UpdateMedicalRecord updates a record owned by the authenticated doctor.
func (h *MedicalRecordHandler) UpdateMedicalRecord(c *gin.Context) {
	record, ok := h.ownedRecord(c)
	if !ok {
		return
	}

	var req UpdateMedicalRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.Diagnosis != nil {
		record.Diagnosis = *req.Diagnosis
	}
	if req.Prescription != nil {
		record.Prescription = *req.Prescription
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}

	if err := h.DB.Save(record).Error; err != nil {
		utils.InternalServerError(c, "Failed to update medical record: "+err.Error())
		return
	}

	utils.Success(c, "Medical record updated successfully", record)
}

// DeleteMedicalRecord deletes a record owned by the authenticated doctor.
func (h *MedicalRecordHandler) DeleteMedicalRecord(c *gin.Context) {
	record, ok := h.ownedRecord(c)
	if !ok {
		return
	}

	if err := h.DB.Delete(record).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete medical record: "+err.Error())
		return
	}

	utils.Success(c, "Medical record deleted successfully", nil)
}

// ownedRecord loads the record in the path and verifies the authenticated
// doctor authored it. Admins bypass the ownership check.
func (h *MedicalRecordHandler) ownedRecord(c *gin.Context) (*models.MedicalRecord, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	var record models.MedicalRecord
	if err := h.DB.First(&record, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medical record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}

	if role == models.RoleAdmin {
		return &record, true
	}

	doctor, err := doctorProfileForUser(h.DB, userID)
	if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return nil, false
	}
	if doctor == nil || record.DoctorID != doctor.ID {
		utils.Forbidden(c, "You can only modify medical records you authored")
		return nil, false
	}

	return &record, true
}
