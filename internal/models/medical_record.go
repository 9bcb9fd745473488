package models

import (
	"time"
)

// MedicalRecord is a doctor-authored clinical note for a patient visit.
type MedicalRecord struct {
	BaseModel
	PatientID    string    `gorm:"size:36;index;not null" json:"patientId"`
	DoctorID     string    `gorm:"size:36;index;not null" json:"doctorId"`
	RecordDate   time.Time `json:"recordDate"`
	Diagnosis    string    `gorm:"type:text;not null" json:"diagnosis"`
	Prescription string    `gorm:"type:text" json:"prescription,omitempty"`
	Notes        string    `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"-"`
}
