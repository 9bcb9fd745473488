package models

import (
	"fmt"

	"gorm.io/gorm"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// IsValid reports whether s is a known appointment status.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Appointment is a booked slot for a doctor and patient. Date, time, doctor
// and patient never change after creation; only the status moves.
//
// ActiveKey enforces at-most-one non-cancelled appointment per
// (doctor, date, time): it holds "doctor|date|time" while the appointment is
// active and NULL once cancelled, under a unique index. MySQL unique indexes
// ignore NULLs, so any number of cancelled appointments may share a slot
// while a second concurrent active booking hits a duplicate-key error.
type Appointment struct {
	BaseModel
	DoctorID        string            `gorm:"size:36;index;not null" json:"doctorId"`
	PatientID       string            `gorm:"size:36;index;not null" json:"patientId"`
	AppointmentDate string            `gorm:"size:10;not null" json:"appointmentDate"` // "YYYY-MM-DD"
	AppointmentTime string            `gorm:"size:8;not null" json:"appointmentTime"`  // "HH:MM:SS"
	Status          AppointmentStatus `gorm:"size:20;default:'scheduled'" json:"status"`
	ReasonForVisit  string            `gorm:"type:text" json:"reasonForVisit,omitempty"`
	ActiveKey       *string           `gorm:"size:100;uniqueIndex" json:"-"`

	// Relations
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"-"`
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
}

// BeforeSave keeps ActiveKey in sync with the status. Runs on create and on
// every status update.
func (a *Appointment) BeforeSave(tx *gorm.DB) error {
	if a.Status == StatusCancelled {
		a.ActiveKey = nil
		return nil
	}
	key := fmt.Sprintf("%s|%s|%s", a.DoctorID, a.AppointmentDate, a.AppointmentTime)
	a.ActiveKey = &key
	return nil
}

// CanTransitionTo reports whether the status state machine permits moving to
// next. Scheduled is the only non-terminal state; completed, cancelled and
// no_show accept no further transitions.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	allowed := map[AppointmentStatus][]AppointmentStatus{
		StatusScheduled: {StatusCompleted, StatusCancelled, StatusNoShow},
		StatusCompleted: {},
		StatusCancelled: {},
		StatusNoShow:    {},
	}

	for _, s := range allowed[a.Status] {
		if s == next {
			return true
		}
	}
	return false
}
