package models

// Doctor is the professional profile attached to a user with the doctor role.
type Doctor struct {
	BaseModel
	UserID          string  `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	Specialization  string  `gorm:"size:100;not null" json:"specialization"`
	Bio             string  `gorm:"type:text" json:"bio,omitempty"`
	ConsultationFee float64 `gorm:"type:decimal(10,2)" json:"consultationFee"`
	RoomNumber      string  `gorm:"size:20" json:"roomNumber,omitempty"`

	// Relations
	User      User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Schedules []DoctorSchedule `gorm:"foreignKey:DoctorID" json:"-"`
}
