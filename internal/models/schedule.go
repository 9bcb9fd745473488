package models

// DoctorSchedule is one recurring weekly availability window for a doctor.
// DayOfWeek holds one of the seven capitalized English day names; start and
// end times are "HH:MM:SS" clock values forming a half-open [start, end)
// interval. No two enabled windows for the same doctor and day may overlap.
type DoctorSchedule struct {
	BaseModel
	DoctorID    string `gorm:"size:36;index;not null" json:"doctorId"`
	DayOfWeek   string `gorm:"size:10;not null" json:"dayOfWeek"`
	StartTime   string `gorm:"size:8;not null" json:"startTime"` // "HH:MM:SS"
	EndTime     string `gorm:"size:8;not null" json:"endTime"`
	IsAvailable bool   `gorm:"default:true" json:"isAvailable"`

	// Relations
	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}
