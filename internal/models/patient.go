package models

// Patient is the medical profile attached to a user with the patient role.
type Patient struct {
	BaseModel
	UserID      string `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	DateOfBirth string `gorm:"size:10" json:"dateOfBirth,omitempty"` // "YYYY-MM-DD"
	Gender      string `gorm:"size:10" json:"gender,omitempty"`
	BloodGroup  string `gorm:"size:5" json:"bloodGroup,omitempty"`
	Address     string `gorm:"type:text" json:"address,omitempty"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
