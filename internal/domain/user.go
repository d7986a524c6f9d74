package domain

import "time"

// User is the domain model for athletes and applicants.
type User struct {
	ID              int64
	FullName        string
	IDCard          string
	Email           string
	Phone           *string
	PasswordHash    string
	Gender          *string
	Province        *string
	BirthDate       *string
	PhotoURL        *string
	BloodType       *string
	Allergies       *string
	Diseases        *string
	PastInjuries    *string
	CurrentInjuries *string
	Height          *float64
	Weight          *float64
	FatPercentage   *float64
	FootwearType    *string
	Record5K        *string
	Record10K       *string
	Record21K       *string
	Record42K       *string
	RecordWkg       *string
	StrydUser       *string
	FinalSurgeUser  *string
	IsMember        bool
	CreatedAt       time.Time
}
