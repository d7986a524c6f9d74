package dto

import (
	"time"

	"github.com/spec-kit/club-service/internal/domain"
)

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is a user row minus the password.
type UserResponse struct {
	ID              int64     `json:"id"`
	FullName        string    `json:"fullName"`
	IDCard          string    `json:"idCard"`
	Email           string    `json:"email"`
	Phone           *string   `json:"phone"`
	Gender          *string   `json:"gender"`
	Province        *string   `json:"province"`
	BirthDate       *string   `json:"birthDate"`
	PhotoURL        *string   `json:"photoUrl"`
	BloodType       *string   `json:"bloodType"`
	Allergies       *string   `json:"allergies"`
	Diseases        *string   `json:"diseases"`
	PastInjuries    *string   `json:"pastInjuries"`
	CurrentInjuries *string   `json:"currentInjuries"`
	Height          *float64  `json:"height"`
	Weight          *float64  `json:"weight"`
	FatPercentage   *float64  `json:"fatPercentage"`
	FootwearType    *string   `json:"footwearType"`
	Record5K        *string   `json:"record5k"`
	Record10K       *string   `json:"record10k"`
	Record21K       *string   `json:"record21k"`
	Record42K       *string   `json:"record42k"`
	RecordWkg       *string   `json:"recordWkg"`
	StrydUser       *string   `json:"strydUser"`
	FinalSurgeUser  *string   `json:"finalSurgeUser"`
	IsMember        bool      `json:"isMember"`
	CreatedAt       time.Time `json:"createdAt"`
}

// LoginResponse is the user plus a session token for the UI.
type LoginResponse struct {
	UserResponse
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		FullName:        user.FullName,
		IDCard:          user.IDCard,
		Email:           user.Email,
		Phone:           user.Phone,
		Gender:          user.Gender,
		Province:        user.Province,
		BirthDate:       user.BirthDate,
		PhotoURL:        user.PhotoURL,
		BloodType:       user.BloodType,
		Allergies:       user.Allergies,
		Diseases:        user.Diseases,
		PastInjuries:    user.PastInjuries,
		CurrentInjuries: user.CurrentInjuries,
		Height:          user.Height,
		Weight:          user.Weight,
		FatPercentage:   user.FatPercentage,
		FootwearType:    user.FootwearType,
		Record5K:        user.Record5K,
		Record10K:       user.Record10K,
		Record21K:       user.Record21K,
		Record42K:       user.Record42K,
		RecordWkg:       user.RecordWkg,
		StrydUser:       user.StrydUser,
		FinalSurgeUser:  user.FinalSurgeUser,
		IsMember:        user.IsMember,
		CreatedAt:       user.CreatedAt,
	}
}

// ProfileUpdateRequest is the self-service profile payload. Absent fields
// are left untouched.
type ProfileUpdateRequest struct {
	UserID          int64    `json:"userId"`
	FullName        *string  `json:"fullName"`
	IDCard          *string  `json:"idCard"`
	Phone           *string  `json:"phone"`
	BloodType       *string  `json:"bloodType"`
	Allergies       *string  `json:"allergies"`
	Diseases        *string  `json:"diseases"`
	PastInjuries    *string  `json:"pastInjuries"`
	CurrentInjuries *string  `json:"currentInjuries"`
	Height          *float64 `json:"height"`
	Weight          *float64 `json:"weight"`
	FatPercentage   *float64 `json:"fatPercentage"`
	FootwearType    *string  `json:"footwearType"`
	Record5K        *string  `json:"record5k"`
	Record10K       *string  `json:"record10k"`
	Record21K       *string  `json:"record21k"`
	Record42K       *string  `json:"record42k"`
	RecordWkg       *string  `json:"recordWkg"`
	StrydUser       *string  `json:"strydUser"`
	FinalSurgeUser  *string  `json:"finalSurgeUser"`
}
