package response

import (
	"time"

	"donor-booking/internal/data/entity"
)

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	DOB              string           `json:"dob"`
	Gender           entity.Gender    `json:"gender"`
	City             string           `json:"city"`
	District         string           `json:"district"`
	Ward             string           `json:"ward"`
	Address          string           `json:"address"`
	Username         string           `json:"username"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	BloodType        entity.BloodType `json:"bloodType"`
	Role             entity.UserRole  `json:"role"`
	EligibleToDonate bool             `json:"eligibleToDonate"`
	CreatedAt        time.Time        `json:"createdAt"`
}

func UserToResponse(user *entity.User, now time.Time) UserResponse {
	return UserResponse{
		ID:               user.ID.String(),
		Name:             user.Name,
		DOB:              user.DOB.Format("2006-01-02"),
		Gender:           user.Gender,
		City:             user.City,
		District:         user.District,
		Ward:             user.Ward,
		Address:          user.Address,
		Username:         user.Username,
		Email:            user.Email,
		Phone:            user.Phone,
		BloodType:        user.BloodType,
		Role:             user.Role,
		EligibleToDonate: user.EligibleToDonate(now),
		CreatedAt:        user.CreatedAt,
	}
}
