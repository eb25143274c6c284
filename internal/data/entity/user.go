package entity

import "time"

type UserRole string

const (
	RoleDonor UserRole = "donor"
	RoleAdmin UserRole = "admin"
)

type Gender string

const (
	GenderMale   Gender = "Nam"
	GenderFemale Gender = "Nữ"
)

type BloodType string

const (
	BloodTypeAPos  BloodType = "A+"
	BloodTypeANeg  BloodType = "A-"
	BloodTypeBPos  BloodType = "B+"
	BloodTypeBNeg  BloodType = "B-"
	BloodTypeABPos BloodType = "AB+"
	BloodTypeABNeg BloodType = "AB-"
	BloodTypeOPos  BloodType = "O+"
	BloodTypeONeg  BloodType = "O-"
)

// Donor age window, inclusive.
const (
	MinDonorAge = 18
	MaxDonorAge = 60
)

type User struct {
	Base
	Name         string    `db:"name"`
	DOB          time.Time `db:"dob"`
	Gender       Gender    `db:"gender"`
	City         string    `db:"city"`
	District     string    `db:"district"`
	Ward         string    `db:"ward"`
	Address      string    `db:"address"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password"`
	Email        string    `db:"email"`
	Phone        string    `db:"phone"`
	BloodType    BloodType `db:"blood_type"`
	Role         UserRole  `db:"role"`
}

// AgeAt returns full years lived at now, counting the birthday as passed on the day itself.
func AgeAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

func (u *User) EligibleToDonate(now time.Time) bool {
	age := AgeAt(u.DOB, now)
	return age >= MinDonorAge && age <= MaxDonorAge
}
