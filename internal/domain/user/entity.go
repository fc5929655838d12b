package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Can approve accounts and leave, manage holidays/broadcasts
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID                string
	Name              string
	Email             string
	PasswordHash      *string
	Role              Role
	IsApproved        bool
	IsVerified        bool
	VerificationToken *string
	ResetToken        *string
	ResetTokenExpiry  *time.Time
	DateOfBirth       *time.Time
	Phone             *string
	Department        *string
	Position          *string
	ProfilePhotoPath  *string
	OAuthProvider     *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsAdmin checks if the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanLogin checks the account-state gate applied at authentication:
// both admin approval and email verification must have happened.
func (u *User) CanLogin() bool {
	return u.IsApproved && u.IsVerified
}
