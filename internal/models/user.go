package models

// Role enum
type Role string

const (
	RoleAdmin   Role = "Admin"
	RolePatient Role = "Patient"
)

// User is a login identity from the fixed seeded list. There is no
// self-registration and no password change. Passwords are stored and compared
// in plaintext to keep the exact-match login contract; production use would
// need hashed credentials.
type User struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	PatientID string `json:"patientId,omitempty"`
}

// UserSanitized represents the identity data that is safe to send in API responses.
type UserSanitized struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Email     string `json:"email"`
	PatientID string `json:"patientId,omitempty"`
}

// CheckPassword compares a password with the user's stored password.
func (u *User) CheckPassword(password string) bool {
	return u.Password == password
}

// Sanitize creates a UserSanitized struct from a User, excluding the password.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:        u.ID,
		Role:      u.Role,
		Email:     u.Email,
		PatientID: u.PatientID,
	}
}
