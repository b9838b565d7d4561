package model

// Role is the platform role of an authenticated user.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleEmployer  Role = "employer"
	RoleJobSeeker Role = "jobseeker"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID    string
	Role  Role
	Email string
}

// Authenticated reports whether the actor carries an identity.
func (a Actor) Authenticated() bool { return a.ID != "" }

// IsAdmin reports whether the actor has universal access.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// User is a platform account as exposed by the user directory.
type User struct {
	ID          string
	Name        string
	Email       string
	Role        Role
	Photo       string
	Skills      []string
	CompanyName string
}

// UserSummary is the public name/email pair returned next to a lookup by email.
type UserSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
