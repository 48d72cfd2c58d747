package entity

// UserType is supplied by the identity provider for every authenticated call
type UserType string

const (
	UserTypeDoctor  UserType = "doctor"
	UserTypePatient UserType = "patient"
	UserTypeAdmin   UserType = "admin"
)

// Actor is the authenticated caller of a core operation
type Actor struct {
	UserID   string
	UserType UserType
	Email    string
	Name     string
}

func (a Actor) IsDoctor() bool {
	return a.UserType == UserTypeDoctor
}

func (a Actor) IsPatient() bool {
	return a.UserType == UserTypePatient
}

func (a Actor) IsAdmin() bool {
	return a.UserType == UserTypeAdmin
}
