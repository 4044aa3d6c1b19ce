package model

type Role string

const (
	RoleParent      Role = "Parent"
	RoleStudent     Role = "Student"
	RoleVolunteer   Role = "Volunteer"
	RoleCoordinator Role = "Coordinator"
)

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type Child struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	BirthYear   int    `json:"birth_year"`
	SchoolGrade int    `json:"school_grade"`
}
