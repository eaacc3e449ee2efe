package models

// ApproveRole names who may approve workflow actions for an organizational
// scope. The import pipeline only ever reads the APPLICANT role and attaches
// it to imported users; it never creates new approve roles.
type ApproveRole struct {
	BaseModel
	Name string `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`

	Users       []User       `gorm:"many2many:user_approve_roles"       json:"-"`
	Teams       []Team       `gorm:"many2many:approve_role_teams"       json:"-"`
	Departments []Department `gorm:"many2many:approve_role_departments" json:"-"`
	Divisions   []Division   `gorm:"many2many:approve_role_divisions"   json:"-"`
}

// ApproveRoleApplicant is the role every imported user is assigned.
const ApproveRoleApplicant = "APPLICANT"
