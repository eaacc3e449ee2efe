package models

import "time"

type ActiveStatus string

const (
	ActiveStatusOnline  ActiveStatus = "ONLINE"
	ActiveStatusOffline ActiveStatus = "OFFLINE"
)

type User struct {
	BaseUUIDModel
	StaffID       string       `gorm:"type:varchar(64);uniqueIndex"  json:"staffId"`
	Name          string       `gorm:"type:varchar(255)"             json:"name"`
	Gender        string       `gorm:"type:varchar(10)"              json:"gender"`
	Email         string       `gorm:"type:varchar(255);index"       json:"email"`
	PhoneNumber   string       `gorm:"type:varchar(64)"              json:"phoneNumber"`
	MaritalStatus bool         `gorm:"not null;default:false"        json:"maritalStatus"`
	Parent        bool         `gorm:"not null;default:false"        json:"parent"`
	JoinDate      *time.Time   `gorm:"type:date"                     json:"joinDate"`
	PermanentDate *time.Time   `gorm:"type:date"                     json:"permanentDate"`
	Profile       *string      `gorm:"type:varchar(255)"             json:"profile"`
	Password      string       `gorm:"type:varchar(255)"             json:"-"`
	ActiveStatus  ActiveStatus `gorm:"type:varchar(20);not null"     json:"activeStatus"`
	Enabled       bool         `gorm:"not null;default:true"         json:"enabled"`

	DivisionID   *uint     `gorm:"index"  json:"divisionId"`
	Division     *Division `json:"division,omitempty"`
	DepartmentID *uint     `gorm:"index"  json:"departmentId"`
	Department   *Department `json:"department,omitempty"`
	TeamID       *uint     `gorm:"index"  json:"teamId"`
	Team         *Team     `json:"team,omitempty"`
	RoleID       *uint     `gorm:"index"  json:"roleId"`
	Role         *Role     `json:"role,omitempty"`
	PositionID   *uint     `gorm:"index"  json:"positionId"`
	Position     *Position `json:"position,omitempty"`

	ApproveRoles []ApproveRole `gorm:"many2many:user_approve_roles" json:"approveRoles,omitempty"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type ValidatePasswordRequest struct {
	StaffID  string `json:"staffId"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	StaffID         string `json:"staffId"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
