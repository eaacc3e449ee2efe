package models

// Division, Department and Team form the org-chart hierarchy. A department
// belongs to exactly one division and a team to exactly one department; the
// name is the natural identity key used by the import pipeline.

type Division struct {
	BaseModel
	Name        string       `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Departments []Department `json:"departments,omitempty"`
}

type Department struct {
	BaseModel
	Name       string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	DivisionID uint      `gorm:"not null;index"                         json:"divisionId"`
	Division   *Division `json:"division,omitempty"`
	Teams      []Team    `json:"teams,omitempty"`
}

type Team struct {
	BaseModel
	Name         string      `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	DepartmentID uint        `gorm:"not null;index"                         json:"departmentId"`
	Department   *Department `json:"department,omitempty"`
}
