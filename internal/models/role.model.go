package models

// Role and Position are flat lookup entities created lazily by name.

type Role struct {
	BaseModel
	Name string `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
}

type Position struct {
	BaseModel
	Name string `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
}
