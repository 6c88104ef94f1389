package directory

import "time"

// Department is immutable reference data, created once by the seed command.
type Department struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Department) TableName() string {
	return "departments"
}

// Team references exactly one Department. Read-mostly.
type Team struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	DepartmentID int64     `json:"department_id" gorm:"column:department_id;not null;index"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Team) TableName() string {
	return "teams"
}
