package department

import "time"

type Department struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Name     string `gorm:"column:name;type:varchar(150);uniqueIndex:ux_departments_name;not null" json:"name"`
	Location string `gorm:"column:location;type:varchar(150)" json:"location,omitempty"`
}

func (Department) TableName() string {
	return "hospital.departments"
}

type CreateDepartmentCommand struct {
	Name     string
	Location string
}

// UpdateDepartmentCommand carries the full replacement field set; updates
// are replace-style, keyed by identifier.
type UpdateDepartmentCommand struct {
	Name     string
	Location string
}
