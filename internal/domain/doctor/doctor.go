package doctor

import "time"

type Doctor struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Name      string `gorm:"column:name;type:varchar(150);not null" json:"name"`
	CRM       string `gorm:"column:crm;type:varchar(30);uniqueIndex:ux_doctors_crm;not null" json:"crm"`
	Specialty string `gorm:"column:specialty;type:varchar(100)" json:"specialty,omitempty"`

	// HireDate is a validated YYYY-MM-DD calendar date, empty when unknown.
	HireDate string `gorm:"column:hire_date;type:varchar(10)" json:"hire_date,omitempty"`

	// DepartmentID is cleared (not cascaded) when the department is deleted.
	DepartmentID *int64 `gorm:"column:department_id;index" json:"department_id,omitempty"`
}

func (Doctor) TableName() string {
	return "hospital.doctors"
}

type CreateDoctorCommand struct {
	Name         string
	CRM          string
	Specialty    string
	HireDate     string
	DepartmentID *int64
}

type UpdateDoctorCommand struct {
	Name         string
	CRM          string
	Specialty    string
	HireDate     string
	DepartmentID *int64
}
