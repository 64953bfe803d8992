package patient

import "time"

type Patient struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Name string `gorm:"column:name;type:varchar(150);not null" json:"name"`

	// CPF is stored normalized: exactly 11 digits, checksum already
	// verified by the service layer.
	CPF string `gorm:"column:cpf;type:varchar(11);uniqueIndex:ux_patients_cpf;not null" json:"cpf"`

	// BirthDate is a validated YYYY-MM-DD calendar date, empty when unknown.
	BirthDate string `gorm:"column:birth_date;type:varchar(10)" json:"birth_date,omitempty"`
	Address   string `gorm:"column:address;type:text" json:"address,omitempty"`
}

func (Patient) TableName() string {
	return "hospital.patients"
}

type CreatePatientCommand struct {
	Name      string
	CPF       string
	BirthDate string
	Address   string
}

type UpdatePatientCommand struct {
	Name      string
	CPF       string
	BirthDate string
	Address   string
}
