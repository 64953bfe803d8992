package appointment

import "time"

// Appointment rows carry a composite unique constraint: a patient cannot
// have two appointments with the same doctor on the same date.
type Appointment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	PatientID int64 `gorm:"column:patient_id;not null;index;uniqueIndex:ux_appointments_patient_doctor_date" json:"patient_id"`
	DoctorID  int64 `gorm:"column:doctor_id;not null;index;uniqueIndex:ux_appointments_patient_doctor_date" json:"doctor_id"`

	AppointmentDate string `gorm:"column:appointment_date;type:varchar(10);not null;uniqueIndex:ux_appointments_patient_doctor_date" json:"appointment_date"`
	DurationMinutes int    `gorm:"column:duration_minutes;not null" json:"duration_minutes"`

	Diagnosis string `gorm:"column:diagnosis;type:text" json:"diagnosis,omitempty"`
	Notes     string `gorm:"column:notes;type:text" json:"notes,omitempty"`
}

func (Appointment) TableName() string {
	return "hospital.appointments"
}

func (a *Appointment) Duration() time.Duration {
	return time.Duration(a.DurationMinutes) * time.Minute
}

type CreateAppointmentCommand struct {
	PatientID       int64
	DoctorID        int64
	AppointmentDate string
	DurationMinutes int
	Diagnosis       string
	Notes           string
}

type UpdateAppointmentCommand struct {
	PatientID       int64
	DoctorID        int64
	AppointmentDate string
	DurationMinutes int
	Diagnosis       string
	Notes           string
}
