package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/caredesk/hospital-api/internal/domain"
	"github.com/caredesk/hospital-api/internal/domain/appointment"
	"github.com/caredesk/hospital-api/internal/domain/department"
	"github.com/caredesk/hospital-api/internal/domain/doctor"
	"github.com/caredesk/hospital-api/internal/domain/patient"
	"github.com/caredesk/hospital-api/pkg/metrics"
)

// The prometheus default registry rejects duplicate collectors, so every
// test shares one.
var testCollector = metrics.NewCollector("hospital_api_test")

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func newTestAudit() (*AuditService, *fakeAuditRepo) {
	repo := &fakeAuditRepo{}
	return NewAuditService(repo, testCollector, zap.NewNop()), repo
}

type fakeDepartmentRepo struct {
	nextID int64
	rows   map[int64]*department.Department
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{rows: make(map[int64]*department.Department)}
}

func (r *fakeDepartmentRepo) List(context.Context) ([]*department.Department, error) {
	out := make([]*department.Department, 0, len(r.rows))
	for id := int64(1); id <= r.nextID; id++ {
		if d, ok := r.rows[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDepartmentRepo) GetByID(_ context.Context, id int64) (*department.Department, error) {
	d, ok := r.rows[id]
	if !ok {
		return nil, department.ErrDepartmentNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDepartmentRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

func (r *fakeDepartmentRepo) ExistsByName(_ context.Context, name string, excludeID *int64) (bool, error) {
	for id, d := range r.rows {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if d.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDepartmentRepo) Create(_ context.Context, d *department.Department) error {
	for _, row := range r.rows {
		if row.Name == d.Name {
			return department.ErrDepartmentNameTaken
		}
	}
	r.nextID++
	d.ID = r.nextID
	cp := *d
	r.rows[d.ID] = &cp
	return nil
}

func (r *fakeDepartmentRepo) Update(_ context.Context, id int64, cmd *department.UpdateDepartmentCommand) (*department.Department, error) {
	d, ok := r.rows[id]
	if !ok {
		return nil, department.ErrDepartmentNotFound
	}
	d.Name = cmd.Name
	d.Location = cmd.Location
	cp := *d
	return &cp, nil
}

func (r *fakeDepartmentRepo) Delete(_ context.Context, id int64) (*department.Department, error) {
	d, ok := r.rows[id]
	if !ok {
		return nil, department.ErrDepartmentNotFound
	}
	delete(r.rows, id)
	return d, nil
}

type fakeDoctorRepo struct {
	nextID int64
	rows   map[int64]*doctor.Doctor
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{rows: make(map[int64]*doctor.Doctor)}
}

func (r *fakeDoctorRepo) List(context.Context) ([]*doctor.Doctor, error) {
	out := make([]*doctor.Doctor, 0, len(r.rows))
	for id := int64(1); id <= r.nextID; id++ {
		if d, ok := r.rows[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDoctorRepo) GetByID(_ context.Context, id int64) (*doctor.Doctor, error) {
	d, ok := r.rows[id]
	if !ok {
		return nil, doctor.ErrDoctorNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDoctorRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

func (r *fakeDoctorRepo) ExistsByCRM(_ context.Context, crm string, excludeID *int64) (bool, error) {
	for id, d := range r.rows {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if d.CRM == crm {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDoctorRepo) Create(_ context.Context, d *doctor.Doctor) error {
	for _, row := range r.rows {
		if row.CRM == d.CRM {
			return doctor.ErrCRMTaken
		}
	}
	r.nextID++
	d.ID = r.nextID
	cp := *d
	r.rows[d.ID] = &cp
	return nil
}

func (r *fakeDoctorRepo) Update(_ context.Context, id int64, cmd *doctor.UpdateDoctorCommand) (*doctor.Doctor, error) {
	d, ok := r.rows[id]
	if !ok {
		return nil, doctor.ErrDoctorNotFound
	}
	d.Name = cmd.Name
	d.CRM = cmd.CRM
	d.Specialty = cmd.Specialty
	d.HireDate = cmd.HireDate
	d.DepartmentID = cmd.DepartmentID
	cp := *d
	return &cp, nil
}

func (r *fakeDoctorRepo) Delete(_ context.Context, id int64) (*doctor.Doctor, error) {
	d, ok := r.rows[id]
	if !ok {
		return nil, doctor.ErrDoctorNotFound
	}
	delete(r.rows, id)
	return d, nil
}

type fakePatientRepo struct {
	nextID int64
	rows   map[int64]*patient.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{rows: make(map[int64]*patient.Patient)}
}

func (r *fakePatientRepo) List(context.Context) ([]*patient.Patient, error) {
	out := make([]*patient.Patient, 0, len(r.rows))
	for id := int64(1); id <= r.nextID; id++ {
		if p, ok := r.rows[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePatientRepo) GetByID(_ context.Context, id int64) (*patient.Patient, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePatientRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

func (r *fakePatientRepo) ExistsByCPF(_ context.Context, cpf string, excludeID *int64) (bool, error) {
	for id, p := range r.rows {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if p.CPF == cpf {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePatientRepo) Create(_ context.Context, p *patient.Patient) error {
	for _, row := range r.rows {
		if row.CPF == p.CPF {
			return patient.ErrCPFTaken
		}
	}
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.rows[p.ID] = &cp
	return nil
}

func (r *fakePatientRepo) Update(_ context.Context, id int64, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	p.Name = cmd.Name
	p.CPF = cmd.CPF
	p.BirthDate = cmd.BirthDate
	p.Address = cmd.Address
	cp := *p
	return &cp, nil
}

func (r *fakePatientRepo) Delete(_ context.Context, id int64) (*patient.Patient, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	delete(r.rows, id)
	return p, nil
}

type fakeAppointmentRepo struct {
	nextID int64
	rows   map[int64]*appointment.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{rows: make(map[int64]*appointment.Appointment)}
}

func (r *fakeAppointmentRepo) List(context.Context) ([]*appointment.Appointment, error) {
	out := make([]*appointment.Appointment, 0, len(r.rows))
	for id := int64(1); id <= r.nextID; id++ {
		if a, ok := r.rows[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*appointment.Appointment, error) {
	a, ok := r.rows[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAppointmentRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

func (r *fakeAppointmentRepo) ExistsByBooking(_ context.Context, patientID, doctorID int64, date string, excludeID *int64) (bool, error) {
	for id, a := range r.rows {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if a.PatientID == patientID && a.DoctorID == doctorID && a.AppointmentDate == date {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *appointment.Appointment) error {
	for _, row := range r.rows {
		if row.PatientID == a.PatientID && row.DoctorID == a.DoctorID && row.AppointmentDate == a.AppointmentDate {
			return appointment.ErrDuplicateBooking
		}
	}
	r.nextID++
	a.ID = r.nextID
	cp := *a
	r.rows[a.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, id int64, cmd *appointment.UpdateAppointmentCommand) (*appointment.Appointment, error) {
	a, ok := r.rows[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	a.PatientID = cmd.PatientID
	a.DoctorID = cmd.DoctorID
	a.AppointmentDate = cmd.AppointmentDate
	a.DurationMinutes = cmd.DurationMinutes
	a.Diagnosis = cmd.Diagnosis
	a.Notes = cmd.Notes
	cp := *a
	return &cp, nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, id int64) (*appointment.Appointment, error) {
	a, ok := r.rows[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	delete(r.rows, id)
	return a, nil
}
