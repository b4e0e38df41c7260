package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/JorgeWendell/clinics/internal/model"
	"github.com/JorgeWendell/clinics/internal/repository"
	"github.com/JorgeWendell/clinics/internal/scheduling"
	pkgerrors "github.com/JorgeWendell/clinics/pkg/errors"
)

// ── mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return pkgerrors.ErrUniqueViolation
		}
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdateRole(_ context.Context, id, role string) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Role = role
	return nil
}

// ── mock ClinicRepository ──

type mockClinicRepo struct {
	clinics map[string]*model.Clinic
	links   map[string]string // user_id → clinic_id
	seq     int
}

func newMockClinicRepo() *mockClinicRepo {
	return &mockClinicRepo{
		clinics: make(map[string]*model.Clinic),
		links:   make(map[string]string),
	}
}

func (m *mockClinicRepo) Create(_ context.Context, clinic *model.Clinic) error {
	if clinic.ClinicID == "" {
		m.seq++
		clinic.ClinicID = fmt.Sprintf("clinic-%d", m.seq)
	}
	m.clinics[clinic.ClinicID] = clinic
	return nil
}

func (m *mockClinicRepo) GetByID(_ context.Context, id string) (*model.Clinic, error) {
	if c, ok := m.clinics[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClinicRepo) LinkUser(_ context.Context, userID, clinicID string) error {
	m.links[userID] = clinicID
	return nil
}

func (m *mockClinicRepo) GetUserClinic(_ context.Context, userID string) (*model.UserClinic, error) {
	clinicID, ok := m.links[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.UserClinic{UserID: userID, ClinicID: clinicID, Clinic: m.clinics[clinicID]}, nil
}

// ── mock DoctorRepository ──

type mockDoctorRepo struct {
	doctors map[string]*model.Doctor
	locks   int
	seq     int
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{doctors: make(map[string]*model.Doctor)}
}

func (m *mockDoctorRepo) Create(_ context.Context, doctor *model.Doctor) error {
	for _, d := range m.doctors {
		if d.Email == doctor.Email {
			return pkgerrors.ErrUniqueViolation
		}
	}
	if doctor.DoctorID == "" {
		m.seq++
		doctor.DoctorID = fmt.Sprintf("doctor-%d", m.seq)
	}
	m.doctors[doctor.DoctorID] = doctor
	return nil
}

func (m *mockDoctorRepo) GetByID(_ context.Context, id string) (*model.Doctor, error) {
	if d, ok := m.doctors[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDoctorRepo) GetForUpdate(ctx context.Context, id string) (*model.Doctor, error) {
	m.locks++
	return m.GetByID(ctx, id)
}

func (m *mockDoctorRepo) Update(_ context.Context, doctor *model.Doctor) error {
	for _, d := range m.doctors {
		if d.Email == doctor.Email && d.DoctorID != doctor.DoctorID {
			return pkgerrors.ErrUniqueViolation
		}
	}
	m.doctors[doctor.DoctorID] = doctor
	return nil
}

func (m *mockDoctorRepo) Delete(_ context.Context, id string) error {
	delete(m.doctors, id)
	return nil
}

func (m *mockDoctorRepo) ListByClinic(_ context.Context, clinicID string) ([]model.Doctor, error) {
	var result []model.Doctor
	for _, d := range m.doctors {
		if d.ClinicID == clinicID {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockDoctorRepo) CountByClinic(ctx context.Context, clinicID string) (int64, error) {
	list, _ := m.ListByClinic(ctx, clinicID)
	return int64(len(list)), nil
}

// ── mock TutorRepository / PetRepository ──

type mockTutorRepo struct {
	tutors map[string]*model.Tutor
	pets   *mockPetRepo
	seq    int
}

func newMockTutorRepo(pets *mockPetRepo) *mockTutorRepo {
	return &mockTutorRepo{tutors: make(map[string]*model.Tutor), pets: pets}
}

func (m *mockTutorRepo) Create(_ context.Context, tutor *model.Tutor) error {
	if tutor.TutorID == "" {
		m.seq++
		tutor.TutorID = fmt.Sprintf("tutor-%d", m.seq)
	}
	m.tutors[tutor.TutorID] = tutor
	return nil
}

func (m *mockTutorRepo) GetByID(_ context.Context, id string) (*model.Tutor, error) {
	if t, ok := m.tutors[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTutorRepo) Update(_ context.Context, tutor *model.Tutor) error {
	if _, ok := m.tutors[tutor.TutorID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.tutors[tutor.TutorID] = tutor
	return nil
}

func (m *mockTutorRepo) BelongsToClinic(_ context.Context, tutorID, clinicID string) (bool, error) {
	for _, p := range m.pets.pets {
		if p.TutorID == tutorID && p.ClinicID == clinicID {
			return true, nil
		}
	}
	return false, nil
}

type mockPetRepo struct {
	pets   map[string]*model.Pet
	tutors *mockTutorRepo
	seq    int
}

func newMockPetRepo() *mockPetRepo {
	return &mockPetRepo{pets: make(map[string]*model.Pet)}
}

func (m *mockPetRepo) Create(_ context.Context, pet *model.Pet) error {
	if pet.PetID == "" {
		m.seq++
		pet.PetID = fmt.Sprintf("pet-%d", m.seq)
	}
	stored := *pet
	stored.Tutor = nil
	m.pets[pet.PetID] = &stored
	return nil
}

func (m *mockPetRepo) GetByID(_ context.Context, id string) (*model.Pet, error) {
	p, ok := m.pets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *p
	if m.tutors != nil {
		out.Tutor = m.tutors.tutors[p.TutorID]
	}
	return &out, nil
}

func (m *mockPetRepo) Update(_ context.Context, pet *model.Pet) error {
	if _, ok := m.pets[pet.PetID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *pet
	stored.Tutor = nil
	m.pets[pet.PetID] = &stored
	return nil
}

func (m *mockPetRepo) Delete(_ context.Context, id string) error {
	delete(m.pets, id)
	return nil
}

func (m *mockPetRepo) ListByClinic(ctx context.Context, clinicID string) ([]model.Pet, error) {
	var result []model.Pet
	for id, p := range m.pets {
		if p.ClinicID == clinicID {
			full, _ := m.GetByID(ctx, id)
			result = append(result, *full)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockPetRepo) CountByClinic(ctx context.Context, clinicID string) (int64, error) {
	list, _ := m.ListByClinic(ctx, clinicID)
	return int64(len(list)), nil
}

// ── mock AppointmentRepository ──

// mockAppointmentRepo enforces the same partial unique slot index as the schema.
// blindConflicts makes FindConflict miss, simulating a concurrent writer that
// committed between the check and the insert.
type mockAppointmentRepo struct {
	appts          map[string]*model.Appointment
	doctors        *mockDoctorRepo
	pets           *mockPetRepo
	blindConflicts bool
	seq            int
}

func newMockAppointmentRepo(doctors *mockDoctorRepo, pets *mockPetRepo) *mockAppointmentRepo {
	return &mockAppointmentRepo{
		appts:   make(map[string]*model.Appointment),
		doctors: doctors,
		pets:    pets,
	}
}

func (m *mockAppointmentRepo) slotTaken(a *model.Appointment) bool {
	if a.Time == nil {
		return false
	}
	for _, other := range m.appts {
		if other.AppointmentID != a.AppointmentID &&
			other.ClinicID == a.ClinicID && other.DoctorID == a.DoctorID &&
			other.Date.Date == a.Date.Date && other.Time != nil && *other.Time == *a.Time {
			return true
		}
	}
	return false
}

func (m *mockAppointmentRepo) Create(_ context.Context, appt *model.Appointment) error {
	if m.slotTaken(appt) {
		return pkgerrors.ErrUniqueViolation
	}
	if appt.AppointmentID == "" {
		m.seq++
		appt.AppointmentID = fmt.Sprintf("appt-%d", m.seq)
	}
	stored := *appt
	m.appts[appt.AppointmentID] = &stored
	return nil
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	a, ok := m.appts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *a
	out.Doctor = m.doctors.doctors[a.DoctorID]
	if pet, err := m.pets.GetByID(ctx, a.PetID); err == nil {
		out.Pet = pet
	}
	return &out, nil
}

func (m *mockAppointmentRepo) Update(_ context.Context, appt *model.Appointment) error {
	if _, ok := m.appts[appt.AppointmentID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if m.slotTaken(appt) {
		return pkgerrors.ErrUniqueViolation
	}
	stored := *appt
	stored.Doctor, stored.Pet = nil, nil
	m.appts[appt.AppointmentID] = &stored
	return nil
}

func (m *mockAppointmentRepo) Delete(_ context.Context, id string) error {
	delete(m.appts, id)
	return nil
}

func (m *mockAppointmentRepo) FindConflict(_ context.Context, clinicID, doctorID string, date scheduling.Date, slot, excludeID string) (*model.Appointment, error) {
	if m.blindConflicts {
		return nil, nil
	}
	for _, a := range m.appts {
		if a.AppointmentID == excludeID {
			continue
		}
		if a.ClinicID == clinicID && a.DoctorID == doctorID && a.Date.Date == date && a.Time != nil && *a.Time == slot {
			return a, nil
		}
	}
	return nil, nil
}

func (m *mockAppointmentRepo) ListBookedTimes(_ context.Context, clinicID, doctorID string, date scheduling.Date) ([]string, error) {
	var times []string
	for _, a := range m.appts {
		if a.ClinicID == clinicID && a.DoctorID == doctorID && a.Date.Date == date && a.Time != nil {
			times = append(times, *a.Time)
		}
	}
	sort.Strings(times)
	return times, nil
}

func (m *mockAppointmentRepo) matching(ctx context.Context, f repository.AppointmentFilter) []model.Appointment {
	var result []model.Appointment
	for id, a := range m.appts {
		if a.ClinicID != f.ClinicID ||
			(f.DoctorID != "" && a.DoctorID != f.DoctorID) ||
			(f.PetID != "" && a.PetID != f.PetID) ||
			(!f.From.IsZero() && a.Date.Before(f.From)) ||
			(!f.To.IsZero() && f.To.Before(a.Date.Date)) {
			continue
		}
		full, _ := m.GetByID(ctx, id)
		result = append(result, *full)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date.Date != result[j].Date.Date {
			return result[i].Date.Before(result[j].Date.Date)
		}
		return result[i].TimeValue() < result[j].TimeValue()
	})
	return result
}

func (m *mockAppointmentRepo) List(ctx context.Context, f repository.AppointmentFilter, offset, limit int) ([]model.Appointment, int64, error) {
	all := m.matching(ctx, f)
	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockAppointmentRepo) ListAll(ctx context.Context, f repository.AppointmentFilter) ([]model.Appointment, error) {
	return m.matching(ctx, f), nil
}

// ── mock DashboardRepository ──

type mockDashboardRepo struct {
	appts *mockAppointmentRepo
}

func (m *mockDashboardRepo) inRange(clinicID string, from, to scheduling.Date) []model.Appointment {
	return m.appts.matching(context.Background(), repository.AppointmentFilter{ClinicID: clinicID, From: from, To: to})
}

func (m *mockDashboardRepo) Totals(_ context.Context, clinicID string, from, to scheduling.Date) (int64, int64, error) {
	var count, revenue int64
	for _, a := range m.inRange(clinicID, from, to) {
		count++
		if a.Doctor != nil {
			revenue += int64(a.Doctor.AppointmentPriceInCents)
		}
	}
	return count, revenue, nil
}

func (m *mockDashboardRepo) TopDoctors(_ context.Context, clinicID string, from, to scheduling.Date, limit int) ([]repository.DoctorRanking, error) {
	counts := make(map[string]int64)
	for _, a := range m.inRange(clinicID, from, to) {
		counts[a.DoctorID]++
	}
	var rows []repository.DoctorRanking
	for _, d := range m.appts.doctors.doctors {
		if d.ClinicID != clinicID {
			continue
		}
		rows = append(rows, repository.DoctorRanking{DoctorID: d.DoctorID, Name: d.Name, Appointments: counts[d.DoctorID]})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Appointments != rows[j].Appointments {
			return rows[i].Appointments > rows[j].Appointments
		}
		return rows[i].Name < rows[j].Name
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (m *mockDashboardRepo) Daily(_ context.Context, clinicID string, from, to scheduling.Date) ([]repository.DailyStat, error) {
	byDate := make(map[scheduling.Date]*repository.DailyStat)
	var order []scheduling.Date
	for _, a := range m.inRange(clinicID, from, to) {
		row, ok := byDate[a.Date.Date]
		if !ok {
			row = &repository.DailyStat{Date: a.Date.In(time.UTC)}
			byDate[a.Date.Date] = row
			order = append(order, a.Date.Date)
		}
		row.Appointments++
		if a.Doctor != nil {
			row.Revenue += int64(a.Doctor.AppointmentPriceInCents)
		}
	}
	rows := make([]repository.DailyStat, 0, len(order))
	for _, d := range order {
		rows = append(rows, *byDate[d])
	}
	return rows, nil
}

// ── aggregate ──

type mockRepos struct {
	users     *mockUserRepo
	clinics   *mockClinicRepo
	doctors   *mockDoctorRepo
	tutors    *mockTutorRepo
	pets      *mockPetRepo
	appts     *mockAppointmentRepo
	dashboard *mockDashboardRepo
}

// newMockRepository wires every mock into a Repository with no database handle,
// so Transaction runs its callback directly.
func newMockRepository() (*repository.Repository, *mockRepos) {
	pets := newMockPetRepo()
	tutors := newMockTutorRepo(pets)
	pets.tutors = tutors
	doctors := newMockDoctorRepo()
	appts := newMockAppointmentRepo(doctors, pets)

	m := &mockRepos{
		users:     newMockUserRepo(),
		clinics:   newMockClinicRepo(),
		doctors:   doctors,
		tutors:    tutors,
		pets:      pets,
		appts:     appts,
		dashboard: &mockDashboardRepo{appts: appts},
	}
	repo := &repository.Repository{
		User:        m.users,
		Clinic:      m.clinics,
		Doctor:      m.doctors,
		Tutor:       m.tutors,
		Pet:         m.pets,
		Appointment: m.appts,
		Dashboard:   m.dashboard,
	}
	return repo, m
}

// ── fixtures ──

const (
	testClinicID  = "clinic-a"
	otherClinicID = "clinic-b"
	testCallerID  = "user-caller"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// addDoctor stores a Monday–Friday 08:00–18:00 doctor.
func (m *mockRepos) addDoctor(id, clinicID string) *model.Doctor {
	d := &model.Doctor{
		DoctorID:                id,
		ClinicID:                clinicID,
		Name:                    "Dr " + id,
		Email:                   id + "@clinica.local",
		Speciality:              "Clínico geral",
		AvailableFromWeekDay:    1,
		AvailableToWeekDay:      5,
		AvailableFromTime:       "08:00:00",
		AvailableToTime:         "18:00:00",
		AppointmentPriceInCents: 15000,
	}
	m.doctors.doctors[id] = d
	return d
}

func (m *mockRepos) addPet(id, clinicID string) *model.Pet {
	tutor := &model.Tutor{TutorID: "tutor-of-" + id, Name: "Tutor " + id, Email: id + "@example.com", Phone: "11999990000"}
	m.tutors.tutors[tutor.TutorID] = tutor
	p := &model.Pet{PetID: id, ClinicID: clinicID, TutorID: tutor.TutorID, Name: "Pet " + id, Race: "SRD", Type: "canino", Sex: model.PetSexMale}
	m.pets.pets[id] = p
	return p
}

func (m *mockRepos) addAppointment(id, clinicID, doctorID, petID, date string, slot *string) *model.Appointment {
	d, err := scheduling.ParseDate(date)
	if err != nil {
		panic(err)
	}
	a := &model.Appointment{
		AppointmentID: id,
		ClinicID:      clinicID,
		DoctorID:      doctorID,
		PetID:         petID,
		Date:          model.NewDate(d),
		Time:          slot,
	}
	m.appts.appts[id] = a
	return a
}

func strPtr(s string) *string { return &s }
