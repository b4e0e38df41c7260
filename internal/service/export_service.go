package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JorgeWendell/clinics/internal/model"
	"github.com/JorgeWendell/clinics/internal/repository"
	"github.com/JorgeWendell/clinics/internal/scheduling"
)

// ── export errors ──

var (
	ErrExportRangeTooLarge = errors.New("export range must not exceed one year")
	ErrExportGenerateFail  = errors.New("failed to generate export file")
)

const (
	maxExportDays     = 366
	agendaMonthsBack  = 1
	agendaMonthsAhead = 3
)

// ExportService spreadsheet and calendar exports
//
// Files are returned as buffers; the handler sets the download headers.
type ExportService interface {
	// ExportAppointments renders the clinic's appointments in [from, to] as an .xlsx workbook.
	ExportAppointments(ctx context.Context, clinicID, from, to string) (*bytes.Buffer, string, error)
	// DoctorAgenda renders one doctor's appointments as an iCalendar feed, from one month
	// back to three months ahead. Whole-day bookings become all-day events.
	DoctorAgenda(ctx context.Context, clinicID, doctorID string) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	now    Clock
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, now Clock, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, now: now, logger: logger}
}

// ── spreadsheet ──

var appointmentSheetHeader = []string{"Date", "Time", "Pet", "Tutor", "Tutor phone", "Doctor", "Speciality", "Price"}

func (s *exportService) ExportAppointments(ctx context.Context, clinicID, from, to string) (*bytes.Buffer, string, error) {
	fromDate, err := parseDateField("from", from)
	if err != nil {
		return nil, "", err
	}
	toDate, err := parseDateField("to", to)
	if err != nil {
		return nil, "", err
	}
	if toDate.Before(fromDate) {
		return nil, "", invalidField("to", "must not be before from")
	}
	if !toDate.Before(fromDate.AddDays(maxExportDays)) {
		return nil, "", ErrExportRangeTooLarge
	}

	appts, err := s.repo.Appointment.ListAll(ctx, repository.AppointmentFilter{ClinicID: clinicID, From: fromDate, To: toDate})
	if err != nil {
		s.logger.Error("list appointments for export failed", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Appointments"
	idx, _ := f.NewSheet(sheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "B", 12)
	f.SetColWidth(sheet, "C", "G", 22)
	f.SetColWidth(sheet, "H", "H", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	priceFmt := "#,##0.00"
	priceStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &priceFmt})

	for i, title := range appointmentSheetHeader {
		f.SetCellValue(sheet, cell(colName(i), 1), title)
	}
	f.SetCellStyle(sheet, "A1", cell(colName(len(appointmentSheetHeader)-1), 1), headerStyle)

	row := 2
	var totalCents int
	for i := range appts {
		a := &appts[i]
		slot := "all day"
		if a.Time != nil && len(*a.Time) >= 5 {
			slot = (*a.Time)[:5]
		}
		values := []interface{}{a.Date.String(), slot, "", "", "", "", "", 0.0}
		if a.Pet != nil {
			values[2] = a.Pet.Name
			if a.Pet.Tutor != nil {
				values[3] = a.Pet.Tutor.Name
				values[4] = a.Pet.Tutor.Phone
			}
		}
		if a.Doctor != nil {
			values[5] = a.Doctor.Name
			values[6] = a.Doctor.Speciality
			values[7] = float64(a.Doctor.AppointmentPriceInCents) / 100
			totalCents += a.Doctor.AppointmentPriceInCents
		}
		for col, v := range values {
			f.SetCellValue(sheet, cell(colName(col), row), v)
		}
		f.SetCellStyle(sheet, cell("H", row), cell("H", row), priceStyle)
		row++
	}

	f.SetCellValue(sheet, cell("G", row), "Total")
	f.SetCellValue(sheet, cell("H", row), float64(totalCents)/100)
	f.SetCellStyle(sheet, cell("H", row), cell("H", row), priceStyle)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("appointments_%s_%s.xlsx", fromDate, toDate)
	return buf, filename, nil
}

// ── calendar ──

func (s *exportService) DoctorAgenda(ctx context.Context, clinicID, doctorID string) ([]byte, string, error) {
	doctor, err := s.repo.Doctor.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrDoctorNotFound
		}
		s.logger.Error("get doctor failed", zap.String("id", doctorID), zap.Error(err))
		return nil, "", err
	}
	if doctor.ClinicID != clinicID {
		return nil, "", ErrDoctorNotFound
	}

	now := s.now()
	today := scheduling.DateOf(now)
	appts, err := s.repo.Appointment.ListAll(ctx, repository.AppointmentFilter{
		ClinicID: clinicID,
		DoctorID: doctorID,
		From:     today.AddMonths(-agendaMonthsBack),
		To:       today.AddMonths(agendaMonthsAhead),
	})
	if err != nil {
		s.logger.Error("list agenda failed", zap.String("doctor_id", doctorID), zap.Error(err))
		return nil, "", err
	}

	cal := buildAgenda(doctor, appts, now)
	filename := fmt.Sprintf("agenda_%s.ics", doctor.DoctorID)
	return []byte(cal.Serialize()), filename, nil
}

// buildAgenda converts appointments into calendar events in now's location.
func buildAgenda(doctor *model.Doctor, appts []model.Appointment, now time.Time) *ics.Calendar {
	loc := now.Location()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//clinics//doctor agenda//EN")
	cal.SetXWRCalName(doctor.Name)
	cal.SetXWRTimezone(loc.String())

	for i := range appts {
		a := &appts[i]

		if a.Time == nil {
			event := newAgendaEvent(cal, a, now)
			event.SetAllDayStartAt(a.Date.In(loc))
			event.SetAllDayEndAt(a.Date.AddDays(1).In(loc))
			continue
		}

		// an unreadable time would leave an event without DTSTART
		t, err := scheduling.ParseTimeOfDay(*a.Time)
		if err != nil {
			continue
		}
		start := a.Date.In(loc).Add(time.Duration(t.Minutes()) * time.Minute)
		event := newAgendaEvent(cal, a, now)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(scheduling.SlotMinutes * time.Minute))
	}
	return cal
}

func newAgendaEvent(cal *ics.Calendar, a *model.Appointment, now time.Time) *ics.VEvent {
	event := cal.AddEvent(a.AppointmentID + "@clinics")
	event.SetDtStampTime(now.UTC())
	event.SetSummary(agendaSummary(a))
	return event
}

func agendaSummary(a *model.Appointment) string {
	if a.Pet == nil {
		return "Appointment"
	}
	if a.Pet.Tutor != nil {
		return fmt.Sprintf("Appointment: %s (%s)", a.Pet.Name, a.Pet.Tutor.Name)
	}
	return "Appointment: " + a.Pet.Name
}

// ── helpers ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// colName maps a zero-based index to a column letter.
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}
