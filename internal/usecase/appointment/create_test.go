package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inklab/studio-manager/internal/domain/customer"
	domain "github.com/inklab/studio-manager/internal/domain/schedule"
	"github.com/inklab/studio-manager/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeScheduleRepo struct {
	appointments map[uint]*models.Appointment
	artists      map[uint]models.Artist
	rooms        map[uint]models.Room
	customers    map[string]*models.Customer

	nextID         uint
	nextCustomerID uint
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		appointments: make(map[uint]*models.Appointment),
		artists:      make(map[uint]models.Artist),
		rooms:        make(map[uint]models.Room),
		customers:    make(map[string]*models.Customer),
	}
}

func (f *fakeScheduleRepo) addArtist(id uint, name string) {
	f.artists[id] = models.Artist{ID: id, Name: name, Active: true}
}

func (f *fakeScheduleRepo) addRoom(id uint, name string, noOverbooking bool) {
	f.rooms[id] = models.Room{ID: id, Name: name, NoOverbooking: noOverbooking, Active: true}
}

func (f *fakeScheduleRepo) preload(ap models.Appointment) models.Appointment {
	ap.Artist = f.artists[ap.ArtistID]
	ap.Room = f.rooms[ap.RoomID]
	return ap
}

func (f *fakeScheduleRepo) ListConflictCandidates(
	_ context.Context,
	roomID, artistID uint,
	from, to time.Time,
) ([]models.Appointment, error) {

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if ap.RoomID != roomID && ap.ArtistID != artistID {
			continue
		}
		if !ap.StartTime.Before(to) || !ap.EndTime().After(from) {
			continue
		}
		out = append(out, f.preload(*ap))
	}
	return out, nil
}

func (f *fakeScheduleRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.nextID++
	ap.ID = f.nextID
	stored := *ap
	f.appointments[ap.ID] = &stored
	return nil
}

func (f *fakeScheduleRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := f.appointments[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	full := f.preload(*ap)
	return &full, nil
}

func (f *fakeScheduleRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if _, ok := f.appointments[ap.ID]; !ok {
		return errors.New("record not found")
	}
	stored := *ap
	f.appointments[ap.ID] = &stored
	return nil
}

func (f *fakeScheduleRepo) DeleteAppointment(_ context.Context, id uint) error {
	if _, ok := f.appointments[id]; !ok {
		return errors.New("record not found")
	}
	delete(f.appointments, id)
	return nil
}

func (f *fakeScheduleRepo) ListAppointmentsForPeriod(
	_ context.Context,
	from, to time.Time,
) ([]models.Appointment, error) {

	var out []models.Appointment
	for _, ap := range f.appointments {
		if !ap.StartTime.Before(from) && ap.StartTime.Before(to) {
			out = append(out, f.preload(*ap))
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) UpsertCustomer(_ context.Context, in customer.Input) (*models.Customer, error) {
	if existing, ok := f.customers[in.Phone]; ok {
		customer.Merge(existing, in)
		copied := *existing
		return &copied, nil
	}

	cust := customer.New(in)
	f.nextCustomerID++
	cust.ID = f.nextCustomerID
	f.customers[in.Phone] = cust

	copied := *cust
	return &copied, nil
}

var _ domain.Repository = (*fakeScheduleRepo)(nil)

// ======================================================
// HELPERS
// ======================================================

func studioLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func seedAppointment(f *fakeScheduleRepo, artistID, roomID uint, start time.Time, durationMin int) {
	f.nextID++
	f.appointments[f.nextID] = &models.Appointment{
		ID:          f.nextID,
		ArtistID:    artistID,
		RoomID:      roomID,
		StartTime:   start,
		DurationMin: durationMin,
		Status:      string(domain.StatusConfirmed),
	}
}

// ======================================================
// TESTS
// ======================================================

func TestCreateAppointment_CollectsAllValidationErrors(t *testing.T) {
	loc := studioLoc(t)
	repo := newFakeScheduleRepo()
	uc := NewCreateAppointment(repo, nil, loc)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{})

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(vErr.Violations) != 4 {
		t.Fatalf("expected 4 violations, got %v", vErr.Violations)
	}
	if len(repo.appointments) != 0 {
		t.Fatalf("nothing must be persisted on validation failure")
	}
}

func TestCreateAppointment_BlockedOnNoOverbookingRoom(t *testing.T) {
	loc := studioLoc(t)
	repo := newFakeScheduleRepo()
	repo.addArtist(1, "Marco")
	repo.addArtist(2, "Sara")
	repo.addRoom(5, "Stanza A", true)

	start := time.Date(2026, 3, 10, 10, 0, 0, 0, loc)
	seedAppointment(repo, 1, 5, start, 60)

	uc := NewCreateAppointment(repo, nil, loc)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ArtistID:    2,
		RoomID:      5,
		StartTime:   start.Add(30 * time.Minute),
		DurationMin: 60,
	})

	var cErr *domain.ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if len(cErr.Conflicts) != 1 || !cErr.Conflicts[0].NoOverbooking {
		t.Fatalf("expected one blocking conflict, got %+v", cErr.Conflicts)
	}
	if len(repo.appointments) != 1 {
		t.Fatalf("blocked creation must not persist")
	}
}

func TestCreateAppointment_SucceedsWithWarningOnOverbookingRoom(t *testing.T) {
	loc := studioLoc(t)
	repo := newFakeScheduleRepo()
	repo.addArtist(1, "Marco")
	repo.addArtist(2, "Sara")
	repo.addRoom(5, "Stanza condivisa", false)

	start := time.Date(2026, 3, 10, 10, 0, 0, 0, loc)
	seedAppointment(repo, 1, 5, start, 60)

	uc := NewCreateAppointment(repo, nil, loc)

	result, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ArtistID:    2,
		RoomID:      5,
		StartTime:   start.Add(30 * time.Minute),
		DurationMin: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Appointment == nil || result.Appointment.ID == 0 {
		t.Fatalf("expected persisted appointment")
	}
	if result.Appointment.Status != string(domain.StatusConfirmed) {
		t.Fatalf("expected initial status confermato, got %q", result.Appointment.Status)
	}
	if len(result.Conflicts) != 1 || result.Conflicts[0].NoOverbooking {
		t.Fatalf("expected one advisory conflict, got %+v", result.Conflicts)
	}
}

func TestCreateAppointment_BackToBackSlotsCoexist(t *testing.T) {
	loc := studioLoc(t)
	repo := newFakeScheduleRepo()
	repo.addArtist(1, "Marco")
	repo.addRoom(5, "Stanza A", true)

	start := time.Date(2026, 3, 10, 10, 0, 0, 0, loc)
	seedAppointment(repo, 1, 5, start, 60)

	uc := NewCreateAppointment(repo, nil, loc)

	result, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ArtistID:    1,
		RoomID:      5,
		StartTime:   start.Add(time.Hour),
		DurationMin: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Conflicts) != 0 {
		t.Fatalf("expected no conflicts for back-to-back slots, got %+v", result.Conflicts)
	}
}

func TestCreateAppointment_NormalizesCustomerPhone(t *testing.T) {
	loc := studioLoc(t)
	repo := newFakeScheduleRepo()
	repo.addArtist(1, "Marco")
	repo.addRoom(5, "Stanza A", true)

	uc := NewCreateAppointment(repo, nil, loc)

	result, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ArtistID:      1,
		RoomID:        5,
		CustomerPhone: "333 111 2222",
		CustomerName:  "Giulia",
		StartTime:     time.Date(2026, 3, 10, 10, 0, 0, 0, loc),
		DurationMin:   60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Appointment.CustomerPhone != "+393331112222" {
		t.Fatalf("expected E.164 phone, got %q", result.Appointment.CustomerPhone)
	}
}

// Una prenotazione con telefono deve riconciliare l'anagrafica: stessa
// chiave (telefono E.164) usata da gift card e consensi.
func TestCreateAppointment_UpsertsCustomerByPhone(t *testing.T) {
	loc := studioLoc(t)
	repo := newFakeScheduleRepo()
	repo.addArtist(1, "Marco")
	repo.addRoom(5, "Stanza A", true)

	uc := NewCreateAppointment(repo, nil, loc)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ArtistID:      1,
		RoomID:        5,
		CustomerPhone: "333 111 2222",
		CustomerName:  "Giulia Bianchi",
		StartTime:     time.Date(2026, 3, 10, 10, 0, 0, 0, loc),
		DurationMin:   60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cust, ok := repo.customers["+393331112222"]
	if !ok {
		t.Fatalf("expected customer upserted under normalized phone, got %v", repo.customers)
	}
	if cust.FirstName != "Giulia" || cust.LastName != "Bianchi" {
		t.Fatalf("expected name split nome/cognome, got %q %q", cust.FirstName, cust.LastName)
	}
}

func TestCreateAppointment_NoPhoneSkipsCustomerUpsert(t *testing.T) {
	loc := studioLoc(t)
	repo := newFakeScheduleRepo()
	repo.addArtist(1, "Marco")
	repo.addRoom(5, "Stanza A", true)

	uc := NewCreateAppointment(repo, nil, loc)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ArtistID:    1,
		RoomID:      5,
		StartTime:   time.Date(2026, 3, 10, 10, 0, 0, 0, loc),
		DurationMin: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.customers) != 0 {
		t.Fatalf("expected no customer without phone, got %v", repo.customers)
	}
}
