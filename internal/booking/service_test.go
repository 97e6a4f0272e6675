package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"hospital-management-server/internal/models"
)

// fixedNow anchors the booking window so date arithmetic in tests is
// deterministic.
var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

type slotKey struct {
	doctorID string
	date     string
	time     string
}

// memStore is the shared state behind the mock repositories. It mirrors the
// storage rules of the real store: a partial uniqueness rule over
// non-cancelled appointments, and open slots computed as a set difference.
type memStore struct {
	slots      map[slotKey]*models.AvailabilitySlot
	appts      map[string]*models.Appointment
	treatments map[string]*models.Treatment
	doctors    map[string]*models.DoctorProfile
	seq        int
}

func newMemStore() *memStore {
	return &memStore{
		slots:      make(map[slotKey]*models.AvailabilitySlot),
		appts:      make(map[string]*models.Appointment),
		treatments: make(map[string]*models.Treatment),
		doctors:    make(map[string]*models.DoctorProfile),
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

// bookedAt reports whether a Booked appointment occupies the tuple,
// excluding the given appointment ID.
func (m *memStore) bookedAt(doctorID, date, timeOfDay, exclude string) bool {
	for id, a := range m.appts {
		if id == exclude {
			continue
		}
		if a.DoctorID == doctorID && a.Date == date && a.Time == timeOfDay && a.Status == models.StatusBooked {
			return true
		}
	}
	return false
}

// conflictAt reports whether a non-cancelled appointment occupies the
// tuple, excluding the given appointment ID. This is the uniqueness rule
// the real store enforces with a partial unique index.
func (m *memStore) conflictAt(doctorID, date, timeOfDay, exclude string) bool {
	for id, a := range m.appts {
		if id == exclude {
			continue
		}
		if a.DoctorID == doctorID && a.Date == date && a.Time == timeOfDay && a.Status != models.StatusCancelled {
			return true
		}
	}
	return false
}

type mockSlots struct {
	store *memStore
	// forceOpen makes IsOpen report true regardless of state, simulating a
	// pre-check racing against a concurrent booking.
	forceOpen bool
}

func (m *mockSlots) Create(_ context.Context, slot *models.AvailabilitySlot) error {
	key := slotKey{slot.DoctorID, slot.Date, slot.Time}
	if _, exists := m.store.slots[key]; exists {
		return ErrSlotExists
	}
	slot.ID = m.store.nextID("slot")
	stored := *slot
	m.store.slots[key] = &stored
	return nil
}

func (m *mockSlots) ListOpen(_ context.Context, doctorID, from, to string) ([]OpenSlot, error) {
	var open []OpenSlot
	for key, slot := range m.store.slots {
		if key.doctorID != doctorID || !slot.IsAvailable {
			continue
		}
		if key.date < from || key.date > to {
			continue
		}
		if m.store.bookedAt(doctorID, key.date, key.time, "") {
			continue
		}
		open = append(open, OpenSlot{Date: key.date, Time: key.time})
	}
	sort.Slice(open, func(i, j int) bool {
		if open[i].Date != open[j].Date {
			return open[i].Date < open[j].Date
		}
		return open[i].Time < open[j].Time
	})
	return open, nil
}

func (m *mockSlots) IsOpen(_ context.Context, doctorID, date, timeOfDay, excludeAppointmentID string) (bool, error) {
	if m.forceOpen {
		return true, nil
	}
	slot, exists := m.store.slots[slotKey{doctorID, date, timeOfDay}]
	if !exists || !slot.IsAvailable {
		return false, nil
	}
	return !m.store.bookedAt(doctorID, date, timeOfDay, excludeAppointmentID), nil
}

func (m *mockSlots) ListByDoctor(_ context.Context, doctorID, from, to string) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	for key, slot := range m.store.slots {
		if key.doctorID == doctorID && key.date >= from && key.date <= to {
			slots = append(slots, *slot)
		}
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		return slots[i].Time < slots[j].Time
	})
	return slots, nil
}

type mockAppts struct {
	store *memStore
}

func (m *mockAppts) Create(_ context.Context, appt *models.Appointment) error {
	if m.store.conflictAt(appt.DoctorID, appt.Date, appt.Time, "") {
		return ErrSlotTaken
	}
	appt.ID = m.store.nextID("appt")
	stored := *appt
	m.store.appts[appt.ID] = &stored
	return nil
}

func (m *mockAppts) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	appt, exists := m.store.appts[id]
	if !exists {
		return nil, ErrNotFound
	}
	copied := *appt
	if t, ok := m.store.treatments[id]; ok {
		tc := *t
		copied.Treatment = &tc
	}
	return &copied, nil
}

func (m *mockAppts) Update(_ context.Context, appt *models.Appointment) error {
	if _, exists := m.store.appts[appt.ID]; !exists {
		return ErrNotFound
	}
	if appt.Status != models.StatusCancelled && m.store.conflictAt(appt.DoctorID, appt.Date, appt.Time, appt.ID) {
		return ErrSlotTaken
	}
	stored := *appt
	m.store.appts[appt.ID] = &stored
	return nil
}

func (m *mockAppts) UpdateWithTreatment(ctx context.Context, appt *models.Appointment, treatment *models.Treatment) error {
	if err := m.Update(ctx, appt); err != nil {
		return err
	}
	if existing, ok := m.store.treatments[appt.ID]; ok {
		existing.Diagnosis = treatment.Diagnosis
		existing.Prescription = treatment.Prescription
		existing.Notes = treatment.Notes
		return nil
	}
	treatment.ID = m.store.nextID("treatment")
	stored := *treatment
	m.store.treatments[appt.ID] = &stored
	return nil
}

func (m *mockAppts) ListByPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	for id, a := range m.store.appts {
		if a.PatientID != patientID {
			continue
		}
		copied := *a
		if t, ok := m.store.treatments[id]; ok {
			tc := *t
			copied.Treatment = &tc
		}
		appts = append(appts, copied)
	}
	sort.Slice(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date > appts[j].Date
		}
		return appts[i].Time > appts[j].Time
	})
	return appts, nil
}

func (m *mockAppts) ListByDoctor(_ context.Context, doctorID, from, to string) ([]models.Appointment, error) {
	var appts []models.Appointment
	for _, a := range m.store.appts {
		if a.DoctorID == doctorID && a.Date >= from && a.Date <= to {
			appts = append(appts, *a)
		}
	}
	sort.Slice(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].Time < appts[j].Time
	})
	return appts, nil
}

type mockDoctors struct {
	store *memStore
}

func (m *mockDoctors) GetByID(_ context.Context, id string) (*models.DoctorProfile, error) {
	doctor, exists := m.store.doctors[id]
	if !exists {
		return nil, ErrNotFound
	}
	copied := *doctor
	return &copied, nil
}

var (
	_ SlotRepository        = (*mockSlots)(nil)
	_ AppointmentRepository = (*mockAppts)(nil)
	_ DoctorRepository      = (*mockDoctors)(nil)
)

// newTestService wires a service over fresh in-memory repositories with one
// registered doctor and a pinned clock.
func newTestService() (*Service, *memStore) {
	store := newMemStore()
	dept := "dept-1"
	store.doctors["doc-1"] = &models.DoctorProfile{
		BaseModel:    models.BaseModel{ID: "doc-1"},
		UserID:       "user-doc-1",
		DepartmentID: &dept,
		Name:         "Dr. Example",
	}
	svc := NewService(&mockSlots{store: store}, &mockAppts{store: store}, &mockDoctors{store: store})
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

func mustAddSlot(t *testing.T, svc *Service, doctorID, date, timeOfDay string) {
	t.Helper()
	if _, err := svc.AddSlot(context.Background(), doctorID, date, timeOfDay); err != nil {
		t.Fatalf("AddSlot(%s %s): %v", date, timeOfDay, err)
	}
}

func mustBook(t *testing.T, svc *Service, patientID, doctorID, date, timeOfDay string) *models.Appointment {
	t.Helper()
	appt, err := svc.Book(context.Background(), patientID, doctorID, date, timeOfDay)
	if err != nil {
		t.Fatalf("Book(%s %s): %v", date, timeOfDay, err)
	}
	return appt
}

func TestAddSlotWindow(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name    string
		date    string
		time    string
		wantErr bool
	}{
		{"today", "2025-03-10", "09:00", false},
		{"window edge", "2025-03-17", "09:00", false},
		{"past date", "2025-03-09", "09:00", true},
		{"beyond window", "2025-03-18", "09:00", true},
		{"bad date", "10-03-2025", "09:00", true},
		{"bad time", "2025-03-11", "9am", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddSlot(ctx, "doc-1", tc.date, tc.time)
			if tc.wantErr {
				if !IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestAddSlotDuplicateIsNoOp(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	mustAddSlot(t, svc, "doc-1", "2025-03-12", "10:00")
	if _, err := svc.AddSlot(ctx, "doc-1", "2025-03-12", "10:00"); !errors.Is(err, ErrSlotExists) {
		t.Fatalf("expected ErrSlotExists, got %v", err)
	}
	if len(store.slots) != 1 {
		t.Fatalf("expected 1 stored slot, got %d", len(store.slots))
	}
}

func TestListAvailableSlotsIsSetDifference(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustAddSlot(t, svc, "doc-1", "2025-03-12", "10:00")
	mustAddSlot(t, svc, "doc-1", "2025-03-12", "09:00")
	mustAddSlot(t, svc, "doc-1", "2025-03-11", "14:00")
	mustBook(t, svc, "pat-1", "doc-1", "2025-03-12", "09:00")

	open, err := svc.ListAvailableSlots(ctx, "doc-1", "2025-03-10", "2025-03-17")
	if err != nil {
		t.Fatalf("ListAvailableSlots: %v", err)
	}
	want := []OpenSlot{
		{Date: "2025-03-11", Time: "14:00"},
		{Date: "2025-03-12", Time: "10:00"},
	}
	if len(open) != len(want) {
		t.Fatalf("expected %d open slots, got %d: %v", len(want), len(open), open)
	}
	for i := range want {
		if open[i] != want[i] {
			t.Fatalf("slot %d: expected %v, got %v", i, want[i], open[i])
		}
	}
}

func TestListAvailableSlotsUnknownDoctor(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.ListAvailableSlots(context.Background(), "doc-missing", "2025-03-10", "2025-03-17"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBookOpenSlot(t *testing.T) {
	svc, _ := newTestService()

	mustAddSlot(t, svc, "doc-1", "2025-03-12", "10:00")
	appt := mustBook(t, svc, "pat-1", "doc-1", "2025-03-12", "10:00")

	if appt.Status != models.StatusBooked {
		t.Fatalf("expected status Booked, got %s", appt.Status)
	}
	if appt.DepartmentID == nil || *appt.DepartmentID != "dept-1" {
		t.Fatalf("expected department copied from doctor, got %v", appt.DepartmentID)
	}
	if appt.ID == "" {
		t.Fatal("expected appointment ID to be assigned")
	}
}

func TestBookDeclinedOutcomes(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustAddSlot(t, svc, "doc-1", "2025-03-12", "10:00")
	mustBook(t, svc, "pat-1", "doc-1", "2025-03-12", "10:00")

	// No published slot at this time.
	if _, err := svc.Book(ctx, "pat-2", "doc-1", "2025-03-12", "11:00"); !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable for unpublished slot, got %v", err)
	}
	// Slot already held by an active booking.
	if _, err := svc.Book(ctx, "pat-2", "doc-1", "2025-03-12", "10:00"); !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable for held slot, got %v", err)
	}
	// Unknown doctor.
	if _, err := svc.Book(ctx, "pat-2", "doc-missing", "2025-03-12", "10:00"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown doctor, got %v", err)
	}
	// Malformed input.
	if _, err := svc.Book(ctx, "pat-2", "doc-1", "12/03/2025", "10:00"); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBookRaceLosesToConstraint(t *testing.T) {
	// The availability pre-check passes but a concurrent booking wins the
	// slot first; the storage uniqueness rule must turn this into
	// ErrSlotTaken, not a double booking.
	store := newMemStore()
	store.doctors["doc-1"] = &models.DoctorProfile{BaseModel: models.BaseModel{ID: "doc-1"}}
	svc := NewService(&mockSlots{store: store, forceOpen: true}, &mockAppts{store: store}, &mockDoctors{store: store})
	svc.now = func() time.Time { return fixedNow }

	mustBook(t, svc, "pat-1", "doc-1", "2025-03-12", "10:00")
	if _, err := svc.Book(context.Background(), "pat-2", "doc-1", "2025-03-12", "10:00"); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestCancelFreesSlot(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustAddSlot(t, svc, "doc-1", "2025-03-12", "10:00")
	appt := mustBook(t, svc, "pat-1", "doc-1", "2025-03-12", "10:00")

	open, err := svc.ListAvailableSlots(ctx, "doc-1", "2025-03-10", "2025-03-17")
	if err != nil {
		t.Fatalf("ListAvailableSlots: %v", err)
	}
	if len(open) != 0 {
		t.Fatalf("expected no open slots while booked, got %v", open)
	}

	if err := svc.Cancel(ctx, appt.ID, "pat-1"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	// The slot reappears with no further write, and another patient can
	// take it.
	open, err = svc.ListAvailableSlots(ctx, "doc-1", "2025-03-10", "2025-03-17")
	if err != nil {
		t.Fatalf("ListAvailableSlots after cancel: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("expected slot to reappear after cancel, got %v", open)
	}
	mustBook(t, svc, "pat-2", "doc-1", "2025-03-12", "10:00")
}

func TestCancelIsIdempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustAddSlot(t, svc, "doc-1", "2025-03-12", "10:00")
	appt := mustBook(t, svc, "pat-1", "doc-1", "2025-03-12", "10:00")

	if err := svc.Cancel(ctx, appt.ID, "pat-1"); err != nil {
		t.Fatalf("first Cancel: %v", err)
	}
	if err := svc.Cancel(ctx, appt.ID, "pat-1"); !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}
}

func TestCancelOwnership(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustAddSlot(t, svc, "doc-1", "2025-03-12", "10:00")
	appt := mustBook(t, svc, "pat-1", "doc-1", "2025-03-12", "10:00")

	if err := svc.Cancel(ctx, appt.ID, "pat-2"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := svc.Cancel(ctx, "appt-missing", "pat-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReschedule(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustAddSlot(t, svc, "doc-1", "2025-03-12", "10:00")
	mustAddSlot(t, svc, "doc-1", "2025-03-13", "11:00")
	appt := mustBook(t, svc, "pat-1", "doc-1", "2025-03-12", "10:00")

	moved, err := svc.Reschedule(ctx, appt.ID, "pat-1", "2025-03-13", "11:00")
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if moved.Date != "2025-03-13" || moved.Time != "11:00" {
		t.Fatalf("expected appointment moved to 2025-03-13 11:00, got %s %s", moved.Date, moved.Time)
	}
	if moved.Status != models.StatusBooked {
		t.Fatalf("expected status Booked, got %s", moved.Status)
	}

	// The vacated slot is open again.
	open, err := svc.ListAvailableSlots(ctx, "doc-1", "2025-03-10", "2025-03-17")
	if err != nil {
		t.Fatalf("ListAvailableSlots: %v", err)
	}
	if len(open) != 1 || open[0].Date != "2025-03-12" {
		t.Fatalf("expected vacated 2025-03-12 slot open, got %v", open)
	}
}

func TestRescheduleExcludesSelfFromConflict(t *testing.T) {
	svc, _ := newTestService()

	mustAddSlot(t, svc, "doc-1", "2025-03-12", "10:00")
	appt := mustBook(t, svc, "pat-1", "doc-1", "2025-03-12", "10:00")

	// Rescheduling onto its own slot must not conflict with itself.
	if _, err := svc.Reschedule(context.Background(), appt.ID, "pat-1", "2025-03-12", "10:00"); err != nil {
		t.Fatalf("Reschedule onto own slot: %v", err)
	}
}

func TestRescheduleDeclinedOutcomes(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustAddSlot(t, svc, "doc-1", "2025-03-12", "10:00")
	mustAddSlot(t, svc, "doc-1", "2025-03-13", "11:00")
	appt := mustBook(t, svc, "pat-1", "doc-1", "2025-03-12", "10:00")
	mustBook(t, svc, "pat-2", "doc-1", "2025-03-13", "11:00")

	if _, err := svc.Reschedule(ctx, appt.ID, "pat-1", "2025-03-13", "11:00"); !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable for held target, got %v", err)
	}
	if _, err := svc.Reschedule(ctx, appt.ID, "pat-1", "2025-03-14", "09:00"); !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable for unpublished target, got %v", err)
	}
	if _, err := svc.Reschedule(ctx, appt.ID, "pat-2", "2025-03-12", "10:00"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if _, err := svc.Reschedule(ctx, appt.ID, "pat-1", "2025-03-12", "ten"); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRescheduleRevivesCancelledAppointment(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustAddSlot(t, svc, "doc-1", "2025-03-12", "10:00")
	mustAddSlot(t, svc, "doc-1", "2025-03-13", "11:00")
	appt := mustBook(t, svc, "pat-1", "doc-1", "2025-03-12", "10:00")

	if err := svc.Cancel(ctx, appt.ID, "pat-1"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	revived, err := svc.Reschedule(ctx, appt.ID, "pat-1", "2025-03-13", "11:00")
	if err != nil {
		t.Fatalf("Reschedule of cancelled appointment: %v", err)
	}
	if revived.Status != models.StatusBooked {
		t.Fatalf("expected revived appointment to be Booked, got %s", revived.Status)
	}
}

func TestSetStatusCompletedUpsertsTreatment(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	mustAddSlot(t, svc, "doc-1", "2025-03-12", "10:00")
	appt := mustBook(t, svc, "pat-1", "doc-1", "2025-03-12", "10:00")

	_, err := svc.SetStatus(ctx, appt.ID, "doc-1", models.StatusCompleted, &TreatmentInput{
		Diagnosis:    "Seasonal flu",
		Prescription: "Rest and fluids",
	})
	if err != nil {
		t.Fatalf("SetStatus Completed: %v", err)
	}
	first, ok := store.treatments[appt.ID]
	if !ok {
		t.Fatal("expected treatment record to be created")
	}
	if first.Diagnosis != "Seasonal flu" {
		t.Fatalf("unexpected diagnosis: %q", first.Diagnosis)
	}

	// Completing again overwrites in place; the appointment still has
	// exactly one treatment.
	_, err = svc.SetStatus(ctx, appt.ID, "doc-1", models.StatusCompleted, &TreatmentInput{
		Diagnosis: "Seasonal flu, follow-up",
		Notes:     "Recovering well",
	})
	if err != nil {
		t.Fatalf("second SetStatus Completed: %v", err)
	}
	if len(store.treatments) != 1 {
		t.Fatalf("expected exactly one treatment, got %d", len(store.treatments))
	}
	second := store.treatments[appt.ID]
	if second.ID != first.ID {
		t.Fatalf("expected treatment to be updated in place, got new ID %s", second.ID)
	}
	if second.Diagnosis != "Seasonal flu, follow-up" || second.Notes != "Recovering well" {
		t.Fatalf("treatment not overwritten: %+v", second)
	}
}

func TestSetStatusAwayFromCompletedKeepsTreatment(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	mustAddSlot(t, svc, "doc-1", "2025-03-12", "10:00")
	appt := mustBook(t, svc, "pat-1", "doc-1", "2025-03-12", "10:00")

	if _, err := svc.SetStatus(ctx, appt.ID, "doc-1", models.StatusCompleted, &TreatmentInput{Diagnosis: "Sprain"}); err != nil {
		t.Fatalf("SetStatus Completed: %v", err)
	}
	if _, err := svc.SetStatus(ctx, appt.ID, "doc-1", models.StatusBooked, nil); err != nil {
		t.Fatalf("SetStatus back to Booked: %v", err)
	}
	if _, ok := store.treatments[appt.ID]; !ok {
		t.Fatal("expected treatment to survive moving away from Completed")
	}
}

func TestSetStatusGuards(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustAddSlot(t, svc, "doc-1", "2025-03-12", "10:00")
	appt := mustBook(t, svc, "pat-1", "doc-1", "2025-03-12", "10:00")

	if _, err := svc.SetStatus(ctx, appt.ID, "doc-other", models.StatusCompleted, nil); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if _, err := svc.SetStatus(ctx, appt.ID, "doc-1", "Archived", nil); !IsValidation(err) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
	if _, err := svc.SetStatus(ctx, "appt-missing", "doc-1", models.StatusCancelled, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBookingWindow(t *testing.T) {
	svc, _ := newTestService()
	from, to := svc.BookingWindow()
	if from != "2025-03-10" {
		t.Fatalf("expected window start 2025-03-10, got %s", from)
	}
	if to != "2025-03-17" {
		t.Fatalf("expected window end 2025-03-17, got %s", to)
	}
}

func TestDoctorScheduleVisibility(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustAddSlot(t, svc, "doc-1", "2025-03-12", "10:00")
	mustAddSlot(t, svc, "doc-1", "2025-03-12", "11:00")
	mustBook(t, svc, "pat-1", "doc-1", "2025-03-12", "10:00")

	// MySlots shows everything published, booked or not.
	slots, err := svc.MySlots(ctx, "doc-1", "2025-03-10", "2025-03-17")
	if err != nil {
		t.Fatalf("MySlots: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 published slots, got %d", len(slots))
	}

	appts, err := svc.DoctorAppointments(ctx, "doc-1", "2025-03-10", "2025-03-17")
	if err != nil {
		t.Fatalf("DoctorAppointments: %v", err)
	}
	if len(appts) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(appts))
	}

	mine, err := svc.PatientAppointments(ctx, "pat-1")
	if err != nil {
		t.Fatalf("PatientAppointments: %v", err)
	}
	if len(mine) != 1 || mine[0].Status != models.StatusBooked {
		t.Fatalf("unexpected patient appointments: %+v", mine)
	}
}
