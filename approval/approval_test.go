package approval

import (
	"errors"
	"sort"
	"testing"
	"time"

	"timesheet/apperrors"
	"timesheet/models"
	"timesheet/store"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	entries map[uint]*models.Entry
	nextID  uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[uint]*models.Entry), nextID: 1}
}

func (f *fakeStore) add(e models.Entry) *models.Entry {
	e.ID = f.nextID
	f.nextID++
	stored := e
	f.entries[stored.ID] = &stored
	return &stored
}

func (f *fakeStore) Find(filter store.EntryFilter) ([]models.Entry, error) {
	var out []models.Entry
	for _, e := range f.entries {
		if filter.EmployeeID != 0 && e.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Date.After(*filter.To) {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.Order == store.OrderEmployeeDateDesc && out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (f *fakeStore) GetByID(id uint) (*models.Entry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeStore) Save(entry *models.Entry) error {
	if entry.ID == 0 {
		entry.ID = f.nextID
		f.nextID++
	}
	copied := *entry
	f.entries[entry.ID] = &copied
	return nil
}

func (f *fakeStore) Delete(entry *models.Entry) error {
	delete(f.entries, entry.ID)
	return nil
}

func (f *fakeStore) GetOrCreateEmployee(userID uint, defaultRate float64) (*models.Employee, error) {
	return &models.Employee{ID: userID, UserID: userID, HourlyRate: defaultRate}, nil
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to, subject, body string
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

var (
	manager  = &models.User{ID: 1, Username: "boss", Role: models.RoleManager}
	worker   = &models.User{ID: 2, Username: "worker", Email: "worker@company.com", Role: models.RoleEmployee}
	employee = models.Employee{ID: 10, UserID: 2, User: *worker, HourlyRate: 20.00}
)

// Monday of a fixed reference week.
var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func entryOn(date time.Time, hours float64, status models.Status) models.Entry {
	return models.Entry{
		EmployeeID: employee.ID,
		Employee:   employee,
		TaskID:     1,
		Task:       models.Task{ID: 1, Name: "Backend"},
		Date:       date,
		Hours:      hours,
		Status:     status,
	}
}

func TestApplyDecision_RequiresManager(t *testing.T) {
	st := newFakeStore()
	mail := &fakeMailer{}
	svc := NewService(st, mail, "fallback@example.com")

	entry := st.add(entryOn(monday, 8, models.StatusPending))

	_, err := svc.ApplyDecision(worker, entry.ID, DecisionApprove)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	stored, _ := st.GetByID(entry.ID)
	require.Equal(t, models.StatusPending, stored.Status)
	require.Empty(t, mail.sent)
}

func TestApplyDecision_UnknownEntry(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeMailer{}, "fallback@example.com")

	_, err := svc.ApplyDecision(manager, 999, DecisionApprove)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestApplyDecision_InvalidDecision(t *testing.T) {
	st := newFakeStore()
	svc := NewService(st, &fakeMailer{}, "fallback@example.com")

	entry := st.add(entryOn(monday, 8, models.StatusPending))

	_, err := svc.ApplyDecision(manager, entry.ID, Decision("escalate"))
	require.ErrorIs(t, err, apperrors.ErrInvalidDecision)

	stored, _ := st.GetByID(entry.ID)
	require.Equal(t, models.StatusPending, stored.Status)
}

func TestApplyDecision_Reject(t *testing.T) {
	st := newFakeStore()
	mail := &fakeMailer{}
	svc := NewService(st, mail, "fallback@example.com")

	entry := st.add(entryOn(monday, 50, models.StatusPending))

	confirmation, err := svc.ApplyDecision(manager, entry.ID, DecisionReject)
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, confirmation.Status)
	require.Equal(t, "Backend", confirmation.TaskName)

	stored, _ := st.GetByID(entry.ID)
	require.Equal(t, models.StatusRejected, stored.Status)
	require.Empty(t, mail.sent, "rejection never notifies, whatever the hours")
}

func TestApplyDecision_ApproveUnderLimit(t *testing.T) {
	st := newFakeStore()
	mail := &fakeMailer{}
	svc := NewService(st, mail, "fallback@example.com")

	st.add(entryOn(monday, 8, models.StatusApproved))
	st.add(entryOn(monday.AddDate(0, 0, 2), 10, models.StatusApproved))
	entry := st.add(entryOn(monday.AddDate(0, 0, 4), 10, models.StatusPending))

	_, err := svc.ApplyDecision(manager, entry.ID, DecisionApprove)
	require.NoError(t, err)

	stored, _ := st.GetByID(entry.ID)
	require.Equal(t, models.StatusApproved, stored.Status)
	require.Empty(t, mail.sent, "28 weekly hours is under the limit")
}

func TestApplyDecision_OvertimeNotification(t *testing.T) {
	st := newFakeStore()
	mail := &fakeMailer{}
	svc := NewService(st, mail, "fallback@example.com")

	// Monday 8h, Wednesday 10h, Friday 10h already approved: 28h.
	st.add(entryOn(monday, 8, models.StatusApproved))
	st.add(entryOn(monday.AddDate(0, 0, 2), 10, models.StatusApproved))
	st.add(entryOn(monday.AddDate(0, 0, 4), 10, models.StatusApproved))

	// Another 15h on Friday takes the week to 43h.
	entry := st.add(entryOn(monday.AddDate(0, 0, 4), 15, models.StatusPending))

	confirmation, err := svc.ApplyDecision(manager, entry.ID, DecisionApprove)
	require.NoError(t, err)
	require.Equal(t, models.StatusApproved, confirmation.Status)

	require.Len(t, mail.sent, 1)
	require.Equal(t, "worker@company.com", mail.sent[0].to)
	require.Contains(t, mail.sent[0].body, "43.00")
	require.Contains(t, mail.sent[0].body, "Overtime: 3.00 hours")
	require.Contains(t, mail.sent[0].body, "01.01.2024")
	require.Contains(t, mail.sent[0].body, "07.01.2024")

	stored, _ := st.GetByID(entry.ID)
	require.Equal(t, 300.00, stored.TotalSalary())
}

func TestApplyDecision_ReapprovalDoesNotRenotify(t *testing.T) {
	st := newFakeStore()
	mail := &fakeMailer{}
	svc := NewService(st, mail, "fallback@example.com")

	st.add(entryOn(monday, 38, models.StatusApproved))
	entry := st.add(entryOn(monday.AddDate(0, 0, 1), 5, models.StatusPending))

	_, err := svc.ApplyDecision(manager, entry.ID, DecisionApprove)
	require.NoError(t, err)
	require.Len(t, mail.sent, 1)

	// The decision can be re-run, but the monitor is transition-based.
	_, err = svc.ApplyDecision(manager, entry.ID, DecisionApprove)
	require.NoError(t, err)
	require.Len(t, mail.sent, 1)
}

func TestApplyDecision_EntriesOutsideWeekIgnored(t *testing.T) {
	st := newFakeStore()
	mail := &fakeMailer{}
	svc := NewService(st, mail, "fallback@example.com")

	// Previous Sunday and next Monday carry heavy hours, but they are
	// outside the entry's week.
	st.add(entryOn(monday.AddDate(0, 0, -1), 39, models.StatusApproved))
	st.add(entryOn(monday.AddDate(0, 0, 7), 39, models.StatusApproved))
	entry := st.add(entryOn(monday.AddDate(0, 0, 6), 39, models.StatusPending))

	_, err := svc.ApplyDecision(manager, entry.ID, DecisionApprove)
	require.NoError(t, err)
	require.Empty(t, mail.sent)
}

func TestApplyDecision_PendingHoursNotCounted(t *testing.T) {
	st := newFakeStore()
	mail := &fakeMailer{}
	svc := NewService(st, mail, "fallback@example.com")

	st.add(entryOn(monday, 39, models.StatusPending))
	st.add(entryOn(monday.AddDate(0, 0, 1), 39, models.StatusRejected))
	entry := st.add(entryOn(monday.AddDate(0, 0, 2), 5, models.StatusPending))

	_, err := svc.ApplyDecision(manager, entry.ID, DecisionApprove)
	require.NoError(t, err)
	require.Empty(t, mail.sent, "only approved hours count toward the weekly sum")
}

func TestApplyDecision_FallbackRecipient(t *testing.T) {
	st := newFakeStore()
	mail := &fakeMailer{}
	svc := NewService(st, mail, "fallback@example.com")

	noMail := employee
	noMail.User.Email = ""
	entry := entryOn(monday, 45, models.StatusPending)
	entry.Employee = noMail
	stored := st.add(entry)

	_, err := svc.ApplyDecision(manager, stored.ID, DecisionApprove)
	require.NoError(t, err)
	require.Len(t, mail.sent, 1)
	require.Equal(t, "fallback@example.com", mail.sent[0].to)
}

func TestApplyDecision_MailFailureAbortsSave(t *testing.T) {
	st := newFakeStore()
	mail := &fakeMailer{err: errors.New("smtp down")}
	svc := NewService(st, mail, "fallback@example.com")

	entry := st.add(entryOn(monday, 45, models.StatusPending))

	_, err := svc.ApplyDecision(manager, entry.ID, DecisionApprove)
	require.Error(t, err)

	stored, _ := st.GetByID(entry.ID)
	require.Equal(t, models.StatusPending, stored.Status, "failed dispatch leaves the entry unchanged")
}

func TestList_ScopedByRole(t *testing.T) {
	st := newFakeStore()
	svc := NewService(st, &fakeMailer{}, "fallback@example.com")

	other := models.Employee{ID: 11, UserID: 3, HourlyRate: 15}
	st.add(entryOn(monday, 8, models.StatusPending))
	foreign := entryOn(monday.AddDate(0, 0, 1), 6, models.StatusPending)
	foreign.EmployeeID = other.ID
	foreign.Employee = other
	st.add(foreign)

	own, err := svc.List(worker, &employee)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, employee.ID, own[0].EmployeeID)

	all, err := svc.List(manager, &models.Employee{ID: 99})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.True(t, !all[0].Date.Before(all[1].Date), "ordered date descending")
}

func TestWeekBounds(t *testing.T) {
	start, end := WeekBounds(monday)
	require.Equal(t, monday, start)
	require.Equal(t, monday.AddDate(0, 0, 6), end)

	// A Sunday belongs to the week starting the preceding Monday.
	sunday := monday.AddDate(0, 0, 6)
	start, end = WeekBounds(sunday)
	require.Equal(t, monday, start)
	require.Equal(t, sunday, end)

	start, _ = WeekBounds(monday.AddDate(0, 0, 3))
	require.Equal(t, monday, start)
}
