// Package approval implements the manager decision flow for timesheet
// entries: the pending -> approved/rejected transition, the scoped
// listing, and the weekly overtime check that fires when an entry
// becomes approved.
package approval

import (
	"fmt"
	"time"

	"timesheet/apperrors"
	"timesheet/authz"
	"timesheet/mailer"
	"timesheet/models"
	"timesheet/store"

	log "github.com/sirupsen/logrus"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// WeeklyHoursLimit is the approved-hours norm per employee per
// Monday-to-Sunday week. Anything above it is overtime.
const WeeklyHoursLimit = 40.0

type Service struct {
	store         store.EntryStore
	mail          mailer.Sender
	fallbackEmail string
}

func NewService(st store.EntryStore, mail mailer.Sender, fallbackEmail string) *Service {
	return &Service{store: st, mail: mail, fallbackEmail: fallbackEmail}
}

// Confirmation is returned to the caller so the UI can surface what
// was decided.
type Confirmation struct {
	EntryID  uint
	Date     time.Time
	TaskName string
	Status   models.Status
}

// ApplyDecision moves an entry's status per the manager's decision.
// Re-running a decision on an already-finalized entry overwrites the
// status again; the overtime check is transition-based, so only the
// first move into approved can notify.
func (s *Service) ApplyDecision(actor *models.User, entryID uint, decision Decision) (*Confirmation, error) {
	if !authz.CanApprove(actor) {
		return nil, apperrors.ErrForbidden
	}

	entry, err := s.store.GetByID(entryID)
	if err != nil {
		return nil, err
	}

	var next models.Status
	switch decision {
	case DecisionApprove:
		next = models.StatusApproved
	case DecisionReject:
		next = models.StatusRejected
	default:
		return nil, apperrors.ErrInvalidDecision
	}

	prior := entry.Status
	entry.Status = next

	// The check runs before the save, against the persisted state, so
	// a failed notification leaves the entry untouched.
	if prior != models.StatusApproved && next == models.StatusApproved {
		if err := s.checkOvertime(entry); err != nil {
			return nil, err
		}
	}

	if err := s.store.Save(entry); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"entry_id": entry.ID,
		"status":   entry.Status,
		"actor":    actor.Username,
	}).Info("entry decision applied")

	return &Confirmation{
		EntryID:  entry.ID,
		Date:     entry.Date,
		TaskName: entry.Task.Name,
		Status:   entry.Status,
	}, nil
}

// List returns entries visible to the actor, date descending.
// ownEmployee is the actor's payroll profile, used for the OWN scope.
func (s *Service) List(actor *models.User, ownEmployee *models.Employee) ([]models.Entry, error) {
	filter := store.EntryFilter{Order: store.OrderDateDesc}
	if authz.VisibleScope(actor) != authz.ScopeAll {
		filter.EmployeeID = ownEmployee.ID
	}
	return s.store.Find(filter)
}

// WeekBounds returns the Monday and Sunday of the week containing d.
func WeekBounds(d time.Time) (time.Time, time.Time) {
	offset := (int(d.Weekday()) + 6) % 7
	start := d.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

func (s *Service) checkOvertime(entry *models.Entry) error {
	weekStart, weekEnd := WeekBounds(entry.Date)

	approved, err := s.store.Find(store.EntryFilter{
		EmployeeID: entry.EmployeeID,
		Status:     models.StatusApproved,
		From:       &weekStart,
		To:         &weekEnd,
	})
	if err != nil {
		return err
	}

	// The entry being approved is not yet persisted as approved, so
	// count its hours directly and skip its stored row.
	total := entry.Hours
	for _, e := range approved {
		if e.ID != entry.ID {
			total += e.Hours
		}
	}

	if total <= WeeklyHoursLimit {
		return nil
	}

	to := entry.Employee.User.Email
	if to == "" {
		to = s.fallbackEmail
	}

	log.WithFields(log.Fields{
		"employee_id": entry.EmployeeID,
		"week_start":  weekStart.Format("2006-01-02"),
		"total_hours": total,
	}).Info("weekly overtime detected")

	subject := "Overtime recorded"
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"For the week %s — %s you have %.2f approved hours on record (the norm is %.0f).\n\n"+
			"Overtime: %.2f hours.\n\n"+
			"Timesheet system",
		entry.Employee.DisplayName(),
		weekStart.Format("02.01.2006"), weekEnd.Format("02.01.2006"),
		total, WeeklyHoursLimit, total-WeeklyHoursLimit,
	)

	return s.mail.Send(to, subject, body)
}
