// Package report computes totaled views of approved entries for a
// period and actor scope. The same aggregates feed the on-screen
// report, the XLSX export and the emailed summary.
package report

import (
	"time"

	"timesheet/authz"
	"timesheet/models"
	"timesheet/store"

	"github.com/jinzhu/now"
)

type Aggregator struct {
	store store.EntryStore
}

func NewAggregator(st store.EntryStore) *Aggregator {
	return &Aggregator{store: st}
}

type Summary struct {
	Entries     []models.Entry
	TotalHours  float64
	TotalSalary float64
}

// Aggregate totals approved entries within [from, to] inclusive,
// scope-filtered by the actor's role. Nil bounds mean all-time.
func (a *Aggregator) Aggregate(actor *models.User, ownEmployee *models.Employee, from, to *time.Time) (*Summary, error) {
	entries, err := a.find(actor, ownEmployee, from, to, store.OrderDateDesc)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Entries: entries}
	for _, e := range entries {
		summary.TotalHours += e.Hours
		summary.TotalSalary += e.TotalSalary()
	}
	return summary, nil
}

// EmployeeGroup is one employee's slice of a grouped summary.
type EmployeeGroup struct {
	Employee models.Employee
	Rate     float64
	Entries  []models.Entry
	Subtotal float64
}

type GroupedSummary struct {
	Groups      []EmployeeGroup
	TotalHours  float64
	TotalSalary float64
}

// Grouped orders the same filtered set by employee then date
// descending and splits it into per-employee groups with subtotals.
func (a *Aggregator) Grouped(actor *models.User, ownEmployee *models.Employee, from, to *time.Time) (*GroupedSummary, error) {
	entries, err := a.find(actor, ownEmployee, from, to, store.OrderEmployeeDateDesc)
	if err != nil {
		return nil, err
	}

	grouped := &GroupedSummary{}
	for _, e := range entries {
		n := len(grouped.Groups)
		if n == 0 || grouped.Groups[n-1].Employee.ID != e.EmployeeID {
			grouped.Groups = append(grouped.Groups, EmployeeGroup{
				Employee: e.Employee,
				Rate:     e.Employee.HourlyRate,
			})
			n++
		}
		group := &grouped.Groups[n-1]
		group.Entries = append(group.Entries, e)
		group.Subtotal += e.TotalSalary()
		grouped.TotalHours += e.Hours
		grouped.TotalSalary += e.TotalSalary()
	}
	return grouped, nil
}

func (a *Aggregator) find(actor *models.User, ownEmployee *models.Employee, from, to *time.Time, order store.Order) ([]models.Entry, error) {
	filter := store.EntryFilter{
		Status: models.StatusApproved,
		From:   from,
		To:     to,
		Order:  order,
	}
	if authz.VisibleScope(actor) != authz.ScopeAll {
		filter.EmployeeID = ownEmployee.ID
	}
	return a.store.Find(filter)
}

// CurrentMonth is the default report period: first to last day of the
// calendar month containing now.
func CurrentMonth() (time.Time, time.Time) {
	return dateOnly(now.BeginningOfMonth()), dateOnly(now.EndOfMonth())
}

// ParseMonth turns a YYYY-MM parameter into inclusive month bounds.
func ParseMonth(value string) (time.Time, time.Time, error) {
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	n := now.New(t)
	return dateOnly(n.BeginningOfMonth()), dateOnly(n.EndOfMonth()), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
