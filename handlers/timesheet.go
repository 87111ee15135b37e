package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"timesheet/apperrors"
	"timesheet/approval"
	"timesheet/authz"
	"timesheet/config"
	"timesheet/database"
	"timesheet/middleware"
	"timesheet/models"
	"timesheet/store"
)

type TimesheetHandler struct {
	config    *config.Config
	templates map[string]*template.Template
	entries   store.EntryStore
	approval  *approval.Service
}

func NewTimesheetHandler(cfg *config.Config, templates map[string]*template.Template, entries store.EntryStore, svc *approval.Service) *TimesheetHandler {
	return &TimesheetHandler{
		config:    cfg,
		templates: templates,
		entries:   entries,
		approval:  svc,
	}
}

// ListEntries shows the entries visible to the actor: everything for
// managers, own entries otherwise, newest first.
func (h *TimesheetHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	employee := middleware.GetEmployeeFromContext(r.Context())

	entries, err := h.approval.List(user, employee)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var totalHours float64
	for _, e := range entries {
		totalHours += e.Hours
	}

	data := map[string]interface{}{
		"User":       user,
		"Employee":   employee,
		"IsManager":  authz.IsManager(user),
		"Entries":    entries,
		"TotalHours": totalHours,
		"Error":      r.URL.Query().Get("error"),
		"Success":    r.URL.Query().Get("success"),
	}
	h.templates["entries"].ExecuteTemplate(w, "base", data)
}

func (h *TimesheetHandler) NewEntryPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var tasks []models.Task
	database.GetDB().Preload("Project").Order("project_id asc, name asc").Find(&tasks)

	data := map[string]interface{}{
		"User":  user,
		"Tasks": tasks,
		"Error": r.URL.Query().Get("error"),
		"Today": time.Now().Format("2006-01-02"),
	}
	h.templates["entry-form"].ExecuteTemplate(w, "base", data)
}

func (h *TimesheetHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	employee := middleware.GetEmployeeFromContext(r.Context())
	if employee == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/entries/new?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	entry, errMsg := h.entryFromForm(r, &models.Entry{
		EmployeeID: employee.ID,
		Status:     models.StatusPending,
	})
	if errMsg != "" {
		http.Redirect(w, r, "/entries/new?error="+errMsg, http.StatusSeeOther)
		return
	}

	if err := h.entries.Save(entry); err != nil {
		http.Redirect(w, r, "/entries/new?error=Failed+to+create+entry", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/entries?success=Entry+created", http.StatusSeeOther)
}

func (h *TimesheetHandler) EditEntryPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	employee := middleware.GetEmployeeFromContext(r.Context())

	entry, ok := h.ownedEntry(w, r, employee, r.URL.Query().Get("id"))
	if !ok {
		return
	}

	var tasks []models.Task
	database.GetDB().Preload("Project").Order("project_id asc, name asc").Find(&tasks)

	data := map[string]interface{}{
		"User":  user,
		"Entry": entry,
		"Tasks": tasks,
		"Error": r.URL.Query().Get("error"),
	}
	h.templates["entry-edit"].ExecuteTemplate(w, "base", data)
}

// UpdateEntry lets the owner change task, date, hours and notes.
// Status is never touched here; that is the approval path only.
func (h *TimesheetHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	employee := middleware.GetEmployeeFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/entries?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	entry, ok := h.ownedEntry(w, r, employee, r.FormValue("id"))
	if !ok {
		return
	}

	updated, errMsg := h.entryFromForm(r, entry)
	if errMsg != "" {
		http.Redirect(w, r, fmt.Sprintf("/entries/edit?id=%d&error=%s", entry.ID, errMsg), http.StatusSeeOther)
		return
	}

	if err := h.entries.Save(updated); err != nil {
		http.Redirect(w, r, fmt.Sprintf("/entries/edit?id=%d&error=Failed+to+update+entry", entry.ID), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/entries?success=Entry+updated", http.StatusSeeOther)
}

func (h *TimesheetHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	employee := middleware.GetEmployeeFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/entries?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	entry, ok := h.ownedEntry(w, r, employee, r.FormValue("id"))
	if !ok {
		return
	}

	if err := h.entries.Delete(entry); err != nil {
		http.Redirect(w, r, "/entries?error=Failed+to+delete+entry", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/entries?success=Entry+deleted", http.StatusSeeOther)
}

// ApproveEntry applies a manager decision (approve/reject) to an entry.
func (h *TimesheetHandler) ApproveEntry(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/entries?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseUint(r.FormValue("id"), 10, 32)
	if err != nil {
		http.Redirect(w, r, "/entries?error=Invalid+entry+ID", http.StatusSeeOther)
		return
	}

	decision := approval.Decision(r.FormValue("decision"))

	confirmation, err := h.approval.ApplyDecision(user, uint(id), decision)
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	case errors.Is(err, apperrors.ErrNotFound):
		http.Redirect(w, r, "/entries?error=Entry+not+found", http.StatusSeeOther)
		return
	case errors.Is(err, apperrors.ErrInvalidDecision):
		http.Redirect(w, r, "/entries?error=Unknown+decision", http.StatusSeeOther)
		return
	case err != nil:
		http.Redirect(w, r, "/entries?error=Failed+to+apply+decision", http.StatusSeeOther)
		return
	}

	msg := fmt.Sprintf("Entry+%d+(%s,+%s)+is+now+%s",
		confirmation.EntryID,
		confirmation.Date.Format("2006-01-02"),
		confirmation.TaskName,
		confirmation.Status,
	)
	http.Redirect(w, r, "/entries?success="+msg, http.StatusSeeOther)
}

// entryFromForm fills owner-editable fields from the form and
// validates the result. Returns a redirect-safe message on failure.
func (h *TimesheetHandler) entryFromForm(r *http.Request, entry *models.Entry) (*models.Entry, string) {
	date, err := time.Parse("2006-01-02", r.FormValue("date"))
	if err != nil {
		return nil, "Invalid+date+format"
	}

	hours, err := strconv.ParseFloat(r.FormValue("hours"), 64)
	if err != nil {
		return nil, "Invalid+hours"
	}

	taskID, err := strconv.ParseUint(r.FormValue("task_id"), 10, 32)
	if err != nil {
		return nil, "Invalid+task"
	}

	entry.TaskID = uint(taskID)
	entry.Date = date
	entry.Hours = hours
	entry.Notes = r.FormValue("notes")

	if err := entry.Validate(); err != nil {
		return nil, "Validation+failed:+" + strings.ReplaceAll(err.Error(), " ", "+")
	}
	return entry, ""
}

// ownedEntry loads an entry and enforces the owner-only mutation rule.
func (h *TimesheetHandler) ownedEntry(w http.ResponseWriter, r *http.Request, employee *models.Employee, idStr string) (*models.Entry, bool) {
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		http.Redirect(w, r, "/entries?error=Invalid+entry+ID", http.StatusSeeOther)
		return nil, false
	}

	entry, err := h.entries.GetByID(uint(id))
	if errors.Is(err, apperrors.ErrNotFound) {
		http.Redirect(w, r, "/entries?error=Entry+not+found", http.StatusSeeOther)
		return nil, false
	}
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}

	if !authz.CanMutate(employee, entry) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil, false
	}
	return entry, true
}
