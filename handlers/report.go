package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"timesheet/config"
	"timesheet/export"
	"timesheet/mailer"
	"timesheet/middleware"
	"timesheet/report"
)

type ReportHandler struct {
	config     *config.Config
	templates  map[string]*template.Template
	aggregator *report.Aggregator
	mail       mailer.Sender
}

func NewReportHandler(cfg *config.Config, templates map[string]*template.Template, agg *report.Aggregator, mail mailer.Sender) *ReportHandler {
	return &ReportHandler{
		config:     cfg,
		templates:  templates,
		aggregator: agg,
		mail:       mail,
	}
}

// Report shows approved totals for a month (default: current month),
// scoped to the actor.
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	employee := middleware.GetEmployeeFromContext(r.Context())

	var from, to time.Time
	monthStr := r.URL.Query().Get("month")
	if monthStr == "" {
		from, to = report.CurrentMonth()
	} else {
		var err error
		from, to, err = report.ParseMonth(monthStr)
		if err != nil {
			http.Redirect(w, r, "/report?error=Invalid+month,+use+YYYY-MM", http.StatusSeeOther)
			return
		}
	}

	summary, err := h.aggregator.Aggregate(user, employee, &from, &to)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"User":        user,
		"IsManager":   user.IsManager(),
		"From":        from,
		"To":          to,
		"Month":       monthStr,
		"Entries":     summary.Entries,
		"TotalHours":  summary.TotalHours,
		"TotalSalary": summary.TotalSalary,
		"Error":       r.URL.Query().Get("error"),
		"Success":     r.URL.Query().Get("success"),
	}
	h.templates["report"].ExecuteTemplate(w, "base", data)
}

// ExportXLSX downloads approved entries as a workbook. Unlike the
// report view, no month parameter means all-time.
func (h *ReportHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	employee := middleware.GetEmployeeFromContext(r.Context())

	var from, to *time.Time
	filename := "timesheets_all.xlsx"
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		f, t, err := report.ParseMonth(monthStr)
		if err != nil {
			http.Error(w, "Invalid month, use YYYY-MM", http.StatusBadRequest)
			return
		}
		from, to = &f, &t
		filename = fmt.Sprintf("timesheets_%s.xlsx", monthStr)
	}

	summary, err := h.aggregator.Aggregate(user, employee, from, to)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	buf, err := export.Timesheets(summary.Entries)
	if err != nil {
		http.Error(w, "Failed to generate export", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Write(buf.Bytes())
}

// EmailReport mails the all-time grouped report to the requesting
// manager.
func (h *ReportHandler) EmailReport(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	employee := middleware.GetEmployeeFromContext(r.Context())

	grouped, err := h.aggregator.Grouped(user, employee, nil, nil)
	if err != nil {
		http.Redirect(w, r, "/report?error=Failed+to+build+report", http.StatusSeeOther)
		return
	}

	to := user.Email
	if to == "" {
		to = h.config.FallbackEmail
	}

	if err := h.mail.Send(to, "Timesheet report", report.RenderText(grouped)); err != nil {
		http.Redirect(w, r, "/report?error=Failed+to+send+report", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/report?success=Report+sent", http.StatusSeeOther)
}
