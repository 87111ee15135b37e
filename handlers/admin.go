package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"timesheet/config"
	"timesheet/database"
	"timesheet/middleware"
	"timesheet/models"
)

// AdminHandler covers the manager-only project and task registries.
type AdminHandler struct {
	config    *config.Config
	templates map[string]*template.Template
}

func NewAdminHandler(cfg *config.Config, templates map[string]*template.Template) *AdminHandler {
	return &AdminHandler{
		config:    cfg,
		templates: templates,
	}
}

func (h *AdminHandler) ProjectsPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var projects []models.Project
	database.GetDB().Preload("Tasks").Preload("Employees").Preload("Employees.User").
		Order("name asc").Find(&projects)

	data := map[string]interface{}{
		"User":     user,
		"Projects": projects,
		"Error":    r.URL.Query().Get("error"),
		"Success":  r.URL.Query().Get("success"),
	}
	h.templates["projects"].ExecuteTemplate(w, "base", data)
}

func (h *AdminHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/projects?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		http.Redirect(w, r, "/projects?error=Project+name+is+required", http.StatusSeeOther)
		return
	}

	project := models.Project{
		Name:        name,
		Description: r.FormValue("description"),
	}
	if err := database.GetDB().Create(&project).Error; err != nil {
		http.Redirect(w, r, "/projects?error=Failed+to+create+project", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/projects?success=Project+created", http.StatusSeeOther)
}

// DeleteProject removes a project and, through the cascade, its tasks.
func (h *AdminHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/projects?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseUint(r.FormValue("id"), 10, 32)
	if err != nil {
		http.Redirect(w, r, "/projects?error=Invalid+project+ID", http.StatusSeeOther)
		return
	}

	if err := database.GetDB().Delete(&models.Project{}, id).Error; err != nil {
		http.Redirect(w, r, "/projects?error=Failed+to+delete+project", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/projects?success=Project+deleted", http.StatusSeeOther)
}

func (h *AdminHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/projects?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	projectID, err := strconv.ParseUint(r.FormValue("project_id"), 10, 32)
	if err != nil {
		http.Redirect(w, r, "/projects?error=Invalid+project+ID", http.StatusSeeOther)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		http.Redirect(w, r, "/projects?error=Task+name+is+required", http.StatusSeeOther)
		return
	}

	task := models.Task{
		Name:        name,
		Description: r.FormValue("description"),
		ProjectID:   uint(projectID),
	}
	if err := database.GetDB().Create(&task).Error; err != nil {
		http.Redirect(w, r, "/projects?error=Failed+to+create+task", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/projects?success=Task+created", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/projects?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseUint(r.FormValue("id"), 10, 32)
	if err != nil {
		http.Redirect(w, r, "/projects?error=Invalid+task+ID", http.StatusSeeOther)
		return
	}

	if err := database.GetDB().Delete(&models.Task{}, id).Error; err != nil {
		http.Redirect(w, r, "/projects?error=Failed+to+delete+task", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/projects?success=Task+deleted", http.StatusSeeOther)
}
