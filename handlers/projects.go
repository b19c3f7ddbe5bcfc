package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cityagent/db"
	dbmodels "cityagent/db/models"
	"cityagent/models"
)

// CreateProjectRequest is the minimal project creation body. Auth and the
// wider CRUD surface live elsewhere; this exists so the planning pipeline
// has projects to run against.
type CreateProjectRequest struct {
	Name            string   `json:"name"`
	CityType        string   `json:"city_type,omitempty"`
	Constraints     []string `json:"constraints,omitempty"`
	BlueprintWidth  int      `json:"blueprint_width"`
	BlueprintHeight int      `json:"blueprint_height"`
	BlueprintUnit   string   `json:"blueprint_unit,omitempty"`
}

// ProjectsHandler serves GET /api/projects?id=N (single project, with its
// parsed city data) and POST /api/projects.
func ProjectsHandler(store *db.ProjectStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		identity := r.Header.Get("X-User-ID")

		switch r.Method {
		case http.MethodGet:
			handleGetProject(ctx, w, r, store, identity)
		case http.MethodPost:
			handleCreateProject(ctx, w, r, store, identity)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func handleGetProject(ctx context.Context, w http.ResponseWriter, r *http.Request, store *db.ProjectStore, identity string) {
	rawID := r.URL.Query().Get("id")
	if rawID == "" {
		projects, err := store.ListProjects(ctx, identity)
		if err != nil {
			http.Error(w, "Failed to list projects", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"projects": projects, "count": len(projects)})
		return
	}

	id, err := strconv.Atoi(rawID)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid project id", http.StatusBadRequest)
		return
	}

	project, err := store.GetProject(ctx, id, identity)
	if errors.Is(err, models.ErrProjectNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to load project", http.StatusInternalServerError)
		return
	}

	city := models.ParseCityData(project.CityData)
	writeJSON(w, http.StatusOK, map[string]any{
		"project":       project,
		"city_data":     city,
		"feature_count": city.Count(),
	})
}

func handleCreateProject(ctx context.Context, w http.ResponseWriter, r *http.Request, store *db.ProjectStore, identity string) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Project name is required", http.StatusBadRequest)
		return
	}

	doc := &dbmodels.ProjectDocument{
		OwnerID:         identity,
		Name:            req.Name,
		CityType:        req.CityType,
		Constraints:     req.Constraints,
		BlueprintWidth:  req.BlueprintWidth,
		BlueprintHeight: req.BlueprintHeight,
		BlueprintUnit:   req.BlueprintUnit,
	}
	id, err := store.CreateProject(ctx, doc)
	if err != nil {
		http.Error(w, "Failed to create project", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}
