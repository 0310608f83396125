package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/taskcart/taskcart/projects"
)

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ownedProject resolves the {id} path value to a project owned by the caller.
// Projects owned by someone else answer not-found, never forbidden, so the
// endpoint does not confirm the record exists.
func (s *Server) ownedProject(w http.ResponseWriter, r *http.Request, ownerID string) (*projects.Project, bool) {
	project, err := s.repos.Projects.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return nil, false
	}
	if project.OwnerID != ownerID {
		writeDomainError(w, projects.ErrNotFound)
		return nil, false
	}
	return project, true
}

func (s *Server) ListProjectsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := mustIdentity(w, r)
		if !ok {
			return
		}

		list, err := s.repos.Projects.ListByOwner(r.Context(), identity.AccountID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) CreateProjectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := mustIdentity(w, r)
		if !ok {
			return
		}

		var req projectRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "malformed request body")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "invalid_input", "project name is required")
			return
		}

		project := &projects.Project{
			OwnerID:     identity.AccountID,
			Name:        req.Name,
			Description: req.Description,
			CreatedAt:   time.Now(),
		}
		if err := s.repos.Projects.Create(r.Context(), project); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, project)
	}
}

func (s *Server) GetProjectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := mustIdentity(w, r)
		if !ok {
			return
		}

		project, ok := s.ownedProject(w, r, identity.AccountID)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, project)
	}
}

func (s *Server) UpdateProjectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := mustIdentity(w, r)
		if !ok {
			return
		}

		project, ok := s.ownedProject(w, r, identity.AccountID)
		if !ok {
			return
		}

		var req projectRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "malformed request body")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "invalid_input", "project name is required")
			return
		}

		project.Name = req.Name
		project.Description = req.Description
		if err := s.repos.Projects.Update(r.Context(), project); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, project)
	}
}

func (s *Server) DeleteProjectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := mustIdentity(w, r)
		if !ok {
			return
		}

		project, ok := s.ownedProject(w, r, identity.AccountID)
		if !ok {
			return
		}

		if err := s.repos.Projects.Delete(r.Context(), project.ID); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusNoContent, nil)
	}
}
