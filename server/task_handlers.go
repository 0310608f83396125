package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/taskcart/taskcart/projects"
)

type taskRequest struct {
	Title      string `json:"title"`
	Notes      string `json:"notes"`
	AssigneeID string `json:"assignee_id"`
	Done       *bool  `json:"done"`
}

// ownedTask resolves the {id} path value to a task whose parent project is
// owned by the caller. The parent is fetched by explicit lookup on the
// project_id reference.
func (s *Server) ownedTask(w http.ResponseWriter, r *http.Request, ownerID string) (*projects.Task, bool) {
	task, err := s.repos.Tasks.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return nil, false
	}

	project, err := s.repos.Projects.Get(r.Context(), task.ProjectID)
	if err != nil {
		writeDomainError(w, err)
		return nil, false
	}
	if project.OwnerID != ownerID {
		writeDomainError(w, projects.ErrNotFound)
		return nil, false
	}
	return task, true
}

func (s *Server) ListTasksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := mustIdentity(w, r)
		if !ok {
			return
		}

		project, ok := s.ownedProject(w, r, identity.AccountID)
		if !ok {
			return
		}

		tasks, err := s.repos.Tasks.ListByProject(r.Context(), project.ID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tasks)
	}
}

func (s *Server) CreateTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := mustIdentity(w, r)
		if !ok {
			return
		}

		project, ok := s.ownedProject(w, r, identity.AccountID)
		if !ok {
			return
		}

		var req taskRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "malformed request body")
			return
		}
		req.Title = strings.TrimSpace(req.Title)
		if req.Title == "" {
			writeError(w, http.StatusBadRequest, "invalid_input", "task title is required")
			return
		}

		task := &projects.Task{
			ProjectID:  project.ID,
			AssigneeID: req.AssigneeID,
			Title:      req.Title,
			Notes:      req.Notes,
			CreatedAt:  time.Now(),
		}
		if err := s.repos.Tasks.Create(r.Context(), task); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, task)
	}
}

func (s *Server) UpdateTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := mustIdentity(w, r)
		if !ok {
			return
		}

		task, ok := s.ownedTask(w, r, identity.AccountID)
		if !ok {
			return
		}

		var req taskRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "malformed request body")
			return
		}
		if title := strings.TrimSpace(req.Title); title != "" {
			task.Title = title
		}
		task.Notes = req.Notes
		task.AssigneeID = req.AssigneeID
		if req.Done != nil {
			task.Done = *req.Done
		}

		if err := s.repos.Tasks.Update(r.Context(), task); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, task)
	}
}

func (s *Server) DeleteTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := mustIdentity(w, r)
		if !ok {
			return
		}

		task, ok := s.ownedTask(w, r, identity.AccountID)
		if !ok {
			return
		}

		if err := s.repos.Tasks.Delete(r.Context(), task.ID); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusNoContent, nil)
	}
}
