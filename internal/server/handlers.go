package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/userdesk/userdesk/internal/model"
)

// The handlers delegate every operation to the UserStore and contain
// no storage logic of their own.  Miss semantics follow the store: a
// nil record maps to 404, a store error to 500.

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "list users failed", err)
		return
	}
	if users == nil {
		// An empty collection is [] on the wire, not null.
		users = []*model.User{}
	}
	s.writeJSON(w, r, http.StatusOK, users)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var p userPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if p.Name == "" || p.Email == "" || p.Phone == "" {
		s.fail(w, r, http.StatusBadRequest, "name, email and phone are required", nil)
		return
	}
	user, err := s.store.CreateUser(r.Context(), p.Name, p.Email, p.Phone)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "create user failed", err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, user)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid user id", err)
		return
	}
	user, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "get user failed", err)
		return
	}
	if user == nil {
		s.fail(w, r, http.StatusNotFound, "user not found", nil)
		return
	}
	s.writeJSON(w, r, http.StatusOK, user)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid user id", err)
		return
	}
	var p userPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if p.Name == "" || p.Email == "" || p.Phone == "" {
		s.fail(w, r, http.StatusBadRequest, "name, email and phone are required", nil)
		return
	}
	user, err := s.store.UpdateUser(r.Context(), id, p.Name, p.Email, p.Phone)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "update user failed", err)
		return
	}
	if user == nil {
		s.fail(w, r, http.StatusNotFound, "user not found", nil)
		return
	}
	s.writeJSON(w, r, http.StatusOK, user)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid user id", err)
		return
	}
	ok, err := s.store.DeleteUser(r.Context(), id)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "delete user failed", err)
		return
	}
	if !ok {
		s.fail(w, r, http.StatusNotFound, "user not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("id"))
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "path", r.URL.Path, "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	if err != nil {
		s.logger.Error(msg, "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, r, status, errorBody{Error: msg})
}
