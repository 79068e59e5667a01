package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mhasan/lifeos/backend/models"
	"github.com/mhasan/lifeos/backend/server/auth"
	contextKey "github.com/mhasan/lifeos/backend/server/context_key"
)

// api holds the handler dependencies: one session per authenticated user.
type api struct {
	sessions *sessionManager
}

// writeJSON serializes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("error encoding response: %v", err)
	}
}

// writeError writes a JSON error payload with the given status code.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// userID extracts the authenticated user's id from the request context, as
// placed there by the JWT middleware. The second return value reports
// whether a valid id was present.
func userID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(contextKey.UserIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// requireSession resolves the authenticated user's session, writing the
// appropriate error response and returning nil if it cannot.
func (a *api) requireSession(w http.ResponseWriter, r *http.Request) *session {
	id, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return nil
	}
	s, err := a.sessions.get(r.Context(), id)
	if err != nil {
		log.Printf("error getting session for user %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return nil
	}
	return s
}

type credentialsPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AuthToken    string `json:"authToken"`
	RefreshToken string `json:"refreshToken"`
}

func (a *api) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, refreshToken, err := auth.SignUp(payload.Username, payload.Email, payload.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{AuthToken: token, RefreshToken: refreshToken})
}

func (a *api) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, refreshToken, err := auth.SignIn(payload.Username, payload.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AuthToken: token, RefreshToken: refreshToken})
}

func (a *api) handleRefresh(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var payload struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, refreshToken, err := auth.RefreshToken(id, payload.RefreshToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AuthToken: token, RefreshToken: refreshToken})
}

func (a *api) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var payload struct {
		CurrentPassword string `json:"currentPassword"`
		NewUsername     string `json:"newUsername"`
		NewEmail        string `json:"newEmail"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := auth.UpdateUser(id, payload.CurrentPassword, payload.NewUsername, payload.NewEmail, payload.NewPassword); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *api) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	a.sessions.drop(id)
	if _, err := auth.DeleteUser(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *api) handleGetData(w http.ResponseWriter, r *http.Request) {
	s := a.requireSession(w, r)
	if s == nil {
		return
	}
	writeJSON(w, http.StatusOK, s.store.Data())
}

func (a *api) handleExport(w http.ResponseWriter, r *http.Request) {
	s := a.requireSession(w, r)
	if s == nil {
		return
	}
	payload, err := s.store.ExportData()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error exporting data")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=lifeos-backup.json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

func (a *api) handleImport(w http.ResponseWriter, r *http.Request) {
	s := a.requireSession(w, r)
	if s == nil {
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "error reading request body")
		return
	}
	if !s.store.ImportData(string(body)) {
		writeError(w, http.StatusBadRequest, "invalid backup file")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *api) handleActiveReminder(w http.ResponseWriter, r *http.Request) {
	s := a.requireSession(w, r)
	if s == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]*models.Reminder{"reminder": s.poller.Active()})
}

func (a *api) handleAcknowledgeReminder(w http.ResponseWriter, r *http.Request) {
	s := a.requireSession(w, r)
	if s == nil {
		return
	}
	s.poller.Acknowledge()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *api) handleSnoozeReminder(w http.ResponseWriter, r *http.Request) {
	s := a.requireSession(w, r)
	if s == nil {
		return
	}
	s.poller.Snooze()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// idPayload is the body shape shared by every command that targets a single
// entity by id.
type idPayload struct {
	ID string `json:"id"`
}

// handleCommand dispatches a named mutation against the user's life data.
// Commands mirror the store's API one to one; the response is the created
// entity for add commands and a status envelope otherwise.
func (a *api) handleCommand(w http.ResponseWriter, r *http.Request) {
	s := a.requireSession(w, r)
	if s == nil {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "error reading request body")
		return
	}

	command := mux.Vars(r)["command"]
	result, err := dispatchCommand(s, command, body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if result == nil {
		result = map[string]string{"status": "ok"}
	}
	writeJSON(w, http.StatusOK, result)
}
