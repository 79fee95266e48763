package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"fitlog/models"
	"fitlog/services/users"
)

// userStore is the slice of the users service the handlers consume.
type userStore interface {
	FindByName(ctx context.Context, name string) (*models.User, error)
	Create(ctx context.Context, name string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	AppendExercise(ctx context.Context, userID string, exercise models.Exercise) (*models.User, error)
	List(ctx context.Context) ([]models.UserSummary, error)
}

var _ userStore = (*users.Service)(nil)

// UsersHandler exposes the exercise-tracker REST endpoints.
type UsersHandler struct {
	store userStore
	log   *slog.Logger
	now   func() time.Time
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(store userStore, log *slog.Logger) *UsersHandler {
	return &UsersHandler{
		store: store,
		log:   log.With("component", "handlers"),
		now:   time.Now,
	}
}

// Register mounts the API routes. The log route accepts the user either as a
// query parameter or as a path segment.
func (h *UsersHandler) Register(r *mux.Router) {
	r.HandleFunc("/api/exercise/new-user", h.CreateUser).Methods(http.MethodPost)
	r.HandleFunc("/api/exercise/add", h.AddExercise).Methods(http.MethodPost)
	r.HandleFunc("/api/exercise/log", h.GetLog).Methods(http.MethodGet)
	r.HandleFunc("/api/exercise/log/{userId}", h.GetLog).Methods(http.MethodGet)
	r.HandleFunc("/api/exercise/users", h.ListUsers).Methods(http.MethodGet)
}

type newUserResponse struct {
	Name string `json:"name"`
	ID   string `json:"_id"`
}

type existingUserResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Count    int    `json:"count"`
}

// CreateUser creates a user, or returns the existing one when the username is
// already taken.
// POST /api/exercise/new-user
func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Username string `json:"username"`
	}
	if isForm(r) {
		request.Username = r.PostFormValue("username")
	} else if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, r, &httpError{status: http.StatusBadRequest, message: "invalid request body"})
		return
	}

	user, err := h.store.FindByName(r.Context(), request.Username)
	if err == nil {
		writeJSON(w, http.StatusOK, existingUserResponse{
			ID:       user.ID,
			Username: user.Name,
			Count:    user.Count,
		})
		return
	}
	if !errors.Is(err, users.ErrUserNotFound) {
		h.writeError(w, r, err)
		return
	}

	created, err := h.store.Create(r.Context(), request.Username)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newUserResponse{Name: created.Name, ID: created.ID})
}

type addExerciseResponse struct {
	Username    string  `json:"username"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	ID          string  `json:"_id"`
	Date        string  `json:"date"`
}

// AddExercise appends an exercise to a user's log. The date defaults to today
// when the caller omits it.
// POST /api/exercise/add
func (h *UsersHandler) AddExercise(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID      string  `json:"userId"`
		Description string  `json:"description"`
		Duration    float64 `json:"duration"`
		Date        string  `json:"date"`
	}
	if isForm(r) {
		request.UserID = r.PostFormValue("userId")
		request.Description = r.PostFormValue("description")
		request.Date = r.PostFormValue("date")
		if raw := r.PostFormValue("duration"); raw != "" {
			duration, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				h.writeError(w, r, &httpError{
					status:  http.StatusBadRequest,
					message: fmt.Sprintf("Cast to number failed for value %q", raw),
				})
				return
			}
			request.Duration = duration
		}
	} else if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, r, &httpError{status: http.StatusBadRequest, message: "invalid request body"})
		return
	}

	date := h.now().UTC()
	if request.Date != "" {
		parsed, err := parseDate(request.Date)
		if err != nil {
			h.writeError(w, r, &httpError{
				status:  http.StatusBadRequest,
				message: fmt.Sprintf("Cast to date failed for value %q", request.Date),
			})
			return
		}
		date = parsed
	}

	exercise := models.Exercise{
		Description: request.Description,
		Duration:    request.Duration,
		Date:        date,
	}
	user, err := h.store.AppendExercise(r.Context(), request.UserID, exercise)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, addExerciseResponse{
		Username:    user.Name,
		Description: request.Description,
		Duration:    request.Duration,
		ID:          user.ID,
		Date:        date.Format(users.DateLayout),
	})
}

// GetLog returns a user's exercise log, optionally clipped to a [from, to]
// day window and truncated to the first limit entries. Count always reflects
// the lifetime total.
// GET /api/exercise/log/{userId}?from=&to=&limit=
func (h *UsersHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	userID := params.Get("userId")
	if userID == "" {
		userID = mux.Vars(r)["userId"]
	}

	var query users.LogQuery
	if raw := params.Get("from"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			h.writeError(w, r, &httpError{status: http.StatusBadRequest, message: "invalid from date"})
			return
		}
		query.From = &from
	}
	if raw := params.Get("to"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			h.writeError(w, r, &httpError{status: http.StatusBadRequest, message: "invalid to date"})
			return
		}
		query.To = &to
	}
	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, r, &httpError{status: http.StatusBadRequest, message: "invalid limit"})
			return
		}
		query.Limit = &limit
	}

	user, err := h.store.FindByID(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, users.BuildLog(user, query))
}

// ListUsers returns every user as {_id, name}.
// GET /api/exercise/users
func (h *UsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.store.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// httpError carries an explicit status for the error writer.
type httpError struct {
	status  int
	message string
}

func (e *httpError) Error() string { return e.message }

// writeError is the single place errors become responses: 400 for validation
// failures, 404 for unknown users, the error's own status when it carries
// one, 500 otherwise. Bodies are plain text.
func (h *UsersHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Internal Server Error"

	var herr *httpError
	switch {
	case errors.Is(err, users.ErrNameRequired):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, users.ErrUserNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.As(err, &herr):
		status = herr.status
		message = herr.message
	default:
		if err != nil && err.Error() != "" {
			message = err.Error()
		}
	}

	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		h.log.Warn("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	http.Error(w, message, status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// isForm reports whether the client posted a URL-encoded form instead of
// JSON; the browser frontend submits forms, API clients send JSON.
func isForm(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

// parseDate accepts the calendar formats used by the API: yyyy-mm-dd,
// RFC 3339 timestamps, and the calendar-day strings this service itself
// renders (so a logged date round-trips as input).
func parseDate(value string) (time.Time, error) {
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		users.DateLayout,
		"Jan 2 2006",
	}
	var err error
	for _, layout := range layouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
