package users

import (
	"time"

	"fitlog/models"
)

// DateLayout matches the calendar-day rendering used on the wire, e.g.
// "Mon Jan 02 2006".
const DateLayout = "Mon Jan 02 2006"

// LogQuery narrows a user's exercise log. Nil fields leave the log untouched.
type LogQuery struct {
	From  *time.Time
	To    *time.Time
	Limit *int
}

// LogExercise is an exercise shaped for the log response, with the date
// rendered as a calendar-day string.
type LogExercise struct {
	ID          string  `json:"_id"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// Log is the get-log response body. Count is the lifetime total, never the
// filtered or truncated length.
type Log struct {
	ID        string        `json:"_id"`
	Name      string        `json:"name"`
	Count     int           `json:"count"`
	Exercises []LogExercise `json:"exercises"`
}

// BuildLog shapes a stored user into the log view: dates become calendar-day
// strings, the [From, To] window clips at day granularity with both boundary
// days included, and Limit keeps only the first Limit survivors in stored
// order.
func BuildLog(user *models.User, query LogQuery) Log {
	exercises := make([]LogExercise, 0, len(user.Exercises))
	for _, exercise := range user.Exercises {
		if query.From != nil && dayOf(exercise.Date).Before(dayOf(*query.From)) {
			continue
		}
		if query.To != nil && dayOf(exercise.Date).After(dayOf(*query.To)) {
			continue
		}
		exercises = append(exercises, LogExercise{
			ID:          exercise.ID,
			Description: exercise.Description,
			Duration:    exercise.Duration,
			Date:        exercise.Date.UTC().Format(DateLayout),
		})
	}

	if query.Limit != nil && *query.Limit >= 0 && *query.Limit < len(exercises) {
		exercises = exercises[:*query.Limit]
	}

	return Log{
		ID:        user.ID,
		Name:      user.Name,
		Count:     user.Count,
		Exercises: exercises,
	}
}

// dayOf truncates a timestamp to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
