package users_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitlog/models"
	"fitlog/services/users"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(value string) *time.Time {
	t := day(value)
	return &t
}

func intPtr(v int) *int { return &v }

func testUser() *models.User {
	return &models.User{
		ID:    "u1",
		Name:  "alice",
		Count: 4,
		Exercises: []models.Exercise{
			{ID: "e1", Description: "run", Duration: 30, Date: day("2024-01-01")},
			{ID: "e2", Description: "swim", Duration: 45, Date: day("2024-01-15")},
			{ID: "e3", Description: "lift", Duration: 20, Date: day("2024-01-31")},
			{ID: "e4", Description: "row", Duration: 10, Date: day("2024-02-10")},
		},
	}
}

func exerciseIDs(log users.Log) []string {
	ids := make([]string, 0, len(log.Exercises))
	for _, ex := range log.Exercises {
		ids = append(ids, ex.ID)
	}
	return ids
}

func TestBuildLogNoQueryReturnsEverything(t *testing.T) {
	log := users.BuildLog(testUser(), users.LogQuery{})

	assert.Equal(t, "u1", log.ID)
	assert.Equal(t, "alice", log.Name)
	assert.Equal(t, 4, log.Count)
	assert.Equal(t, []string{"e1", "e2", "e3", "e4"}, exerciseIDs(log))
}

func TestBuildLogDateWindow(t *testing.T) {
	tests := []struct {
		name  string
		query users.LogQuery
		want  []string
	}{
		{
			name:  "from clips earlier days",
			query: users.LogQuery{From: dayPtr("2024-01-15")},
			want:  []string{"e2", "e3", "e4"},
		},
		{
			name:  "to clips later days",
			query: users.LogQuery{To: dayPtr("2024-01-15")},
			want:  []string{"e1", "e2"},
		},
		{
			name:  "boundary days are inclusive",
			query: users.LogQuery{From: dayPtr("2024-01-01"), To: dayPtr("2024-01-31")},
			want:  []string{"e1", "e2", "e3"},
		},
		{
			name:  "window with no matches",
			query: users.LogQuery{From: dayPtr("2025-01-01")},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := users.BuildLog(testUser(), tt.query)
			assert.Equal(t, tt.want, exerciseIDs(log))
		})
	}
}

func TestBuildLogTimeOfDayDoesNotAffectFilter(t *testing.T) {
	user := testUser()
	// Late-evening entry on the boundary day must survive a To filter for
	// that same day.
	user.Exercises[2].Date = day("2024-01-31").Add(23*time.Hour + 59*time.Minute)

	log := users.BuildLog(user, users.LogQuery{To: dayPtr("2024-01-31")})
	assert.Equal(t, []string{"e1", "e2", "e3"}, exerciseIDs(log))
	assert.Equal(t, "Wed Jan 31 2024", log.Exercises[2].Date)
}

func TestBuildLogLimitTruncatesPrefix(t *testing.T) {
	log := users.BuildLog(testUser(), users.LogQuery{Limit: intPtr(2)})
	assert.Equal(t, []string{"e1", "e2"}, exerciseIDs(log))
	assert.Equal(t, 4, log.Count, "count stays the lifetime total")
}

func TestBuildLogLimitAppliesAfterFilter(t *testing.T) {
	log := users.BuildLog(testUser(), users.LogQuery{
		From:  dayPtr("2024-01-15"),
		Limit: intPtr(1),
	})
	assert.Equal(t, []string{"e2"}, exerciseIDs(log))
}

func TestBuildLogLimitLargerThanLogIsNoop(t *testing.T) {
	log := users.BuildLog(testUser(), users.LogQuery{Limit: intPtr(10)})
	assert.Len(t, log.Exercises, 4)
}

func TestBuildLogNegativeLimitIsIgnored(t *testing.T) {
	log := users.BuildLog(testUser(), users.LogQuery{Limit: intPtr(-1)})
	assert.Len(t, log.Exercises, 4)
}

func TestBuildLogRendersCalendarDates(t *testing.T) {
	log := users.BuildLog(testUser(), users.LogQuery{})
	require.Len(t, log.Exercises, 4)
	assert.Equal(t, "Mon Jan 01 2024", log.Exercises[0].Date)
	assert.Equal(t, "Sat Feb 10 2024", log.Exercises[3].Date)
}

func TestBuildLogEmptyExercises(t *testing.T) {
	user := &models.User{ID: "u2", Name: "bob", Count: 0}
	log := users.BuildLog(user, users.LogQuery{From: dayPtr("2024-01-01")})
	assert.NotNil(t, log.Exercises)
	assert.Empty(t, log.Exercises)
}
