package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"clubdesk/internal/database"
	"clubdesk/internal/domain"
	"clubdesk/internal/middleware"
	"clubdesk/internal/modules/booking"
	"clubdesk/internal/modules/events"
	"clubdesk/internal/modules/schedule"
	"clubdesk/internal/modules/spaces"
	jwtsvc "clubdesk/internal/pkg/jwt"
	"clubdesk/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
	token      string
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

var (
	testSpaces = []domain.Space{
		{ID: "court-1", Name: "Court 1"},
		{ID: "court-2", Name: "Court 2"},
		{ID: "padel", Name: "Padel"},
		{ID: "multi-room", Name: "Multipurpose Room"},
	}
	testGroups = []domain.SpaceGroup{
		{Label: "Whole Club", SpaceIDs: []string{"court-1", "court-2", "padel", "multi-room"}},
		{Label: "Court 1 and 2", SpaceIDs: []string{"court-1", "court-2"}},
	}
	testWorkers = []string{"Laura", "Marco"}
)

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, repository.AutoMigrate(db))

	slotRepo := repository.NewSlotRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	eventRepo := repository.NewEventRepository(db)
	vacationRepo := repository.NewVacationRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	grid, err := booking.NewGrid("09:00", "23:00")
	require.NoError(t, err)

	bookingService := booking.NewService(slotRepo, grid, testSpaces, testGroups, nil)
	bookingHandler := booking.NewHandler(bookingService)

	scheduleService := schedule.NewService(shiftRepo, eventRepo, vacationRepo, testWorkers, 23)
	scheduleHandler := schedule.NewHandler(scheduleService)

	eventService := events.NewService(eventRepo, testSpaces)
	eventHandler := events.NewHandler(eventService)

	spacesHandler := spaces.NewHandler(testSpaces, testGroups)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	bookingHandler.RegisterPublicRoutes(v1)
	scheduleHandler.RegisterPublicRoutes(v1)
	eventHandler.RegisterPublicRoutes(v1)
	spacesHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		bookingHandler.RegisterProtectedRoutes(protected)
		scheduleHandler.RegisterProtectedRoutes(protected)
		eventHandler.RegisterProtectedRoutes(protected)
	}

	token, err := jwtService.GenerateToken(1, "staff")
	require.NoError(t, err)

	return &E2ETestSuite{
		router:     r,
		db:         db,
		jwtService: jwtService,
		token:      token,
	}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) (*httptest.ResponseRecorder, error) {
	var bodyBytes []byte
	var err error

	if body != nil {
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	return w, nil
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
	return &resp
}

func keysOf(t *testing.T, resp *TestResponse) []string {
	raw, ok := resp.Data["keys"].([]interface{})
	require.True(t, ok, "response has no keys array: %+v", resp.Data)
	out := make([]string, len(raw))
	for i, k := range raw {
		out[i] = k.(string)
	}
	return out
}

// =============================================================================
// Flow 1: Booking lifecycle
// =============================================================================

func TestFlow1_BookingLifecycle(t *testing.T) {
	suite := setupTestSuite(t)

	var keys []string

	t.Run("POST /bookings rejects anonymous callers", func(t *testing.T) {
		body := map[string]interface{}{
			"space_ids":  []string{"court-1"},
			"date":       "2026-08-24",
			"start_time": "09:00",
			"end_time":   "10:00",
			"name":       "Alvarez",
		}
		w, err := suite.makeRequest("POST", "/api/v1/bookings", body, "")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("POST /bookings", func(t *testing.T) {
		body := map[string]interface{}{
			"space_ids":  []string{"court-1"},
			"date":       "2026-08-24",
			"start_time": "09:00",
			"end_time":   "10:00",
			"name":       "Alvarez",
		}
		w, err := suite.makeRequest("POST", "/api/v1/bookings", body, suite.token)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		keys = keysOf(t, resp)
		assert.Len(t, keys, 2)
	})

	t.Run("GET /bookings consolidates the slots", func(t *testing.T) {
		w, err := suite.makeRequest("GET", "/api/v1/bookings?date=2026-08-24", nil, "")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		bookings := resp.Data["bookings"].([]interface{})
		require.Len(t, bookings, 1)

		entry := bookings[0].(map[string]interface{})
		assert.Equal(t, "09:00", entry["start_time"])
		assert.Equal(t, "10:00", entry["end_time"])
		assert.Equal(t, "Court 1", entry["space"])
	})

	t.Run("POST /bookings conflict on overlap", func(t *testing.T) {
		body := map[string]interface{}{
			"space_ids":  []string{"court-1"},
			"date":       "2026-08-24",
			"start_time": "09:30",
			"end_time":   "10:30",
			"name":       "Benede",
		}
		w, err := suite.makeRequest("POST", "/api/v1/bookings", body, suite.token)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, w.Code)

		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "BOOKING_CONFLICT", resp.Error.Code)

		// nothing of the rejected batch leaked into the calendar
		w, err = suite.makeRequest("GET", "/api/v1/bookings?date=2026-08-24", nil, "")
		require.NoError(t, err)
		resp = parseResponse(t, w)
		assert.Len(t, resp.Data["bookings"].([]interface{}), 1)
	})

	t.Run("POST /bookings/duplicate", func(t *testing.T) {
		body := map[string]interface{}{
			"keys":        keys,
			"target_date": "2026-08-26",
		}
		w, err := suite.makeRequest("POST", "/api/v1/bookings/duplicate", body, suite.token)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w, err = suite.makeRequest("GET", "/api/v1/bookings?date=2026-08-26", nil, "")
		require.NoError(t, err)
		resp := parseResponse(t, w)
		bookings := resp.Data["bookings"].([]interface{})
		require.Len(t, bookings, 1)
		entry := bookings[0].(map[string]interface{})
		assert.Equal(t, "Alvarez", entry["details"].(map[string]interface{})["name"])
	})

	t.Run("POST /bookings/update moves the booking", func(t *testing.T) {
		body := map[string]interface{}{
			"keys":       keys,
			"space_ids":  []string{"court-2"},
			"date":       "2026-08-24",
			"start_time": "11:00",
			"end_time":   "12:00",
			"name":       "Alvarez",
		}
		w, err := suite.makeRequest("POST", "/api/v1/bookings/update", body, suite.token)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		keys = keysOf(t, resp)

		w, err = suite.makeRequest("GET", "/api/v1/bookings?date=2026-08-24", nil, "")
		require.NoError(t, err)
		resp = parseResponse(t, w)
		bookings := resp.Data["bookings"].([]interface{})
		require.Len(t, bookings, 1)
		entry := bookings[0].(map[string]interface{})
		assert.Equal(t, "Court 2", entry["space"])
		assert.Equal(t, "11:00", entry["start_time"])
	})

	t.Run("POST /bookings/delete", func(t *testing.T) {
		body := map[string]interface{}{"keys": keys}
		w, err := suite.makeRequest("POST", "/api/v1/bookings/delete", body, suite.token)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, w.Code)

		w, err = suite.makeRequest("GET", "/api/v1/bookings?date=2026-08-24", nil, "")
		require.NoError(t, err)
		resp := parseResponse(t, w)
		assert.Empty(t, resp.Data["bookings"])
	})
}

// =============================================================================
// Flow 2: Group consolidation
// =============================================================================

func TestFlow2_GroupConsolidation(t *testing.T) {
	suite := setupTestSuite(t)

	t.Run("booking both courts shows the group label", func(t *testing.T) {
		body := map[string]interface{}{
			"space_ids":  []string{"court-1", "court-2"},
			"date":       "2026-08-24",
			"start_time": "18:00",
			"end_time":   "19:00",
			"name":       "League",
		}
		w, err := suite.makeRequest("POST", "/api/v1/bookings", body, suite.token)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w, err = suite.makeRequest("GET", "/api/v1/bookings?date=2026-08-24", nil, "")
		require.NoError(t, err)
		resp := parseResponse(t, w)
		bookings := resp.Data["bookings"].([]interface{})
		require.Len(t, bookings, 1)
		entry := bookings[0].(map[string]interface{})
		assert.Equal(t, "Court 1 and 2", entry["space"])
		assert.Len(t, entry["keys"].([]interface{}), 4)
	})

	t.Run("GET /spaces", func(t *testing.T) {
		w, err := suite.makeRequest("GET", "/api/v1/spaces", nil, "")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.Len(t, resp.Data["spaces"].([]interface{}), 4)
		assert.Len(t, resp.Data["groups"].([]interface{}), 2)
	})
}

// =============================================================================
// Flow 3: Weekly schedule
// =============================================================================

func TestFlow3_WeeklySchedule(t *testing.T) {
	suite := setupTestSuite(t)

	t.Run("GET /schedule/:week defaults", func(t *testing.T) {
		w, err := suite.makeRequest("GET", "/api/v1/schedule/2026-35", nil, "")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		week := resp.Data["week"].(map[string]interface{})
		assert.Equal(t, false, week["overridden"])
		assert.Equal(t, "Marco", week["morning"])
		assert.Equal(t, "Laura", week["evening"])
		assert.Len(t, week["days"].([]interface{}), 7)
	})

	t.Run("PUT /schedule/:week overrides the rotation", func(t *testing.T) {
		body := map[string]interface{}{
			"morning":      "Laura",
			"evening":      "Marco",
			"observations": "Laura prefers mornings this week",
		}
		w, err := suite.makeRequest("PUT", "/api/v1/schedule/2026-35", body, suite.token)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w, err = suite.makeRequest("GET", "/api/v1/schedule/2026-35", nil, "")
		require.NoError(t, err)
		resp := parseResponse(t, w)
		week := resp.Data["week"].(map[string]interface{})
		assert.Equal(t, true, week["overridden"])
		assert.Equal(t, "Laura", week["morning"])
	})

	t.Run("PUT /schedule/:week/days/:day", func(t *testing.T) {
		body := map[string]interface{}{
			"morning": map[string]interface{}{"active": true, "worker": "Laura", "start": "09:00", "end": "23:00"},
			"evening": map[string]interface{}{"active": false},
		}
		w, err := suite.makeRequest("PUT", "/api/v1/schedule/2026-35/days/2", body, suite.token)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w, err = suite.makeRequest("GET", "/api/v1/schedule/2026-35", nil, "")
		require.NoError(t, err)
		resp := parseResponse(t, w)
		week := resp.Data["week"].(map[string]interface{})
		wed := week["days"].([]interface{})[2].(map[string]interface{})
		morning := wed["morning"].(map[string]interface{})
		assert.Equal(t, true, morning["overridden"])
		assert.Equal(t, "23:00", morning["end"])
		assert.Equal(t, false, wed["evening"].(map[string]interface{})["active"])
	})

	t.Run("DELETE /schedule/:week/days/:day", func(t *testing.T) {
		w, err := suite.makeRequest("DELETE", "/api/v1/schedule/2026-35/days/2", nil, suite.token)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, w.Code)

		w, err = suite.makeRequest("GET", "/api/v1/schedule/2026-35", nil, "")
		require.NoError(t, err)
		resp := parseResponse(t, w)
		week := resp.Data["week"].(map[string]interface{})
		wed := week["days"].([]interface{})[2].(map[string]interface{})
		assert.Equal(t, false, wed["morning"].(map[string]interface{})["overridden"])
	})

	t.Run("DELETE /schedule/:week falls back to defaults", func(t *testing.T) {
		w, err := suite.makeRequest("DELETE", "/api/v1/schedule/2026-35", nil, suite.token)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, w.Code)

		w, err = suite.makeRequest("GET", "/api/v1/schedule/2026-35", nil, "")
		require.NoError(t, err)
		resp := parseResponse(t, w)
		week := resp.Data["week"].(map[string]interface{})
		assert.Equal(t, false, week["overridden"])
		assert.Equal(t, "Marco", week["morning"])
	})

	t.Run("GET /schedule/:week rejects bad ids", func(t *testing.T) {
		w, err := suite.makeRequest("GET", "/api/v1/schedule/2026-99", nil, "")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// =============================================================================
// Flow 4: Tasks and special events
// =============================================================================

func TestFlow4_TasksAndEvents(t *testing.T) {
	suite := setupTestSuite(t)

	var eventID, eventTaskID string

	t.Run("POST /events", func(t *testing.T) {
		body := map[string]interface{}{
			"name":       "Summer Tournament",
			"start_date": "2026-08-29",
			"end_date":   "2026-08-30",
			"start_time": "10:00",
			"end_time":   "18:00",
			"space_ids":  []string{"court-1", "court-2"},
			"tasks": []map[string]interface{}{
				{"text": "Set up scoreboards", "assigned_to": []string{"MORNING"}},
			},
		}
		w, err := suite.makeRequest("POST", "/api/v1/events", body, suite.token)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		ev := resp.Data["event"].(map[string]interface{})
		eventID = ev["id"].(string)
		tasks := ev["tasks"].([]interface{})
		require.Len(t, tasks, 1)
		eventTaskID = tasks[0].(map[string]interface{})["id"].(string)
	})

	t.Run("event tasks appear in the overlapping week", func(t *testing.T) {
		// Sat 2026-08-29 is in ISO week 35
		w, err := suite.makeRequest("GET", "/api/v1/schedule/2026-35", nil, "")
		require.NoError(t, err)
		resp := parseResponse(t, w)
		week := resp.Data["week"].(map[string]interface{})
		tasks := week["tasks"].([]interface{})
		require.Len(t, tasks, 1)

		task := tasks[0].(map[string]interface{})
		assert.Equal(t, "event", task["source"])
		assert.Equal(t, eventID, task["parent_id"])
		assert.Equal(t, "Summer Tournament", task["event_name"])
	})

	t.Run("POST /schedule/:week/tasks", func(t *testing.T) {
		body := map[string]interface{}{
			"text":        "Restock vending machines",
			"assigned_to": []string{"MORNING"},
		}
		w, err := suite.makeRequest("POST", "/api/v1/schedule/2026-35/tasks", body, suite.token)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w, err = suite.makeRequest("GET", "/api/v1/schedule/2026-35", nil, "")
		require.NoError(t, err)
		resp := parseResponse(t, w)
		week := resp.Data["week"].(map[string]interface{})
		tasks := week["tasks"].([]interface{})
		require.Len(t, tasks, 2)

		shiftTask := tasks[0].(map[string]interface{})
		assert.Equal(t, "shift", shiftTask["source"])
		// MORNING resolves to the effective morning worker of week 35
		assert.Equal(t, []interface{}{"Marco"}, shiftTask["assigned_to"])
	})

	t.Run("POST /tasks/toggle routes by collection", func(t *testing.T) {
		body := map[string]interface{}{
			"collection": "specialEvents",
			"parent_id":  eventID,
			"task_id":    eventTaskID,
		}
		w, err := suite.makeRequest("POST", "/api/v1/tasks/toggle", body, suite.token)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w, err = suite.makeRequest("GET", fmt.Sprintf("/api/v1/events/%s", eventID), nil, "")
		require.NoError(t, err)
		resp := parseResponse(t, w)
		ev := resp.Data["event"].(map[string]interface{})
		task := ev["tasks"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, true, task["completed"])
	})

	t.Run("DELETE /events/:id", func(t *testing.T) {
		w, err := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/events/%s", eventID), nil, suite.token)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, w.Code)

		w, err = suite.makeRequest("GET", fmt.Sprintf("/api/v1/events/%s", eventID), nil, "")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// =============================================================================
// Flow 5: Vacations
// =============================================================================

func TestFlow5_Vacations(t *testing.T) {
	suite := setupTestSuite(t)

	t.Run("PUT /vacations/:year/dates/:date", func(t *testing.T) {
		body := map[string]interface{}{"worker": "Laura"}
		w, err := suite.makeRequest("PUT", "/api/v1/vacations/2026/dates/2026-08-25", body, suite.token)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("second worker on the same date is rejected", func(t *testing.T) {
		body := map[string]interface{}{"worker": "Marco"}
		w, err := suite.makeRequest("PUT", "/api/v1/vacations/2026/dates/2026-08-25", body, suite.token)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, w.Code)

		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VACATION_DATE_TAKEN", resp.Error.Code)
	})

	t.Run("vacation shows up in the week view", func(t *testing.T) {
		// 2026-08-25 is the Tuesday of week 35; Laura holds the evening
		w, err := suite.makeRequest("GET", "/api/v1/schedule/2026-35", nil, "")
		require.NoError(t, err)
		resp := parseResponse(t, w)
		week := resp.Data["week"].(map[string]interface{})
		tue := week["days"].([]interface{})[1].(map[string]interface{})
		assert.Equal(t, true, tue["evening"].(map[string]interface{})["on_vacation"])
		assert.Equal(t, false, tue["morning"].(map[string]interface{})["on_vacation"])
	})

	t.Run("GET /vacations/:year", func(t *testing.T) {
		w, err := suite.makeRequest("GET", "/api/v1/vacations/2026", nil, "")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		doc := resp.Data["vacations"].(map[string]interface{})
		dates := doc["dates"].(map[string]interface{})
		assert.Equal(t, "Laura", dates["2026-08-25"])
	})

	t.Run("DELETE /vacations/:year/dates/:date", func(t *testing.T) {
		w, err := suite.makeRequest("DELETE", "/api/v1/vacations/2026/dates/2026-08-25", nil, suite.token)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, w.Code)

		w, err = suite.makeRequest("GET", "/api/v1/vacations/2026", nil, "")
		require.NoError(t, err)
		resp := parseResponse(t, w)
		doc := resp.Data["vacations"].(map[string]interface{})
		assert.Empty(t, doc["dates"])
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
