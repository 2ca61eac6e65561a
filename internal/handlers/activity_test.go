package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"solarac_dashboard/internal/models"
	"solarac_dashboard/internal/service"
)

func TestActivityHandler_ListAndValidation(t *testing.T) {
	auth := operator(99)
	now := time.Now().UTC().Truncate(time.Second)
	events := []models.ActivityEvent{
		{EventID: "e1", OccurredAt: now, Type: models.EventRefresh, UserID: 99, Description: "Refreshed 3 devices"},
		{EventID: "e2", OccurredAt: now.Add(time.Second), Type: models.EventCommentAdded, UserID: 99, Description: "Comment added for X"},
	}
	activity := &mockActivity{resp: events}
	s := &service.Service{
		Authorization: auth,
		Activity:      activity,
	}
	r := newTestRouter(s)

	// invalid 'from' → 400
	w := do(r, http.MethodGet, "/api/v1/activity?from=notatime", "valid", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}

	// reversed range → 400
	w = do(r, http.MethodGet, "/api/v1/activity?from=2025-06-08&to=2025-06-01", "valid", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 reversed range, got %d", w.Code)
	}

	// valid range and lowercase type
	w = do(r, http.MethodGet, "/api/v1/activity?from=2025-06-01&to=2025-06-07&type=comment_added", "valid", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("activity status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                    `json:"count"`
		Events []models.ActivityEvent `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if activity.lastType != models.EventCommentAdded {
		t.Fatalf("expected lastType COMMENT_ADDED, got %q", activity.lastType)
	}
	wantTo := time.Date(2025, time.June, 7, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	if !activity.lastTo.Equal(wantTo) {
		t.Fatalf("date-only 'to' should be end of day: got %v", activity.lastTo)
	}

	// service failure → 500
	activity.err = errors.New("db locked")
	w = do(r, http.MethodGet, "/api/v1/activity", "valid", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestParseQueryTime(t *testing.T) {
	cases := map[string]time.Time{
		"2025-06-07T10:00:00+05:30": time.Date(2025, 6, 7, 4, 30, 0, 0, time.UTC),
		"2025-06-07 10:00:00":       time.Date(2025, 6, 7, 10, 0, 0, 0, time.UTC),
		"2025-06-07":                time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := parseQueryTime(in)
		if err != nil || !got.Equal(want) {
			t.Fatalf("parseQueryTime(%q)=%v,%v want %v", in, got, err, want)
		}
	}
	if _, err := parseQueryTime("07-06-2025"); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
}
