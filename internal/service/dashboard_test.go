package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"

	"solarac_dashboard/internal/logger"
	"solarac_dashboard/internal/models"
	"solarac_dashboard/internal/pipeline"
)

const rawCSVHeader = "Topic,timestamp,PV_kWh,OP_kWh,BATT_V_min,ac_on_duration_h,AC_ROOM_TEMP_avg,avg_ΔT,unfiltered_transitions_to_level_0,non_acload_avg_W\n"

func rawCSV(topics ...string) string {
	var b strings.Builder
	b.WriteString(rawCSVHeader)
	for _, topic := range topics {
		for d := 1; d <= 7; d++ {
			fmt.Fprintf(&b, "%s,%02d-06-2025,%d,1,11,2,25,3,0,100\n", topic, d, d)
		}
	}
	return b.String()
}

const latestCSV = "Topic,BATT_V_min,BATT_V,BATT_TYPE,MAX_CHG_I\nX,11.5,12.8,LI,20\nY,11.9,13.1,LA,15\n"

func newTestDashboard(store *fakeFileStore, sheet *fakeSheet, events *fakeEventRepo) *DashboardService {
	comments := NewCommentService(sheet, nil, logger.Nop())
	return NewDashboardService(NewFetcherService(store), comments, NewSessionStore(), events,
		Sources{RawFileID: "raw", LatestFileID: "latest"}, logger.Nop())
}

func TestDashboardService_ViewsBeforeRefresh(t *testing.T) {
	svc := newTestDashboard(&fakeFileStore{}, &fakeSheet{}, &fakeEventRepo{})

	if _, err := svc.View(context.Background(), 1, models.AllTopics); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("View: expected ErrNotLoaded, got %v", err)
	}
	if _, err := svc.Topics(1); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Topics: expected ErrNotLoaded, got %v", err)
	}
	if got := svc.State(1); got != StateInitial {
		t.Fatalf("state=%q, want %q", got, StateInitial)
	}
}

func TestDashboardService_RefreshAndViews(t *testing.T) {
	store := &fakeFileStore{payloads: map[string]string{"raw": rawCSV("X", "Y"), "latest": latestCSV}}
	sheet := sheetWithHeader(
		[]string{"X", "2025-06-01 10:00:00", "old note"},
		[]string{"X", "2025-06-05 10:00:00", "new note"},
	)
	events := &fakeEventRepo{}
	svc := newTestDashboard(store, sheet, events)
	ctx := context.Background()

	res, err := svc.Refresh(ctx, 1)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if res.Devices != 2 {
		t.Fatalf("devices=%d, want 2", res.Devices)
	}
	if !reflect.DeepEqual(store.calls, []string{"raw", "latest"}) {
		t.Fatalf("fetch order=%v", store.calls)
	}
	if got := events.types(); !reflect.DeepEqual(got, []string{models.EventRefresh}) {
		t.Fatalf("activity=%v", got)
	}
	if got := svc.State(1); got != StateLoaded {
		t.Fatalf("state=%q", got)
	}

	topics, err := svc.Topics(1)
	if err != nil || !reflect.DeepEqual(topics, []string{"All", "X", "Y"}) {
		t.Fatalf("topics=%v err=%v", topics, err)
	}

	all, err := svc.View(ctx, 1, "")
	if err != nil {
		t.Fatalf("View(All): %v", err)
	}
	if all.Topic != models.AllTopics || len(all.Table.Rows) != 2 {
		t.Fatalf("unexpected All view: %+v", all)
	}
	if all.Table.Columns[1] != models.ColComment {
		t.Fatalf("Comment column must follow Topic: %v", all.Table.Columns)
	}
	if c := all.Table.Rows[0][1]; c == nil || *c != "new note" {
		t.Fatalf("latest comment for X=%v", c)
	}
	if c := all.Table.Rows[1][1]; c != nil {
		t.Fatalf("Y has no comments, got %q", *c)
	}

	x, err := svc.View(ctx, 1, "X")
	if err != nil {
		t.Fatalf("View(X): %v", err)
	}
	if len(x.Table.Rows) != 1 || !reflect.DeepEqual(x.Table.Columns, models.ResultColumns) {
		t.Fatalf("unexpected X view: %+v", x.Table)
	}
	if got := texts(x.Comments); !reflect.DeepEqual(got, []string{"new note", "old note"}) {
		t.Fatalf("X history=%v", got)
	}

	if _, err := svc.View(ctx, 1, "Z"); !errors.Is(err, ErrUnknownTopic) {
		t.Fatalf("View(Z): expected ErrUnknownTopic, got %v", err)
	}

	// Sessions are independent.
	if _, err := svc.View(ctx, 2, models.AllTopics); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("other user should still be initial, got %v", err)
	}
}

func TestDashboardService_FailedRefreshKeepsPreviousResult(t *testing.T) {
	store := &fakeFileStore{payloads: map[string]string{"raw": rawCSV("X"), "latest": latestCSV}}
	events := &fakeEventRepo{}
	svc := newTestDashboard(store, sheetWithHeader(), events)
	ctx := context.Background()

	if _, err := svc.Refresh(ctx, 1); err != nil {
		t.Fatalf("first Refresh: %v", err)
	}
	before, _ := svc.View(ctx, 1, "X")

	store.err = errors.New("connection reset")
	_, err := svc.Refresh(ctx, 1)
	var rerr *RetrievalError
	if !errors.As(err, &rerr) || rerr.FileID != "raw" {
		t.Fatalf("expected RetrievalError for raw, got %v", err)
	}

	after, err := svc.View(ctx, 1, "X")
	if err != nil {
		t.Fatalf("View after failed refresh: %v", err)
	}
	if !reflect.DeepEqual(before.Table, after.Table) || !before.RefreshedAt.Equal(after.RefreshedAt) {
		t.Fatalf("failed refresh must not change the session")
	}
	if got := events.types(); !reflect.DeepEqual(got, []string{models.EventRefresh, models.EventRefreshFailed}) {
		t.Fatalf("activity=%v", got)
	}
}

func TestDashboardService_RefreshSchemaError(t *testing.T) {
	store := &fakeFileStore{payloads: map[string]string{
		"raw":    "Topic,timestamp\nX,01-06-2025\n",
		"latest": latestCSV,
	}}
	svc := newTestDashboard(store, sheetWithHeader(), &fakeEventRepo{})

	_, err := svc.Refresh(context.Background(), 1)
	var serr *pipeline.SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SchemaError, got %T %v", err, err)
	}
	if got := svc.State(1); got != StateInitial {
		t.Fatalf("state=%q, want initial", got)
	}
}

func TestDashboardService_ConcurrentRefreshes(t *testing.T) {
	store := &syncFileStore{payloads: map[string]string{"raw": rawCSV("X", "Y"), "latest": latestCSV}}
	comments := NewCommentService(sheetWithHeader(), nil, logger.Nop())
	svc := NewDashboardService(NewFetcherService(store), comments, NewSessionStore(), &fakeEventRepo{},
		Sources{RawFileID: "raw", LatestFileID: "latest"}, logger.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(user int) {
			defer wg.Done()
			if _, err := svc.Refresh(context.Background(), user%3); err != nil {
				t.Errorf("Refresh: %v", err)
			}
			_, _ = svc.View(context.Background(), user%3, models.AllTopics)
		}(i)
	}
	wg.Wait()

	for user := 0; user < 3; user++ {
		topics, err := svc.Topics(user)
		if err != nil || len(topics) != 3 {
			t.Fatalf("user %d topics=%v err=%v", user, topics, err)
		}
	}
}
