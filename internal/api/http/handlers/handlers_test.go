package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlitedriver "github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	httptransport "github.com/spec-kit/helpdesk-service/internal/api/http"
	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/service"
	sqlitestore "github.com/spec-kit/helpdesk-service/internal/storage/sqlite"
)

var testStart = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type testApp struct {
	app *fiber.App
	now time.Time
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlitedriver.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := sqlitestore.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	store := sqlitestore.NewStore(db)

	ta := &testApp{now: testStart}
	clock := service.Clock(func() time.Time { return ta.now })

	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler("helpdesk-test", "test", store, nil),
		Tickets:  handlers.NewTicketsHandler(service.NewTicketService(store, clock), clock),
		Comments: handlers.NewCommentsHandler(service.NewCommentService(store, clock)),
		Stats:    handlers.NewStatsHandler(service.NewStatsService(store, nil), clock),
		Metrics:  metrics,
	})
	ta.app = app
	return ta
}

func (ta *testApp) request(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ta.app.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func assertErrorCode(t *testing.T, resp *http.Response, status int, code string) {
	t.Helper()
	if resp.StatusCode != status {
		t.Fatalf("status = %d, want %d", resp.StatusCode, status)
	}
	var env errorEnvelope
	decodeBody(t, resp, &env)
	if env.Error.Code != code {
		t.Fatalf("error code = %q, want %q", env.Error.Code, code)
	}
}

func (ta *testApp) createTicket(t *testing.T, priority string) int64 {
	t.Helper()
	resp := ta.request(t, http.MethodPost, "/api/tickets", fiber.Map{
		"title":       "VPN down",
		"description": "Cannot connect since 9am",
		"category":    "Network",
		"priority":    priority,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var created struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, resp, &created)
	return created.ID
}

func TestCreateTicket(t *testing.T) {
	ta := newTestApp(t)

	resp := ta.request(t, http.MethodPost, "/api/tickets", fiber.Map{
		"title":       "VPN down",
		"description": "Cannot connect since 9am",
		"category":    "Network",
		"priority":    "High",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		ID         int64     `json:"id"`
		Message    string    `json:"message"`
		SLADueDate time.Time `json:"sla_due_date"`
	}
	decodeBody(t, resp, &body)
	if body.ID == 0 {
		t.Error("expected assigned id")
	}
	if body.Message != "Ticket created successfully" {
		t.Errorf("message = %q", body.Message)
	}
	if !body.SLADueDate.Equal(testStart.Add(4 * time.Hour)) {
		t.Errorf("sla_due_date = %v, want %v", body.SLADueDate, testStart.Add(4*time.Hour))
	}
}

func TestCreateTicket_MissingFields(t *testing.T) {
	ta := newTestApp(t)
	resp := ta.request(t, http.MethodPost, "/api/tickets", fiber.Map{
		"title": "only a title",
	})
	assertErrorCode(t, resp, http.StatusBadRequest, "VALIDATION_FAILED")
}

func TestGetTicket_DerivesSLAFields(t *testing.T) {
	ta := newTestApp(t)
	id := ta.createTicket(t, "High")

	resp := ta.request(t, http.MethodGet, fmt.Sprintf("/api/tickets/%d", id), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		ID            int64  `json:"id"`
		Status        string `json:"status"`
		SLAStatus     string `json:"sla_status"`
		SLAStatusText string `json:"sla_status_text"`
	}
	decodeBody(t, resp, &body)
	if body.ID != id || body.Status != "Open" {
		t.Errorf("ticket = %+v", body)
	}
	// Read at creation time: the High ticket has exactly 4h left.
	if body.SLAStatus != "ok" {
		t.Errorf("sla_status = %q, want ok", body.SLAStatus)
	}
	if body.SLAStatusText != "4h remaining" {
		t.Errorf("sla_status_text = %q", body.SLAStatusText)
	}
}

func TestGetTicket_BreachedAfterDueDate(t *testing.T) {
	ta := newTestApp(t)
	id := ta.createTicket(t, "High")

	ta.now = ta.now.Add(6 * time.Hour)
	resp := ta.request(t, http.MethodGet, fmt.Sprintf("/api/tickets/%d", id), nil)
	var body struct {
		SLAStatus     string `json:"sla_status"`
		SLAStatusText string `json:"sla_status_text"`
	}
	decodeBody(t, resp, &body)
	if body.SLAStatus != "breach" {
		t.Errorf("sla_status = %q, want breach", body.SLAStatus)
	}
	if body.SLAStatusText != "Breached 2h ago" {
		t.Errorf("sla_status_text = %q", body.SLAStatusText)
	}
}

func TestGetTicket_NotFound(t *testing.T) {
	ta := newTestApp(t)
	resp := ta.request(t, http.MethodGet, "/api/tickets/42", nil)
	assertErrorCode(t, resp, http.StatusNotFound, "NOT_FOUND")
}

func TestGetTicket_InvalidID(t *testing.T) {
	ta := newTestApp(t)
	for _, path := range []string{"/api/tickets/abc", "/api/tickets/0", "/api/tickets/-5"} {
		resp := ta.request(t, http.MethodGet, path, nil)
		assertErrorCode(t, resp, http.StatusBadRequest, "VALIDATION_FAILED")
	}
}

func TestListTickets(t *testing.T) {
	ta := newTestApp(t)
	ta.createTicket(t, "High")
	ta.now = ta.now.Add(time.Minute)
	second := ta.createTicket(t, "Low")

	resp := ta.request(t, http.MethodGet, "/api/tickets", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body []struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, resp, &body)
	if len(body) != 2 {
		t.Fatalf("len = %d, want 2", len(body))
	}
	if body[0].ID != second {
		t.Errorf("first item id = %d, want most recent %d", body[0].ID, second)
	}
}

func TestUpdateStatus(t *testing.T) {
	ta := newTestApp(t)
	id := ta.createTicket(t, "Medium")

	resp := ta.request(t, http.MethodPut, fmt.Sprintf("/api/tickets/%d", id), fiber.Map{
		"status": "Resolved",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, resp, &body)
	if body.Message != "Ticket updated successfully" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestUpdateStatus_InvalidValue(t *testing.T) {
	ta := newTestApp(t)
	id := ta.createTicket(t, "Low")

	resp := ta.request(t, http.MethodPut, fmt.Sprintf("/api/tickets/%d", id), fiber.Map{
		"status": "Escalated",
	})
	assertErrorCode(t, resp, http.StatusBadRequest, "VALIDATION_FAILED")
}

func TestUpdateStatus_NotFound(t *testing.T) {
	ta := newTestApp(t)
	resp := ta.request(t, http.MethodPut, "/api/tickets/42", fiber.Map{"status": "Closed"})
	assertErrorCode(t, resp, http.StatusNotFound, "NOT_FOUND")
}

func TestDeleteTicket(t *testing.T) {
	ta := newTestApp(t)
	id := ta.createTicket(t, "Low")

	resp := ta.request(t, http.MethodDelete, fmt.Sprintf("/api/tickets/%d", id), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, resp, &body)
	if body.Message != "Ticket deleted successfully" {
		t.Errorf("message = %q", body.Message)
	}

	resp = ta.request(t, http.MethodDelete, fmt.Sprintf("/api/tickets/%d", id), nil)
	assertErrorCode(t, resp, http.StatusNotFound, "NOT_FOUND")
}

func TestComments(t *testing.T) {
	ta := newTestApp(t)
	id := ta.createTicket(t, "Low")

	resp := ta.request(t, http.MethodPost, fmt.Sprintf("/api/tickets/%d/comments", id), fiber.Map{
		"comment":   "checked the cable",
		"user_type": "agent",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add status = %d", resp.StatusCode)
	}
	var added struct {
		ID      int64  `json:"id"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &added)
	if added.ID == 0 || added.Message != "Comment added successfully" {
		t.Errorf("add response = %+v", added)
	}

	resp = ta.request(t, http.MethodGet, fmt.Sprintf("/api/tickets/%d/comments", id), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	var thread []struct {
		Comment  string `json:"comment"`
		UserType string `json:"user_type"`
	}
	decodeBody(t, resp, &thread)
	// System comment from creation, then the agent's.
	if len(thread) != 2 {
		t.Fatalf("len = %d, want 2", len(thread))
	}
	if thread[0].Comment != "Ticket created" || thread[0].UserType != "system" {
		t.Errorf("thread[0] = %+v", thread[0])
	}
	if thread[1].Comment != "checked the cable" || thread[1].UserType != "agent" {
		t.Errorf("thread[1] = %+v", thread[1])
	}
}

func TestAddComment_UnknownTicket(t *testing.T) {
	ta := newTestApp(t)
	resp := ta.request(t, http.MethodPost, "/api/tickets/42/comments", fiber.Map{
		"comment":   "orphan",
		"user_type": "agent",
	})
	assertErrorCode(t, resp, http.StatusNotFound, "NOT_FOUND")
}

func TestAddComment_Validation(t *testing.T) {
	ta := newTestApp(t)
	id := ta.createTicket(t, "Low")
	resp := ta.request(t, http.MethodPost, fmt.Sprintf("/api/tickets/%d/comments", id), fiber.Map{
		"comment": "no user type",
	})
	assertErrorCode(t, resp, http.StatusBadRequest, "VALIDATION_FAILED")
}

func TestStats(t *testing.T) {
	ta := newTestApp(t)
	ta.createTicket(t, "High")
	ta.createTicket(t, "Low")
	resolved := ta.createTicket(t, "Medium")
	ta.request(t, http.MethodPut, fmt.Sprintf("/api/tickets/%d", resolved), fiber.Map{"status": "Resolved"})

	resp := ta.request(t, http.MethodGet, "/api/stats", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Total      int64 `json:"total"`
		Open       int64 `json:"open"`
		InProgress int64 `json:"inProgress"`
		Resolved   int64 `json:"resolved"`
		Closed     int64 `json:"closed"`
	}
	decodeBody(t, resp, &body)
	if body.Total != 3 || body.Open != 2 || body.Resolved != 1 || body.InProgress != 0 || body.Closed != 0 {
		t.Fatalf("stats = %+v", body)
	}
}

func TestDebugTables(t *testing.T) {
	ta := newTestApp(t)
	id := ta.createTicket(t, "Low")
	ta.request(t, http.MethodPost, fmt.Sprintf("/api/tickets/%d/comments", id), fiber.Map{
		"comment":   "note",
		"user_type": "agent",
	})

	resp := ta.request(t, http.MethodGet, "/api/debug/tables", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Tickets       []json.RawMessage `json:"tickets"`
		Comments      []json.RawMessage `json:"comments"`
		TotalTickets  int               `json:"total_tickets"`
		TotalComments int               `json:"total_comments"`
	}
	decodeBody(t, resp, &body)
	if body.TotalTickets != 1 || len(body.Tickets) != 1 {
		t.Errorf("tickets = %d/%d", body.TotalTickets, len(body.Tickets))
	}
	if body.TotalComments != 2 || len(body.Comments) != 2 {
		t.Errorf("comments = %d/%d", body.TotalComments, len(body.Comments))
	}
}

func TestHealthEndpoints(t *testing.T) {
	ta := newTestApp(t)

	resp := ta.request(t, http.MethodGet, "/health/live", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("live status = %d", resp.StatusCode)
	}
	var live struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}
	decodeBody(t, resp, &live)
	if live.Status != "alive" || live.Service != "helpdesk-test" {
		t.Errorf("live = %+v", live)
	}

	resp = ta.request(t, http.MethodGet, "/health/ready", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ready status = %d", resp.StatusCode)
	}
	var ready struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
	decodeBody(t, resp, &ready)
	if ready.Status != "ready" {
		t.Errorf("ready status = %q", ready.Status)
	}
	if ready.Dependencies["storage"] != "ok" || ready.Dependencies["redis"] != "disabled" {
		t.Errorf("dependencies = %+v", ready.Dependencies)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ta := newTestApp(t)
	ta.createTicket(t, "Low")

	resp := ta.request(t, http.MethodGet, "/metrics", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	payload, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.Contains(payload, []byte("helpdesk_http_requests_total")) {
		t.Error("expected helpdesk_http_requests_total in metrics exposition")
	}
}
