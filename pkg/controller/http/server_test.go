package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	server "github.com/luanacfraga/tooldo/pkg/controller/http"
	"github.com/luanacfraga/tooldo/pkg/repository/memory"
	"github.com/luanacfraga/tooldo/pkg/usecase"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	return server.New(usecase.New(memory.New()))
}

func doJSON(t *testing.T, srv *server.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst)).Required()
}

func createTestAction(t *testing.T, srv *server.Server, title string) string {
	t.Helper()

	rec := doJSON(t, srv, http.MethodPost, "/api/companies/acme/actions/", map[string]any{
		"title":                title,
		"estimated_start_date": "2026-03-10",
		"estimated_end_date":   "2026-03-20",
		"creator_id":           "user-creator",
		"responsible_id":       "user-responsible",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var resp struct {
		Action struct {
			ID string `json:"id"`
		} `json:"action"`
	}
	decodeJSON(t, rec, &resp)
	return resp.Action.ID
}

func TestCreateAndGetAction(t *testing.T) {
	srv := newTestServer(t)
	id := createTestAction(t, srv, "write report")

	rec := doJSON(t, srv, http.MethodGet, "/api/companies/acme/actions/"+id+"/", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		Action struct {
			ID                 string `json:"id"`
			Title              string `json:"title"`
			Status             string `json:"status"`
			Priority           string `json:"priority"`
			EstimatedStartDate string `json:"estimated_start_date"`
		} `json:"action"`
		Order struct {
			Column   string `json:"column"`
			Position int    `json:"position"`
		} `json:"order"`
	}
	decodeJSON(t, rec, &resp)
	gt.Value(t, resp.Action.ID).Equal(id)
	gt.Value(t, resp.Action.Title).Equal("write report")
	gt.Value(t, resp.Action.Status).Equal("TODO")
	gt.Value(t, resp.Action.Priority).Equal("MEDIUM")
	gt.Value(t, resp.Action.EstimatedStartDate).Equal("2026-03-10")
	gt.Value(t, resp.Order.Column).Equal("TODO")
	gt.Value(t, resp.Order.Position).Equal(0)
}

func TestCreateActionValidationError(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/companies/acme/actions/", map[string]any{
		"title":          "",
		"creator_id":     "user-creator",
		"responsible_id": "user-responsible",
	})
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestGetActionNotFound(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/companies/acme/actions/no-such-id/", nil)
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestMoveActionEndpoint(t *testing.T) {
	srv := newTestServer(t)
	id := createTestAction(t, srv, "movable")

	rec := doJSON(t, srv, http.MethodPost, "/api/companies/acme/actions/"+id+"/move", map[string]any{
		"target_status": "IN_PROGRESS",
		"moved_by_id":   "user-mover",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		Action struct {
			Status string `json:"status"`
		} `json:"action"`
		Order struct {
			Column   string `json:"column"`
			Position int    `json:"position"`
		} `json:"order"`
		Movement struct {
			FromStatus string `json:"from_status"`
			ToStatus   string `json:"to_status"`
		} `json:"movement"`
	}
	decodeJSON(t, rec, &resp)
	gt.Value(t, resp.Action.Status).Equal("IN_PROGRESS")
	gt.Value(t, resp.Order.Column).Equal("IN_PROGRESS")
	gt.Value(t, resp.Order.Position).Equal(0)
	gt.Value(t, resp.Movement.FromStatus).Equal("TODO")
	gt.Value(t, resp.Movement.ToStatus).Equal("IN_PROGRESS")
}

func TestMoveActionInvalidStatus(t *testing.T) {
	srv := newTestServer(t)
	id := createTestAction(t, srv, "movable")

	rec := doJSON(t, srv, http.MethodPost, "/api/companies/acme/actions/"+id+"/move", map[string]any{
		"target_status": "SHIPPED",
		"moved_by_id":   "user-mover",
	})
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestUpdateActionEndpoint(t *testing.T) {
	srv := newTestServer(t)
	id := createTestAction(t, srv, "old title")

	rec := doJSON(t, srv, http.MethodPatch, "/api/companies/acme/actions/"+id+"/", map[string]any{
		"title":    "new title",
		"priority": "HIGH",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var action struct {
		Title    string `json:"title"`
		Priority string `json:"priority"`
	}
	decodeJSON(t, rec, &action)
	gt.Value(t, action.Title).Equal("new title")
	gt.Value(t, action.Priority).Equal("HIGH")
}

func TestUpdateActionImplicitTransition(t *testing.T) {
	srv := newTestServer(t)
	id := createTestAction(t, srv, "self starting")

	rec := doJSON(t, srv, http.MethodPatch, "/api/companies/acme/actions/"+id+"/", map[string]any{
		"actual_start_date": "2026-03-11T09:00:00Z",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var action struct {
		Status string `json:"status"`
	}
	decodeJSON(t, rec, &action)
	gt.Value(t, action.Status).Equal("IN_PROGRESS")

	rec = doJSON(t, srv, http.MethodGet, "/api/companies/acme/actions/"+id+"/movements", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var movements []map[string]any
	decodeJSON(t, rec, &movements)
	gt.Array(t, movements).Length(0)
}

func TestDeleteActionEndpoint(t *testing.T) {
	srv := newTestServer(t)
	id := createTestAction(t, srv, "disposable")

	rec := doJSON(t, srv, http.MethodDelete, "/api/companies/acme/actions/"+id+"/", nil)
	gt.Value(t, rec.Code).Equal(http.StatusNoContent)

	rec = doJSON(t, srv, http.MethodGet, "/api/companies/acme/actions/"+id+"/", nil)
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestBlockUnblockEndpoints(t *testing.T) {
	srv := newTestServer(t)
	id := createTestAction(t, srv, "stuck")

	rec := doJSON(t, srv, http.MethodPost, "/api/companies/acme/actions/"+id+"/block", map[string]any{
		"reason": "waiting on approval",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var action struct {
		IsBlocked     bool    `json:"is_blocked"`
		BlockedReason *string `json:"blocked_reason"`
	}
	decodeJSON(t, rec, &action)
	gt.Value(t, action.IsBlocked).Equal(true)

	rec = doJSON(t, srv, http.MethodPost, "/api/companies/acme/actions/"+id+"/block", map[string]any{
		"reason": "",
	})
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

	rec = doJSON(t, srv, http.MethodPost, "/api/companies/acme/actions/"+id+"/unblock", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	decodeJSON(t, rec, &action)
	gt.Value(t, action.IsBlocked).Equal(false)
}

func TestGetBoardEndpoint(t *testing.T) {
	srv := newTestServer(t)
	createTestAction(t, srv, "todo one")
	id := createTestAction(t, srv, "in flight")

	rec := doJSON(t, srv, http.MethodPost, "/api/companies/acme/actions/"+id+"/move", map[string]any{
		"target_status": "IN_PROGRESS",
		"moved_by_id":   "user-mover",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = doJSON(t, srv, http.MethodGet, "/api/companies/acme/board", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var board struct {
		Columns map[string][]struct {
			Position int  `json:"position"`
			IsLate   bool `json:"is_late"`
		} `json:"columns"`
	}
	decodeJSON(t, rec, &board)
	gt.Array(t, board.Columns["TODO"]).Length(1)
	gt.Array(t, board.Columns["IN_PROGRESS"]).Length(1)
	gt.Array(t, board.Columns["DONE"]).Length(0)
}

func TestCompanyScoping(t *testing.T) {
	srv := newTestServer(t)
	id := createTestAction(t, srv, "private")

	rec := doJSON(t, srv, http.MethodGet, "/api/companies/rival/actions/"+id+"/", nil)
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
}
