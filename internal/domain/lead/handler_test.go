package lead

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"

	"leadcrm/internal/domain/audit"
)

func setupRouter(t *testing.T, f *svcFixture) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(f.svc, audit.NewRecorder(f.db))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if raw := c.GetHeader("X-Test-User-ID"); raw != "" {
			id, _ := strconv.ParseInt(raw, 10, 64)
			c.Set("user_id", id)
		}
		c.Next()
	})

	v1 := r.Group("/api/v1")
	h.RegisterRoutes(v1)
	return r
}

func doJSON(r http.Handler, method, path string, body any, userID int64) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-Test-User-ID", strconv.FormatInt(userID, 10))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return e
}

func TestSaveLeadEnvelope(t *testing.T) {
	f := setupService(t)
	r := setupRouter(t, f)

	w := doJSON(r, http.MethodPost, "/api/v1/save-lead", map[string]any{
		"name":               "Envelope Co",
		"email":              "env@x.test",
		"lead_status_id":     1,
		"lead_channel_id":    1,
		"lead_conversion_id": 1,
		"product_services":   []int{1},
	}, f.ownerUserID)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	e := decodeEnvelope(t, w)
	if !e.Status || e.Message != "Lead saved successfully." {
		t.Fatalf("unexpected envelope %+v", e)
	}
}

func TestSaveLeadValidationFailureIsHTTP200(t *testing.T) {
	f := setupService(t)
	r := setupRouter(t, f)

	w := doJSON(r, http.MethodPost, "/api/v1/save-lead", map[string]any{
		"email": "env@x.test",
	}, f.ownerUserID)

	if w.Code != http.StatusOK {
		t.Fatalf("failures still answer 200, got %d", w.Code)
	}
	e := decodeEnvelope(t, w)
	if e.Status {
		t.Fatal("status flag should be false")
	}
	if e.Message != "Invalid name, please try again." {
		t.Fatalf("expected first failing field's message, got %q", e.Message)
	}
}

func TestUpdateForeignLeadAnswersGenericDenial(t *testing.T) {
	f := setupService(t)
	r := setupRouter(t, f)

	l := f.createLead(t, f.ownerUserID, saveValues("Private", "p@x.test"))

	w := doJSON(r, http.MethodPost, "/api/v1/update-lead", map[string]any{
		"lead_id":            l.ID,
		"name":               "Taken Over",
		"email":              "p@x.test",
		"lead_status_id":     1,
		"lead_channel_id":    1,
		"lead_conversion_id": 1,
		"product_services":   []int{1},
	}, f.otherUserID)

	e := decodeEnvelope(t, w)
	if e.Status {
		t.Fatal("status flag should be false")
	}
	if e.Message == "" || e.Message == "Oops! Something went wrong. Please try again." {
		t.Fatalf("denial must use the credential message, got %q", e.Message)
	}
}

func TestLeadListEnvelope(t *testing.T) {
	f := setupService(t)
	r := setupRouter(t, f)

	f.createLead(t, f.ownerUserID, saveValues("Listed", "list@x.test"))

	w := doJSON(r, http.MethodGet, "/api/v1/lead-list?page=1", nil, f.ownerUserID)

	e := decodeEnvelope(t, w)
	if !e.Status {
		t.Fatalf("unexpected envelope %+v", e)
	}

	var page Page
	if err := json.Unmarshal(e.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.CurrentPage != 1 || page.PerPage != PerPage || page.Total != 1 {
		t.Fatalf("unexpected paginator %+v", page)
	}
}
