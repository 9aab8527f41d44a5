package validation

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/bookshelf-api/internal/schema"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	Register()

	r := gin.New()
	r.POST("/create", func(c *gin.Context) {
		var req schema.CreateBookRequest
		if !BindAndValidateJSON(c, &req) {
			return
		}
		c.JSON(http.StatusOK, req)
	})
	r.POST("/update", func(c *gin.Context) {
		var req schema.UpdateBookRequest
		if !BindAndValidateJSON(c, &req) {
			return
		}
		c.JSON(http.StatusOK, req)
	})
	return r
}

func post(t *testing.T, r *gin.Engine, path, body string) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()

	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func hasFieldError(resp ErrorResponse, field, rule string) bool {
	for _, fe := range resp.Errors {
		if fe.Field == field && fe.Rule == rule {
			return true
		}
	}
	return false
}

func TestBindAndValidateJSON_CreateRequiredFields(t *testing.T) {
	r := setupRouter()

	w, resp := post(t, r, "/create", `{"title":"Dune"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d, body=%s", w.Code, w.Body.String())
	}

	if resp.Detail != "validation failed" {
		t.Errorf("expected detail %q, got %q", "validation failed", resp.Detail)
	}

	for _, field := range []string{"author", "publisher", "page_count", "publish_date"} {
		if !hasFieldError(resp, field, "required") {
			t.Errorf("expected required error for %s, got %+v", field, resp.Errors)
		}
	}
	if hasFieldError(resp, "title", "required") {
		t.Errorf("did not expect error for title")
	}
}

func TestBindAndValidateJSON_CreateValid(t *testing.T) {
	r := setupRouter()

	body := `{"title":"Dune","author":"Herbert","publisher":"Chilton","page_count":412,"publish_date":"1965-06-01"}`
	w, _ := post(t, r, "/create", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestBindAndValidateJSON_CreateEmptyPublishDate(t *testing.T) {
	r := setupRouter()

	body := `{"title":"Dune","author":"Herbert","publisher":"Chilton","page_count":412,"publish_date":""}`
	w, resp := post(t, r, "/create", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !hasFieldError(resp, "publish_date", "required") {
		t.Errorf("expected required error for publish_date, got %+v", resp.Errors)
	}
}

func TestBindAndValidateJSON_Syntax(t *testing.T) {
	r := setupRouter()

	w, resp := post(t, r, "/create", `{"title":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if resp.Code != "INVALID_BODY" {
		t.Errorf("expected code INVALID_BODY, got %q", resp.Code)
	}
}

func TestBindAndValidateJSON_UpdateRules(t *testing.T) {
	r := setupRouter()

	tests := []struct {
		name   string
		body   string
		status int
		field  string
		rule   string
	}{
		{"only language", `{"language":"en"}`, http.StatusOK, "", ""},
		{"empty language allowed", `{"language":""}`, http.StatusOK, "", ""},
		{"empty title rejected", `{"title":""}`, http.StatusBadRequest, "title", "min"},
		{"zero pages rejected", `{"page_count":0}`, http.StatusBadRequest, "page_count", "min"},
		{"null rejected", `{"author":null}`, http.StatusBadRequest, "", "syntax"},
		{"absent fields skipped", `{}`, http.StatusOK, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := post(t, r, "/update", tt.body)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d, body=%s", tt.status, w.Code, w.Body.String())
			}
			if tt.rule != "" && !hasFieldError(resp, tt.field, tt.rule) {
				t.Errorf("expected %s/%s error, got %+v", tt.field, tt.rule, resp.Errors)
			}
		})
	}
}
