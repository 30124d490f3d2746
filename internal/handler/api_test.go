package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/handler"
	"github.com/portfolio/internal/router"
	"github.com/portfolio/internal/service"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:portfolio-handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(db.Models()...); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func newTestRouter(t *testing.T, gdb *gorm.DB, opts handler.Options) *gin.Engine {
	t.Helper()
	api := handler.NewAPI(gdb, opts)
	return router.SetupRouter(api, router.Options{})
}

func perform(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}
	return payload
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, setupHandlerTestDB(t), handler.Options{})

	rr := perform(r, http.MethodGet, "/api/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if payload := decodeBody(t, rr); payload["status"] != "ok" {
		t.Fatalf("unexpected body %v", payload)
	}
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	r := newTestRouter(t, setupHandlerTestDB(t), handler.Options{})

	rr := perform(r, http.MethodGet, "/api/nope", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if payload := decodeBody(t, rr); payload["error"] != "Not Found" {
		t.Fatalf("unexpected body %v", payload)
	}
}

func TestIntroductionEmptyReturnsNullData(t *testing.T) {
	r := newTestRouter(t, setupHandlerTestDB(t), handler.Options{})

	rr := perform(r, http.MethodGet, "/api/introduction", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != `{"data":null}` {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
}

func TestIntroductionEnvelope(t *testing.T) {
	gdb := setupHandlerTestDB(t)
	skills := `["Go"]`
	if err := gdb.Create(&db.Introduction{FullName: "Ada", Title: "Engineer", Email: "ada@example.com", Skills: &skills}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	r := newTestRouter(t, gdb, handler.Options{})

	rr := perform(r, http.MethodGet, "/api/introduction", "", nil)
	payload := decodeBody(t, rr)
	data, ok := payload["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got %v", payload)
	}
	attrs := data["attributes"].(map[string]interface{})
	if attrs["fullName"] != "Ada" {
		t.Fatalf("unexpected attributes %v", attrs)
	}
	if _, present := attrs["avatar"]; present {
		t.Fatalf("avatar should be omitted without a url")
	}
	if skills, ok := attrs["skills"].([]interface{}); !ok || len(skills) != 1 {
		t.Fatalf("unexpected skills %v", attrs["skills"])
	}
}

func TestWorkExperiencesPagination(t *testing.T) {
	gdb := setupHandlerTestDB(t)
	r := newTestRouter(t, gdb, handler.Options{})

	rr := perform(r, http.MethodGet, "/api/work-experiences", "", nil)
	payload := decodeBody(t, rr)
	pagination := payload["meta"].(map[string]interface{})["pagination"].(map[string]interface{})
	if pagination["pageSize"].(float64) != 1 || pagination["total"].(float64) != 0 || pagination["pageCount"].(float64) != 1 {
		t.Fatalf("unexpected empty pagination %v", pagination)
	}
	if data, ok := payload["data"].([]interface{}); !ok || len(data) != 0 {
		t.Fatalf("expected empty data array, got %v", payload["data"])
	}

	now := time.Now()
	for i := 0; i < 3; i++ {
		row := db.WorkExperience{Company: fmt.Sprintf("C%d", i), Position: "P", StartDate: fmt.Sprintf("202%d-01-01", i), PublishedAt: &now}
		if err := gdb.Create(&row).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	rr = perform(r, http.MethodGet, "/api/work-experiences", "", nil)
	payload = decodeBody(t, rr)
	pagination = payload["meta"].(map[string]interface{})["pagination"].(map[string]interface{})
	if pagination["pageSize"].(float64) != 3 || pagination["total"].(float64) != 3 {
		t.Fatalf("unexpected pagination %v", pagination)
	}
}

func seedBlogs(t *testing.T, gdb *gorm.DB, count int) {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		published := base.Add(time.Duration(i) * time.Hour)
		row := db.Blog{Title: fmt.Sprintf("Post %d", i), Slug: fmt.Sprintf("post-%d", i), Content: "# Hi\n\n<script>x()</script>", PublishedAt: &published}
		if err := gdb.Create(&row).Error; err != nil {
			t.Fatalf("seed blog: %v", err)
		}
	}
}

func TestBlogsPagination(t *testing.T) {
	gdb := setupHandlerTestDB(t)
	seedBlogs(t, gdb, 15)
	r := newTestRouter(t, gdb, handler.Options{})

	cases := []struct {
		name      string
		query     string
		wantItems int
		wantPage  float64
		wantSize  float64
		wantCount float64
	}{
		{name: "strapi params", query: "pagination[page]=2&pagination[pageSize]=10", wantItems: 5, wantPage: 2, wantSize: 10, wantCount: 2},
		{name: "short params", query: "page=1&pageSize=4", wantItems: 4, wantPage: 1, wantSize: 4, wantCount: 4},
		{name: "defaults", query: "", wantItems: 10, wantPage: 1, wantSize: 10, wantCount: 2},
		{name: "leading digits", query: "page=2abc&pageSize=10xyz", wantItems: 5, wantPage: 2, wantSize: 10, wantCount: 2},
		{name: "garbage falls back", query: "page=abc", wantItems: 10, wantPage: 1, wantSize: 10, wantCount: 2},
		{name: "floored", query: "page=0&pageSize=-3", wantItems: 1, wantPage: 1, wantSize: 1, wantCount: 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := perform(r, http.MethodGet, "/api/blogs?"+tc.query, "", nil)
			if rr.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rr.Code)
			}
			payload := decodeBody(t, rr)
			data := payload["data"].([]interface{})
			if len(data) != tc.wantItems {
				t.Fatalf("expected %d items, got %d", tc.wantItems, len(data))
			}
			pagination := payload["meta"].(map[string]interface{})["pagination"].(map[string]interface{})
			if pagination["page"].(float64) != tc.wantPage || pagination["pageSize"].(float64) != tc.wantSize ||
				pagination["pageCount"].(float64) != tc.wantCount || pagination["total"].(float64) != 15 {
				t.Fatalf("unexpected pagination %v", pagination)
			}
		})
	}
}

func TestBlogsSlugFilter(t *testing.T) {
	gdb := setupHandlerTestDB(t)
	seedBlogs(t, gdb, 2)
	r := newTestRouter(t, gdb, handler.Options{})

	rr := perform(r, http.MethodGet, "/api/blogs?filters[slug][$eq]=post-1", "", nil)
	payload := decodeBody(t, rr)
	data := payload["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("expected one blog, got %d", len(data))
	}
	attrs := data[0].(map[string]interface{})["attributes"].(map[string]interface{})
	contentHTML, _ := attrs["contentHtml"].(string)
	if !strings.Contains(contentHTML, "<h1") || strings.Contains(contentHTML, "<script>") {
		t.Fatalf("unexpected contentHtml %q", contentHTML)
	}

	rr = perform(r, http.MethodGet, "/api/blogs?slug=missing", "", nil)
	payload = decodeBody(t, rr)
	if data := payload["data"].([]interface{}); len(data) != 0 {
		t.Fatalf("expected empty collection, got %v", data)
	}
	pagination := payload["meta"].(map[string]interface{})["pagination"].(map[string]interface{})
	if pagination["total"].(float64) != 0 || pagination["pageSize"].(float64) != 1 {
		t.Fatalf("unexpected pagination %v", pagination)
	}
}

func TestCreateContactRequest(t *testing.T) {
	gdb := setupHandlerTestDB(t)
	r := newTestRouter(t, gdb, handler.Options{})

	cases := []struct {
		name        string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{name: "invalid email", body: `{"data":{"name":"A","email":"bad-email","subject":"S","message":"M"}}`, wantStatus: http.StatusBadRequest, wantMessage: "Invalid email format"},
		{name: "missing fields", body: `{"data":{"name":"A","email":"a@b.co"}}`, wantStatus: http.StatusBadRequest, wantMessage: "Missing required fields"},
		{name: "malformed json", body: `{"data":`, wantStatus: http.StatusBadRequest, wantMessage: "Missing required fields"},
		{name: "no data", body: `{}`, wantStatus: http.StatusBadRequest, wantMessage: "Missing required fields"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := perform(r, http.MethodPost, "/api/contact-requests", tc.body, nil)
			if rr.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d (%s)", tc.wantStatus, rr.Code, rr.Body.String())
			}
			payload := decodeBody(t, rr)
			errBody := payload["error"].(map[string]interface{})
			if errBody["message"] != tc.wantMessage {
				t.Fatalf("expected %q, got %v", tc.wantMessage, errBody["message"])
			}
		})
	}

	rr := perform(r, http.MethodPost, "/api/contact-requests", `{"data":{"name":"A","email":"a@b.co","subject":"S","message":"M"}}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}
	payload := decodeBody(t, rr)
	if payload["message"] != "Contact request submitted successfully" {
		t.Fatalf("unexpected message %v", payload["message"])
	}
	data := payload["data"].(map[string]interface{})
	if data["id"].(float64) < 1 {
		t.Fatalf("expected created id, got %v", data["id"])
	}
	attrs := data["attributes"].(map[string]interface{})
	if attrs["email"] != "a@b.co" || attrs["company"] != nil {
		t.Fatalf("unexpected echoed attributes %v", attrs)
	}

	var count int64
	gdb.Model(&db.ContactRequest{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one stored request, got %d", count)
	}
}

func TestCreateContactRequestRejectsWrongTypes(t *testing.T) {
	r := newTestRouter(t, setupHandlerTestDB(t), handler.Options{})

	rr := perform(r, http.MethodPost, "/api/contact-requests", `{"data":{"name":42,"email":"a@b.co","subject":"S","message":"M"}}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	payload := decodeBody(t, rr)
	message, _ := payload["error"].(map[string]interface{})["message"].(string)
	if !strings.HasPrefix(message, "Invalid request body") {
		t.Fatalf("unexpected message %q", message)
	}
}

func TestGenerateCVAuth(t *testing.T) {
	gdb := setupHandlerTestDB(t)
	r := newTestRouter(t, gdb, handler.Options{AdminToken: "s3cret"})

	cases := []struct {
		name       string
		headers    map[string]string
		wantStatus int
	}{
		{name: "no header", headers: nil, wantStatus: http.StatusUnauthorized},
		{name: "wrong bearer", headers: map[string]string{"Authorization": "Bearer nope"}, wantStatus: http.StatusUnauthorized},
		{name: "bearer without scheme", headers: map[string]string{"Authorization": "s3cret"}, wantStatus: http.StatusUnauthorized},
		{name: "bearer", headers: map[string]string{"Authorization": "Bearer s3cret"}, wantStatus: http.StatusOK},
		{name: "api key", headers: map[string]string{"X-API-KEY": "s3cret"}, wantStatus: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := perform(r, http.MethodPost, "/api/cv-generator/generate", "", tc.headers)
			if rr.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rr.Code)
			}
			if tc.wantStatus == http.StatusUnauthorized {
				if payload := decodeBody(t, rr); payload["error"] != "Unauthorized" {
					t.Fatalf("unexpected body %v", payload)
				}
			}
		})
	}
}

func TestGenerateCVBcryptSecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	r := newTestRouter(t, setupHandlerTestDB(t), handler.Options{AdminTokenBcrypt: string(hash)})

	if rr := perform(r, http.MethodPost, "/api/cv-generator/generate", "", map[string]string{"X-API-KEY": "hashed-secret"}); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr := perform(r, http.MethodPost, "/api/cv-generator/generate", "", map[string]string{"X-API-KEY": "other"}); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestGenerateCVThrottlesHashedSecretGuesses(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	r := newTestRouter(t, setupHandlerTestDB(t), handler.Options{AdminTokenBcrypt: string(hash)})

	throttled := false
	for i := 0; i < 40 && !throttled; i++ {
		rr := perform(r, http.MethodPost, "/api/cv-generator/generate", "", map[string]string{"X-API-KEY": fmt.Sprintf("guess-%d", i)})
		switch rr.Code {
		case http.StatusUnauthorized:
		case http.StatusTooManyRequests:
			throttled = true
			if payload := decodeBody(t, rr); payload["error"] != "Too Many Requests" {
				t.Fatalf("unexpected body %v", payload)
			}
		default:
			t.Fatalf("unexpected status %d", rr.Code)
		}
	}
	if !throttled {
		t.Fatalf("expected repeated guesses to be throttled")
	}
}

func TestCreateContactRequestRejectsOversizeBody(t *testing.T) {
	gdb := setupHandlerTestDB(t)
	r := newTestRouter(t, gdb, handler.Options{})

	message := strings.Repeat("a", 70<<10)
	body := `{"data":{"name":"A","email":"a@b.co","subject":"S","message":"` + message + `"}}`
	rr := perform(r, http.MethodPost, "/api/contact-requests", body, nil)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
	payload := decodeBody(t, rr)
	if payload["error"].(map[string]interface{})["message"] != "Request body too large" {
		t.Fatalf("unexpected body %v", payload)
	}

	var count int64
	gdb.Model(&db.ContactRequest{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected nothing stored, got %d", count)
	}
}

func TestGenerateCVEmptyDatabase(t *testing.T) {
	r := newTestRouter(t, setupHandlerTestDB(t), handler.Options{})

	rr := perform(r, http.MethodPost, "/api/cv-generator/generate", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 without configured secret, got %d", rr.Code)
	}

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			HTML   string  `json:"html"`
			URL    *string `json:"url"`
			PDFURL *string `json:"pdfUrl"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !payload.Success || payload.Message != "CV generated successfully" {
		t.Fatalf("unexpected envelope %+v", payload)
	}
	if !strings.HasPrefix(payload.Data.HTML, "<!doctype html>") || !strings.Contains(payload.Data.HTML, "</html>") {
		t.Fatalf("expected full html document")
	}
	if payload.Data.URL != nil || payload.Data.PDFURL != nil {
		t.Fatalf("expected null urls without storage")
	}
}

func TestShowCVRendersLiveDocument(t *testing.T) {
	gdb := setupHandlerTestDB(t)
	if err := gdb.Create(&db.Introduction{FullName: "Ada Lovelace", Title: "Engineer", Email: "ada@example.com"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	r := newTestRouter(t, gdb, handler.Options{})

	rr := perform(r, http.MethodGet, "/cv.html", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.HasPrefix(rr.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("unexpected content type %q", rr.Header().Get("Content-Type"))
	}
	if !strings.Contains(rr.Body.String(), "Ada Lovelace - Engineer") {
		t.Fatalf("expected introduction in rendered document")
	}
}

func TestAdminRoutesRequireSecret(t *testing.T) {
	gdb := setupHandlerTestDB(t)

	open := newTestRouter(t, gdb, handler.Options{})
	if rr := perform(open, http.MethodPost, "/api/admin/blogs", `{"title":"x","slug":"x"}`, nil); rr.Code != http.StatusNotFound {
		t.Fatalf("admin routes must not exist without a secret, got %d", rr.Code)
	}

	secured := newTestRouter(t, gdb, handler.Options{AdminToken: "s3cret"})
	if rr := perform(secured, http.MethodPost, "/api/admin/blogs", `{"title":"x","slug":"x"}`, nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestAdminContentLifecycle(t *testing.T) {
	gdb := setupHandlerTestDB(t)
	events := service.NewContentEvents()
	r := newTestRouter(t, gdb, handler.Options{AdminToken: "s3cret", Events: events})
	auth := map[string]string{"Authorization": "Bearer s3cret"}

	rr := perform(r, http.MethodPost, "/api/admin/blogs", `{"title":"Hello","slug":"hello","content":"Body"}`, auth)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rr.Code, rr.Body.String())
	}
	id := decodeBody(t, rr)["data"].(map[string]interface{})["id"].(float64)

	if rr := perform(r, http.MethodPost, "/api/admin/blogs", `{"title":"Dup","slug":"hello"}`, auth); rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate slug, got %d", rr.Code)
	}
	if rr := perform(r, http.MethodPost, "/api/admin/blogs", `{"title":"","slug":"x"}`, auth); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing title, got %d", rr.Code)
	}

	rr = perform(r, http.MethodGet, "/api/blogs?slug=hello", "", nil)
	if data := decodeBody(t, rr)["data"].([]interface{}); len(data) != 1 {
		t.Fatalf("expected published blog to be visible, got %v", data)
	}

	path := fmt.Sprintf("/api/admin/blogs/%d", int(id))
	if rr := perform(r, http.MethodPut, path, `{"title":"Hello","slug":"hello","publish":false}`, auth); rr.Code != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d", rr.Code)
	}
	rr = perform(r, http.MethodGet, "/api/blogs?slug=hello", "", nil)
	if data := decodeBody(t, rr)["data"].([]interface{}); len(data) != 0 {
		t.Fatalf("expected unpublished blog to be hidden")
	}

	if rr := perform(r, http.MethodDelete, path, "", auth); rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if rr := perform(r, http.MethodDelete, path, "", auth); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rr.Code)
	}
	if rr := perform(r, http.MethodDelete, "/api/admin/blogs/abc", "", auth); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rr.Code)
	}
	events.Wait()
}

func TestAdminListContactRequests(t *testing.T) {
	gdb := setupHandlerTestDB(t)
	r := newTestRouter(t, gdb, handler.Options{AdminToken: "s3cret"})

	body := `{"data":{"name":"A","email":"a@b.co","subject":"S","message":"M"}}`
	for i := 0; i < 2; i++ {
		if rr := perform(r, http.MethodPost, "/api/contact-requests", body, nil); rr.Code != http.StatusOK {
			t.Fatalf("seed contact request: %d", rr.Code)
		}
	}

	rr := perform(r, http.MethodGet, "/api/admin/contact-requests", "", map[string]string{"X-API-KEY": "s3cret"})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if data := decodeBody(t, rr)["data"].([]interface{}); len(data) != 2 {
		t.Fatalf("expected 2 contact requests, got %d", len(data))
	}
}
