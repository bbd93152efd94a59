package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"edu_platform_backend/internal/config"
	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/util"
	"edu_platform_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "integration-secret-at-least-32-chars"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	cfg := config.Default()
	cfg.Server.Mode = gin.TestMode
	cfg.JWT.Secret = testSecret
	cfg.Database.Type = "sqlite"
	cfg.Storage.LocalPath = t.TempDir()
	return New(&cfg, db, nil)
}

func token(t *testing.T, sub string, role model.UserRole) string {
	t.Helper()
	tok, err := util.GenerateJWT(sub, role, testSecret, time.Hour)
	require.NoError(t, err)
	return tok
}

func do(t *testing.T, a *App, method, path, tok string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

const pathDocument = `{
  "title": "HTTP Basics",
  "description": "Requests, responses and status codes",
  "difficulty": "beginner",
  "category": "web",
  "status": "published",
  "modules": [{
    "title": "Requests",
    "status": "published",
    "lessons": [{
      "title": "Verbs",
      "status": "published",
      "content": {"type": "text", "body": "GET, POST and friends"}
    }]
  }]
}`

func TestHealth(t *testing.T) {
	a := newTestApp(t)
	w, env := do(t, a, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "ok", data.Status)
	assert.Equal(t, "disabled", data.Components["cache"])
}

func TestAuthAndRoles(t *testing.T) {
	a := newTestApp(t)

	w, _ := do(t, a, http.MethodGet, "/api/enrollments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, a, http.MethodGet, "/api/enrollments", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, a, http.MethodPost, "/api/paths", token(t, "s1", model.RoleStudent), pathDocument)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = do(t, a, http.MethodGet, "/api/paths", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPathEnrollmentProgressFlow(t *testing.T) {
	a := newTestApp(t)
	instructor := token(t, "i1", model.RoleInstructor)
	student := token(t, "s1", model.RoleStudent)

	w, env := do(t, a, http.MethodPost, "/api/paths", instructor, pathDocument)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var path model.LearningPath
	require.NoError(t, json.Unmarshal(env.Data, &path))
	assert.Equal(t, "http-basics", path.Slug)
	assert.Equal(t, "USD", path.Currency)
	require.Len(t, path.Modules, 1)
	require.Len(t, path.Modules[0].Lessons, 1)
	lessonID := path.Modules[0].Lessons[0].ID

	w, env = do(t, a, http.MethodGet, "/api/paths", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page model.PageResult[model.LearningPath]
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.EqualValues(t, 1, page.Total)

	w, _ = do(t, a, http.MethodGet, "/api/paths?sortBy=password", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	progress := gin.H{"contentId": lessonID, "contentType": "lesson", "status": "completed"}
	w, _ = do(t, a, http.MethodPost, "/api/progress", student, progress)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "not enrolled yet")

	w, env = do(t, a, http.MethodPost, "/api/enrollments", student, gin.H{"pathId": path.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var enrollment model.Enrollment
	require.NoError(t, json.Unmarshal(env.Data, &enrollment))
	assert.Equal(t, model.EnrollmentActive, enrollment.Status)

	w, _ = do(t, a, http.MethodPost, "/api/enrollments", student, gin.H{"pathId": path.ID})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = do(t, a, http.MethodPost, "/api/progress", student, progress)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = do(t, a, http.MethodGet, "/api/paths/"+path.ID+"/completion", student, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var completion struct {
		Completed       bool    `json:"completed"`
		ProgressPercent float64 `json:"progressPercent"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &completion))
	assert.True(t, completion.Completed)
	assert.Equal(t, 100.0, completion.ProgressPercent)
}

func TestSchemaEndpoints(t *testing.T) {
	a := newTestApp(t)

	w, env := do(t, a, http.MethodGet, "/api/schemas", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var kinds []string
	require.NoError(t, json.Unmarshal(env.Data, &kinds))
	assert.Contains(t, kinds, "learningPath")

	w, env = do(t, a, http.MethodPost, "/api/schemas/learningPath/validate", "", `{"title":"x","difficulty":"legendary"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var failed struct {
		Errors []struct {
			Field string `json:"field"`
			Rule  string `json:"rule"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &failed))
	fields := map[string]string{}
	for _, e := range failed.Errors {
		fields[e.Field] = e.Rule
	}
	assert.Equal(t, "required", fields["description"])
	assert.Equal(t, "enum", fields["difficulty"])

	w, _ = do(t, a, http.MethodPost, "/api/schemas/spaceship/validate", "", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, a, http.MethodPost, "/api/schemas/learningPath/validate?format=yaml", "", pathYAML)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = do(t, a, http.MethodGet, "/api/config/educational", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var edu config.EducationalConfig
	require.NoError(t, json.Unmarshal(env.Data, &edu))
	assert.Equal(t, 70, edu.Grading.DefaultPassingScore)
}

const pathYAML = `
title: Packet Capture
description: tcpdump and Wireshark
difficulty: intermediate
category: networking
`
