package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"edu_platform_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "unit-test-secret-with-enough-length"

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("student-42", model.RoleStudent, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "student-42", claims.UserID())
	assert.Equal(t, model.RoleStudent, claims.Role)
}

func TestJWTRejectsWrongSecretAndExpiry(t *testing.T) {
	token, err := GenerateJWT("student-42", model.RoleInstructor, testSecret, time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(token, "another-secret")
	assert.Error(t, err)

	expired, err := GenerateJWT("student-42", model.RoleStudent, testSecret, -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, testSecret)
	assert.Error(t, err)
}

func TestGenerateJWTInvalidRole(t *testing.T) {
	_, err := GenerateJWT("u1", model.UserRole("root"), testSecret, time.Hour)
	assert.Error(t, err)
}

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Hello, World!", "hello-world"},
		{"  Go 101  ", "go-101"},
		{"TCP/IP -- Deep Dive", "tcp-ip-deep-dive"},
		{"网络安全 基础", "网络安全-基础"},
		{"---", ""},
		{"Already-slugged-title", "already-slugged-title"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), tc.in)
	}
}

func TestParseBoolDefault(t *testing.T) {
	assert.True(t, ParseBoolDefault("", true))
	assert.False(t, ParseBoolDefault("false", true))
	assert.True(t, ParseBoolDefault("nope", true))
}

func TestHandleErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		want int
	}{
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{ErrFeatureDisabled, http.StatusNotFound},
		{ErrPermissionDenied, http.StatusForbidden},
		{fmt.Errorf("enroll: %w", ErrAlreadyEnrolled), http.StatusConflict},
		{gorm.ErrDuplicatedKey, http.StatusConflict},
		{ErrMaxAttemptsReached, http.StatusUnprocessableEntity},
		{ErrNotEnrolled, http.StatusUnprocessableEntity},
		{ErrInvalidVote, http.StatusBadRequest},
		{ErrInvalidSort, http.StatusBadRequest},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		HandleError(c, tc.err)
		assert.Equal(t, tc.want, w.Code, tc.err.Error())

		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tc.want, resp.Code)
	}
}

func TestValidateMimeType(t *testing.T) {
	mime, err := ValidateMimeType(strings.NewReader("%PDF-1.7 lab handout"), AllowedAttachmentTypes)
	require.NoError(t, err)
	assert.Equal(t, MimePDF, mime)

	_, err = ValidateMimeType(strings.NewReader("plain notes"), []string{MimeVideo})
	assert.True(t, errors.Is(err, ErrInvalidFile))
}

func TestIsVideoFile(t *testing.T) {
	assert.True(t, IsVideoFile("intro.MP4"))
	assert.True(t, IsVideoFile("capture.webm"))
	assert.False(t, IsVideoFile("slides.pdf"))
	assert.False(t, IsVideoFile("noext"))
}
