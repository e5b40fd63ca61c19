package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type loginBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=student advisor secretariat"`
}

func bindBody(t *testing.T, body string, obj any) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return BindJSONStrict(c, obj)
}

func TestBindJSONStrict(t *testing.T) {
	var ok loginBody
	require.NoError(t, bindBody(t, `{"email":"a@b.co","password":"secret1"}`, &ok))
	require.Equal(t, "a@b.co", ok.Email)

	var unknown loginBody
	err := bindBody(t, `{"email":"a@b.co","password":"secret1","pasword":"typo"}`, &unknown)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown field")

	var invalid loginBody
	err = bindBody(t, `{"email":"not-an-email","password":"secret1"}`, &invalid)
	require.Error(t, err)
}

func TestFormatValidationError(t *testing.T) {
	var body loginBody
	err := bindBody(t, `{"email":"not-an-email","password":"short","role":"professor"}`, &body)
	require.Error(t, err)

	msg := FormatValidationError(err)
	require.Contains(t, msg, "Email must be a valid email address")
	require.Contains(t, msg, "Password must have at least 6 characters")
	require.Contains(t, msg, "Role must be one of: student advisor secretariat")
}
