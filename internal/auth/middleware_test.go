package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(tokens *TokenService) *gin.Engine {
	r := gin.New()
	r.GET("/protected", RequireToken(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, UserIDFromContext(c))
	})
	return r
}

func doGet(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireToken_Valid_SetsUserID(t *testing.T) {
	tokens := NewTokenService([]byte("secret"), time.Hour)
	tok, err := tokens.Issue("user-123")
	require.NoError(t, err)

	w := doGet(newProtectedRouter(tokens), "Bearer "+tok)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-123", w.Body.String())
}

func TestRequireToken_Rejects(t *testing.T) {
	tokens := NewTokenService([]byte("secret"), time.Hour)
	tok, err := tokens.Issue("user-123")
	require.NoError(t, err)
	other, err := NewTokenService([]byte("other"), time.Hour).Issue("user-123")
	require.NoError(t, err)

	tests := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic " + tok,
		"no token":       "Bearer ",
		"bare token":     tok,
		"garbage":        "Bearer not-a-jwt",
		"foreign secret": "Bearer " + other,
	}
	r := newProtectedRouter(tokens)
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			w := doGet(r, header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"message"`)
		})
	}
}

func TestBearerToken_CaseInsensitiveScheme(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "bearer  abc.def.ghi ")

	tok, ok := BearerToken(c)
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", tok)
}

func TestUserIDFromContext_Empty(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "", UserIDFromContext(c))
}
