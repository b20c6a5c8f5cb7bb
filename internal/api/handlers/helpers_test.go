package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"example.com/backstage/services/crusher/internal/services"
)

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestRespondErrorNotFound(t *testing.T) {
	c, w := testContext(t)
	respondError(c, errors.Wrap(gorm.ErrRecordNotFound, "failed to get material"))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRespondErrorDuplicate(t *testing.T) {
	c, w := testContext(t)
	respondError(c, errors.Wrap(gorm.ErrDuplicatedKey, "failed to create material"))
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRespondErrorForeignKey(t *testing.T) {
	c, w := testContext(t)
	respondError(c, errors.Wrap(gorm.ErrForeignKeyViolated, "failed to delete material"))
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRespondErrorValidation(t *testing.T) {
	c, w := testContext(t)
	respondError(c, errors.Wrap(services.ErrValidation, `invalid delivery status "LOST"`))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRespondErrorFallsBackTo500(t *testing.T) {
	c, w := testContext(t)
	respondError(c, errors.New("connection reset"))
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRespondErrorInfrastructureErrorIsNot400(t *testing.T) {
	// message text must not pick the status; only the sentinel does
	c, w := testContext(t)
	respondError(c, errors.New("invalid connection"))
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestActorFromHeaders(t *testing.T) {
	c, _ := testContext(t)
	c.Request.Header.Set("X-User-Id", "12")
	c.Request.Header.Set("X-Request-Id", "8b8f7df3-3a46-4e9f-9f39-6d52a93f6a66")

	actor := actorFrom(c)
	require.NotNil(t, actor.UserID)
	require.Equal(t, uint(12), *actor.UserID)
	require.Equal(t, "8b8f7df3-3a46-4e9f-9f39-6d52a93f6a66", actor.RequestID.String())
}

func TestActorFromDefaults(t *testing.T) {
	c, _ := testContext(t)

	actor := actorFrom(c)
	require.Nil(t, actor.UserID)
	require.NotEmpty(t, actor.RequestID)
}
