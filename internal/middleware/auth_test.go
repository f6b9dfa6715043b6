package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
)

func runMiddleware(t *testing.T, authHeader string) (primitive.ObjectID, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var gotUserID primitive.ObjectID
	handler := Authenticate(auth.NewJWTService("test-secret"))(func(c echo.Context) error {
		gotUserID = UserID(c)
		return nil
	})
	return gotUserID, handler(c)
}

func TestAuthenticate(t *testing.T) {
	userID := primitive.NewObjectID()
	token, err := auth.NewJWTService("test-secret").GenerateAccessToken(userID.Hex())
	assert.NoError(t, err)
	forged, err := auth.NewJWTService("other-secret").GenerateAccessToken(userID.Hex())
	assert.NoError(t, err)

	tests := []struct {
		name         string
		header       string
		expectedKind apperrors.Kind
		expectedMsg  string
		ok           bool
	}{
		{name: "valid token", header: "Bearer " + token, ok: true},
		{name: "missing header", header: "", expectedKind: apperrors.KindUnauthorized, expectedMsg: "You are not authorized"},
		{name: "not a bearer scheme", header: "Basic abc123", expectedKind: apperrors.KindUnauthorized, expectedMsg: "You are not authorized"},
		{name: "forged token", header: "Bearer " + forged, expectedKind: apperrors.KindForbidden, expectedMsg: "Invalid or expired token"},
		{name: "garbage token", header: "Bearer not.a.token", expectedKind: apperrors.KindForbidden, expectedMsg: "Invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID, err := runMiddleware(t, tt.header)
			if tt.ok {
				assert.NoError(t, err)
				assert.Equal(t, userID, gotUserID)
			} else {
				assert.True(t, apperrors.IsKind(err, tt.expectedKind))
				assert.Equal(t, tt.expectedMsg, err.Error())
			}
		})
	}
}
