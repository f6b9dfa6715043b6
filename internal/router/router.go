package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/handler"
	"blogapi/internal/middleware"
	"blogapi/internal/validation"
)

// Register wires routes, middleware, the request validator, and the
// centralized error translator.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	e.Validator = &SchemaValidator{}
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	authenticated := middleware.Authenticate(jwtService)

	// Auth routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, authenticated)

	// Post routes
	api.GET("/posts", postHandler.GetAllPosts)
	api.GET("/posts/:postId", postHandler.GetPost)
	api.POST("/posts", postHandler.CreatePost, authenticated)
	api.PATCH("/posts/:postId", postHandler.UpdatePost, authenticated)
	api.DELETE("/posts/:postId", postHandler.DeletePost, authenticated)
}

// SchemaValidator plugs the validation layer into echo's c.Validate.
type SchemaValidator struct{}

// Validate implements echo.Validator.
func (v *SchemaValidator) Validate(i interface{}) error {
	return validation.Validate(i)
}

// ErrorHandler converts any error escaping a handler into the failure
// envelope. Domain errors carry their own status; unmatched routes become
// a 404; anything unrecognized is a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		_ = c.JSON(domainErr.Status(), handler.Envelope{Success: false, Message: domainErr.Message})
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := fmt.Sprintf("%v", httpErr.Message)
		if httpErr.Code == http.StatusNotFound {
			message = "Route not found"
		}
		_ = c.JSON(httpErr.Code, handler.Envelope{Success: false, Message: message})
		return
	}

	c.Logger().Error(err)
	_ = c.JSON(http.StatusInternalServerError, handler.Envelope{Success: false, Message: "Internal server error"})
}
