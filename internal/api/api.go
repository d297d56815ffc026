// api.go: HTTP boundary of the application, a JSON API served by echo
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/tphakala/birdlist-go/internal/checklist"
	"github.com/tphakala/birdlist-go/internal/conf"
	"github.com/tphakala/birdlist-go/internal/datastore"
	"github.com/tphakala/birdlist-go/internal/errors"
	"github.com/tphakala/birdlist-go/internal/logging"
	"github.com/tphakala/birdlist-go/internal/region"
	"github.com/tphakala/birdlist-go/internal/stats"
)

const sessionCookieName = "birdlist-session"

// observerHeader carries the authenticated observer identity, injected by
// the auth layer in front of this service.
const observerHeader = "X-Observer"

// Controller manages the API routes and handlers
type Controller struct {
	Echo       *echo.Echo
	Group      *echo.Group
	DS         datastore.Interface
	Settings   *conf.Settings
	Selector   *region.Selector
	Checklists *checklist.Service
	Reporter   *stats.Reporter

	apiLogger      *slog.Logger
	apiLoggerClose func() error
}

// New creates a new API controller and registers its routes.
func New(settings *conf.Settings, ds datastore.Interface, selector *region.Selector) (*Controller, error) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	c := &Controller{
		Echo:       e,
		DS:         ds,
		Settings:   settings,
		Selector:   selector,
		Checklists: checklist.New(ds),
		Reporter:   stats.NewReporter(ds, selector),
	}

	c.apiLogger = logging.ForService("api")
	if c.apiLogger == nil {
		c.apiLogger = slog.Default()
	}
	if settings.WebServer.Log.Enabled && settings.WebServer.Log.Path != "" {
		fileLogger, closeFunc, err := logging.NewFileLogger(settings.WebServer.Log.Path, "api", slog.LevelInfo)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize API log file: %w", err)
		}
		c.apiLogger = fileLogger
		c.apiLoggerClose = closeFunc
	}

	c.initRoutes()
	return c, nil
}

// initRoutes registers all API endpoints under /api/v1.
func (c *Controller) initRoutes() {
	c.Group = c.Echo.Group("/api/v1")

	c.Group.POST("/region", c.SetRegion)
	c.Group.GET("/region", c.GetRegion)
	c.Group.GET("/region/stats", c.RegionSpeciesStats)

	c.Group.GET("/sightings", c.FilteredSightings)

	c.Group.GET("/checklists", c.ChecklistsByEventIDs)
	c.Group.POST("/checklists", c.SubmitChecklist)
	c.Group.PUT("/checklists/:id", c.EditChecklist)
	c.Group.DELETE("/checklists/:id", c.DeleteChecklist)

	c.Group.GET("/stats/user", c.UserStats)
	c.Group.GET("/stats/hours", c.TotalHours)

	c.Group.GET("/species", c.Species)
}

// Start runs the HTTP server on the configured port, blocking until shutdown.
func (c *Controller) Start() error {
	return c.Echo.Start(":" + c.Settings.WebServer.Port)
}

// Shutdown closes the API log writer.
func (c *Controller) Shutdown() error {
	if c.apiLoggerClose != nil {
		return c.apiLoggerClose()
	}
	return nil
}

// sessionID returns the request's session id, minting a new one into a
// cookie when the request carries none.
func (c *Controller) sessionID(ctx echo.Context) string {
	if cookie, err := ctx.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	ctx.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(time.Duration(c.Settings.Session.TTLMinutes) * time.Minute),
	})
	return id
}

// observerID returns the observer identity injected by the auth layer.
func observerID(ctx echo.Context) string {
	return ctx.Request().Header.Get(observerHeader)
}

// errorResponse maps an error to its HTTP status by category and returns the
// JSON failure body.
func (c *Controller) errorResponse(ctx echo.Context, err error, operation string) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		c.apiLogger.Error("request failed",
			"operation", operation,
			"path", ctx.Path(),
			"error", err)
	}

	return ctx.JSON(status, map[string]any{
		"success": false,
		"error":   err.Error(),
	})
}
