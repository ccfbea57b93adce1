package router

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/auth"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/config"
	apperrors "github.com/evanWh1te/cville-kitchen-website-sub000/internal/errors"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/handler"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/metrics"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/middleware"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/model"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/ratelimit"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/validation"
)

// Dependencies are the collaborators Register wires into routes.
type Dependencies struct {
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	Tokens       *auth.JWTService
	Identity     middleware.UserResolver
	ContactStore ratelimit.Store

	Auth       *handler.AuthHandler
	Resources  *handler.CatalogHandler[model.Resource, model.ResourceInput]
	Volunteers *handler.CatalogHandler[model.VolunteerOpportunity, model.VolunteerInput]
	Users      *handler.UserHandler
	Contact    *handler.ContactHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, deps Dependencies) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validation.New()}
	e.HTTPErrorHandler = ErrorHandler(logger, cfg.IsProduction())
	// The edge proxy sets X-Forwarded-For; only private and loopback hops are trusted.
	e.IPExtractor = echo.ExtractIPFromXFFHeader()

	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.Recover())
	if deps.Metrics != nil {
		e.Use(deps.Metrics.Middleware())
	}
	e.Use(echomw.BodyLimit("1M"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if deps.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(deps.Metrics.Handler()))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	if cfg.APIRateLimit > 0 {
		api.Use(apiRateLimiter(cfg))
	}

	authn := middleware.Authenticate(deps.Tokens, deps.Identity)

	// Auth
	api.POST("/auth/login", deps.Auth.Login)
	api.POST("/auth/logout", deps.Auth.Logout)
	api.POST("/auth/create-admin", deps.Auth.CreateAdmin)
	api.GET("/auth/me", deps.Auth.Me, authn)

	// Catalog
	registerCatalog(api.Group("/resources"), deps.Resources, authn)
	registerCatalog(api.Group("/volunteers"), deps.Volunteers, authn)

	// User management
	users := api.Group("/users", authn, middleware.RequireAdminOnly())
	users.GET("", deps.Users.ListUsers)
	users.POST("", deps.Users.CreateUser)
	users.GET("/:id", deps.Users.GetUser)
	users.PUT("/:id", deps.Users.UpdateUser)
	users.DELETE("/:id", deps.Users.DeleteUser)
	users.POST("/:id/reset-password", deps.Users.ResetPassword)
	users.GET("/:id/audit", deps.Users.AuditTrail)

	// Contact
	contactStore := deps.ContactStore
	if contactStore == nil {
		contactStore = ratelimit.NewMemoryStore()
	}
	api.POST("/contact", deps.Contact.Submit, middleware.RateLimit(middleware.RateLimitConfig{
		Store:   contactStore,
		Name:    "contact",
		Limit:   cfg.ContactRateLimit,
		Window:  cfg.ContactRateWindow,
		Message: "Too many contact form submissions, please try again later",
		Logger:  logger,
	}))
}

func registerCatalog[T any, I any](g *echo.Group, h *handler.CatalogHandler[T, I], authn echo.MiddlewareFunc) {
	admin := []echo.MiddlewareFunc{authn, middleware.RequireAdmin()}

	g.GET("", h.ListPublic)
	g.GET("/categories", h.Enums)
	g.GET("/category/:category", h.ListByCategory)
	g.GET("/admin", h.ListAdmin, admin...)
	g.POST("", h.Create, admin...)
	g.GET("/:id", h.Get, admin...)
	g.PUT("/:id", h.Update, admin...)
	g.DELETE("/:id", h.Delete, admin...)
}

func apiRateLimiter(cfg *config.Config) echo.MiddlewareFunc {
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.APIRateLimit),
			Burst:     cfg.APIRateBurst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.New(apperrors.ErrForbidden, "Unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			c.Response().Header().Set("Retry-After", "1")
			return apperrors.New(apperrors.ErrRateLimited, "Too many requests, please try again later")
		},
	})
}

// ErrorHandler renders every error as JSON. 5xx detail is logged and, in
// production, withheld from the response.
func ErrorHandler(logger *slog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *apperrors.HTTPError
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			httpErr = fromEcho(echoErr)
		} else {
			httpErr = apperrors.MapErrorToHTTP(err)
		}

		resp := httpErr.ToErrorResponse()
		if httpErr.Internal() {
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.Any("error", err),
			)
			if !production {
				resp.Error = err.Error()
			}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(httpErr.StatusCode)
		} else {
			err = c.JSON(httpErr.StatusCode, resp)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", slog.Any("error", err))
		}
	}
}

// fromEcho converts framework errors (unknown route, bad method, body limit) to the API shape.
func fromEcho(he *echo.HTTPError) *apperrors.HTTPError {
	code := "INTERNAL_ERROR"
	switch he.Code {
	case http.StatusBadRequest:
		code = "BAD_REQUEST"
	case http.StatusUnauthorized:
		code = "UNAUTHENTICATED"
	case http.StatusForbidden:
		code = "FORBIDDEN"
	case http.StatusNotFound:
		code = "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		code = "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		code = "PAYLOAD_TOO_LARGE"
	case http.StatusTooManyRequests:
		code = "RATE_LIMITED"
	}
	message := http.StatusText(he.Code)
	if m, ok := he.Message.(string); ok && m != "" {
		message = m
	} else if he.Message != nil {
		message = fmt.Sprint(he.Message)
	}
	return apperrors.NewHTTPError(he.Code, message, code)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return validation.Struct(cv.validator, i)
}
