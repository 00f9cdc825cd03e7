package api

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"Stellium/internal/astro/engine"
	"Stellium/internal/astro/ephemeris"
	"Stellium/internal/astro/houses"
	"Stellium/internal/astro/timescale"
	models "Stellium/internal/domain/models"
	domrepo "Stellium/internal/domain/repository"
	"Stellium/internal/service/ratelimit"
	"Stellium/internal/usecase"
	xhttp "Stellium/pkg/http"
	xlogger "Stellium/pkg/logger"
)

// AstrologyEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type AstrologyEchoHandler struct {
	logger  *xlogger.Logger
	svc     *usecase.AstrologyService
	metrics domrepo.Metrics
	limiter *ratelimit.Limiter

	chartCapacity float64
	chartRefill   float64 // tokens per second

	streamInterval time.Duration
}

func NewAstrologyEchoHandler(
	logger *xlogger.Logger,
	svc *usecase.AstrologyService,
	metrics domrepo.Metrics,
	chartsPerMinute, burst float64,
	streamInterval time.Duration,
) *AstrologyEchoHandler {
	if chartsPerMinute <= 0 {
		chartsPerMinute = 10
	}
	if burst <= 0 {
		burst = chartsPerMinute
	}
	if streamInterval <= 0 {
		streamInterval = time.Minute
	}
	return &AstrologyEchoHandler{
		logger:         logger,
		svc:            svc,
		metrics:        metrics,
		limiter:        ratelimit.New(),
		chartCapacity:  burst,
		chartRefill:    chartsPerMinute / 60.0,
		streamInterval: streamInterval,
	}
}

func (h *AstrologyEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.POST("/astrology/birth-chart", h.BirthChart)
	g.GET("/astrology/transits/:id", h.Transits)
	g.GET("/astrology/transits/:id/stream", h.TransitsStream)

	g.POST("/profiles", h.CreateProfile)
	g.GET("/profiles/:id", h.GetProfile)
	g.PUT("/profiles/:id/birth-data", h.UpdateBirthData)
}

// BirthChart computes a natal chart without persisting it. Rate limited per
// client address.
func (h *AstrologyEchoHandler) BirthChart(c echo.Context) error {
	if !h.limiter.Allow(c.RealIP(), h.chartCapacity, h.chartRefill) {
		h.metrics.RecordError("rate_limited")
		return xhttp.TooManyRequestsResponse(c, "chart computation limit reached, try again shortly")
	}

	req := &models.BirthDataRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	chart, err := h.svc.ComputeChart(c.Request().Context(), req)
	if err != nil {
		return h.domainError(c, "birth chart", err)
	}
	return xhttp.SuccessResponse(c, chart)
}

func (h *AstrologyEchoHandler) CreateProfile(c echo.Context) error {
	req := &models.ProfileCreateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	p, err := h.svc.CreateProfile(c.Request().Context(), req)
	if err != nil {
		return h.domainError(c, "create profile", err)
	}
	return xhttp.CreatedResponse(c, p)
}

func (h *AstrologyEchoHandler) GetProfile(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return xhttp.BadRequestResponse(c, "invalid profile id")
	}

	p, err := h.svc.Profile(c.Request().Context(), id)
	if err != nil {
		return h.domainError(c, "get profile", err)
	}
	chart, err := h.svc.ChartFor(c.Request().Context(), id)
	if err != nil {
		return h.domainError(c, "get profile chart", err)
	}
	return xhttp.SuccessResponse(c, map[string]any{"profile": p, "chart": chart})
}

func (h *AstrologyEchoHandler) UpdateBirthData(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return xhttp.BadRequestResponse(c, "invalid profile id")
	}

	req := &models.BirthDataRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	p, err := h.svc.UpdateBirthData(c.Request().Context(), id, req)
	if err != nil {
		return h.domainError(c, "update birth data", err)
	}
	return xhttp.SuccessResponse(c, p)
}

// Transits returns the transit snapshot for a profile. Optional "at" query
// selects a past or future instant; default is now.
func (h *AstrologyEchoHandler) Transits(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return xhttp.BadRequestResponse(c, "invalid profile id")
	}

	at := time.Now().UTC()
	if q := c.QueryParam("at"); q != "" {
		t, ok := xhttp.ParseTime(q)
		if !ok {
			return xhttp.BadRequestResponse(c, "at must be RFC3339 or unix seconds")
		}
		at = t
	}

	snap, err := h.svc.Transits(c.Request().Context(), id, at)
	if err != nil {
		return h.domainError(c, "transits", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=30")
	return xhttp.SuccessResponse(c, snap)
}

func (h *AstrologyEchoHandler) Health(c echo.Context) error {
	db := "ok"
	if err := h.svc.Health(c.Request().Context()); err != nil {
		db = "unavailable"
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok", "database": db})
}

// domainError maps computation and storage errors onto HTTP responses.
func (h *AstrologyEchoHandler) domainError(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, timescale.ErrInvalidCivilTime),
		errors.Is(err, engine.ErrInvalidCoordinates):
		return xhttp.BadRequestResponse(c, err.Error())
	case errors.Is(err, domrepo.ErrNotFound):
		return xhttp.NotFoundResponse(c, "profile not found")
	case errors.Is(err, ephemeris.ErrPositionUnavailable),
		errors.Is(err, houses.ErrHouseSystemUndefined):
		return xhttp.UnprocessableResponse(c, err.Error())
	default:
		h.logger.Error(op+" failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
}
