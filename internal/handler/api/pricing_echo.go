package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"PriceCast/internal/audit"
	models "PriceCast/internal/domain/models"
	"PriceCast/internal/pricing"
	"PriceCast/internal/risk"
	icache "PriceCast/internal/service/cache"
	"PriceCast/internal/service/ratelimit"
	"PriceCast/internal/usecase"
	xhttp "PriceCast/pkg/http"
	xlogger "PriceCast/pkg/logger"
)

const (
	reportCacheTTL = 30 * time.Second

	// Training is expensive; allow short bursts, refill one slot per 30s.
	trainBurst     = 2.0
	trainRefillSec = 1.0 / 30.0
)

// PricingEchoHandler exposes the pricing engine and posture reports over HTTP.
type PricingEchoHandler struct {
	logger     *xlogger.Logger
	pipeline   *usecase.Pipeline
	predictor  *usecase.Predictor
	scorer     *audit.Scorer
	checklist  []models.ComplianceCheckItem
	aggregator *risk.Aggregator
	risks      []models.RiskItem
	cache      *icache.TTLCache
	limiter    *ratelimit.Limiter
}

func NewPricingEchoHandler(
	logger *xlogger.Logger,
	pipeline *usecase.Pipeline,
	predictor *usecase.Predictor,
	scorer *audit.Scorer,
	checklist []models.ComplianceCheckItem,
	aggregator *risk.Aggregator,
	risks []models.RiskItem,
) *PricingEchoHandler {
	return &PricingEchoHandler{
		logger:     logger,
		pipeline:   pipeline,
		predictor:  predictor,
		scorer:     scorer,
		checklist:  checklist,
		aggregator: aggregator,
		risks:      risks,
		cache:      icache.NewTTLCache(),
		limiter:    ratelimit.New(),
	}
}

func (h *PricingEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/predict", h.Predict)
	g.POST("/train", h.Train)
	g.GET("/quality", h.Quality)
	g.GET("/compliance", h.Compliance)
	g.GET("/risk", h.Risk)
	e.GET("/healthz", h.Health)
}

func (h *PricingEchoHandler) Predict(c echo.Context) error {
	req := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.predictor.Predict(*req)
	if err != nil {
		if errors.Is(err, pricing.ErrModelNotLoaded) {
			return xhttp.DataResponse(c, http.StatusConflict, err.Error())
		}
		h.logger.Error("predict usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PricingEchoHandler) Train(c echo.Context) error {
	if !h.limiter.Allow("train", trainBurst, trainRefillSec) {
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "training rate limit exceeded")
	}

	req := &models.TrainRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	report, err := h.pipeline.Run(c.Request().Context(), req.Count, req.Seed)
	if err != nil {
		h.logger.Error("pipeline run error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, report)
}

func (h *PricingEchoHandler) Quality(c echo.Context) error {
	report := h.pipeline.LastReport()
	if report == nil {
		return xhttp.NotFoundResponse(c, "no pipeline run yet")
	}
	return xhttp.SuccessResponse(c, report)
}

func (h *PricingEchoHandler) Compliance(c echo.Context) error {
	if v, ok := h.cache.Get("compliance_report"); ok {
		return xhttp.SuccessResponse(c, v)
	}

	report, err := h.scorer.Score(h.checklist)
	if err != nil {
		h.logger.Error("compliance scoring error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	h.cache.Set("compliance_report", report, reportCacheTTL)
	return xhttp.SuccessResponse(c, report)
}

func (h *PricingEchoHandler) Risk(c echo.Context) error {
	if v, ok := h.cache.Get("risk_report"); ok {
		return xhttp.SuccessResponse(c, v)
	}

	report, err := h.aggregator.Aggregate(h.risks)
	if err != nil {
		h.logger.Error("risk aggregation error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	h.cache.Set("risk_report", report, reportCacheTTL)
	return xhttp.SuccessResponse(c, report)
}

func (h *PricingEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
