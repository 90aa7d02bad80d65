package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/diveplanner/internal/domain/budget"
	"github.com/yanqian/diveplanner/internal/domain/chat"
	"github.com/yanqian/diveplanner/internal/domain/destination"
	"github.com/yanqian/diveplanner/internal/domain/gasplan"
	"github.com/yanqian/diveplanner/internal/domain/inspiration"
	"github.com/yanqian/diveplanner/internal/domain/safety"
	"github.com/yanqian/diveplanner/internal/domain/subscription"
	"github.com/yanqian/diveplanner/internal/infra/export"
	"github.com/yanqian/diveplanner/pkg/util"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DiveSheetRenderer renders the printable gas plan.
type DiveSheetRenderer interface {
	DiveSheetPDF(ctx context.Context, w io.Writer, sheet export.DiveSheet) error
}

// Services groups the domain services exposed over HTTP.
type Services struct {
	Chat         chat.Service
	Safety       safety.Service
	Destination  destination.Service
	Budget       budget.Service
	Inspiration  inspiration.Service
	Subscription subscription.Service
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	chatSvc         chat.Service
	safetySvc       safety.Service
	destinationSvc  destination.Service
	budgetSvc       budget.Service
	inspirationSvc  inspiration.Service
	subscriptionSvc subscription.Service
	sheets          DiveSheetRenderer
	logger          *slog.Logger
	now             func() time.Time
}

// NewHandler constructs the root HTTP handler.
func NewHandler(svcs Services, sheets DiveSheetRenderer, logger *slog.Logger) *Handler {
	return &Handler{
		chatSvc:         svcs.Chat,
		safetySvc:       svcs.Safety,
		destinationSvc:  svcs.Destination,
		budgetSvc:       svcs.Budget,
		inspirationSvc:  svcs.Inspiration,
		subscriptionSvc: svcs.Subscription,
		sheets:          sheets,
		logger:          logger.With("component", "http.handler"),
		now:             util.NowUTC,
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// PlanGas computes the air budget for the submitted form values.
func (h *Handler) PlanGas(c *gin.Context) {
	var req gasplan.RawParameters
	if !bindPlannerJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gasplan.Plan(req))
}

type diveSheetRequest struct {
	gasplan.RawParameters
	Title       string `json:"title"`
	Objective   string `json:"objective"`
	SafetyNotes string `json:"safetyNotes"`
}

// GasSheet renders the air budget as a PDF dive sheet.
func (h *Handler) GasSheet(c *gin.Context) {
	var req diveSheetRequest
	if !bindPlannerJSON(c, &req) {
		return
	}
	var buf bytes.Buffer
	err := h.sheets.DiveSheetPDF(c.Request.Context(), &buf, export.DiveSheet{
		Title:       req.Title,
		Objective:   req.Objective,
		Report:      gasplan.Plan(req.RawParameters),
		SafetyNotes: req.SafetyNotes,
		GeneratedAt: h.now(),
	})
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "render_failed", "failed to render dive sheet", err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="plan-de-inmersion-%s.pdf"`, util.FileStamp(h.now())))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// SafetySummary generates the three point safety briefing.
func (h *Handler) SafetySummary(c *gin.Context) {
	var req safety.Request
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.safetySvc.Summarize(c.Request.Context(), req)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DestinationInfo returns grounded information about a destination.
func (h *Handler) DestinationInfo(c *gin.Context) {
	var req destination.Request
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.destinationSvc.Info(c.Request.Context(), req)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TrendingDestinations returns the most searched destinations.
func (h *Handler) TrendingDestinations(c *gin.Context) {
	items, err := h.destinationSvc.Trending(c.Request.Context())
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"destinations": items})
}

// CalculateBudget totals the trip costs.
func (h *Handler) CalculateBudget(c *gin.Context) {
	var req budget.Request
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.budgetSvc.Calculate(req)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BudgetTips returns money saving advice.
func (h *Handler) BudgetTips(c *gin.Context) {
	var req budget.TipsRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.budgetSvc.Tips(c.Request.Context(), req)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportBudget returns the budget as an XLSX workbook.
func (h *Handler) ExportBudget(c *gin.Context) {
	var req budget.Request
	if !bindJSON(c, &req) {
		return
	}
	data, err := h.budgetSvc.Export(c.Request.Context(), req)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="presupuesto-%s.xlsx"`, util.FileStamp(h.now())))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Subscribe registers a newsletter e-mail.
func (h *Handler) Subscribe(c *gin.Context) {
	var req subscription.Request
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.subscriptionSvc.Subscribe(c.Request.Context(), req)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	status := http.StatusCreated
	if resp.AlreadySubscribed {
		status = http.StatusOK
	}
	c.JSON(status, resp)
}

// Unsubscribe removes a newsletter e-mail.
func (h *Handler) Unsubscribe(c *gin.Context) {
	if err := h.subscriptionSvc.Unsubscribe(c.Request.Context(), c.Param("email")); err != nil {
		abortWithAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, codeInvalidRequest, errMessage(err), err))
		return false
	}
	return true
}

// bindPlannerJSON treats an empty body as an empty form; the planner
// fills every missing field with its default.
func bindPlannerJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	abortWithError(c, NewHTTPError(http.StatusBadRequest, codeInvalidRequest, errMessage(err), err))
	return false
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimSpace(err.Error())
}
