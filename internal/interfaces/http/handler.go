package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmanzanog/t212-tickers/internal/application"
	"github.com/jmanzanog/t212-tickers/internal/domain"
	"github.com/jmanzanog/t212-tickers/internal/infrastructure/broker"
)

// ClientSource hands out the currently loaded tables and can reload them.
type ClientSource interface {
	Current() *application.Client
	Refresh(ctx context.Context) error
}

type Handler struct {
	source ClientSource
}

func NewHandler(source ClientSource) *Handler {
	return &Handler{
		source: source,
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ExchangeCodeResponse struct {
	ScheduleID   int64               `json:"schedule_id"`
	ExchangeCode domain.ExchangeCode `json:"exchange_code"`
}

type ExchangeCodeInfo struct {
	Code domain.ExchangeCode `json:"code"`
	Name string              `json:"name"`
}

type ExchangeCodeDetail struct {
	Code        domain.ExchangeCode `json:"code"`
	Name        string              `json:"name"`
	ExchangeID  int64               `json:"exchange_id"`
	ScheduleIDs []int64             `json:"schedule_ids"`
}

type ScheduleIDsResponse struct {
	ExchangeID  int64   `json:"exchange_id"`
	ScheduleIDs []int64 `json:"schedule_ids"`
}

type AlternateTickerResponse struct {
	Ticker    string `json:"ticker"`
	Alternate string `json:"alternate"`
}

type StatusResponse struct {
	LoadedAt    time.Time `json:"loaded_at"`
	Mode        string    `json:"mode"`
	Exchanges   int       `json:"exchanges"`
	Instruments int       `json:"instruments"`
	Positions   int       `json:"positions"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownExchangeCode):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrLookupNotFound):
		return http.StatusNotFound
	case errors.Is(err, broker.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), msg, "path", c.Request.URL.Path, "error", err)
	} else {
		slog.WarnContext(c.Request.Context(), msg, "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func boolQuery(c *gin.Context, key string, def bool) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.New("invalid boolean for " + key + ": " + raw)
	}
	return v, nil
}

func filterFromQuery(c *gin.Context) (application.InstrumentFilter, error) {
	codes, err := domain.ParseExchangeCodes(c.Query("exchange"))
	if err != nil {
		return application.InstrumentFilter{}, err
	}

	includePreference, err := boolQuery(c, "include_preference", false)
	if err != nil {
		return application.InstrumentFilter{}, err
	}
	skipUnmapped, err := boolQuery(c, "skip_unmapped", false)
	if err != nil {
		return application.InstrumentFilter{}, err
	}

	return application.InstrumentFilter{
		Type:                    domain.InstrumentType(strings.ToUpper(strings.TrimSpace(c.Query("type")))),
		ExchangeCodes:           codes,
		IncludePreferenceShares: includePreference,
		SkipUnmapped:            skipUnmapped,
	}, nil
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	slog.WarnContext(c.Request.Context(), "Invalid query", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

func (h *Handler) ListExchanges(c *gin.Context) {
	c.JSON(http.StatusOK, h.source.Current().Exchanges())
}

func (h *Handler) ListExchangeCodes(c *gin.Context) {
	codes := h.source.Current().ExchangeCodes()
	out := make([]ExchangeCodeInfo, 0, len(codes))
	for _, code := range codes {
		name, _ := code.ExchangeName()
		out = append(out, ExchangeCodeInfo{Code: code, Name: name})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) ListInstruments(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	instruments, err := h.source.Current().InstrumentsFiltered(filter)
	if err != nil {
		h.fail(c, "Failed to filter instruments", err)
		return
	}

	c.JSON(http.StatusOK, instruments)
}

func (h *Handler) GetPortfolio(c *gin.Context) {
	client := h.source.Current()
	portfolio := client.Portfolio()

	totalPpl, err := portfolio.TotalPpl()
	if err != nil {
		h.fail(c, "Failed to total portfolio", err)
		return
	}
	totalValue, err := portfolio.TotalMarketValue()
	if err != nil {
		h.fail(c, "Failed to total portfolio", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"positions":   portfolio,
		"total_ppl":   totalPpl,
		"total_value": totalValue,
		"loaded_at":   client.LoadedAt(),
	})
}

func (h *Handler) GetPosition(c *gin.Context) {
	ticker := c.Param("ticker")
	c.JSON(http.StatusOK, h.source.Current().Position(ticker))
}

func (h *Handler) PortfolioTickers(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}
	generic, err := boolQuery(c, "generic", true)
	if err != nil {
		h.badRequest(c, err)
		return
	}
	withExchange, err := boolQuery(c, "with_exchange", false)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	client := h.source.Current()

	var tickers []string
	switch {
	case withExchange:
		tickers, err = client.PortfolioGenericTickersWithExchange(filter)
	case generic:
		tickers, err = client.PortfolioGenericTickers(filter)
	default:
		tickers = client.PortfolioTickers()
	}
	if err != nil {
		h.fail(c, "Failed to list portfolio tickers", err)
		return
	}

	c.JSON(http.StatusOK, tickers)
}

func (h *Handler) AllTickers(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	tickers, err := h.source.Current().AllGenericTickersWithExchange(filter)
	if err != nil {
		h.fail(c, "Failed to list tickers", err)
		return
	}

	c.JSON(http.StatusOK, tickers)
}

func (h *Handler) ScheduleExchangeCode(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.badRequest(c, errors.New("invalid schedule id: "+c.Param("id")))
		return
	}

	code, err := h.source.Current().ScheduleIDToExchangeCode(id)
	if err != nil {
		h.fail(c, "Failed to resolve schedule", err)
		return
	}

	c.JSON(http.StatusOK, ExchangeCodeResponse{ScheduleID: id, ExchangeCode: code})
}

func (h *Handler) ExchangeCode(c *gin.Context) {
	code := domain.ExchangeCode(strings.ToUpper(c.Param("code")))
	client := h.source.Current()

	id, err := client.ExchangeIDForCode(code)
	if err != nil {
		h.fail(c, "Failed to resolve exchange code", err)
		return
	}
	schedules, err := client.ScheduleIDsForExchange(id)
	if err != nil {
		h.fail(c, "Failed to resolve exchange code", err)
		return
	}

	name, _ := code.ExchangeName()
	c.JSON(http.StatusOK, ExchangeCodeDetail{Code: code, Name: name, ExchangeID: id, ScheduleIDs: schedules})
}

func (h *Handler) ExchangeSchedules(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.badRequest(c, errors.New("invalid exchange id: "+c.Param("id")))
		return
	}

	schedules, err := h.source.Current().ScheduleIDsForExchange(id)
	if err != nil {
		h.fail(c, "Failed to list schedules", err)
		return
	}

	c.JSON(http.StatusOK, ScheduleIDsResponse{ExchangeID: id, ScheduleIDs: schedules})
}

func (h *Handler) AlternateTicker(c *gin.Context) {
	ticker := c.Param("ticker")
	alternate, ok := domain.AlternateTicker(ticker)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no alternate spelling for " + ticker})
		return
	}

	c.JSON(http.StatusOK, AlternateTickerResponse{Ticker: ticker, Alternate: alternate})
}

func (h *Handler) Status(c *gin.Context) {
	client := h.source.Current()
	c.JSON(http.StatusOK, StatusResponse{
		LoadedAt:    client.LoadedAt(),
		Mode:        client.Mode().String(),
		Exchanges:   len(client.Exchanges()),
		Instruments: len(client.Instruments()),
		Positions:   len(client.Portfolio()),
	})
}

func (h *Handler) Refresh(c *gin.Context) {
	if err := h.source.Refresh(c.Request.Context()); err != nil {
		h.fail(c, "Failed to refresh tables", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "tables refreshed successfully", "loaded_at": h.source.Current().LoadedAt()})
}
