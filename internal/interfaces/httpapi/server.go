package httpapi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"quoteboard/internal/application/usecase/board"
	"quoteboard/internal/domain/market"
	"quoteboard/internal/domain/palette"
	"quoteboard/internal/presentation/format"
)

// QuoteSource provides the current board rows.
type QuoteSource interface {
	Views() []board.View
}

// Response is the envelope of every API reply.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type Server struct {
	e      *echo.Echo
	addr   string
	quotes QuoteSource
}

func NewServer(addr string, quotes QuoteSource) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{e: e, addr: addr, quotes: quotes}
	s.routes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.e }

func (s *Server) routes() {
	s.e.Use(middleware.Recover())
	s.e.Use(middleware.CORS())
	s.e.Use(requestLogger())

	s.e.GET("/health", func(c echo.Context) error {
		return success(c, map[string]interface{}{"status": "healthy", "service": "quoteboard"})
	})

	api := s.e.Group("/api")
	api.GET("/palette", s.getPalette)
	api.GET("/tickers", s.getTickers)
	api.GET("/quotes", s.getQuotes)
	api.GET("/format", s.getFormat)
}

// requestLogger logs every request through zerolog.
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if c.Request().URL.Path == "/health" {
				return err
			}
			log.Debug().
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", c.Response().Status).
				Dur("took", time.Since(start)).
				Msg("http request")
			return err
		}
	}
}

func success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Status: "success", Data: data})
}

func failure(c echo.Context, code int, message string) error {
	return c.JSON(code, Response{Status: "error", Message: message})
}

type paletteDTO struct {
	Solid    map[market.ChangeType]string           `json:"solid"`
	Gradient map[market.ChangeType]palette.Gradient `json:"gradient"`
	Badge    map[market.ChangeType]palette.Badge    `json:"badge"`
}

func (s *Server) getPalette(c echo.Context) error {
	return success(c, paletteDTO{
		Solid:    palette.Solids(),
		Gradient: palette.Gradients(),
		Badge:    palette.Badges(),
	})
}

func (s *Server) getTickers(c echo.Context) error {
	return success(c, market.HomeTickers())
}

func (s *Server) getQuotes(c echo.Context) error {
	return success(c, s.quotes.Views())
}

type formatDTO struct {
	Value      float64           `json:"value"`
	Currency   string            `json:"currency"`
	PriceText  string            `json:"price_text"`
	ChangeText string            `json:"change_text"`
	ChangeType market.ChangeType `json:"change_type"`
	Color      string            `json:"color"`
	Badge      palette.Badge     `json:"badge"`
}

// getFormat formats an arbitrary value:
// /api/format?value=-1.5&currency=CNY&decimals=2&suffix=%25
func (s *Server) getFormat(c echo.Context) error {
	raw := strings.TrimSpace(c.QueryParam("value"))
	if raw == "" {
		return failure(c, http.StatusBadRequest, "value is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return failure(c, http.StatusBadRequest, "value must be a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return failure(c, http.StatusBadRequest, "value must be a finite number")
	}

	currency := c.QueryParam("currency")
	if currency == "" {
		currency = market.DefaultCurrency
	}
	decimals, err := format.ParseDecimals(c.QueryParam("decimals"), format.DefaultDecimals)
	if err != nil {
		return failure(c, http.StatusBadRequest, fmt.Sprintf("decimals must be an integer between 0 and %d", format.MaxDecimals))
	}
	ct := market.Classify(v, currency)

	return success(c, formatDTO{
		Value:      v,
		Currency:   currency,
		PriceText:  format.FormatPrice(v, currency, decimals),
		ChangeText: format.FormatChange(v, c.QueryParam("suffix"), decimals),
		ChangeType: ct,
		Color:      palette.Solid(ct),
		Badge:      palette.BadgeFor(ct),
	})
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("http server listening")
		if err := s.e.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info().Msg("http server shutting down")
	return s.e.Shutdown(shutdownCtx)
}
