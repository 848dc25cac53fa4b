// Package selfplay exposes the self-play simulator over HTTP: one-shot runs
// return a JSON summary and /watch streams every round over a websocket.
package selfplay

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"jass/internal/bot"
	"jass/internal/domain"
	"jass/internal/sim"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// MaxRounds caps a single request.
const MaxRounds = 1000

// Defaults apply when a request leaves a parameter out.
type Defaults struct {
	Rounds        int
	Levels        [2]bot.BotLevel
	Budget        time.Duration
	MaxIterations int
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WatchMessage is written to /watch clients, one per round and a final
// summary or error.
type WatchMessage struct {
	Type    string           `json:"type"` // "round", "summary" or "error"
	Round   *sim.RoundResult `json:"round,omitempty"`
	Summary *sim.Summary     `json:"summary,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type server struct {
	defaults Defaults
	log      *zap.Logger
}

// NewServer builds the HTTP API.
func NewServer(defaults Defaults, log *zap.Logger) *echo.Echo {
	if log == nil {
		log = zap.NewNop()
	}
	if defaults.Rounds <= 0 {
		defaults.Rounds = 1
	}
	s := &server{defaults: defaults, log: log}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})
	e.GET("/simulate", s.simulate)
	e.GET("/watch", s.watch)
	return e
}

func (s *server) simulate(c echo.Context) error {
	cfg, err := s.config(c)
	if err != nil {
		return err
	}
	sum, err := sim.RunRounds(c.Request().Context(), cfg)
	if err != nil {
		s.log.Error("self-play failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sum)
}

func (s *server) watch(c echo.Context) error {
	cfg, err := s.config(c)
	if err != nil {
		return err
	}
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	var writeErr error
	cfg.OnRound = func(r sim.RoundResult) {
		if writeErr == nil {
			writeErr = conn.WriteJSON(WatchMessage{Type: "round", Round: &r})
		}
	}

	sum, err := sim.RunRounds(c.Request().Context(), cfg)
	switch {
	case writeErr != nil:
		s.log.Warn("watch client gone", zap.Error(writeErr))
		return nil
	case err != nil:
		writeErr = conn.WriteJSON(WatchMessage{Type: "error", Error: err.Error()})
	default:
		writeErr = conn.WriteJSON(WatchMessage{Type: "summary", Summary: &sum})
	}
	if writeErr != nil {
		s.log.Warn("watch client gone", zap.Error(writeErr))
		return nil
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return nil
}

// config reads seed, rounds, human and cpu from the query string.
func (s *server) config(c echo.Context) (sim.Config, error) {
	cfg := sim.Config{
		Seed:          time.Now().UnixNano(),
		Rounds:        s.defaults.Rounds,
		Levels:        s.defaults.Levels,
		Budget:        s.defaults.Budget,
		MaxIterations: s.defaults.MaxIterations,
		Logger:        s.log,
	}

	if v := c.QueryParam("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid seed %q", v))
		}
		cfg.Seed = seed
	}
	if v := c.QueryParam("rounds"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > MaxRounds {
			return cfg, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("rounds must be 1..%d", MaxRounds))
		}
		cfg.Rounds = n
	}
	for _, side := range []domain.Side{domain.SideHuman, domain.SideCPU} {
		v := c.QueryParam(side.String())
		if v == "" {
			continue
		}
		level, err := bot.ParseLevel(v)
		if err != nil {
			return cfg, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		cfg.Levels[side] = level
	}
	return cfg, nil
}
