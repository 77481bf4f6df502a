package explorer

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/CosmWasm/tinyjson"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"okinoko_council/sdk"
)

// Server is the read only http face of the council.
type Server struct {
	state *State
	cache Cache
	log   *logrus.Entry
}

// New builds the gin engine. cache and registry are optional.
func New(state *State, cache Cache, registry *prometheus.Registry, logger *logrus.Logger) *gin.Engine {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Server{state: state, cache: cache, log: logger.WithField("component", "explorer")}

	g := gin.New()
	g.Use(s.requestLogger(), gin.Recovery())
	// the frontend reads straight from the browser, everything here is public and read only
	g.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
		ExposeHeaders:   []string{"Content-Length", "X-Cache"},
		MaxAge:          12 * time.Hour,
	}))

	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "round": state.Round()})
	})
	g.GET("/proposals", s.cached(s.listProposals))
	g.GET("/proposals/:id", s.cached(s.getProposal))
	g.GET("/members/:address", s.cached(s.getMember))
	g.GET("/treasury", s.cached(s.getTreasury))
	if registry != nil {
		g.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}
	return g
}

// render produces a json body or an error. Bodies are what gets cached.
type render func(c *gin.Context) ([]byte, error)

func (s *Server) cached(fn render) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strconv.FormatUint(s.state.Round(), 10) + ":" + c.Request.URL.Path
		if body, ok := s.cacheGet(c.Request.Context(), key); ok {
			c.Header("X-Cache", "hit")
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			return
		}
		body, err := fn(c)
		if err != nil {
			s.fail(c, err)
			return
		}
		if s.cache != nil {
			if err := s.cache.Set(c.Request.Context(), key, body); err != nil {
				s.log.WithError(err).Warn("cache write failed")
			}
		}
		c.Header("X-Cache", "miss")
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
	}
}

func (s *Server) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	body, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.WithError(err).Warn("cache read failed")
		return nil, false
	}
	return body, ok
}

func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"err": err.Error()})
	case errors.Is(err, errBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
	default:
		s.log.WithError(err).Error("read failed")
		c.JSON(http.StatusInternalServerError, gin.H{"err": "internal error"})
	}
}

var errBadRequest = errors.New("bad request")

func (s *Server) listProposals(*gin.Context) ([]byte, error) {
	views, err := s.state.Proposals()
	if err != nil {
		return nil, err
	}
	return tinyjson.Marshal(views)
}

func (s *Server) getProposal(c *gin.Context) ([]byte, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return nil, errors.Wrapf(errBadRequest, "invalid proposal id %q", c.Param("id"))
	}
	view, err := s.state.Proposal(id)
	if err != nil {
		return nil, err
	}
	return tinyjson.Marshal(view)
}

func (s *Server) getMember(c *gin.Context) ([]byte, error) {
	addr := sdk.Address(c.Param("address"))
	if !addr.IsValid() {
		return nil, errors.Wrapf(errBadRequest, "invalid address %q", addr)
	}
	m, err := s.state.Member(addr)
	if err != nil {
		return nil, err
	}
	return tinyjson.Marshal(m)
}

func (s *Server) getTreasury(*gin.Context) ([]byte, error) {
	t, err := s.state.Treasury()
	if err != nil {
		return nil, err
	}
	return tinyjson.Marshal(t)
}

// requestLogger is gin.Logger written through logrus.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
			"cache":   c.Writer.Header().Get("X-Cache"),
		}).Debug("request")
	}
}
