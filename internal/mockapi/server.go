// Package mockapi is an in-memory implementation of the finance backend
// contract, used for local development and tests.
package mockapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// DefaultUser is the email the mock treats as the signed-in operator.
const DefaultUser = "finance@ledgerdeck.local"

// Options configure a Server.
type Options struct {
	Logger *slog.Logger
	Now    func() time.Time
	// CurrentUser is recorded as the sender of messages and the joiner of channels.
	CurrentUser string
}

// Server is the gin-backed mock collaborator.
type Server struct {
	now        func() time.Time
	engine     *gin.Engine
	store      *store
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	responses  *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	failures   map[string]int
	whitelabel record
	messages   map[string][]record
	feed       []record
	users      map[string]account
	logger     *slog.Logger
	user       string
	mu         sync.Mutex
}

type account struct {
	password string
	role     string
	id       int
}

// New creates a mock collaborator with empty collections.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.CurrentUser == "" {
		opts.CurrentUser = DefaultUser
	}

	wl, _ := toRecord(defaultWhiteLabel())
	s := &Server{
		now:        opts.Now,
		store:      newStore(resourceDefs()),
		registry:   prometheus.NewRegistry(),
		failures:   make(map[string]int),
		whitelabel: wl,
		messages:   make(map[string][]record),
		users:      make(map[string]account),
		logger:     opts.Logger,
		user:       opts.CurrentUser,
	}

	s.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "deck_mock_requests_total",
		Help: "Requests served by the mock collaborator, by method and route.",
	}, []string{"method", "route"})
	s.responses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "deck_mock_responses_total",
		Help: "Responses sent by the mock collaborator, by status code.",
	}, []string{"status"})
	s.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "deck_mock_request_duration_seconds",
		Help:    "Request latency of the mock collaborator.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	s.registry.MustRegister(s.requests, s.responses, s.duration)

	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler serving the contract and /metrics.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Registry exposes the metrics registry.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Calls returns how many requests matched method and route, where route is
// the gin route pattern, e.g. "/api/budgets/:id".
func (s *Server) Calls(method, route string) int {
	return int(testutil.ToFloat64(s.requests.WithLabelValues(method, route)))
}

// FailOn makes every request to method and route answer with status until
// ClearFailures is called.
func (s *Server) FailOn(method, route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+route] = status
}

// ClearFailures removes all injected failures.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]int)
}

// Seed stores records in the named resource ("budgets", "invitations", ...)
// and returns the assigned ids.
func (s *Server) Seed(resource string, records ...any) ([]string, error) {
	if _, err := s.store.collection(resource); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(records))
	for _, v := range records {
		r, err := toRecord(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode seed record: %w", err)
		}
		delete(r, "id")
		created, err := s.store.create(resource, r, s.today())
		if err != nil {
			return nil, fmt.Errorf("failed to seed %s: %w", resource, err)
		}
		ids = append(ids, keyString(created["id"]))
	}
	return ids, nil
}

// AddUser registers an account for sign-in.
func (s *Server) AddUser(email, password, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = account{password: password, role: role, id: len(s.users) + 1}
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.observe, s.injectFailures)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.POST("/auth/signin", s.signIn)
	api.POST("/auth/signup", s.signUp)

	for _, def := range resourceDefs() {
		if def.name == "invitations" || def.name == "channels" {
			continue
		}
		s.crud(api, def)
	}

	api.POST("/integrations/:id/sync", s.syncIntegration)

	invite := api.Group("/invite")
	invite.GET("/all", s.listHandler("invitations"))
	invite.POST("", s.createInvitation)
	invite.POST("/resend", s.resendInvitation)
	invite.DELETE("/:id", s.deleteHandler("invitations"))

	api.POST("/rbac/assign", s.assignRole)

	api.GET("/whitelabel", s.getWhiteLabel)
	api.PUT("/whitelabel", s.putWhiteLabel)
	api.POST("/whitelabel/logo", s.uploadLogo)

	comms := api.Group("/communications")
	comms.GET("", s.listFeed)
	comms.GET("/users", s.listUsers)
	comms.POST("/message", s.sendMessage)
	comms.GET("/channels", s.listHandler("channels"))
	comms.POST("/channels", s.createHandler("channels"))
	comms.PUT("/channels/:id", s.updateHandler("channels"))
	comms.DELETE("/channels/:id", s.deleteHandler("channels"))
	comms.POST("/channels/:id/join", s.joinChannel)
	comms.GET("/channels/:id/messages", s.listChannelMessages)
	comms.POST("/channels/:id/messages", s.postChannelMessage)

	return r
}

func (s *Server) crud(api *gin.RouterGroup, def resourceDef) {
	g := api.Group(def.path)
	g.GET("", s.listHandler(def.name))
	g.POST("", s.createHandler(def.name))
	g.GET("/download", s.downloadCollection(def.name))
	g.GET("/:id/download", s.downloadRecord(def.name))
	g.PUT("/:id", s.updateHandler(def.name))
	g.DELETE("/:id", s.deleteHandler(def.name))
}

func (s *Server) observe(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	elapsed := time.Since(start)
	s.requests.WithLabelValues(c.Request.Method, route).Inc()
	s.responses.WithLabelValues(fmt.Sprint(c.Writer.Status())).Inc()
	s.duration.WithLabelValues(c.Request.Method, route).Observe(elapsed.Seconds())

	s.logger.Debug("mock request",
		"method", c.Request.Method,
		"route", route,
		"status", c.Writer.Status(),
		"request_id", c.GetHeader("X-Request-ID"),
		"duration", elapsed)
}

func (s *Server) injectFailures(c *gin.Context) {
	s.mu.Lock()
	status, ok := s.failures[c.Request.Method+" "+c.FullPath()]
	s.mu.Unlock()
	if ok {
		c.AbortWithStatusJSON(status, gin.H{"error": "injected failure"})
		return
	}
	c.Next()
}

func (s *Server) today() string {
	return s.now().Format("2006-01-02")
}
