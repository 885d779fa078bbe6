package http

import (
	"errors"
	"net/http"
	"time"

	"chronicle/internal/config"
	"chronicle/internal/domain"
	"chronicle/internal/infra/auth/policy"
	"chronicle/internal/infra/auth/rbac"
	"chronicle/internal/infra/db"
	"chronicle/internal/infra/hash"
	"chronicle/internal/infra/mail"
	"chronicle/internal/infra/memstore"
	"chronicle/internal/infra/ratelimit"
	"chronicle/internal/infra/token"
	"chronicle/internal/usecase"

	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg   config.Config
	store *db.Store
	r     *gin.Engine

	accounts *usecase.AccountService
	posts    *usecase.PostService

	tokens      *token.Service
	authorizer  domain.Authorizer
	authInitErr error

	rateLimiter         domain.RateLimiter
	loginRateLimit      int
	loginRateWindow     time.Duration
	rateLimitFailClosed bool
}

func NewServer(cfg config.Config, store *db.Store) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{cfg: cfg, store: store, r: r}
	s.initDeps()
	s.r.Use(s.authenticate())
	s.routes()
	return s
}

// ServerDeps lets tests and alternate wirings inject every collaborator
// directly instead of building them from configuration.
type ServerDeps struct {
	Accounts    *usecase.AccountService
	Posts       *usecase.PostService
	Tokens      *token.Service
	Authorizer  domain.Authorizer
	RateLimiter domain.RateLimiter
}

func NewServerWithDeps(cfg config.Config, deps ServerDeps) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:        cfg,
		r:          r,
		accounts:   deps.Accounts,
		posts:      deps.Posts,
		tokens:     deps.Tokens,
		authorizer: deps.Authorizer,
	}
	if s.tokens == nil {
		s.authInitErr = errors.New("token service is required")
	}
	if s.authorizer == nil {
		s.authorizer = rbac.NewAuthorizer()
	}
	s.initRateLimit(deps.RateLimiter)
	s.r.Use(s.authenticate())
	s.routes()
	return s
}

func (s *Server) initDeps() {
	var (
		users    domain.UserRepository
		posts    domain.PostRepository
		comments domain.CommentRepository
	)
	if s.store != nil && s.store.DB != nil {
		users = db.NewUserRepository(s.store.DB)
		posts = db.NewPostRepository(s.store.DB)
		comments = db.NewCommentRepository(s.store.DB)
	} else {
		users = memstore.NewUserRepository()
		posts = memstore.NewPostRepository()
		comments = memstore.NewCommentRepository()
	}

	tokens, err := token.NewService([]byte(s.cfg.TokenSecret), s.cfg.TokenTTL(), nil)
	if err != nil {
		s.authInitErr = err
	}
	s.tokens = tokens

	switch s.cfg.AuthzMode {
	case "", "static":
		s.authorizer = rbac.NewAuthorizer()
	case "policy":
		authorizer, err := policy.NewAuthorizer()
		if err != nil {
			s.authInitErr = err
			return
		}
		s.authorizer = authorizer
	default:
		s.authInitErr = errors.New("unsupported authz mode")
		return
	}

	hasher := hash.NewBcryptHasher(s.cfg.BcryptCost)
	sender := mail.ForProvider(s.cfg.MailProvider)
	s.accounts = usecase.NewAccountService(users, hasher, tokens, sender, nil)
	s.posts = usecase.NewPostService(posts, comments, nil)

	s.initRateLimit(nil)
}

func (s *Server) initRateLimit(override domain.RateLimiter) {
	if override != nil {
		s.rateLimiter = override
	}
	if s.rateLimiter == nil && s.cfg.LoginRateLimit > 0 {
		if s.cfg.RedisAddr != "" {
			if limiter, err := ratelimit.NewRedisLimiter(s.cfg.RedisAddr, s.cfg.RedisPassword, s.cfg.RedisDB, nil); err == nil {
				s.rateLimiter = limiter
			}
		}
		if s.rateLimiter == nil {
			s.rateLimiter = ratelimit.NewMemoryLimiter(ratelimit.MemoryLimiterConfig{
				MaxKeys: s.cfg.RateLimitMaxKeys,
			})
		}
	}
	s.loginRateLimit = s.cfg.LoginRateLimit
	s.loginRateWindow = s.cfg.LoginRateWindow()
	s.rateLimitFailClosed = s.cfg.RateLimitFailClosed
}

func (s *Server) routes() {
	s.r.GET("/healthz", func(c *gin.Context) {
		mode := "no-db"
		if s.store != nil && s.store.DB != nil {
			mode = "db"
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": mode})
	})

	v1 := s.r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/register", s.handleRegister)
		auth.POST("/login", s.enforceLoginRateLimit, s.handleLogin)

		v1.GET("/home", s.requireAuthority(domain.RoleUser), s.handleHome)

		posts := v1.Group("/posts", s.requireAuthority(""))
		posts.GET("", s.handleListPosts)
		posts.POST("", s.handleCreatePost)
		posts.GET("/:id", s.handleGetPost)
		posts.PUT("/:id", s.handleUpdatePost)
		posts.DELETE("/:id", s.requireAuthority(domain.RoleAdmin), s.handleDeletePost)
		posts.PATCH("/:id/released", s.handleChangeReleaseStatus)
		posts.POST("/:id/comments", s.handleAddComment)
	}

	s.r.NoRoute(func(c *gin.Context) {
		writeErrorCode(c, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
}

func (s *Server) Run() error {
	if s.authInitErr != nil {
		return s.authInitErr
	}
	return s.r.Run(s.cfg.HTTPAddr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.r
}
