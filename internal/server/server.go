// Package server exposes the learning application as a JSON HTTP API.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/juju/errors"
	goji "goji.io"
	"goji.io/pat"

	"github.com/example/hanzitutor/internal/ai"
	"github.com/example/hanzitutor/internal/auth"
	"github.com/example/hanzitutor/internal/backup"
	"github.com/example/hanzitutor/internal/database"
	hh "github.com/example/hanzitutor/internal/httphelper"
	"github.com/example/hanzitutor/internal/middleware"
	"github.com/example/hanzitutor/internal/srs"
	"github.com/example/hanzitutor/pkg/models"
)

// SentenceGenerator produces practice sentences from vocabulary words. It
// is satisfied by *ai.Client and may be nil when no API key is configured,
// in which case generation endpoints answer 501.
type SentenceGenerator interface {
	GenerateSentence(words []models.Word) (*ai.GeneratedSentence, error)
}

// Server holds the handlers' dependencies
type Server struct {
	words     *database.WordRepository
	sentences *database.SentenceRepository
	reviews   *database.ReviewRepository
	gen       SentenceGenerator
	auth      *auth.Store
	backups   *backup.Manager
	sm2       *srs.SM2
}

// New creates a server over the given resources
func New(db *database.DB, gen SentenceGenerator, authStore *auth.Store, backups *backup.Manager) *Server {
	return &Server{
		words:     database.NewWordRepository(db),
		sentences: database.NewSentenceRepository(db),
		reviews:   database.NewReviewRepository(db),
		gen:       gen,
		auth:      authStore,
		backups:   backups,
		sm2:       srs.New(),
	}
}

// CreateHandler builds the HTTP handler with all routes
func (s *Server) CreateHandler() http.Handler {
	rRoot := goji.NewMux()
	rRoot.Use(middleware.MakeLogger())

	rAPI := goji.SubMux()
	rRoot.Handle(pat.New("/api/*"), rAPI)
	{
		rAPI.HandleFunc(pat.Post("/login"), hh.MakeAPIHandler(s.loginHandler))

		rAPI.HandleFunc(pat.Get("/words"), hh.MakeAPIHandler(s.wordsGetHandler))
		rAPI.HandleFunc(pat.Post("/words"), hh.MakeAPIHandler(s.requireAuth(s.wordsPostHandler)))
		rAPI.HandleFunc(pat.Get("/words/:id"), hh.MakeAPIHandler(s.wordGetHandler))
		rAPI.HandleFunc(pat.Put("/words/:id"), hh.MakeAPIHandler(s.requireAuth(s.wordPutHandler)))
		rAPI.HandleFunc(pat.Delete("/words/:id"), hh.MakeAPIHandler(s.requireAuth(s.wordDeleteHandler)))

		rAPI.HandleFunc(pat.Get("/sentences"), hh.MakeAPIHandler(s.sentencesGetHandler))
		rAPI.HandleFunc(pat.Post("/sentences"), hh.MakeAPIHandler(s.requireAuth(s.sentencesPostHandler)))
		rAPI.HandleFunc(pat.Get("/sentences/:id"), hh.MakeAPIHandler(s.sentenceGetHandler))
		rAPI.HandleFunc(pat.Delete("/sentences/:id"), hh.MakeAPIHandler(s.requireAuth(s.sentenceDeleteHandler)))

		rAPI.HandleFunc(pat.Get("/reviews/due"), hh.MakeAPIHandler(s.reviewsDueHandler))
		rAPI.HandleFunc(pat.Post("/reviews/:id"), hh.MakeAPIHandler(s.requireAuth(s.reviewPostHandler)))

		rAdmin := goji.SubMux()
		rAPI.Handle(pat.New("/admin/*"), rAdmin)
		{
			rAdmin.Use(s.authnRequiredMiddleware)

			rAdmin.HandleFunc(pat.Post("/backup"), hh.MakeAPIHandler(s.backupHandler))
			rAdmin.HandleFunc(pat.Get("/backups"), hh.MakeAPIHandler(s.backupsListHandler))
			rAdmin.HandleFunc(pat.Post("/restore"), hh.MakeAPIHandler(s.restoreHandler))
			rAdmin.HandleFunc(pat.Get("/export"), hh.MakeAPIHandlerWWriter(s.exportHandler))
			rAdmin.HandleFunc(pat.Post("/import"), hh.MakeAPIHandler(s.importHandler))
		}
	}

	return rRoot
}

// bearerToken extracts the token from the Authorization header
func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}

// requireAuth wraps a handler so that it answers 401 without a valid
// session token
func (s *Server) requireAuth(
	f func(r *http.Request) (interface{}, error),
) func(r *http.Request) (interface{}, error) {
	return func(r *http.Request) (interface{}, error) {
		if !s.auth.Validate(bearerToken(r)) {
			return nil, hh.MakeUnauthorizedError()
		}
		return f(r)
	}
}

// authnRequiredMiddleware guards a whole submux the same way
func (s *Server) authnRequiredMiddleware(inner http.Handler) http.Handler {
	mw := func(w http.ResponseWriter, r *http.Request) {
		if !s.auth.Validate(bearerToken(r)) {
			hh.RespondWithError(w, r, hh.MakeUnauthorizedError())
			return
		}
		inner.ServeHTTP(w, r)
	}
	return middleware.MkMiddleware(mw)
}

// decodeBody decodes the JSON request body into dst
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Annotatef(err, "decoding request body")
	}
	return nil
}

// paramInt parses a numeric URL parameter
func paramInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(pat.Param(r, name))
	if err != nil {
		return 0, errors.Errorf("invalid %s: %q", name, pat.Param(r, name))
	}
	return v, nil
}

// queryInt parses an optional numeric query parameter
func queryInt(r *http.Request, name string, fallback int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) loginHandler(r *http.Request) (interface{}, error) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, errors.Trace(err)
	}

	token, err := s.auth.Login(req.Password)
	if err != nil {
		return nil, hh.MakeUnauthorizedError()
	}
	return loginResponse{Token: token}, nil
}
