package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/oksasatya/linkshort/internal/application"
	"github.com/oksasatya/linkshort/internal/domain/entity"
	"github.com/oksasatya/linkshort/internal/interface/http/mocks"
	"github.com/oksasatya/linkshort/internal/interface/middleware"
	"github.com/oksasatya/linkshort/pkg/apperror"
	"github.com/oksasatya/linkshort/pkg/helpers"
	"github.com/oksasatya/linkshort/pkg/validation"
)

const goodToken = "good-token"

var alice = &entity.Identity{UserID: "user-alice", Email: "a@x.com", TokenID: "jti-1"}

type tokenResolver struct{}

func (tokenResolver) ResolveCredential(_ context.Context, token string) (*entity.Identity, error) {
	if token == goodToken {
		return alice, nil
	}
	return nil, apperror.Authentication("invalid token", nil)
}

type envelope struct {
	Status    int             `json:"status"`
	RequestID string          `json:"request_id"`
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Meta      map[string]any  `json:"meta"`
	Error     struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type HandlerSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	auth      *mocks.MockAuthService
	shortener *mocks.MockShortenerService
	router    *gin.Engine
}

func TestHandlerSuite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.auth = mocks.NewMockAuthService(s.ctrl)
	s.shortener = mocks.NewMockShortenerService(s.ctrl)

	logger := helpers.NewNopLogger()
	ah := NewAuthHandler(s.auth, logger)
	uh := NewURLHandler(s.shortener, logger)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(), middleware.AttachIdentity(tokenResolver{}, logger))
	api := r.Group("/api")
	api.POST("/auth/register", ah.Register)
	api.POST("/auth/login", ah.Login)
	api.GET("/auth/me", middleware.RequireIdentity(), ah.Me)
	api.POST("/auth/logout", middleware.RequireIdentity(), ah.Logout)
	api.POST("/create", middleware.RequireIdentity(), uh.Create)
	api.GET("/user/urls", middleware.RequireIdentity(), uh.List)
	api.GET("/user/urls/search", middleware.RequireIdentity(), uh.Search)
	api.POST("/user/urls/export", middleware.RequireIdentity(), uh.Export)
	r.GET("/:alias", uh.Redirect)
	s.router = r
}

func (s *HandlerSuite) do(method, path, body, token string) (*httptest.ResponseRecorder, envelope) {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (s *HandlerSuite) TestRegister() {
	s.Run("created", func() {
		created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		s.auth.EXPECT().
			Register(gomock.Any(), application.RegisterInput{Name: "alice", Email: "a@x.com", Password: "pw123"}).
			Return(&entity.User{ID: "user-alice", Name: "alice", Email: "a@x.com", CreatedAt: created}, nil)

		w, env := s.do(http.MethodPost, "/api/auth/register", `{"name":"alice","email":"a@x.com","password":"pw123"}`, "")

		s.Equal(http.StatusCreated, w.Code)
		s.True(env.Success)
		s.JSONEq(`{"id":"user-alice","email":"a@x.com","name":"alice","created_at":"2024-01-02T03:04:05Z"}`, string(env.Data))
		s.NotContains(w.Body.String(), "password")
	})

	s.Run("missing fields", func() {

		w, env := s.do(http.MethodPost, "/api/auth/register", `{"name":"alice"}`, "")

		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("validation", env.Error.Code)
		s.Equal("is required", env.Error.Details["email"])
		s.Equal("is required", env.Error.Details["password"])
	})

	s.Run("bad json", func() {
		w, env := s.do(http.MethodPost, "/api/auth/register", `{bad`, "")
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("invalid json", env.Error.Details["payload"])
	})

	s.Run("password over 72 bytes", func() {
		body := `{"name":"alice","email":"a@x.com","password":"` + strings.Repeat("é", 72) + `"}`
		w, env := s.do(http.MethodPost, "/api/auth/register", body, "")
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("must be between 1 and 72 bytes long", env.Error.Details["password"])
	})

	s.Run("duplicate email", func() {
		s.auth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, apperror.Conflict("email already registered"))

		w, env := s.do(http.MethodPost, "/api/auth/register", `{"name":"alice","email":"a@x.com","password":"pw123"}`, "")

		s.Equal(http.StatusConflict, w.Code)
		s.Equal("conflict", env.Error.Code)
		s.Equal("email already registered", env.Message)
	})
}

func (s *HandlerSuite) TestLogin() {
	s.Run("issues token", func() {
		exp := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
		s.auth.EXPECT().Login(gomock.Any(), "a@x.com", "pw123").Return(&application.LoginResult{
			Token: "jwt", ExpiresAt: exp, User: &entity.User{ID: "user-alice", Email: "a@x.com", Name: "alice"},
		}, nil)

		w, env := s.do(http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"pw123"}`, "")

		s.Require().Equal(http.StatusOK, w.Code)
		var got loginResponse
		s.Require().NoError(json.Unmarshal(env.Data, &got))
		s.Equal("jwt", got.Token)
		s.Equal("Bearer", got.TokenType)
		s.True(exp.Equal(got.ExpiresAt))
		s.Equal("user-alice", got.User.ID)
	})

	s.Run("invalid credentials", func() {
		s.auth.EXPECT().Login(gomock.Any(), "a@x.com", "nope").Return(nil, apperror.Authentication("invalid credentials", nil))

		w, env := s.do(http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"nope"}`, "")

		s.Equal(http.StatusUnauthorized, w.Code)
		s.Equal("invalid credentials", env.Message)
	})
}

func (s *HandlerSuite) TestMeAndLogout() {
	s.Run("requires identity", func() {
		w, env := s.do(http.MethodGet, "/api/auth/me", "", "")
		s.Equal(http.StatusUnauthorized, w.Code)
		s.NotEmpty(env.RequestID)

		w, _ = s.do(http.MethodGet, "/api/auth/me", "", "forged")
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("returns profile", func() {
		s.auth.EXPECT().Me(gomock.Any(), alice).Return(&entity.User{ID: "user-alice", Email: "a@x.com", Name: "alice"}, nil)
		w, env := s.do(http.MethodGet, "/api/auth/me", "", goodToken)
		s.Equal(http.StatusOK, w.Code)
		s.Contains(string(env.Data), `"email":"a@x.com"`)
	})

	s.Run("logout", func() {
		s.auth.EXPECT().Logout(gomock.Any(), alice).Return(nil)
		w, env := s.do(http.MethodPost, "/api/auth/logout", "", goodToken)
		s.Equal(http.StatusOK, w.Code)
		s.JSONEq(`{"logged_out":true}`, string(env.Data))
	})
}

func (s *HandlerSuite) TestCreate() {
	s.Run("created", func() {
		link := &application.LinkView{Alias: "V1StGXR8_Z5jdHi6B-myT", ShortURL: "https://sho.rt/V1StGXR8_Z5jdHi6B-myT", TargetURL: "https://example.com/long/path"}
		s.shortener.EXPECT().Shorten(gomock.Any(), alice, "https://example.com/long/path").Return(link, nil)

		w, env := s.do(http.MethodPost, "/api/create", `{"url":"https://example.com/long/path"}`, goodToken)

		s.Require().Equal(http.StatusCreated, w.Code)
		var got map[string]any
		s.Require().NoError(json.Unmarshal(env.Data, &got))
		s.Equal(link.ShortURL, got["short_url"])
		s.Equal(link.ShortURL, got["shortUrl"])
		s.Equal(link.Alias, got["alias"])
		s.Equal(link.TargetURL, got["url"])
	})

	s.Run("anonymous rejected", func() {
		w, _ := s.do(http.MethodPost, "/api/create", `{"url":"https://example.com"}`, "")
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("invalid url", func() {
		for _, body := range []string{`{}`, `{"url":""}`, `{"url":"not a url"}`, `{"url":"javascript:alert(1)"}`} {
			w, env := s.do(http.MethodPost, "/api/create", body, goodToken)
			s.Equal(http.StatusBadRequest, w.Code, body)
			s.Contains(env.Error.Details, "url", body)
		}
	})

	s.Run("exhausted", func() {
		s.shortener.EXPECT().Shorten(gomock.Any(), alice, gomock.Any()).
			Return(nil, apperror.Exhausted("could not allocate a unique alias", nil))
		w, env := s.do(http.MethodPost, "/api/create", `{"url":"https://example.com"}`, goodToken)
		s.Equal(http.StatusInternalServerError, w.Code)
		s.Equal("exhausted", env.Error.Code)
	})

	s.Run("internal error is not leaked", func() {
		s.shortener.EXPECT().Shorten(gomock.Any(), alice, gomock.Any()).
			Return(nil, apperror.Internal("save short url", errors.New("pq: password authentication failed")))
		w, env := s.do(http.MethodPost, "/api/create", `{"url":"https://example.com"}`, goodToken)
		s.Equal(http.StatusInternalServerError, w.Code)
		s.Equal("internal server error", env.Message)
		s.NotContains(w.Body.String(), "password authentication")
	})
}

func (s *HandlerSuite) TestRedirect() {
	s.Run("found", func() {
		s.shortener.EXPECT().Resolve(gomock.Any(), "V1StGXR8_Z5jdHi6B-myT").Return("https://example.com/long/path", nil)
		w, _ := s.do(http.MethodGet, "/V1StGXR8_Z5jdHi6B-myT", "", "")
		s.Equal(http.StatusFound, w.Code)
		s.Equal("https://example.com/long/path", w.Header().Get("Location"))
	})

	s.Run("not found", func() {
		s.shortener.EXPECT().Resolve(gomock.Any(), "zzzzz-not-issued").Return("", apperror.NotFound("short url not found"))
		w, env := s.do(http.MethodGet, "/zzzzz-not-issued", "", "")
		s.Equal(http.StatusNotFound, w.Code)
		s.Equal("not_found", env.Error.Code)
		s.Empty(w.Header().Get("Location"))
	})
}

func (s *HandlerSuite) TestList() {
	s.Run("paged", func() {
		s.shortener.EXPECT().ListByOwner(gomock.Any(), alice, 2, 4).Return(&application.LinkPage{
			Items: []application.LinkView{{Alias: "a"}, {Alias: "b"}}, Total: 7, Limit: 2, Offset: 4,
		}, nil)
		w, env := s.do(http.MethodGet, "/api/user/urls?limit=2&offset=4", "", goodToken)
		s.Require().Equal(http.StatusOK, w.Code)
		var items []application.LinkView
		s.Require().NoError(json.Unmarshal(env.Data, &items))
		s.Len(items, 2)
		s.EqualValues(7, env.Meta["total"])
	})

	s.Run("bad paging", func() {
		w, _ := s.do(http.MethodGet, "/api/user/urls?limit=ten", "", goodToken)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlerSuite) TestSearchAndExport() {
	s.Run("search", func() {
		s.shortener.EXPECT().Search(gomock.Any(), alice, "docs", 0).Return([]application.LinkView{{Alias: "a"}}, nil)
		w, env := s.do(http.MethodGet, "/api/user/urls/search?q=docs", "", goodToken)
		s.Equal(http.StatusOK, w.Code)
		s.EqualValues(1, env.Meta["count"])
	})

	s.Run("search unavailable", func() {
		s.shortener.EXPECT().Search(gomock.Any(), alice, "docs", 0).Return(nil, apperror.Unavailable("search is not configured"))
		w, _ := s.do(http.MethodGet, "/api/user/urls/search?q=docs", "", goodToken)
		s.Equal(http.StatusServiceUnavailable, w.Code)
	})

	s.Run("export", func() {
		s.shortener.EXPECT().Export(gomock.Any(), alice).Return("https://storage.googleapis.com/b/exports/x.csv", nil)
		w, env := s.do(http.MethodPost, "/api/user/urls/export", "", goodToken)
		s.Equal(http.StatusCreated, w.Code)
		s.JSONEq(`{"export_url":"https://storage.googleapis.com/b/exports/x.csv"}`, string(env.Data))
	})
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: refused") }

	for name, tc := range map[string]struct {
		checks map[string]Check
		want   int
	}{
		"all up":   {map[string]Check{"postgres": up, "redis": up}, http.StatusOK},
		"one down": {map[string]Check{"postgres": up, "redis": down}, http.StatusServiceUnavailable},
		"no deps":  {nil, http.StatusOK},
	} {
		t.Run(name, func(t *testing.T) {
			r := gin.New()
			r.GET("/healthz", NewHealthHandler(tc.checks, helpers.NewNopLogger()).Health)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			require.Equal(t, tc.want, w.Code)
			if tc.want != http.StatusOK {
				assert.Contains(t, w.Body.String(), `"redis":"down"`)
			}
		})
	}
}
