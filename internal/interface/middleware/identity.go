package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/linkshort/internal/domain/entity"
	"github.com/oksasatya/linkshort/pkg/response"
)

const identityKey = "middleware.identity"

// CredentialResolver turns a bearer token into an identity. Implemented by application.AuthService.
type CredentialResolver interface {
	ResolveCredential(ctx context.Context, token string) (*entity.Identity, error)
}

// AttachIdentity runs on every route. A valid bearer token attaches an identity; a missing or
// invalid one leaves the request anonymous. It never aborts.
func AttachIdentity(resolver CredentialResolver, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}
		id, err := resolver.ResolveCredential(c.Request.Context(), token)
		if err != nil {
			if logger != nil {
				logger.WithError(err).WithField(RequestIDKey, c.GetString(RequestIDKey)).Debug("credential rejected")
			}
			c.Next()
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireIdentity aborts with 401 unless AttachIdentity stored an identity.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := IdentityFrom(c); !ok {
			response.Fail(c, http.StatusUnauthorized, "authentication required", response.ErrorBody{Code: "authentication"})
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the identity attached to the request, if any.
func IdentityFrom(c *gin.Context) (*entity.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*entity.Identity)
	return id, ok && id != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
