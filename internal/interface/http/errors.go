package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/linkshort/internal/domain/entity"
	"github.com/oksasatya/linkshort/internal/interface/middleware"
	"github.com/oksasatya/linkshort/pkg/apperror"
	"github.com/oksasatya/linkshort/pkg/response"
	"github.com/oksasatya/linkshort/pkg/validation"
)

// respondError maps an application error onto the JSON envelope. Internal causes are logged, never sent.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	status := apperror.HTTPStatus(err)
	if status >= http.StatusInternalServerError && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			middleware.RequestIDKey: c.GetString(middleware.RequestIDKey),
			"path":                  c.FullPath(),
		}).Error("request failed")
	}
	response.Fail(c, status, apperror.PublicMessage(err), response.ErrorBody{Code: string(apperror.KindOf(err))})
}

func respondBindError(c *gin.Context, err error) {
	response.Fail(c, http.StatusBadRequest, "invalid payload", response.ErrorBody{
		Code:    string(apperror.KindValidation),
		Details: validation.ToDetails(err),
	})
}

// identity returns the caller attached by middleware.AttachIdentity, or nil.
func identity(c *gin.Context) *entity.Identity {
	id, _ := middleware.IdentityFrom(c)
	return id
}
