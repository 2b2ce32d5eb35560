package controllers

import (
	"net/http"

	apierrors "github.com/equinor/radix-training-console/api/errors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Route describes a route served by a controller
type Route struct {
	Path    string
	Method  string
	Handler gin.HandlerFunc
}

// Controller provides the routes it serves
type Controller interface {
	GetRoutes() []Route
}

type ControllerBase struct {
}

func (controller *ControllerBase) HandleError(c *gin.Context, err error) {
	_ = c.Error(err)

	var status = apierrors.NewFromError(err).Status()
	logger := log.Ctx(c.Request.Context())
	if status.Code >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
	} else {
		logger.Info().Err(err).Msg("request rejected")
	}
	c.JSON(status.Code, status)
}
