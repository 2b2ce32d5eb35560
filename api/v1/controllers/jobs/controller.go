package jobs

import (
	"fmt"
	"net/http"

	"github.com/equinor/radix-training-console/api/controllers"
	apierrors "github.com/equinor/radix-training-console/api/errors"
	jobsApi "github.com/equinor/radix-training-console/api/v1/jobs"
	"github.com/equinor/radix-training-console/internal/query"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	namespaceParam = "namespace"
	jobNameParam   = "jobName"
)

type jobController struct {
	*controllers.ControllerBase
	handler jobsApi.Handler
}

// New create a new job controller
func New(handler jobsApi.Handler) controllers.Controller {
	return &jobController{
		handler: handler,
	}
}

// GetRoutes List the supported routes of this controller
func (controller *jobController) GetRoutes() []controllers.Route {
	return []controllers.Route{
		{
			Path:    "/jobs",
			Method:  http.MethodGet,
			Handler: controller.GetJobs,
		},
		{
			Path:    fmt.Sprintf("/jobs/:%s/:%s", namespaceParam, jobNameParam),
			Method:  http.MethodGet,
			Handler: controller.GetJob,
		},
	}
}

func (controller *jobController) GetJobs(c *gin.Context) {
	// swagger:operation GET /jobs Job getJobs
	// ---
	// summary: Gets a page of jobs matching the filter
	// parameters:
	// - name: search
	//   in: query
	//   description: Text matched against job name and namespace, ignoring case
	//   type: string
	//   required: false
	// - name: status
	//   in: query
	//   description: Job status, or All
	//   type: string
	//   required: false
	// - name: type
	//   in: query
	//   description: Job type, or All
	//   type: string
	//   required: false
	// - name: page
	//   in: query
	//   description: Page number, starting at 1
	//   type: integer
	//   required: false
	// - name: perPage
	//   in: query
	//   description: Jobs per page, at most 100
	//   type: integer
	//   required: false
	// - name: sortBy
	//   in: query
	//   description: Sort key, one of name, namespace, age or status
	//   type: string
	//   required: false
	// - name: sortDesc
	//   in: query
	//   description: Sort descending
	//   type: boolean
	//   required: false
	// responses:
	//   "200":
	//     description: "Successful get jobs"
	//     schema:
	//        "$ref": "#/definitions/JobList"
	//   "400":
	//     description: "Bad request"
	//     schema:
	//        "$ref": "#/definitions/Status"
	logger := log.Ctx(c.Request.Context())
	var request query.Request
	if err := c.ShouldBindQuery(&request); err != nil {
		_ = c.Error(err)
		controller.HandleError(c, apierrors.NewBadRequest("invalid job query"))
		return
	}
	request.SetDefaults()
	logger.Debug().Msgf("Get job list, page %d of %d", request.Page, request.PerPage)

	jobList, err := controller.handler.GetJobs(c.Request.Context(), request)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	logger.Debug().Msgf("Found %d jobs", jobList.TotalMatched)
	c.JSON(http.StatusOK, jobList)
}

func (controller *jobController) GetJob(c *gin.Context) {
	// swagger:operation GET /jobs/{namespace}/{jobName} Job getJob
	// ---
	// summary: Gets job
	// parameters:
	// - name: namespace
	//   in: path
	//   description: Namespace of job
	//   type: string
	//   required: true
	// - name: jobName
	//   in: path
	//   description: Name of job
	//   type: string
	//   required: true
	// responses:
	//   "200":
	//     description: "Successful get job"
	//     schema:
	//        "$ref": "#/definitions/JobView"
	//   "404":
	//     description: "Not found"
	//     schema:
	//        "$ref": "#/definitions/Status"
	namespace, jobName := c.Param(namespaceParam), c.Param(jobNameParam)
	log.Ctx(c.Request.Context()).Info().Msgf("Get job %s/%s", namespace, jobName)
	job, err := controller.handler.GetJob(c.Request.Context(), namespace, jobName)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}
