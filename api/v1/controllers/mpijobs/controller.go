package mpijobs

import (
	"net/http"

	"github.com/equinor/radix-training-console/api/controllers"
	apierrors "github.com/equinor/radix-training-console/api/errors"
	mpijobsApi "github.com/equinor/radix-training-console/api/v1/mpijobs"
	modelsv1 "github.com/equinor/radix-training-console/models/v1"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const yamlContentType = "application/yaml"

type mpiJobController struct {
	*controllers.ControllerBase
	handler mpijobsApi.Handler
}

// New create a new MPIJob controller
func New(handler mpijobsApi.Handler) controllers.Controller {
	return &mpiJobController{
		handler: handler,
	}
}

// GetRoutes List the supported routes of this controller
func (controller *mpiJobController) GetRoutes() []controllers.Route {
	return []controllers.Route{
		{
			Path:    "/mpijobs/draft",
			Method:  http.MethodGet,
			Handler: controller.GetDraft,
		},
		{
			Path:    "/mpijobs/validate",
			Method:  http.MethodPost,
			Handler: controller.ValidateDraft,
		},
		{
			Path:    "/mpijobs/manifest",
			Method:  http.MethodPost,
			Handler: controller.RenderManifest,
		},
		{
			Path:    "/mpijobs",
			Method:  http.MethodPost,
			Handler: controller.SubmitJob,
		},
	}
}

func (controller *mpiJobController) GetDraft(c *gin.Context) {
	// swagger:operation GET /mpijobs/draft MPIJob getDraft
	// ---
	// summary: Gets the initial configuration of a new MPIJob
	// responses:
	//   "200":
	//     description: "Successful get draft"
	//     schema:
	//        "$ref": "#/definitions/JobConfigDraft"
	log.Ctx(c.Request.Context()).Debug().Msg("Get draft")
	c.JSON(http.StatusOK, controller.handler.GetDraft(c.Request.Context()))
}

func (controller *mpiJobController) ValidateDraft(c *gin.Context) {
	// swagger:operation POST /mpijobs/validate MPIJob validateDraft
	// ---
	// summary: Validates an MPIJob configuration and computes its total resources
	// parameters:
	// - name: draft
	//   in: body
	//   description: Job configuration to validate
	//   required: true
	//   schema:
	//       "$ref": "#/definitions/JobConfigDraft"
	// responses:
	//   "200":
	//     description: "Validation result"
	//     schema:
	//        "$ref": "#/definitions/DraftValidation"
	//   "400":
	//     description: "Bad request"
	//     schema:
	//        "$ref": "#/definitions/Status"
	draft, ok := controller.readDraft(c)
	if !ok {
		return
	}
	validation, err := controller.handler.ValidateDraft(c.Request.Context(), draft)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, validation)
}

func (controller *mpiJobController) RenderManifest(c *gin.Context) {
	// swagger:operation POST /mpijobs/manifest MPIJob renderManifest
	// ---
	// summary: Renders the MPIJob manifest of a job configuration without submitting it
	// parameters:
	// - name: draft
	//   in: body
	//   description: Job configuration
	//   required: true
	//   schema:
	//       "$ref": "#/definitions/JobConfigDraft"
	// produces:
	// - application/yaml
	// responses:
	//   "200":
	//     description: "MPIJob manifest"
	//     schema:
	//        type: string
	//   "400":
	//     description: "Bad request"
	//     schema:
	//        "$ref": "#/definitions/Status"
	//   "422":
	//     description: "Invalid job configuration"
	//     schema:
	//        "$ref": "#/definitions/Status"
	draft, ok := controller.readDraft(c)
	if !ok {
		return
	}
	manifest, err := controller.handler.RenderManifest(c.Request.Context(), draft)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, yamlContentType, manifest)
}

func (controller *mpiJobController) SubmitJob(c *gin.Context) {
	// swagger:operation POST /mpijobs MPIJob submitJob
	// ---
	// summary: Submits an MPIJob
	// parameters:
	// - name: draft
	//   in: body
	//   description: Job configuration to submit
	//   required: true
	//   schema:
	//       "$ref": "#/definitions/JobConfigDraft"
	// responses:
	//   "201":
	//     description: "Successful submit job"
	//     schema:
	//        "$ref": "#/definitions/JobHandle"
	//   "400":
	//     description: "Bad request"
	//     schema:
	//        "$ref": "#/definitions/Status"
	//   "403":
	//     description: "Quota exceeded"
	//     schema:
	//        "$ref": "#/definitions/Status"
	//   "409":
	//     description: "Job already exists"
	//     schema:
	//        "$ref": "#/definitions/Status"
	//   "422":
	//     description: "Invalid job configuration"
	//     schema:
	//        "$ref": "#/definitions/Status"
	//   "502":
	//     description: "Backend unavailable"
	//     schema:
	//        "$ref": "#/definitions/Status"
	logger := log.Ctx(c.Request.Context())
	logger.Info().Msg("Submit MPIJob")
	draft, ok := controller.readDraft(c)
	if !ok {
		return
	}
	handle, err := controller.handler.SubmitJob(c.Request.Context(), draft)
	if err != nil {
		controller.HandleError(c, err)
		return
	}
	logger.Info().Msgf("MPIJob %s has been submitted to namespace %s", handle.Name, handle.Namespace)
	c.JSON(http.StatusCreated, handle)
}

func (controller *mpiJobController) readDraft(c *gin.Context) (modelsv1.JobConfigDraft, bool) {
	var draft modelsv1.JobConfigDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		_ = c.Error(err)
		controller.HandleError(c, apierrors.NewBadRequest("invalid job configuration payload"))
		return draft, false
	}
	return draft, true
}
