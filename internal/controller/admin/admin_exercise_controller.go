package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minhlq/lingolab/internal/dto"
	"github.com/minhlq/lingolab/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminExerciseController struct {
	adminExerciseService service.AdminExerciseService
}

func NewAdminExerciseController(adminExerciseService service.AdminExerciseService) *AdminExerciseController {
	return &AdminExerciseController{adminExerciseService: adminExerciseService}
}

// CreateExerciseSet godoc
// @Summary (Admin) Create a new exercise set
// @Description Content author creates an exercise set with all of its questions and options.
// @Tags Admin - Exercise Sets
// @Accept json
// @Produce json
// @Param set_data body dto.ExerciseSetCreateDTO true "Exercise set data including questions and options"
// @Success 201 {object} dto.ExerciseSetDetailDTO "Exercise set created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/exercise-sets [post]
func (c *AdminExerciseController) CreateExerciseSet(ctx *gin.Context) {
	var req dto.ExerciseSetCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateExerciseSet: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.adminExerciseService.CreateExerciseSet(req)
	if err != nil {
		log.Error().Err(err).Msg("Admin CreateExerciseSet: Service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to create exercise set", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}
