package student

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minhlq/lingolab/internal/dto"
	"github.com/minhlq/lingolab/internal/service"
	"github.com/rs/zerolog/log"
)

type StudentController struct {
	exerciseSvc service.ExerciseService
	attemptSvc  service.AttemptLifecycleService
	answerSvc   service.AnswerService
	feedbackSvc service.FeedbackService
}

func NewStudentController(
	exerciseSvc service.ExerciseService,
	attemptSvc service.AttemptLifecycleService,
	answerSvc service.AnswerService,
	feedbackSvc service.FeedbackService,
) *StudentController {
	return &StudentController{
		exerciseSvc: exerciseSvc,
		attemptSvc:  attemptSvc,
		answerSvc:   answerSvc,
		feedbackSvc: feedbackSvc,
	}
}

// GetAllExerciseSets godoc
// @Summary (Student) List all exercise sets
// @Description Get a list of exercise sets with question counts.
// @Tags Student - Exercises & Attempts
// @Produce json
// @Success 200 {array} dto.ExerciseSetSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exercise-sets [get]
func (c *StudentController) GetAllExerciseSets(ctx *gin.Context) {
	sets, err := c.exerciseSvc.GetAllSets()
	if err != nil {
		log.Error().Err(err).Msg("GetAllExerciseSets: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve exercise sets", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, sets)
}

// GetExerciseSetDetails godoc
// @Summary (Student) Get details of an exercise set
// @Description Get an exercise set with its ordered questions and options.
// @Tags Student - Exercises & Attempts
// @Produce json
// @Param set_id path int true "Exercise Set ID"
// @Success 200 {object} dto.ExerciseSetDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Exercise Set ID format"
// @Failure 404 {object} dto.ErrorResponse "Exercise set not found"
// @Router /exercise-sets/{set_id} [get]
func (c *StudentController) GetExerciseSetDetails(ctx *gin.Context) {
	setID, ok := parseUintParam(ctx, "set_id")
	if !ok {
		return
	}
	details, err := c.exerciseSvc.GetSetDetails(setID)
	if err != nil {
		log.Warn().Err(err).Uint("setID", setID).Msg("GetExerciseSetDetails: Not found or service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, details)
}

// CreateOrResumeAttempt godoc
// @Summary (Student) Start or resume an attempt
// @Description Returns the student's in-progress attempt for the set, creating one if needed. Concurrent duplicate requests resolve to the same attempt.
// @Tags Student - Exercises & Attempts
// @Accept json
// @Produce json
// @Param set_id path int true "Exercise Set ID"
// @Param request body dto.CreateAttemptRequest true "Student identifier"
// @Success 200 {object} dto.AttemptResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Exercise set not found"
// @Failure 409 {object} dto.ErrorResponse "Maximum attempts reached"
// @Router /exercise-sets/{set_id}/attempts [post]
func (c *StudentController) CreateOrResumeAttempt(ctx *gin.Context) {
	setID, ok := parseUintParam(ctx, "set_id")
	if !ok {
		return
	}

	var req dto.CreateAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateOrResumeAttempt: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.attemptSvc.CreateOrResume(req.StudentID, setID)
	if err != nil {
		if errors.Is(err, service.ErrMaxAttemptsReached) {
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("setID", setID).Uint("studentID", req.StudentID).Msg("CreateOrResumeAttempt: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create or resume attempt", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RecordAnswer godoc
// @Summary (Student) Record an answer
// @Description Upserts the answer for one question of an in-progress attempt; resubmission overwrites the earlier answer. Feedback generation is triggered asynchronously.
// @Tags Student - Exercises & Attempts
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param request body dto.RecordAnswerRequest true "Answer payload"
// @Success 200 {object} dto.RecordAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Router /attempts/{attempt_id}/answers [post]
func (c *StudentController) RecordAnswer(ctx *gin.Context) {
	attemptID, ok := parseUintParam(ctx, "attempt_id")
	if !ok {
		return
	}

	var req dto.RecordAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("RecordAnswer: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.answerSvc.Record(attemptID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttemptNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		case errors.Is(err, service.ErrAttemptSubmitted), errors.Is(err, service.ErrQuestionNotInAttempt):
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
		default:
			log.Error().Err(err).Uint("attemptID", attemptID).Msg("RecordAnswer: Service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to record answer", Details: []string{err.Error()}})
		}
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CompleteAttempt godoc
// @Summary (Student) Complete an attempt
// @Description Aggregates scores and finalizes the attempt. Completing an already submitted attempt returns the stored totals.
// @Tags Student - Exercises & Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.CompleteAttemptResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid Attempt ID format"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id}/complete [post]
func (c *StudentController) CompleteAttempt(ctx *gin.Context) {
	attemptID, ok := parseUintParam(ctx, "attempt_id")
	if !ok {
		return
	}

	resp, err := c.attemptSvc.Complete(attemptID)
	if err != nil {
		if errors.Is(err, service.ErrAttemptNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("CompleteAttempt: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to complete attempt", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GenerateFeedback godoc
// @Summary (Student) Generate AI feedback for a saved answer
// @Description Returns feedback with exactly three reference materials. Internal failures still return HTTP 200 with success=false and populated fallback data.
// @Tags Student - Feedback
// @Accept json
// @Produce json
// @Param request body dto.GenerateFeedbackRequest true "Answer identifiers"
// @Success 200 {object} dto.FeedbackEnvelope
// @Failure 400 {object} dto.ErrorResponse "Missing required fields"
// @Router /feedback/generate [post]
func (c *StudentController) GenerateFeedback(ctx *gin.Context) {
	var req dto.GenerateFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("GenerateFeedback: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.feedbackSvc.GenerateForAnswer(ctx.Request.Context(), req.StudentAnswerID)
	if err != nil {
		// The answer row itself was missing; the caller gets a readable
		// envelope rather than a 5xx.
		log.Warn().Err(err).Uint("answerID", req.StudentAnswerID).Msg("GenerateFeedback: Could not load answer")
		ctx.JSON(http.StatusOK, dto.FeedbackEnvelope{Success: false, Error: err.Error()})
		return
	}

	refs := make([]dto.ReferenceMaterialDTO, 0, len(result.References))
	for _, r := range result.References {
		refs = append(refs, dto.ReferenceMaterialDTO{Title: r.Title, URL: r.URL, Description: r.Description})
	}
	ctx.JSON(http.StatusOK, dto.FeedbackEnvelope{
		Success: result.Success,
		Data: &dto.FeedbackData{
			FeedbackType:       result.FeedbackType,
			FeedbackText:       result.FeedbackText,
			Explanation:        result.Explanation,
			ReferenceMaterials: refs,
			ProcessingTimeMs:   result.ProcessingTimeMs,
			AIModel:            result.AIModel,
		},
	})
}

// GetAttemptDetails godoc
// @Summary (Student) Get details of an attempt
// @Description Full attempt record including answers and any generated feedback.
// @Tags Student - Exercises & Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Attempt ID format"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id} [get]
func (c *StudentController) GetAttemptDetails(ctx *gin.Context) {
	attemptID, ok := parseUintParam(ctx, "attempt_id")
	if !ok {
		return
	}
	details, err := c.attemptSvc.GetAttemptDetails(attemptID)
	if err != nil {
		if errors.Is(err, service.ErrAttemptNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("GetAttemptDetails: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve attempt", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, details)
}

// GetMyAttempts godoc
// @Summary (Student) List a student's attempts for an exercise set
// @Description Summary information for every attempt the student made on a set.
// @Tags Student - Exercises & Attempts
// @Produce json
// @Param set_id path int true "Exercise Set ID"
// @Param student_id query int true "Student ID"
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Router /exercise-sets/{set_id}/my-attempts [get]
func (c *StudentController) GetMyAttempts(ctx *gin.Context) {
	setID, ok := parseUintParam(ctx, "set_id")
	if !ok {
		return
	}
	studentIDStr := ctx.Query("student_id")
	studentID, err := strconv.ParseUint(studentIDStr, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Student ID format in query"})
		return
	}

	attempts, err := c.attemptSvc.GetStudentAttempts(setID, uint(studentID))
	if err != nil {
		log.Error().Err(err).Uint("setID", setID).Msg("GetMyAttempts: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve attempts", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}
