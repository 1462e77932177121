package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alpersoy/polls/internal/app/models"
	"github.com/alpersoy/polls/internal/app/models/dto"
	"github.com/alpersoy/polls/internal/app/services"
	"github.com/alpersoy/polls/internal/middleware"
	"github.com/alpersoy/polls/internal/pkg/helpers"
)

// QuestionController handles the JSON API for questions and choices
type QuestionController struct {
	questionService *services.QuestionService
}

// NewQuestionController creates a new QuestionController
func NewQuestionController(questionService *services.QuestionService) *QuestionController {
	return &QuestionController{
		questionService: questionService,
	}
}

// ListQuestions lists published questions
// @Summary List published questions
// @Description Retrieves published questions, newest first, paginated
// @Tags questions
// @Accept json
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.QuestionListResponse} "Questions retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	questions, total, err := c.questionService.ListQuestionsPage(ctx, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	now := time.Now()
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.QuestionListResponse{
			Questions:      dto.FromQuestions(questions, now),
			PaginationInfo: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: now,
	})
}

// GetQuestionByID retrieves a published question by ID
// @Summary Get question by ID
// @Description Retrieves a published question with its choices. Questions with a future pub_date are reported as not found.
// @Tags questions
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.APIResponse{data=dto.QuestionResponse} "Question retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid question ID"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id} [get]
func (c *QuestionController) GetQuestionByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	question, err := c.questionService.GetPublishedQuestion(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromQuestion(question, time.Now()),
		Timestamp: time.Now(),
	})
}

// CreateQuestion creates a new question
// @Summary Create a new question
// @Description Creates a new question. Omitting pub_date publishes it immediately; a future pub_date schedules it.
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateQuestionRequest true "Question information"
// @Success 201 {object} dto.APIResponse{data=dto.QuestionResponse} "Question created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid question data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	question := &models.Question{
		QuestionText: req.QuestionText,
	}
	if req.PubDate != nil {
		question.PubDate = *req.PubDate
	}

	if err := c.questionService.CreateQuestion(ctx, question); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromQuestion(question, time.Now()),
		Timestamp: time.Now(),
	})
}

// UpdateQuestion updates an existing question
// @Summary Update a question
// @Description Updates the text and publication date of an existing question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param request body dto.UpdateQuestionRequest true "Updated question information"
// @Success 200 {object} dto.APIResponse{data=dto.QuestionResponse} "Question updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid question data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	question := &models.Question{
		ID:           id,
		QuestionText: req.QuestionText,
	}
	if req.PubDate != nil {
		question.PubDate = *req.PubDate
	}

	if err := c.questionService.UpdateQuestion(ctx, question); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromQuestion(question, time.Now()),
		Timestamp: time.Now(),
	})
}

// DeleteQuestion deletes a question
// @Summary Delete a question
// @Description Deletes an existing question and its choices
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 204 "Question deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid question ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.questionService.DeleteQuestion(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListChoices lists the choices of a published question
// @Summary List question choices
// @Description Retrieves the choices of a published question in insertion order
// @Tags choices
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ChoiceResponse} "Choices retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid question ID"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id}/choices [get]
func (c *QuestionController) ListChoices(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	choices, err := c.questionService.ListChoices(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ChoiceResponse, 0, len(choices))
	for _, choice := range choices {
		responses = append(responses, dto.FromChoice(choice))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// AddChoice adds a choice to a question
// @Summary Add a choice
// @Description Adds a choice to a question. The question may still be unpublished.
// @Tags choices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param request body dto.CreateChoiceRequest true "Choice information"
// @Success 201 {object} dto.APIResponse{data=dto.ChoiceResponse} "Choice created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 409 {object} dto.ErrorResponse "Choice already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id}/choices [post]
func (c *QuestionController) AddChoice(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateChoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid choice data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	choice, err := c.questionService.AddChoice(ctx, id, req.ChoiceText)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromChoice(choice),
		Timestamp: time.Now(),
	})
}

// Vote records a vote for a choice of a published question
// @Summary Vote on a question
// @Description Records a vote for one choice of a published question
// @Tags choices
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param request body dto.VoteRequest true "Vote information"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Vote recorded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Question or choice not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id}/vote [post]
func (c *QuestionController) Vote(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid vote data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.questionService.Vote(ctx, id, req.ChoiceID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Vote recorded"},
		Timestamp: time.Now(),
	})
}

// parseIDParam parses a numeric path parameter, writing the error
// response itself when parsing fails.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid question ID")
		errorDetail = errorDetail.WithDetails("Question ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
