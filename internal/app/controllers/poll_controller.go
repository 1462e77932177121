package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alpersoy/polls/internal/app/models"
	"github.com/alpersoy/polls/internal/app/services"
	"github.com/alpersoy/polls/internal/pkg/apperrors"
)

// PollController serves the HTML poll pages: index, detail, results and
// the vote form handler.
type PollController struct {
	questionService *services.QuestionService
}

// NewPollController creates a new PollController
func NewPollController(questionService *services.QuestionService) *PollController {
	return &PollController{
		questionService: questionService,
	}
}

// Index renders the list of published questions, newest first. When no
// question is published it renders the empty-state message instead.
func (c *PollController) Index(ctx *gin.Context) {
	questions, err := c.questionService.ListLatestQuestions(ctx, 0)
	if err != nil {
		ctx.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"Questions": questions,
	})
}

// Detail renders a published question with its vote form. Unpublished
// or unknown questions get a 404.
func (c *PollController) Detail(ctx *gin.Context) {
	question, ok := c.lookupQuestion(ctx)
	if !ok {
		return
	}

	ctx.HTML(http.StatusOK, "detail.html", gin.H{
		"Question": question,
	})
}

// Results renders the vote tally of a published question
func (c *PollController) Results(ctx *gin.Context) {
	question, ok := c.lookupQuestion(ctx)
	if !ok {
		return
	}

	ctx.HTML(http.StatusOK, "results.html", gin.H{
		"Question": question,
	})
}

// Vote records a vote from the detail page form and redirects to the
// results page. A missing or unknown choice re-renders the detail page
// with an error message.
func (c *PollController) Vote(ctx *gin.Context) {
	question, ok := c.lookupQuestion(ctx)
	if !ok {
		return
	}

	choiceID, err := strconv.ParseInt(ctx.PostForm("choice"), 10, 64)
	if err != nil {
		choiceID = 0 // treated as "no choice selected"
	}

	err = c.questionService.Vote(ctx, question.ID, choiceID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNoChoiceSelected, apperrors.ErrChoiceNotFound) {
			ctx.HTML(http.StatusOK, "detail.html", gin.H{
				"Question":     question,
				"ErrorMessage": "You didn't select a choice.",
			})
			return
		}
		if errors.Is(err, apperrors.ErrQuestionNotFound) {
			ctx.String(http.StatusNotFound, "Not Found")
			return
		}
		ctx.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	// Redirect after POST so a reload doesn't vote twice
	ctx.Redirect(http.StatusSeeOther, "/polls/"+strconv.FormatInt(question.ID, 10)+"/results/")
}

// lookupQuestion resolves the :id path parameter to a published
// question, writing the error response itself when that fails. A
// non-numeric id is indistinguishable from an unknown question.
func (c *PollController) lookupQuestion(ctx *gin.Context) (*models.Question, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.String(http.StatusNotFound, "Not Found")
		return nil, false
	}

	question, err := c.questionService.GetPublishedQuestion(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrQuestionNotFound) || errors.Is(err, services.ErrQuestionValidation) {
			ctx.String(http.StatusNotFound, "Not Found")
			return nil, false
		}
		ctx.String(http.StatusInternalServerError, "Internal Server Error")
		return nil, false
	}

	return question, true
}
