package controllers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpersoy/polls/internal/app/controllers"
	"github.com/alpersoy/polls/internal/app/models"
	"github.com/alpersoy/polls/internal/app/repositories"
	sqliterepo "github.com/alpersoy/polls/internal/app/repositories/sqlite"
	"github.com/alpersoy/polls/internal/app/routes"
	"github.com/alpersoy/polls/internal/app/services"
	"github.com/alpersoy/polls/internal/db"
	"github.com/alpersoy/polls/internal/middleware"
	"github.com/alpersoy/polls/internal/pkg/auth"
	"github.com/alpersoy/polls/web"
)

type testEnv struct {
	router *gin.Engine
	repos  *repositories.Repositories
}

// newTestEnv wires the full router against an in-memory store, the same
// assembly the bootstrap package performs for the real server.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	repos := sqliterepo.NewRepositories(database.DB)
	questionService := services.NewQuestionService(repos.QuestionRepository, repos.ChoiceRepository)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "polls-test",
	})
	authService, err := services.NewAuthService(jwtService, "admin", "secret123", zerolog.Nop())
	require.NoError(t, err)

	router := gin.New()
	router.SetHTMLTemplate(web.Templates())
	routes.SetupRouter(
		router,
		controllers.NewPollController(questionService),
		controllers.NewQuestionController(questionService),
		controllers.NewAuthController(authService),
		middleware.NewAuthMiddleware(jwtService),
	)

	return &testEnv{router: router, repos: repos}
}

// createQuestion inserts a question published the given number of days
// from now. Negative offsets are in the past, positive in the future.
func (e *testEnv) createQuestion(t *testing.T, text string, days int) *models.Question {
	t.Helper()

	question := &models.Question{
		QuestionText: text,
		PubDate:      time.Now().UTC().Add(time.Duration(days) * 24 * time.Hour),
	}
	require.NoError(t, e.repos.QuestionRepository.Create(context.Background(), question))
	return question
}

func (e *testEnv) createChoice(t *testing.T, questionID int64, text string) *models.Choice {
	t.Helper()

	choice := &models.Choice{QuestionID: questionID, ChoiceText: text}
	require.NoError(t, e.repos.ChoiceRepository.Create(context.Background(), choice))
	return choice
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	e.router.ServeHTTP(w, req)
	return w
}

func TestIndexNoQuestions(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/polls/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No polls are avaliable.")
}

func TestIndexPastQuestion(t *testing.T) {
	env := newTestEnv(t)
	env.createQuestion(t, "Past question.", -30)

	w := env.get("/polls/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Past question.")
}

func TestIndexFutureQuestion(t *testing.T) {
	env := newTestEnv(t)
	env.createQuestion(t, "Future question.", 30)

	w := env.get("/polls/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No polls are avaliable.")
	assert.NotContains(t, w.Body.String(), "Future question.")
}

func TestIndexFutureAndPastQuestions(t *testing.T) {
	env := newTestEnv(t)
	env.createQuestion(t, "Past question.", -30)
	env.createQuestion(t, "Future question.", 30)

	w := env.get("/polls/")
	body := w.Body.String()
	assert.Contains(t, body, "Past question.")
	assert.NotContains(t, body, "Future question.")
}

func TestIndexTwoPastQuestionsNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	env.createQuestion(t, "Past question 1.", -30)
	env.createQuestion(t, "Past question 2.", -5)

	w := env.get("/polls/")
	body := w.Body.String()
	first := strings.Index(body, "Past question 2.")
	second := strings.Index(body, "Past question 1.")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestDetailFutureQuestion(t *testing.T) {
	env := newTestEnv(t)
	question := env.createQuestion(t, "Future question.", 5)

	w := env.get(fmt.Sprintf("/polls/%d/", question.ID))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDetailPastQuestion(t *testing.T) {
	env := newTestEnv(t)
	question := env.createQuestion(t, "Past question.", -5)

	w := env.get(fmt.Sprintf("/polls/%d/", question.ID))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Past question.")
}

func TestDetailUnknownQuestion(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusNotFound, env.get("/polls/42/").Code)
	assert.Equal(t, http.StatusNotFound, env.get("/polls/not-a-number/").Code)
}

func TestResultsFutureQuestion(t *testing.T) {
	env := newTestEnv(t)
	question := env.createQuestion(t, "Future question.", 5)

	w := env.get(fmt.Sprintf("/polls/%d/results/", question.ID))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVoteFlow(t *testing.T) {
	env := newTestEnv(t)
	question := env.createQuestion(t, "Pick one.", -1)
	choice := env.createChoice(t, question.ID, "The sky")

	w := env.postForm(fmt.Sprintf("/polls/%d/vote/", question.ID), url.Values{
		"choice": {fmt.Sprintf("%d", choice.ID)},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, fmt.Sprintf("/polls/%d/results/", question.ID), w.Header().Get("Location"))

	results := env.get(fmt.Sprintf("/polls/%d/results/", question.ID))
	assert.Equal(t, http.StatusOK, results.Code)
	assert.Contains(t, results.Body.String(), "The sky -- 1 votes")
}

func TestVoteWithoutSelection(t *testing.T) {
	env := newTestEnv(t)
	question := env.createQuestion(t, "Pick one.", -1)
	env.createChoice(t, question.ID, "The sky")

	w := env.postForm(fmt.Sprintf("/polls/%d/vote/", question.ID), url.Values{})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You didn&#39;t select a choice.")
}

func TestVoteUnknownChoiceReRendersForm(t *testing.T) {
	env := newTestEnv(t)
	question := env.createQuestion(t, "Pick one.", -1)
	env.createChoice(t, question.ID, "The sky")

	w := env.postForm(fmt.Sprintf("/polls/%d/vote/", question.ID), url.Values{
		"choice": {"9999"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You didn&#39;t select a choice.")
}

func TestVoteOnFutureQuestion(t *testing.T) {
	env := newTestEnv(t)
	question := env.createQuestion(t, "Future question.", 5)
	choice := env.createChoice(t, question.ID, "The sky")

	w := env.postForm(fmt.Sprintf("/polls/%d/vote/", question.ID), url.Values{
		"choice": {fmt.Sprintf("%d", choice.ID)},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
