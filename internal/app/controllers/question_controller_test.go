package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpersoy/polls/internal/app/models/dto"
)

func (e *testEnv) doJSON(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	e.router.ServeHTTP(w, req)
	return w
}

// login obtains an admin token through the auth endpoint
func (e *testEnv) login(t *testing.T) string {
	t.Helper()

	w := e.doJSON(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{
		Username: "admin",
		Password: "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data dto.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	return resp.Data.AccessToken
}

func decodeQuestionList(t *testing.T, w *httptest.ResponseRecorder) dto.QuestionListResponse {
	t.Helper()

	var resp struct {
		Data dto.QuestionListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestAPIListQuestionsFiltersUnpublished(t *testing.T) {
	env := newTestEnv(t)
	env.createQuestion(t, "Past one.", -30)
	env.createQuestion(t, "Past two.", -5)
	env.createQuestion(t, "Future question.", 30)

	w := env.doJSON(http.MethodGet, "/api/v1/questions", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decodeQuestionList(t, w)
	require.Len(t, list.Questions, 2)
	assert.Equal(t, "Past two.", list.Questions[0].QuestionText)
	assert.Equal(t, "Past one.", list.Questions[1].QuestionText)
	assert.EqualValues(t, 2, list.TotalItems)
}

func TestAPIListQuestionsRecencyFlag(t *testing.T) {
	env := newTestEnv(t)
	env.createQuestion(t, "Fresh question.", 0)
	env.createQuestion(t, "Stale question.", -5)

	w := env.doJSON(http.MethodGet, "/api/v1/questions", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decodeQuestionList(t, w)
	require.Len(t, list.Questions, 2)
	byText := map[string]bool{}
	for _, q := range list.Questions {
		byText[q.QuestionText] = q.WasPublishedRecently
	}
	assert.True(t, byText["Fresh question."])
	assert.False(t, byText["Stale question."])
}

func TestAPIGetQuestion(t *testing.T) {
	env := newTestEnv(t)
	question := env.createQuestion(t, "Past question.", -5)
	env.createChoice(t, question.ID, "The sky")

	w := env.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/questions/%d", question.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data dto.QuestionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Past question.", resp.Data.QuestionText)
	require.Len(t, resp.Data.Choices, 1)
	assert.Equal(t, "The sky", resp.Data.Choices[0].ChoiceText)
}

func TestAPIGetQuestionErrors(t *testing.T) {
	env := newTestEnv(t)
	future := env.createQuestion(t, "Future question.", 5)

	w := env.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/questions/%d", future.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.doJSON(http.MethodGet, "/api/v1/questions/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.doJSON(http.MethodGet, "/api/v1/questions/not-a-number", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPICreateQuestionRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(http.MethodPost, "/api/v1/questions", "", dto.CreateQuestionRequest{
		QuestionText: "What's new?",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.doJSON(http.MethodPost, "/api/v1/questions", "not-a-valid-token", dto.CreateQuestionRequest{
		QuestionText: "What's new?",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPILoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{
		Username: "admin",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.doJSON(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{
		Username: "someone-else",
		Password: "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPICreateQuestion(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.doJSON(http.MethodPost, "/api/v1/questions", token, dto.CreateQuestionRequest{
		QuestionText: "What's new?",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data dto.QuestionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotZero(t, resp.Data.ID)
	assert.Equal(t, "What's new?", resp.Data.QuestionText)
	assert.True(t, resp.Data.WasPublishedRecently)

	// The fresh question shows up on the public listing right away
	list := env.doJSON(http.MethodGet, "/api/v1/questions", "", nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), "What's new?")
}

func TestAPICreateQuestionValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.doJSON(http.MethodPost, "/api/v1/questions", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPIUpdateAndDeleteQuestion(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)
	question := env.createQuestion(t, "Old text", -1)

	w := env.doJSON(http.MethodPut, fmt.Sprintf("/api/v1/questions/%d", question.ID), token, dto.UpdateQuestionRequest{
		QuestionText: "New text",
	})
	require.Equal(t, http.StatusOK, w.Code)

	got := env.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/questions/%d", question.ID), "", nil)
	assert.Contains(t, got.Body.String(), "New text")

	w = env.doJSON(http.MethodDelete, fmt.Sprintf("/api/v1/questions/%d", question.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.doJSON(http.MethodDelete, fmt.Sprintf("/api/v1/questions/%d", question.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIAddChoice(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)
	question := env.createQuestion(t, "Pick one.", -1)

	w := env.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/questions/%d/choices", question.ID), token, dto.CreateChoiceRequest{
		ChoiceText: "The sky",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Same text on the same question conflicts
	w = env.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/questions/%d/choices", question.ID), token, dto.CreateChoiceRequest{
		ChoiceText: "The sky",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAPIListChoices(t *testing.T) {
	env := newTestEnv(t)
	question := env.createQuestion(t, "Pick one.", -1)
	env.createChoice(t, question.ID, "The sky")
	env.createChoice(t, question.ID, "The sea")

	w := env.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/questions/%d/choices", question.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []dto.ChoiceResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "The sky", resp.Data[0].ChoiceText)
	assert.Equal(t, "The sea", resp.Data[1].ChoiceText)
}

func TestAPIVote(t *testing.T) {
	env := newTestEnv(t)
	question := env.createQuestion(t, "Pick one.", -1)
	choice := env.createChoice(t, question.ID, "The sky")

	w := env.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/questions/%d/vote", question.ID), "", dto.VoteRequest{
		ChoiceID: choice.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	got := env.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/questions/%d", question.ID), "", nil)
	var resp struct {
		Data dto.QuestionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Choices, 1)
	assert.EqualValues(t, 1, resp.Data.Choices[0].Votes)
}

func TestAPIVoteErrors(t *testing.T) {
	env := newTestEnv(t)
	question := env.createQuestion(t, "Pick one.", -1)
	other := env.createQuestion(t, "Pick another.", -1)
	choice := env.createChoice(t, other.ID, "The sky")

	// Choice of another question
	w := env.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/questions/%d/vote", question.ID), "", dto.VoteRequest{
		ChoiceID: choice.ID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Missing choice_id fails binding
	w = env.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/questions/%d/vote", question.ID), "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPIHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
