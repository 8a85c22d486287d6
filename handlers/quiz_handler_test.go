package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"quizcrafter/database"
	"quizcrafter/handlers"
	"quizcrafter/routes"
	"quizcrafter/services"
)

type envelope struct {
	OK     bool            `json:"ok"`
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Field   string `json:"field"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(filepath.Join(t.TempDir(), "quizcrafter.sqlite"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	quizHandler := handlers.NewQuizHandler(services.NewQuizService(db))
	resultHandler := handlers.NewResultHandler(services.NewResultService(db))

	router := gin.New()
	routes.SetupRoutes(router, quizHandler, resultHandler, "test")
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var env envelope
	if err := json.Unmarshal(recorder.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope from %q: %v", recorder.Body.String(), err)
	}
	return recorder, env
}

func createQuizViaAPI(t *testing.T, router *gin.Engine, title string) string {
	t.Helper()
	recorder, env := doJSON(t, router, http.MethodPost, "/api/quizzes", gin.H{"title": title})
	if recorder.Code != http.StatusCreated || !env.OK {
		t.Fatalf("create quiz failed: %d %s", recorder.Code, recorder.Body.String())
	}
	var data struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode quiz summary: %v", err)
	}
	return data.ID
}

func TestCreateQuizReturnsEnvelope(t *testing.T) {
	router := newTestRouter(t)

	recorder, env := doJSON(t, router, http.MethodPost, "/api/quizzes", gin.H{
		"title":       "  HTTP Quiz  ",
		"description": "desc",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if !env.OK || env.Errors != nil {
		t.Fatalf("expected ok envelope, got %s", recorder.Body.String())
	}

	var data struct {
		Title         string `json:"title"`
		QuestionCount int    `json:"questionCount"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Title != "HTTP Quiz" || data.QuestionCount != 0 {
		t.Fatalf("unexpected payload: %+v", data)
	}
}

func TestCreateQuizValidationErrors(t *testing.T) {
	router := newTestRouter(t)

	recorder, env := doJSON(t, router, http.MethodPost, "/api/quizzes", gin.H{"title": "   "})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if env.OK || len(env.Errors) == 0 {
		t.Fatalf("expected error envelope, got %s", recorder.Body.String())
	}
	if env.Errors[0].Field != "title" || env.Errors[0].Code != "required" {
		t.Fatalf("expected title/required, got %+v", env.Errors[0])
	}
}

func TestGetQuizNotFoundEnvelope(t *testing.T) {
	router := newTestRouter(t)

	recorder, env := doJSON(t, router, http.MethodGet, "/api/quizzes/unknown", nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
	if env.OK || env.Errors[0].Code != "not_found" || env.Errors[0].Field != "quizId" {
		t.Fatalf("expected quizId/not_found, got %s", recorder.Body.String())
	}
}

func TestSaveQuestionCollectsValidationErrors(t *testing.T) {
	router := newTestRouter(t)
	quizID := createQuizViaAPI(t, router, "Validated")

	recorder, env := doJSON(t, router, http.MethodPost, "/api/quizzes/"+quizID+"/questions", gin.H{
		"text": "",
		"options": []gin.H{
			{"text": "Same", "isCorrect": false},
			{"text": "same", "isCorrect": false},
		},
	})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", recorder.Code, recorder.Body.String())
	}

	found := map[string]bool{}
	for _, e := range env.Errors {
		found[e.Field+"/"+e.Code] = true
	}
	for _, want := range []string{"text/required", "options[1].text/duplicate", "options/correct_count"} {
		if !found[want] {
			t.Fatalf("missing %s in %s", want, recorder.Body.String())
		}
	}
}

func TestSaveQuestionAndUpdateQuizFlow(t *testing.T) {
	router := newTestRouter(t)
	quizID := createQuizViaAPI(t, router, "Flow")

	recorder, env := doJSON(t, router, http.MethodPost, "/api/quizzes/"+quizID+"/questions", gin.H{
		"text": "Pick",
		"options": []gin.H{
			{"text": "Yes", "isCorrect": true, "orderIndex": 0},
			{"text": "No", "isCorrect": false, "orderIndex": 1},
		},
	})
	if recorder.Code != http.StatusOK || !env.OK {
		t.Fatalf("save question failed: %d %s", recorder.Code, recorder.Body.String())
	}

	// Omitting description must not clear it; sending null must.
	recorder, env = doJSON(t, router, http.MethodPut, "/api/quizzes/"+quizID, gin.H{"title": "Renamed"})
	if recorder.Code != http.StatusOK || !env.OK {
		t.Fatalf("update failed: %d %s", recorder.Code, recorder.Body.String())
	}
	var data struct {
		Title         string `json:"title"`
		QuestionCount int    `json:"questionCount"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Title != "Renamed" || data.QuestionCount != 1 {
		t.Fatalf("unexpected update payload: %+v", data)
	}
}

func TestReorderRejectsBadDirection(t *testing.T) {
	router := newTestRouter(t)
	quizID := createQuizViaAPI(t, router, "Directions")

	recorder, env := doJSON(t, router, http.MethodPost,
		"/api/quizzes/"+quizID+"/questions/whatever/reorder", gin.H{"direction": "sideways"})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if env.Errors[0].Field != "direction" || env.Errors[0].Code != "invalid" {
		t.Fatalf("expected direction/invalid, got %+v", env.Errors[0])
	}
}

func TestResultsSummaryZeroAttempts(t *testing.T) {
	router := newTestRouter(t)
	quizID := createQuizViaAPI(t, router, "Never played")

	recorder, env := doJSON(t, router, http.MethodGet, "/api/quizzes/"+quizID+"/results", nil)
	if recorder.Code != http.StatusOK || !env.OK {
		t.Fatalf("summary failed: %d %s", recorder.Code, recorder.Body.String())
	}

	var data struct {
		QuizID       string          `json:"quizId"`
		AttemptCount int             `json:"attemptCount"`
		LastResult   json.RawMessage `json:"lastResult"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.AttemptCount != 0 || data.LastResult != nil {
		t.Fatalf("expected empty summary, got %s", env.Data)
	}
}

func TestSaveResultsEndToEnd(t *testing.T) {
	router := newTestRouter(t)
	quizID := createQuizViaAPI(t, router, "Played")

	_, env := doJSON(t, router, http.MethodPost, "/api/quizzes/"+quizID+"/questions", gin.H{
		"text": "Pick",
		"options": []gin.H{
			{"text": "Yes", "isCorrect": true, "orderIndex": 0},
			{"text": "No", "isCorrect": false, "orderIndex": 1},
		},
	})
	var question struct {
		ID      string `json:"id"`
		Options []struct {
			ID        string `json:"id"`
			IsCorrect bool   `json:"isCorrect"`
		} `json:"options"`
	}
	if err := json.Unmarshal(env.Data, &question); err != nil {
		t.Fatalf("decode question: %v", err)
	}
	var correctID string
	for _, option := range question.Options {
		if option.IsCorrect {
			correctID = option.ID
		}
	}

	recorder, env := doJSON(t, router, http.MethodPost, "/api/quizzes/"+quizID+"/results", gin.H{
		"answers": []gin.H{
			{"questionId": question.ID, "selectedOptionId": correctID, "correctOptionId": correctID},
		},
	})
	if recorder.Code != http.StatusCreated || !env.OK {
		t.Fatalf("save results failed: %d %s", recorder.Code, recorder.Body.String())
	}

	var result struct {
		CorrectCount int `json:"correctCount"`
		TotalCount   int `json:"totalCount"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.CorrectCount != 1 || result.TotalCount != 1 {
		t.Fatalf("expected 1/1, got %+v", result)
	}
}
