package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/model"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/repository"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonServer(t *testing.T, path string, payload map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, path, r.URL.Path)
		json.NewEncoder(w).Encode(payload)
	}))
}

func TestAnalyticalSubmitAnswer_SavesResultOnCompletion(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "Data Scientist")
	resultRepo := repository.NewResultRepository(db)

	server := jsonServer(t, "/submit-answer", map[string]interface{}{
		"status": "completed",
		"evaluation": map[string]interface{}{
			"category_scores": map[string]interface{}{"logical_reasoning": 82.0},
			"overall_score":   76.0,
			"level":           "Advanced",
			"feedback":        "well done",
		},
	})
	defer server.Close()

	svc := NewAnalyticalService(NewModelClient(), resultRepo, server.URL)
	data, err := svc.SubmitAnswer(context.Background(), user.ID, SubmitAnalyticalAnswerRequest{
		QuestionID: "q-12", SelectedAnswer: "B",
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", data["status"])

	record, err := resultRepo.GetCurrentResult(user.ID, model.SkillAnalytical)
	require.NoError(t, err)
	assert.Equal(t, 76.0, record.OverallScore)
	assert.Equal(t, "Advanced", record.Level)
	assert.Equal(t, model.TraitMap{"logical_reasoning": 82}, record.Traits)
}

func TestAnalyticalSubmitAnswer_NoSaveMidQuiz(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "Data Scientist")
	resultRepo := repository.NewResultRepository(db)

	server := jsonServer(t, "/submit-answer", map[string]interface{}{
		"status":   "in_progress",
		"question": map[string]interface{}{"id": "q-13"},
	})
	defer server.Close()

	svc := NewAnalyticalService(NewModelClient(), resultRepo, server.URL)
	_, err := svc.SubmitAnswer(context.Background(), user.ID, SubmitAnalyticalAnswerRequest{QuestionID: "q-12"})
	require.NoError(t, err)

	_, err = resultRepo.GetCurrentResult(user.ID, model.SkillAnalytical)
	assert.ErrorIs(t, err, util.ErrResultNotFound)
}

func TestLeadershipSubmitAnswer_SavesFlatResults(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "HR Manager")
	resultRepo := repository.NewResultRepository(db)

	server := jsonServer(t, "/answer", map[string]interface{}{
		"results": map[string]interface{}{
			"decision_making":     7.0,
			"empathy":             8.5,
			"conflict_management": 6.0,
			"strategic_thinking":  7.5,
			"overall_score":       7.25,
			"leadership_level":    "Advanced",
		},
	})
	defer server.Close()

	svc := NewLeadershipService(NewModelClient(), resultRepo, server.URL)
	_, err := svc.SubmitAnswer(context.Background(), user.ID, SubmitLeadershipAnswerRequest{
		SessionID: "s-1", Weights: map[string]interface{}{"a": 1.0},
	})
	require.NoError(t, err)

	summary, err := svc.GetSummary(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 7.25, summary.OverallScore)
	assert.Equal(t, "Advanced", summary.Level)
	assert.Equal(t, 8.5, summary.Traits["empathy"])
	assert.NotContains(t, summary.Traits, "overall_score")
}

func TestProblemSolvingStartQuiz_RequiresChosenCareer(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "")

	svc := NewProblemSolvingService(NewModelClient(), repository.NewResultRepository(db), repository.NewUserRepository(db), "http://unused")
	_, err := svc.StartQuiz(context.Background(), user.ID)
	assert.ErrorIs(t, err, util.ErrNoCareerSelected)
}

func TestProblemSolvingSaveResult_NormalizesSummary(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "Software Engineer")
	resultRepo := repository.NewResultRepository(db)

	svc := NewProblemSolvingService(NewModelClient(), resultRepo, repository.NewUserRepository(db), "http://unused")
	result, err := svc.SaveResult(user.ID, SaveQuizResultRequest{
		Category: "problemSolving",
		Summary: map[string]interface{}{
			"subskill_summary": map[string]interface{}{
				"debugging": map[string]interface{}{"score": 72.0},
				"design":    64.0,
			},
			"overall_score": 68.0,
			"level":         "Intermediate",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.TraitMap{"debugging": 72, "design": 64}, result.Traits)

	record, err := resultRepo.GetCurrentResult(user.ID, model.SkillProblemSolving)
	require.NoError(t, err)
	assert.Equal(t, 68.0, record.OverallScore)
}

func TestProblemSolvingSaveResult_RejectsUnknownCategory(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "Software Engineer")

	svc := NewProblemSolvingService(NewModelClient(), repository.NewResultRepository(db), repository.NewUserRepository(db), "http://unused")
	_, err := svc.SaveResult(user.ID, SaveQuizResultRequest{
		Category: "cooking",
		Summary:  map[string]interface{}{"overall_score": 50.0},
	})
	assert.ErrorIs(t, err, util.ErrInvalidSkill)
}

func TestModelClient_SurfacesUpstreamDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{"detail": "session expired"})
	}))
	defer server.Close()

	client := NewModelClient()
	_, err := client.Post(context.Background(), server.URL+"/answer", map[string]interface{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session expired")
}
