package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/config"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/model"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/repository"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeGeneratorServer 返回固定路线图 JSON 的聊天补全服务
func fakeGeneratorServer(t *testing.T, roadmap *GeneratedRoadmap) *httptest.Server {
	t.Helper()

	content, err := json.Marshal(roadmap)
	require.NoError(t, err)

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := ChatCompletionResponse{}
		resp.Choices = []struct {
			Message AIChatMessage `json:"message"`
		}{
			{Message: AIChatMessage{Role: "assistant", Content: string(content)}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func newRoadmapHarness(t *testing.T, db *gorm.DB, serverURL string) *RoadmapService {
	t.Helper()

	generator := NewRoadmapGenerator(config.AIConfig{
		BaseURL:     serverURL,
		APIKey:      "test-key",
		Model:       "gpt-test",
		Temperature: 0.65,
	})
	return NewRoadmapService(
		repository.NewRoadmapRepository(db),
		repository.NewResultRepository(db),
		repository.NewUserRepository(db),
		generator,
	)
}

func TestGenerateRoadmap_PersistsValidRoadmap(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "Graphic Designer")

	server := fakeGeneratorServer(t, validGenerated())
	defer server.Close()

	svc := newRoadmapHarness(t, db, server.URL)
	roadmap, err := svc.GenerateRoadmap(context.Background(), user.ID, model.SkillArtistic, model.LevelAdvanced)
	require.NoError(t, err)
	require.NotNil(t, roadmap)

	assert.Equal(t, "Graphic Designer", roadmap.Career)
	assert.Equal(t, model.SkillArtistic, roadmap.Skill)
	assert.Equal(t, model.LevelBeginner, roadmap.CurrentLevel)
	assert.Equal(t, model.LevelAdvanced, roadmap.RequiredLevel)
	assert.Len(t, roadmap.Stages, 2)
	assert.Equal(t, "AI", roadmap.GeneratedBy)

	var count int64
	db.Model(&model.Roadmap{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGenerateRoadmap_CurrentLevelFromStoredResult(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "Graphic Designer")

	resultRepo := repository.NewResultRepository(db)
	_, err := resultRepo.SetCurrentResult(user.ID, model.SkillArtistic, model.SkillResult{
		Traits: model.TraitMap{"Artistic": 8}, OverallScore: 85, Level: "Expert", Feedback: "great",
	})
	require.NoError(t, err)

	server := fakeGeneratorServer(t, validGenerated())
	defer server.Close()

	svc := newRoadmapHarness(t, db, server.URL)
	roadmap, err := svc.GenerateRoadmap(context.Background(), user.ID, model.SkillArtistic, model.LevelAdvanced)
	require.NoError(t, err)

	// Expert 收敛为 Advanced 起点
	assert.Equal(t, model.LevelAdvanced, roadmap.CurrentLevel)
}

func TestGenerateRoadmap_EmptyStagesValidationFailureNotPersisted(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "Graphic Designer")

	invalid := validGenerated()
	invalid.Stages = []model.Stage{}
	server := fakeGeneratorServer(t, invalid)
	defer server.Close()

	svc := newRoadmapHarness(t, db, server.URL)
	roadmap, err := svc.GenerateRoadmap(context.Background(), user.ID, model.SkillArtistic, model.LevelAdvanced)
	require.Error(t, err)
	assert.Nil(t, roadmap)

	var validationErr *RoadmapValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Errors, "Missing or empty 'stages' array.")

	var count int64
	db.Model(&model.Roadmap{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGenerateRoadmap_TooFewQuestionsReportsFullErrorList(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "Graphic Designer")

	invalid := validGenerated()
	invalid.Stages[1].KnowledgeCheck.Questions = invalid.Stages[1].KnowledgeCheck.Questions[:2]
	invalid.Stages[1].RelevanceStatus = ""
	server := fakeGeneratorServer(t, invalid)
	defer server.Close()

	svc := newRoadmapHarness(t, db, server.URL)
	_, err := svc.GenerateRoadmap(context.Background(), user.ID, model.SkillArtistic, model.LevelAdvanced)

	var validationErr *RoadmapValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Errors, "stages[1]: Less than 5 MCQs generated.")
	assert.Contains(t, validationErr.Errors, "stages[1]: Missing 'relevance_status'.")
}

func TestGenerateRoadmap_ParseFailureIsGenerationError(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "Graphic Designer")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := ChatCompletionResponse{}
		resp.Choices = []struct {
			Message AIChatMessage `json:"message"`
		}{
			{Message: AIChatMessage{Content: "no json here"}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := newRoadmapHarness(t, db, server.URL)
	_, err := svc.GenerateRoadmap(context.Background(), user.ID, model.SkillArtistic, model.LevelAdvanced)
	assert.ErrorIs(t, err, util.ErrGenerationFailed)
}

func TestGenerateRoadmap_NoCareerRejectedBeforeGeneration(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "")

	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	svc := newRoadmapHarness(t, db, server.URL)
	_, err := svc.GenerateRoadmap(context.Background(), user.ID, model.SkillArtistic, model.LevelAdvanced)
	assert.ErrorIs(t, err, util.ErrNoCareerSelected)
	assert.False(t, called)
}

func TestGenerateRoadmap_ReplacesExistingRoadmap(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "Graphic Designer")

	server := fakeGeneratorServer(t, validGenerated())
	defer server.Close()

	svc := newRoadmapHarness(t, db, server.URL)

	first, err := svc.GenerateRoadmap(context.Background(), user.ID, model.SkillArtistic, model.LevelIntermediate)
	require.NoError(t, err)

	// 标记一些进度，重新生成后应被丢弃
	viewed := true
	_, err = svc.UpdateProgress(user.ID, model.SkillArtistic, 0, ProgressUpdate{Viewed: &viewed})
	require.NoError(t, err)

	second, err := svc.GenerateRoadmap(context.Background(), user.ID, model.SkillArtistic, model.LevelAdvanced)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, second.Stages[0].Progress.Viewed)

	var count int64
	db.Model(&model.Roadmap{}).Where("user_id = ? AND skill = ?", user.ID, model.SkillArtistic).Count(&count)
	assert.Equal(t, int64(1), count)

	got, err := svc.GetSingleRoadmap(user.ID, model.SkillArtistic)
	require.NoError(t, err)
	assert.Equal(t, model.LevelAdvanced, got.RequiredLevel)
}

func TestGetSingleRoadmap_NotFound(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "Graphic Designer")

	svc := newRoadmapHarness(t, db, "http://unused")
	_, err := svc.GetSingleRoadmap(user.ID, model.SkillAnalytical)
	assert.ErrorIs(t, err, util.ErrRoadmapNotFound)
}

func TestUpdateProgress_SequentialMerge(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "Graphic Designer")

	server := fakeGeneratorServer(t, validGenerated())
	defer server.Close()

	svc := newRoadmapHarness(t, db, server.URL)
	_, err := svc.GenerateRoadmap(context.Background(), user.ID, model.SkillArtistic, model.LevelAdvanced)
	require.NoError(t, err)

	viewed := true
	updated, err := svc.UpdateProgress(user.ID, model.SkillArtistic, 0, ProgressUpdate{Viewed: &viewed})
	require.NoError(t, err)
	assert.True(t, updated.Stages[0].Progress.Viewed)
	assert.False(t, updated.Stages[0].Progress.QuizDone)

	quizDone := true
	updated, err = svc.UpdateProgress(user.ID, model.SkillArtistic, 0, ProgressUpdate{QuizDone: &quizDone})
	require.NoError(t, err)
	assert.True(t, updated.Stages[0].Progress.Viewed)
	assert.True(t, updated.Stages[0].Progress.QuizDone)

	// 另一阶段不受影响
	assert.False(t, updated.Stages[1].Progress.Viewed)

	// 重放同一更新幂等
	updated, err = svc.UpdateProgress(user.ID, model.SkillArtistic, 0, ProgressUpdate{Viewed: &viewed})
	require.NoError(t, err)
	assert.True(t, updated.Stages[0].Progress.Viewed)
	assert.True(t, updated.Stages[0].Progress.QuizDone)

	// 持久化核对
	reloaded, err := svc.GetSingleRoadmap(user.ID, model.SkillArtistic)
	require.NoError(t, err)
	assert.True(t, reloaded.Stages[0].Progress.Viewed)
	assert.True(t, reloaded.Stages[0].Progress.QuizDone)
}

func TestUpdateProgress_StageIndexOutOfRange(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "Graphic Designer")

	server := fakeGeneratorServer(t, validGenerated())
	defer server.Close()

	svc := newRoadmapHarness(t, db, server.URL)
	_, err := svc.GenerateRoadmap(context.Background(), user.ID, model.SkillArtistic, model.LevelAdvanced)
	require.NoError(t, err)

	viewed := true
	_, err = svc.UpdateProgress(user.ID, model.SkillArtistic, 5, ProgressUpdate{Viewed: &viewed})
	assert.ErrorIs(t, err, util.ErrStageNotFound)

	_, err = svc.UpdateProgress(user.ID, model.SkillArtistic, -1, ProgressUpdate{Viewed: &viewed})
	assert.ErrorIs(t, err, util.ErrStageNotFound)
}

func TestGetUserRoadmaps_NewestFirst(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "Graphic Designer")

	artistic := validGenerated()
	serverA := fakeGeneratorServer(t, artistic)
	defer serverA.Close()

	svc := newRoadmapHarness(t, db, serverA.URL)
	_, err := svc.GenerateRoadmap(context.Background(), user.ID, model.SkillArtistic, model.LevelAdvanced)
	require.NoError(t, err)
	_, err = svc.GenerateRoadmap(context.Background(), user.ID, model.SkillAnalytical, model.LevelIntermediate)
	require.NoError(t, err)

	roadmaps, err := svc.GetUserRoadmaps(user.ID)
	require.NoError(t, err)
	assert.Len(t, roadmaps, 2)
}
