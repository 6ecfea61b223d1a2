package service

import (
	"testing"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/model"
	"github.com/stretchr/testify/assert"
)

func validStage() model.Stage {
	questions := make([]model.Question, 5)
	for i := range questions {
		questions[i] = model.Question{
			Question:      "What is a wireframe?",
			Options:       []string{"A layout sketch", "A database", "A compiler", "A font"},
			CorrectAnswer: "A layout sketch",
		}
	}
	return model.Stage{
		StageName:       "Beginner -> Intermediate",
		RelevanceStatus: model.RelevanceRequired,
		Description:     "Foundations of visual design.",
		KnowledgeDomains: []model.KnowledgeDomain{
			{Topic: "Color theory", Resources: []string{"Khan Academy color basics"}},
		},
		ExpectedLearningOutcomes: []string{"Explain the color wheel"},
		KnowledgeCheck: &model.KnowledgeCheck{
			Instructions: "Answer 10 reflective MCQs to test your understanding.",
			Questions:    questions,
		},
	}
}

func validGenerated() *GeneratedRoadmap {
	return &GeneratedRoadmap{
		Skill:  "artistic",
		Career: "Graphic Designer",
		Stages: []model.Stage{validStage(), validStage()},
	}
}

func TestValidateRoadmap_Valid(t *testing.T) {
	errs := ValidateRoadmap(validGenerated())
	assert.Empty(t, errs)
}

func TestValidateRoadmap_NilRoadmap(t *testing.T) {
	errs := ValidateRoadmap(nil)
	assert.Equal(t, []string{"Missing roadmap object."}, errs)
}

func TestValidateRoadmap_MissingTopLevelFields(t *testing.T) {
	roadmap := validGenerated()
	roadmap.Skill = ""
	roadmap.Career = "  "

	errs := ValidateRoadmap(roadmap)
	assert.Contains(t, errs, "Invalid or missing 'skill' field.")
	assert.Contains(t, errs, "Invalid or missing 'career' field.")
}

func TestValidateRoadmap_EmptyStages(t *testing.T) {
	roadmap := validGenerated()
	roadmap.Stages = nil

	errs := ValidateRoadmap(roadmap)
	assert.Equal(t, []string{"Missing or empty 'stages' array."}, errs)
}

func TestValidateRoadmap_StageFieldErrorsArePathQualified(t *testing.T) {
	roadmap := validGenerated()
	roadmap.Stages[1].StageName = ""
	roadmap.Stages[1].RelevanceStatus = ""
	roadmap.Stages[1].ExpectedLearningOutcomes = nil

	errs := ValidateRoadmap(roadmap)
	assert.Contains(t, errs, "stages[1]: Missing 'stage_name'.")
	assert.Contains(t, errs, "stages[1]: Missing 'relevance_status'.")
	assert.Contains(t, errs, "stages[1]: Missing 'expected_learning_outcomes'.")
}

func TestValidateRoadmap_KnowledgeDomainErrors(t *testing.T) {
	roadmap := validGenerated()
	roadmap.Stages[0].KnowledgeDomains = []model.KnowledgeDomain{
		{Topic: "", Resources: nil},
	}

	errs := ValidateRoadmap(roadmap)
	assert.Contains(t, errs, "stages[0].knowledge_domains[0]: Missing 'topic'.")
	assert.Contains(t, errs, "stages[0].knowledge_domains[0]: Missing or empty 'resources'.")
}

func TestValidateRoadmap_MissingKnowledgeCheck(t *testing.T) {
	roadmap := validGenerated()
	roadmap.Stages[0].KnowledgeCheck = nil

	errs := ValidateRoadmap(roadmap)
	assert.Contains(t, errs, "stages[0]: Missing 'knowledge_check' object.")
}

func TestValidateRoadmap_TooFewQuestions(t *testing.T) {
	roadmap := validGenerated()
	roadmap.Stages[1].KnowledgeCheck.Questions = roadmap.Stages[1].KnowledgeCheck.Questions[:3]

	errs := ValidateRoadmap(roadmap)
	assert.Contains(t, errs, "stages[1]: Less than 5 MCQs generated.")
}

func TestValidateRoadmap_EmptyQuestionsArray(t *testing.T) {
	roadmap := validGenerated()
	roadmap.Stages[0].KnowledgeCheck.Questions = nil

	errs := ValidateRoadmap(roadmap)
	assert.Contains(t, errs, "stages[0]: Missing or empty 'knowledge_check.questions' array.")
}

func TestValidateRoadmap_QuestionErrors(t *testing.T) {
	roadmap := validGenerated()
	roadmap.Stages[0].KnowledgeCheck.Questions[3] = model.Question{
		Question:      "",
		Options:       []string{"only one"},
		CorrectAnswer: "not present",
	}

	errs := ValidateRoadmap(roadmap)
	assert.Contains(t, errs, "stages[0].knowledge_check.questions[3]: Missing 'question' text.")
	assert.Contains(t, errs, "stages[0].knowledge_check.questions[3]: Must have at least 2 options.")
	assert.Contains(t, errs, "stages[0].knowledge_check.questions[3]: 'correct_answer' missing or not in options.")
}

func TestValidateRoadmap_CollectsAllErrors(t *testing.T) {
	// 不短路：多个阶段的错误都要出现
	roadmap := validGenerated()
	roadmap.Skill = ""
	roadmap.Stages[0].StageName = ""
	roadmap.Stages[1].KnowledgeCheck = nil

	errs := ValidateRoadmap(roadmap)
	assert.Len(t, errs, 3)
}
