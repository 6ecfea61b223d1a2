package service

import (
	"fmt"
	"strings"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/model"
)

// RoadmapValidationError 聚合一次校验发现的全部问题，调用方可整体返回给客户端排查
type RoadmapValidationError struct {
	Errors []string
}

func (e *RoadmapValidationError) Error() string {
	return "invalid roadmap structure: " + strings.Join(e.Errors, "; ")
}

// ValidateRoadmap 对生成的路线图做结构完整性校验。
// 不短路：遍历全部阶段与题目，收齐所有错误后一次性返回。
func ValidateRoadmap(roadmap *GeneratedRoadmap) []string {
	var errs []string

	if roadmap == nil {
		return []string{"Missing roadmap object."}
	}

	if strings.TrimSpace(roadmap.Skill) == "" {
		errs = append(errs, "Invalid or missing 'skill' field.")
	}
	if strings.TrimSpace(roadmap.Career) == "" {
		errs = append(errs, "Invalid or missing 'career' field.")
	}
	if len(roadmap.Stages) == 0 {
		errs = append(errs, "Missing or empty 'stages' array.")
		return errs
	}

	for i, stage := range roadmap.Stages {
		errs = append(errs, validateStage(i, stage)...)
	}

	return errs
}

func validateStage(i int, stage model.Stage) []string {
	var errs []string

	if strings.TrimSpace(stage.StageName) == "" {
		errs = append(errs, fmt.Sprintf("stages[%d]: Missing 'stage_name'.", i))
	}
	if strings.TrimSpace(stage.RelevanceStatus) == "" {
		errs = append(errs, fmt.Sprintf("stages[%d]: Missing 'relevance_status'.", i))
	}

	if len(stage.KnowledgeDomains) == 0 {
		errs = append(errs, fmt.Sprintf("stages[%d]: Missing or empty 'knowledge_domains'.", i))
	} else {
		for d, domain := range stage.KnowledgeDomains {
			if strings.TrimSpace(domain.Topic) == "" {
				errs = append(errs, fmt.Sprintf("stages[%d].knowledge_domains[%d]: Missing 'topic'.", i, d))
			}
			if len(domain.Resources) == 0 {
				errs = append(errs, fmt.Sprintf("stages[%d].knowledge_domains[%d]: Missing or empty 'resources'.", i, d))
			}
		}
	}

	if len(stage.ExpectedLearningOutcomes) == 0 {
		errs = append(errs, fmt.Sprintf("stages[%d]: Missing 'expected_learning_outcomes'.", i))
	}

	if stage.KnowledgeCheck == nil {
		errs = append(errs, fmt.Sprintf("stages[%d]: Missing 'knowledge_check' object.", i))
		return errs
	}

	questions := stage.KnowledgeCheck.Questions
	if len(questions) == 0 {
		errs = append(errs, fmt.Sprintf("stages[%d]: Missing or empty 'knowledge_check.questions' array.", i))
		return errs
	}
	if len(questions) < 5 {
		errs = append(errs, fmt.Sprintf("stages[%d]: Less than 5 MCQs generated.", i))
	}

	for q, question := range questions {
		if strings.TrimSpace(question.Question) == "" {
			errs = append(errs, fmt.Sprintf("stages[%d].knowledge_check.questions[%d]: Missing 'question' text.", i, q))
		}
		if len(question.Options) < 2 {
			errs = append(errs, fmt.Sprintf("stages[%d].knowledge_check.questions[%d]: Must have at least 2 options.", i, q))
		}
		if !containsOption(question.Options, question.CorrectAnswer) {
			errs = append(errs, fmt.Sprintf("stages[%d].knowledge_check.questions[%d]: 'correct_answer' missing or not in options.", i, q))
		}
	}

	return errs
}

func containsOption(options []string, answer string) bool {
	if strings.TrimSpace(answer) == "" {
		return false
	}
	for _, opt := range options {
		if opt == answer {
			return true
		}
	}
	return false
}
