package util

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidSkill      = errors.New("invalid skill key")
	ErrResultNotFound    = errors.New("no result found for this skill")
	ErrRoadmapNotFound   = errors.New("no roadmap found for this skill")
	ErrStageNotFound     = errors.New("stage index out of range")
	ErrGenerationFailed  = errors.New("unable to generate roadmap, please try again")
	ErrCareerNotFound    = errors.New("career not found in skill dataset")
	ErrNoCareerSelected  = errors.New("user does not have a career assigned yet")
	ErrSuggestionNoMatch = errors.New("no career match found")
)
