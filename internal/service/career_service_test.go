package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/repository"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const suggestionCSV = `A/L Stream,Specialization,Suggested Careers,Justification
Physical Science,Combined Mathematics,"['Software Engineer', 'Data Scientist']","Strong math foundation."
Arts,Media,"Graphic Designer, Film Director","Creative specialization."
`

const skillCSV = `career,Problem-Solving,Analytical,Artistic,Leadership,Justification
Software Engineer,90,85,40,60,"Engineering career profile."
Graphic Designer,55,150,-5,40,
`

func writeTempCSVs(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	suggestPath := filepath.Join(dir, "career_suggestion.csv")
	skillPath := filepath.Join(dir, "career_skill_data.csv")
	require.NoError(t, os.WriteFile(suggestPath, []byte(suggestionCSV), 0644))
	require.NoError(t, os.WriteFile(skillPath, []byte(skillCSV), 0644))
	return suggestPath, skillPath
}

func newCareerHarness(t *testing.T) (*CareerService, *repository.UserRepository) {
	t.Helper()

	db := openTestDB(t)
	userRepo := repository.NewUserRepository(db)
	suggestPath, skillPath := writeTempCSVs(t)
	seedUser(t, db, "")
	return NewCareerService(userRepo, nil, suggestPath, skillPath), userRepo
}

func TestSuggest_NormalizedMatch(t *testing.T) {
	svc, _ := newCareerHarness(t)

	// 大小写和空白差异也能匹配
	suggestions, err := svc.Suggest(context.Background(), "physical science", "combined  mathematics")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, []string{"Software Engineer", "Data Scientist"}, suggestions[0].Careers)
	assert.Equal(t, "Strong math foundation.", suggestions[0].Justification)
}

func TestSuggest_BareCommaSeparatedCareers(t *testing.T) {
	svc, _ := newCareerHarness(t)

	suggestions, err := svc.Suggest(context.Background(), "Arts", "Media")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, []string{"Graphic Designer", "Film Director"}, suggestions[0].Careers)
}

func TestSuggest_NoMatch(t *testing.T) {
	svc, _ := newCareerHarness(t)

	_, err := svc.Suggest(context.Background(), "Commerce", "Accounting")
	assert.ErrorIs(t, err, util.ErrSuggestionNoMatch)
}

func TestChooseCareer_SavesClampedSkills(t *testing.T) {
	svc, userRepo := newCareerHarness(t)

	result, err := svc.ChooseCareer(1, "graphic designer")
	require.NoError(t, err)

	assert.Equal(t, "graphic designer", result.Career)
	// 超界分值钳制到 0-100
	assert.Equal(t, 100, result.RequiredSkills["Analytical"])
	assert.Equal(t, 0, result.RequiredSkills["Artistic"])
	assert.Equal(t, 55, result.RequiredSkills["Problem-Solving"])
	assert.Equal(t, 40, result.RequiredSkills["Leadership"])
	assert.Contains(t, result.Justification, "graphic designer")

	user, err := userRepo.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "graphic designer", user.Career)
	assert.Equal(t, 100, user.RequiredSkills["Analytical"])
}

func TestChooseCareer_DatasetJustificationWins(t *testing.T) {
	svc, _ := newCareerHarness(t)

	result, err := svc.ChooseCareer(1, "Software Engineer")
	require.NoError(t, err)
	assert.Equal(t, "Engineering career profile.", result.Justification)
}

func TestChooseCareer_UnknownCareer(t *testing.T) {
	svc, _ := newCareerHarness(t)

	_, err := svc.ChooseCareer(1, "Astronaut")
	assert.ErrorIs(t, err, util.ErrCareerNotFound)
}

func TestChooseCareer_UnknownUser(t *testing.T) {
	svc, _ := newCareerHarness(t)

	_, err := svc.ChooseCareer(9999, "Software Engineer")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
