package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/model"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/repository"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/util"
	"github.com/Senil-d/auraskill-career-guidance-platform/pkg/logger"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const suggestionCacheTTL = 24 * time.Hour

// CareerService 基于本地 CSV 数据集做职业推荐与选定，推荐结果走 Redis 缓存
type CareerService struct {
	userRepo          *repository.UserRepository
	redisClient       *redis.Client
	suggestionCSVPath string
	skillCSVPath      string
}

func NewCareerService(userRepo *repository.UserRepository, redisClient *redis.Client, suggestionCSVPath, skillCSVPath string) *CareerService {
	return &CareerService{
		userRepo:          userRepo,
		redisClient:       redisClient,
		suggestionCSVPath: suggestionCSVPath,
		skillCSVPath:      skillCSVPath,
	}
}

// swagger:model CareerSuggestion
type CareerSuggestion struct {
	Careers       []string `json:"careers"`
	Justification string   `json:"justification"`
}

// ChooseCareerResult 选定职业后写回用户档案的内容
type ChooseCareerResult struct {
	Career         string              `json:"career"`
	RequiredSkills model.SkillScoreMap `json:"requiredSkills"`
	Justification  string              `json:"justification"`
}

// Suggest 按 (A/L stream, specialization) 做归一化子串匹配，命中行聚合为推荐列表。
// 数据集很小且只读，整表扫描即可；同一组合的结果缓存 24h
func (s *CareerService) Suggest(ctx context.Context, alStream, specialization string) ([]CareerSuggestion, error) {
	cacheKey := fmt.Sprintf("career:suggest:%s:%s", normalizeKey(alStream), normalizeKey(specialization))

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var suggestions []CareerSuggestion
			if err := json.Unmarshal([]byte(cached), &suggestions); err == nil {
				return suggestions, nil
			}
		}
	}

	rows, err := readCSV(s.suggestionCSVPath)
	if err != nil {
		return nil, err
	}

	userStream := normalizeKey(alStream)
	userSpec := normalizeKey(specialization)

	var suggestions []CareerSuggestion
	for _, row := range rows {
		stream := normalizeKey(row["A/L Stream"])
		spec := normalizeKey(row["Specialization"])

		if !substringMatch(stream, userStream) || !substringMatch(spec, userSpec) {
			continue
		}

		justification := row["Justification"]
		if justification == "" {
			justification = fmt.Sprintf("Based on your A/L stream '%s' and specialization '%s', these career paths are recommended.", alStream, specialization)
		}

		suggestions = append(suggestions, CareerSuggestion{
			Careers:       parseCareerList(row["Suggested Careers"]),
			Justification: justification,
		})
	}

	if len(suggestions) == 0 {
		return nil, util.ErrSuggestionNoMatch
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(suggestions); err == nil {
			if err := s.redisClient.Set(ctx, cacheKey, data, suggestionCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache career suggestions", zap.Error(err))
			}
		}
	}

	return suggestions, nil
}

// ChooseCareer 在技能数据集中查找所选职业，把四项技能要求（钳制到 0-100）
// 连同说明写回用户档案
func (s *CareerService) ChooseCareer(userID uint, chosenCareer string) (*ChooseCareerResult, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := readCSV(s.skillCSVPath)
	if err != nil {
		return nil, err
	}

	wanted := strings.ToLower(strings.TrimSpace(chosenCareer))
	var matched map[string]string
	for _, row := range rows {
		name := row["career"]
		if name == "" {
			name = row["Career"]
		}
		if strings.ToLower(strings.TrimSpace(name)) == wanted {
			matched = row
			break
		}
	}
	if matched == nil {
		return nil, util.ErrCareerNotFound
	}

	skills := model.SkillScoreMap{
		"Problem-Solving": clampSkillScore(matched["Problem-Solving"]),
		"Analytical":      clampSkillScore(matched["Analytical"]),
		"Artistic":        clampSkillScore(matched["Artistic"]),
		"Leadership":      clampSkillScore(matched["Leadership"]),
	}

	justification := matched["Justification"]
	if justification == "" {
		justification = fmt.Sprintf("Based on the selected career '%s', these skills are recommended.", chosenCareer)
	}

	user.Career = chosenCareer
	user.RequiredSkills = skills
	user.SkillJustification = justification
	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}

	return &ChooseCareerResult{
		Career:         user.Career,
		RequiredSkills: user.RequiredSkills,
		Justification:  user.SkillJustification,
	}, nil
}

// readCSV 读取整个数据集为 header->value 的行列表
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[strings.TrimSpace(col)] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func normalizeKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
}

func substringMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// parseCareerList 兼容 JSON 数组、Python 风格列表和裸逗号分隔三种格式
func parseCareerList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		cleaned := strings.ReplaceAll(raw, "'", `"`)
		var list []string
		if err := json.Unmarshal([]byte(cleaned), &list); err == nil {
			return list
		}
	}

	parts := strings.Split(strings.Trim(raw, "[]"), ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"'`)
		if p != "" {
			list = append(list, p)
		}
	}
	return list
}

func clampSkillScore(val string) int {
	num, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0
	}
	if num < 0 {
		return 0
	}
	if num > 100 {
		return 100
	}
	return num
}
