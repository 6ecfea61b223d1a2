// @title AuraSkill 职业引导平台 API
// @version 1.0
// @description 面向 A/L 毕业生的职业与技能评估后端服务。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"github.com/Senil-d/auraskill-career-guidance-platform/internal/app"
	"github.com/Senil-d/auraskill-career-guidance-platform/internal/config"
	"github.com/Senil-d/auraskill-career-guidance-platform/pkg/configwatcher"
	"github.com/Senil-d/auraskill-career-guidance-platform/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 配置热更新
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(updated interface{}) {
		if newCfg, ok := updated.(*config.Config); ok {
			application.ApplyConfig(newCfg)
		}
	})

	application.Run()
}
