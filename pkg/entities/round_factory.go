package entities

import (
	"fmt"

	"github.com/gonewx/duckshot/pkg/components"
	"github.com/gonewx/duckshot/pkg/config"
	"github.com/gonewx/duckshot/pkg/ecs"
)

// DoneOverlayTimerName 获胜遮罩计时器名称
const DoneOverlayTimerName = "done_overlay"

// NewRoundEntity 创建回合单例实体
// 携带回合状态、弹弓拖拽状态、轨迹预览和获胜遮罩计时器
func NewRoundEntity(em *ecs.EntityManager, cfg config.RoundConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg.MaxShots < 1 {
		return 0, fmt.Errorf("invalid max shots %d", cfg.MaxShots)
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.RoundStateComponent{MaxShots: cfg.MaxShots})
	em.AddComponent(entityID, &components.SlingshotDragComponent{})
	em.AddComponent(entityID, &components.TrajectoryPreviewComponent{})
	em.AddComponent(entityID, &components.TimerComponent{
		Name:       DoneOverlayTimerName,
		TargetTime: cfg.DoneOverlayDelay,
	})
	return entityID, nil
}
