package entities

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/gonewx/duckshot/pkg/components"
	"github.com/gonewx/duckshot/pkg/config"
	"github.com/gonewx/duckshot/pkg/ecs"
)

// NewDuckEntity 创建小鸭实体
// 小鸭创建在发射台位置，静止且未发射
//
// 参数:
//   - em: 实体管理器
//   - cfg: 小鸭刚体配置
//
// 返回:
//   - ecs.EntityID: 小鸭实体ID
//   - error: 参数无效时返回错误
func NewDuckEntity(em *ecs.EntityManager, cfg config.DuckBodyConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg.Radius <= 0 {
		return 0, fmt.Errorf("invalid duck radius %.2f", cfg.Radius)
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.PositionComponent{X: cfg.StartX, Y: cfg.StartY})
	em.AddComponent(entityID, &components.VelocityComponent{})
	em.AddComponent(entityID, &components.DuckBodyComponent{
		Radius: cfg.Radius,
		StartX: cfg.StartX,
		StartY: cfg.StartY,
	})

	log.Debugf("[DuckFactory] 创建小鸭: id=%d, start=(%.0f, %.0f), r=%.0f", entityID, cfg.StartX, cfg.StartY, cfg.Radius)
	return entityID, nil
}
