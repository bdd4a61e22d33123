package entities

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/gonewx/duckshot/pkg/components"
	"github.com/gonewx/duckshot/pkg/config"
	"github.com/gonewx/duckshot/pkg/ecs"
	"github.com/gonewx/duckshot/pkg/utils"
)

// BathtubEntities 浴缸相关实体ID
type BathtubEntities struct {
	Sprite ecs.EntityID
	Solids []ecs.EntityID
	Water  ecs.EntityID
}

// NewBathtubEntities 创建浴缸贴图、静态碰撞体和水面感应区
//
// 浴缸贴图是必需资源：加载失败时直接返回错误，不创建任何实体。
// 配置中的矩形相对于贴图左上角，这里统一换算为屏幕坐标。
//
// 参数:
//   - em: 实体管理器
//   - loader: 贴图加载器
//   - tub: 浴缸配置
func NewBathtubEntities(em *ecs.EntityManager, loader SpriteLoader, tub config.TubConfig) (*BathtubEntities, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if loader == nil {
		return nil, fmt.Errorf("sprite loader cannot be nil")
	}

	img, err := loader.LoadRequiredSprite(tub.Sprite, tub.Width, tub.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to load bathtub sprite: %w", err)
	}

	originX, originY := tub.Origin()
	result := &BathtubEntities{}

	result.Sprite = em.CreateEntity()
	em.AddComponent(result.Sprite, &components.PositionComponent{X: originX, Y: originY})
	em.AddComponent(result.Sprite, &components.SpriteComponent{Image: img})

	for _, s := range tub.Solids {
		m := s.Material()
		id := em.CreateEntity()
		em.AddComponent(id, &components.SolidComponent{
			Name:        s.Name,
			Rect:        toRect(s.Rect).Offset(originX, originY),
			Restitution: m.Restitution,
			Friction:    m.Friction,
		})
		result.Solids = append(result.Solids, id)
	}

	result.Water = em.CreateEntity()
	em.AddComponent(result.Water, &components.WaterSensorComponent{
		Rect: toRect(tub.Water).Offset(originX, originY),
	})

	log.Debugf("[BathtubFactory] 创建浴缸: origin=(%.0f, %.0f), solids=%d", originX, originY, len(result.Solids))
	return result, nil
}

func toRect(r config.RectConfig) utils.Rect {
	return utils.NewRect(r.X, r.Y, r.W, r.H)
}
