package systems

import (
	"math"

	"github.com/gonewx/duckshot/pkg/components"
	"github.com/gonewx/duckshot/pkg/config"
	"github.com/gonewx/duckshot/pkg/ecs"
	"github.com/gonewx/duckshot/pkg/utils"
)

// axisEpsilon 圆心落在矩形边线延长线上时代替 0 的位移，避免碰撞轴无法判定
const axisEpsilon = 1e-6

// DuckPhysicsSystem 小鸭刚体积分系统
//
// 职责：
// - 对已发射的小鸭做重力积分（每步拆分为固定数量的子步）
// - 解析与屏幕边界、浴缸静态碰撞体的碰撞
// - 维护静止计数（RestCounter），供回合系统判断是否复位
//
// 本系统不关心回合是否已获胜：获胜后由 RoundSystem 停止调用。
type DuckPhysicsSystem struct {
	entityManager *ecs.EntityManager

	physics config.PhysicsConfig
	bounds  config.MaterialConfig

	// 屏幕边界
	left, top, right, bottom float64
}

// NewDuckPhysicsSystem 创建小鸭物理系统
//
// 参数:
//   - em: 实体管理器
//   - cfg: 关卡配置（使用 physics 与 bounds 段）
func NewDuckPhysicsSystem(em *ecs.EntityManager, cfg *config.DuckConfig) *DuckPhysicsSystem {
	l, t, r, b := config.WorldBounds()
	return &DuckPhysicsSystem{
		entityManager: em,
		physics:       cfg.Physics,
		bounds:        cfg.Bounds,
		left:          l,
		top:           t,
		right:         r,
		bottom:        b,
	}
}

// Update 推进一个物理步
//
// 参数:
//   - dt: 帧间隔时间（秒），内部均分为 Substeps 个子步
func (s *DuckPhysicsSystem) Update(dt float64) {
	solids := s.collectSolids()

	entities := ecs.GetEntitiesWith3[*components.DuckBodyComponent, *components.PositionComponent, *components.VelocityComponent](s.entityManager)
	for _, id := range entities {
		body, _ := ecs.GetComponent[*components.DuckBodyComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		if !body.Launched {
			continue
		}
		s.stepBody(body, pos, vel, solids, dt)
	}
}

// stepBody 对单个刚体执行一个完整物理步（全部子步 + 静止计数）
func (s *DuckPhysicsSystem) stepBody(body *components.DuckBodyComponent, pos *components.PositionComponent,
	vel *components.VelocityComponent, solids []*components.SolidComponent, dt float64) {

	subDt := dt / float64(s.physics.Substeps)
	for i := 0; i < s.physics.Substeps; i++ {
		vel.VY += s.physics.Gravity * subDt
		pos.X += vel.VX * subDt
		pos.Y += vel.VY * subDt

		s.resolveBounds(pos, vel, body.Radius)
		for _, solid := range solids {
			resolveSolid(pos, vel, body.Radius, solid)
		}
	}

	// 静止计数在全部子步之后更新，每个物理步最多 +1
	if math.Abs(vel.VX) < s.physics.SettleSpeed && math.Abs(vel.VY) < s.physics.SettleSpeed {
		body.RestCounter++
	} else {
		body.RestCounter = 0
	}
}

// resolveBounds 屏幕边界碰撞：位置夹回边缘，法向反弹，切向衰减
func (s *DuckPhysicsSystem) resolveBounds(pos *components.PositionComponent, vel *components.VelocityComponent, r float64) {
	rest, fric := s.bounds.Restitution, s.bounds.Friction

	if pos.X < s.left+r {
		pos.X = s.left + r
		vel.VX *= -rest
		vel.VY *= fric
	}
	if pos.X > s.right-r {
		pos.X = s.right - r
		vel.VX *= -rest
		vel.VY *= fric
	}
	if pos.Y < s.top+r {
		pos.Y = s.top + r
		vel.VY *= -rest
		vel.VX *= fric
	}
	if pos.Y > s.bottom-r {
		pos.Y = s.bottom - r
		vel.VY *= -rest
		vel.VX *= fric
	}
}

// resolveSolid 圆与单个矩形碰撞体的碰撞解析
//
// 以圆心到矩形最近点的位移判定碰撞轴：|dx| > |dy| 时沿水平轴推出，否则沿垂直轴。
// 推出后圆心与最近点在该轴上恰好相距 r。
//
// 返回:
//   - bool: 是否发生碰撞
func resolveSolid(pos *components.PositionComponent, vel *components.VelocityComponent, r float64, solid *components.SolidComponent) bool {
	hit, closest, delta := utils.CircleRectHit(pos.X, pos.Y, r, solid.Rect)
	if !hit {
		return false
	}

	dx, dy := delta.X, delta.Y
	rect := solid.Rect
	if dx == 0 && rect.Left() < pos.X && pos.X < rect.Right() {
		dx = axisEpsilon
	}
	if dy == 0 && rect.Top() < pos.Y && pos.Y < rect.Bottom() {
		dy = axisEpsilon
	}

	if math.Abs(dx) > math.Abs(dy) {
		if pos.X < closest.X {
			pos.X = closest.X - r
		} else {
			pos.X = closest.X + r
		}
		vel.VX *= -solid.Restitution
		vel.VY *= solid.Friction
	} else {
		if pos.Y < closest.Y {
			pos.Y = closest.Y - r
		} else {
			pos.Y = closest.Y + r
		}
		vel.VY *= -solid.Restitution
		vel.VX *= solid.Friction
	}
	return true
}

// collectSolids 收集所有静态碰撞体（按实体ID顺序，保证解析顺序稳定）
func (s *DuckPhysicsSystem) collectSolids() []*components.SolidComponent {
	ids := ecs.GetEntitiesWith1[*components.SolidComponent](s.entityManager)
	solids := make([]*components.SolidComponent, 0, len(ids))
	for _, id := range ids {
		if solid, ok := ecs.GetComponent[*components.SolidComponent](s.entityManager, id); ok {
			solids = append(solids, solid)
		}
	}
	return solids
}
