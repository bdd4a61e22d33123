package systems

import (
	"github.com/gonewx/duckshot/pkg/components"
	"github.com/gonewx/duckshot/pkg/config"
	"github.com/gonewx/duckshot/pkg/ecs"
	"github.com/gonewx/duckshot/pkg/utils"
)

// TrajectorySystem 轨迹预览系统
//
// 拖拽过程中按发射速度做无碰撞的自由落体前向模拟，结果写入
// TrajectoryPreviewComponent 仅供渲染，不修改小鸭状态。
type TrajectorySystem struct {
	entityManager *ecs.EntityManager

	slingshot config.SlingshotConfig
	preview   config.PreviewConfig
	gravity   float64

	enabled bool
}

// NewTrajectorySystem 创建轨迹预览系统
func NewTrajectorySystem(em *ecs.EntityManager, cfg *config.DuckConfig) *TrajectorySystem {
	return &TrajectorySystem{
		entityManager: em,
		slingshot:     cfg.Slingshot,
		preview:       cfg.Preview,
		gravity:       cfg.Physics.Gravity,
		enabled:       true,
	}
}

// SetEnabled 开关轨迹预览（对应设置项 ShowTrajectory）
func (s *TrajectorySystem) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Enabled 轨迹预览是否开启
func (s *TrajectorySystem) Enabled() bool {
	return s.enabled
}

// Update 重新计算预览点
func (s *TrajectorySystem) Update() {
	roundID, round, ok := ecs.FirstEntityWith[*components.RoundStateComponent](s.entityManager)
	if !ok {
		return
	}
	preview, ok := ecs.GetComponent[*components.TrajectoryPreviewComponent](s.entityManager, roundID)
	if !ok {
		return
	}
	preview.Points = preview.Points[:0]

	drag, ok := ecs.GetComponent[*components.SlingshotDragComponent](s.entityManager, roundID)
	if !ok || !drag.Dragging || round.Won || !s.enabled {
		return
	}

	duckID, _, ok := ecs.FirstEntityWith[*components.DuckBodyComponent](s.entityManager)
	if !ok {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, duckID)
	if !ok {
		return
	}

	pull := utils.Vec2{X: drag.StartX, Y: drag.StartY}.Sub(utils.Vec2{X: drag.CurrentX, Y: drag.CurrentY})
	if pull.Len() <= s.preview.MinPull {
		return
	}
	v := pullToVelocity(pull, s.slingshot)
	preview.Points = PredictTrajectory(preview.Points, utils.Vec2{X: pos.X, Y: pos.Y}, v, s.gravity, s.preview.Steps, s.preview.Dt)
}

// PredictTrajectory 自由落体前向模拟（先加速再积分位置，与物理系统一致）
// 结果追加到 dst 后返回
func PredictTrajectory(dst []components.PreviewPoint, p, v utils.Vec2, gravity float64, steps int, dt float64) []components.PreviewPoint {
	for i := 0; i < steps; i++ {
		v.Y += gravity * dt
		p.X += v.X * dt
		p.Y += v.Y * dt
		dst = append(dst, components.PreviewPoint{X: p.X, Y: p.Y})
	}
	return dst
}
