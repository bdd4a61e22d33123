package systems

import (
	"github.com/charmbracelet/log"

	"github.com/gonewx/duckshot/pkg/components"
	"github.com/gonewx/duckshot/pkg/config"
	"github.com/gonewx/duckshot/pkg/ecs"
	"github.com/gonewx/duckshot/pkg/utils"
)

// LaunchVelocity 根据拖拽起点和当前点计算发射速度
//
// 拉伸向量为 start - now（与拖拽方向相反，像弹弓一样）。
// 长度不超过 MinPull 时视为误触，返回 ok=false；
// 超过 MaxPull 时按方向截断到 MaxPull，再乘以 Power。
//
// 返回:
//   - utils.Vec2: 发射速度
//   - bool: 是否构成一次有效发射
func LaunchVelocity(start, now utils.Vec2, cfg config.SlingshotConfig) (utils.Vec2, bool) {
	pull := start.Sub(now)
	if pull.Len() <= cfg.MinPull {
		return utils.Vec2{}, false
	}
	return pullToVelocity(pull, cfg), true
}

// pullToVelocity 截断拉伸长度并换算为速度（不做阈值判断）
func pullToVelocity(pull utils.Vec2, cfg config.SlingshotConfig) utils.Vec2 {
	return pull.ClampLength(cfg.MaxPull).Scale(cfg.Power)
}

// LaunchListener 发射事件监听（如播放音效）
type LaunchListener func(velocity utils.Vec2, shots int)

// SlingshotSystem 弹弓发射控制系统
//
// 处理指针事件：在小鸭上按下开始拖拽，移动时记录当前位置，松开时计算并发射。
// 拖拽状态存放在回合实体的 SlingshotDragComponent 上。
type SlingshotSystem struct {
	entityManager *ecs.EntityManager
	cfg           config.SlingshotConfig

	onLaunch LaunchListener
}

// NewSlingshotSystem 创建弹弓系统
func NewSlingshotSystem(em *ecs.EntityManager, cfg config.SlingshotConfig) *SlingshotSystem {
	return &SlingshotSystem{
		entityManager: em,
		cfg:           cfg,
	}
}

// SetLaunchListener 设置发射回调，nil 表示不监听
func (s *SlingshotSystem) SetLaunchListener(l LaunchListener) {
	s.onLaunch = l
}

// HandleEvents 按顺序处理本帧的指针事件
func (s *SlingshotSystem) HandleEvents(events []utils.PointerEvent) {
	for _, ev := range events {
		s.HandleEvent(ev)
	}
}

// HandleEvent 处理单个指针事件
// 回合获胜后忽略所有指针输入，直到重开
func (s *SlingshotSystem) HandleEvent(ev utils.PointerEvent) {
	roundID, round, ok := ecs.FirstEntityWith[*components.RoundStateComponent](s.entityManager)
	if !ok || round.Won {
		return
	}
	drag, ok := ecs.GetComponent[*components.SlingshotDragComponent](s.entityManager, roundID)
	if !ok {
		return
	}

	duckID, body, ok := ecs.FirstEntityWith[*components.DuckBodyComponent](s.entityManager)
	if !ok {
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, duckID)
	vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, duckID)
	if pos == nil || vel == nil {
		return
	}

	switch ev.Type {
	case utils.PointerDown:
		if body.Launched || !round.CanShoot() {
			return
		}
		if !utils.SquareAround(pos.X, pos.Y, body.Radius).ContainsPoint(ev.X, ev.Y) {
			return
		}
		drag.Begin(ev.X, ev.Y)

	case utils.PointerMove:
		if drag.Dragging {
			drag.CurrentX, drag.CurrentY = ev.X, ev.Y
		}

	case utils.PointerUp:
		if !drag.Dragging {
			return
		}
		drag.CurrentX, drag.CurrentY = ev.X, ev.Y
		drag.Dragging = false

		v, ok := LaunchVelocity(utils.Vec2{X: drag.StartX, Y: drag.StartY}, utils.Vec2{X: drag.CurrentX, Y: drag.CurrentY}, s.cfg)
		if !ok {
			log.Debug("[SlingshotSystem] 拉伸过短，忽略")
			return
		}

		body.Launch(vel, v.X, v.Y)
		round.Shots++
		log.Debugf("[SlingshotSystem] 发射: v=(%.1f, %.1f), shots=%d/%d", v.X, v.Y, round.Shots, round.MaxShots)

		if s.onLaunch != nil {
			s.onLaunch(v, round.Shots)
		}
	}
}
