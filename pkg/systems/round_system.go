package systems

import (
	"github.com/charmbracelet/log"

	"github.com/gonewx/duckshot/pkg/components"
	"github.com/gonewx/duckshot/pkg/config"
	"github.com/gonewx/duckshot/pkg/ecs"
)

// RoundEventType 回合结果类型
type RoundEventType int

const (
	// RoundWon 小鸭落入水面
	RoundWon RoundEventType = iota
	// RoundAbandoned 已发射过但未获胜就重开或退出
	RoundAbandoned
)

// String 返回事件名称
func (t RoundEventType) String() string {
	if t == RoundWon {
		return "won"
	}
	return "abandoned"
}

// RoundEvent 一个回合的结果
type RoundEvent struct {
	Type    RoundEventType
	Shots   int
	Elapsed float64 // 秒
}

// RoundRecorder 接收回合结果（写入历史、播放音效等）
type RoundRecorder interface {
	RecordRound(ev RoundEvent)
}

// RoundSystem 回合生命周期系统
//
// 状态机: idle -> in-flight -> won（终态），或在小鸭静止后自动复位回 idle。
// 获胜后物理积分与获胜检测全部停止，只有 Restart 能离开 won 状态。
// 获胜后 DONE 遮罩计时器以帧时间累加，达到延迟后由渲染系统显示遮罩。
type RoundSystem struct {
	entityManager *ecs.EntityManager
	physics       *DuckPhysicsSystem
	recorder      RoundRecorder

	settleFrames int
	phase        components.RoundPhase // 上一帧结束时的阶段，用于记录阶段变化
}

// NewRoundSystem 创建回合系统
//
// 参数:
//   - em: 实体管理器
//   - physics: 小鸭物理系统，回合未结束时每帧调用
//   - cfg: 关卡配置
//   - recorder: 回合结果接收者，可为 nil
func NewRoundSystem(em *ecs.EntityManager, physics *DuckPhysicsSystem, cfg *config.DuckConfig, recorder RoundRecorder) *RoundSystem {
	return &RoundSystem{
		entityManager: em,
		physics:       physics,
		recorder:      recorder,
		settleFrames:  cfg.Physics.SettleFrames,
	}
}

// Update 推进一帧
func (s *RoundSystem) Update(dt float64) {
	s.advance(dt)
	s.trackPhase()
}

func (s *RoundSystem) advance(dt float64) {
	roundID, round, ok := ecs.FirstEntityWith[*components.RoundStateComponent](s.entityManager)
	if !ok {
		return
	}

	if round.Won {
		if timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, roundID); ok {
			timer.Advance(dt)
		}
		return
	}

	round.Elapsed += dt
	s.physics.Update(dt)

	duckID, body, ok := ecs.FirstEntityWith[*components.DuckBodyComponent](s.entityManager)
	if !ok || !body.Launched {
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, duckID)
	vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, duckID)

	if s.touchesWater(pos) {
		round.Won = true
		if timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, roundID); ok {
			timer.Reset()
		}
		log.Infof("[RoundSystem] 获胜: shots=%d, elapsed=%.1fs", round.Shots, round.Elapsed)
		s.report(round, RoundWon)
		return
	}

	if body.RestCounter > s.settleFrames {
		log.Debugf("[RoundSystem] 小鸭静止，复位: shots=%d/%d", round.Shots, round.MaxShots)
		body.Reset(pos, vel)
	}
}

// touchesWater 小鸭圆心（取整后）是否落在任一水面感应区内
func (s *RoundSystem) touchesWater(pos *components.PositionComponent) bool {
	x, y := float64(int(pos.X)), float64(int(pos.Y))
	for _, id := range ecs.GetEntitiesWith1[*components.WaterSensorComponent](s.entityManager) {
		water, _ := ecs.GetComponent[*components.WaterSensorComponent](s.entityManager, id)
		if water.Rect.ContainsPoint(x, y) {
			return true
		}
	}
	return false
}

// Restart 重开回合（R 键）
// 清除获胜标记和发射次数，小鸭回到发射台，取消拖拽和预览，重置遮罩计时器
func (s *RoundSystem) Restart() {
	roundID, round, ok := ecs.FirstEntityWith[*components.RoundStateComponent](s.entityManager)
	if !ok {
		return
	}
	s.Abandon()

	round.Shots = 0
	round.Won = false
	round.Elapsed = 0
	round.Recorded = false

	if drag, ok := ecs.GetComponent[*components.SlingshotDragComponent](s.entityManager, roundID); ok {
		drag.Cancel()
	}
	if preview, ok := ecs.GetComponent[*components.TrajectoryPreviewComponent](s.entityManager, roundID); ok {
		preview.Points = preview.Points[:0]
	}
	if timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, roundID); ok {
		timer.Reset()
	}

	if duckID, body, ok := ecs.FirstEntityWith[*components.DuckBodyComponent](s.entityManager); ok {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, duckID)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, duckID)
		body.Reset(pos, vel)
	}

	log.Info("[RoundSystem] 回合重开")
	s.trackPhase()
}

// trackPhase 根据回合与小鸭状态更新阶段，阶段变化时写日志
func (s *RoundSystem) trackPhase() {
	_, round, ok := ecs.FirstEntityWith[*components.RoundStateComponent](s.entityManager)
	if !ok {
		return
	}
	launched := false
	if _, body, ok := ecs.FirstEntityWith[*components.DuckBodyComponent](s.entityManager); ok {
		launched = body.Launched
	}
	if p := round.Phase(launched); p != s.phase {
		log.Debugf("[RoundSystem] 阶段: %s -> %s (shots=%d/%d)", s.phase, p, round.Shots, round.MaxShots)
		s.phase = p
	}
}

// Abandon 放弃当前回合（重开或退出前调用）
// 已发射过且未获胜时上报 RoundAbandoned，每个回合最多上报一次
func (s *RoundSystem) Abandon() {
	_, round, ok := ecs.FirstEntityWith[*components.RoundStateComponent](s.entityManager)
	if !ok || round.Won || round.Shots == 0 {
		return
	}
	s.report(round, RoundAbandoned)
}

// Won 当前回合是否已获胜
func (s *RoundSystem) Won() bool {
	_, round, ok := ecs.FirstEntityWith[*components.RoundStateComponent](s.entityManager)
	return ok && round.Won
}

// OverlayReady DONE 遮罩是否应显示
func (s *RoundSystem) OverlayReady() bool {
	roundID, round, ok := ecs.FirstEntityWith[*components.RoundStateComponent](s.entityManager)
	if !ok || !round.Won {
		return false
	}
	timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, roundID)
	return ok && timer.IsReady
}

func (s *RoundSystem) report(round *components.RoundStateComponent, t RoundEventType) {
	if round.Recorded {
		return
	}
	round.Recorded = true
	if s.recorder != nil {
		s.recorder.RecordRound(RoundEvent{Type: t, Shots: round.Shots, Elapsed: round.Elapsed})
	}
}
