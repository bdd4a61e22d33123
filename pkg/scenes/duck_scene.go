package scenes

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/duckshot/pkg/config"
	"github.com/gonewx/duckshot/pkg/ecs"
	"github.com/gonewx/duckshot/pkg/entities"
	"github.com/gonewx/duckshot/pkg/game"
	"github.com/gonewx/duckshot/pkg/storage"
	"github.com/gonewx/duckshot/pkg/systems"
	"github.com/gonewx/duckshot/pkg/utils"
)

// SoundPlayer 播放一次性音效
type SoundPlayer interface {
	PlaySound(name string) bool
}

// RoundStore 回合历史写入接口（*storage.Store 实现）
type RoundStore interface {
	SaveRound(r storage.RoundResult) (int64, error)
}

// DuckSceneDeps 创建小鸭场景所需的依赖
//
// 除 Level 和 Sprites 外都可以为 nil：
//   - Sounds 为 nil 时静音
//   - Settings 为 nil 时使用默认设置且不持久化
//   - History 为 nil 时不记录回合历史
//   - Font 为 nil 时用调试字体绘制 HUD
type DuckSceneDeps struct {
	Level     *config.DuckConfig
	LevelName string
	Sprites   entities.SpriteLoader
	Sounds    SoundPlayer
	Settings  *game.SettingsManager
	History   RoundStore
	Font      *text.GoTextFace
}

// DuckScene 浴缸小鸭弹弓场景
//
// 每帧顺序：键盘（R 重开、Esc 退出、T 切换预览、M 静音）-> 指针事件 -> 物理与回合 -> 轨迹预览。
type DuckScene struct {
	entityManager *ecs.EntityManager

	physics    *systems.DuckPhysicsSystem
	slingshot  *systems.SlingshotSystem
	trajectory *systems.TrajectorySystem
	round      *systems.RoundSystem
	render     *systems.DuckRenderSystem

	pointer *utils.PointerTracker
	mobile  bool // 没有键盘：获胜后点击任意位置重开

	levelName string
	sounds    SoundPlayer
	settings  *game.SettingsManager
	history   RoundStore

	quitRequested bool
}

// NewDuckScene 创建场景并生成全部实体
// 浴缸贴图缺失时返回错误（贴图是必需资源）
func NewDuckScene(deps DuckSceneDeps) (*DuckScene, error) {
	if deps.Level == nil {
		return nil, fmt.Errorf("level config is nil")
	}
	if deps.Sprites == nil {
		return nil, fmt.Errorf("sprite loader is nil")
	}

	em := ecs.NewEntityManager()
	if _, err := entities.NewBathtubEntities(em, deps.Sprites, deps.Level.Tub); err != nil {
		return nil, err
	}
	if _, err := entities.NewDuckEntity(em, deps.Level.Duck); err != nil {
		return nil, fmt.Errorf("failed to create duck: %w", err)
	}
	if _, err := entities.NewRoundEntity(em, deps.Level.Round); err != nil {
		return nil, fmt.Errorf("failed to create round: %w", err)
	}

	s := &DuckScene{
		entityManager: em,
		pointer:       utils.NewPointerTracker(),
		mobile:        utils.IsMobile(),
		levelName:     deps.LevelName,
		sounds:        deps.Sounds,
		settings:      deps.Settings,
		history:       deps.History,
	}

	s.physics = systems.NewDuckPhysicsSystem(em, deps.Level)
	s.slingshot = systems.NewSlingshotSystem(em, deps.Level.Slingshot)
	s.slingshot.SetLaunchListener(s.onLaunch)
	s.trajectory = systems.NewTrajectorySystem(em, deps.Level)
	s.trajectory.SetEnabled(s.showTrajectory())
	s.round = systems.NewRoundSystem(em, s.physics, deps.Level, s)
	s.render = systems.NewDuckRenderSystem(em, s.round)
	s.render.SetFontFace(deps.Font)
	if s.mobile {
		s.render.SetWinMessage(systems.MobileWinMessage)
	}

	log.Infof("[DuckScene] 场景已创建: level=%s, maxShots=%d", s.levelName, deps.Level.Round.MaxShots)
	return s, nil
}

// Update 推进一帧
func (s *DuckScene) Update(deltaTime float64) {
	if s.quitRequested {
		return
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.Quit()
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.round.Restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		s.ToggleTrajectory()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		s.ToggleSound()
	}

	s.step(s.pointer.Poll(), deltaTime)
}

// step 处理指针事件并推进模拟（不读取 ebiten 输入）
func (s *DuckScene) step(events []utils.PointerEvent, deltaTime float64) {
	if s.mobile && s.round.Won() && hasPointerDown(events) {
		s.round.Restart()
		// 这次点击只用于重开，不开始拖拽
		events = nil
	}
	s.slingshot.HandleEvents(events)
	s.round.Update(deltaTime)
	s.trajectory.Update()
}

// Draw 绘制场景
func (s *DuckScene) Draw(screen *ebiten.Image) {
	s.render.Draw(screen)
}

// Quit 放弃当前回合并请求退出
func (s *DuckScene) Quit() {
	s.round.Abandon()
	s.quitRequested = true
	log.Infof("[DuckScene] 请求退出: won=%v", s.round.Won())
}

// Restart 重开回合
func (s *DuckScene) Restart() {
	s.round.Restart()
}

// ToggleTrajectory 切换轨迹预览并写入设置
func (s *DuckScene) ToggleTrajectory() {
	enabled := !s.showTrajectory()
	s.trajectory.SetEnabled(enabled)
	if s.settings != nil {
		s.settings.SetShowTrajectory(enabled)
	}
	log.Debugf("[DuckScene] 轨迹预览: %v", enabled)
}

// ToggleSound 切换音效开关（需要设置管理器，否则无效）
func (s *DuckScene) ToggleSound() {
	if s.settings == nil {
		return
	}
	enabled := !s.settings.GetSettings().SoundEnabled
	s.settings.SetSoundEnabled(enabled)
	log.Debugf("[DuckScene] 音效: %v", enabled)
}

func (s *DuckScene) showTrajectory() bool {
	if s.settings == nil {
		return s.trajectory.Enabled()
	}
	return s.settings.GetSettings().ShowTrajectory
}

// QuitRequested 实现 game.Finishable
func (s *DuckScene) QuitRequested() bool {
	return s.quitRequested
}

// Won 实现 game.Finishable
func (s *DuckScene) Won() bool {
	return s.round.Won()
}

// SaveOnExit 实现 game.Saveable
// 窗口直接关闭时也要上报放弃的回合
func (s *DuckScene) SaveOnExit() bool {
	s.round.Abandon()
	if s.settings == nil {
		return true
	}
	if err := s.settings.Save(); err != nil {
		log.Warnf("[DuckScene] 保存设置失败: %v", err)
		return false
	}
	return true
}

// RecordRound 实现 systems.RoundRecorder：播放音效并写入历史
func (s *DuckScene) RecordRound(ev systems.RoundEvent) {
	if ev.Type == systems.RoundWon && s.sounds != nil {
		s.sounds.PlaySound(game.SoundSplash)
	}
	if s.history == nil {
		return
	}

	result := storage.RoundResult{
		Level:    s.levelName,
		Shots:    ev.Shots,
		Won:      ev.Type == systems.RoundWon,
		Duration: time.Duration(ev.Elapsed * float64(time.Second)),
	}
	if _, err := s.history.SaveRound(result); err != nil {
		log.Warnf("[DuckScene] 记录回合失败: %v", err)
		return
	}
	log.Debugf("[DuckScene] 已记录回合: %s, shots=%d", ev.Type, ev.Shots)
}

func hasPointerDown(events []utils.PointerEvent) bool {
	for _, ev := range events {
		if ev.Type == utils.PointerDown {
			return true
		}
	}
	return false
}

func (s *DuckScene) onLaunch(_ utils.Vec2, _ int) {
	if s.sounds != nil {
		s.sounds.PlaySound(game.SoundQuack)
	}
}
