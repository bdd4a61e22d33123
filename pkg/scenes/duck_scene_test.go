package scenes

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/duckshot/pkg/components"
	"github.com/gonewx/duckshot/pkg/config"
	"github.com/gonewx/duckshot/pkg/ecs"
	"github.com/gonewx/duckshot/pkg/game"
	"github.com/gonewx/duckshot/pkg/storage"
	"github.com/gonewx/duckshot/pkg/systems"
	"github.com/gonewx/duckshot/pkg/utils"
)

type stubSpriteLoader struct {
	err error
}

func (l stubSpriteLoader) LoadRequiredSprite(name string, width, height int) (*ebiten.Image, error) {
	if l.err != nil {
		return nil, l.err
	}
	return nil, nil
}

type recordingSounds struct {
	played []string
}

func (r *recordingSounds) PlaySound(name string) bool {
	r.played = append(r.played, name)
	return true
}

type memoryStore struct {
	rounds []storage.RoundResult
	err    error
}

func (m *memoryStore) SaveRound(r storage.RoundResult) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.rounds = append(m.rounds, r)
	return int64(len(m.rounds)), nil
}

func newTestScene(t *testing.T, sounds *recordingSounds, store *memoryStore, settings *game.SettingsManager) *DuckScene {
	t.Helper()

	deps := DuckSceneDeps{
		Level:     config.DefaultDuckConfig(),
		LevelName: "bathtub",
		Sprites:   stubSpriteLoader{},
		Settings:  settings,
	}
	// 避免把 nil 指针装进接口
	if sounds != nil {
		deps.Sounds = sounds
	}
	if store != nil {
		deps.History = store
	}

	s, err := NewDuckScene(deps)
	if err != nil {
		t.Fatalf("NewDuckScene failed: %v", err)
	}
	return s
}

func shotEvents(fromX, fromY, toX, toY float64) []utils.PointerEvent {
	return []utils.PointerEvent{
		{Type: utils.PointerDown, X: fromX, Y: fromY},
		{Type: utils.PointerMove, X: toX, Y: toY},
		{Type: utils.PointerUp, X: toX, Y: toY},
	}
}

func TestNewDuckSceneErrors(t *testing.T) {
	tests := []struct {
		name        string
		deps        DuckSceneDeps
		errContains string
	}{
		{"缺少关卡", DuckSceneDeps{Sprites: stubSpriteLoader{}}, "level config"},
		{"缺少贴图加载器", DuckSceneDeps{Level: config.DefaultDuckConfig()}, "sprite loader"},
		{
			"浴缸贴图缺失",
			DuckSceneDeps{Level: config.DefaultDuckConfig(), Sprites: stubSpriteLoader{err: game.ErrAssetNotFound}},
			"bathtub sprite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDuckScene(tt.deps)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

func TestDuckSceneImplementsSceneInterfaces(t *testing.T) {
	s := newTestScene(t, nil, nil, nil)

	var _ game.Scene = s
	var _ game.Finishable = s
	var _ game.Saveable = s
	var _ systems.RoundRecorder = s
}

func TestDuckSceneLaunchPlaysQuack(t *testing.T) {
	sounds := &recordingSounds{}
	s := newTestScene(t, sounds, nil, nil)

	s.step(shotEvents(160, 510, 100, 560), config.DeltaTime)

	if len(sounds.played) != 1 || sounds.played[0] != game.SoundQuack {
		t.Errorf("played = %v, want [%s]", sounds.played, game.SoundQuack)
	}

	// 拉伸过短不发射，也不播放音效
	s.Restart()
	sounds.played = nil
	s.step(shotEvents(160, 510, 165, 512), config.DeltaTime)
	if len(sounds.played) != 0 {
		t.Errorf("short drag should be silent, played %v", sounds.played)
	}
}

func TestDuckSceneQuitRecordsAbandonedRound(t *testing.T) {
	store := &memoryStore{}
	s := newTestScene(t, nil, store, nil)

	s.step(shotEvents(160, 510, 100, 560), config.DeltaTime)
	s.step(nil, config.DeltaTime)
	s.Quit()

	if !s.QuitRequested() {
		t.Error("QuitRequested should be true after Quit")
	}
	if s.Won() {
		t.Error("round should not be won")
	}
	if len(store.rounds) != 1 {
		t.Fatalf("recorded %d rounds, want 1", len(store.rounds))
	}
	got := store.rounds[0]
	if got.Won || got.Shots != 1 || got.Level != "bathtub" {
		t.Errorf("recorded %+v, want abandoned bathtub round with 1 shot", got)
	}

	// 退出后帧更新被忽略，SaveOnExit 不会重复上报
	s.Update(config.DeltaTime)
	if !s.SaveOnExit() {
		t.Error("SaveOnExit without settings should succeed")
	}
	if len(store.rounds) != 1 {
		t.Errorf("recorded %d rounds after SaveOnExit, want 1", len(store.rounds))
	}
}

func TestDuckSceneQuitWithoutShotsRecordsNothing(t *testing.T) {
	store := &memoryStore{}
	s := newTestScene(t, nil, store, nil)

	s.Quit()
	if len(store.rounds) != 0 {
		t.Errorf("recorded %d rounds, want 0", len(store.rounds))
	}
}

func TestDuckSceneRecordWin(t *testing.T) {
	sounds := &recordingSounds{}
	store := &memoryStore{}
	s := newTestScene(t, sounds, store, nil)

	s.RecordRound(systems.RoundEvent{Type: systems.RoundWon, Shots: 3, Elapsed: 2.5})

	if len(sounds.played) != 1 || sounds.played[0] != game.SoundSplash {
		t.Errorf("played = %v, want [%s]", sounds.played, game.SoundSplash)
	}
	if len(store.rounds) != 1 {
		t.Fatalf("recorded %d rounds, want 1", len(store.rounds))
	}
	got := store.rounds[0]
	if !got.Won || got.Shots != 3 || got.Duration != 2500*time.Millisecond {
		t.Errorf("recorded %+v, want won in 3 shots, 2.5s", got)
	}
}

func TestDuckSceneHistoryErrorIsNotFatal(t *testing.T) {
	store := &memoryStore{err: errors.New("disk full")}
	s := newTestScene(t, nil, store, nil)

	s.RecordRound(systems.RoundEvent{Type: systems.RoundAbandoned, Shots: 1})
	if len(store.rounds) != 0 {
		t.Errorf("failed store should keep nothing, got %d", len(store.rounds))
	}
}

func TestDuckSceneToggleTrajectory(t *testing.T) {
	settings, err := game.NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager failed: %v", err)
	}
	s := newTestScene(t, nil, nil, settings)

	if !s.trajectory.Enabled() {
		t.Fatal("trajectory preview should follow default settings (enabled)")
	}

	s.ToggleTrajectory()
	if s.trajectory.Enabled() || settings.GetSettings().ShowTrajectory {
		t.Error("toggle should disable the preview and update settings")
	}

	s.ToggleTrajectory()
	if !s.trajectory.Enabled() || !settings.GetSettings().ShowTrajectory {
		t.Error("second toggle should enable the preview again")
	}

	if !s.SaveOnExit() {
		t.Error("SaveOnExit in memory-only settings mode should succeed")
	}
}

func TestDuckSceneToggleTrajectoryWithoutSettings(t *testing.T) {
	s := newTestScene(t, nil, nil, nil)

	s.ToggleTrajectory()
	if s.trajectory.Enabled() {
		t.Error("toggle without settings should still disable the preview")
	}
}

// dropDuckInWater 把已发射的小鸭放进水面中央并推进一帧
func dropDuckInWater(t *testing.T, s *DuckScene) {
	t.Helper()
	duckID, body, ok := ecs.FirstEntityWith[*components.DuckBodyComponent](s.entityManager)
	if !ok {
		t.Fatal("duck entity not found")
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, duckID)
	pos.X, pos.Y = 720, 360
	body.Launched = true

	s.step(nil, config.DeltaTime)
	if !s.Won() {
		t.Fatal("duck in water should win the round")
	}
}

func TestDuckSceneMobileTapRestartsAfterWin(t *testing.T) {
	t.Setenv(utils.MobileEmulateEnv, "1")
	s := newTestScene(t, nil, nil, nil)
	dropDuckInWater(t, s)

	s.step([]utils.PointerEvent{{Type: utils.PointerDown, X: 160, Y: 510}}, config.DeltaTime)
	if s.Won() {
		t.Error("tap after win should restart the round on mobile")
	}

	// 重开的那次点击不会开始拖拽
	_, drag, _ := ecs.FirstEntityWith[*components.SlingshotDragComponent](s.entityManager)
	if drag.Dragging {
		t.Error("restart tap should not start a drag")
	}
}

func TestDuckSceneDesktopTapKeepsWin(t *testing.T) {
	t.Setenv(utils.MobileEmulateEnv, "")
	s := newTestScene(t, nil, nil, nil)
	dropDuckInWater(t, s)

	s.step([]utils.PointerEvent{{Type: utils.PointerDown, X: 160, Y: 510}}, config.DeltaTime)
	if !s.Won() {
		t.Error("desktop should stay won until R is pressed")
	}
}

func TestDuckSceneDrawsWithFont(t *testing.T) {
	face, err := game.NewResourceManager(nil, nil).LoadDefaultFont(22)
	if err != nil {
		t.Fatalf("LoadDefaultFont failed: %v", err)
	}

	s, err := NewDuckScene(DuckSceneDeps{
		Level:   config.DefaultDuckConfig(),
		Sprites: stubSpriteLoader{},
		Font:    face,
	})
	if err != nil {
		t.Fatalf("NewDuckScene failed: %v", err)
	}
	// 获胜后 HUD 两行文字都用字体绘制
	dropDuckInWater(t, s)
	s.Draw(ebiten.NewImage(config.GameWindowWidth, config.GameWindowHeight))
}

func TestDuckSceneToggleSound(t *testing.T) {
	settings, err := game.NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager failed: %v", err)
	}
	s := newTestScene(t, nil, nil, settings)

	s.ToggleSound()
	if settings.GetSettings().SoundEnabled {
		t.Error("first toggle should mute")
	}
	s.ToggleSound()
	if !settings.GetSettings().SoundEnabled {
		t.Error("second toggle should unmute")
	}

	// 没有设置管理器时什么也不做
	newTestScene(t, nil, nil, nil).ToggleSound()
}
