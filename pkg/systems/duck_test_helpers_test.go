package systems

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/duckshot/pkg/components"
	"github.com/gonewx/duckshot/pkg/config"
	"github.com/gonewx/duckshot/pkg/ecs"
	"github.com/gonewx/duckshot/pkg/entities"
	"github.com/gonewx/duckshot/pkg/utils"
)

// nilSpriteLoader 返回空贴图，测试中不创建 GPU 资源
type nilSpriteLoader struct{}

func (nilSpriteLoader) LoadRequiredSprite(string, int, int) (*ebiten.Image, error) {
	return nil, nil
}

// recordingRecorder 记录上报的回合结果
type recordingRecorder struct {
	events []RoundEvent
}

func (r *recordingRecorder) RecordRound(ev RoundEvent) {
	r.events = append(r.events, ev)
}

// testWorld 默认关卡的完整实体与系统
type testWorld struct {
	em       *ecs.EntityManager
	cfg      *config.DuckConfig
	duck     ecs.EntityID
	round    ecs.EntityID
	physics  *DuckPhysicsSystem
	sling    *SlingshotSystem
	preview  *TrajectorySystem
	rounds   *RoundSystem
	recorder *recordingRecorder
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()

	em := ecs.NewEntityManager()
	cfg := config.DefaultDuckConfig()

	if _, err := entities.NewBathtubEntities(em, nilSpriteLoader{}, cfg.Tub); err != nil {
		t.Fatalf("failed to create bathtub: %v", err)
	}
	duck, err := entities.NewDuckEntity(em, cfg.Duck)
	if err != nil {
		t.Fatalf("failed to create duck: %v", err)
	}
	round, err := entities.NewRoundEntity(em, cfg.Round)
	if err != nil {
		t.Fatalf("failed to create round: %v", err)
	}

	w := &testWorld{
		em:       em,
		cfg:      cfg,
		duck:     duck,
		round:    round,
		recorder: &recordingRecorder{},
	}
	w.physics = NewDuckPhysicsSystem(em, cfg)
	w.sling = NewSlingshotSystem(em, cfg.Slingshot)
	w.preview = NewTrajectorySystem(em, cfg)
	w.rounds = NewRoundSystem(em, w.physics, cfg, w.recorder)
	return w
}

func (w *testWorld) body() *components.DuckBodyComponent {
	c, _ := ecs.GetComponent[*components.DuckBodyComponent](w.em, w.duck)
	return c
}

func (w *testWorld) pos() *components.PositionComponent {
	c, _ := ecs.GetComponent[*components.PositionComponent](w.em, w.duck)
	return c
}

func (w *testWorld) vel() *components.VelocityComponent {
	c, _ := ecs.GetComponent[*components.VelocityComponent](w.em, w.duck)
	return c
}

func (w *testWorld) state() *components.RoundStateComponent {
	c, _ := ecs.GetComponent[*components.RoundStateComponent](w.em, w.round)
	return c
}

func (w *testWorld) drag() *components.SlingshotDragComponent {
	c, _ := ecs.GetComponent[*components.SlingshotDragComponent](w.em, w.round)
	return c
}

// shoot 模拟一次完整的拖拽手势
func (w *testWorld) shoot(fromX, fromY, toX, toY float64) {
	w.sling.HandleEvents([]utils.PointerEvent{
		{Type: utils.PointerDown, X: fromX, Y: fromY},
		{Type: utils.PointerMove, X: toX, Y: toY},
		{Type: utils.PointerUp, X: toX, Y: toY},
	})
}
