package entities

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/duckshot/pkg/components"
	"github.com/gonewx/duckshot/pkg/config"
	"github.com/gonewx/duckshot/pkg/ecs"
)

// mockSpriteLoader 用于测试的贴图加载器
type mockSpriteLoader struct {
	err       error
	requested []string
}

func (m *mockSpriteLoader) LoadRequiredSprite(name string, width, height int) (*ebiten.Image, error) {
	m.requested = append(m.requested, name)
	if m.err != nil {
		return nil, m.err
	}
	return ebiten.NewImage(4, 4), nil
}

func TestNewDuckEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultDuckConfig().Duck

	id, err := NewDuckEntity(em, cfg)
	if err != nil {
		t.Fatalf("NewDuckEntity failed: %v", err)
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		t.Fatal("duck should have PositionComponent")
	}
	if pos.X != 160 || pos.Y != 510 {
		t.Errorf("duck position = (%.0f, %.0f), want (160, 510)", pos.X, pos.Y)
	}

	vel, ok := ecs.GetComponent[*components.VelocityComponent](em, id)
	if !ok || vel.VX != 0 || vel.VY != 0 {
		t.Errorf("duck should start at rest, got %+v", vel)
	}

	body, ok := ecs.GetComponent[*components.DuckBodyComponent](em, id)
	if !ok {
		t.Fatal("duck should have DuckBodyComponent")
	}
	if body.Launched || body.Radius != 22 {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestNewDuckEntityInvalidArgs(t *testing.T) {
	if _, err := NewDuckEntity(nil, config.DefaultDuckConfig().Duck); err == nil {
		t.Error("expected error for nil entity manager")
	}
	if _, err := NewDuckEntity(ecs.NewEntityManager(), config.DuckBodyConfig{StartX: 10, StartY: 10}); err == nil {
		t.Error("expected error for zero radius")
	}
}

func TestNewBathtubEntities(t *testing.T) {
	em := ecs.NewEntityManager()
	loader := &mockSpriteLoader{}
	tub := config.DefaultDuckConfig().Tub

	result, err := NewBathtubEntities(em, loader, tub)
	if err != nil {
		t.Fatalf("NewBathtubEntities failed: %v", err)
	}
	if len(loader.requested) != 1 || loader.requested[0] != "bathtub.png" {
		t.Errorf("requested sprites = %v", loader.requested)
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, result.Sprite)
	if !ok || pos.X != 460 || pos.Y != 165 {
		t.Errorf("sprite origin = %+v, want (460, 165)", pos)
	}

	if len(result.Solids) != len(tub.Solids) {
		t.Fatalf("solids = %d, want %d", len(result.Solids), len(tub.Solids))
	}

	// 左侧桶沿：相对 (70,82) + 原点 (460,165)
	rim, ok := ecs.GetComponent[*components.SolidComponent](em, result.Solids[0])
	if !ok {
		t.Fatal("solid entity should have SolidComponent")
	}
	if rim.Name != "rim_left" || rim.Rect.Left() != 530 || rim.Rect.Top() != 247 || rim.Rect.Width() != 60 {
		t.Errorf("rim_left = %+v", rim)
	}
	if rim.Restitution != 0.62 || rim.Friction != 0.95 {
		t.Errorf("rim_left material = %.2f/%.2f", rim.Restitution, rim.Friction)
	}

	water, ok := ecs.GetComponent[*components.WaterSensorComponent](em, result.Water)
	if !ok {
		t.Fatal("water entity should have WaterSensorComponent")
	}
	if water.Rect.Left() != 580 || water.Rect.Top() != 295 || water.Rect.Width() != 280 || water.Rect.Height() != 130 {
		t.Errorf("water rect = %+v", water.Rect)
	}
}

func TestNewBathtubEntitiesMissingSprite(t *testing.T) {
	em := ecs.NewEntityManager()
	sentinel := errors.New("not found")

	_, err := NewBathtubEntities(em, &mockSpriteLoader{err: sentinel}, config.DefaultDuckConfig().Tub)
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped loader error, got %v", err)
	}
	if em.EntityCount() != 0 {
		t.Errorf("no entities should be created on failure, got %d", em.EntityCount())
	}
}

func TestNewRoundEntity(t *testing.T) {
	em := ecs.NewEntityManager()

	id, err := NewRoundEntity(em, config.DefaultDuckConfig().Round)
	if err != nil {
		t.Fatalf("NewRoundEntity failed: %v", err)
	}

	round, ok := ecs.GetComponent[*components.RoundStateComponent](em, id)
	if !ok || round.MaxShots != 12 || round.Shots != 0 || round.Won {
		t.Errorf("unexpected round state %+v", round)
	}
	if !ecs.HasComponent[*components.SlingshotDragComponent](em, id) {
		t.Error("round entity should carry SlingshotDragComponent")
	}
	if !ecs.HasComponent[*components.TrajectoryPreviewComponent](em, id) {
		t.Error("round entity should carry TrajectoryPreviewComponent")
	}
	timer, ok := ecs.GetComponent[*components.TimerComponent](em, id)
	if !ok || timer.Name != DoneOverlayTimerName || timer.TargetTime != 1.0 {
		t.Errorf("unexpected overlay timer %+v", timer)
	}

	if _, err := NewRoundEntity(em, config.RoundConfig{MaxShots: 0}); err == nil {
		t.Error("expected error for zero max shots")
	}
}
