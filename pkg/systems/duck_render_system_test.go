package systems

import (
	"bytes"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gonewx/duckshot/pkg/components"
	"github.com/gonewx/duckshot/pkg/config"
)

func TestHUDText(t *testing.T) {
	tests := []struct {
		round components.RoundStateComponent
		want  string
	}{
		{components.RoundStateComponent{Shots: 0, MaxShots: 12}, "Shots 0/12"},
		{components.RoundStateComponent{Shots: 7, MaxShots: 12}, "Shots 7/12"},
		{components.RoundStateComponent{Shots: 3, MaxShots: 5}, "Shots 3/5"},
	}

	for _, tt := range tests {
		if got := HUDText(&tt.round); got != tt.want {
			t.Errorf("HUDText(%+v) = %q, want %q", tt.round, got, tt.want)
		}
	}
}

func newTestFace(t *testing.T, size float64) *text.GoTextFace {
	t.Helper()
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatalf("failed to load font: %v", err)
	}
	return &text.GoTextFace{Source: src, Size: size}
}

func TestRenderSystemUsesFontFace(t *testing.T) {
	w := newTestWorld(t)
	rs := NewDuckRenderSystem(w.em, w.rounds)

	if rs.hudFace != nil || rs.doneFace != nil {
		t.Fatal("render system should start with debug text")
	}

	face := newTestFace(t, 22)
	rs.SetFontFace(face)

	if rs.hudFace != face {
		t.Error("HUD should draw with the given face")
	}
	if rs.doneFace == nil || rs.doneFace.Source != face.Source || rs.doneFace.Size != doneFontSize {
		t.Errorf("DONE face = %+v, want size %d from the same source", rs.doneFace, doneFontSize)
	}

	// 获胜并显示遮罩时，所有文本都走字体路径
	dropIntoWater(w)
	w.rounds.Update(config.DeltaTime)
	w.rounds.Update(w.cfg.Round.DoneOverlayDelay)
	if !w.rounds.OverlayReady() {
		t.Fatal("overlay should be ready after the delay")
	}
	rs.Draw(ebiten.NewImage(config.GameWindowWidth, config.GameWindowHeight))

	rs.SetFontFace(nil)
	if rs.hudFace != nil || rs.doneFace != nil {
		t.Error("nil face should fall back to debug text")
	}
}
