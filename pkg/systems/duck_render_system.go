package systems

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/duckshot/pkg/components"
	"github.com/gonewx/duckshot/pkg/config"
	"github.com/gonewx/duckshot/pkg/ecs"
)

var (
	backgroundColor = color.RGBA{R: 210, G: 235, B: 255, A: 255}
	previewColor    = color.RGBA{R: 120, G: 170, B: 255, A: 255}
	duckBodyColor   = color.RGBA{R: 255, G: 210, B: 70, A: 255}
	duckShineColor  = color.RGBA{R: 255, G: 230, B: 120, A: 255}
	duckBeakColor   = color.RGBA{R: 245, G: 155, B: 70, A: 255}
	duckEyeColor    = color.RGBA{R: 70, G: 80, B: 95, A: 255}
	overlayColor    = color.RGBA{A: 180}
	hudTextColor    = color.RGBA{R: 40, G: 55, B: 80, A: 255}
	doneTextColor   = color.RGBA{G: 255, B: 127, A: 255}
)

const (
	previewMarkerRadius = 4
	doneFontSize        = 120

	// ebitenutil.DebugPrint 的字形尺寸
	debugGlyphWidth  = 6
	debugGlyphHeight = 16
)

// DuckRenderSystem 绘制浴缸、小鸭、轨迹预览和 HUD
// 只读取组件状态，不做任何修改
type DuckRenderSystem struct {
	entityManager *ecs.EntityManager
	round         *RoundSystem
	winMessage    string

	// 为 nil 时退回 ebitenutil.DebugPrintAt
	hudFace  *text.GoTextFace
	doneFace *text.GoTextFace
}

// NewDuckRenderSystem 创建渲染系统
func NewDuckRenderSystem(em *ecs.EntityManager, round *RoundSystem) *DuckRenderSystem {
	return &DuckRenderSystem{entityManager: em, round: round, winMessage: WinMessage}
}

// SetWinMessage 替换获胜提示（移动端没有键盘快捷键）
func (s *DuckRenderSystem) SetWinMessage(msg string) {
	s.winMessage = msg
}

// SetFontFace 设置 HUD 字体，DONE! 使用同一字体源的大号字
func (s *DuckRenderSystem) SetFontFace(face *text.GoTextFace) {
	s.hudFace = face
	s.doneFace = nil
	if face != nil {
		s.doneFace = &text.GoTextFace{Source: face.Source, Size: doneFontSize}
	}
}

// Draw 绘制一帧
func (s *DuckRenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	s.drawSprites(screen)
	s.drawPreview(screen)
	s.drawDucks(screen)
	s.drawHUD(screen)

	if s.round != nil && s.round.OverlayReady() {
		s.drawDoneOverlay(screen)
	}
}

func (s *DuckRenderSystem) drawSprites(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.SpriteComponent, *components.PositionComponent](s.entityManager) {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if sprite.Image == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(pos.X, pos.Y)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(sprite.Image, op)
	}
}

func (s *DuckRenderSystem) drawPreview(screen *ebiten.Image) {
	_, preview, ok := ecs.FirstEntityWith[*components.TrajectoryPreviewComponent](s.entityManager)
	if !ok {
		return
	}
	for _, p := range preview.Points {
		vector.DrawFilledCircle(screen, float32(int(p.X)), float32(int(p.Y)), previewMarkerRadius, previewColor, true)
	}
}

// drawDucks 用四个圆拼出小鸭：身体、高光、嘴、眼睛
func (s *DuckRenderSystem) drawDucks(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.DuckBodyComponent, *components.PositionComponent](s.entityManager) {
		body, _ := ecs.GetComponent[*components.DuckBodyComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		x, y, r := float32(int(pos.X)), float32(int(pos.Y)), float32(body.Radius)
		vector.DrawFilledCircle(screen, x, y, r, duckBodyColor, true)
		vector.DrawFilledCircle(screen, x-r/4, y-r/4, r/2, duckShineColor, true)
		vector.DrawFilledCircle(screen, x+r-6, y+4, max(6, r/4), duckBeakColor, true)
		vector.DrawFilledCircle(screen, x-r/6, y-r/6, max(3, r/8), duckEyeColor, true)
	}
}

func (s *DuckRenderSystem) drawHUD(screen *ebiten.Image) {
	_, round, ok := ecs.FirstEntityWith[*components.RoundStateComponent](s.entityManager)
	if !ok {
		return
	}
	s.drawText(screen, HUDText(round), 20, 18)
	if round.Won {
		s.drawText(screen, s.winMessage, 20, 48)
	}
}

func (s *DuckRenderSystem) drawText(screen *ebiten.Image, msg string, x, y float64) {
	if s.hudFace == nil {
		ebitenutil.DebugPrintAt(screen, msg, int(x), int(y))
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(hudTextColor)
	text.Draw(screen, msg, s.hudFace, op)
}

// 获胜提示
const (
	WinMessage       = "WIN! Duck touched water.  (R) Restart  (ESC) Exit"
	MobileWinMessage = "WIN! Duck touched water.  Tap to restart"
)

// HUDText 发射计数文本
func HUDText(round *components.RoundStateComponent) string {
	return fmt.Sprintf("Shots %d/%d", round.Shots, round.MaxShots)
}

func (s *DuckRenderSystem) drawDoneOverlay(screen *ebiten.Image) {
	const msg = "DONE!"
	cx, cy := float64(config.GameWindowWidth)/2, float64(config.GameWindowHeight)/2
	vector.DrawFilledRect(screen, 0, 0, config.GameWindowWidth, config.GameWindowHeight, overlayColor, false)

	if s.doneFace == nil {
		ebitenutil.DebugPrintAt(screen, msg, int(cx)-len(msg)*debugGlyphWidth/2, int(cy)-debugGlyphHeight/2)
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(doneTextColor)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, msg, s.doneFace, op)
}
