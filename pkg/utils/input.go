package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerEventType 指针事件类型
type PointerEventType int

const (
	// PointerDown 按下（鼠标左键或触摸开始）
	PointerDown PointerEventType = iota
	// PointerMove 按住状态下移动
	PointerMove
	// PointerUp 释放
	PointerUp
)

// String 返回事件类型名称（用于日志）
func (t PointerEventType) String() string {
	switch t {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	}
	return "unknown"
}

// PointerEvent 指针事件，坐标为逻辑画布坐标
type PointerEvent struct {
	Type PointerEventType
	X, Y float64
}

// PointerTracker 将每帧轮询到的指针状态转换为按下/移动/释放事件
// 同时支持鼠标和触摸，触摸优先
type PointerTracker struct {
	pressed      bool
	touch        bool // 当前按下来自触摸
	lastX, lastY int
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{}
}

// Poll 读取当前帧的 ebiten 指针状态并返回事件
// 每个逻辑帧调用一次
func (p *PointerTracker) Poll() []PointerEvent {
	// 首先检查触摸输入（移动设备）
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		p.touch = true
		return p.Feed(true, x, y)
	}

	// 触摸释放时没有当前位置，使用最后一次触摸位置
	if p.touch {
		p.touch = false
		return p.Feed(false, p.lastX, p.lastY)
	}

	// 其次检查鼠标输入（桌面设备）
	x, y := ebiten.CursorPosition()
	return p.Feed(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), x, y)
}

// Feed 根据本帧的按下状态和位置生成事件
//
// 规则：
//   - 未按下 -> 按下：PointerDown
//   - 持续按下且位置变化：PointerMove
//   - 按下 -> 未按下：PointerUp（位置为本帧位置）
func (p *PointerTracker) Feed(pressed bool, x, y int) []PointerEvent {
	var events []PointerEvent

	switch {
	case pressed && !p.pressed:
		events = append(events, PointerEvent{Type: PointerDown, X: float64(x), Y: float64(y)})
	case pressed && p.pressed && (x != p.lastX || y != p.lastY):
		events = append(events, PointerEvent{Type: PointerMove, X: float64(x), Y: float64(y)})
	case !pressed && p.pressed:
		events = append(events, PointerEvent{Type: PointerUp, X: float64(x), Y: float64(y)})
	}

	p.pressed = pressed
	p.lastX, p.lastY = x, y
	return events
}
