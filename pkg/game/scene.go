package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Finishable 是一个可选接口，场景可以请求退出并给出结果
//
// App 每帧检查 QuitRequested，为 true 时结束游戏循环，
// 之后通过 Won 读取本次游玩的结果返回给调用方。
type Finishable interface {
	QuitRequested() bool
	Won() bool
}

// Saveable 是一个可选接口，用于支持场景在退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 场景请求退出（Esc）
//   - 游戏窗口关闭
type Saveable interface {
	// SaveOnExit 在场景退出时保存状态
	// 返回 false 表示保存失败（但程序仍会正常退出）
	SaveOnExit() bool
}
