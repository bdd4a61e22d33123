package game

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	saved        bool
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
	sm.saved = false
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// QuitRequested 当前场景是否请求退出
func (sm *SceneManager) QuitRequested() bool {
	f, ok := sm.currentScene.(Finishable)
	return ok && f.QuitRequested()
}

// Won 当前场景的结果，场景不支持结果时返回 false
func (sm *SceneManager) Won() bool {
	f, ok := sm.currentScene.(Finishable)
	return ok && f.Won()
}

// SaveOnExit 对当前场景调用一次 SaveOnExit（重复调用无效）
func (sm *SceneManager) SaveOnExit() {
	if sm.saved {
		return
	}
	sm.saved = true

	s, ok := sm.currentScene.(Saveable)
	if !ok {
		return
	}
	if !s.SaveOnExit() {
		log.Warn("[SceneManager] 场景退出保存失败")
	}
}
