package entities

import "github.com/hajimehoshi/ebiten/v2"

// SpriteLoader 实体工厂所需的贴图加载能力
// 由 game.ResourceManager 实现，测试中可替换为 mock
type SpriteLoader interface {
	// LoadRequiredSprite 加载并缩放必需贴图，缺失时返回错误
	LoadRequiredSprite(name string, width, height int) (*ebiten.Image, error)
}
