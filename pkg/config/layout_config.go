package config

// 布局配置常量
// 本文件定义了窗口尺寸和帧率等与关卡无关的固定参数

const (
	// GameWindowWidth 游戏逻辑画布宽度（像素）
	GameWindowWidth = 1000

	// GameWindowHeight 游戏逻辑画布高度（像素）
	GameWindowHeight = 650

	// TicksPerSecond 固定的逻辑更新频率
	// ebiten 默认 60 TPS，Update 以 1/TPS 作为 deltaTime
	TicksPerSecond = 60

	// DefaultDuckConfigPath 内嵌的默认关卡配置路径
	DefaultDuckConfigPath = "data/duck_bathtub.yaml"
)

// DeltaTime 每个逻辑帧的时间步长（秒）
const DeltaTime = 1.0 / float64(TicksPerSecond)

// WorldBounds 返回屏幕边界 (left, top, right, bottom)
// 屏幕四边作为隐式的碰撞体参与物理计算
func WorldBounds() (left, top, right, bottom float64) {
	return 0, 0, GameWindowWidth, GameWindowHeight
}
