package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/duckshot/pkg/embedded"
)

// 未在关卡文件中指定材质时，固体使用的默认系数
const (
	DefaultSolidRestitution = 0.55
	DefaultSolidFriction    = 0.94
)

// DuckConfig 小黄鸭弹弓关卡配置
//
// 包含物理常量、弹弓参数、轨迹预览、小鸭初始状态以及浴缸碰撞体布局。
// 浴缸内的所有矩形坐标都相对于缩放后浴缸贴图的左上角。
//
// 配置文件位置: data/duck_bathtub.yaml
type DuckConfig struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Slingshot SlingshotConfig `yaml:"slingshot"`
	Preview   PreviewConfig   `yaml:"preview"`
	Duck      DuckBodyConfig  `yaml:"duck"`
	Bounds    MaterialConfig  `yaml:"bounds"`
	Tub       TubConfig       `yaml:"tub"`
	Round     RoundConfig     `yaml:"round"`
}

// PhysicsConfig 积分器参数
type PhysicsConfig struct {
	// Gravity 重力加速度（像素/秒²），正值向下
	Gravity float64 `yaml:"gravity"`

	// Substeps 每个物理步的子步数
	Substeps int `yaml:"substeps"`

	// SettleSpeed 静止判定速度阈值（像素/秒），两个分量都低于此值视为静止
	SettleSpeed float64 `yaml:"settleSpeed"`

	// SettleFrames 静止计数超过此值后小鸭自动复位
	SettleFrames int `yaml:"settleFrames"`
}

// SlingshotConfig 弹弓发射参数
type SlingshotConfig struct {
	// MaxPull 最大拉伸长度（像素）
	MaxPull float64 `yaml:"maxPull"`

	// Power 拉伸长度到发射速度的倍率
	Power float64 `yaml:"power"`

	// MinPull 拉伸长度不超过此值时视为误触，不发射
	MinPull float64 `yaml:"minPull"`
}

// PreviewConfig 轨迹预览参数
type PreviewConfig struct {
	Steps   int     `yaml:"steps"`
	Dt      float64 `yaml:"dt"`
	MinPull float64 `yaml:"minPull"`
}

// DuckBodyConfig 小鸭刚体参数
type DuckBodyConfig struct {
	StartX float64 `yaml:"startX"`
	StartY float64 `yaml:"startY"`
	Radius float64 `yaml:"radius"`
}

// MaterialConfig 碰撞材质
type MaterialConfig struct {
	// Restitution 法向速度保留比例 [0,1]
	Restitution float64 `yaml:"restitution"`

	// Friction 切向速度保留比例 [0,1]
	Friction float64 `yaml:"friction"`
}

// RectConfig 矩形（左上角 + 尺寸）
type RectConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// SolidConfig 浴缸上的静态碰撞体
// Restitution/Friction 缺省时使用 DefaultSolidRestitution/DefaultSolidFriction
type SolidConfig struct {
	Name        string     `yaml:"name"`
	Rect        RectConfig `yaml:"rect"`
	Restitution *float64   `yaml:"restitution,omitempty"`
	Friction    *float64   `yaml:"friction,omitempty"`
}

// Material 返回固体的实际材质（应用默认值）
func (s SolidConfig) Material() MaterialConfig {
	m := MaterialConfig{Restitution: DefaultSolidRestitution, Friction: DefaultSolidFriction}
	if s.Restitution != nil {
		m.Restitution = *s.Restitution
	}
	if s.Friction != nil {
		m.Friction = *s.Friction
	}
	return m
}

// TubConfig 浴缸贴图与碰撞布局
type TubConfig struct {
	// Sprite 浴缸贴图名称，由资源解析器在候选目录中查找
	Sprite string `yaml:"sprite"`

	// Width/Height 贴图缩放后的显示尺寸
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// CenterX/CenterY 贴图中心的屏幕坐标
	CenterX float64 `yaml:"centerX"`
	CenterY float64 `yaml:"centerY"`

	Solids []SolidConfig `yaml:"solids"`

	// Water 水面感应区，小鸭中心进入即获胜
	Water RectConfig `yaml:"water"`
}

// Origin 返回浴缸贴图左上角的屏幕坐标
func (t TubConfig) Origin() (x, y float64) {
	return t.CenterX - float64(t.Width)/2, t.CenterY - float64(t.Height)/2
}

// RoundConfig 回合参数
type RoundConfig struct {
	// MaxShots 每回合最多发射次数
	MaxShots int `yaml:"maxShots"`

	// DoneOverlayDelay 获胜后延迟多久显示 DONE 遮罩（秒）
	DoneOverlayDelay float64 `yaml:"doneOverlayDelay"`
}

func floatPtr(v float64) *float64 { return &v }

// DefaultDuckConfig 返回内置默认关卡
// 与 data/duck_bathtub.yaml 保持一致，用于测试和配置缺失字段的兜底
func DefaultDuckConfig() *DuckConfig {
	return &DuckConfig{
		Physics: PhysicsConfig{
			Gravity:      1100.0,
			Substeps:     3,
			SettleSpeed:  35.0,
			SettleFrames: 30,
		},
		Slingshot: SlingshotConfig{
			MaxPull: 220.0,
			Power:   4.8,
			MinPull: 10.0,
		},
		Preview: PreviewConfig{
			Steps:   28,
			Dt:      0.07,
			MinPull: 4.0,
		},
		Duck: DuckBodyConfig{
			StartX: 160,
			StartY: GameWindowHeight - 140,
			Radius: 22,
		},
		Bounds: MaterialConfig{Restitution: 0.50, Friction: 0.94},
		Tub: TubConfig{
			Sprite:  "bathtub.png",
			Width:   520,
			Height:  340,
			CenterX: GameWindowWidth - 280,
			CenterY: GameWindowHeight/2 + 10,
			Solids: []SolidConfig{
				{Name: "rim_left", Rect: RectConfig{X: 70, Y: 82, W: 60, H: 18}, Restitution: floatPtr(0.62), Friction: floatPtr(0.95)},
				{Name: "rim_right", Rect: RectConfig{X: 390, Y: 82, W: 60, H: 18}, Restitution: floatPtr(0.62), Friction: floatPtr(0.95)},
				{Name: "left_wall", Rect: RectConfig{X: 70, Y: 90, W: 22, H: 210}, Restitution: floatPtr(0.50), Friction: floatPtr(0.92)},
				{Name: "right_wall", Rect: RectConfig{X: 428, Y: 90, W: 22, H: 210}, Restitution: floatPtr(0.50), Friction: floatPtr(0.92)},
				{Name: "bottom_lip", Rect: RectConfig{X: 95, Y: 235, W: 330, H: 22}, Restitution: floatPtr(0.30), Friction: floatPtr(0.90)},
			},
			Water: RectConfig{X: 120, Y: 130, W: 280, H: 130},
		},
		Round: RoundConfig{
			MaxShots:         12,
			DoneOverlayDelay: 1.0,
		},
	}
}

// ParseDuckConfig 解析 YAML 关卡配置
//
// 文件中未出现的字段保留 DefaultDuckConfig 的值；solids 列表整体替换。
//
// 参数:
//   - data: YAML 内容
//
// 返回:
//   - *DuckConfig: 解析并验证后的配置
//   - error: 解析或验证失败时返回错误
func ParseDuckConfig(data []byte) (*DuckConfig, error) {
	cfg := DefaultDuckConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse duck config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid duck config: %w", err)
	}

	return cfg, nil
}

// LoadDuckConfig 从文件加载关卡配置
//
// 参数:
//   - path: 配置文件路径（如 "levels/sealed_tub.yaml"）
func LoadDuckConfig(path string) (*DuckConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read duck config: %w", err)
	}
	return ParseDuckConfig(data)
}

// LoadEmbeddedDuckConfig 加载随程序内嵌的默认关卡
// embedded 包未初始化时（如单元测试）退回 DefaultDuckConfig
func LoadEmbeddedDuckConfig() (*DuckConfig, error) {
	if !embedded.IsInitialized() {
		return DefaultDuckConfig(), nil
	}
	data, err := embedded.ReadFile(DefaultDuckConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded duck config: %w", err)
	}
	return ParseDuckConfig(data)
}

// Validate 验证配置有效性
//
// 检查物理参数为正、系数位于 [0,1]、矩形尺寸为正、小鸭初始位置在屏幕内。
func (c *DuckConfig) Validate() error {
	if c.Physics.Gravity <= 0 {
		return fmt.Errorf("physics.gravity must be > 0, got %.2f", c.Physics.Gravity)
	}
	if c.Physics.Substeps < 1 {
		return fmt.Errorf("physics.substeps must be >= 1, got %d", c.Physics.Substeps)
	}
	if c.Physics.SettleSpeed <= 0 {
		return fmt.Errorf("physics.settleSpeed must be > 0, got %.2f", c.Physics.SettleSpeed)
	}
	if c.Physics.SettleFrames < 0 {
		return fmt.Errorf("physics.settleFrames must be >= 0, got %d", c.Physics.SettleFrames)
	}

	if c.Slingshot.MaxPull <= 0 || c.Slingshot.Power <= 0 {
		return fmt.Errorf("slingshot maxPull/power must be > 0, got %.2f/%.2f",
			c.Slingshot.MaxPull, c.Slingshot.Power)
	}
	if c.Slingshot.MinPull < 0 || c.Slingshot.MinPull >= c.Slingshot.MaxPull {
		return fmt.Errorf("slingshot.minPull must be in [0, maxPull), got %.2f", c.Slingshot.MinPull)
	}

	if c.Preview.Steps < 0 || c.Preview.Dt <= 0 {
		return fmt.Errorf("preview steps must be >= 0 and dt > 0, got %d/%.3f", c.Preview.Steps, c.Preview.Dt)
	}

	if c.Duck.Radius <= 0 {
		return fmt.Errorf("duck.radius must be > 0, got %.2f", c.Duck.Radius)
	}
	if c.Duck.StartX < c.Duck.Radius || c.Duck.StartX > GameWindowWidth-c.Duck.Radius ||
		c.Duck.StartY < c.Duck.Radius || c.Duck.StartY > GameWindowHeight-c.Duck.Radius {
		return fmt.Errorf("duck start (%.1f, %.1f) is outside the screen", c.Duck.StartX, c.Duck.StartY)
	}

	if err := validateMaterial("bounds", c.Bounds); err != nil {
		return err
	}

	if c.Tub.Sprite == "" {
		return fmt.Errorf("tub.sprite must not be empty")
	}
	if c.Tub.Width <= 0 || c.Tub.Height <= 0 {
		return fmt.Errorf("tub size must be > 0, got %dx%d", c.Tub.Width, c.Tub.Height)
	}
	for i, s := range c.Tub.Solids {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("solids[%d]", i)
		}
		if err := validateRect(name, s.Rect); err != nil {
			return err
		}
		if err := validateMaterial(name, s.Material()); err != nil {
			return err
		}
	}
	if err := validateRect("water", c.Tub.Water); err != nil {
		return err
	}

	if c.Round.MaxShots < 1 {
		return fmt.Errorf("round.maxShots must be >= 1, got %d", c.Round.MaxShots)
	}
	if c.Round.DoneOverlayDelay < 0 {
		return fmt.Errorf("round.doneOverlayDelay must be >= 0, got %.2f", c.Round.DoneOverlayDelay)
	}

	return nil
}

func validateRect(name string, r RectConfig) error {
	if r.W <= 0 || r.H <= 0 {
		return fmt.Errorf("%s rect size must be > 0, got %.1fx%.1f", name, r.W, r.H)
	}
	return nil
}

func validateMaterial(name string, m MaterialConfig) error {
	if m.Restitution < 0 || m.Restitution > 1 {
		return fmt.Errorf("%s restitution must be in [0,1], got %.2f", name, m.Restitution)
	}
	if m.Friction < 0 || m.Friction > 1 {
		return fmt.Errorf("%s friction must be in [0,1], got %.2f", name, m.Friction)
	}
	return nil
}
