// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来：加载关卡配置、创建资源与音频管理器、
// 打开设置存储和回合历史，然后把小鸭场景交给场景管理器驱动。
package app

import (
	"fmt"
	"image/color"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/duckshot/pkg/config"
	"github.com/gonewx/duckshot/pkg/game"
	"github.com/gonewx/duckshot/pkg/scenes"
	"github.com/gonewx/duckshot/pkg/storage"
	"github.com/gonewx/duckshot/pkg/utils"
)

// AppName gdata 存储使用的应用名
const AppName = "duckshot"

// DefaultLevelName 使用内嵌关卡时记录到历史中的关卡名
const DefaultLevelName = "bathtub"

// hudFontSize HUD 字号
const hudFontSize = 22

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// LevelPath 关卡 YAML 路径，为空则使用内嵌的默认关卡
	LevelPath string
	// AssetsDir 优先查找资源的目录，为空则只用默认候选目录
	AssetsDir string
	// AssetsFS 内嵌资源（移动端），排在所有磁盘目录之后
	AssetsFS fs.FS
	// DBPath 回合历史数据库路径，为空则不记录历史
	DBPath string
	// MaxShots 大于 0 时覆盖关卡配置中的最大发射次数
	MaxShots int
	// Volume 非 nil 时覆盖音效音量，并随设置一起保存
	Volume *float64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settingsManager          *game.SettingsManager
	store                    *storage.Store
	closed                   bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，应先调用 embedded.Init() 初始化嵌入资源。
// 浴缸贴图缺失时返回错误；设置存储和历史数据库打不开时只记录警告。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	level, levelName, err := LoadLevel(cfg.LevelPath, cfg.MaxShots)
	if err != nil {
		return nil, err
	}
	log.Infof("[App] 关卡: %s (maxShots=%d)", levelName, level.Round.MaxShots)

	// 初始化音频上下文
	audioContext := audio.NewContext(48000)

	resolver := game.DefaultAssetResolver(cfg.AssetsDir)
	if cfg.AssetsFS != nil {
		resolver.AddFS("embedded", cfg.AssetsFS)
	}
	log.Debugf("[App] 资源候选目录: %s", strings.Join(resolver.Candidates(), ", "))
	resourceManager := game.NewResourceManager(audioContext, resolver)

	settingsManager, err := game.NewSettingsManager(openGdata())
	if err != nil {
		return nil, fmt.Errorf("设置管理器初始化失败: %w", err)
	}

	applyVolume(settingsManager, cfg.Volume)

	audioManager := game.NewAudioManager(resourceManager, settingsManager)
	audioManager.PreloadSounds(game.SoundQuack, game.SoundSplash)
	log.Debug("[App] AudioManager initialized")

	a := &App{
		sceneManager:    game.NewSceneManager(),
		settingsManager: settingsManager,
	}

	deps := scenes.DuckSceneDeps{
		Level:     level,
		LevelName: levelName,
		Sprites:   resourceManager,
		Sounds:    audioManager,
		Settings:  settingsManager,
	}
	if font, err := resourceManager.LoadDefaultFont(hudFontSize); err != nil {
		log.Warnf("[App] 字体加载失败，使用调试字体: %v", err)
	} else {
		deps.Font = font
	}
	if store := openHistory(cfg.DBPath); store != nil {
		a.store = store
		deps.History = store
	}

	scene, err := scenes.NewDuckScene(deps)
	if err != nil {
		a.closeStore()
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}
	a.sceneManager.SwitchTo(scene)

	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return a, nil
}

// LoadLevel 加载关卡配置并应用命令行覆盖
//
// 返回：
//   - *config.DuckConfig: 校验通过的关卡配置
//   - string: 关卡名（文件名去掉扩展名，内嵌关卡为 DefaultLevelName）
//   - error: 读取、解析或校验失败
func LoadLevel(path string, maxShots int) (*config.DuckConfig, string, error) {
	var (
		level *config.DuckConfig
		name  = DefaultLevelName
		err   error
	)
	if path == "" {
		level, err = config.LoadEmbeddedDuckConfig()
	} else {
		level, err = config.LoadDuckConfig(path)
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err != nil {
		return nil, "", fmt.Errorf("关卡配置加载失败: %w", err)
	}

	if maxShots > 0 {
		level.Round.MaxShots = maxShots
		if err := level.Validate(); err != nil {
			return nil, "", fmt.Errorf("关卡配置无效: %w", err)
		}
	}
	return level, name, nil
}

// openGdata 打开跨平台设置存储，失败时返回 nil（设置仅保存在内存中）
func openGdata() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Warnf("[App] 存储目录不可用: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Warnf("[App] 设置存储不可用，使用默认设置: %v", err)
		return nil
	}
	return manager
}

// applyVolume 应用命令行指定的音量
func applyVolume(sm *game.SettingsManager, volume *float64) {
	if volume == nil {
		return
	}
	sm.SetSoundVolume(*volume)
	log.Debugf("[App] 音效音量: %.2f", sm.GetSettings().SoundVolume)
}

// openHistory 打开回合历史数据库，路径为空或打开失败时返回 nil
func openHistory(path string) *storage.Store {
	if path == "" {
		return nil
	}
	store, err := storage.Open(path)
	if err != nil {
		log.Warnf("[App] 回合历史不可用: %v", err)
		return nil
	}
	return store
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
// 场景请求退出时返回 ebiten.Termination 结束游戏循环
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Debugf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(config.DeltaTime)

	if a.sceneManager.QuitRequested() {
		a.sceneManager.SaveOnExit()
		return ebiten.Termination
	}
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Debug("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settingsManager.SetFullscreen(ebiten.IsFullscreen())
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Won 本次游玩是否以获胜结束（RunGame 返回后调用）
func (a *App) Won() bool {
	return a.sceneManager.Won()
}

// Close 保存场景状态并关闭历史数据库
// 窗口直接关闭时场景没有机会请求退出，由这里补做保存
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.sceneManager.SaveOnExit()
	a.closeStore()
}

func (a *App) closeStore() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		log.Warnf("[App] 关闭历史数据库失败: %v", err)
	}
	a.store = nil
}
