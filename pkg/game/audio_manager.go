package game

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// 音效资源名（相对于资源目录）
const (
	SoundQuack  = "sounds/quack.wav"  // 发射
	SoundSplash = "sounds/splash.wav" // 落水获胜
)

// AudioManager 音频管理器
// 职责：
//   - 统一管理游戏中所有音效的播放
//   - 实现音量控制（从 SettingsManager 读取设置）
//   - 音效文件缺失时静默跳过
type AudioManager struct {
	resourceManager *ResourceManager         // 资源管理器（用于加载音频）
	settingsManager *SettingsManager         // 设置管理器（用于读取音量设置）
	soundPlayers    map[string]*audio.Player // 音效播放器缓存（资源名 -> 播放器）
	missing         map[string]bool          // 已确认缺失的音效，避免每次播放都重新查找
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于加载音频文件）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		soundPlayers:    make(map[string]*audio.Player),
		missing:         make(map[string]bool),
	}
}

// PlaySound 播放音效
// 音效使用 SoundVolume 设置控制音量，单次播放
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(name string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.getSoundPlayer(name)
	if player == nil {
		return false
	}

	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Warnf("[AudioManager] Failed to rewind sound %s: %v", name, err)
	}
	player.Play()
	return true
}

// PreloadSounds 预加载音效
// 在场景初始化时调用，避免首次播放时的延迟
func (am *AudioManager) PreloadSounds(names ...string) {
	for _, name := range names {
		am.getSoundPlayer(name)
	}
}

// getSoundPlayer 获取或加载音效播放器
func (am *AudioManager) getSoundPlayer(name string) *audio.Player {
	if player, exists := am.soundPlayers[name]; exists {
		return player
	}
	if am.missing[name] || am.resourceManager == nil {
		return nil
	}

	player, err := am.resourceManager.LoadSoundEffect(name)
	if err != nil {
		log.Warnf("[AudioManager] Failed to load sound %s: %v", name, err)
	}
	if player == nil {
		am.missing[name] = true
		return nil
	}

	am.soundPlayers[name] = player
	return player
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8 // 默认值
}
