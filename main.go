// duckshot 是一个浴缸小鸭弹弓小游戏：把小鸭拉弓弹进浴缸的水里。
//
// Usage:
//
//	duckshot                 - 开始游戏（同 duckshot play）
//	duckshot play            - 开始游戏
//	duckshot history         - 查看最近的回合记录和最佳成绩
//
// Global flags:
//
//	--config <path>   - 关卡 YAML（默认使用内嵌关卡）
//	--assets <dir>    - 优先查找资源的目录
//	--db <path>       - 回合历史数据库（默认 ~/.duckshot/history.db，空字符串关闭记录）
//	--verbose         - 输出调试日志
//	--max-shots <n>   - 覆盖关卡的最大发射次数
//	--volume <0~1>    - 设置并保存音效音量
//
// 退出码：获胜 0，未获胜 2，出错 1。
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gonewx/duckshot/pkg/embedded"
	"github.com/gonewx/duckshot/pkg/storage"
)

// 未获胜退出时的退出码
const exitNotWon = 2

var (
	// Global flags
	flagConfig   string
	flagAssets   string
	flagDBPath   string
	flagVerbose  bool
	flagMaxShots int
	flagVolume   float64

	exitCode int
)

func main() {
	embedded.Init(dataFS)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

var rootCmd = &cobra.Command{
	Use:   "duckshot",
	Short: "Slingshot a rubber duck into the bathtub",
	Long: `duckshot is a small physics game: drag the duck back like a slingshot,
release it, and land it in the bathtub water.

Controls:
  Mouse/Touch drag - Aim and launch
  R                - Restart the round
  T                - Toggle trajectory preview
  M                - Mute / unmute sound effects
  F11              - Toggle fullscreen
  Esc              - Quit

Examples:
  duckshot
  duckshot play --max-shots 5
  duckshot play --config ./my_tub.yaml --assets ./assets
  duckshot history --limit 20`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a level YAML (default: embedded bathtub level)")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Directory searched first for sprites and sounds")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath(), "Path to round history database (empty disables history)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().IntVar(&flagMaxShots, "max-shots", 0, "Override the level's shot limit (0 = use level value)")
	rootCmd.PersistentFlags().Float64Var(&flagVolume, "volume", 0.8, "Sound effect volume 0.0-1.0, saved for later runs (default: saved value)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
}
