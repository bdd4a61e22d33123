//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。构建前需要把资源复制到本目录：
//
//	cp -r ../assets ./assets && mkdir -p data && cp ../data/duck_bathtub.yaml data/
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.duckshot -o build/android/duckshot.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Duckshot.xcframework -v ./mobile
package mobile

import (
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/gonewx/duckshot/pkg/app"
	"github.com/gonewx/duckshot/pkg/embedded"
	"github.com/gonewx/duckshot/pkg/storage"
	"github.com/gonewx/duckshot/pkg/utils"
)

func init() {
	// 初始化嵌入资源
	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	assets, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		log.Fatalf("[Mobile] 资源目录无效: %v", err)
	}

	// 移动端没有命令行；回合历史写在应用私有目录，识别不到时不记录
	cfg := app.Config{
		Verbose:  true,
		AssetsFS: assets,
	}
	if dir := utils.AppDataDir(); dir != "" {
		cfg.DBPath = filepath.Join(dir, storage.DefaultFileName)
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("[Mobile] 游戏初始化失败: %v", err)
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
