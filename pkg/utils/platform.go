//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 设为 "1" 时桌面端按移动端方式运行（没有键盘快捷键，点击重开）
const MobileEmulateEnv = "DUCKSHOT_MOBILE_EMULATE"

// IsMobile 是否按移动端方式运行
// 桌面端编译时只由 MobileEmulateEnv 决定，用于本地调试触摸流程
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
