//go:build !mobile

// stub.go - 桌面端构建时的占位文件
//
// 桌面端入口是根目录的 main.go；移动端绑定代码在 mobile.go 和 embed.go 中，
// 仅在使用 -tags mobile 时编译。
package mobile

// Dummy 保证包在桌面端构建时非空
func Dummy() {}
