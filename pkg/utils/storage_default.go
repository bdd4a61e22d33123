//go:build !android

package utils

// EnsureStorageDir 非 Android 平台无需处理，gdata 会自行创建目录
func EnsureStorageDir() error {
	return nil
}

// AppDataDir 应用私有数据目录，非 Android 平台返回空字符串（由调用方决定默认位置）
func AppDataDir() string {
	return ""
}
