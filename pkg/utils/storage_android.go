//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureStorageDir 确保 Android 私有目录下的 saves 子目录存在且可写
//
// gdata 在 Android 上把数据写到 /data/data/{package}/saves，但不会预先创建它，
// 所以必须在 gdata.Open 之前调用。
func EnsureStorageDir() error {
	dir := AppDataDir()
	if dir == "" {
		return fmt.Errorf("failed to detect Android package name")
	}

	saves := filepath.Join(dir, "saves")
	if err := os.MkdirAll(saves, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", saves, err)
	}

	probe := filepath.Join(saves, ".write_test")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("%s is not writable: %w", saves, err)
	}
	return os.Remove(probe)
}

// AppDataDir 返回 /data/data/{package}，无法识别包名时返回空字符串
// 包名取自 /proc/self/cmdline（以 NUL 结尾）
func AppDataDir() string {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	pkg := strings.TrimSpace(strings.ReplaceAll(string(data), "\x00", ""))
	if pkg == "" {
		return ""
	}
	return filepath.Join("/data/data", pkg)
}
