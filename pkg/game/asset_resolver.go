package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrAssetNotFound 所有候选目录中都找不到资源
var ErrAssetNotFound = errors.New("asset not found")

// FallbackPolicy 资源缺失时的处理策略
type FallbackPolicy int

const (
	// FallbackFatal 缺失即失败，返回 ErrAssetNotFound
	FallbackFatal FallbackPolicy = iota
	// FallbackPlaceholder 缺失时返回 (nil, nil)，由调用方使用占位图形或静音
	FallbackPlaceholder
)

// String 返回策略名称
func (p FallbackPolicy) String() string {
	if p == FallbackFatal {
		return "fatal"
	}
	return "placeholder"
}

type assetRoot struct {
	name string
	fsys fs.FS
}

// AssetResolver 按顺序在多个候选位置中查找资源文件
//
// 候选位置按添加顺序查找，第一个命中的即为结果。
// 典型顺序：命令行 --assets 目录、工作目录下的 assets/、可执行文件旁的 assets/。
type AssetResolver struct {
	roots []assetRoot
}

// NewAssetResolver 创建空的资源解析器
func NewAssetResolver() *AssetResolver {
	return &AssetResolver{}
}

// DefaultAssetResolver 按默认顺序创建资源解析器
//
// 参数:
//   - assetsDir: 命令行指定的资源目录，为空时跳过
func DefaultAssetResolver(assetsDir string) *AssetResolver {
	r := NewAssetResolver()
	if assetsDir != "" {
		r.AddDir(assetsDir)
	}
	r.AddDir("assets")
	if exe, err := os.Executable(); err == nil {
		exeAssets := filepath.Join(filepath.Dir(exe), "assets")
		if abs, err := filepath.Abs("assets"); err != nil || abs != exeAssets {
			r.AddDir(exeAssets)
		}
	}
	return r
}

// AddDir 追加一个磁盘目录作为候选位置
func (r *AssetResolver) AddDir(dir string) {
	r.AddFS(dir, os.DirFS(dir))
}

// AddFS 追加一个文件系统作为候选位置（测试中可使用 fstest.MapFS）
func (r *AssetResolver) AddFS(name string, fsys fs.FS) {
	r.roots = append(r.roots, assetRoot{name: name, fsys: fsys})
}

// Candidates 返回候选位置名称（按查找顺序）
func (r *AssetResolver) Candidates() []string {
	names := make([]string, len(r.roots))
	for i, root := range r.roots {
		names[i] = root.name
	}
	return names
}

// Resolve 读取资源文件内容
//
// 参数:
//   - name: 资源相对路径（如 "bathtub.png"、"sounds/quack.wav"）
//   - policy: 缺失时的处理策略
//
// 返回:
//   - []byte: 文件内容；Placeholder 策略下缺失时为 nil
//   - error: Fatal 策略下缺失时包装 ErrAssetNotFound；读取出错时返回对应错误
func (r *AssetResolver) Resolve(name string, policy FallbackPolicy) ([]byte, error) {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("invalid asset path %q", name)
	}

	for _, root := range r.roots {
		data, err := fs.ReadFile(root.fsys, name)
		if err == nil {
			log.Debugf("[AssetResolver] %s -> %s", name, root.name)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read asset %s from %s: %w", name, root.name, err)
		}
	}

	if policy == FallbackPlaceholder {
		log.Warnf("[AssetResolver] 资源缺失，使用占位: %s", name)
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s (searched: %s)", ErrAssetNotFound, name, strings.Join(r.Candidates(), ", "))
}
