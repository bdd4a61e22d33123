package components

import "github.com/gonewx/duckshot/pkg/utils"

// SolidComponent 静态碰撞体（轴对齐矩形）
// 一个回合内不可变
type SolidComponent struct {
	Name string

	// Rect 碰撞矩形（屏幕坐标）
	Rect utils.Rect

	// Restitution 碰撞法线方向的速度保留比例 [0,1]
	Restitution float64

	// Friction 切线方向的速度保留比例 [0,1]
	Friction float64
}

// WaterSensorComponent 水面感应区
// 小鸭发射后圆心进入该矩形即判定获胜
type WaterSensorComponent struct {
	Rect utils.Rect
}
