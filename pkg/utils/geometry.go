// Package utils 提供游戏开发中常用的工具函数
//
// geometry.go 提供二维几何工具：向量运算、轴对齐矩形、圆与矩形的碰撞检测。
// 向量和矩形直接基于 golang/geo 的 r2.Point / r2.Rect。
//
// # 坐标系统
//
// 使用屏幕坐标：原点在画布左上角，X 向右，Y 向下。
// 点击检测使用左闭右开、上闭下开的区间（与 r2.Rect 的闭区间不同）。
package utils

import "github.com/golang/geo/r2"

// Vec2 二维向量
type Vec2 r2.Point

func (v Vec2) point() r2.Point { return r2.Point(v) }

// Add 返回 v + o
func (v Vec2) Add(o Vec2) Vec2 { return Vec2(v.point().Add(o.point())) }

// Sub 返回 v - o
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2(v.point().Sub(o.point())) }

// Scale 返回 v * k
func (v Vec2) Scale(k float64) Vec2 { return Vec2(v.point().Mul(k)) }

// Len 返回向量长度
func (v Vec2) Len() float64 { return v.point().Norm() }

// Normalize 返回单位向量，零向量返回零向量
func (v Vec2) Normalize() Vec2 { return Vec2(v.point().Normalize()) }

// ClampLength 将向量长度限制在 maxLen 以内，方向不变
func (v Vec2) ClampLength(maxLen float64) Vec2 {
	if v.Len() > maxLen {
		return v.Normalize().Scale(maxLen)
	}
	return v
}

// Rect 轴对齐矩形
type Rect r2.Rect

// NewRect 以左上角和宽高创建矩形
func NewRect(x, y, w, h float64) Rect {
	return Rect(r2.RectFromPoints(r2.Point{X: x, Y: y}, r2.Point{X: x + w, Y: y + h}))
}

// SquareAround 返回以 (cx, cy) 为中心、半边长 half 的正方形
func SquareAround(cx, cy, half float64) Rect {
	return Rect(r2.RectFromCenterSize(r2.Point{X: cx, Y: cy}, r2.Point{X: half * 2, Y: half * 2}))
}

func (r Rect) rect() r2.Rect { return r2.Rect(r) }

// Left 左边界
func (r Rect) Left() float64 { return r.X.Lo }

// Right 右边界
func (r Rect) Right() float64 { return r.X.Hi }

// Top 上边界
func (r Rect) Top() float64 { return r.Y.Lo }

// Bottom 下边界
func (r Rect) Bottom() float64 { return r.Y.Hi }

// Width 宽度
func (r Rect) Width() float64 { return r.X.Length() }

// Height 高度
func (r Rect) Height() float64 { return r.Y.Length() }

// Offset 返回平移后的矩形
func (r Rect) Offset(dx, dy float64) Rect {
	d := r2.Point{X: dx, Y: dy}
	return Rect(r2.RectFromPoints(r.rect().Lo().Add(d), r.rect().Hi().Add(d)))
}

// ContainsPoint 点是否在矩形内（左闭右开，上闭下开）
func (r Rect) ContainsPoint(x, y float64) bool {
	return r.rect().ContainsPoint(r2.Point{X: x, Y: y}) && x < r.Right() && y < r.Bottom()
}

// ClosestPointOnRect 返回矩形上（含内部）距离点 (x, y) 最近的点
func ClosestPointOnRect(x, y float64, r Rect) (px, py float64) {
	p := r.rect().ClampPoint(r2.Point{X: x, Y: y})
	return p.X, p.Y
}

// CircleRectHit 圆与矩形的碰撞检测
//
// 参数:
//   - cx, cy: 圆心
//   - radius: 半径
//   - r: 矩形
//
// 返回:
//   - hit: 圆心到最近点的距离平方不超过半径平方时为 true
//   - closest: 矩形上距圆心最近的点
//   - delta: 圆心减去最近点的向量（圆心在矩形内部时为零向量）
func CircleRectHit(cx, cy, radius float64, r Rect) (hit bool, closest, delta Vec2) {
	center := r2.Point{X: cx, Y: cy}
	c := r.rect().ClampPoint(center)
	d := center.Sub(c)
	return d.Dot(d) <= radius*radius, Vec2(c), Vec2(d)
}
