package components

// PositionComponent 实体在画布上的位置（像素）
// 对圆形刚体表示圆心，对贴图表示左上角
type PositionComponent struct {
	X, Y float64
}

// VelocityComponent 实体速度（像素/秒）
type VelocityComponent struct {
	VX, VY float64
}
