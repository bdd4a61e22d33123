package components

// DuckBodyComponent 小鸭刚体组件
//
// 与 PositionComponent（圆心）和 VelocityComponent 配合使用。
// 仅在 Launched 为 true 时参与物理积分。
type DuckBodyComponent struct {
	// Radius 碰撞半径（像素），一个回合内不变
	Radius float64

	// StartX/StartY 发射台位置，复位时回到这里
	StartX, StartY float64

	// Launched 是否已发射（飞行中）
	Launched bool

	// RestCounter 连续静止的物理步数
	RestCounter int
}

// Reset 将小鸭放回发射台
// 位置回到起点、速度清零、取消发射状态
func (b *DuckBodyComponent) Reset(pos *PositionComponent, vel *VelocityComponent) {
	pos.X, pos.Y = b.StartX, b.StartY
	vel.VX, vel.VY = 0, 0
	b.Launched = false
	b.RestCounter = 0
}

// Launch 以给定速度发射小鸭
func (b *DuckBodyComponent) Launch(vel *VelocityComponent, vx, vy float64) {
	vel.VX, vel.VY = vx, vy
	b.Launched = true
	b.RestCounter = 0
}
