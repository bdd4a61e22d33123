package components

// TimerComponent 通用计时器组件
// 用帧时间累加代替全局时钟查询，用于延迟显示遮罩等行为
type TimerComponent struct {
	Name        string  // 计时器名称，如 "done_overlay"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 计时器是否已完成
}

// Advance 累加时间，达到目标后置为就绪
func (t *TimerComponent) Advance(dt float64) {
	if t.IsReady {
		return
	}
	t.CurrentTime += dt
	if t.CurrentTime >= t.TargetTime {
		t.IsReady = true
	}
}

// Reset 清零计时器
func (t *TimerComponent) Reset() {
	t.CurrentTime = 0
	t.IsReady = false
}
