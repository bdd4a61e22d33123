package components

// SlingshotDragComponent 弹弓拖拽状态
// 只在按住小鸭到松开之间有效
type SlingshotDragComponent struct {
	Dragging bool

	// StartX/StartY 按下位置
	StartX, StartY float64

	// CurrentX/CurrentY 当前指针位置
	CurrentX, CurrentY float64
}

// Begin 开始拖拽
func (d *SlingshotDragComponent) Begin(x, y float64) {
	d.Dragging = true
	d.StartX, d.StartY = x, y
	d.CurrentX, d.CurrentY = x, y
}

// Cancel 取消拖拽
func (d *SlingshotDragComponent) Cancel() {
	d.Dragging = false
}

// TrajectoryPreviewComponent 轨迹预览点
// 由 TrajectorySystem 每帧重新计算，只用于渲染
type TrajectoryPreviewComponent struct {
	Points []PreviewPoint
}

// PreviewPoint 预览标记位置
type PreviewPoint struct {
	X, Y float64
}
