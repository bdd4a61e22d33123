package components

// RoundPhase 回合阶段
type RoundPhase int

const (
	// RoundPhaseIdle 小鸭在发射台上
	RoundPhaseIdle RoundPhase = iota
	// RoundPhaseInFlight 小鸭飞行中
	RoundPhaseInFlight
	// RoundPhaseWon 已获胜（终态，只能通过重开离开）
	RoundPhaseWon
)

// String 返回阶段名称（用于日志）
func (p RoundPhase) String() string {
	switch p {
	case RoundPhaseIdle:
		return "idle"
	case RoundPhaseInFlight:
		return "in-flight"
	case RoundPhaseWon:
		return "won"
	}
	return "unknown"
}

// RoundStateComponent 回合状态（场景中的单例实体）
type RoundStateComponent struct {
	// Shots 已发射次数
	Shots int

	// MaxShots 每回合发射上限
	MaxShots int

	// Won 是否已获胜
	Won bool

	// Elapsed 本回合累计时间（秒）
	Elapsed float64

	// Recorded 本回合结果是否已写入历史
	Recorded bool
}

// CanShoot 是否还能发射
func (r *RoundStateComponent) CanShoot() bool {
	return !r.Won && r.Shots < r.MaxShots
}

// Phase 根据获胜标记和小鸭发射状态推导回合阶段
func (r *RoundStateComponent) Phase(launched bool) RoundPhase {
	switch {
	case r.Won:
		return RoundPhaseWon
	case launched:
		return RoundPhaseInFlight
	default:
		return RoundPhaseIdle
	}
}
