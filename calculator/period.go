package calculator

// periodMeter 记录障碍物升力 Fy 由负变正的时刻，两次之间的间隔即为涡脱落周期
type periodMeter struct {
	lastFy       float64
	lastCrossing float64
}

func newPeriodMeter() *periodMeter {
	return &periodMeter{lastFy: 1}
}

// observe takes the force at step t and returns a period once two upward zero crossings have been seen.
func (m *periodMeter) observe(t int, fy float64) (float64, bool) {
	var (
		period float64
		ok     bool
	)
	if fy > 0 && m.lastFy <= 0 {
		// 线性插值得到过零时刻
		crossing := float64(t) - fy/(fy-m.lastFy)
		if m.lastCrossing > 0 {
			period = crossing - m.lastCrossing
			ok = true
		}
		m.lastCrossing = crossing
	}
	m.lastFy = fy
	return period, ok
}
