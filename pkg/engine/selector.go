// pkg/engine/selector.go
package engine

import "time"

// Sample 一次指标采样，来源可以是指标表也可以是快照台账的聚合
type Sample struct {
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
}

// SelectPair 从按时间倒序排列的采样中选出比较对。
// 最新一条无条件作为 latest；往旧方向扫描，第一条与 latest
// 时间差超过 minGap 的作为 previous。找不到合格的 previous 时
// 返回 (latest, nil)，本周期视为历史不足，跳过检测。
//
// 采集任务一天可能跑多次或失败重试，若拿相邻两条比较，
// 会把采集抖动误判成真实变化，minGap 就是为此设的。
func SelectPair(samples []Sample, minGap time.Duration) (*Sample, *Sample) {
	if len(samples) == 0 {
		return nil, nil
	}

	latest := samples[0]
	for i := 1; i < len(samples); i++ {
		if latest.RecordedAt.Sub(samples[i].RecordedAt) > minGap {
			return &latest, &samples[i]
		}
	}
	return &latest, nil
}
