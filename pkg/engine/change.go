// pkg/engine/change.go
package engine

import "math"

// PercentChange 计算两次采样之间的百分比变化。
// previous 为 0 时视为无基线，显式返回 0 而不是报错，
// 这样零基线永远不会被判定为异动。
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / math.Abs(previous) * 100
}

// AbsoluteChange 计算两次采样之间的绝对差值（点数）。
// 互动率、评分这类小基数指标用绝对差值分级，相对百分比在小基线附近不稳定。
func AbsoluteChange(current, previous float64) float64 {
	return current - previous
}
