package metrics

import "math"

// round 四舍五入到整数（.5 向上），与前端展示口径一致
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// round1 保留一位小数
func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// round2 保留两位小数
func round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
