package metrics

// SessionFinalScore 会话内所有已评分题目的平均分，保留两位小数；无评分时为 nil。
// 每次都对全部题目重新求均值，与评分顺序无关。
func SessionFinalScore(scores []*float64) *float64 {
	sum := 0.0
	n := 0
	for _, s := range scores {
		if s == nil {
			continue
		}
		sum += *s
		n++
	}
	if n == 0 {
		return nil
	}
	avg := round2(sum / float64(n))
	return &avg
}

// ClampFeedbackScore 单题 AI 评分限制在 0-10
func ClampFeedbackScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
