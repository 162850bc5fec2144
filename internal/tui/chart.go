package tui

// Sub-block characters for fractional fill within a single row.
var sparkRunes = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// sparkline renders values as a one-row block chart scaled to the window's
// own min and max. Wider histories than width are averaged down first.
func sparkline(values []float64, width int) string {
	if len(values) == 0 || width < 1 {
		return ""
	}

	vals := resample(values, width)

	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi <= lo {
		hi = lo + 1
	}

	out := make([]rune, 0, len(vals))
	for _, v := range vals {
		idx := int((v - lo) / (hi - lo) * float64(len(sparkRunes)))
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		if idx < 0 {
			idx = 0
		}
		out = append(out, sparkRunes[idx])
	}
	return string(out)
}

// resample reduces data to fit targetWidth columns by averaging each
// column's source bucket. Shorter data is returned as is.
func resample(data []float64, targetWidth int) []float64 {
	if len(data) <= targetWidth {
		return data
	}
	result := make([]float64, targetWidth)
	for i := 0; i < targetWidth; i++ {
		srcStart := i * len(data) / targetWidth
		srcEnd := (i + 1) * len(data) / targetWidth
		if srcEnd > len(data) {
			srcEnd = len(data)
		}
		if srcStart >= srcEnd {
			srcStart = srcEnd - 1
		}
		sum := float64(0)
		for j := srcStart; j < srcEnd; j++ {
			sum += data[j]
		}
		result[i] = sum / float64(srcEnd-srcStart)
	}
	return result
}
