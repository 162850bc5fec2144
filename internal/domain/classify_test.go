package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name      string
		level     float64
		prevLevel float64
		expected  Status
	}{
		{"steady below thresholds", 0.85, 0.84, StatusOK},
		{"falling level", 0.80, 0.95, StatusOK},
		{"zero level", 0, 0.02, StatusOK},
		{"rise below watch delta", 0.91, 0.80, StatusOK},
		{"rise at watch delta", 0.95, 0.80, StatusWatch},
		{"large rise below alert level", 1.10, 0.90, StatusWatch},
		{"at alert level exactly", 1.20, 1.19, StatusAlert},
		{"above alert level", 1.25, 1.10, StatusAlert},
		{"alert while falling", 1.22, 1.30, StatusAlert},
		{"alert wins over watch", 1.30, 1.00, StatusAlert},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.level, tt.prevLevel, th)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestClassify_Idempotent(t *testing.T) {
	th := DefaultThresholds()

	first := Classify(1.25, 1.10, th)
	second := Classify(1.25, 1.10, th)

	assert.Equal(t, StatusAlert, first)
	assert.Equal(t, first, second)
}

func TestClassify_CustomThresholds(t *testing.T) {
	th := Thresholds{AlertLevel: 2.0, SurgePerTick: 0.4}

	assert.Equal(t, StatusOK, Classify(1.25, 1.10, th))
	assert.Equal(t, StatusWatch, Classify(1.45, 1.10, th))
	assert.Equal(t, StatusAlert, Classify(2.05, 2.00, th))
}

func TestThresholds_WatchDelta(t *testing.T) {
	assert.InDelta(t, 0.1125, DefaultThresholds().WatchDelta(), 1e-9)
}
