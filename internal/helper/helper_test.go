package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormInterval(t *testing.T) {
	assert.Equal(t, "1h", NormInterval("60m"))
	assert.Equal(t, "1h", NormInterval(" 1H "))
	assert.Equal(t, "5m", NormInterval("kline_5m"))
	assert.Equal(t, "4h", NormInterval("4h"))
}

func TestPctChange(t *testing.T) {
	assert.InDelta(t, 5.0, PctChange(100, 105), 1e-9)
	assert.InDelta(t, -3.0, PctChange(100, 97), 1e-9)
	assert.Zero(t, PctChange(0, 42))
}

func TestRoundDownToStep(t *testing.T) {
	assert.InDelta(t, 0.123456, RoundDownToStep(0.12345678, 1e-6), 1e-12)
	assert.InDelta(t, 1.5, RoundDownToStep(1.5, 0), 1e-12)
}
