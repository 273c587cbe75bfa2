package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skotchmaster/inventory_api/internal/util"
)

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 7, util.ParseIntDefault("7", 1))
	assert.Equal(t, 1, util.ParseIntDefault("", 1))
	assert.Equal(t, 1, util.ParseIntDefault("abc", 1))
	assert.Equal(t, -3, util.ParseIntDefault("-3", 1))
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		size      int
		wantFrom  int
		wantLimit int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page clamps to first", 0, 10, 0, 10},
		{"negative page clamps to first", -5, 10, 0, 10},
		{"zero size falls back to default", 2, 0, util.DefaultPageSize, util.DefaultPageSize},
		{"negative size falls back to default", 1, -1, 0, util.DefaultPageSize},
		{"oversized size clamps to max", 1, 500, 0, util.MaxPageSize},
		{"max size passes through", 2, util.MaxPageSize, util.MaxPageSize, util.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, limit := util.Calculate(tt.page, tt.size)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
