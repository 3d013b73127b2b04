package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/pickpool/go/internal/models"
)

func TestDefaultTemplate(t *testing.T) {
	tmpl, err := DefaultTemplate()
	require.NoError(t, err)

	assert.Equal(t, 7, tmpl.DefaultDays)
	assert.Equal(t, 1, tmpl.GapDays)
	require.Len(t, tmpl.Tiers, 3)

	pre, reg, post := tmpl.Tiers[0], tmpl.Tiers[1], tmpl.Tiers[2]
	assert.Equal(t, models.PeriodTypePreseason, pre.PeriodType)
	assert.True(t, pre.Optional)
	assert.Len(t, pre.Periods, 5)
	assert.True(t, pre.Periods[0].Activate)

	assert.Equal(t, models.PeriodTypeRegular, reg.PeriodType)
	assert.False(t, reg.Optional)
	assert.Len(t, reg.Periods, 17)

	assert.True(t, post.Optional)
	superBowl := post.Periods[len(post.Periods)-1]
	assert.Equal(t, 14, tmpl.days(superBowl))
	assert.Equal(t, 7, tmpl.days(post.Periods[0]))
}

func TestParseTemplate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no tiers", "default_days: 7\n"},
		{"zero days", "default_days: 0\ntiers:\n  - period_type: 2\n    periods:\n      - {name: Week 1, contests: 1}\n"},
		{"no contests", "default_days: 7\ntiers:\n  - period_type: 2\n    periods:\n      - {name: Week 1, contests: 0}\n"},
		{"unnamed period", "default_days: 7\ntiers:\n  - period_type: 2\n    periods:\n      - {contests: 3}\n"},
		{"missing period type", "default_days: 7\ntiers:\n  - periods:\n      - {name: Week 1, contests: 3}\n"},
		{"bad yaml", "tiers: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTemplate([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
