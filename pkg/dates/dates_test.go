package dates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/bankrot/pkg/dates"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2020-01-31", "31.01.2020"},
		{"2020-01-31T10:00:00+03:00", "31.01.2020"},
		{"2020-01-31T23:30:00-05:00", "31.01.2020"},
		{"2020-01-31T10:00:00.123Z", "31.01.2020"},
		{"2020-01-31T10:00:00", "31.01.2020"},
		{" 2019-12-01 ", "01.12.2019"},
		{"not-a-date", ""},
		{"2020-13-01", ""},
		{"2020-01", ""},
		{"31.01.2020", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, dates.Normalize(tt.raw))
		})
	}
}

func TestNormalizeOrKeep(t *testing.T) {
	assert.Equal(t, "31.01.2020", dates.NormalizeOrKeep("2020-01-31T00:00:00+03:00"))
	assert.Equal(t, "31.01.2020", dates.NormalizeOrKeep(" 31.01.2020 "))
	assert.Equal(t, "", dates.NormalizeOrKeep("   "))
}
