package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/schedule"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "จันทร์", schedule.WeekdayName(monday))
	assert.Equal(t, "อาทิตย์", schedule.WeekdayName(monday.AddDate(0, 0, 6)))
}

func TestIsLevelAvailable(t *testing.T) {
	s := models.Schedule{
		Lv3: []string{"จันทร์"},
		Lv4: []string{"อังคาร"},
		Lv5: []int{2, 15},
		Lv6: []int{3},
	}

	for _, l := range []models.Level{1, 2, 7, models.LevelMistakes} {
		assert.True(t, schedule.IsLevelAvailable(models.Schedule{}, l, monday), "level %s", l)
	}
	assert.True(t, schedule.IsLevelAvailable(s, 3, monday))
	assert.False(t, schedule.IsLevelAvailable(s, 4, monday))
	assert.True(t, schedule.IsLevelAvailable(s, 5, monday))
	assert.False(t, schedule.IsLevelAvailable(s, 6, monday))
	assert.True(t, schedule.IsLevelAvailable(s, 6, monday.AddDate(0, 0, 1)))
}

func TestToggleWeekday_Capacity(t *testing.T) {
	var s models.Schedule
	var err error
	for _, day := range schedule.Weekdays {
		s, err = schedule.ToggleWeekday(s, day)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(s.Lv3), schedule.Lv3Capacity)
		assert.LessOrEqual(t, len(s.Lv4), schedule.Lv4Capacity)
		for _, d := range s.Lv3 {
			assert.NotContains(t, s.Lv4, d)
		}
	}

	assert.Equal(t, []string{"จันทร์", "อังคาร"}, s.Lv3)
	assert.Equal(t, []string{"พุธ"}, s.Lv4)
}

func TestToggleWeekday_RemovalFromSecondListIsNotReassigned(t *testing.T) {
	s := models.Schedule{Lv3: []string{"จันทร์"}, Lv4: []string{"พุธ"}}

	s, err := schedule.ToggleWeekday(s, "พุธ")
	require.NoError(t, err)
	assert.Equal(t, []string{"จันทร์"}, s.Lv3)
	assert.Empty(t, s.Lv4)

	s, err = schedule.ToggleWeekday(s, "พุธ")
	require.NoError(t, err)
	assert.Equal(t, []string{"จันทร์", "พุธ"}, s.Lv3)

	s, err = schedule.ToggleWeekday(s, "จันทร์")
	require.NoError(t, err)
	assert.Equal(t, []string{"พุธ"}, s.Lv3)
}

func TestToggleWeekday_BothFullIsNoop(t *testing.T) {
	s := models.Schedule{Lv3: []string{"จันทร์", "อังคาร"}, Lv4: []string{"พุธ"}}

	out, err := schedule.ToggleWeekday(s, "ศุกร์")
	require.NoError(t, err)
	assert.Equal(t, s, out)
}

func TestToggleDate(t *testing.T) {
	var s models.Schedule
	var err error
	for _, d := range []int{5, 10, 20, 25} {
		s, err = schedule.ToggleDate(s, d)
		require.NoError(t, err)
	}
	assert.Equal(t, []int{5, 10}, s.Lv5)
	assert.Equal(t, []int{20}, s.Lv6)

	_, err = schedule.ToggleDate(s, 31)
	assert.Error(t, err)
	_, err = schedule.ToggleDate(s, 0)
	assert.Error(t, err)
}

func TestToggle_DoesNotAliasInput(t *testing.T) {
	lv5 := make([]int, 1, 4)
	lv5[0] = 1
	s := models.Schedule{Lv5: lv5}

	out, err := schedule.ToggleDate(s, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, out.Lv5)
	assert.Equal(t, 0, lv5[:2][1], "backing array of the input is untouched")
}

func TestToggleWeekday_UnknownName(t *testing.T) {
	_, err := schedule.ToggleWeekday(models.Schedule{}, "Monday")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	s := schedule.Normalize(models.Schedule{
		Lv3: []string{"จันทร์", "จันทร์", "bogus", "อังคาร", "พุธ"},
		Lv4: []string{"จันทร์", "เสาร์"},
		Lv5: []int{0, 31, 4},
		Lv6: []int{4, 9, 10},
	})

	assert.Equal(t, []string{"จันทร์", "อังคาร"}, s.Lv3)
	assert.Equal(t, []string{"เสาร์"}, s.Lv4)
	assert.Equal(t, []int{4}, s.Lv5)
	assert.Equal(t, []int{9}, s.Lv6)
}
