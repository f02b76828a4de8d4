package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwese/gitlab-toolbox/internal/gitlab"
)

func sampleSchedules() []gitlab.Schedule {
	return []gitlab.Schedule{
		{
			ID:           9,
			Description:  "Nightly build",
			Ref:          "main",
			Cron:         "0 2 * * *",
			CronTimezone: "UTC",
			NextRunAt:    "2025-06-02T02:00:00Z",
			Active:       true,
			Owner:        &gitlab.User{Username: "kara"},
			LastPipeline: &gitlab.ScheduleLastPipeline{ID: 305, SHA: "bbb", Ref: "main", Status: "success"},
		},
		{
			ID:          10,
			Description: "Disabled sweep",
			Ref:         "main",
			Cron:        "0 4 * * 0",
		},
	}
}

func TestSchedulesTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Schedules(&buf, Table, sampleSchedules()))

	out := buf.String()
	assert.Contains(t, out, "Nightly build")
	assert.Contains(t, out, "kara")
	assert.Contains(t, out, "success")
	assert.NotContains(t, out, "\x1b")

	// Owner and last pipeline columns render empty, not omitted, when unset.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[3], "Disabled sweep")
	assert.NotContains(t, lines[3], "kara")
}

func TestSchedulesCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Schedules(&buf, CSV, sampleSchedules()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Description,Ref,Cron,Timezone,Next Run,Active,Owner,Last Pipeline", lines[0])
	assert.Equal(t, "9,Nightly build,main,0 2 * * *,UTC,2025-06-02T02:00:00Z,Yes,kara,success", lines[1])
	assert.Equal(t, "10,Disabled sweep,main,0 4 * * 0,,,No,,", lines[2])
}

func TestSchedulesUnsupported(t *testing.T) {
	t.Parallel()

	var unsupported *UnsupportedError
	require.ErrorAs(t, Schedules(&bytes.Buffer{}, Tree, nil), &unsupported)
	assert.Equal(t, "schedules", unsupported.Entity)
}

func TestScheduleDetail(t *testing.T) {
	t.Parallel()

	t.Run("with last pipeline", func(t *testing.T) {
		t.Parallel()

		s := sampleSchedules()[0]
		var buf bytes.Buffer
		require.NoError(t, ScheduleDetail(&buf, Detail, &s))

		out := buf.String()
		assert.Contains(t, out, "Schedule #9 - Nightly build")
		assert.Contains(t, out, "kara")
		assert.Contains(t, out, "#305")
		assert.Contains(t, out, "(main)")
	})

	t.Run("without last pipeline", func(t *testing.T) {
		t.Parallel()

		s := sampleSchedules()[1]
		var buf bytes.Buffer
		require.NoError(t, ScheduleDetail(&buf, Detail, &s))

		out := buf.String()
		assert.Contains(t, out, "Last Pipeline:")
		assert.NotContains(t, out, "#0")
	})
}
