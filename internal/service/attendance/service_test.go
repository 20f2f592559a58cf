package attendance

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func admit(t *testing.T, f *fixture, enrollment string) string {
	t.Helper()
	ctx := context.Background()

	v, err := f.svc.Validate(ctx, enrollment, "37.7749", "-122.4194")
	require.NoError(t, err)

	a, err := f.svc.SubmitCode(ctx, v.Ticket, "123456")
	require.NoError(t, err)
	return a.Ticket
}

func TestValidate_LocationMissing(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Validate(context.Background(), "21", "", "-122.4194")
	assert.ErrorIs(t, err, types.ErrLocationMissing)

	_, err = f.svc.Validate(context.Background(), "21", "37.7749", "  ")
	assert.ErrorIs(t, err, types.ErrLocationMissing)
}

func TestValidate_InvalidLocation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Validate(context.Background(), "21", "north", "0")
	assert.ErrorIs(t, err, types.ErrInvalidLocation)

	_, err = f.svc.Validate(context.Background(), "21", "91", "0")
	assert.ErrorIs(t, err, types.ErrInvalidLocation)
}

func TestValidate_UnknownStudent(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Validate(context.Background(), "999", "1", "2")
	assert.ErrorIs(t, err, types.ErrStudentNotFound)
}

func TestValidate_Success(t *testing.T) {
	f := newFixture()

	v, err := f.svc.Validate(context.Background(), " 21 ", "90", "-180")
	require.NoError(t, err)

	assert.Equal(t, "Arman", v.Student.Name)
	assert.Equal(t, "https://lh3.googleusercontent.com/d/1XyZ", v.Student.ImageURL)
	assert.Equal(t, 90.0, v.Reading.Latitude)
	assert.Equal(t, -180.0, v.Reading.Longitude)
	assert.NotEmpty(t, v.Ticket)

	again, err := f.svc.Verified(context.Background(), v.Ticket)
	require.NoError(t, err)
	assert.Equal(t, v.Student, again.Student)
}

func TestSubmitCode_NoLecture(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	v, err := f.svc.Validate(ctx, "21", "1", "2")
	require.NoError(t, err)

	_, err = f.svc.SubmitCode(ctx, v.Ticket, "123456")
	assert.ErrorIs(t, err, types.ErrInvalidCode)
}

func TestSubmitCode_WrongCode(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.StartLecture(ctx, "Graphs", "2026-10-19")
	require.NoError(t, err)

	v, err := f.svc.Validate(ctx, "21", "1", "2")
	require.NoError(t, err)

	_, err = f.svc.SubmitCode(ctx, v.Ticket, "654321")
	assert.ErrorIs(t, err, types.ErrInvalidCode)
}

func TestSubmitCode_RejectsAdmittedTicketReplay(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.StartLecture(ctx, "Graphs", "2026-10-19")
	require.NoError(t, err)
	admitted := admit(t, f, "21")

	_, err = f.svc.SubmitCode(ctx, admitted, "123456")
	assert.ErrorIs(t, err, types.ErrTicketStage)
}

func TestMark_SuccessThenAlready(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.StartLecture(ctx, "Graphs", "2026-10-19")
	require.NoError(t, err)
	ticket := admit(t, f, "21")

	status, err := f.svc.Mark(ctx, ticket)
	require.NoError(t, err)
	assert.Equal(t, types.MarkSuccess, status)

	status, err = f.svc.Mark(ctx, ticket)
	require.NoError(t, err)
	assert.Equal(t, types.MarkAlready, status)

	records, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "21", records[0].Enrollment)
	assert.Equal(t, 37.7749, records[0].Latitude)
	assert.Equal(t, -122.4194, records[0].Longitude)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, types.EventNewAttendance, f.notifier.events[0].Event)
	assert.Len(t, f.notifier.events[0].Records, 1)
}

func TestMark_ListSortedNumerically(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.StartLecture(ctx, "Graphs", "2026-10-19")
	require.NoError(t, err)

	for _, enr := range []string{"210", "21"} {
		_, err := f.svc.Mark(ctx, admit(t, f, enr))
		require.NoError(t, err)
	}

	records, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "21", records[0].Enrollment)
	assert.Equal(t, "210", records[1].Enrollment)
}

func TestMark_LectureEnded(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.StartLecture(ctx, "Graphs", "2026-10-19")
	require.NoError(t, err)
	ticket := admit(t, f, "21")

	require.NoError(t, f.svc.EndLecture(ctx))

	_, err = f.svc.Mark(ctx, ticket)
	assert.ErrorIs(t, err, types.ErrLectureEnded)

	// a new lecture does not accept tickets of the old one
	_, err = f.svc.StartLecture(ctx, "Trees", "2026-10-20")
	require.NoError(t, err)
	_, err = f.svc.Mark(ctx, ticket)
	assert.ErrorIs(t, err, types.ErrLectureEnded)

	_, _, err = f.svc.Admitted(ctx, ticket)
	assert.ErrorIs(t, err, types.ErrLectureEnded)
}

func TestStartLecture_KeepsRunningLecture(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.svc.StartLecture(ctx, "Graphs", "2026-10-19")
	require.NoError(t, err)

	f.svc.newCode = func() (string, error) { return "999999", nil }
	second, err := f.svc.StartLecture(ctx, "Other", "2026-10-20")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "123456", second.Code)
	assert.Equal(t, "Graphs", second.Topic)
}

func TestReset_KeepsCode(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	lecture, err := f.svc.StartLecture(ctx, "Graphs", "2026-10-19")
	require.NoError(t, err)
	_, err = f.svc.Mark(ctx, admit(t, f, "21"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Reset(ctx))

	overview, err := f.svc.Overview(ctx)
	require.NoError(t, err)
	require.NotNil(t, overview.Lecture)
	assert.Equal(t, lecture.Code, overview.Lecture.Code)
	assert.Zero(t, overview.Total)

	last := f.notifier.events[len(f.notifier.events)-1]
	assert.Equal(t, types.EventReset, last.Event)
	assert.Empty(t, last.Records)
}

func TestEndLecture_ClearsOverview(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.StartLecture(ctx, "Graphs", "2026-10-19")
	require.NoError(t, err)
	_, err = f.svc.Mark(ctx, admit(t, f, "21"))
	require.NoError(t, err)

	require.NoError(t, f.svc.EndLecture(ctx))
	require.NoError(t, f.svc.EndLecture(ctx), "ending twice is a no-op")

	overview, err := f.svc.Overview(ctx)
	require.NoError(t, err)
	assert.Nil(t, overview.Lecture)
	assert.Zero(t, overview.Total)

	records, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSheet(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Sheet(ctx)
	assert.ErrorIs(t, err, types.ErrNoAttendance)

	_, err = f.svc.StartLecture(ctx, "Graphs", "2026-10-19")
	require.NoError(t, err)

	_, err = f.svc.Sheet(ctx)
	assert.ErrorIs(t, err, types.ErrNoAttendance)

	_, err = f.svc.Mark(ctx, admit(t, f, "21"))
	require.NoError(t, err)

	sheet, err := f.svc.Sheet(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Graphs", sheet.Lecture.Topic)
	assert.Len(t, sheet.Records, 1)
}

func TestRandomCode_Range(t *testing.T) {
	for range 200 {
		code, err := randomCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestReads_RunReadOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.StartLecture(ctx, "Graphs", "2026-10-19")
	require.NoError(t, err)
	_, err = f.svc.Mark(ctx, admit(t, f, "21"))
	require.NoError(t, err)
	writes := f.tx.readWrite.Load()

	_, err = f.svc.List(ctx)
	require.NoError(t, err)
	_, err = f.svc.Overview(ctx)
	require.NoError(t, err)
	_, err = f.svc.Sheet(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(3), f.tx.readOnly.Load())
	assert.Equal(t, writes, f.tx.readWrite.Load())
}

// endedElsewhere reports the lecture as running but loses the update to a concurrent end.
type endedElsewhere struct {
	*memLectures
}

func (endedElsewhere) End(context.Context, uuid.UUID, time.Time) error {
	return types.ErrNotFound
}

func TestEndLecture_ConcurrentEndIsNoop(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.StartLecture(ctx, "Graphs", "2026-10-19")
	require.NoError(t, err)
	f.svc.lectures = endedElsewhere{f.lectures}

	require.NoError(t, f.svc.EndLecture(ctx))
	for _, e := range f.notifier.events {
		assert.NotEqual(t, types.EventLectureEnded, e.Event)
	}
}

func TestEndLecture_DatabaseFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.StartLecture(ctx, "Graphs", "2026-10-19")
	require.NoError(t, err)
	f.svc.lectures = failingEnd{f.lectures}

	assert.ErrorIs(t, f.svc.EndLecture(ctx), types.ErrDatabaseFailed)
}

type failingEnd struct {
	*memLectures
}

func (failingEnd) End(context.Context, uuid.UUID, time.Time) error {
	return fmt.Errorf("LectureRepo.End: %w", types.ErrDatabaseFailed)
}
