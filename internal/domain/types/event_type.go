package types

type AttendanceEvent string

func (e AttendanceEvent) String() string {
	return string(e)
}

const (
	EventNewAttendance AttendanceEvent = "new_attendance"
	EventReset         AttendanceEvent = "attendance_reset"
	EventLectureEnded  AttendanceEvent = "lecture_ended"
)
