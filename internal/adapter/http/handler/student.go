package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	"github.com/Temutjin2k/geo-attendance/pkg/logger"
	wrap "github.com/Temutjin2k/geo-attendance/pkg/logger/wrapper"
	"github.com/Temutjin2k/geo-attendance/pkg/validator"
)

// Student serves the check-in flow: enroll, verify, submit code, mark.
type Student struct {
	svc   AttendanceService
	pages *Pages
	l     logger.Logger
}

func NewStudent(svc AttendanceService, pages *Pages, l logger.Logger) *Student {
	return &Student{
		svc:   svc,
		pages: pages,
		l:     l,
	}
}

// Index godoc
// @Summary      Landing page
// @Tags         Student
// @Produce      html
// @Success      200
// @Router       / [get]
func (h *Student) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageIndex, flashPage{})
}

// Enroll godoc
// @Summary      Enrollment form with the location button
// @Tags         Student
// @Produce      html
// @Success      200
// @Router       /enroll [get]
func (h *Student) Enroll(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageEnroll, flashPage{})
}

// Validate godoc
// @Summary      Look up the student and show the verify page
// @Tags         Student
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        enrollment  formData  string  true  "Enrollment number"
// @Param        latitude    formData  string  true  "Latitude"
// @Param        longitude   formData  string  true  "Longitude"
// @Success      200
// @Failure      404
// @Failure      422
// @Router       /validate [post]
func (h *Student) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	v, err := h.svc.Validate(ctx,
		r.PostFormValue("enrollment"),
		r.PostFormValue("latitude"),
		r.PostFormValue("longitude"),
	)
	if err != nil {
		h.fail(w, r, err, pageEnroll, flashPage{Flash: flashMessage(err)})
		return
	}

	h.render(w, r, http.StatusOK, pageVerify, verifyPage{
		Student: v.Student,
		Reading: v.Reading,
		Ticket:  v.Ticket,
	})
}

// SubmitCode godoc
// @Summary      Check the lecture code
// @Description  Redirects to the lecture page on success and shows the verify page again otherwise.
// @Tags         Student
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        ticket  formData  string  true  "Verified ticket"
// @Param        code    formData  string  true  "Six digit lecture code"
// @Success      303
// @Failure      401
// @Failure      403
// @Router       /submit_code [post]
func (h *Student) SubmitCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticket, code := r.PostFormValue("ticket"), r.PostFormValue("code")

	v := validator.New()
	v.Check(validator.Digits(code, 6), "code", "must be six digits")

	err := types.ErrInvalidCode
	if v.Valid() {
		var adm *models.Admission
		if adm, err = h.svc.SubmitCode(ctx, ticket, code); err == nil {
			http.Redirect(w, r, "/lecture?ticket="+url.QueryEscape(adm.Ticket), http.StatusSeeOther)
			return
		}
	}

	if !errors.Is(err, types.ErrInvalidCode) {
		h.fail(w, r, err, pageEnroll, flashPage{Flash: flashMessage(err)})
		return
	}

	// show the verify page again so the student does not restart enrollment
	verified, verr := h.svc.Verified(ctx, ticket)
	if verr != nil {
		h.fail(w, r, verr, pageEnroll, flashPage{Flash: flashMessage(verr)})
		return
	}
	h.render(w, r, GetCode(err), pageVerify, verifyPage{
		Flash:   msgInvalidCode,
		Student: verified.Student,
		Reading: verified.Reading,
		Ticket:  verified.Ticket,
	})
}

// Lecture godoc
// @Summary      Lecture page with the mark attendance action
// @Tags         Student
// @Produce      html
// @Param        ticket  query  string  true  "Admitted ticket"
// @Success      200
// @Failure      401
// @Failure      409
// @Router       /lecture [get]
func (h *Student) Lecture(w http.ResponseWriter, r *http.Request) {
	ticket := r.URL.Query().Get("ticket")

	t, lecture, err := h.svc.Admitted(r.Context(), ticket)
	if err != nil {
		h.fail(w, r, err, pageEnroll, flashPage{Flash: flashMessage(err)})
		return
	}

	h.render(w, r, http.StatusOK, pageLecture, lecturePage{
		Lecture: *lecture,
		Student: t.Student,
		Ticket:  ticket,
	})
}

// MarkAttendance godoc
// @Summary      Mark attendance
// @Tags         Student
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        ticket  formData  string  true  "Admitted ticket"
// @Success      200  {object}  map[string]string  "status is success or already"
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /mark_attendance [post]
func (h *Student) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status, err := h.svc.Mark(ctx, r.PostFormValue("ticket"))
	if err != nil {
		code := GetCode(err)
		if code == http.StatusInternalServerError {
			h.l.Error(wrap.ErrorCtx(ctx, err), "failed to mark attendance", err)
		}
		errorResponse(w, code, flashMessage(err))
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"status": status}, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// GetAttendance godoc
// @Summary      Attendance of the running lecture
// @Tags         Student
// @Produce      json
// @Success      200  {array}  models.AttendanceRecord
// @Router       /get_attendance [get]
func (h *Student) GetAttendance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.svc.List(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list attendance", err)
		internalErrorResponse(w, msgInternal)
		return
	}

	if err := writeJSON(w, http.StatusOK, records, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// fail renders page with the status mapped from err. Unexpected errors are logged.
func (h *Student) fail(w http.ResponseWriter, r *http.Request, err error, page string, data any) {
	code := GetCode(err)
	if code == http.StatusInternalServerError {
		h.l.Error(wrap.ErrorCtx(r.Context(), err), "check-in step failed", err)
	}
	h.render(w, r, code, page, data)
}

func (h *Student) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := h.pages.Render(w, status, page, data); err != nil {
		h.l.Error(r.Context(), "failed to render page", err, "page", page)
		internalErrorResponse(w, msgInternal)
	}
}
