package handler

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	"github.com/Temutjin2k/geo-attendance/pkg/logger"
	wrap "github.com/Temutjin2k/geo-attendance/pkg/logger/wrapper"
	"github.com/Temutjin2k/geo-attendance/pkg/validator"
)

// Admin serves the lecturer pages. Every route is behind Basic auth.
type Admin struct {
	svc   LectureService
	xlsx  Exporter
	pdf   Exporter
	pages *Pages
	l     logger.Logger
}

func NewAdmin(svc LectureService, xlsx, pdf Exporter, pages *Pages, l logger.Logger) *Admin {
	return &Admin{
		svc:   svc,
		xlsx:  xlsx,
		pdf:   pdf,
		pages: pages,
		l:     l,
	}
}

// Dashboard godoc
// @Summary      Lecture control page
// @Description  POST starts a lecture with a random six digit code unless one is already running.
// @Tags         Admin
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        topic  formData  string  false  "Lecture topic"
// @Param        date   formData  string  false  "Lecture date"
// @Success      200
// @Success      303
// @Failure      401
// @Security     BasicAuth
// @Router       /admin [get]
// @Router       /admin [post]
func (h *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var flash string
	if r.Method == http.MethodPost {
		topic, date := r.PostFormValue("topic"), r.PostFormValue("date")

		v := validator.New()
		v.Check(validator.NotBlank(topic), "topic", "Topic is required.")
		v.Check(validator.NotBlank(date), "date", "Date is required.")

		if v.Valid() {
			if _, err := h.svc.StartLecture(ctx, topic, date); err != nil {
				h.l.Error(wrap.ErrorCtx(ctx, err), "failed to start lecture", err)
				internalErrorResponse(w, msgInternal)
				return
			}
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		for _, k := range []string{"topic", "date"} {
			if msg, ok := v.Errors[k]; ok {
				flash = msg
				break
			}
		}
	}

	overview, err := h.svc.Overview(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to load overview", err)
		internalErrorResponse(w, msgInternal)
		return
	}

	status := http.StatusOK
	if flash != "" {
		status = http.StatusUnprocessableEntity
	}
	if err := h.pages.Render(w, status, pageAdmin, adminPage{
		Flash:   flash,
		Lecture: overview.Lecture,
		Total:   overview.Total,
	}); err != nil {
		h.l.Error(ctx, "failed to render page", err, "page", pageAdmin)
		internalErrorResponse(w, msgInternal)
	}
}

// Invalidate godoc
// @Summary      End the running lecture
// @Tags         Admin
// @Success      303
// @Failure      401
// @Security     BasicAuth
// @Router       /invalidate [get]
func (h *Admin) Invalidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.svc.EndLecture(ctx); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to end lecture", err)
		internalErrorResponse(w, msgInternal)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Reset godoc
// @Summary      Clear attendance of the running lecture
// @Description  The lecture code stays valid.
// @Tags         Admin
// @Success      303
// @Failure      401
// @Security     BasicAuth
// @Router       /reset [get]
func (h *Admin) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.svc.Reset(ctx); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to reset attendance", err)
		internalErrorResponse(w, msgInternal)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Download godoc
// @Summary      Download attendance as XLSX
// @Tags         Admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Failure      401
// @Security     BasicAuth
// @Router       /download [get]
func (h *Admin) Download(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.xlsx)
}

// DownloadPDF godoc
// @Summary      Download attendance as PDF
// @Tags         Admin
// @Produce      application/pdf
// @Success      200
// @Failure      401
// @Security     BasicAuth
// @Router       /download.pdf [get]
func (h *Admin) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.pdf)
}

func (h *Admin) export(w http.ResponseWriter, r *http.Request, e Exporter) {
	ctx := wrap.WithAction(r.Context(), types.ActionExportSheet)

	sheet, err := h.svc.Sheet(ctx)
	if errors.Is(err, types.ErrNoAttendance) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(msgNoAttendance))
		return
	}
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to load attendance sheet", err)
		internalErrorResponse(w, msgInternal)
		return
	}

	data, err := e.Export(sheet)
	if err != nil {
		h.l.Error(ctx, "failed to export attendance sheet", err)
		internalErrorResponse(w, msgInternal)
		return
	}

	w.Header().Set("Content-Type", e.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": sheet.FileName(e.Extension()),
	}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		h.l.Warn(ctx, "failed to write export", "err", err.Error())
	}

	h.l.Info(ctx, "attendance exported", "records", len(sheet.Records), "type", e.Extension())
}
