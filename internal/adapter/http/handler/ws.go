package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	"github.com/Temutjin2k/geo-attendance/pkg/logger"
	wrap "github.com/Temutjin2k/geo-attendance/pkg/logger/wrapper"
	"github.com/Temutjin2k/geo-attendance/pkg/metrics"
	ws "github.com/Temutjin2k/geo-attendance/pkg/wsHub"
)

const (
	serviceName  = "attendance"
	pingInterval = 30 * time.Second
)

// Dashboard pushes attendance changes to every connected lecturer page.
// mu orders a joining page's snapshot against broadcasts, so a page never
// receives an older list after a newer one.
type Dashboard struct {
	mu          sync.Mutex
	connections *ws.ConnectionHub
	list        func(ctx context.Context) ([]models.AttendanceRecord, error)
	upgrader    websocket.Upgrader
	l           logger.Logger
}

func NewDashboard(connHub *ws.ConnectionHub, list func(ctx context.Context) ([]models.AttendanceRecord, error), l logger.Logger) *Dashboard {
	return &Dashboard{
		connections: connHub,
		list:        list,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		l: l,
	}
}

// dashboardMessage is the frame sent to the admin page.
type dashboardMessage struct {
	Event   types.AttendanceEvent     `json:"event"`
	Records []models.AttendanceRecord `json:"records"`
}

// AttendanceChanged broadcasts the event to all dashboards.
func (d *Dashboard) AttendanceChanged(ctx context.Context, e models.AttendanceChanged) error {
	records := e.Records
	if records == nil {
		records = []models.AttendanceRecord{}
	}

	d.mu.Lock()
	delivered := d.connections.Broadcast(ctx, dashboardMessage{Event: e.Event, Records: records})
	d.mu.Unlock()

	d.trackConnections()
	d.l.Debug(ctx, "dashboard notified", "event", e.Event, "delivered", delivered)
	return nil
}

// HandleWS godoc
// @Summary      Live attendance feed
// @Description  Sends {"event":"new_attendance","records":[...]} on connect and on every change.
// @Tags         Admin
// @Success      101
// @Failure      401
// @Security     BasicAuth
// @Router       /ws/attendance [get]
func (d *Dashboard) HandleWS(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "ws_dashboard")

	c, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.l.Warn(ctx, "websocket upgrade failed", "err", err.Error())
		return
	}

	conn := ws.NewConn(context.WithoutCancel(ctx), c)
	if err := d.join(ctx, conn); err != nil {
		d.l.Warn(ctx, "failed to open dashboard feed", "err", err.Error())
		_ = conn.Close()
		return
	}
	d.trackConnections()
	defer func() {
		_ = d.connections.Delete(conn.ID())
		d.trackConnections()
		d.l.Debug(ctx, "dashboard disconnected", "conn_id", conn.ID())
	}()

	go d.keepAlive(conn)

	d.l.Debug(ctx, "dashboard connected", "conn_id", conn.ID())
	_ = conn.DrainReads()
}

// join sends the current list and registers conn. Broadcasts wait until both are done.
func (d *Dashboard) join(ctx context.Context, conn *ws.Conn) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	records, err := d.list(ctx)
	if err != nil {
		d.l.Error(wrap.ErrorCtx(ctx, err), "failed to load attendance for dashboard", err)
		records = []models.AttendanceRecord{}
	}
	if err := conn.Send(dashboardMessage{Event: types.EventNewAttendance, Records: records}); err != nil {
		return err
	}
	return d.connections.Add(conn)
}

func (d *Dashboard) trackConnections() {
	metrics.WebSocketConnectionsGauge.WithLabelValues(serviceName).Set(float64(d.connections.Len()))
}

func (d *Dashboard) keepAlive(conn *ws.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-conn.Done():
			return
		case <-ticker.C:
			if err := conn.Health(); err != nil {
				_ = conn.Close()
				return
			}
		}
	}
}
