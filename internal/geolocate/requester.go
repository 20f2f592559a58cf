// Package geolocate asks the host for the device position once and writes it
// into the "latitude" and "longitude" form fields.
//
// Every collaborator is injected: the host geolocation capability, the document
// the fields live in and the alert presenter. Request never blocks and never
// returns an error; all failures end in exactly one alert.
package geolocate

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	"github.com/Temutjin2k/geo-attendance/pkg/logger"
	wrap "github.com/Temutjin2k/geo-attendance/pkg/logger/wrapper"
)

const (
	FieldLatitude  = "latitude"
	FieldLongitude = "longitude"

	MsgUnsupported = "Geolocation is not supported by your browser."
	MsgDenied      = "Location permission denied. Please allow location access."
)

var (
	// ErrCapabilityUnavailable means the host exposes no geolocation capability.
	ErrCapabilityUnavailable = errors.New("geolocation capability unavailable")
	// ErrRequestFailed covers every failure the host reports for a position request.
	ErrRequestFailed = errors.New("position request failed")
)

// Coords is the latitude/longitude pair of a position.
type Coords struct {
	Latitude  float64
	Longitude float64
}

// Position is what the host delivers on success.
type Position struct {
	Coords Coords
}

type (
	// Capability is the host geolocation facility.
	Capability interface {
		Available() bool
		// CurrentPosition starts a one-shot request and returns immediately.
		// Exactly one of the callbacks is invoked later.
		CurrentPosition(onSuccess func(Position), onError func(error))
	}

	// Document resolves form fields by identifier. It returns nil for unknown ids.
	Document interface {
		ElementByID(id string) Field
	}

	Field interface {
		SetValue(v string)
	}

	Alerter interface {
		Alert(msg string)
	}
)

type Requester struct {
	geo   Capability
	doc   Document
	alert Alerter
	log   logger.Logger
}

func NewRequester(geo Capability, doc Document, alert Alerter, log logger.Logger) *Requester {
	return &Requester{
		geo:   geo,
		doc:   doc,
		alert: alert,
		log:   log,
	}
}

// Request checks the capability, then issues exactly one position request.
// Overlapping calls issue independent requests; whichever resolves last owns the fields.
func (r *Requester) Request() {
	ctx := wrap.WithAction(context.Background(), types.ActionRequestLocation)

	if r.geo == nil || !r.geo.Available() {
		r.log.Warn(ctx, "position request aborted", "reason", ErrCapabilityUnavailable.Error())
		r.alert.Alert(MsgUnsupported)
		return
	}

	r.log.Debug(ctx, "requesting current position")
	r.geo.CurrentPosition(
		func(p Position) {
			r.write(ctx, FieldLatitude, p.Coords.Latitude)
			r.write(ctx, FieldLongitude, p.Coords.Longitude)
			r.log.Debug(ctx, "position written")
		},
		func(error) {
			// every cause maps to the same alert
			r.log.Warn(ctx, "position request ended", "reason", ErrRequestFailed.Error())
			r.alert.Alert(MsgDenied)
		},
	)
}

func (r *Requester) write(ctx context.Context, id string, v float64) {
	f := r.doc.ElementByID(id)
	if f == nil {
		r.log.Warn(ctx, "form field not found", "id", id)
		return
	}
	f.SetValue(FormatDegrees(v))
}

// FormatDegrees renders a coordinate the way a browser prints a number: the
// shortest decimal that parses back to the same value, switching to exponent
// form below 1e-6 (37.7749 -> "37.7749", 1e-7 -> "1e-7", -0 -> "0").
func FormatDegrees(v float64) string {
	if v == 0 {
		return "0"
	}
	if abs := math.Abs(v); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	mant, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	digits := strings.TrimLeft(exp[1:], "0")
	return mant + "e" + exp[:1] + digits
}
