//go:build js && wasm

// Package browser binds the geolocate collaborators to the page through syscall/js.
package browser

import (
	"errors"
	"syscall/js"

	"github.com/Temutjin2k/geo-attendance/internal/geolocate"
)

// Geolocation wraps navigator.geolocation.
type Geolocation struct {
	navigator js.Value
}

func NewGeolocation() *Geolocation {
	return &Geolocation{navigator: js.Global().Get("navigator")}
}

func (g *Geolocation) api() js.Value {
	if !g.navigator.Truthy() {
		return js.Undefined()
	}
	return g.navigator.Get("geolocation")
}

func (g *Geolocation) Available() bool {
	return g.api().Truthy()
}

// CurrentPosition calls getCurrentPosition without options. Both JS callbacks are
// released as soon as either fires.
func (g *Geolocation) CurrentPosition(onSuccess func(geolocate.Position), onError func(error)) {
	var success, failure js.Func

	release := func() {
		success.Release()
		failure.Release()
	}

	success = js.FuncOf(func(_ js.Value, args []js.Value) any {
		defer release()

		coords := args[0].Get("coords")
		onSuccess(geolocate.Position{
			Coords: geolocate.Coords{
				Latitude:  coords.Get("latitude").Float(),
				Longitude: coords.Get("longitude").Float(),
			},
		})
		return nil
	})

	failure = js.FuncOf(func(_ js.Value, args []js.Value) any {
		defer release()

		err := errors.New("geolocation error")
		if len(args) > 0 && args[0].Truthy() {
			if msg := args[0].Get("message"); msg.Type() == js.TypeString {
				err = errors.New(msg.String())
			}
		}
		onError(err)
		return nil
	})

	g.api().Call("getCurrentPosition", success, failure)
}

// Document wraps window.document.
type Document struct {
	doc js.Value
}

func NewDocument() *Document {
	return &Document{doc: js.Global().Get("document")}
}

func (d *Document) ElementByID(id string) geolocate.Field {
	el := d.doc.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return nil
	}
	return element{el: el}
}

type element struct {
	el js.Value
}

func (e element) SetValue(v string) {
	e.el.Set("value", v)
}

// Window presents blocking alerts.
type Window struct {
	win js.Value
}

func NewWindow() *Window {
	return &Window{win: js.Global()}
}

func (w *Window) Alert(msg string) {
	w.win.Call("alert", msg)
}
