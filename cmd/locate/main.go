//go:build js && wasm

// Command locate is compiled to WebAssembly and exposes getLocation() to the
// enrollment page.
//
//	GOOS=js GOARCH=wasm go build -o web/static/locate.wasm ./cmd/locate
package main

import (
	"syscall/js"

	"github.com/Temutjin2k/geo-attendance/internal/geolocate"
	"github.com/Temutjin2k/geo-attendance/internal/geolocate/browser"
	"github.com/Temutjin2k/geo-attendance/pkg/logger"
)

func main() {
	log := logger.InitLogger("locate", logger.LevelWarn)

	requester := geolocate.NewRequester(
		browser.NewGeolocation(),
		browser.NewDocument(),
		browser.NewWindow(),
		log,
	)

	getLocation := js.FuncOf(func(js.Value, []js.Value) any {
		requester.Request()
		return nil
	})
	js.Global().Set("getLocation", getLocation)

	// keep the runtime alive for the callbacks
	select {}
}
