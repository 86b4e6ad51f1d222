package main

import (
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"

	"slippymap/mapview"
	"slippymap/tiles"
)

func main() {
	lat := flag.Float64("lat", 51.507222, "initial center latitude")
	lng := flag.Float64("lng", -0.1275, "initial center longitude")
	zoom := flag.Float64("zoom", 12, "initial zoom level")
	tileURL := flag.String("tiles", tiles.DefaultTileURL, "tile URL template with {z}/{x}/{y} placeholders")
	heading := flag.Float64("heading", 45, "user marker heading in degrees")
	flag.Parse()

	refresh := make(chan struct{}, 1)
	mv := mapview.New(refresh)
	mv.Center = tiles.LatLng{Lat: *lat, Lng: *lng}
	mv.Zoom = *zoom
	mv.UserLocation = &tiles.LatLng{Lat: *lat, Lng: *lng}
	mv.Heading = *heading
	mv.OnTap = func(ll tiles.LatLng) {
		log.Printf("tapped %.6f, %.6f", ll.Lat, ll.Lng)
	}
	mv.OnPan = func(ll tiles.LatLng) {
		log.Printf("center %.6f, %.6f (%.1f m/px)", ll.Lat, ll.Lng, mv.MetersPerPixel())
	}
	if *tileURL != tiles.DefaultTileURL {
		mv.SetTileManager(tiles.NewTileManager(
			tiles.NewFallbackTileProvider(
				tiles.NewHTTPTileProvider(*tileURL),
				tiles.NewPlaceholderTileProvider(),
			),
			nil,
		))
	}
	defer mv.TileManager.Close()

	go func() {
		w := new(app.Window)
		w.Option(app.Title("slippymap"), app.Size(unit.Dp(800), unit.Dp(600)))

		go func() {
			for range refresh {
				w.Invalidate()
			}
		}()

		var ops op.Ops
		for {
			switch e := w.Event().(type) {
			case app.DestroyEvent:
				if e.Err != nil {
					log.Fatal(e.Err)
				}
				os.Exit(0)
			case app.FrameEvent:
				gtx := app.NewContext(&ops, e)
				mv.Layout(gtx)
				e.Frame(gtx.Ops)
			}
		}
	}()
	app.Main()
}
