//go:build tinygo

// Board runs the game on an ESP32 with an ILI9341 panel and an XPT2046
// resistive touch controller, wired like the common 2.8" "cheap yellow
// display" boards.
package main

import (
	"context"
	"log/slog"
	"machine"
	"os"
	"time"

	"touchtris/client"
	"touchtris/input"
	"touchtris/render"

	"tinygo.org/x/drivers/ili9341"
	"tinygo.org/x/drivers/xpt2046"
)

const (
	lcdSCK = machine.GPIO14
	lcdSDO = machine.GPIO13
	lcdSDI = machine.GPIO12
	lcdDC  = machine.GPIO2
	lcdCS  = machine.GPIO15
	lcdRST = machine.NoPin
	lcdBL  = machine.GPIO21

	touchCLK  = machine.GPIO25
	touchCS   = machine.GPIO33
	touchDIN  = machine.GPIO32
	touchDOUT = machine.GPIO39
	touchIRQ  = machine.GPIO36
)

// raw XPT2046 readings at the panel's edges in landscape.
var calibration = input.Calibration{
	MinX: 3200, MaxX: 62000,
	MinY: 3800, MaxY: 61000,
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	machine.SPI2.Configure(machine.SPIConfig{
		Frequency: 40 * machine.MHz,
		SCK:       lcdSCK,
		SDO:       lcdSDO,
		SDI:       lcdSDI,
	})
	display := ili9341.NewSPI(machine.SPI2, lcdDC, lcdCS, lcdRST)
	display.Configure(ili9341.Config{Rotation: ili9341.Rotation270})
	lcdBL.Configure(machine.PinConfig{Mode: machine.PinOutput})
	lcdBL.High()
	display.FillScreen(render.Background)

	ts := xpt2046.New(touchCLK, touchCS, touchDIN, touchDOUT, touchIRQ)
	ts.Configure(&xpt2046.Config{Precision: 10})

	w, h := display.Size()
	c, err := client.New(logger, display, input.Calibrate(&ts, calibration, int(w), int(h)), &client.Options{
		DropInterval: 500 * time.Millisecond,
		Seed:         uint64(time.Now().UnixNano()),
	})
	if err != nil {
		logger.Error("unable to start", slog.String("error", err.Error()))
		return
	}
	if err := c.Run(context.Background()); err != nil {
		logger.Error("game loop stopped", slog.String("error", err.Error()))
	}
}
