package main

import (
	"log"
	"time"

	"ledengine/pkg/bounds"
	"ledengine/pkg/effect"
	"ledengine/pkg/engine"
	"ledengine/pkg/filter"
	"ledengine/pkg/intent"
	"ledengine/pkg/scheduler"
	"ledengine/pkg/wire"
)

const (
	intentQueueCapacity = 32
	opStackCapacity     = 4
	framePeriodMs       = 20 // 50 fps
)

func main() {
	log.Println("starting strip...")

	cfg, err := LoadConfig("config.json")
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	id, err := loadIdent("client.json")
	if err != nil {
		log.Fatalf("identity error: %v", err)
	}
	if cfg.DeviceID == "" {
		cfg.DeviceID = id.DeviceID
	}

	driver, err := newHardwareDriver(cfg)
	if err != nil {
		log.Fatalf("driver init failed: %v", err)
	}
	defer driver.Close()

	ch := intent.NewChannel(intentQueueCapacity)

	engineCfg := engine.Config{
		Effect: effectIDFromName(cfg.Idle.Effect),
		Bounds: bounds.New(0, uint16(cfg.LedCount)),
		Timings: engine.Timings{
			FadeOut:     400,
			FadeIn:      400,
			ColorChange: 250,
			Brightness:  250,
		},
		Filters:    filter.DefaultConfig(),
		Brightness: uint8(cfg.Idle.Brightness),
		Color:      wire.ParseHexColor(cfg.Idle.Color),
	}

	r := engine.New(cfg.LedCount, opStackCapacity, ch.Receiver(), engineCfg)

	go runRelayClient(cfg.RelayURL, id, ch.Sender())

	sched := scheduler.New(framePeriodMs)
	start := time.Now()
	now := func() uint32 { return uint32(time.Since(start).Milliseconds()) }

	for {
		t := now()
		res := sched.Next(t)
		if res.Sleep > 0 {
			time.Sleep(time.Duration(res.Sleep) * time.Millisecond)
		}

		frame := r.Render(now())
		if err := driver.SetPixels(frame); err != nil {
			log.Printf("set pixels: %v", err)
			continue
		}
		if err := driver.Render(); err != nil {
			log.Printf("render: %v", err)
		}
	}
}

func effectIDFromName(name string) effect.ID {
	switch name {
	case "rainbow":
		return effect.ID{Kind: effect.Rainbow}
	case "velvet":
		return effect.ID{Kind: effect.VelvetAnalog}
	case "flow":
		return effect.ID{Kind: effect.Flow, Flow: effect.FlowAurora}
	default:
		return effect.ID{Kind: effect.StaticColor}
	}
}
