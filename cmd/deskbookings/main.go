package main

import (
	"deskbooker/internal/deskbookings/bootstrap"
	"deskbooker/internal/deskbookings/handler"
	"deskbooker/internal/deskbookings/validator"
	"deskbooker/pkg/app"
	"deskbooker/pkg/config"
)

const ServiceName = "desk-bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.ConnectStore()

	cfg.Log.Info("Starting Desk Bookings service")
	components, err := bootstrap.New(cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize services", "error", err)
	}

	serverApp := app.NewApplication(cfg)
	serverApp.OnShutdown("kafka producer", components.Close)
	serverApp.SetApp(
		handler.NewDeskBookingHandler(
			components.Processor,
			components.Queries,
			validator.NewDeskBookingValidator(cfg.Log),
			cfg.Log,
		),
		handler.NewHealthHandler(cfg.Client.Ping, cfg.Log),
	)
	serverApp.Run()
}
