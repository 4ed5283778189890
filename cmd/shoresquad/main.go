package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/vrecan/death.v3"

	"shoresquad/config"
	_ "shoresquad/docs"
	"shoresquad/internal/adapters/email"
	"shoresquad/internal/adapters/geolocation"
	"shoresquad/internal/adapters/openmeteo"
	deliveryhttp "shoresquad/internal/delivery/http"
	"shoresquad/internal/delivery/http/controllers"
	"shoresquad/internal/domain"
	"shoresquad/internal/notify"
	"shoresquad/internal/render"
	"shoresquad/internal/services"
	"shoresquad/internal/state"
	"shoresquad/internal/weather"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := run(cfg); err != nil {
		log.Fatalf("shoresquad: %v", err)
	}
}

func run(cfg *config.Config) error {
	logger := config.NewLogger(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("close store", "driver", cfg.StoreDriver, "err", err)
		}
	}()

	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	center := domain.Location{Lat: cfg.MapCenterLat, Lng: cfg.MapCenterLng}

	st := state.New(state.Options{
		Store:         store,
		Geolocator:    newGeolocator(cfg, httpClient),
		Logger:        logger.With("component", "state"),
		StorageKey:    cfg.StoreKey,
		DefaultCenter: center,
	})

	eventsRegion, crewsRegion, weatherRegion := &render.Region{}, &render.Region{}, &render.Region{}
	layers := render.NewLayerSet(true)
	toasts := notify.NewToasts(cfg.NotifyTTL, logger)

	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.ShareProvider,
		FromAddress: cfg.ShareFrom,
		FromName:    cfg.ShareFromName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKey,
			SecretAccessKey: cfg.AWSSecretKey,
		},
	}, logger)

	squad := services.NewSquadService(services.Config{
		State:     st,
		Map:       render.NewMapRenderer(layers, st, render.DefaultTiles),
		EventList: render.NewEventListRenderer(st, st, eventsRegion),
		CrewList:  render.NewCrewListRenderer(st, crewsRegion),
		Notifier:  toasts,
		Sharer:    email.NewSharer(mailer, email.NewTemplateRenderer(), cfg.ShareTo),
		BaseURL:   cfg.AppBaseURL,
		MapZoom:   cfg.MapZoom,
		Logger:    logger.With("component", "squad"),
	})
	squad.Start(ctx)

	widget := weather.NewWidget(
		openmeteo.NewClient(httpClient, cfg.WeatherAPIURL),
		st,
		weatherRegion,
		logger.With("component", "weather"),
	)

	fragments := map[string]controllers.Fragment{
		"events":  eventsRegion,
		"crews":   crewsRegion,
		"weather": weatherRegion,
	}
	handler := deliveryhttp.NewHandler(logger, cfg.CORSAllowedOrigins, deliveryhttp.Controllers{
		Events:  controllers.NewEventController(logger, squad),
		Crews:   controllers.NewCrewController(logger, squad),
		Session: controllers.NewSessionController(logger, squad),
		Views:   controllers.NewViewController(logger, squad, fragments, layers, toasts),
	})
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		d := death.NewDeath(syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
		d.WaitForDeathWithFunc(func() {
			logger.Info("shutdown signal received")
			cancel()
		})
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", server.Addr, "env", cfg.Environment, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		widget.Run(gctx, cfg.WeatherRefreshInterval)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		return server.Shutdown(shutdownCtx)
	})
	err = g.Wait()
	st.WaitLocated()
	logger.Info("server stopped")
	return err
}

func newGeolocator(cfg *config.Config, client *http.Client) domain.Geolocator {
	switch cfg.GeolocationMode {
	case config.GeoStatic:
		return geolocation.NewStaticLocator(domain.Location{Lat: cfg.GeolocationLat, Lng: cfg.GeolocationLng})
	case config.GeoDenied:
		return geolocation.NewDeniedLocator()
	default:
		return geolocation.NewIPLocator(client, cfg.GeolocationURL)
	}
}
