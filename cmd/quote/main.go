package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kilat-Pet-Delivery/service-estimate/internal/application"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/config"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/estimate"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/quote"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/logger"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/notifier"
	"github.com/Kilat-Pet-Delivery/service-estimate/internal/routing"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("quote", pflag.ExitOnError)
	pickup := flags.String("pickup", "", "pickup location")
	delivery := flags.String("delivery", "", "delivery location")
	customerEmail := flags.String("email", "", "address to email the estimate to")
	offline := flags.Bool("offline", false, "compute the estimate without emailing it")
	timeout := flags.Duration("timeout", 30*time.Second, "overall request timeout")
	flags.String("notify-endpoint", "", "notification endpoint URL (NOTIFY_ENDPOINT)")
	flags.String("google-api-key", "", "Google Maps API key (GOOGLE_MAPS_API_KEY)")
	flags.String("app-env", "", "environment name (APP_ENV)")
	_ = flags.Parse(args)

	v := viper.New()
	bindFlag(v, flags, "NOTIFY_ENDPOINT", "notify-endpoint")
	bindFlag(v, flags, "GOOGLE_MAPS_API_KEY", "google-api-key")
	bindFlag(v, flags, "APP_ENV", "app-env")

	cfg, err := config.FromViper(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	log, err := logger.NewNamed(cfg.AppEnv, "quote-cli")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	currency, err := estimate.NewCurrencyFormatter(cfg.Currency.Locale, cfg.Currency.Symbol)
	if err != nil {
		log.Error("invalid currency config", zap.Error(err))
		return 1
	}

	deps := application.QuoteDependencies{
		Router:   routing.NewGoogleDirectionsProvider(cfg.Google.BaseURL, cfg.Google.APIKey, cfg.Google.Region, log),
		Pricing:  estimate.NewStandardPricingStrategy(cfg.Pricing),
		Currency: currency,
		Logger:   log,
	}
	if !*offline {
		httpNotifier := notifier.NewHTTPNotifier(cfg.NotifyEndpoint)
		deps.Notifier = httpNotifier
		deps.CanNotify = httpNotifier.Reachable
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, *timeout)
	defer cancelTimeout()

	orchestrator := application.NewQuoteOrchestrator(deps, newConsoleDisplay(os.Stdout))
	_, err = orchestrator.Submit(ctx, quote.Input{
		Pickup:   *pickup,
		Delivery: *delivery,
		Email:    *customerEmail,
	})
	return exitCode(err)
}

func bindFlag(v *viper.Viper, flags *pflag.FlagSet, key, name string) {
	if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
		fmt.Fprintf(os.Stderr, "failed to bind flag %s: %v\n", name, err)
		os.Exit(1)
	}
}

// exitCode is 0 when the estimate was shown and emailed (or previewed),
// 1 for input and routing failures and 2 when only the email failed.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, quote.ErrNotificationUnavailable):
		return 2
	default:
		return 1
	}
}
