package cli

import (
	"order-sync/internal/core/config"
	"order-sync/internal/core/logger"
	billingadapter "order-sync/internal/features/billing/adapters"
	"order-sync/internal/features/orders/service"
	storeadapter "order-sync/internal/features/store/adapters"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "ordersync",
		Short:        "Sync storefront carts into billing invoices",
		Long:         "ordersync reads every cart from the storefront API, creates the matching billing customers, products and prices, and builds and finalizes one invoice per customer.",
		SilenceUsage: true,
		RunE:         runSync,
	}
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

// runSync wires the adapters together and runs the order pipeline once.
func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		return err
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Initialize Store Adapter and run Health Check
	store := storeadapter.NewFakeStoreAdapter(cfg.Store)
	if err := store.HealthCheck(); err != nil {
		l.Error("Storefront Health Check Failed", zap.Error(err))
		return err
	}
	l.Info("Storefront connection verified")

	billing := billingadapter.NewStripeAdapter(cfg.Stripe)

	processor := service.NewOrderProcessor(store, billing, cfg.Stripe.Currency)
	if err := processor.Run(); err != nil {
		l.Error("Order processing failed", zap.Error(err))
		return err
	}

	return nil
}
