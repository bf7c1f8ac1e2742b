package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ordering/cmd"
	"ordering/internal/core/application/usecases"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"

	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: configs.LogLevel}))

	app, err := cmd.NewCompositionRoot(configs, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("Failed to close resources", "error", err)
		}
	}()

	orderService, err := app.NewOrderService(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("Error building order service: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runScenario(ctx, orderService); err != nil {
		log.Fatalf("Order scenario failed: %v", err)
	}

	if configs.JobsEnabled {
		jobManager := app.NewJobManager(orderService)
		if err := jobManager.StartAll(); err != nil {
			log.Fatalf("Failed to start jobs: %v", err)
		}
		defer jobManager.StopAll()

		logger.Info("Jobs running, press Ctrl+C to stop")
		<-ctx.Done()
	}
}

// runScenario places an order for a laptop and two mice, confirms it and prints the result.
func runScenario(ctx context.Context, orderService *usecases.OrderService) error {
	customerID := kernel.NewCustomerID()

	orderID, err := orderService.CreateOrder(ctx, customerID)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	fmt.Printf("Created order %s for customer %s\n", orderID, customerID)

	lines := []struct {
		name      string
		unitPrice int64
		quantity  int
	}{
		{name: "Laptop", unitPrice: 45000, quantity: 1},
		{name: "Mouse", unitPrice: 2500, quantity: 2},
	}
	for _, line := range lines {
		if err := orderService.AddItemToOrder(ctx, orderID, kernel.NewProductID(), line.name,
			decimal.NewFromInt(line.unitPrice), line.quantity); err != nil {
			return fmt.Errorf("add %s: %w", line.name, err)
		}
	}

	if err := orderService.ConfirmOrder(ctx, orderID); err != nil {
		return fmt.Errorf("confirm order: %w", err)
	}

	fee, err := orderService.CalculateShippingFee(ctx, orderID, "No. 7, Section 5, Xinyi Road, Taipei")
	if err != nil {
		return fmt.Errorf("calculate shipping fee: %w", err)
	}

	details, err := orderService.GetOrderDetails(ctx, orderID)
	if err != nil {
		return fmt.Errorf("get order details: %w", err)
	}
	if details == nil {
		return fmt.Errorf("order %s disappeared", orderID)
	}

	printDetails(*details)
	fmt.Printf("Shipping fee: %s\n", fee)
	return nil
}

func printDetails(details queries.OrderDetails) {
	fmt.Printf("Order %s (%s), placed %s\n", details.ID, details.Status, details.OrderDate.Format("2006-01-02 15:04:05 MST"))
	for _, item := range details.Items {
		fmt.Printf("  %-10s %3d x %12s = %12s %s\n",
			item.ProductName, item.Quantity, item.UnitPrice.StringFixed(2), item.LineTotal.StringFixed(2), details.Currency)
	}
	fmt.Printf("Total: %s %s\n", details.TotalAmount.StringFixed(2), details.Currency)
}
