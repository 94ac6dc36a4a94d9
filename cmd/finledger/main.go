package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/fmops/finledger/internal/core/domain"
	"github.com/fmops/finledger/internal/core/services"
	"github.com/fmops/finledger/internal/platform/config"
	"github.com/fmops/finledger/internal/stores/memory"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	seed, err := config.LoadSeed(cfg.SeedPath)
	if err != nil {
		logger.Warn("Seed file not loaded, using built-in defaults",
			slog.String("path", cfg.SeedPath), slog.String("error", err.Error()))
		seed = config.DefaultSeed()
	}

	ledger := memory.NewLedgerStore(logger)
	funds := memory.NewFundAuthorityTree(logger, seed.Hierarchy)
	orchestrator := services.NewIntegrationService(ledger, funds, logger)
	traceability := services.NewTraceabilityService(ledger, funds, logger)

	unsubscribe := ledger.Subscribe(func() {
		logger.Info("ledger changed", slog.Int("transactions", len(ledger.GetTransactions())))
	})
	defer unsubscribe()

	ctx := context.Background()

	// Walk one expense through its lifecycle: certification, accrual,
	// disbursement, then the project cross-reference.
	pr := domain.PurchaseRequest{
		RequestID:  "PR-2026-0042",
		Amount:     decimal.NewFromInt(1000),
		FundCode:   "CC-ENG",
		CostCenter: "CC-ENG",
	}
	decision, err := orchestrator.CertifyFundsForPurchaseRequest(ctx, pr)
	if err != nil {
		logger.Error("certification failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("fund certification", slog.Bool("certified", decision.Certified), slog.String("message", decision.Message))

	expense := domain.Expense{
		ExpenseID:   "EXP-2026-0191",
		Description: "Utilities",
		Amount:      decimal.NewFromInt(1000),
		Vendor:      "City Power & Light",
		FundCode:    "CC-ENG",
		CostCenter:  "CC-ENG",
	}
	accrual, err := orchestrator.GenerateAccrualFromExpense(ctx, expense, "system")
	if err != nil {
		logger.Error("accrual synthesis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if _, err := orchestrator.GenerateDisbursementFromExpense(ctx, expense, "EFT-77120", "system"); err != nil {
		logger.Error("disbursement synthesis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	result := services.ValidateTransaction(*accrual, funds.GetHierarchy())
	logger.Info("ADA validation of posted accrual", slog.Bool("valid", result.Valid), slog.String("message", result.Message))

	trace, err := traceability.GetProjectTraceability(ctx, domain.Project{
		ProjectID:         "PRJ-104",
		Name:              "Substation Upgrade",
		FundCode:          "CC-ENG",
		PurchaseRequestID: pr.RequestID,
	})
	if err != nil {
		logger.Error("traceability failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("project traceability",
		slog.String("project_id", trace.ProjectID),
		slog.String("fund_node", trace.Funding.NodeName),
		slog.Int("ledger_entries", len(trace.Accounting.Entries)),
	)
}
