package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	appledger "github.com/contafacil/backend/internal/application/ledger"
	"github.com/contafacil/backend/internal/domain/ledger"
	"github.com/contafacil/backend/internal/domain/shared/valueobject"
	"github.com/contafacil/backend/internal/infrastructure/config"
	"github.com/contafacil/backend/internal/infrastructure/logger"
	"github.com/contafacil/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var (
		report string
		from   string
		to     string
		year   int
	)
	flag.StringVar(&report, "report", "balance", "Report to print: balance, cashflow, revenue")
	flag.StringVar(&from, "from", "", "Window start (YYYY-MM-DD, empty = unbounded)")
	flag.StringVar(&to, "to", "", "Window end (YYYY-MM-DD, empty = unbounded)")
	flag.IntVar(&year, "year", 0, "Year for the revenue report")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	window, err := parseWindow(from, to)
	if err != nil {
		log.Fatal("Invalid window", zap.Error(err))
	}

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	accountRepo := persistence.NewGormAccountRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	adjustmentRepo := persistence.NewGormAdjustmentRepository(db.DB)

	ctx := logger.WithContext(context.Background(), log)

	switch report {
	case "balance":
		svc := appledger.NewBalanceService(accountRepo, movementRepo, adjustmentRepo, log)
		result, err := svc.Reconcile(ctx, window)
		if err != nil {
			log.Fatal("Reconciliation failed", zap.Error(err))
		}
		printBalances(result)

	case "cashflow":
		svc := appledger.NewCashFlowService(accountRepo, movementRepo, adjustmentRepo, log)
		grid, err := svc.Grid(ctx, window)
		if err != nil {
			log.Fatal("Cash-flow report failed", zap.Error(err))
		}
		printCashFlow(grid)

	case "revenue":
		if year == 0 {
			log.Fatal("The revenue report requires -year")
		}
		svc := appledger.NewCashFlowService(accountRepo, movementRepo, adjustmentRepo, log)
		current, prior, err := svc.RevenueComparison(ctx, year)
		if err != nil {
			log.Fatal("Revenue report failed", zap.Error(err))
		}
		printRevenue(current, prior)

	default:
		log.Fatal("Unknown report", zap.String("report", report))
	}
}

func parseWindow(from, to string) (ledger.Window, error) {
	window := ledger.AllTime()
	if from != "" {
		d, err := valueobject.ParseDate(from)
		if err != nil {
			return window, err
		}
		window.Start = &d
	}
	if to != "" {
		d, err := valueobject.ParseDate(to)
		if err != nil {
			return window, err
		}
		window.End = &d
	}
	return window, nil
}

func printBalances(result *ledger.ReconciliationResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACCOUNT\tOPENING\tRECEIVED\tPAID\tTRANSFERS\tADJUSTED\tBALANCE")
	for _, b := range result.Accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			b.AccountName,
			b.OpeningBalance.StringFixed(2),
			b.TotalReceived.StringFixed(2),
			b.TotalPaid.StringFixed(2),
			b.TransferredIn.Sub(b.TransferredOut).StringFixed(2),
			b.AdjustmentDelta.StringFixed(2),
			b.PeriodBalance.StringFixed(2))
	}
	fmt.Fprintf(w, "TOTAL\t\t\t\t\t\t%s\n", result.Aggregate.StringFixed(2))
	w.Flush()

	if result.OrphanedMovements > 0 || result.OrphanedAdjustments > 0 {
		fmt.Printf("\nwarning: %d movements and %d adjustments reference unknown accounts\n",
			result.OrphanedMovements, result.OrphanedAdjustments)
	}
}

func printCashFlow(grid *ledger.CashFlowGrid) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tIN\tOUT\tBALANCE")
	for _, row := range grid.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			row.Date.String(),
			row.TotalIn.StringFixed(2),
			row.TotalOut.StringFixed(2),
			row.Total.StringFixed(2))
	}
	w.Flush()
}

func printRevenue(current, prior *appledger.RevenueSeries) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "DATE\t%d\t%d\n", current.Year, prior.Year)
	for i, p := range current.Points {
		priorValue := "0.00"
		if i < len(prior.Points) {
			priorValue = prior.Points[i].Value.StringFixed(2)
		}
		if !p.Value.IsZero() || priorValue != "0.00" {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.Date.String(), p.Value.StringFixed(2), priorValue)
		}
	}
	w.Flush()
}
