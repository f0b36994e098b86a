package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/evergreenpantry/pantryledger/internal/aggregate"
	"github.com/evergreenpantry/pantryledger/internal/database"
	"github.com/evergreenpantry/pantryledger/internal/dates"
	"github.com/evergreenpantry/pantryledger/internal/export"
	"github.com/evergreenpantry/pantryledger/internal/logging"
	"github.com/evergreenpantry/pantryledger/internal/overlay"
	"github.com/evergreenpantry/pantryledger/internal/source"
	"github.com/evergreenpantry/pantryledger/internal/store"
)

// pantryledger aggregates one org/location/month of visits and writes
// the monthly summary CSV consumed by the USDA/EFAP reporting sheet.
func main() {
	logger := logging.Setup(os.Getenv("PANTRYLEDGER_LOG_LEVEL"), os.Getenv("PANTRYLEDGER_LOG_JSON") == "true")

	orgID := os.Getenv("PANTRYLEDGER_ORG")
	if orgID == "" {
		log.Fatal("PANTRYLEDGER_ORG is required")
	}
	locationID := os.Getenv("PANTRYLEDGER_LOCATION")

	monthKey := os.Getenv("PANTRYLEDGER_MONTH")
	if monthKey == "" {
		monthKey = dates.FromTime(time.Now()).MonthKey()
	}
	if _, err := dates.Parse(monthKey + "-01"); err != nil {
		log.Fatalf("invalid PANTRYLEDGER_MONTH %q: want YYYY-MM", monthKey)
	}

	dbPath := os.Getenv("PANTRYLEDGER_DB_PATH")
	if dbPath == "" {
		dbPath = "pantryledger.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var visitSrc source.VisitSource = store.NewVisitStore(db)
	visits, err := visitSrc.VisitsForMonth(orgID, locationID, monthKey)
	if err != nil {
		log.Fatalf("load visits: %v", err)
	}

	month := aggregate.Aggregate(visits)

	scope := overlay.ScopeKey(orgID, locationID, monthKey)
	manual := overlay.Load(store.NewServiceDayStore(db), scope)
	days := overlay.Union(manual, month.VisitDays())

	logger.Info("aggregated month",
		slog.String("month", monthKey),
		slog.Int("visits", month.Totals.Visits),
		slog.Int("persons", month.Totals.Persons),
		slog.Int("unduplicated_households", month.Unduplicated.Households),
		slog.Int("service_days", len(days)),
	)

	var out io.Writer = os.Stdout
	if path := os.Getenv("PANTRYLEDGER_OUT"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			log.Fatalf("create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	rows := export.MonthlySummary(monthKey, month)
	if err := export.Write(out, export.MonthlySummaryHeader, rows); err != nil {
		log.Fatalf("write summary: %v", err)
	}
	fmt.Fprintln(os.Stderr, "monthly summary written")
}
