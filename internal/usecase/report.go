package usecase

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/NasaVasa/haltwatch/internal/domain"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

const (
	runsPerMonth          = 23
	freeTierGBSecondsText = "400,000"
)

// Usage is the estimated compute consumption of one run.
type Usage struct {
	Seconds          decimal.Decimal
	MemoryGB         decimal.Decimal
	GBSeconds        decimal.Decimal
	MonthlyGBSeconds decimal.Decimal
}

func EstimateUsage(report *RunReport, memoryMB int) Usage {
	seconds := decimal.NewFromFloat(report.Duration.Seconds()).Round(3)
	memoryGB := decimal.NewFromInt(int64(memoryMB)).Div(decimal.NewFromInt(1024))
	gbSeconds := seconds.Mul(memoryGB)
	return Usage{
		Seconds:          seconds,
		MemoryGB:         memoryGB,
		GBSeconds:        gbSeconds,
		MonthlyGBSeconds: gbSeconds.Mul(decimal.NewFromInt(runsPerMonth)),
	}
}

func RenderSuccess(report *RunReport, memoryMB int) string {
	usage := EstimateUsage(report, memoryMB)

	var b strings.Builder
	fmt.Fprintf(&b, "%d total rows of CSV files successfully uploaded to storage & %d PDFs were uploaded to storage.\n", report.CSVRows(), report.PDFsStored)
	if report.PDFsFailed > 0 {
		fmt.Fprintf(&b, "%d PDFs could not be stored.\n", report.PDFsFailed)
	}
	fmt.Fprintf(&b, "\nRun date %s: %d tickers in trading halt, %d with a proposed issue of securities, %d tickers under monitoring.\n",
		report.Date, len(report.HaltedTickers), len(report.ClosedIssuerCodes), report.RegistrySize)

	fmt.Fprintf(&b, "\nIt took roughly %s Seconds to run, with an allocated memory of %d MB, which is %s GB,\n",
		usage.Seconds.String(), memoryMB, usage.MemoryGB.StringFixed(3))
	fmt.Fprintf(&b, "The estimated Usage for this run is :\n    %s GB-seconds.\n", usage.GBSeconds.StringFixed(3))
	fmt.Fprintf(&b, "\nIf maintained as an average for a month, the monthly consumption would be :\n    %s GB-seconds\n", usage.MonthlyGBSeconds.StringFixed(3))
	fmt.Fprintf(&b, "\nFor Reference, the Monthly Free Tier Consumption Cap for AWS Lambda is :\n    %s GB-seconds.\n", freeTierGBSecondsText)

	if len(report.Transitions) > 0 {
		b.WriteString("\nMonitoring changes:\n")
		b.WriteString(renderTransitions(report.Transitions))
	}
	return b.String()
}

func renderTransitions(transitions []domain.Transition) string {
	var b strings.Builder
	table := tablewriter.NewWriter(&b)
	table.SetHeader([]string{"Ticker", "Change", "Added", "Age (days)"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, t := range transitions {
		table.Append([]string{t.Ticker, string(t.Kind), t.AddedDate.String(), strconv.Itoa(t.AgeDays)})
	}
	table.Render()
	return b.String()
}

func RenderFailure(err error) string {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Message()
	}
	return fmt.Sprintf("Error running daily feed: %v", err)
}
