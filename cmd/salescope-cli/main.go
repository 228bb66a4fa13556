package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"salescope/internal/report"
	"salescope/internal/reportdef"
	"salescope/internal/source"
	fixturesource "salescope/internal/source/fixture"
	sqlitesource "salescope/internal/source/sqlite"
)

const dateLayout = "2006-01-02"

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validateDir := validateCmd.String("dir", "", "directory containing report definition YAML files")
	validateSchema := validateCmd.String("schema", "", "path to the report definition JSON schema")

	reportCmd := flag.NewFlagSet("report", flag.ExitOnError)
	reportView := reportCmd.String("view", "", "view to build (customers|products|monthly_trend|yearly_performance|category_share)")
	reportWarehouse := reportCmd.String("warehouse", "", "SQLite warehouse database path")
	reportFixture := reportCmd.String("fixture", "", "JSON dataset fixture path")
	reportDate := reportCmd.String("date", "", "reference date as YYYY-MM-DD (default: today)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		if *validateDir == "" {
			fmt.Fprintln(os.Stderr, "Error: --dir flag is required")
			validateCmd.Usage()
			os.Exit(1)
		}
		os.Exit(runValidate(*validateDir, *validateSchema))
	case "report":
		reportCmd.Parse(os.Args[2:])
		os.Exit(runReport(*reportView, *reportWarehouse, *reportFixture, *reportDate))
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: salescope <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  validate --dir <path>                     Validate report definition YAML files")
	fmt.Println("  report --view <name> --warehouse <path>   Build a report view and print it")
	fmt.Println("  report --view <name> --fixture <path>     Build a report view from a JSON fixture")
	fmt.Println()
}

func runValidate(dirPath, schemaPath string) int {
	if schemaPath == "" {
		schemaPath = findSchemaFile()
	}
	if schemaPath == "" {
		fmt.Fprintln(os.Stderr, "Error: could not find schemas/report_v1.json")
		return 1
	}

	validator, err := reportdef.NewValidator(schemaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize validator: %v\n", err)
		return 1
	}

	errors := validator.ValidateDirectory(dirPath)

	if len(errors) == 0 {
		fmt.Println("✓ All report definitions are valid")
		return 0
	}

	// Group errors by file
	errorsByFile := make(map[string][]reportdef.ValidationError)
	for _, err := range errors {
		errorsByFile[err.File] = append(errorsByFile[err.File], err)
	}

	var files []string
	for file := range errorsByFile {
		files = append(files, file)
	}
	sort.Strings(files)

	fmt.Fprintf(os.Stderr, "✗ Validation failed with %d error(s):\n\n", len(errors))
	for _, file := range files {
		for _, err := range errorsByFile[file] {
			if err.Path != "" {
				fmt.Fprintf(os.Stderr, "%s: %s: %s\n", filepath.Base(err.File), err.Path, err.Message)
			} else {
				fmt.Fprintf(os.Stderr, "%s: %s\n", filepath.Base(err.File), err.Message)
			}
		}
	}

	return 1
}

func runReport(view, warehousePath, fixturePath, dateStr string) int {
	if view == "" {
		fmt.Fprintln(os.Stderr, "Error: --view flag is required")
		return 1
	}
	if !report.KnownView(report.View(view)) {
		fmt.Fprintf(os.Stderr, "Error: unknown view %q\n", view)
		return 1
	}

	var provider source.Provider
	switch {
	case warehousePath != "":
		adapter, err := sqlitesource.NewAdapter(warehousePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer adapter.Close()
		provider = adapter
	case fixturePath != "":
		provider = fixturesource.NewAdapter(fixturePath)
	default:
		fmt.Fprintln(os.Stderr, "Error: one of --warehouse or --fixture is required")
		return 1
	}

	now := time.Now()
	if dateStr != "" {
		parsed, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid --date %q: %v\n", dateStr, err)
			return 1
		}
		now = parsed
	}

	builder := report.NewBuilder(provider)
	snap, err := builder.Build(report.View(view), now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	renderSnapshot(snap)
	fmt.Printf("\n%d rows, total sales %.2f (reference date %s)\n",
		snap.RowCount, snap.TotalSales, snap.ReferenceDate.Format(dateLayout))
	return 0
}

func renderSnapshot(snap *report.Snapshot) {
	table := tablewriter.NewWriter(os.Stdout)

	switch rows := snap.Rows.(type) {
	case []report.CustomerRow:
		table.SetHeader([]string{"Key", "Number", "Name", "Age Group", "Segment", "Orders", "Sales", "Qty", "Lifespan", "Recency", "AOV", "Monthly Spend"})
		for _, r := range rows {
			table.Append([]string{
				strconv.Itoa(r.CustomerKey), r.CustomerNumber, r.CustomerName, r.AgeGroup, string(r.Segment),
				strconv.Itoa(r.TotalOrders), money(r.TotalSales), strconv.Itoa(r.TotalQuantity),
				strconv.Itoa(r.LifespanMonths), strconv.Itoa(r.RecencyMonths),
				money(r.AvgOrderValue), money(r.AvgMonthlySpend),
			})
		}

	case []report.ProductRow:
		table.SetHeader([]string{"Key", "Product", "Category", "Cost Segment", "Segment", "Orders", "Sales", "Qty", "Customers", "Avg Price", "AOR", "Monthly Revenue"})
		for _, r := range rows {
			table.Append([]string{
				strconv.Itoa(r.ProductKey), r.ProductName, r.Category, r.CostSegment, string(r.Segment),
				strconv.Itoa(r.TotalOrders), money(r.TotalSales), strconv.Itoa(r.TotalQuantity),
				strconv.Itoa(r.TotalCustomers), money(r.AvgSellingPrice),
				money(r.AvgOrderRevenue), money(r.AvgMonthlyRevenue),
			})
		}

	case []report.MonthlyTrendRow:
		table.SetHeader([]string{"Month", "Sales", "Customers", "Qty", "Avg Price", "Running Total", "Moving Avg Price"})
		for _, r := range rows {
			table.Append([]string{
				r.Month.Format("2006-01"), money(r.TotalSales), strconv.Itoa(r.TotalCustomers),
				strconv.Itoa(r.TotalQuantity), money(r.AvgPrice), money(r.RunningTotal), money(r.MovingAvgPrice),
			})
		}

	case []report.YearlyPerformanceRow:
		table.SetHeader([]string{"Product", "Year", "Sales", "Avg Sales", "Diff Avg", "Avg Change", "PY Sales", "Diff PY", "PY Change"})
		for _, r := range rows {
			pySales, diffPY := "", ""
			if r.PrevYearSales != nil {
				pySales = money(*r.PrevYearSales)
			}
			if r.DiffPrevYear != nil {
				diffPY = money(*r.DiffPrevYear)
			}
			table.Append([]string{
				r.ProductName, strconv.Itoa(r.Year), money(r.TotalSales), money(r.AvgSales),
				money(r.DiffAvg), r.AvgChange, pySales, diffPY, r.PrevChange,
			})
		}

	case []report.CategoryShareRow:
		table.SetHeader([]string{"Category", "Sales", "Share %"})
		for _, r := range rows {
			table.Append([]string{r.Category, money(r.TotalSales), fmt.Sprintf("%.2f", r.SharePct)})
		}
	}

	table.Render()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// findSchemaFile looks for the schema file in common locations
func findSchemaFile() string {
	candidates := []string{
		"schemas/report_v1.json",
		"../schemas/report_v1.json",
		"../../schemas/report_v1.json",
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
