package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/klabast/wb-services/shopping-sunday/internal/app"
	"github.com/klabast/wb-services/shopping-sunday/internal/calendar"
)

// maxRuleWidth caps the separator line on wide terminals
const maxRuleWidth = 48

// Check handles the check subcommand
func Check(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	dateStr := fs.String("date", "", "Date to check as YYYY-MM-DD (default: today)")
	asJSON := fs.Bool("json", false, "Print JSON even when writing to a terminal")
	calendarFile := fs.String("calendar", os.Getenv("CALENDAR_FILE"), "Calendar override file (YAML)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: shopping-sunday check [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Prints whether a date is a shopping Sunday and when the next one is.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	table, err := LoadTable(*calendarFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading calendar: %v\n", err)
		os.Exit(1)
	}

	day := calendar.Today()
	if *dateStr != "" {
		day, err = calendar.ParseDate(*dateStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	}

	// Human-readable output only on an interactive terminal
	fd := int(os.Stdout.Fd())
	pretty := !*asJSON && term.IsTerminal(fd)
	width := 0
	if pretty {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
	}

	if err := writeCheck(os.Stdout, table, day, pretty, width); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// LoadTable returns the calendar from path, or the shipped one if path is empty
func LoadTable(path string) (*calendar.Table, error) {
	if path == "" {
		return calendar.Default(), nil
	}
	return calendar.LoadFile(path)
}

// writeCheck prints the status of day either as the /api JSON or as an
// aligned summary no wider than width (0 means unknown)
func writeCheck(w io.Writer, table *calendar.Table, day calendar.Date, pretty bool, width int) error {
	status, err := app.BuildStatus(table, day)
	if err != nil {
		return err
	}

	if !pretty {
		return json.NewEncoder(w).Encode(status.Payload())
	}

	rows := [][2]string{
		{"Date", fmt.Sprintf("%s (%s)", day, day.Weekday())},
		{"Shopping Sunday today", yesNo(status.IsTodayShoppingSunday)},
		{"Coming Sunday", fmt.Sprintf("%s (%s)", status.NextSunday, yesNo(status.IsNextSundayShopping))},
		{"Next shopping Sunday", fmt.Sprintf("%s (in %d days)", status.NextShoppingSunday, status.DaysUntilNext())},
	}

	labelWidth := 0
	for _, r := range rows {
		if len(r[0]) > labelWidth {
			labelWidth = len(r[0])
		}
	}

	ruleWidth := maxRuleWidth
	if width > 0 && width < ruleWidth {
		ruleWidth = width
	}
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
	for _, r := range rows {
		line := fmt.Sprintf("%-*s  %s", labelWidth, r[0], r[1])
		if width > 0 && len(line) > width {
			line = line[:width]
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
