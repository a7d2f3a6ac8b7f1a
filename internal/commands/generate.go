package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klabast/wb-services/shopping-sunday/internal/calendar"
)

// Generate handles the generate subcommand
func Generate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	from := fs.Int("from", time.Now().Year(), "First year to generate")
	to := fs.Int("to", 0, "Last year to generate (default: same as -from)")
	output := fs.String("o", "", "Write to file instead of stdout")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: shopping-sunday generate [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Prints a calendar file (YAML) derived from the trade restriction act.\n")
		fmt.Fprintf(os.Stderr, "Review the output against the published calendar before deploying it.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if *to == 0 {
		*to = *from
	}

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	if err := writeGenerate(w, *from, *to); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func writeGenerate(w io.Writer, from, to int) error {
	table, err := calendar.StatutoryTable(from, to)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "# Shopping Sundays %d-%d, generated from statutory rules\n", from, to)
	return calendar.Encode(w, table)
}
