package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var daysCmd = &cobra.Command{
	Use:   "days [N]",
	Short: "Show estimated energy for each of the last N days",
	Long: `Prints one line per UTC day, newest first. Each day is estimated from the
first block the explorer lists for it, so totals undercount the real daily energy.

N defaults to days_to_fetch from the config file (7 when unset).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDays,
}

func init() {
	rootCmd.AddCommand(daysCmd)
}

func runDays(cmd *cobra.Command, args []string) error {
	cfg, log, svc, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	days, err := daysArg(args, cfg.GetDaysToFetch())
	if err != nil {
		return err
	}

	data, err := svc.TotalEnergyLastDays(cmd.Context(), days)
	if err != nil {
		return err
	}

	if len(data) == 0 {
		fmt.Println("No data found")
		return nil
	}

	fmt.Println("----------------------------------------")
	fmt.Printf("%-12s  %18s\n", "Date", "kWh")
	fmt.Println("----------------------------------------")

	var total float64
	for _, record := range data {
		fmt.Printf("%-12s  %18s\n", record.Date, humanize.Commaf(round2(record.TotalEnergyKWh)))
		total += record.TotalEnergyKWh
	}

	fmt.Println("----------------------------------------")
	fmt.Printf("Total: %s kWh (%d days)\n", humanize.Commaf(round2(total)), len(data))
	return nil
}

// daysArg parses the optional day count argument
func daysArg(args []string, fallback int) (int, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	days, err := strconv.Atoi(args[0])
	if err != nil || days < 0 {
		return 0, fmt.Errorf("invalid day count: %s", args[0])
	}
	return days, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
