package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jgoulah/btcenergy/internal/publisher"
)

var publishLimit int

var publishCmd = &cobra.Command{
	Use:   "publish [N]",
	Short: "Publish daily energy estimates to MQTT and/or Home Assistant",
	Long: `Computes the estimate for each of the last N days and publishes one reading per day
to the MQTT broker (retained, topic <prefix>/daily/<date>) and/or the Home Assistant
backfill endpoint, whichever are enabled in the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().IntVar(&publishLimit, "limit", 0, "Limit number of records to publish (0 = no limit)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Publish started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	cfg, log, svc, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	days, err := daysArg(args, cfg.GetDaysToFetch())
	if err != nil {
		return err
	}

	pub, err := publisher.New(cfg)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	data, err := svc.TotalEnergyLastDays(cmd.Context(), days)
	if err != nil {
		return err
	}

	if len(data) == 0 {
		fmt.Println("No data to publish")
		return nil
	}

	if publishLimit > 0 && len(data) > publishLimit {
		data = data[:publishLimit]
		fmt.Printf("Limiting to %d records (--limit flag)\n", publishLimit)
	}

	published := 0
	for i, record := range data {
		fmt.Printf("[%d/%d] Publishing %s (%s kWh)... ", i+1, len(data), record.Date, humanize.Commaf(round2(record.TotalEnergyKWh)))
		if err := pub.Publish(record); err != nil {
			fmt.Printf("FAILED: %v\n", err)
			continue
		}
		fmt.Printf("✓\n")
		published++
	}

	fmt.Printf("\nTotal records published: %d/%d\n", published, len(data))
	return nil
}
