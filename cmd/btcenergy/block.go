package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var blockCmd = &cobra.Command{
	Use:   "block [hash]",
	Short: "Show estimated energy per transaction in a block",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlock,
}

func init() {
	rootCmd.AddCommand(blockCmd)
}

func runBlock(cmd *cobra.Command, args []string) error {
	_, log, svc, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	data, err := svc.EnergyPerTransaction(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if len(data) == 0 {
		fmt.Println("No transactions found")
		return nil
	}

	fmt.Printf("\nBlock %s\n", args[0])
	fmt.Println("--------------------------------------------------------------------------------------------")
	fmt.Printf("%-64s  %10s  %14s\n", "Transaction", "Size", "kWh")
	fmt.Println("--------------------------------------------------------------------------------------------")

	var total float64
	var bytes uint64
	for _, tx := range data {
		fmt.Printf("%-64s  %10s  %14s\n", tx.TxHash, humanize.Bytes(uint64(tx.Size)), humanize.Commaf(round2(tx.EnergyKWh)))
		total += tx.EnergyKWh
		bytes += uint64(tx.Size)
	}

	fmt.Println("--------------------------------------------------------------------------------------------")
	fmt.Printf("Total: %s kWh (%s transactions, %s)\n", humanize.Commaf(round2(total)), humanize.Comma(int64(len(data))), humanize.Bytes(bytes))
	return nil
}
