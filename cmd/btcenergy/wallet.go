package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var walletCmd = &cobra.Command{
	Use:   "wallet [address]",
	Short: "Show total estimated energy of a wallet's transactions",
	Long: `Pages through every transaction of the address, 50 at a time, and sums
their estimated energy. Large wallets take one explorer request per 50 transactions.`,
	Args: cobra.ExactArgs(1),
	RunE: runWallet,
}

func init() {
	rootCmd.AddCommand(walletCmd)
}

func runWallet(cmd *cobra.Command, args []string) error {
	_, log, svc, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	total, err := svc.TotalWalletEnergy(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s kWh\n", args[0], humanize.Commaf(round2(total)))
	return nil
}
