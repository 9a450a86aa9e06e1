package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jgoulah/btcenergy/internal/graph"
)

var queryVariables string

var queryCmd = &cobra.Command{
	Use:   "query [graphql]",
	Short: "Run a GraphQL query without starting the server",
	Example: `  btcenergy query '{ totalWalletEnergy(address: "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa") }'
  btcenergy query 'query($n: Int!) { totalEnergyLastDays(days: $n) { date totalEnergyKwh } }' --variables '{"n": 3}'`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryVariables, "variables", "", "query variables as a JSON object")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	_, log, svc, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	schema, err := graph.NewSchema(svc)
	if err != nil {
		return err
	}

	req := graph.Request{Query: args[0]}
	if queryVariables != "" {
		if err := json.Unmarshal([]byte(queryVariables), &req.Variables); err != nil {
			return fmt.Errorf("parsing --variables: %w", err)
		}
	}

	result := graph.Execute(cmd.Context(), schema, req)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	if result.HasErrors() {
		return fmt.Errorf("query returned %d error(s)", len(result.Errors))
	}
	return nil
}
