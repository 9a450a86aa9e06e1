package graph

import (
	"context"
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/jgoulah/btcenergy/pkg/models"
)

// Resolver answers the query fields
type Resolver interface {
	EnergyPerTransaction(ctx context.Context, blockHash string) ([]models.TransactionEnergy, error)
	TotalEnergyLastDays(ctx context.Context, days int) ([]models.DailyEnergy, error)
	TotalWalletEnergy(ctx context.Context, address string) (float64, error)
}

var transactionEnergyType = graphql.NewObject(graphql.ObjectConfig{
	Name:        "TransactionEnergy",
	Description: "Estimated energy of a single transaction.",
	Fields: graphql.Fields{
		"txHash": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(models.TransactionEnergy).TxHash, nil
			},
		},
		"size": &graphql.Field{
			Type:        graphql.NewNonNull(graphql.Int),
			Description: "Transaction size in bytes.",
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return int(p.Source.(models.TransactionEnergy).Size), nil
			},
		},
		"energyKwh": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Float),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(models.TransactionEnergy).EnergyKWh, nil
			},
		},
	},
})

var dailyEnergyType = graphql.NewObject(graphql.ObjectConfig{
	Name:        "DailyEnergy",
	Description: "Estimated energy of one UTC day.",
	Fields: graphql.Fields{
		"date": &graphql.Field{
			Type:        graphql.NewNonNull(graphql.String),
			Description: "YYYY-MM-DD",
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(models.DailyEnergy).Date, nil
			},
		},
		"totalEnergyKwh": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Float),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(models.DailyEnergy).TotalEnergyKWh, nil
			},
		},
	},
})

// NewSchema builds the query schema on top of r
func NewSchema(r Resolver) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"energyPerTransaction": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(transactionEnergyType))),
				Description: "Estimated energy for each transaction in a block.",
				Args: graphql.FieldConfigArgument{
					"blockHash": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					hash, _ := p.Args["blockHash"].(string)
					return r.EnergyPerTransaction(p.Context, hash)
				},
			},
			"totalEnergyLastDays": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(dailyEnergyType))),
				Description: "Daily energy for the last N days, newest first. Each day is sampled from its first block only.",
				Args: graphql.FieldConfigArgument{
					"days": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					days, _ := p.Args["days"].(int)
					return r.TotalEnergyLastDays(p.Context, days)
				},
			},
			"totalWalletEnergy": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.Float),
				Description: "Total energy of every transaction of an address.",
				Args: graphql.FieldConfigArgument{
					"address": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					address, _ := p.Args["address"].(string)
					return r.TotalWalletEnergy(p.Context, address)
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: query})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("building schema: %w", err)
	}
	return schema, nil
}

// Request is a GraphQL request as sent over HTTP
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

// Execute runs req against schema
func Execute(ctx context.Context, schema graphql.Schema, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        ctx,
	})
}
