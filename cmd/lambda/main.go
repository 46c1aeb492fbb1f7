package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/MrJamesThe3rd/spendwise/internal/backend"
	"github.com/MrJamesThe3rd/spendwise/internal/config"
	"github.com/MrJamesThe3rd/spendwise/internal/expense"
	expenseLambda "github.com/MrJamesThe3rd/spendwise/internal/lambda"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The function only ever talks to DynamoDB; the environment picks the table.
	cfg.Store.Backend = config.BackendDynamoDB

	res, err := backend.Open(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}

	handler := expenseLambda.NewHandler(expense.NewService(res.Store))

	lambda.Start(handler.Handle)
}
