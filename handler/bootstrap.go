package handler

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/jacentio/customer-api/store"
)

// Bootstrap wires the process-wide dependencies for a Lambda entrypoint:
// table names from the environment, the shared DynamoDB client, and a JSON
// logger. The returned Handler lives for the process lifetime; the client
// is stateless aside from connection pooling and needs no teardown.
func Bootstrap(ctx context.Context) (*Handler, error) {
	storeCfg, err := store.ConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("load table config: %w", err)
	}

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return NewHandler(store.New(dynamodb.NewFromConfig(awsCfg), storeCfg), logger), nil
}
