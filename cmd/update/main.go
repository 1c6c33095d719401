// Lambda entrypoint that applies a partial customer update.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jacentio/customer-api/handler"
)

func main() {
	h, err := handler.Bootstrap(context.Background())
	if err != nil {
		slog.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}
	lambda.Start(h.Update)
}
