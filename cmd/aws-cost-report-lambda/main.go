package main

import (
	"fmt"
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"

	"github.com/diillson/aws-daily-cost-report/internal/adapter/driven/config"
	"github.com/diillson/aws-daily-cost-report/internal/adapter/driving/lambda"
	"github.com/diillson/aws-daily-cost-report/internal/bootstrap"
	"github.com/diillson/aws-daily-cost-report/internal/shared/types"
)

func main() {
	// Na Lambda os logs vão para o CloudWatch, então o padrão é JSON.
	base := types.DefaultConfig()
	base.LogFormat = "json"

	cfg, err := bootstrap.LoadConfig(config.NewConfigRepositoryWithEnvFile(""), base, os.Getenv("REPORT_CONFIG_FILE"), nil, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	app, err := bootstrap.New(cfg, "aws-daily-cost-report-lambda")
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}

	handler := lambda.NewHandler(app.UseCase, cfg, app.Logger)
	// Start não retorna; traces e logs são descarregados no SIGTERM do runtime.
	awslambda.StartWithOptions(handler.Handle, awslambda.WithEnableSIGTERM(app.Close))
}
