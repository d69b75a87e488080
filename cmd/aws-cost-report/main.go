package main

import (
	"context"
	"fmt"
	"os"

	"github.com/diillson/aws-daily-cost-report/internal/adapter/driven/config"
	"github.com/diillson/aws-daily-cost-report/internal/adapter/driving/cli"
	"github.com/diillson/aws-daily-cost-report/pkg/console"
)

func main() {
	// Inicializa os repositórios
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(configRepo, consoleImpl)

	// Executa o aplicativo
	if err := app.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", console.BoldRed("Error:"), err)
		os.Exit(1)
	}
}
