// nibsoctl herramienta de administración del punto de venta: carga inicial de datos,
// alta de usuarios, reportes de ventas y lista de reposición.
//
// Uso: go run ./cmd/nibsoctl [--backend file --dir ./data] <comando>
// Lee la misma configuración que la API (env vars y .env).
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "nibsoctl: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "nibsoctl",
		Usage: "administración del punto de venta Nibso",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "backend", Usage: "almacén: memory, file, postgres, redis", EnvVars: []string{"STORE_BACKEND"}},
			&cli.StringFlag{Name: "dir", Usage: "directorio del backend file", EnvVars: []string{"STORE_DIR"}},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log en nivel debug"},
		},
		Commands: []*cli.Command{
			seedCommand(),
			userCommand(),
			reportCommand(),
			lowStockCommand(),
			revenueCommand(),
		},
	}
}
