// textilctl herramienta de operación: migraciones, alta del primer administrador
// y descarga de reportes PDF a través de la API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/textil-api/pkg/config"
	"github.com/jhoicas/textil-api/pkg/logger"
)

// version se sobrescribe en el build: -ldflags "-X main.version=1.2.0"
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: "development", Level: cfg.Log.Level, Out: os.Stderr})
	if err := newRootCmd(cfg, log).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "textilctl",
		Short:         "Operación del backend textil",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newMigrateCmd(cfg, log))
	root.AddCommand(newCreateAdminCmd(cfg, log))
	root.AddCommand(newReportCmd(cfg, log))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Muestra la versión",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("textilctl", version)
		},
	})
	return root
}
