// seed prepara una base de datos de desarrollo: crea el esquema, carga clientes, tareas y
// ventas de demostración para un usuario e imprime un Bearer Token para probar la API.
//
// Uso:
//
//	go run ./cmd/seed schema
//	go run ./cmd/seed demo --user <uuid>
//	go run ./cmd/seed token --user <uuid>
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Negocio-api/pkg/config"
	"github.com/jhoicas/Negocio-api/pkg/logger"
)

var (
	cfg *config.Config
	log *logger.Logger

	userID     string
	withSchema bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Herramientas de datos de desarrollo para Negocio API",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
		return nil
	},
	SilenceUsage: true,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Crea las tablas si no existen",
	RunE:  runSchema,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Carga clientes, tareas y ventas de demostración",
	Long: `Carga datos de demostración para un usuario dentro de una única transacción.

Si --user no se indica se genera un UUID nuevo. Al terminar imprime un
Bearer Token válido para ese usuario.`,
	RunE: runDemo,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Imprime un Bearer Token para un usuario",
	RunE:  runToken,
}

func init() {
	demoCmd.Flags().StringVar(&userID, "user", "", "UUID del usuario dueño de los datos")
	demoCmd.Flags().BoolVar(&withSchema, "schema", false, "crear el esquema antes de cargar")
	tokenCmd.Flags().StringVar(&userID, "user", "", "UUID del usuario")
	_ = tokenCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(schemaCmd, demoCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
