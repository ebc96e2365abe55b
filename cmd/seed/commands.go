package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/application/resource"
	"github.com/jhoicas/Negocio-api/internal/application/session"
	"github.com/jhoicas/Negocio-api/internal/application/usecase"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
	"github.com/jhoicas/Negocio-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Negocio-api/pkg/jwt"
)

func runSchema(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		return err
	}
	log.Info().Msg("esquema listo")
	return nil
}

func runDemo(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if userID == "" {
		userID = uuid.NewString()
	} else if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("--user debe ser un UUID: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if withSchema {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			return err
		}
	}

	runner := postgres.NewTxRunner(pool, resource.Tables())
	err = runner.Run(ctx, func(remote repository.RemoteStore) error {
		return seedDemo(ctx, remote, userID, time.Now())
	})
	if err != nil {
		return fmt.Errorf("cargar datos de demostración: %w", err)
	}
	log.Info().Str("usuario", userID).Msg("datos de demostración cargados")
	return printToken(cmd, userID)
}

func runToken(cmd *cobra.Command, _ []string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("--user debe ser un UUID: %w", err)
	}
	return printToken(cmd, userID)
}

func printToken(cmd *cobra.Command, user string) error {
	tok, err := jwt.Generate(cfg.JWT.Secret, user, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "user_id: %s\nAuthorization: Bearer %s\n", user, tok)
	return nil
}

type demoCustomer struct {
	req   dto.CreateCustomerRequest
	tasks []string
	sales []demoSale
}

type demoSale struct {
	product   string
	amount    int64
	status    string
	monthsAgo int
}

var demoData = []demoCustomer{
	{
		req:   dto.CreateCustomerRequest{Name: "José Martínez", Email: "jose@ferreteriamartinez.co", Company: "Ferretería Martínez", Status: "activo", Origin: "referido"},
		tasks: []string{"Enviar cotización de herramientas", "Llamar para confirmar pedido"},
		sales: []demoSale{
			{product: "Plan mensual", amount: 250000, status: "completado"},
			{product: "Plan mensual", amount: 250000, status: "completado", monthsAgo: 1},
		},
	},
	{
		req:   dto.CreateCustomerRequest{Name: "Lucía Gómez", Email: "lucia@panaderialucia.co", Company: "Panadería Lucía", Status: "prospecto", Origin: "redes sociales"},
		tasks: []string{"Agendar demostración"},
		sales: []demoSale{{product: "Asesoría inicial", amount: 120000, status: "pendiente"}},
	},
	{
		req:   dto.CreateCustomerRequest{Name: "Andrés Ruiz", Email: "andres@ruizcia.co", Company: "Ruiz & Cía", Status: "inactivo", Origin: "feria"},
		sales: []demoSale{{product: "Licencia anual", amount: 900000, status: "cancelado", monthsAgo: 1}},
	},
}

// seedDemo usa los mismos casos de uso de la API, con una sesión autenticada para user.
func seedDemo(ctx context.Context, remote repository.RemoteStore, user string, now time.Time) error {
	sess := session.New()
	sess.SignIn(user)
	opts := resource.Options{Logger: log}

	notes := resource.NewChildren(remote, resource.Notes, opts)
	files := resource.NewChildren(remote, resource.Files, opts)
	customers := usecase.NewCustomerUseCase(resource.NewStore(remote, resource.Customers, sess, opts), notes, files, log)
	tasks := usecase.NewTaskUseCase(resource.NewStore(remote, resource.Tasks, sess, opts), customers)
	sales := usecase.NewSaleUseCase(resource.NewStore(remote, resource.Sales, sess, opts), customers)
	noteUC := usecase.NewNoteUseCase(customers, notes)

	for _, d := range demoData {
		c, err := customers.Create(ctx, d.req)
		if err != nil {
			return fmt.Errorf("cliente %s: %w", d.req.Name, err)
		}
		if _, err := noteUC.Create(ctx, c.ID, dto.CreateNoteRequest{Type: "nota", Title: "Cliente de demostración"}); err != nil {
			return fmt.Errorf("nota de %s: %w", d.req.Name, err)
		}
		for _, title := range d.tasks {
			due := now.AddDate(0, 0, 7)
			if _, err := tasks.Create(ctx, dto.CreateTaskRequest{Title: title, CustomerID: c.ID, DueDate: &due}); err != nil {
				return fmt.Errorf("tarea %q: %w", title, err)
			}
		}
		for _, s := range d.sales {
			date := time.Date(now.Year(), now.Month()-time.Month(s.monthsAgo), min(now.Day(), 28), 10, 0, 0, 0, now.Location())
			_, err := sales.Create(ctx, dto.CreateSaleRequest{
				CustomerID: c.ID,
				Product:    s.product,
				Amount:     decimal.NewFromInt(s.amount),
				Status:     s.status,
				SaleDate:   &date,
			})
			if err != nil {
				return fmt.Errorf("venta %q: %w", s.product, err)
			}
		}
	}
	return nil
}
