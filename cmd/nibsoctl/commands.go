package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/nibso-dashboard/internal/application/auth"
	"github.com/jhoicas/nibso-dashboard/internal/application/dto"
	"github.com/jhoicas/nibso-dashboard/internal/application/inventory"
	"github.com/jhoicas/nibso-dashboard/internal/application/loyalty"
	"github.com/jhoicas/nibso-dashboard/internal/application/persist"
	"github.com/jhoicas/nibso-dashboard/internal/application/promotion"
	"github.com/jhoicas/nibso-dashboard/internal/application/sales"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/jhoicas/nibso-dashboard/internal/domain/repository"
	"github.com/jhoicas/nibso-dashboard/internal/infrastructure/kvstore"
	"github.com/jhoicas/nibso-dashboard/pkg/config"
	"github.com/jhoicas/nibso-dashboard/pkg/logger"
	"github.com/jhoicas/nibso-dashboard/pkg/money"
)

// workspace configuración y almacén abiertos para un comando.
type workspace struct {
	cfg     *config.Config
	log     *logger.Logger
	profile entity.BusinessProfile
	store   repository.KeyValueStore
	close   func()
	out     io.Writer
}

func openWorkspace(c *cli.Context) (*workspace, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	if b := c.String("backend"); b != "" {
		cfg.Store.Backend = b
	}
	if d := c.String("dir"); d != "" {
		cfg.Store.Dir = d
	}
	level := "warn"
	if c.Bool("verbose") {
		level = "debug"
	}
	// stdout queda para la salida de los comandos
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: level, Service: "nibsoctl", Out: c.App.ErrWriter})

	profile, err := entity.NewBusinessProfile(cfg.Business.Name, cfg.Business.Vertical,
		cfg.Business.TaxRate, cfg.Business.CurrencySymbol, cfg.Business.StockPolicy)
	if err != nil {
		return nil, err
	}
	opened, err := kvstore.Open(c.Context, cfg)
	if err != nil {
		return nil, fmt.Errorf("almacén de datos: %w", err)
	}
	log.Debug().Str("store", cfg.Store.Backend).Msg("almacén abierto")
	return &workspace{
		cfg:     cfg,
		log:     log,
		profile: profile,
		store:   opened.Store,
		close:   opened.Close,
		out:     c.App.Writer,
	}, nil
}

// withWorkspace abre el almacén, ejecuta fn y lo cierra.
func withWorkspace(fn func(c *cli.Context, ws *workspace) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		ws, err := openWorkspace(c)
		if err != nil {
			return err
		}
		defer ws.close()
		return fn(c, ws)
	}
}

func (ws *workspace) money(d decimal.Decimal) string {
	return money.Format(ws.profile.CurrencySymbol, d)
}

// seedFile formato del archivo de carga inicial.
type seedFile struct {
	Inventory  []dto.ItemRequest      `json:"inventory"`
	Promotions []dto.PromotionRequest `json:"promotions"`
	Members    []dto.MemberRequest    `json:"members"`
}

func readSeedFile(path string) (*seedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	var sf seedFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", path, err)
	}
	return &sf, nil
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "carga inventario, promociones y miembros desde un archivo JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Value: "seed.json", Usage: "archivo de carga"},
		},
		Action: withWorkspace(func(c *cli.Context, ws *workspace) error {
			sf, err := readSeedFile(c.String("file"))
			if err != nil {
				return err
			}
			ctx := c.Context

			ledger, err := inventory.NewLedger(ctx, ws.store)
			if err != nil {
				return err
			}
			items := make([]entity.InventoryItem, 0, len(sf.Inventory))
			for _, r := range sf.Inventory {
				items = append(items, r.ToEntity())
			}
			if len(items) > 0 {
				if _, err := ledger.AddBulk(ctx, items); err != nil {
					return fmt.Errorf("inventario: %w", err)
				}
			}

			promos, members := 0, 0
			if ws.profile.IsSupermarket() {
				catalog, err := promotion.NewCatalog(ctx, ws.store)
				if err != nil {
					return err
				}
				for _, r := range sf.Promotions {
					if _, err := catalog.Add(ctx, r.ToEntity()); err != nil {
						return fmt.Errorf("promoción %q: %w", r.Description, err)
					}
					promos++
				}
				registry, err := loyalty.NewRegistry(ctx, ws.store)
				if err != nil {
					return err
				}
				for _, r := range sf.Members {
					if _, err := registry.Add(ctx, r.Name, r.Phone); err != nil {
						return fmt.Errorf("miembro %q: %w", r.Name, err)
					}
					members++
				}
			} else if len(sf.Promotions)+len(sf.Members) > 0 {
				ws.log.Warn().
					Str("vertical", string(ws.profile.Vertical)).
					Msg("promociones y miembros omitidos: solo aplican a supermercados")
			}

			fmt.Fprintf(ws.out, "artículos: %d, promociones: %d, miembros: %d\n", len(items), promos, members)
			return nil
		}),
	}
}

func userCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "gestión de usuarios",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "crea un usuario",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "role", Value: entity.RoleCashier, Usage: "admin, manager, cashier"},
				},
				Action: withWorkspace(func(c *cli.Context, ws *workspace) error {
					uc, err := auth.NewAuthUseCase(c.Context, ws.store, auth.JWTConfig{
						Secret:     ws.cfg.JWT.Secret,
						ExpMinutes: ws.cfg.JWT.Expiration,
						Issuer:     ws.cfg.JWT.Issuer,
					})
					if err != nil {
						return err
					}
					u, err := uc.CreateUser(c.Context, dto.CreateUserRequest{
						Email:    c.String("email"),
						Password: c.String("password"),
						Name:     c.String("name"),
						Role:     c.String("role"),
					})
					if err != nil {
						return err
					}
					fmt.Fprintf(ws.out, "usuario %s creado (%s, %s)\n", u.ID, u.Email, u.Role)
					return nil
				}),
			},
		},
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "reportes de ventas",
		Subcommands: []*cli.Command{
			{
				Name:  "daily",
				Usage: "ventas por día",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Usage: "YYYY-MM-DD"},
					&cli.StringFlag{Name: "to", Usage: "YYYY-MM-DD"},
				},
				Action: withWorkspace(func(c *cli.Context, ws *workspace) error {
					ledger, err := sales.NewLedger(c.Context, ws.store)
					if err != nil {
						return err
					}
					from, to := c.String("from"), c.String("to")
					tw := tabwriter.NewWriter(ws.out, 0, 0, 2, ' ', 0)
					fmt.Fprintln(tw, "FECHA\tTRANSACCIONES\tINGRESOS")
					for _, r := range ledger.Records() {
						if (from != "" && r.Date < from) || (to != "" && r.Date > to) {
							continue
						}
						fmt.Fprintf(tw, "%s\t%d\t%s\n", r.Date, r.Transactions, ws.money(r.Revenue))
					}
					return tw.Flush()
				}),
			},
			{
				Name:  "chart",
				Usage: "ventas agrupadas como en la gráfica del dashboard",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "period", Value: string(sales.PeriodDaily), Usage: "daily, weekly"},
				},
				Action: withWorkspace(func(c *cli.Context, ws *workspace) error {
					period, err := sales.ParsePeriod(c.String("period"))
					if err != nil {
						return err
					}
					ledger, err := sales.NewLedger(c.Context, ws.store)
					if err != nil {
						return err
					}
					tw := tabwriter.NewWriter(ws.out, 0, 0, 2, ' ', 0)
					fmt.Fprintln(tw, "PERIODO\tDESDE\tHASTA\tTRANSACCIONES\tINGRESOS")
					for _, b := range ledger.Chart(period, time.Now()) {
						fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", b.Label, b.From, b.To, b.Transactions, ws.money(b.Revenue))
					}
					return tw.Flush()
				}),
			},
		},
	}
}

func lowStockCommand() *cli.Command {
	return &cli.Command{
		Name:  "low-stock",
		Usage: "lista de reposición de artículos bajo punto de reorden",
		Action: withWorkspace(func(c *cli.Context, ws *workspace) error {
			ledger, err := inventory.NewLedger(c.Context, ws.store)
			if err != nil {
				return err
			}
			journal, err := sales.NewJournal(c.Context, ws.store)
			if err != nil {
				return err
			}
			list, err := inventory.NewReplenishmentUseCase(ledger, journal).GenerateReplenishmentList(c.Context)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(ws.out, "sin artículos bajo punto de reorden")
				return nil
			}
			tw := tabwriter.NewWriter(ws.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tARTÍCULO\tSTOCK\tREORDEN\tPEDIR\tCOSTO\tVENDIDOS 30D")
			for _, s := range list {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n",
					s.Priority, s.ItemName, s.CurrentStock, s.ReorderLevel,
					s.SuggestedOrderQty, ws.money(s.EstimatedCost), s.UnitsSoldLast30d)
			}
			return tw.Flush()
		}),
	}
}

// revenueQuerier almacenes que suman ingresos del lado del servidor (postgres).
type revenueQuerier interface {
	RevenueBetween(ctx context.Context, salesKey, from, to string) (decimal.Decimal, int, error)
}

var errDateRange = errors.New("rango de fechas inválido")

func revenueCommand() *cli.Command {
	return &cli.Command{
		Name:  "revenue",
		Usage: "ingresos acumulados entre dos fechas (inclusivas)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Required: true, Usage: "YYYY-MM-DD"},
			&cli.StringFlag{Name: "to", Required: true, Usage: "YYYY-MM-DD"},
		},
		Action: withWorkspace(func(c *cli.Context, ws *workspace) error {
			from, to := c.String("from"), c.String("to")
			if err := checkRange(from, to); err != nil {
				return err
			}
			revenue, tx, err := sumRevenue(c.Context, ws.store, from, to)
			if err != nil {
				return err
			}
			fmt.Fprintf(ws.out, "%s a %s: %s en %d transacciones\n", from, to, ws.money(revenue), tx)
			return nil
		}),
	}
}

func checkRange(from, to string) error {
	f, err := time.Parse(entity.DateLayout, from)
	if err != nil {
		return fmt.Errorf("%w: desde %q", errDateRange, from)
	}
	t, err := time.Parse(entity.DateLayout, to)
	if err != nil {
		return fmt.Errorf("%w: hasta %q", errDateRange, to)
	}
	if t.Before(f) {
		return fmt.Errorf("%w: %s es anterior a %s", errDateRange, to, from)
	}
	return nil
}

// sumRevenue consulta en el servidor cuando el almacén lo permite; si no, carga el ledger.
func sumRevenue(ctx context.Context, store repository.KeyValueStore, from, to string) (decimal.Decimal, int, error) {
	if q, ok := store.(revenueQuerier); ok {
		return q.RevenueBetween(ctx, persist.KeyDailySales, from, to)
	}
	ledger, err := sales.NewLedger(ctx, store)
	if err != nil {
		return decimal.Zero, 0, err
	}
	revenue, tx := ledger.Sum(from, to)
	return revenue, tx, nil
}
