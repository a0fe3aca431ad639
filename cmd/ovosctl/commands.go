package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ovos-api/internal/bootstrap"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
	"github.com/jhoicas/Ovos-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/Ovos-api/internal/interfaces/http"
	"github.com/jhoicas/Ovos-api/pkg/config"
	"github.com/jhoicas/Ovos-api/pkg/jwt"
	"github.com/jhoicas/Ovos-api/pkg/logger"
)

var commands = []subcommands.Command{
	&stockCmd{},
	&setPriceCmd{},
	&pricesCmd{},
	&summaryCmd{},
	&monthsCmd{},
	&recomputeCmd{},
	&tokenCmd{role: apphttp.RoleOperador},
}

// withServices abre el backend configurado, ejecuta fn y cierra.
func withServices(ctx context.Context, fn func(*bootstrap.Services) error) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn", App: "ovosctl", Out: os.Stderr})
	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer backend.Close()

	svc, err := bootstrap.NewServices(backend, cfg.Stock, cfg.App.Location)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := fn(svc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type stockCmd struct{}

func (*stockCmd) Name() string             { return "stock" }
func (*stockCmd) Synopsis() string         { return "muestra el stock actual y su banda de alerta" }
func (*stockCmd) Usage() string            { return "ovosctl stock\n" }
func (*stockCmd) SetFlags(_ *flag.FlagSet) {}

func (*stockCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withServices(ctx, func(svc *bootstrap.Services) error {
		v, err := svc.Stock.Current(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%d ovos (%s)\n", v.Quantity, v.Status)
		return nil
	})
}

type setPriceCmd struct{}

func (*setPriceCmd) Name() string     { return "set-price" }
func (*setPriceCmd) Synopsis() string { return "define un nuevo precio unitario activo" }
func (*setPriceCmd) Usage() string {
	return `ovosctl set-price <unit_price>

  Desactiva el precio vigente y registra el nuevo como activo.
`
}
func (*setPriceCmd) SetFlags(_ *flag.FlagSet) {}

func (*setPriceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "se espera exactamente un precio")
		return subcommands.ExitUsageError
	}
	price, err := decimal.NewFromString(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "precio inválido %q: %v\n", f.Arg(0), err)
		return subcommands.ExitUsageError
	}
	return withServices(ctx, func(svc *bootstrap.Services) error {
		id, err := svc.Prices.SetPrice(ctx, price)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	})
}

type pricesCmd struct{}

func (*pricesCmd) Name() string             { return "prices" }
func (*pricesCmd) Synopsis() string         { return "lista el histórico de precios" }
func (*pricesCmd) Usage() string            { return "ovosctl prices\n" }
func (*pricesCmd) SetFlags(_ *flag.FlagSet) {}

func (*pricesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withServices(ctx, func(svc *bootstrap.Services) error {
		list, err := svc.Prices.History(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DESDE\tPRECIO\tACTIVO\tID")
		for _, p := range list {
			fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", p.EffectiveFrom.Format("2006-01-02 15:04"), p.UnitPrice, p.Active, p.ID)
		}
		return w.Flush()
	})
}

type summaryCmd struct {
	month string
	year  string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "muestra el consolidado de un mes o de un año" }
func (*summaryCmd) Usage() string {
	return `ovosctl summary [-month YYYY-MM | -year YYYY]
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "mes YYYY-MM (por defecto el actual)")
	f.StringVar(&c.year, "year", "", "año YYYY; tiene prioridad sobre -month")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withServices(ctx, func(svc *bootstrap.Services) error {
		if c.year != "" {
			list, err := svc.Summaries.GetYear(ctx, c.year)
			if err != nil {
				return err
			}
			return printSummaries(os.Stdout, list...)
		}
		month := c.month
		if month == "" {
			month = svc.Summaries.CurrentMonth()
		}
		s, err := svc.Summaries.Get(ctx, month)
		if err != nil {
			return err
		}
		return printSummaries(os.Stdout, s)
	})
}

type monthsCmd struct{}

func (*monthsCmd) Name() string             { return "months" }
func (*monthsCmd) Synopsis() string         { return "lista los meses con movimientos" }
func (*monthsCmd) Usage() string            { return "ovosctl months\n" }
func (*monthsCmd) SetFlags(_ *flag.FlagSet) {}

func (*monthsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withServices(ctx, func(svc *bootstrap.Services) error {
		months, err := svc.Summaries.Months(ctx)
		if err != nil {
			return err
		}
		for _, m := range months {
			fmt.Println(m)
		}
		return nil
	})
}

type recomputeCmd struct {
	month string
	year  string
}

func (*recomputeCmd) Name() string     { return "recompute" }
func (*recomputeCmd) Synopsis() string { return "recalcula consolidados a partir de las transacciones" }
func (*recomputeCmd) Usage() string {
	return `ovosctl recompute (-month YYYY-MM | -year YYYY)

  Vuelve a sumar las transacciones y reemplaza los consolidados. Es idempotente;
  útil tras restaurar un respaldo o corregir datos a mano.
`
}

func (c *recomputeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "mes YYYY-MM")
	f.StringVar(&c.year, "year", "", "año YYYY")
}

func (c *recomputeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.month == "") == (c.year == "") {
		fmt.Fprintln(os.Stderr, "indique -month o -year (solo uno)")
		return subcommands.ExitUsageError
	}
	return withServices(ctx, func(svc *bootstrap.Services) error {
		if c.year != "" {
			list, err := svc.Summaries.RecomputeYear(ctx, c.year)
			if err != nil {
				return err
			}
			return printSummaries(os.Stdout, list...)
		}
		s, err := svc.Summaries.Recompute(ctx, c.month)
		if err != nil {
			return err
		}
		return printSummaries(os.Stdout, s)
	})
}

type tokenCmd struct {
	user string
	name string
	role string
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "emite un token de operador para la API" }
func (*tokenCmd) Usage() string {
	return `ovosctl token -user ID -name NOMBRE [-role admin|operador]

  Firma un Bearer token con JWT_SECRET y JWT_ISSUER, válido JWT_EXPIRATION_MINUTES.
`
}

func (c *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "ID del operador (obligatorio)")
	f.StringVar(&c.name, "name", "", "nombre que queda registrado en las transacciones")
	f.StringVar(&c.role, "role", c.role, "admin | operador")
}

func (c *tokenCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tok, err := issueToken(cfg.JWT, jwt.Identity{UserID: c.user, UserName: c.name, Role: c.role})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	fmt.Println(tok)
	return subcommands.ExitSuccess
}

func issueToken(cfg config.JWTConfig, id jwt.Identity) (string, error) {
	if id.Role != apphttp.RoleAdmin && id.Role != apphttp.RoleOperador {
		return "", fmt.Errorf("rol desconocido %q (admin|operador)", id.Role)
	}
	if cfg.Expiration <= 0 {
		return "", fmt.Errorf("JWT_EXPIRATION_MINUTES debe ser positivo")
	}
	tokens, err := jwt.New(cfg.Secret, cfg.Issuer, cfg.TTL())
	if err != nil {
		return "", err
	}
	return tokens.Issue(id)
}

func printSummaries(out io.Writer, list ...*entity.MonthlySummary) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "MES\tENTRADAS\tVENTAS\tPÉRDIDAS\tCONSUMO\tINGRESOS\tGASTOS\tNETO\t")
	for _, s := range list {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\t%s\t%s\t\n",
			s.MonthKey, s.TotalEntries, s.TotalSalesQty, s.TotalLosses, s.TotalConsumption,
			s.Revenue.StringFixed(2), s.TotalExpenses.StringFixed(2), s.NetProfit.StringFixed(2))
	}
	return w.Flush()
}
