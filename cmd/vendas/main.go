package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"vendas/internal/aggregate"
	"vendas/internal/cli"
	"vendas/internal/core"
	"vendas/internal/ranking"
	"vendas/internal/report"
	"vendas/internal/services"
)

const usage = `usage: vendas <command> [flags]

commands:
  init                      write the default template and stylesheet
  add -seller -product -qty -price -region [-date]
                            record a sale
  list                      print every recorded sale
  summary                   print total, count and average ticket
  report                    print the text report
  document                  write the document report and print its path
  last                      print the path of the newest document
  export <path>             write the ledger to path as csv
  rewrite                   rewrite the ledger file in canonical form
  clear -yes                remove every recorded sale
  catalog                   print the suggested products and regions
`

var errUsage = errors.New("invalid usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" {
		fmt.Fprint(stderr, usage)
		if len(args) == 0 {
			return 1
		}
		return 0
	}

	cli.LoadEnvFile()
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintf(stderr, "vendas: %v\n", err)
		return 1
	}
	logger := cli.SetupLogger(cfg, stderr)

	ctx, stop := cli.SignalContext()
	defer stop()

	cmd, rest := args[0], args[1:]
	if cmd == "init" {
		created, err := cli.InitAssets(cfg, logger)
		if err != nil {
			fmt.Fprintf(stderr, "vendas: %v\n", err)
			return 1
		}
		for _, p := range created {
			fmt.Fprintf(stdout, "criado: %s\n", p)
		}
		return 0
	}

	svc, err := cli.Bootstrap(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "vendas: %v\n", err)
		return 1
	}
	defer svc.Close()

	app := &app{svc: svc, out: stdout, format: ranking.NewFormatter("")}
	if err := app.dispatch(ctx, cmd, rest, stderr); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(stderr, usage)
		} else if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "vendas: %v\n", err)
		}
		return 1
	}
	return 0
}

type app struct {
	svc    *services.SalesService
	out    io.Writer
	format *ranking.Formatter
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string, stderr io.Writer) error {
	switch cmd {
	case "add":
		return a.add(ctx, args, stderr)
	case "list":
		return a.list()
	case "summary":
		return a.summary(ctx)
	case "report":
		return a.report(ctx)
	case "document":
		return a.document(ctx)
	case "last":
		return a.last()
	case "export":
		if len(args) != 1 {
			return fmt.Errorf("export needs exactly one path: %w", errUsage)
		}
		return a.export(ctx, args[0])
	case "rewrite":
		return a.rewrite(ctx)
	case "clear":
		return a.clear(ctx, args, stderr)
	case "catalog":
		return a.catalog()
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func (a *app) add(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var in core.SaleInput
	fs.StringVar(&in.Date, "date", "", "sale date as entered, e.g. 05/03/2025")
	fs.StringVar(&in.Seller, "seller", "", "seller name")
	fs.StringVar(&in.Product, "product", "", "product name")
	fs.StringVar(&in.Quantity, "qty", "", "quantity, a whole number of at least 1")
	fs.StringVar(&in.Price, "price", "", "unit price, e.g. 49.90 or 49,90")
	fs.StringVar(&in.Region, "region", "", "region name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, f := range []*string{&in.Date, &in.Seller, &in.Product, &in.Quantity, &in.Price, &in.Region} {
		*f = strings.TrimSpace(*f)
	}

	sale, err := a.svc.RecordSale(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "venda registrada: %s, %s x%d, %s\n",
		sale.Seller, sale.Product, sale.Quantity, a.format.Money(sale.Total))
	return nil
}

var listColumns = []ranking.Column{
	{Width: 12}, {Width: 16}, {Width: 16}, {Width: 5, Align: ranking.AlignRight},
	{Width: 14, Align: ranking.AlignRight}, {Width: 14, Align: ranking.AlignRight}, {Width: 12},
}

func (a *app) list() error {
	sales := a.svc.Snapshot()
	if len(sales) == 0 {
		fmt.Fprintln(a.out, "Nenhuma venda cadastrada")
		return nil
	}
	fmt.Fprintln(a.out, ranking.TextRow(listColumns, "Data", "Vendedor", "Produto", "Qtd", "Preço", "Total", "Região"))
	for _, s := range sales {
		fmt.Fprintln(a.out, ranking.TextRow(listColumns,
			s.Date, s.Seller, s.Product, strconv.Itoa(s.Quantity),
			a.format.Money(s.UnitPrice), a.format.Money(s.Total), s.Region))
	}
	return nil
}

func (a *app) summary(ctx context.Context) error {
	summary, err := a.svc.ComputeAggregates(ctx)
	if errors.Is(err, aggregate.ErrNoData) {
		fmt.Fprintln(a.out, "Nenhuma venda cadastrada")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Vendas totais: %s\n", a.format.Money(summary.GrandTotal))
	fmt.Fprintf(a.out, "Quantidade:    %d vendas\n", summary.TotalCount)
	fmt.Fprintf(a.out, "Ticket médio:  %s\n", a.format.Money(summary.AverageTicket))
	return nil
}

func (a *app) report(ctx context.Context) error {
	text, err := a.svc.RenderTextReport(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, text)
	return nil
}

func (a *app) document(ctx context.Context) error {
	path, err := a.svc.RenderDocumentReport(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, path)
	return nil
}

func (a *app) last() error {
	path, err := a.svc.LatestDocument()
	if err != nil {
		if errors.Is(err, report.ErrNoReports) {
			return errors.New("nenhum relatório encontrado")
		}
		return err
	}
	fmt.Fprintln(a.out, path)
	return nil
}

func (a *app) export(ctx context.Context, path string) error {
	if err := a.svc.ExportLedger(ctx, path); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d vendas exportadas para %s\n", a.svc.Count(), path)
	return nil
}

func (a *app) rewrite(ctx context.Context) error {
	if err := a.svc.SaveLedger(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d vendas regravadas\n", a.svc.Count())
	return nil
}

func (a *app) clear(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("clear", flag.ContinueOnError)
	fs.SetOutput(stderr)
	yes := fs.Bool("yes", false, "confirm removal of every sale")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*yes {
		return errors.New("clear removes every sale; run again with -yes to confirm")
	}
	if err := a.svc.ClearLedger(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "todas as vendas foram removidas")
	return nil
}

func (a *app) catalog() error {
	c := a.svc.Catalog()
	fmt.Fprintf(a.out, "Produtos: %s\n", strings.Join(c.Products, ", "))
	fmt.Fprintf(a.out, "Regiões:  %s\n", strings.Join(c.Regions, ", "))
	return nil
}
