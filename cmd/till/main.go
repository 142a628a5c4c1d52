package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sheikh-saqib/cash-drawer-planner/internal/cashier"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/config"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/events"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/logger"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/models"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/storage/file"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/till"
)

var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	planner := till.NewPlanner(models.DefaultCatalog(), cfg.ReserveMinor)
	store := file.NewFileRecordStore(cfg.RecordsFile)
	c := cashier.NewCashier(planner, store, events.NopPublisher{}, cashier.WithLogger(log))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, c, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		cancel()
		os.Exit(1)
	}
}

// run dispatches one subcommand and writes its output to out
func run(ctx context.Context, c *cashier.Cashier, args []string, out io.Writer) error {
	if len(args) == 0 {
		printUsage(out)
		return errUsage
	}

	switch args[0] {
	case "total":
		return runTotal(c, args[1:], out)
	case "withdraw":
		return runWithdraw(c, args[1:], out)
	case "save":
		return runSave(ctx, c, args[1:], out)
	case "list":
		return runList(ctx, c, out)
	case "delete":
		return runDelete(ctx, c, args[1:], out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		fmt.Fprintf(out, "Unknown command: %s\n\n", args[0])
		printUsage(out)
		return errUsage
	}
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "Cash drawer till")
	fmt.Fprintln(out, "\nUsage:")
	fmt.Fprintln(out, "  till <command> [options]")
	fmt.Fprintln(out, "\nCommands:")
	fmt.Fprintln(out, "  total     Count the drawer")
	fmt.Fprintln(out, "  withdraw  Plan taking the sales amount out of the drawer")
	fmt.Fprintln(out, "  save      Save the drawer count as a record")
	fmt.Fprintln(out, "  list      List saved records, newest first")
	fmt.Fprintln(out, "  delete    Delete a saved record")
	fmt.Fprintln(out, "  help      Show this help message")
	fmt.Fprintln(out, "\nCounts are given as -count bills20=3 -count quarters=12 ...")
	fmt.Fprintln(out, "Run 'till <command> -h' for more information on a command.")
}

// countFlags collects repeated -count key=N flags
type countFlags map[string]string

func (f countFlags) String() string {
	pairs := make([]string, 0, len(f))
	for k, v := range f {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (f countFlags) Set(value string) error {
	key, count, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("expected key=count, got %q", value)
	}
	f[strings.TrimSpace(key)] = count
	return nil
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func runTotal(c *cashier.Cashier, args []string, out io.Writer) error {
	counts := countFlags{}
	fs := newFlagSet("total", out)
	fs.Var(counts, "count", "denomination count as key=N (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	counted, err := c.Total(counts)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Drawer total: %s\n", till.FormatMinor(counted.Total))
	return nil
}

func runWithdraw(c *cashier.Cashier, args []string, out io.Writer) error {
	counts := countFlags{}
	fs := newFlagSet("withdraw", out)
	fs.Var(counts, "count", "denomination count as key=N (repeatable)")
	sales := fs.String("sales", "", "sales amount to withdraw, e.g. 85.00")
	if err := fs.Parse(args); err != nil {
		return err
	}

	plan, err := c.Withdraw(counts, *sales)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Withdraw %s from a drawer of %s, leaving %s\n",
		till.FormatMinor(plan.Amount),
		till.FormatMinor(plan.DrawerTotal),
		till.FormatMinor(plan.Remaining))
	for _, line := range cashier.Instructions(plan, c.Catalog()) {
		fmt.Fprintf(out, "  %s\n", line)
	}
	return nil
}

func runSave(ctx context.Context, c *cashier.Cashier, args []string, out io.Writer) error {
	counts := countFlags{}
	fs := newFlagSet("save", out)
	fs.Var(counts, "count", "denomination count as key=N (repeatable)")
	drawer := fs.String("drawer", "", "drawer number")
	sales := fs.String("sales", "", "sales amount (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	record, err := c.SaveRecord(ctx, *drawer, counts, *sales)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Saved record %d for drawer %s: total %s, sales %s\n",
		record.ID,
		record.DrawerNumber,
		till.FormatMinor(record.TotalAmount),
		till.FormatMinor(record.SalesAmount))
	return nil
}

func runList(ctx context.Context, c *cashier.Cashier, out io.Writer) error {
	records, err := c.ListRecords(ctx)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No saved records.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDRAWER\tDATE\tTIME\tTOTAL\tSALES")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.DrawerNumber, r.Date, r.Time,
			till.FormatMinor(r.TotalAmount),
			till.FormatMinor(r.SalesAmount))
	}
	return tw.Flush()
}

func runDelete(ctx context.Context, c *cashier.Cashier, args []string, out io.Writer) error {
	fs := newFlagSet("delete", out)
	id := fs.Int64("id", 0, "record id")
	yes := fs.Bool("yes", false, "confirm the deletion")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == 0 {
		return errors.New("delete: -id is required")
	}
	if !*yes {
		return fmt.Errorf("delete: record %d not deleted, pass -yes to confirm", *id)
	}

	if err := c.DeleteRecord(ctx, *id); err != nil {
		return err
	}

	fmt.Fprintf(out, "Deleted record %d\n", *id)
	return nil
}
