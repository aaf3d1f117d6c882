package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/jmanzanog/t212-tickers/internal/application"
	"github.com/jmanzanog/t212-tickers/internal/domain"
)

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}

// filterFlags are shared by the commands that filter instruments.
type filterFlags struct {
	instrumentType    string
	exchanges         string
	includePreference bool
	skipUnmapped      bool
}

func (f *filterFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.instrumentType, "type", "", "Instrument type to keep (STOCK, ETF).")
	fs.StringVar(&f.exchanges, "exchange", "", "Comma separated exchange codes to keep, e.g. LON,AIM.")
	fs.BoolVar(&f.includePreference, "include-preference", false, "Keep preference shares in ticker listings.")
	fs.BoolVar(&f.skipUnmapped, "skip-unmapped", false, "Drop instruments whose exchange has no code instead of failing.")
}

func (f *filterFlags) filter() (application.InstrumentFilter, error) {
	codes, err := domain.ParseExchangeCodes(f.exchanges)
	if err != nil {
		return application.InstrumentFilter{}, err
	}
	return application.InstrumentFilter{
		Type:                    domain.InstrumentType(strings.ToUpper(strings.TrimSpace(f.instrumentType))),
		ExchangeCodes:           codes,
		IncludePreferenceShares: f.includePreference,
		SkipUnmapped:            f.skipUnmapped,
	}, nil
}

type exchangesCmd struct{ app *app }

func (*exchangesCmd) Name() string             { return "exchanges" }
func (*exchangesCmd) Synopsis() string         { return "print the exchanges table" }
func (*exchangesCmd) Usage() string            { return "tickers exchanges\n" }
func (*exchangesCmd) SetFlags(_ *flag.FlagSet) {}

func (c *exchangesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := c.app.client(ctx)
	if err != nil {
		return fail(err)
	}
	if err := c.app.writeJSON(client.Exchanges()); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type codesCmd struct{ app *app }

func (*codesCmd) Name() string             { return "codes" }
func (*codesCmd) Synopsis() string         { return "list the known exchange codes and their exchange names" }
func (*codesCmd) Usage() string            { return "tickers codes\n" }
func (*codesCmd) SetFlags(_ *flag.FlagSet) {}

func (c *codesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	for _, code := range domain.ExchangeCodes() {
		name, _ := code.ExchangeName()
		_, _ = fmt.Fprintf(c.app.out, "%-12s %s\n", code, name)
	}
	return subcommands.ExitSuccess
}

// exchangeInfo is what the exchange command prints for one code.
type exchangeInfo struct {
	Code        domain.ExchangeCode `json:"code"`
	Name        string              `json:"name"`
	ExchangeID  int64               `json:"exchange_id"`
	ScheduleIDs []int64             `json:"schedule_ids"`
}

type exchangeCmd struct{ app *app }

func (*exchangeCmd) Name() string             { return "exchange" }
func (*exchangeCmd) Synopsis() string         { return "resolve an exchange code to its exchange id and working schedules" }
func (*exchangeCmd) Usage() string            { return "tickers exchange <code>\n" }
func (*exchangeCmd) SetFlags(_ *flag.FlagSet) {}

func (c *exchangeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "exchange takes exactly one code")
		return subcommands.ExitUsageError
	}
	code := domain.ExchangeCode(strings.ToUpper(f.Arg(0)))

	client, err := c.app.client(ctx)
	if err != nil {
		return fail(err)
	}
	id, err := client.ExchangeIDForCode(code)
	if err != nil {
		return fail(err)
	}
	schedules, err := client.ScheduleIDsForExchange(id)
	if err != nil {
		return fail(err)
	}

	name, _ := code.ExchangeName()
	if err := c.app.writeJSON(exchangeInfo{Code: code, Name: name, ExchangeID: id, ScheduleIDs: schedules}); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type instrumentsCmd struct {
	app *app
	filterFlags
}

func (*instrumentsCmd) Name() string     { return "instruments" }
func (*instrumentsCmd) Synopsis() string { return "print the instruments table, optionally filtered" }
func (*instrumentsCmd) Usage() string {
	return `tickers instruments [-type <type>] [-exchange <codes>]

  Prints tradable instruments. -exchange keeps instruments whose working
  schedule belongs to one of the given exchanges.
`
}

func (c *instrumentsCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *instrumentsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := c.filter()
	if err != nil {
		return fail(err)
	}
	client, err := c.app.client(ctx)
	if err != nil {
		return fail(err)
	}
	instruments, err := client.InstrumentsFiltered(filter)
	if err != nil {
		return fail(err)
	}
	if err := c.app.writeJSON(instruments); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type portfolioCmd struct{ app *app }

func (*portfolioCmd) Name() string             { return "portfolio" }
func (*portfolioCmd) Synopsis() string         { return "print the open positions" }
func (*portfolioCmd) Usage() string            { return "tickers portfolio\n" }
func (*portfolioCmd) SetFlags(_ *flag.FlagSet) {}

func (c *portfolioCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := c.app.client(ctx)
	if err != nil {
		return fail(err)
	}
	if err := c.app.writeJSON(client.Portfolio()); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type positionCmd struct{ app *app }

func (*positionCmd) Name() string             { return "position" }
func (*positionCmd) Synopsis() string         { return "print the position held under a broker ticker" }
func (*positionCmd) Usage() string            { return "tickers position <ticker>\n" }
func (*positionCmd) SetFlags(_ *flag.FlagSet) {}

func (c *positionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "position takes at most one ticker")
		return subcommands.ExitUsageError
	}
	client, err := c.app.client(ctx)
	if err != nil {
		return fail(err)
	}
	if err := c.app.writeJSON(client.Position(f.Arg(0))); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type tickersCmd struct {
	app *app
	filterFlags
	portfolio    bool
	withExchange bool
	alternates   bool
}

func (*tickersCmd) Name() string     { return "tickers" }
func (*tickersCmd) Synopsis() string { return "list generic tickers" }
func (*tickersCmd) Usage() string {
	return `tickers tickers [-portfolio] [-with-exchange] [-alternates] [-type <type>] [-exchange <codes>] [-include-preference] [-skip-unmapped]

  Prints one generic ticker per line. Without -portfolio every matching
  instrument is listed as EXCHANGE:TICKER. With -portfolio only held
  instruments are listed, prefixed by their exchange when -with-exchange
  is set.

  The live instrument table holds rows on venues without an exchange code,
  so listing every instrument without -exchange fails unless
  -skip-unmapped is given. -alternates appends the other spelling of a
  ticker (e.g. NMQ:GRVY for NSQ:GRVY) on the same line.
`
}

func (c *tickersCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.BoolVar(&c.portfolio, "portfolio", false, "Only list held instruments.")
	f.BoolVar(&c.withExchange, "with-exchange", false, "Prefix held tickers with their exchange code.")
	f.BoolVar(&c.alternates, "alternates", false, "Append the alternate spelling of each ticker, when there is one.")
}

func (c *tickersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := c.filter()
	if err != nil {
		return fail(err)
	}
	client, err := c.app.client(ctx)
	if err != nil {
		return fail(err)
	}

	var tickers []string
	switch {
	case !c.portfolio:
		tickers, err = client.AllGenericTickersWithExchange(filter)
	case c.withExchange:
		tickers, err = client.PortfolioGenericTickersWithExchange(filter)
	default:
		tickers, err = client.PortfolioGenericTickers(filter)
	}
	if err != nil {
		return fail(err)
	}

	if c.alternates {
		for i, ticker := range tickers {
			if alt, ok := domain.AlternateTicker(ticker); ok {
				tickers[i] = ticker + " " + alt
			}
		}
	}

	c.app.writeLines(tickers)
	return subcommands.ExitSuccess
}

type ordersCmd struct{ app *app }

func (*ordersCmd) Name() string             { return "orders" }
func (*ordersCmd) Synopsis() string         { return "print pending equity orders (always live)" }
func (*ordersCmd) Usage() string            { return "tickers orders\n" }
func (*ordersCmd) SetFlags(_ *flag.FlagSet) {}

func (c *ordersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := c.app.client(ctx)
	if err != nil {
		return fail(err)
	}
	orders, err := client.EquityOrders(ctx)
	if err != nil {
		return fail(err)
	}
	if err := c.app.writeJSON(orders); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
