package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"tradebot/config"
	"tradebot/core"
	"tradebot/pkg/exchange/bnf"
	"tradebot/pkg/order"

	log "github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	in, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		printError(stderr, err.Error())
		return 1
	}

	// Load config & logger
	env := config.LoadEnvironment()
	cfg, err := config.LoadConfig(env)
	if err != nil {
		printError(stderr, fmt.Sprintf("fail to load config: %v", err))
		return 1
	}
	app, err := core.Bootstrap(env, cfg)
	if err != nil {
		printError(stderr, fmt.Sprintf("fail to bootstrap app: %v", err))
		return 1
	}
	defer app.Close()

	return guard(app.Logger, app.LogPath(), stderr, func() int {
		out := app.Run(context.Background(), in, func(intent order.Intent) {
			printOrderSummary(stdout, intent)
		})
		report(stdout, stderr, app, out)
		return out.ExitCode()
	})
}

// guard runs fn and turns a panic into exit code 1, with the stack in the log
// and only a pointer to the log on the console.
func guard(logger log.FieldLogger, logPath string, stderr io.Writer, fn func() int) (code int) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("stack", string(debug.Stack())).Errorf("unexpected error: %v", r)
			printError(stderr, unexpectedMessage(logPath))
			code = 1
		}
	}()
	return fn()
}

// ╔═════════════╗
//      Flags
// ╚═════════════╝

// optionalString tells "--price ''" apart from no --price at all.
type optionalString struct {
	value *string
}

func (o *optionalString) String() string {
	if o.value == nil {
		return ""
	}
	return *o.value
}

func (o *optionalString) Set(s string) error {
	o.value = &s
	return nil
}

func parseFlags(args []string, stderr io.Writer) (core.Input, error) {
	fs := flag.NewFlagSet("tradebot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Binance Futures Testnet (USDT-M) - Market & Limit order bot")
		fmt.Fprintln(stderr, "\nUsage: tradebot --symbol BTCUSDT --side BUY --order-type LIMIT --quantity 0.01 --price 30000")
		fs.PrintDefaults()
	}

	var in core.Input
	var price optionalString
	fs.StringVar(&in.Symbol, "symbol", "", "Trading pair (e.g. BTCUSDT)")
	fs.StringVar(&in.Side, "side", "", "Order side: BUY or SELL")
	fs.StringVar(&in.OrderType, "order-type", "", "Order type: MARKET or LIMIT")
	fs.StringVar(&in.Quantity, "quantity", "", "Order quantity (e.g. 0.01)")
	fs.Var(&price, "price", "Limit price (required for LIMIT orders)")

	if err := fs.Parse(args); err != nil {
		return core.Input{}, err
	}
	if fs.NArg() > 0 {
		return core.Input{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	seen := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	var missing []string
	for _, name := range []string{"symbol", "side", "order-type", "quantity"} {
		if !seen[name] {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return core.Input{}, fmt.Errorf("the following arguments are required: %s", strings.Join(missing, ", "))
	}

	in.Price = price.value
	return in, nil
}

// ╔═════════════╗
//     Console
// ╚═════════════╝

const lineWidth = 50

func printHeader(w io.Writer, text string) {
	width := len(text) + 4
	if width < lineWidth {
		width = lineWidth
	}
	fmt.Fprintln(w, "\n"+strings.Repeat("=", width))
	fmt.Fprintf(w, "  %s\n", text)
	fmt.Fprintln(w, strings.Repeat("=", width))
}

func printOrderSummary(w io.Writer, intent order.Intent) {
	printHeader(w, "ORDER REQUEST SUMMARY")
	fmt.Fprintf(w, "  Symbol     : %s\n", intent.Symbol())
	fmt.Fprintf(w, "  Side       : %s\n", intent.Side())
	fmt.Fprintf(w, "  Type       : %s\n", intent.Type())
	fmt.Fprintf(w, "  Quantity   : %s\n", intent.Quantity())
	if intent.HasPrice() {
		fmt.Fprintf(w, "  Price      : %s\n", intent.Price())
	}
	fmt.Fprintln(w, strings.Repeat("-", lineWidth))
}

func printResult(w io.Writer, result order.Result) {
	printHeader(w, "ORDER CONFIRMATION")
	fmt.Fprintf(w, "  Order ID   : %d\n", result.OrderID)
	fmt.Fprintf(w, "  Status     : %s\n", result.Status)
	fmt.Fprintf(w, "  Symbol     : %s\n", result.Symbol)
	fmt.Fprintf(w, "  Side       : %s\n", result.Side)
	fmt.Fprintf(w, "  Type       : %s\n", result.Type)
	fmt.Fprintf(w, "  Filled Qty : %s\n", result.ExecutedQty)
	fmt.Fprintf(w, "  Avg Price  : %s\n", result.AvgPrice)
	fmt.Fprintln(w, strings.Repeat("=", lineWidth)+"\n")
}

func printError(w io.Writer, message string) {
	fmt.Fprintf(w, "\n  ✖  ERROR: %s\n\n", message)
}

func unexpectedMessage(logPath string) string {
	return fmt.Sprintf("An unexpected error occurred. Check %s for details.", logPath)
}

// report turns the outcome into console output. Only this boundary decides
// what the operator sees.
func report(stdout, stderr io.Writer, app *core.App, out core.Outcome) {
	var (
		vErr  *order.ValidationError
		tErr  *bnf.TransportError
		exErr *bnf.ExchangeError
	)
	switch {
	case out.State == core.StateSent:
		printResult(stdout, out.Result)
		app.Logger.Info("application finished successfully")
	case errors.As(out.Err, &vErr):
		printError(stderr, vErr.Error())
	case errors.Is(out.Err, config.ErrMissingCredentials):
		printError(stderr, out.Err.Error())
	case errors.As(out.Err, &exErr):
		printError(stderr, fmt.Sprintf("Binance rejected the order (code %d): %s", exErr.Code, exErr.Message))
	case errors.As(out.Err, &tErr):
		printError(stderr, fmt.Sprintf("Network failure: %v", tErr))
	default:
		app.Logger.WithFields(log.Fields{
			"state": out.State,
			"error": fmt.Sprintf("%+v", out.Err),
		}).Error("unexpected error")
		printError(stderr, unexpectedMessage(app.LogPath()))
	}
}
