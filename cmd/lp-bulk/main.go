package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/iwvelando/lp-bulk/internal/config"
	"github.com/iwvelando/lp-bulk/internal/row"
	"github.com/iwvelando/lp-bulk/pkg/constants"
	"github.com/iwvelando/lp-bulk/pkg/output"
	"github.com/iwvelando/lp-bulk/pkg/validation"
	"go.uber.org/zap"
)

// printRenderer writes a row to stdout every time its multiplier input changes.
type printRenderer struct {
	raw row.Raw
	out io.Writer
}

func (p printRenderer) Collapse() {
	fmt.Fprintf(p.out, "%s: collapsed\n", p.raw.Item)
}

func (p printRenderer) Render(view row.View) {
	fmt.Fprint(p.out, output.PrettyString([]row.Outcome{{Raw: p.raw, State: row.Expanded, View: view}}))
}

// interactive treats every stdin line as a new value of the multiplier input.
func interactive(logger *zap.Logger, raws []row.Raw, in io.Reader, out io.Writer) error {
	table, err := row.Setup(context.Background(), logger, raws, func(_ int, raw row.Raw) row.Renderer {
		return printRenderer{raw: raw, out: out}
	})
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		failed := table.Broadcast(scanner.Text())
		for _, index := range slices.Sorted(maps.Keys(failed)) {
			fmt.Fprintf(out, "offer %d: %v\n", index, failed[index])
		}
	}
	return scanner.Err()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to offer table file")
	multiplierFlag := flag.String("multiplier", "", "multiplier override, as typed into the calculator input")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	interactiveFlag := flag.Bool("interactive", false, "read multipliers from stdin and re-render on every line")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if *interactiveFlag {
		if err := interactive(logger, conf.RawOffers(), os.Stdin, os.Stdout); err != nil {
			logger.Fatal("interactive session failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	input := *multiplierFlag
	if input == "" {
		multiplier := conf.Multiplier
		if multiplier == 0 {
			multiplier = constants.DefaultMultiplier
		}
		input = strconv.Itoa(multiplier)
	}

	ctx := context.Background()
	table, err := row.Setup(ctx, logger, conf.RawOffers(), nil)
	if err != nil {
		logger.Fatal("failed to capture offers",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	results, err := table.EvaluateAll(ctx, input)
	if err != nil {
		logger.Fatal("failed to scale offers",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(results)
	case constants.OutputFormatJSON:
		err = output.JSONFormat(results)
	}
	if err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
