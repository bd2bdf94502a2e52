package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/ezquant/autoplot/autoplot/exchange"
	"github.com/ezquant/autoplot/autoplot/model"
	"github.com/ezquant/autoplot/autoplot/plot"
	"github.com/ezquant/autoplot/autoplot/plus/localkv"
	"github.com/ezquant/autoplot/autoplot/plus/models"
	"github.com/ezquant/autoplot/autoplot/storage"
	"github.com/ezquant/autoplot/autoplot/tools"
	"github.com/ezquant/autoplot/autoplot/tools/log"
	"github.com/ezquant/autoplot/examples/backtesting"
)

var configFlag = &cli.StringFlag{
	Name:     "config",
	Aliases:  []string{"c"},
	Usage:    "eg. ./user_data/config_CrossEMA.yml",
	Required: true,
}

func main() {
	app := &cli.App{
		Name:     "autoplot",
		HelpName: "autoplot",
		Usage:    "Compose interactive candlestick charts from backtest results",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
				Value: "info",
			},
		},
		Before: func(c *cli.Context) error {
			level, err := log.ParseLevel(c.String("log-level"))
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:     "render",
				HelpName: "render",
				Usage:    "Render the backtest chart of one instrument",
				Flags:    []cli.Flag{configFlag},
				Action: func(c *cli.Context) error {
					config, err := models.ReadConfig(c.String("config"))
					if err != nil {
						return err
					}

					fig, err := backtesting.Compose(config)
					if err != nil {
						return err
					}
					return publish(config, fig)
				},
			},
			{
				Name:     "indiview",
				HelpName: "indiview",
				Usage:    "Chart candles with a default set of indicators",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "candles",
						Aliases:  []string{"f"},
						Usage:    "eg. ./btc-1h.csv",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "instrument",
						Aliases: []string{"p"},
						Usage:   "eg. BTCUSDT",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Value:   ".",
					},
				},
				Action: func(c *cli.Context) error {
					candles, err := exchange.LoadCandles(c.String("candles"))
					if err != nil {
						return err
					}

					fig, err := backtesting.Indiview(c.String("instrument"), candles)
					if err != nil {
						return err
					}
					return publish(&models.Config{Output: c.String("output")}, fig)
				},
			},
			{
				Name:     "dashboard",
				HelpName: "dashboard",
				Usage:    "Render the summary of a multi-instrument backtest",
				Flags:    []cli.Flag{configFlag},
				Action: func(c *cli.Context) error {
					config, err := models.ReadConfig(c.String("config"))
					if err != nil {
						return err
					}

					fig, err := dashboard(config)
					if err != nil {
						return err
					}
					return publish(config, fig)
				},
			},
			{
				Name:     "serve",
				HelpName: "serve",
				Usage:    "Display the backtest chart in the browser",
				Flags: []cli.Flag{
					configFlag,
					&cli.IntFlag{
						Name:  "port",
						Value: 8080,
					},
				},
				Action: func(c *cli.Context) error {
					config, err := models.ReadConfig(c.String("config"))
					if err != nil {
						return err
					}

					fig, err := backtesting.Compose(config)
					if err != nil {
						return err
					}
					return plot.NewChartServer(fig, plot.WithPort(c.Int("port"))).Start()
				},
			},
			{
				Name:     "watch",
				HelpName: "watch",
				Usage:    "Re-render the backtest chart on a schedule",
				Flags: []cli.Flag{
					configFlag,
					&cli.StringFlag{
						Name:    "schedule",
						Aliases: []string{"s"},
						Usage:   "cron spec, eg. @every 15m",
						Value:   "@hourly",
					},
				},
				Action: func(c *cli.Context) error {
					config, err := models.ReadConfig(c.String("config"))
					if err != nil {
						return err
					}

					ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
					defer stop()

					scheduler := tools.NewScheduler(ctx)
					err = scheduler.Every(c.String("schedule"), tools.Job{
						Name: config.Inputs.Instrument,
						Run: func(context.Context) error {
							fig, err := backtesting.Compose(config)
							if err != nil {
								return err
							}
							return publish(config, fig)
						},
					})
					if err != nil {
						return err
					}

					scheduler.RunNow()
					scheduler.Start()
					<-ctx.Done()
					scheduler.Stop()
					return nil
				},
			},
			{
				Name:     "archive",
				HelpName: "archive",
				Usage:    "Inspect previously rendered figures",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "List archived figures",
						Flags: []cli.Flag{archiveFlag()},
						Action: func(c *cli.Context) error {
							return withArchive(c.String("dir"), func(kv *localkv.LocalKV) error {
								keys, err := kv.Keys()
								if err != nil {
									return err
								}
								for _, key := range keys {
									fmt.Println(key)
								}
								return nil
							})
						},
					},
					{
						Name:      "show",
						Usage:     "Print the JSON of an archived figure",
						ArgsUsage: "<artifact>",
						Flags:     []cli.Flag{archiveFlag()},
						Action: func(c *cli.Context) error {
							if c.NArg() != 1 {
								return cli.Exit("artifact name required", 1)
							}
							return withArchive(c.String("dir"), func(kv *localkv.LocalKV) error {
								value, err := kv.Get(c.Args().First())
								if err != nil {
									return fmt.Errorf("figure %s: %w", c.Args().First(), err)
								}
								fmt.Println(value)
								return nil
							})
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func archiveFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "dir",
		Usage: "archive directory",
		Value: "./user_data/archive",
	}
}

func withArchive(dir string, fn func(kv *localkv.LocalKV) error) error {
	kv, err := localkv.NewLocalKV(&dir)
	if err != nil {
		return err
	}
	defer kv.Close()
	return fn(kv)
}

// publish saves the figure page, prints its summary and archives its JSON.
func publish(config *models.Config, fig *plot.Figure) error {
	output := config.Output
	if output == "" {
		output = "."
	}

	path, err := plot.Save(fig, output)
	if err != nil {
		return err
	}

	fig.Summary(os.Stdout)
	log.Infof("chart saved to %s", path)

	if config.Archive == "" {
		return nil
	}

	data, err := json.Marshal(fig)
	if err != nil {
		return err
	}
	return withArchive(config.Archive, func(kv *localkv.LocalKV) error {
		return kv.Set(fig.Artifact, string(data))
	})
}

func dashboard(config *models.Config) (*plot.Figure, error) {
	instruments := config.Inputs.Instruments
	if len(instruments) == 0 {
		return nil, fmt.Errorf("dashboard needs at least one instrument")
	}

	var db *storage.Storage
	if config.Inputs.Database != "" {
		var err error
		if db, err = storage.FromFile(config.Inputs.Database); err != nil {
			return nil, err
		}
		defer db.Close()
	}

	var (
		base       []model.Candle
		results    []plot.BotResult
		cumulative []plot.InstrumentPL
	)

	bar := progressbar.Default(int64(len(instruments)), "loading instruments")
	for _, instrument := range instruments {
		candles, err := exchange.LoadCandles(instrument.Candles)
		if err != nil {
			return nil, err
		}
		if len(candles) > len(base) {
			base = candles
		}

		var trades []model.TradeRecord
		switch {
		case instrument.Trades != "":
			trades, err = exchange.LoadTrades(instrument.Trades)
		case db != nil:
			trades, err = db.Trades(instrument.Name, model.TradeStatusClosed)
		}
		if err != nil && !errors.Is(err, storage.ErrNoTrades) {
			return nil, err
		}

		results = append(results, plot.NewBotResult(instrument.Name, trades))
		cumulative = append(cumulative, plot.CumulativeProfit(instrument.Name, trades))
		_ = bar.Add(1)
	}

	chart, err := plot.NewChart(config.ChartOptions()...)
	if err != nil {
		return nil, err
	}

	nav := plot.NetAssetValue(base, config.Inputs.Balance, cumulative)
	return chart.Dashboard(base, results, nav, cumulative), nil
}
