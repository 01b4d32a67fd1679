package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/xbooth/internal/config"
	"github.com/tdex-network/xbooth/internal/core/application"
	"github.com/tdex-network/xbooth/internal/core/ports"
	"github.com/tdex-network/xbooth/internal/infrastructure/ledger"
	dbbadger "github.com/tdex-network/xbooth/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/xbooth/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/xbooth/pkg/stats"
	"github.com/urfave/cli/v2"
)

const metricsFilename = "metrics"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "xbooth"
	app.Usage = "Command line interface for exchange booth operators"
	app.Commands = append(
		app.Commands,
		&configCmd,
		&keygenCmd,
		&airdropCmd,
		&mintCmd,
		&accountCmd,
		&balanceCmd,
		&boothCmd,
		&historyCmd,
	)
	app.Before = func(*cli.Context) error {
		if err := config.InitConfig(); err != nil {
			return err
		}
		log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
		return nil
	}

	return app
}

// service groups the ledger opened by a command with what is needed to
// release it.
type service struct {
	ledger    *ledger.Ledger
	repos     ports.RepoManager
	registry  *prometheus.Registry
	programID string
}

func openLedger() (*service, error) {
	programID := config.GetProgramID()
	program, err := application.NewBoothProgram(programID, application.Params{
		ExchangeRate: config.GetExchangeRate(),
	})
	if err != nil {
		return nil, err
	}

	var repos ports.RepoManager
	switch config.GetString(config.DBTypeKey) {
	case config.DBInMemory:
		repos = inmemory.NewRepoManager()
	default:
		repos, err = dbbadger.NewRepoManager(
			filepath.Join(config.GetDatadir(), config.DbLocation), nil,
		)
		if err != nil {
			return nil, err
		}
	}

	registry := prometheus.NewRegistry()
	l, err := ledger.NewLedger(ledger.Config{
		Repositories: repos,
		Programs:     []ports.Program{program},
		Rent: ledger.Rent{
			LamportsPerByteYear: config.GetUint64(config.LamportsPerByteYearKey),
			ExemptionThreshold:  config.GetUint64(config.ExemptionThresholdKey),
		},
		Registerer: registry,
	})
	if err != nil {
		repos.Close()
		return nil, err
	}

	return &service{l, repos, registry, programID.String()}, nil
}

// close dumps the metrics collected during the command and closes the
// ledger db.
func (s *service) close() {
	path := filepath.Join(
		config.GetDatadir(), config.StatsLocation, metricsFilename,
	)
	if err := stats.DumpMetrics(s.registry, path); err != nil {
		log.WithError(err).Warn("failed to dump metrics")
	}
	stats.LogMemoryStatistics()
	s.repos.Close()
}

func printJSON(ctx *cli.Context, resp interface{}) error {
	buf, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		return fmt.Errorf("unable to encode response: %w", err)
	}
	fmt.Fprintln(ctx.App.Writer, string(buf))
	return nil
}

func fatal(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "[xbooth] %v\n", err)
	os.Exit(1)
}
