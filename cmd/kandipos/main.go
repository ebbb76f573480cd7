package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kanditextile/kandipos/config"
	"github.com/kanditextile/kandipos/internal/adminapi"
	"github.com/kanditextile/kandipos/internal/app"
	"github.com/kanditextile/kandipos/internal/ledger"
	"github.com/kanditextile/kandipos/internal/receipt"
	"github.com/kanditextile/kandipos/internal/webserver"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	confFile = flag.String("c", "kandipos.yml", "config file")
	initDb   = flag.Bool("x", false, "drop and re-create the database schema, then exit")
	showVer  = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("kandipos", version)
		return
	}

	cfg := config.LoadConfig(*confFile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	var sink receipt.Sink = receipt.NoopSink{}
	if cfg.Receipt.Enabled {
		sink = receipt.NewFileSink(cfg.ReceiptDir())
	}

	ledgerSvc := ledger.NewService(
		ledger.NewGormSaleRepository(application.DB()),
		application.Bus(),
		sink,
		application,
	)

	ws := webserver.Init(application)
	adminapi.Register(ledgerSvc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return webserver.Listen()
	})
	g.Go(func() error {
		application.StartBackgroundJobs(ctx)
		<-ctx.Done()
		return ws.Shutdown()
	})

	if err := g.Wait(); err != nil {
		zap.S().Errorf("server exited: %v", err)
	}
}
