package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/greenbean/storefront/config"
	"github.com/greenbean/storefront/internal/app"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var (
	version   = "develop"
	h         = flag.Bool("h", false, "help usage")
	showVer   = flag.Bool("v", false, "show version")
	conffile  = flag.String("c", "", "config yaml file")
	printConf = flag.Bool("printcfg", false, "print the effective config and exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println(version)
		os.Exit(0)
	}

	if *h {
		flag.Usage()
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(*conffile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *printConf {
		out, _ := yaml.Marshal(cfg)
		fmt.Println(string(out))
		os.Exit(0)
	}

	if err := cfg.InitDirs(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		zap.S().Errorf("startup failed: %v", err)
		application.Release()
		os.Exit(1)
	}
	defer application.Release()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	web := application.Web()
	g.Go(func() error {
		zap.S().Infof("Green Bean storefront %s listening on %s:%d", version, cfg.Web.Host, cfg.Web.Port)
		return web.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return web.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zap.S().Error(err)
	}
	zap.S().Info("storefront stopped")
}
