package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"tienda/internal/bootstrap"
	"tienda/internal/importer"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a catalog text file (id,name,price,stock[,description])")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.App.LogFile = ""
	log, _, _ := bootstrap.NewLogger("importer", cfg.App)

	ctx := context.Background()
	res, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open stores")
	}
	defer res.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatal().Err(err).Msg("open file")
	}
	defer f.Close()

	start := time.Now()
	count, err := importer.NewTextImporter(f, res.Products).WithLogger(log).Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	fmt.Printf("Imported %d products into the %s store in %s\n", count, cfg.Store.Driver, time.Since(start).Truncate(time.Millisecond))
}
