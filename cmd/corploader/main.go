package main

import (
	"context"
	"flag"
	"time"

	"github.com/Dan9191/corp-finance-service/internal/config"
	"github.com/Dan9191/corp-finance-service/internal/corpcode"
	"github.com/Dan9191/corp-finance-service/internal/integrations/dart"
	"github.com/Dan9191/corp-finance-service/internal/repository"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

func main() {
	file := flag.String("file", "", "path to CORPCODE.xml (defaults to CORPCODE_XML_PATH)")
	download := flag.Bool("download", false, "download the registry from the disclosure API")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	db, err := sqlx.Open(cfg.DBDriver, cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	repo := repository.NewRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Fatalf("Failed to prepare schema: %v", err)
	}

	path := *file
	if path == "" {
		path = cfg.CorpCodeXMLPath
	}

	var downloader corpcode.Downloader
	if *download {
		downloader = dart.NewClient(cfg, logger)
	}
	loader := corpcode.NewLoader(repo, downloader, path, logger)

	n, err := loader.Refresh(ctx)
	if err != nil {
		logger.Fatalf("Failed to load corp codes: %v", err)
	}
	logger.Infof("Corp code import finished: %d companies", n)
}
