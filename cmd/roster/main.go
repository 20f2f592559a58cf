// Command roster loads a student roster CSV into the attendance database.
//
//	roster --file students.csv [--config-path config.yaml]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Temutjin2k/geo-attendance/config"
	repo "github.com/Temutjin2k/geo-attendance/internal/adapter/postgres"
	"github.com/Temutjin2k/geo-attendance/internal/adapter/roster"
	"github.com/Temutjin2k/geo-attendance/pkg/configparser"
	"github.com/Temutjin2k/geo-attendance/pkg/logger"
	wrap "github.com/Temutjin2k/geo-attendance/pkg/logger/wrapper"
	"github.com/Temutjin2k/geo-attendance/pkg/postgres"
)

var (
	configPath = flag.String("config-path", "config.yaml", "Path to the config yaml file")
	filePath   = flag.String("file", "", "Path to the roster CSV")
)

func main() {
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := wrap.WithAction(context.Background(), "roster_import")
	log := logger.InitLogger("roster", logger.LevelInfo)

	written, err := run(ctx, *configPath, *filePath)
	if err != nil {
		log.Error(wrap.ErrorCtx(ctx, err), "failed to import roster", err, "file", *filePath, "written", written)
		os.Exit(1)
	}

	log.Info(ctx, "roster imported", "students", written, "file", *filePath)
}

func run(ctx context.Context, configPath, filePath string) (int, error) {
	var cfg config.Config
	if err := configparser.LoadAndParseYaml(configPath, &cfg); err != nil {
		return 0, fmt.Errorf("load config: %w", err)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	students, err := roster.Read(f)
	if err != nil {
		return 0, fmt.Errorf("parse roster: %w", err)
	}

	// short timeout for the import
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		return 0, fmt.Errorf("connect to database: %w", err)
	}
	defer db.Pool.Close()

	if err := repo.Migrate(ctx, db.Pool); err != nil {
		return 0, err
	}

	return repo.NewStudentRepo(db.Pool).Upsert(ctx, students)
}
