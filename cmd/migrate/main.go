// Command migrate applies or rolls back the embedded schema migrations
// without starting the API.
//
//	DATABASE_URL=postgres://... migrate
//	DATABASE_URL=postgres://... migrate -down
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"eventhub/internal/database"
	"eventhub/internal/logging"

	"github.com/ilyakaznacheev/cleanenv"
)

type settings struct {
	Env         string `env:"ENV" env-default:"local"`
	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`
}

var (
	readEnv  = cleanenv.ReadEnv
	upFn     = database.RunMigrations
	downFn   = database.RollbackAll
	exitFunc = os.Exit
)

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(out)
	down := fs.Bool("down", false, "roll back every migration instead of applying them")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var cfg settings
	if err := readEnv(&cfg); err != nil {
		return fmt.Errorf("cannot read env: %w", err)
	}
	log := logging.New(cfg.Env)

	direction, apply := "up", upFn
	if *down {
		direction, apply = "down", downFn
	}
	if err := apply(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration %s 執行失敗: %w", direction, err)
	}
	log.Info("migrations applied", "direction", direction)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
	}
}
