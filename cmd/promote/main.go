// Command promote raises or clears a user's admin flag. Registration never
// grants admin, so this is the only way to get one.
//
//	DATABASE_URL=postgres://... promote -email ann@example.com
//	DATABASE_URL=postgres://... promote -email ann@example.com -revoke
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"eventhub/internal/database"
	"eventhub/internal/logging"
	"eventhub/internal/store"

	"github.com/ilyakaznacheev/cleanenv"
)

type settings struct {
	Env         string `env:"ENV" env-default:"local"`
	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`
}

type adminSetter interface {
	SetAdmin(ctx context.Context, email string, admin bool) error
}

var (
	readEnv    = cleanenv.ReadEnv
	newPgxPool = database.NewPgxPool
	newSetter  = func(db database.DB) adminSetter { return store.NewUserStore(db) }
	exitFunc   = os.Exit
)

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("promote", flag.ContinueOnError)
	fs.SetOutput(out)
	email := fs.String("email", "", "email of the user to change")
	revoke := fs.Bool("revoke", false, "clear the admin flag instead of setting it")
	if err := fs.Parse(args); err != nil {
		return err
	}
	addr := strings.ToLower(strings.TrimSpace(*email))
	if addr == "" {
		return errors.New("-email is required")
	}

	var cfg settings
	if err := readEnv(&cfg); err != nil {
		return fmt.Errorf("cannot read env: %w", err)
	}
	log := logging.New(cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	admin := !*revoke
	if err := newSetter(db).SetAdmin(ctx, addr, admin); err != nil {
		return err
	}
	log.Info("admin flag updated", "email", addr, "is_admin", admin)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
	}
}
