package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	gconfig "github.com/goliatone/go-config/config"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	subscribers "github.com/goliatone/go-subscribers"
	"github.com/goliatone/go-subscribers/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/schema"
)

type App struct {
	config *gconfig.Container[*config.BaseConfig]
	bunDB  *bun.DB
	repo   subscribers.RepositoryManager
	srv    router.Server[*fiber.App]
	logger *glog.BaseLogger
}

func (a *App) Config() *config.BaseConfig {
	return a.config.Raw()
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("app"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg := gconfig.New(&config.BaseConfig{}).
		WithLogger(lgr.GetLogger("config"))

	ctx := context.Background()
	if err := cfg.Load(ctx); err != nil {
		panic(err)
	}

	app := &App{
		config: cfg,
		logger: lgr,
	}

	if app.Config().GetApp().GetDebug() {
		fmt.Println(print.MaybeHighlightJSON(cfg.Raw()))
	}

	if err := WithPersistence(ctx, app); err != nil {
		panic(err)
	}

	if err := WithSeedUser(ctx, app); err != nil {
		panic(err)
	}

	if err := WithHTTPServer(ctx, app); err != nil {
		panic(err)
	}

	app.srv.Serve(app.Config().GetServer().Address())

	WaitExitSignal()
}

func WithPersistence(ctx context.Context, app *App) error {
	pcfg := app.Config().GetPersistence()

	var dialect schema.Dialect
	var db *sql.DB
	var err error

	switch pcfg.GetDriver() {
	case "postgres":
		db = sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(pcfg.GetDSN())))
		dialect = pgdialect.New()
	default:
		db, err = sql.Open(sqliteshim.ShimName, pcfg.GetDSN())
		if err != nil {
			return err
		}
		dialect = sqlitedialect.New()
	}

	persistence.RegisterModel((*subscribers.Subscriber)(nil))
	persistence.RegisterModel((*subscribers.User)(nil))

	client, err := persistence.New(pcfg, db, dialect)
	if err != nil {
		return err
	}

	client.SetLogger(app.GetLogger("persistence"))

	migrationsFS, err := fs.Sub(subscribers.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}

	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)

	if err := client.ValidateDialects(ctx); err != nil {
		return err
	}

	if err := client.Migrate(ctx); err != nil {
		return err
	}

	app.bunDB = client.DB()
	app.repo = subscribers.NewRepositoryManager(client.DB())

	return nil
}

// WithSeedUser provisions the first operator account so the admin surface is
// reachable on a fresh database. It is a no-op when no seed password is set
// or the username already exists.
func WithSeedUser(ctx context.Context, app *App) error {
	acfg := app.Config().GetAuth()
	if acfg.GetSeedPassword() == "" {
		return nil
	}

	handler := subscribers.NewProvisionUserHandler(app.repo)

	return handler.Execute(ctx, subscribers.ProvisionUserMessage{
		Username:  acfg.GetSeedUsername(),
		Password:  acfg.GetSeedPassword(),
		Authority: acfg.GetSeedAuthority(),
	})
}

func WithHTTPServer(ctx context.Context, app *App) error {
	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		a = router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:      true,
			EnablePrintRoutes: app.Config().GetApp().GetDebug(),
			StrictRouting:     false,
		}))
		a.Use(cors.New(cors.Config{
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders: "Accept,Authorization,Content-Type,Origin",
		}))
		return a
	})

	srv.Router().WithLogger(app.GetLogger("router"))

	provider := subscribers.NewUserProvider(app.repo.Users()).
		WithLogger(app.GetLogger("auth"))

	authorizer := subscribers.NewRouteAuthorizer(provider, app.Config().GetAuth()).
		WithLogger(app.GetLogger("auth"))

	subService := subscribers.NewSubscriberService(app.repo).
		WithLogger(app.GetLogger("subscribers"))

	userService := subscribers.NewUserService(app.repo).
		WithLogger(app.GetLogger("users"))

	subscribers.RegisterSubscriberRoutes(
		srv.Router(),
		subscribers.WithSubscriberService(subService),
		subscribers.WithSubscriberAuthorizer(authorizer),
	)

	subscribers.RegisterUserRoutes(
		srv.Router(),
		subscribers.WithUserService(userService),
		subscribers.WithUserAuthorizer(authorizer),
	)

	app.srv = srv

	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
