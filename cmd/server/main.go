package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	fakeanonworkstore "github.com/jrsteele09/uigen-server/anonwork/repofake"
	"github.com/jrsteele09/uigen-server/internal/config"
	fakeprojectrepo "github.com/jrsteele09/uigen-server/projects/repofake"
	"github.com/jrsteele09/uigen-server/server"
	"github.com/jrsteele09/uigen-server/store/postgres"
	fakeuserrepo "github.com/jrsteele09/uigen-server/users/repofake"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Error().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogger(c)
	displayAppname(c.GetAppName())

	repos, closeRepos, err := openRepos(context.Background(), c)
	if err != nil {
		return err
	}
	defer closeRepos()

	handler, err := server.New(c, repos)
	if err != nil {
		return errors.Wrap(err, "server.New")
	}

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- listenAndServe(httpServer)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

// openRepos connects to Postgres when DATABASE_URL is set and falls back to
// in-memory stores otherwise. Anonymous drafts are always kept in memory.
func openRepos(ctx context.Context, c config.Config) (server.Repos, func(), error) {
	anonWork := fakeanonworkstore.NewInMemoryStore()

	if c.UseInMemoryStore() {
		log.Warn().Msg("DATABASE_URL not set, using in-memory stores")
		return server.Repos{
			Users:    fakeuserrepo.NewFakeUserRepo(),
			Projects: fakeprojectrepo.NewFakeProjectRepo(),
			AnonWork: anonWork,
		}, func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	store, err := postgres.Open(connectCtx, c.GetDatabaseURL())
	if err != nil {
		return server.Repos{}, nil, errors.Wrap(err, "postgres.Open")
	}
	return server.Repos{
		Users:    store.Users(),
		Projects: store.Projects(),
		AnonWork: anonWork,
	}, store.Close, nil
}

func setupLogger(c config.Config) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if !c.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
