// Package wire provides dependency injection for the deckforge application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"io"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/example/deckforge/internal/adapters/cli"
	"github.com/example/deckforge/internal/adapters/httpapi"
	"github.com/example/deckforge/internal/adapters/identity"
	"github.com/example/deckforge/internal/adapters/sqlite"
	"github.com/example/deckforge/internal/app"
	"github.com/example/deckforge/internal/config"
	"github.com/example/deckforge/internal/db"
	"github.com/example/deckforge/internal/ports/primary"
)

var (
	logger         = zap.NewNop()
	cfg            *config.Config
	configDir      string
	database       *sql.DB
	deckService    primary.DeckService
	cardService    primary.CardService
	historyService primary.HistoryService
	cfgOnce        sync.Once
	once           sync.Once
)

// SetLogger installs the process logger. Call it before any service is used.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// Logger returns the process logger.
func Logger() *zap.Logger {
	return logger
}

// Config returns the loaded configuration from ~/.deckforge/config.yaml.
func Config() *config.Config {
	cfgOnce.Do(loadConfig)
	return cfg
}

// ConfigDir returns the directory holding the config file and database.
func ConfigDir() string {
	cfgOnce.Do(loadConfig)
	return configDir
}

func loadConfig() {
	dir, err := config.DefaultDir()
	if err != nil {
		log.Fatalf("failed to resolve config dir: %v", err)
	}
	c, err := config.LoadConfig(dir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	configDir, cfg = dir, c
}

// Database returns the shared database connection.
func Database() *sql.DB {
	once.Do(initServices)
	return database
}

// DeckService returns the singleton DeckService instance.
func DeckService() primary.DeckService {
	once.Do(initServices)
	return deckService
}

// CardService returns the singleton CardService instance.
func CardService() primary.CardService {
	once.Do(initServices)
	return cardService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	c := Config()

	conn, err := db.GetDB(c.ResolveDatabasePath(ConfigDir()), logger)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	database = conn

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	deckRepo := sqlite.NewDeckRepository(conn)
	cardRepo := sqlite.NewCardRepository(conn)
	logRepo := sqlite.NewDeckLogRepository(conn)
	logWriter := sqlite.NewLogWriterAdapter(logRepo)
	playerProvider := identity.NewPlayerProvider(c.Player)

	// Create services (primary ports implementation)
	deckService = app.NewDeckService(deckRepo, cardRepo, playerProvider, logWriter, logger.Named("deck"))
	cardService = app.NewCardService(cardRepo, logger.Named("card"))
	historyService = app.NewHistoryService(logRepo, deckService)
}

// DeckAdapter returns a new DeckAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func DeckAdapter() *cliadapter.DeckAdapter {
	return DeckAdapterWithOutput(os.Stdout)
}

// DeckAdapterWithOutput returns a new DeckAdapter writing to the given output.
func DeckAdapterWithOutput(out io.Writer) *cliadapter.DeckAdapter {
	once.Do(initServices)
	return cliadapter.NewDeckAdapter(deckService, out)
}

// CardAdapter returns a new CardAdapter writing to stdout.
func CardAdapter() *cliadapter.CardAdapter {
	return CardAdapterWithOutput(os.Stdout)
}

// CardAdapterWithOutput returns a new CardAdapter writing to the given output.
func CardAdapterWithOutput(out io.Writer) *cliadapter.CardAdapter {
	once.Do(initServices)
	return cliadapter.NewCardAdapter(cardService, out)
}

// HistoryAdapter returns a new HistoryAdapter writing to stdout.
func HistoryAdapter() *cliadapter.HistoryAdapter {
	once.Do(initServices)
	return cliadapter.NewHistoryAdapter(historyService, os.Stdout)
}

// HTTPServer returns a new HTTP API server over the singleton services.
// Requests without a player header act as the configured player.
func HTTPServer() *httpapi.Server {
	once.Do(initServices)
	return httpapi.NewServer(deckService, cardService, historyService, Config().Player, logger.Named("http"))
}
