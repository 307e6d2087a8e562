package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Storage engines. They match the config file's database.engine values.
const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
	EngineMySQL    = "mysql"
)

// Options selects and locates the database.
type Options struct {
	Engine string
	Path   string // sqlite file; empty means ~/.rollcall/rollcall.db
	DSN    string // postgres and mysql
}

var (
	db            *sql.DB
	dbInitialized bool
	options       = Options{Engine: EngineSQLite}
)

// Configure sets the connection options used by GetDB. It must be called
// before the first GetDB.
func Configure(opts Options) {
	if opts.Engine == "" {
		opts.Engine = EngineSQLite
	}
	options = opts
}

// Engine returns the configured storage engine.
func Engine() string {
	return options.Engine
}

// GetDB returns the database connection, initializing if needed
func GetDB() (*sql.DB, error) {
	if db != nil {
		return db, nil
	}

	conn, err := Open(options)
	if err != nil {
		return nil, err
	}
	db = conn

	// Run migrations on first connection (but avoid recursion)
	if !dbInitialized {
		dbInitialized = true
		if err := InitSchema(db, options.Engine); err != nil {
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return db, nil
}

// Open opens and pings a connection for opts without touching the schema.
func Open(opts Options) (*sql.DB, error) {
	var (
		conn *sql.DB
		err  error
	)

	switch opts.Engine {
	case EngineSQLite, "":
		path := opts.Path
		if path == "" {
			if path, err = GetDBPath(); err != nil {
				return nil, err
			}
		}
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		conn, err = sql.Open("sqlite3", path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		// Enable foreign keys
		if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	case EnginePostgres:
		conn, err = sql.Open("postgres", opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
	case EngineMySQL:
		cfg, err := mysql.ParseDSN(opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("invalid mysql dsn: %w", err)
		}
		// Dates are stored as text; keep them as strings on the way out.
		cfg.ParseTime = false
		conn, err = sql.Open("mysql", cfg.FormatDSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown database engine %q", opts.Engine)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", opts.Engine, err)
	}
	return conn, nil
}

// Close closes the database connection
func Close() error {
	if db != nil {
		err := db.Close()
		db = nil
		dbInitialized = false
		return err
	}
	return nil
}

// GetDBPath returns the path to the default sqlite database file
func GetDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".rollcall", "rollcall.db"), nil
}
