package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/sales-pipeline/internal/config"
	_ "modernc.org/sqlite"
)

type Conn interface {
	Queryer
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(*sql.Tx) error) error
	Driver() string
	Placeholder() squirrel.PlaceholderFormat
}

// Opener opens a new connection for each logical operation.
type Opener interface {
	Open(ctx context.Context) (Conn, error)
}

type Connection struct {
	*sql.DB
	driver string
}

// NewConnection opens and pings the configured store. sqlite treats the DSN
// as a file path; postgres expects a URL.
func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	switch cfg.Driver {
	case config.DriverSQLite, config.DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Connection{DB: db, driver: cfg.Driver}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *Connection) Driver() string {
	return c.driver
}

// Placeholder returns the bind variable format of the driver.
func (c *Connection) Placeholder() squirrel.PlaceholderFormat {
	if c.driver == config.DriverPostgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}

// RunInTransaction run a query in the transaction
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// ConnectionOpener opens connections from a fixed configuration.
type ConnectionOpener struct {
	cfg config.Database
}

func NewOpener(cfg config.Database) *ConnectionOpener {
	return &ConnectionOpener{cfg: cfg}
}

func (o *ConnectionOpener) Open(ctx context.Context) (Conn, error) {
	return NewConnection(ctx, o.cfg)
}
