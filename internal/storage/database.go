package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite" // sqlite driver

	"gitlab.com/dirk.krummacker/contact-book/internal/config"
)

// OpenDatabase opens a handle to the native database named [DatabaseName]. For sqlite the file lives
// in cfg.Dir, which is created if absent; for mysql the schema of that name on cfg.Host is used. No
// connection is made until the handle is first used.
func OpenDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
			return nil, fmt.Errorf("could not create database directory: %w", err)
		}
		sqlDB, err := sql.Open("sqlite", filepath.Join(cfg.Dir, DatabaseName+".db"))
		if err != nil {
			return nil, fmt.Errorf("could not open database: %w", err)
		}
		// A single connection keeps writers serialized on the database file.
		sqlDB.SetMaxOpenConns(1)
		return sqlDB, nil
	case config.DriverMySQL:
		dsn := mysql.NewConfig()
		dsn.User = cfg.User
		dsn.Passwd = cfg.Password
		dsn.Net = "tcp"
		dsn.Addr = cfg.Host
		dsn.DBName = DatabaseName
		dsn.ParseTime = true
		sqlDB, err := sql.Open("mysql", dsn.FormatDSN())
		if err != nil {
			return nil, fmt.Errorf("could not open database: %w", err)
		}
		return sqlDB, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
