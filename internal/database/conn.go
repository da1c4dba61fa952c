package database

import (
	"database/sql"
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoRows is returned by Conn.Get when the statement matched nothing.
var ErrNoRows = errors.New("no rows in result set")

// Conn is a borrowed connection. It only runs statements; pooling and
// schema concerns stay with Pool.
type Conn struct {
	conn    *sql.Conn
	db      *gorm.DB
	dialect Dialect
	once    sync.Once
}

// Exec runs a statement that returns no rows.
func (c *Conn) Exec(query string, args ...any) (int64, error) {
	res := c.db.Exec(query, args...)
	return res.RowsAffected, res.Error
}

// Select scans every row of the query into dest, a pointer to a slice.
func (c *Conn) Select(dest any, query string, args ...any) error {
	return c.db.Raw(query, args...).Scan(dest).Error
}

// Get scans the first row into dest. It returns ErrNoRows if there is none.
func (c *Conn) Get(dest any, query string, args ...any) error {
	res := c.db.Raw(query, args...).Scan(dest)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoRows
	}
	return nil
}

// InsertIgnore inserts row unless a row with the same primary or unique
// key exists. It reports 1 when inserted and 0 when skipped.
func (c *Conn) InsertIgnore(row any) (int64, error) {
	res := c.db.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	return res.RowsAffected, res.Error
}

func (c *Conn) Dialect() Dialect {
	return c.dialect
}

// Release returns the connection to the pool. Calls after the first are
// no-ops.
func (c *Conn) Release() {
	c.once.Do(func() {
		_ = c.conn.Close()
	})
}
