package sqldataset

import (
	"database/sql"
)

/*
Adapter is an interface providing the methods
needed to read and write sets on a database.
*/
type Adapter interface {
	// DB returns the database handle to run statements on
	DB() *sql.DB
	// QuoteIdentifier returns the given table or column name quoted for
	// use in statements, or an error if it is not a valid name
	QuoteIdentifier(string) (string, error)
	// Placeholder returns the placeholder for the i-th (1-based) statement argument
	Placeholder(int) string
	Close() error
}
