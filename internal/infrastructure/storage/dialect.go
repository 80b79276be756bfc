package storage

import (
	"fmt"
	"regexp"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

// Dialect captures the differences between the supported SQL engines.
type Dialect struct {
	Name        string
	DriverName  string
	Placeholder sq.PlaceholderFormat
	IDColumn    string
	FloatType   string
}

var (
	Postgres = Dialect{
		Name:        "postgres",
		DriverName:  "postgres",
		Placeholder: sq.Dollar,
		IDColumn:    "id BIGSERIAL PRIMARY KEY",
		FloatType:   "DOUBLE PRECISION",
	}
	SQLite = Dialect{
		Name:        "sqlite",
		DriverName:  "sqlite",
		Placeholder: sq.Question,
		IDColumn:    "id INTEGER PRIMARY KEY AUTOINCREMENT",
		FloatType:   "REAL",
	}
)

// DialectFor maps a configured driver name to its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "postgres", "postgresql", "pq":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

var sourceNameExpr = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ArticlesTable returns the raw table name holding a source's articles.
func ArticlesTable(source string) (string, error) {
	if !sourceNameExpr.MatchString(source) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSource, source)
	}
	return source + "_articles", nil
}

func quotedArticlesTable(source string) (string, error) {
	table, err := ArticlesTable(source)
	if err != nil {
		return "", err
	}
	return pq.QuoteIdentifier(table), nil
}
