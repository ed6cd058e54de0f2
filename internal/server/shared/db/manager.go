// Package db wires the PostgreSQL connection pool, the repositories, and the
// schema migrations together.
package db

import (
	"context"
	"database/sql"

	"github.com/medassist/symptomchecker/internal/server/symptomchecks"
	"github.com/medassist/symptomchecker/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	SymptomChecks() symptomchecks.Repository
	Close() error
}
