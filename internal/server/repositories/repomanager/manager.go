// Package repomanager wires repository implementations to a database handle
// so services can request repositories bound to either the pool or an open
// transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/bridgehq/bridge/internal/dbx"
	"github.com/bridgehq/bridge/internal/server/repositories/groups"
	"github.com/bridgehq/bridge/internal/server/repositories/matches"
	"github.com/bridgehq/bridge/internal/server/repositories/messages"
	"github.com/bridgehq/bridge/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Matches(db dbx.DBTX) matches.Repository
	Groups(db dbx.DBTX) groups.Repository
	Messages(db dbx.DBTX) messages.Repository
}
