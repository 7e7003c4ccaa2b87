// Copyright (c) 2026 BookWorm Labs. All rights reserved.

/*
Package account (Postgres) implements the storage layer for reader meta-data.

# Schema Table Mapping
  - users.account: Master identity and profile data.
  - users.session: Active device sessions and security metadata.
*/
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookwormhq/bookworm-api/internal/platform/apperr"
	"github.com/bookwormhq/bookworm-api/internal/platform/database/schema"
	"github.com/bookwormhq/bookworm-api/internal/platform/dberr"
	"github.com/bookwormhq/bookworm-api/internal/users/auth"
)

// # Repository Implementations

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres implementation for profile management.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// PostgresSessionRepository implements [SessionRepository] using pgx.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new Postgres implementation for session auditing.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

// # AccountRepository Methods

/*
FindByID retrieves a reader record from the users.account table.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *auth.User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL`,
		schema.UsersAccount.ID, schema.UsersAccount.Username, schema.UsersAccount.Email,
		schema.UsersAccount.PasswordHash, schema.UsersAccount.DisplayName, schema.UsersAccount.AvatarURL,
		schema.UsersAccount.Bio, schema.UsersAccount.Role, schema.UsersAccount.IsVerified,
		schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.Table, schema.UsersAccount.ID, schema.UsersAccount.DeletedAt,
	)

	user := &auth.User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.AvatarURL,
		&user.Bio,
		&user.Role,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, dberr.Wrap(err, "account_find_by_id")
	}

	return user, nil
}

/*
Update modifies the mutable profile metadata of a reader.

Description: Syncs the DisplayName, AvatarURL, and Bio fields while refreshing
the updatedat timestamp.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: Update failures
*/
func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1 AND %s IS NULL`,
		schema.UsersAccount.Table,
		schema.UsersAccount.DisplayName, schema.UsersAccount.AvatarURL, schema.UsersAccount.Bio,
		schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.ID, schema.UsersAccount.DeletedAt,
	)

	_, err := repository.pool.Exec(context, query, user.ID, user.DisplayName, user.AvatarURL, user.Bio)
	if err != nil {
		return dberr.Wrap(err, "account_update")
	}

	return nil
}

/*
SoftDelete flags an account as logically deleted by stamping deletedat.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution failures
*/
func (repository *PostgresAccountRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL",
		schema.UsersAccount.Table, schema.UsersAccount.DeletedAt,
		schema.UsersAccount.ID, schema.UsersAccount.DeletedAt,
	)

	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "account_soft_delete")
	}

	return nil
}

// # SessionRepository Methods

/*
FindActiveByUserID lists all valid sessions for a reader, newest first.

Description: Maps raw session rows to transport-safe [SessionInfo] values and
marks the session whose token hash matches the current request.

Parameters:
  - context: context.Context
  - userID: string
  - currentTokenHash: string

Returns:
  - []SessionInfo: List of active devices
  - error: Retrieval errors
*/
func (repository *PostgresSessionRepository) FindActiveByUserID(context context.Context, userID, currentTokenHash string) ([]SessionInfo, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = FALSE AND %s > NOW()
		ORDER BY %s DESC`,
		schema.UsersSession.ID, schema.UsersSession.UserAgent, schema.UsersSession.IPAddress,
		schema.UsersSession.CreatedAt, schema.UsersSession.ExpiresAt, schema.UsersSession.TokenHash,
		schema.UsersSession.Table,
		schema.UsersSession.UserID, schema.UsersSession.IsRevoked, schema.UsersSession.ExpiresAt,
		schema.UsersSession.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "session_find_active")
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		var info SessionInfo
		var tokenHash string
		if err := rows.Scan(&info.ID, &info.DeviceName, &info.IPAddress, &info.CreatedAt, &info.ExpiresAt, &tokenHash); err != nil {
			return nil, dberr.Wrap(err, "session_scan")
		}
		info.IsCurrent = currentTokenHash != "" && tokenHash == currentTokenHash
		sessions = append(sessions, info)
	}

	return sessions, rows.Err()
}

/*
Revoke marks a session as revoked, constrained to the owning reader.

Parameters:
  - context: context.Context
  - userID: string
  - sessionID: string

Returns:
  - error: Revocation failures
*/
func (repository *PostgresSessionRepository) Revoke(context context.Context, userID, sessionID string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = TRUE WHERE %s = $1 AND %s = $2",
		schema.UsersSession.Table, schema.UsersSession.IsRevoked,
		schema.UsersSession.ID, schema.UsersSession.UserID,
	)

	_, err := repository.pool.Exec(context, query, sessionID, userID)
	if err != nil {
		return dberr.Wrap(err, "session_revoke")
	}

	return nil
}

/*
RevokeOthers revokes all active sessions except the one matching the given
refresh token hash.

Parameters:
  - context: context.Context
  - userID: string
  - currentTokenHash: string

Returns:
  - error: Revocation failures
*/
func (repository *PostgresSessionRepository) RevokeOthers(context context.Context, userID, currentTokenHash string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = TRUE WHERE %s = $1 AND %s != $2 AND %s = FALSE",
		schema.UsersSession.Table, schema.UsersSession.IsRevoked,
		schema.UsersSession.UserID, schema.UsersSession.TokenHash, schema.UsersSession.IsRevoked,
	)

	_, err := repository.pool.Exec(context, query, userID, currentTokenHash)
	if err != nil {
		return dberr.Wrap(err, "session_revoke_others")
	}

	return nil
}

/*
RevokeAll terminates every active session for a reader.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Revocation failures
*/
func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = TRUE WHERE %s = $1 AND %s = FALSE",
		schema.UsersSession.Table, schema.UsersSession.IsRevoked,
		schema.UsersSession.UserID, schema.UsersSession.IsRevoked,
	)

	_, err := repository.pool.Exec(context, query, userID)
	if err != nil {
		return dberr.Wrap(err, "session_revoke_all")
	}

	return nil
}
