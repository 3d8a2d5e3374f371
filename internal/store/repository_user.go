package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-study-sync/internal/logger"
	"github.com/MKhiriev/go-study-sync/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account creation, lookup and preferences updates against
// the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// The INSERT uses the [createUser] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) becomes [ErrLoginAlreadyExists].
//   - Any other driver-level error is wrapped as "unexpected DB error".
//   - Scan failure is returned directly.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	prefs, err := json.Marshal(user.Preferences)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: encoding preferences")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, createUser, user.Login, user.Name, user.PasswordHash, string(prefs))

	// create user in db
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrLoginAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	// scan saved user from db
	created, err := scanUserRow(row)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrLoginAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, err
	}

	return created, nil
}

// FindUserByLogin retrieves a user record whose Login matches the one
// provided in the input [models.User].
//
// Error handling:
//   - [sql.ErrNoRows] becomes [ErrNoUserWasFound].
//   - Any other driver-level error is wrapped as "unexpected DB error".
//   - Scan failure is returned directly.
func (r *userRepository) FindUserByLogin(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findUserByLogin, user.Login)

	// find user by login
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByLogin").Msg("error: row is nil")
		switch postgresError(err) {
		case pgerrcode.NoDataFound:
			return models.User{}, ErrNoUserWasFound
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	// scan found user from db
	foundUser, err := scanUserRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByLogin").Msg("error: scanning error")
		return models.User{}, err
	}

	return foundUser, nil
}

// MergePreferences folds the given preferences document into the user
// record and returns the updated user.
//
// Incoming fields overwrite stored ones; fields the caller left out keep
// their stored values. Without a matching user the RETURNING clause yields
// no row and [ErrNoUserWasFound] is returned.
func (r *userRepository) MergePreferences(ctx context.Context, userID int64, prefs models.Preferences) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildMergePreferencesQuery(ctx, userID, prefs)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.MergePreferences").
			Int64("user_id", userID).
			Msg("failed to build preferences update query")
		return models.User{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.MergePreferences").Msg("error: row is nil")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	updated, err := scanUserRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().
				Str("func", "*userRepository.MergePreferences").
				Int64("user_id", userID).
				Msg("user not found")
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.MergePreferences").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return updated, nil
}

// scanUserRow scans an all-columns user row, decoding the preferences JSONB
// payload into its typed form.
func scanUserRow(row *sql.Row) (models.User, error) {
	var user models.User
	var prefsRaw []byte

	if err := row.Scan(&user.UserID, &user.Login, &user.Name, &user.PasswordHash, &prefsRaw, &user.CreatedAt); err != nil {
		return models.User{}, err
	}

	if len(prefsRaw) > 0 {
		if err := json.Unmarshal(prefsRaw, &user.Preferences); err != nil {
			return models.User{}, fmt.Errorf("decode preferences column: %w", err)
		}
	}

	return user, nil
}
