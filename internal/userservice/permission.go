package userservice

import (
	"context"
	"database/sql"
)

func (m *DBModel) addUserPermission(tx *sql.Tx, ctx context.Context, id int, permissions ...Permission) error {
	for _, p := range permissions {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO user_permissions (user_id, permission)
			VALUES ($1, $2)
			ON CONFLICT (user_id, permission) DO NOTHING`, id, p)
		if err != nil {
			return err
		}
	}

	return nil
}

// upsertAuthor creates the author profile of a user and returns its id. An existing profile is kept.
func (m *DBModel) upsertAuthor(tx *sql.Tx, ctx context.Context, userID int) (int, error) {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO authors (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return 0, err
	}

	var id int
	err = tx.QueryRowContext(ctx, "SELECT id FROM authors WHERE user_id = $1", userID).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}
