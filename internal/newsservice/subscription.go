package newsservice

import (
	"context"

	"github.com/lib/pq"
	"github.com/sushihentaime/newsportal/internal/common"
)

// insertSubscription is idempotent: subscribing twice keeps the first row.
func (m *NewsModel) insertSubscription(ctx context.Context, s *Subscription) error {
	query := `
		INSERT INTO subscriptions (user_id, category_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, category_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id`

	err := m.db.QueryRowContext(ctx, query, s.UserID, s.CategoryID).Scan(&s.ID)
	if err != nil {
		switch {
		case common.ForeignKeyError(err, "subscriptions_category_id_fkey"):
			return ErrCategoryForeignKey
		case common.ForeignKeyError(err, "subscriptions_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

func (m *NewsModel) deleteSubscription(ctx context.Context, userID, categoryID int) error {
	res, err := m.db.ExecContext(ctx, "DELETE FROM subscriptions WHERE user_id = $1 AND category_id = $2", userID, categoryID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}

// getSubscriberEmails returns the distinct emails of users subscribed to any of the categories.
func (m *NewsModel) getSubscriberEmails(ctx context.Context, categoryIDs []int) ([]string, error) {
	query := `
		SELECT DISTINCT u.email
		FROM subscriptions s
		JOIN users u ON s.user_id = u.id
		WHERE s.category_id = ANY($1)
		ORDER BY u.email`

	rows, err := m.db.QueryContext(ctx, query, pq.Array(toInt64s(categoryIDs)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := []string{}
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return emails, nil
}
