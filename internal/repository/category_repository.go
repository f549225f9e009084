package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/postplannerhq/postplanner/internal/models"
)

type CategoryRepository interface {
	GetByUserID(ctx context.Context, userID int64) ([]*models.CustomCategory, error)
	Create(ctx context.Context, category *models.CustomCategory) (int64, error)
	CheckByUserID(ctx context.Context, categoryID, userID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type categoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.CustomCategory, error) {
	query := `SELECT id, user_id, name, icon, created_at FROM custom_categories WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var categories []*models.CustomCategory
	for rows.Next() {
		var category models.CustomCategory
		err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.Icon, &category.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		categories = append(categories, &category)
	}
	return categories, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.CustomCategory) (int64, error) {
	query := "INSERT INTO custom_categories (user_id, name, icon) VALUES ($1, $2, $3) RETURNING id"

	var id int64
	err := r.db.QueryRowContext(ctx, query, category.UserID, category.Name, category.Icon).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *categoryRepository) CheckByUserID(ctx context.Context, categoryID, userID int64) (bool, error) {
	query := "SELECT 1 FROM custom_categories WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, categoryID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *categoryRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM custom_categories WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
