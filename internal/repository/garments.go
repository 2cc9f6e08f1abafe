package repository

import (
	"github.com/DanielPPerez/EcoCloset-AG/backend/internal/domain"
)

const garmentColumns = `name, category, color, style, material, season, sustainability, image`

func (r *Repository) CreateGarment(garment *domain.Garment) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO garments (` + garmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`

	args := []any{garment.Name, garment.Category, garment.Color, garment.Style, garment.Material, garment.Season, garment.Sustainability, garment.Image}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&garment.ID, &garment.CreatedAt, &garment.Version); err != nil {
		return err
	}

	return nil
}

// CreateGarments 在一个事务中批量插入，任意一件失败则全部回滚
func (r *Repository) CreateGarments(garments []*domain.Garment) error {
	ctx, cancel := r.txContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO garments (` + garmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, garment := range garments {
		args := []any{garment.Name, garment.Category, garment.Color, garment.Style, garment.Material, garment.Season, garment.Sustainability, garment.Image}
		if err := stmt.QueryRowContext(ctx, args...).Scan(&garment.ID, &garment.CreatedAt, &garment.Version); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetGarmentByID(id int64) (*domain.Garment, error) {
	query := `
		SELECT ` + garmentColumns + `, created_at, version
		FROM garments WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	garment := &domain.Garment{
		ID: id,
	}

	dst := []any{&garment.Name, &garment.Category, &garment.Color, &garment.Style, &garment.Material, &garment.Season, &garment.Sustainability, &garment.Image, &garment.CreatedAt, &garment.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return garment, nil
}

// GetAllGarments 按 id 升序返回整个目录，返回的顺序就是优化器使用的目录位置
func (r *Repository) GetAllGarments() ([]*domain.Garment, error) {
	query := `
		SELECT id, ` + garmentColumns + `, created_at, version
		FROM garments ORDER BY id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	garments := make([]*domain.Garment, 0)
	for rows.Next() {
		garment := &domain.Garment{}
		dst := []any{&garment.ID, &garment.Name, &garment.Category, &garment.Color, &garment.Style, &garment.Material, &garment.Season, &garment.Sustainability, &garment.Image, &garment.CreatedAt, &garment.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		garments = append(garments, garment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return garments, nil
}

// UpdateGarment 使用乐观锁，版本号不匹配时返回 sql.ErrNoRows
func (r *Repository) UpdateGarment(garment *domain.Garment) error {
	query := `
		UPDATE garments
		SET
			name = $1,
			category = $2,
			color = $3,
			style = $4,
			material = $5,
			season = $6,
			sustainability = $7,
			image = $8,
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{garment.Name, garment.Category, garment.Color, garment.Style, garment.Material, garment.Season, garment.Sustainability, garment.Image, garment.ID, garment.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&garment.CreatedAt, &garment.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteGarment(id int64) error {
	query := `
		DELETE FROM garments WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
