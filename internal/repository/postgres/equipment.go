package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"equiphire-backend/internal/domain"
	"equiphire-backend/internal/repository"
)

const equipmentColumns = `id, vendor_id, name, category, description, day_rate, base_lat, base_lng,
	per_km_rate, base_delivery_charge, image_url, status, created_on, updated_on`

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	query := `INSERT INTO equipments (vendor_id, name, category, description, day_rate, base_lat, base_lng,
		per_km_rate, base_delivery_charge, image_url, status, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, eq.VendorID, eq.Name, eq.Category, eq.Description,
		eq.DayRate, eq.BaseLat, eq.BaseLng, eq.PerKmRate, eq.BaseDeliveryCharge, eq.ImageURL,
		eq.Status, now, now).Scan(&eq.ID)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	eq := &domain.Equipment{}
	query := `SELECT ` + equipmentColumns + ` FROM equipments WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&eq.ID, &eq.VendorID, &eq.Name, &eq.Category,
		&eq.Description, &eq.DayRate, &eq.BaseLat, &eq.BaseLng, &eq.PerKmRate, &eq.BaseDeliveryCharge,
		&eq.ImageURL, &eq.Status, &eq.CreatedOn, &eq.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return eq, nil
}

func (r *equipmentRepository) Update(ctx context.Context, eq *domain.Equipment) error {
	query := `UPDATE equipments SET name=$1, category=$2, description=$3, day_rate=$4, base_lat=$5,
		base_lng=$6, per_km_rate=$7, base_delivery_charge=$8, image_url=$9, status=$10, updated_on=$11
		WHERE id=$12`
	_, err := r.db.ExecContext(ctx, query, eq.Name, eq.Category, eq.Description, eq.DayRate,
		eq.BaseLat, eq.BaseLng, eq.PerKmRate, eq.BaseDeliveryCharge, eq.ImageURL, eq.Status,
		time.Now(), eq.ID)
	return err
}

func (r *equipmentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM equipments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) ListByVendor(ctx context.Context, vendorID int64, page, pageSize int) ([]domain.Equipment, int, error) {
	offset := (page - 1) * pageSize

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM equipments WHERE vendor_id = $1`, vendorID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + equipmentColumns + ` FROM equipments WHERE vendor_id = $1
	          ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, vendorID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list, err := scanEquipments(rows)
	return list, count, err
}

func (r *equipmentRepository) Search(ctx context.Context, query, category string, maxDayRate float64, page, pageSize int) ([]domain.Equipment, int, error) {
	offset := (page - 1) * pageSize
	base := `FROM equipments WHERE status = 'AVAILABLE'`
	args := []interface{}{}
	argIdx := 1

	if query != "" {
		base += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+query+"%")
		argIdx++
	}
	if category != "" {
		base += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, category)
		argIdx++
	}
	if maxDayRate > 0 {
		base += fmt.Sprintf(" AND day_rate <= $%d", argIdx)
		args = append(args, maxDayRate)
		argIdx++
	}

	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) "+base, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	listQuery := "SELECT " + equipmentColumns + " " + base +
		fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list, err := scanEquipments(rows)
	return list, count, err
}

func scanEquipments(rows *sql.Rows) ([]domain.Equipment, error) {
	var list []domain.Equipment
	for rows.Next() {
		var eq domain.Equipment
		if err := rows.Scan(&eq.ID, &eq.VendorID, &eq.Name, &eq.Category, &eq.Description,
			&eq.DayRate, &eq.BaseLat, &eq.BaseLng, &eq.PerKmRate, &eq.BaseDeliveryCharge,
			&eq.ImageURL, &eq.Status, &eq.CreatedOn, &eq.UpdatedOn); err != nil {
			return nil, err
		}
		list = append(list, eq)
	}
	return list, rows.Err()
}
