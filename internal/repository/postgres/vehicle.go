package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"

	"github.com/lib/pq"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, seller_id, name, description, category, make, model, year, fuel_type,
	daily_rate_cents, estimated_daily_miles, location, status, created_on, updated_on`

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (seller_id, name, description, category, make, model, year, fuel_type,
		daily_rate_cents, estimated_daily_miles, location, status, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	return r.db.QueryRowContext(ctx, query, v.SellerID, v.Name, v.Description, v.Category, v.Make, v.Model,
		v.Year, v.FuelType, v.DailyRateCents, v.EstimatedDailyMiles, v.Location, v.Status, time.Now(), time.Now()).Scan(&v.ID)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 AND deleted_on IS NULL`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.SellerID, &v.Name, &v.Description, &v.Category,
		&v.Make, &v.Model, &v.Year, &v.FuelType, &v.DailyRateCents, &v.EstimatedDailyMiles, &v.Location,
		&v.Status, &v.CreatedOn, &v.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET name=$1, description=$2, category=$3, make=$4, model=$5, year=$6,
		fuel_type=$7, daily_rate_cents=$8, estimated_daily_miles=$9, location=$10, status=$11, updated_on=$12
		WHERE id=$13`
	_, err := r.db.ExecContext(ctx, query, v.Name, v.Description, v.Category, v.Make, v.Model, v.Year,
		v.FuelType, v.DailyRateCents, v.EstimatedDailyMiles, v.Location, v.Status, time.Now(), v.ID)
	return err
}

func (r *vehicleRepository) Delete(ctx context.Context, id int32) error {
	query := `UPDATE vehicles SET status='REMOVED', deleted_on=$1, updated_on=$1 WHERE id=$2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	return err
}

func (r *vehicleRepository) ListBySeller(ctx context.Context, sellerID int32, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM vehicles WHERE seller_id = $1 AND deleted_on IS NULL`, sellerID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE seller_id = $1 AND deleted_on IS NULL
		ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, sellerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	vehicles, err := scanVehicles(rows)
	return vehicles, count, err
}

func (r *vehicleRepository) Search(ctx context.Context, query string, categories []string, maxDailyRateCents int64, location string, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	offset := (page - 1) * pageSize
	sqlQuery := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE status = 'ACTIVE' AND deleted_on IS NULL`

	args := []interface{}{}
	argIdx := 1
	if query != "" {
		sqlQuery += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d OR make ILIKE $%d OR model ILIKE $%d)", argIdx, argIdx, argIdx, argIdx)
		args = append(args, "%"+query+"%")
		argIdx++
	}
	if len(categories) > 0 {
		sqlQuery += fmt.Sprintf(" AND category = ANY($%d)", argIdx)
		args = append(args, pq.Array(categories))
		argIdx++
	}
	if maxDailyRateCents > 0 {
		sqlQuery += fmt.Sprintf(" AND daily_rate_cents <= $%d", argIdx)
		args = append(args, maxDailyRateCents)
		argIdx++
	}
	if location != "" {
		sqlQuery += fmt.Sprintf(" AND location ILIKE $%d", argIdx)
		args = append(args, "%"+location+"%")
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + sqlQuery + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sqlQuery += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	vehicles, err := scanVehicles(rows)
	return vehicles, count, err
}

func scanVehicles(rows *sql.Rows) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.SellerID, &v.Name, &v.Description, &v.Category, &v.Make, &v.Model,
			&v.Year, &v.FuelType, &v.DailyRateCents, &v.EstimatedDailyMiles, &v.Location,
			&v.Status, &v.CreatedOn, &v.UpdatedOn); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// Image management

func (r *vehicleRepository) CreateImage(ctx context.Context, img *domain.VehicleImage) error {
	query := `INSERT INTO vehicle_images (vehicle_id, user_id, file_name, file_path, file_size, mime_type,
		is_primary, display_order, status, expires_at, created_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query, img.VehicleID, img.UserID, img.FileName, img.FilePath,
		img.FileSize, img.MimeType, img.IsPrimary, img.DisplayOrder, img.Status, img.ExpiresAt, time.Now()).Scan(&img.ID)
}

func (r *vehicleRepository) GetImageByID(ctx context.Context, imageID int32) (*domain.VehicleImage, error) {
	img := &domain.VehicleImage{}
	query := `SELECT id, vehicle_id, user_id, file_name, file_path, file_size, mime_type, is_primary,
		display_order, status, expires_at, created_on, confirmed_on FROM vehicle_images WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, imageID).Scan(&img.ID, &img.VehicleID, &img.UserID, &img.FileName,
		&img.FilePath, &img.FileSize, &img.MimeType, &img.IsPrimary, &img.DisplayOrder, &img.Status,
		&img.ExpiresAt, &img.CreatedOn, &img.ConfirmedOn)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (r *vehicleRepository) GetImages(ctx context.Context, vehicleID int32) ([]domain.VehicleImage, error) {
	query := `SELECT id, vehicle_id, user_id, file_name, file_path, file_size, mime_type, is_primary,
		display_order, status, expires_at, created_on, confirmed_on
		FROM vehicle_images WHERE vehicle_id = $1 AND status = 'CONFIRMED' ORDER BY display_order, id`
	rows, err := r.db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.VehicleImage
	for rows.Next() {
		var img domain.VehicleImage
		if err := rows.Scan(&img.ID, &img.VehicleID, &img.UserID, &img.FileName, &img.FilePath, &img.FileSize,
			&img.MimeType, &img.IsPrimary, &img.DisplayOrder, &img.Status, &img.ExpiresAt,
			&img.CreatedOn, &img.ConfirmedOn); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *vehicleRepository) ConfirmImage(ctx context.Context, imageID, vehicleID int32) error {
	query := `UPDATE vehicle_images SET status='CONFIRMED', vehicle_id=$1, expires_at=NULL, confirmed_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, vehicleID, time.Now(), imageID)
	return err
}

func (r *vehicleRepository) DeleteImage(ctx context.Context, imageID int32) error {
	query := `UPDATE vehicle_images SET status='DELETED', deleted_on=$1 WHERE id=$2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), imageID)
	return err
}

func (r *vehicleRepository) SetPrimaryImage(ctx context.Context, vehicleID, imageID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE vehicle_images SET is_primary=false WHERE vehicle_id=$1`, vehicleID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE vehicle_images SET is_primary=true WHERE id=$1 AND vehicle_id=$2`, imageID, vehicleID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *vehicleRepository) DeleteExpiredPendingImages(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM vehicle_images WHERE status='PENDING' AND expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
