package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pg-backend/internal/models"
)

type RoomRepository struct {
	DB *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{DB: db}
}

// CreateWithBeds inserts a room and one bed row per capacity slot, labelled
// A, B, C... in a single transaction.
func (r *RoomRepository) CreateWithBeds(ctx context.Context, room *models.Room) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO rooms (pg_id, number, floor, capacity) VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		room.PGID, room.Number, room.Floor, room.Capacity,
	).Scan(&room.ID, &room.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	for i := 0; i < room.Capacity; i++ {
		bed := &models.Bed{RoomID: room.ID, Label: string(rune('A' + i))}
		err = tx.QueryRow(ctx,
			`INSERT INTO beds (room_id, label) VALUES ($1, $2) RETURNING id`,
			bed.RoomID, bed.Label,
		).Scan(&bed.ID)
		if err != nil {
			return fmt.Errorf("failed to create bed %s: %w", bed.Label, err)
		}
		room.Beds = append(room.Beds, bed)
	}

	return tx.Commit(ctx)
}

func (r *RoomRepository) Get(ctx context.Context, id int) (*models.Room, error) {
	room := &models.Room{}
	err := r.DB.QueryRow(ctx,
		`SELECT id, pg_id, number, floor, capacity, created_at FROM rooms WHERE id = $1`, id,
	).Scan(&room.ID, &room.PGID, &room.Number, &room.Floor, &room.Capacity, &room.CreatedAt)
	if err != nil {
		return nil, err
	}

	beds, err := r.ListBeds(ctx, id)
	if err != nil {
		return nil, err
	}
	room.Beds = beds
	return room, nil
}

func (r *RoomRepository) List(ctx context.Context, pgID int) ([]*models.Room, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, pg_id, number, floor, capacity, created_at FROM rooms WHERE pg_id = $1 ORDER BY floor, number`, pgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		room := &models.Room{}
		err := rows.Scan(&room.ID, &room.PGID, &room.Number, &room.Floor, &room.Capacity, &room.CreatedAt)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (r *RoomRepository) ListBeds(ctx context.Context, roomID int) ([]*models.Bed, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, room_id, label, COALESCE(tenant_id, 0) FROM beds WHERE room_id = $1 ORDER BY label`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var beds []*models.Bed
	for rows.Next() {
		bed := &models.Bed{}
		if err := rows.Scan(&bed.ID, &bed.RoomID, &bed.Label, &bed.TenantID); err != nil {
			return nil, err
		}
		beds = append(beds, bed)
	}
	return beds, nil
}

func (r *RoomRepository) GetBed(ctx context.Context, bedID int) (*models.Bed, error) {
	bed := &models.Bed{}
	err := r.DB.QueryRow(ctx,
		`SELECT id, room_id, label, COALESCE(tenant_id, 0) FROM beds WHERE id = $1`, bedID,
	).Scan(&bed.ID, &bed.RoomID, &bed.Label, &bed.TenantID)
	if err != nil {
		return nil, err
	}
	return bed, nil
}

// AssignBed claims a vacant bed for a tenant. Fails if the bed is taken.
func (r *RoomRepository) AssignBed(ctx context.Context, bedID, tenantID int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE beds SET tenant_id = $1 WHERE id = $2 AND tenant_id IS NULL`, tenantID, bedID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bed %d is already occupied", bedID)
	}
	return nil
}

func (r *RoomRepository) ReleaseBed(ctx context.Context, bedID int) error {
	_, err := r.DB.Exec(ctx, `UPDATE beds SET tenant_id = NULL WHERE id = $1`, bedID)
	return err
}

// Occupancy returns per-room bed totals for the occupancy map, one query.
func (r *RoomRepository) Occupancy(ctx context.Context, pgID int) ([]*models.RoomOccupancy, error) {
	query := `
		SELECT r.id, r.pg_id, r.number, r.floor, r.capacity, r.created_at,
		       COUNT(b.id), COUNT(b.tenant_id)
		FROM rooms r
		LEFT JOIN beds b ON b.room_id = r.id
		WHERE r.pg_id = $1
		GROUP BY r.id
		ORDER BY r.floor, r.number
	`
	rows, err := r.DB.Query(ctx, query, pgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.RoomOccupancy
	for rows.Next() {
		room := &models.Room{}
		occ := &models.RoomOccupancy{Room: room}
		err := rows.Scan(&room.ID, &room.PGID, &room.Number, &room.Floor, &room.Capacity,
			&room.CreatedAt, &occ.TotalBeds, &occ.OccupiedBeds)
		if err != nil {
			return nil, err
		}
		result = append(result, occ)
	}
	return result, nil
}
