package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ComplaintFilter captures staff search parameters. All set fields are
// combined conjunctively.
type ComplaintFilter struct {
	CitizenID       *string
	CitizenUsername *string
	Status          *domain.ComplaintStatus
	CreatedOn       *time.Time
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
	Limit           int
	Offset          int
}

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	UpdateStatus(ctx context.Context, complaint *domain.Complaint) error
	ListByCitizen(ctx context.Context, citizenID string) ([]domain.Complaint, error)
	ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error)
	CountByStatus(ctx context.Context) (map[domain.ComplaintStatus]int64, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (citizen_id, title, description, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		complaint.CitizenID,
		complaint.Title,
		complaint.Description,
		complaint.Status,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt)
}

// UpdateStatus persists only the status column; every other field is
// untouchable through this path. Returns pgx.ErrNoRows when the id is absent.
func (r *complaintRepository) UpdateStatus(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        UPDATE complaints SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING updated_at`
	return mapBadUUID(r.pool.QueryRow(ctx, query, complaint.Status, complaint.ID).Scan(&complaint.UpdatedAt))
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	const query = `
        SELECT c.id, c.citizen_id, u.username, c.title, c.description, c.status, c.created_at, c.updated_at
        FROM complaints c
        JOIN users u ON u.id = c.citizen_id
        WHERE c.id=$1`

	var complaint domain.Complaint
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&complaint.ID,
		&complaint.CitizenID,
		&complaint.CitizenUsername,
		&complaint.Title,
		&complaint.Description,
		&complaint.Status,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	); err != nil {
		return nil, mapBadUUID(err)
	}
	return &complaint, nil
}

// mapBadUUID folds malformed id input (SQLSTATE 22P02) into the not-found
// convention: an id that cannot be a uuid names no row.
func mapBadUUID(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
		return pgx.ErrNoRows
	}
	return err
}

func (r *complaintRepository) ListByCitizen(ctx context.Context, citizenID string) ([]domain.Complaint, error) {
	return r.ListWithFilter(ctx, ComplaintFilter{CitizenID: &citizenID})
}

func (r *complaintRepository) ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error) {
	base := `SELECT c.id, c.citizen_id, u.username, c.title, c.description, c.status, c.created_at, c.updated_at
             FROM complaints c
             JOIN users u ON u.id = c.citizen_id`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CitizenID != nil {
		args = append(args, *filter.CitizenID)
		clauses = append(clauses, fmt.Sprintf("c.citizen_id=$%d", len(args)))
	}
	if filter.CitizenUsername != nil {
		args = append(args, *filter.CitizenUsername)
		clauses = append(clauses, fmt.Sprintf("u.username=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("c.status=$%d", len(args)))
	}
	if filter.CreatedOn != nil {
		args = append(args, *filter.CreatedOn)
		clauses = append(clauses, fmt.Sprintf("c.created_at::date = $%d::date", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("c.created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("c.created_at <= $%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY c.created_at ASC", base, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepository) CountByStatus(ctx context.Context) (map[domain.ComplaintStatus]int64, error) {
	const query = `SELECT status, COUNT(*) FROM complaints GROUP BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ComplaintStatus]int64)
	for rows.Next() {
		var status domain.ComplaintStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanComplaints(rows pgx.Rows) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := rows.Scan(
			&complaint.ID,
			&complaint.CitizenID,
			&complaint.CitizenUsername,
			&complaint.Title,
			&complaint.Description,
			&complaint.Status,
			&complaint.CreatedAt,
			&complaint.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}
