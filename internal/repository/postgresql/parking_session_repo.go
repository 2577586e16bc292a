package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parking_lot/internal/domain"
	"parking_lot/internal/repository"
)

type pgParkingSessionRepository struct {
	q queryer
}

func (r *pgParkingSessionRepository) Create(ctx context.Context, session *domain.ParkingSession) (*domain.ParkingSession, error) {
	query := `INSERT INTO parking_sessions
	           (ticket_code, vehicle_id, spot_id, entry_time, status, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING id, created_at, updated_at`
	err := r.q.QueryRowContext(ctx, query,
		session.TicketCode, session.VehicleID, session.SpotID, session.EntryTime, session.Status,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("ParkingSessionRepository.Create: %w", err)
	}
	session.CreatedAt = session.CreatedAt.In(time.UTC)
	session.UpdatedAt = session.UpdatedAt.In(time.UTC)
	return session, nil
}

func (r *pgParkingSessionRepository) FindByID(ctx context.Context, id int) (*domain.ParkingSession, error) {
	query := `SELECT ps.id, ps.ticket_code, ps.vehicle_id, ps.spot_id, ps.entry_time, ps.exit_time,
	                 ps.duration_minutes, ps.fee, ps.status, ps.created_at, ps.updated_at, v.vehicle_type
	           FROM parking_sessions ps
	           JOIN vehicles v ON v.vehicle_id = ps.vehicle_id
	           WHERE ps.id = $1`
	session, err := r.scanSession(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingSessionRepository.FindByID: %w", err)
	}
	return session, nil
}

func (r *pgParkingSessionRepository) FindActiveByID(ctx context.Context, id int) (*domain.ParkingSession, error) {
	// Locks the session row so a concurrent settlement of the same session
	// blocks until this transaction commits, then sees status = completed.
	query := `SELECT ps.id, ps.ticket_code, ps.vehicle_id, ps.spot_id, ps.entry_time, ps.exit_time,
	                 ps.duration_minutes, ps.fee, ps.status, ps.created_at, ps.updated_at, v.vehicle_type
	           FROM parking_sessions ps
	           JOIN vehicles v ON v.vehicle_id = ps.vehicle_id
	           WHERE ps.id = $1 AND ps.status = $2
	           FOR UPDATE OF ps`
	session, err := r.scanSession(r.q.QueryRowContext(ctx, query, id, domain.SessionActive))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoActiveSession
		}
		return nil, fmt.Errorf("ParkingSessionRepository.FindActiveByID: %w", err)
	}
	return session, nil
}

func (r *pgParkingSessionRepository) Close(ctx context.Context, id int, exitTime time.Time, durationMinutes int64, fee float64) error {
	query := `UPDATE parking_sessions
	           SET exit_time = $1, duration_minutes = $2, fee = $3, status = $4, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $5 AND status = $6`
	result, err := r.q.ExecContext(ctx, query, exitTime, durationMinutes, fee, domain.SessionCompleted, id, domain.SessionActive)
	if err != nil {
		return fmt.Errorf("ParkingSessionRepository.Close: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ParkingSessionRepository.Close (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNoActiveSession
	}
	return nil
}

func (r *pgParkingSessionRepository) scanSession(row *sql.Row) (*domain.ParkingSession, error) {
	session := &domain.ParkingSession{}
	err := row.Scan(
		&session.ID, &session.TicketCode, &session.VehicleID, &session.SpotID, &session.EntryTime,
		&session.ExitTime, &session.DurationMinutes, &session.Fee, &session.Status,
		&session.CreatedAt, &session.UpdatedAt, &session.VehicleType,
	)
	if err != nil {
		return nil, err
	}
	session.EntryTime = session.EntryTime.In(time.UTC)
	if session.ExitTime.Valid {
		session.ExitTime.Time = session.ExitTime.Time.In(time.UTC)
	}
	session.CreatedAt = session.CreatedAt.In(time.UTC)
	session.UpdatedAt = session.UpdatedAt.In(time.UTC)
	return session, nil
}
