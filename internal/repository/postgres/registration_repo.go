package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"festregistration/internal/domain"
)

// uniqueViolation is the Postgres error code for a unique-index rejection.
const uniqueViolation = "23505"

type registrationRepository struct {
	DB *sql.DB
}

// NewRegistrationRepository returns a RegistrationStore backed by the
// registrations and registration_participants tables. The unique indexes on
// (event_id, lower(email)) and (event_id, phone) are the final arbiter of
// duplicate registrations under concurrent submissions.
func NewRegistrationRepository(db *sql.DB) domain.RegistrationStore {
	return &registrationRepository{
		DB: db,
	}
}

func (r *registrationRepository) Exists(ctx context.Context, eventID string, field domain.ContactField, value string) (bool, error) {
	var query string
	switch field {
	case domain.ContactEmail:
		query = `
			SELECT EXISTS (
				SELECT 1 FROM registration_participants
				WHERE event_id = $1 AND lower(email) = lower($2)
			)
		`
	case domain.ContactPhone:
		query = `
			SELECT EXISTS (
				SELECT 1 FROM registration_participants
				WHERE event_id = $1 AND phone = $2
			)
		`
	default:
		return false, fmt.Errorf("unknown contact field %q: %w", field, domain.ErrInvalidInput)
	}
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, eventID, value).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *registrationRepository) FindToken(ctx context.Context, eventID string, field domain.ContactField, value string) (string, error) {
	var query string
	switch field {
	case domain.ContactEmail:
		query = `
			SELECT registration_id FROM registration_participants
			WHERE event_id = $1 AND lower(email) = lower($2)
		`
	case domain.ContactPhone:
		query = `
			SELECT registration_id FROM registration_participants
			WHERE event_id = $1 AND phone = $2
		`
	default:
		return "", fmt.Errorf("unknown contact field %q: %w", field, domain.ErrInvalidInput)
	}
	var token string
	err := r.DB.QueryRowContext(ctx, query, eventID, value).Scan(&token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return token, nil
}

func (r *registrationRepository) Create(ctx context.Context, rec *domain.RegistrationRecord) (string, error) {
	teamMembers, err := json.Marshal(rec.TeamMembers)
	if err != nil {
		return "", fmt.Errorf("marshal team members: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	token := uuid.NewString()
	insertRegistration := `
		INSERT INTO registrations (
			id, event_id, name, email, phone, roll_no, course, year,
			college, other_college, college_id_ref, query, team_members, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	main := rec.MainParticipant
	_, err = tx.ExecContext(ctx, insertRegistration,
		token, rec.EventID, main.Name, main.Email, main.Phone, main.RollNo,
		main.Course, main.Year, main.College, main.OtherCollege,
		rec.CollegeIDReference, rec.Query, teamMembers, rec.CreatedAt,
	)
	if err != nil {
		return "", translateUnique(err)
	}

	insertParticipant := `
		INSERT INTO registration_participants (registration_id, event_id, email, phone)
		VALUES ($1, $2, lower($3), $4)
	`
	for _, p := range append([]domain.Participant{main}, rec.TeamMembers...) {
		if _, err := tx.ExecContext(ctx, insertParticipant, token, rec.EventID, p.Email, p.Phone); err != nil {
			return "", translateUnique(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", translateUnique(err)
	}
	rec.Token = token
	return token, nil
}

func (r *registrationRepository) ListByEvent(ctx context.Context, eventID string, p domain.PaginationParams) ([]*domain.RegistrationRecord, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM registrations WHERE event_id = $1`
	if err := r.DB.QueryRowContext(ctx, countQuery, eventID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, event_id, name, email, phone, roll_no, course, year,
			college, other_college, college_id_ref, query, team_members, created_at
		FROM registrations
		WHERE event_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var recs []*domain.RegistrationRecord
	for rows.Next() {
		rec := &domain.RegistrationRecord{}
		var teamMembers []byte
		err := rows.Scan(
			&rec.Token, &rec.EventID, &rec.MainParticipant.Name, &rec.MainParticipant.Email,
			&rec.MainParticipant.Phone, &rec.MainParticipant.RollNo, &rec.MainParticipant.Course,
			&rec.MainParticipant.Year, &rec.MainParticipant.College, &rec.MainParticipant.OtherCollege,
			&rec.CollegeIDReference, &rec.Query, &teamMembers, &rec.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		if len(teamMembers) > 0 {
			if err := json.Unmarshal(teamMembers, &rec.TeamMembers); err != nil {
				return nil, 0, fmt.Errorf("unmarshal team members: %w", err)
			}
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if recs == nil {
		recs = []*domain.RegistrationRecord{}
	}
	return recs, total, nil
}

// translateUnique maps a Postgres unique violation to the domain sentinel so
// callers can distinguish a lost duplicate race from an outage.
func translateUnique(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrDuplicateRegistration
	}
	return err
}
