package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/club-service/internal/domain"
)

// MembershipRequestRepository persists membership applications.
type MembershipRequestRepository interface {
	// CreateWithUser inserts the applicant's user row and the linked
	// request row in a single transaction, so an intake either lands
	// completely or not at all.
	CreateWithUser(ctx context.Context, user *domain.User, request *domain.MembershipRequest) error
	GetByID(ctx context.Context, id int64) (*domain.MembershipRequest, error)
	// Approve flips the owning user to member and marks the request
	// approved, transactionally.
	Approve(ctx context.Context, requestID, userID int64) error
	Reject(ctx context.Context, requestID int64) error
	ListPending(ctx context.Context) ([]domain.PendingRequest, error)
}

type membershipRequestRepository struct {
	pool *pgxpool.Pool
}

// NewMembershipRequestRepository constructs repository.
func NewMembershipRequestRepository(pool *pgxpool.Pool) MembershipRequestRepository {
	return &membershipRequestRepository{pool: pool}
}

const insertUserQuery = `
        INSERT INTO users (full_name, id_card, email, phone, password_hash, gender, province,
            birth_date, photo_url, blood_type, allergies, diseases, past_injuries, current_injuries,
            height, weight, fat_percentage, footwear_type, record_5k, record_10k, record_21k,
            record_42k, record_wkg, stryd_user, final_surge_user, is_member)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26)
        RETURNING id, created_at`

const insertRequestQuery = `
        INSERT INTO membership_requests (user_id, training_goals, short_term_goals, mid_term_goals,
            long_term_goals, training_days_per_week, has_trained_with_stryd, has_structured_training,
            discovery_method, is_already_member, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at`

func (r *membershipRequestRepository) CreateWithUser(ctx context.Context, user *domain.User, request *domain.MembershipRequest) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := tx.QueryRow(ctx, insertUserQuery,
		user.FullName,
		user.IDCard,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Gender,
		user.Province,
		user.BirthDate,
		user.PhotoURL,
		user.BloodType,
		user.Allergies,
		user.Diseases,
		user.PastInjuries,
		user.CurrentInjuries,
		user.Height,
		user.Weight,
		user.FatPercentage,
		user.FootwearType,
		user.Record5K,
		user.Record10K,
		user.Record21K,
		user.Record42K,
		user.RecordWkg,
		user.StrydUser,
		user.FinalSurgeUser,
		user.IsMember,
	).Scan(&user.ID, &user.CreatedAt); err != nil {
		return err
	}

	request.UserID = user.ID
	if err := tx.QueryRow(ctx, insertRequestQuery,
		request.UserID,
		request.TrainingGoals,
		request.ShortTermGoals,
		request.MidTermGoals,
		request.LongTermGoals,
		request.TrainingDaysPerWeek,
		request.HasTrainedWithStryd,
		request.HasStructuredTraining,
		request.DiscoveryMethod,
		request.IsAlreadyMember,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *membershipRequestRepository) GetByID(ctx context.Context, id int64) (*domain.MembershipRequest, error) {
	const query = `
        SELECT id, user_id, training_goals, short_term_goals, mid_term_goals, long_term_goals,
               training_days_per_week, has_trained_with_stryd, has_structured_training,
               discovery_method, is_already_member, status, created_at
        FROM membership_requests WHERE id=$1`

	var request domain.MembershipRequest
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.UserID,
		&request.TrainingGoals,
		&request.ShortTermGoals,
		&request.MidTermGoals,
		&request.LongTermGoals,
		&request.TrainingDaysPerWeek,
		&request.HasTrainedWithStryd,
		&request.HasStructuredTraining,
		&request.DiscoveryMethod,
		&request.IsAlreadyMember,
		&request.Status,
		&request.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *membershipRequestRepository) Approve(ctx context.Context, requestID, userID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx, `UPDATE users SET is_member=TRUE WHERE id=$1`, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	cmd, err = tx.Exec(ctx, `UPDATE membership_requests SET status=$1 WHERE id=$2`,
		domain.RequestStatusApproved, requestID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}

func (r *membershipRequestRepository) Reject(ctx context.Context, requestID int64) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE membership_requests SET status=$1 WHERE id=$2`,
		domain.RequestStatusRejected, requestID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *membershipRequestRepository) ListPending(ctx context.Context) ([]domain.PendingRequest, error) {
	const query = `
        SELECT mr.id, mr.status, mr.created_at, u.full_name, u.email, u.id_card
        FROM membership_requests mr
        INNER JOIN users u ON u.id = mr.user_id
        WHERE mr.status=$1
        ORDER BY mr.created_at ASC`

	rows, err := r.pool.Query(ctx, query, domain.RequestStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PendingRequest
	for rows.Next() {
		var pending domain.PendingRequest
		if err := rows.Scan(
			&pending.RequestID,
			&pending.Status,
			&pending.CreatedAt,
			&pending.Applicant.FullName,
			&pending.Applicant.Email,
			&pending.Applicant.IDCard,
		); err != nil {
			return nil, err
		}
		result = append(result, pending)
	}
	return result, rows.Err()
}
