package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/club-service/internal/domain"
)

const userColumns = `id, full_name, id_card, email, phone, password_hash, gender, province,
        birth_date, photo_url, blood_type, allergies, diseases, past_injuries, current_injuries,
        height, weight, fat_percentage, footwear_type, record_5k, record_10k, record_21k,
        record_42k, record_wkg, stryd_user, final_surge_user, is_member, created_at`

// UserProfileUpdate carries the self-service profile fields. Nil fields are
// left untouched.
type UserProfileUpdate struct {
	FullName        *string
	IDCard          *string
	Phone           *string
	BloodType       *string
	Allergies       *string
	Diseases        *string
	PastInjuries    *string
	CurrentInjuries *string
	Height          *float64
	Weight          *float64
	FatPercentage   *float64
	FootwearType    *string
	Record5K        *string
	Record10K       *string
	Record21K       *string
	Record42K       *string
	RecordWkg       *string
	StrydUser       *string
	FinalSurgeUser  *string
}

// UserRepository defines persistence access for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindCollision reports which of email / idCard already belongs to an
	// existing user. An empty field means no collision.
	FindCollision(ctx context.Context, email, idCard string) (string, error)
	UpdateProfile(ctx context.Context, id int64, update UserProfileUpdate) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) FindCollision(ctx context.Context, email, idCard string) (string, error) {
	const query = `SELECT email, id_card FROM users WHERE email=$1 OR id_card=$2 LIMIT 1`

	var existingEmail, existingIDCard string
	err := r.pool.QueryRow(ctx, query, email, idCard).Scan(&existingEmail, &existingIDCard)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if existingEmail == email {
		return "email", nil
	}
	return "idCard", nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id int64, update UserProfileUpdate) error {
	sets := []string{}
	args := []any{}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if update.FullName != nil {
		appendSet("full_name", *update.FullName)
	}
	if update.IDCard != nil {
		appendSet("id_card", *update.IDCard)
	}
	if update.Phone != nil {
		appendSet("phone", *update.Phone)
	}
	if update.BloodType != nil {
		appendSet("blood_type", *update.BloodType)
	}
	if update.Allergies != nil {
		appendSet("allergies", *update.Allergies)
	}
	if update.Diseases != nil {
		appendSet("diseases", *update.Diseases)
	}
	if update.PastInjuries != nil {
		appendSet("past_injuries", *update.PastInjuries)
	}
	if update.CurrentInjuries != nil {
		appendSet("current_injuries", *update.CurrentInjuries)
	}
	if update.Height != nil {
		appendSet("height", *update.Height)
	}
	if update.Weight != nil {
		appendSet("weight", *update.Weight)
	}
	if update.FatPercentage != nil {
		appendSet("fat_percentage", *update.FatPercentage)
	}
	if update.FootwearType != nil {
		appendSet("footwear_type", *update.FootwearType)
	}
	if update.Record5K != nil {
		appendSet("record_5k", *update.Record5K)
	}
	if update.Record10K != nil {
		appendSet("record_10k", *update.Record10K)
	}
	if update.Record21K != nil {
		appendSet("record_21k", *update.Record21K)
	}
	if update.Record42K != nil {
		appendSet("record_42k", *update.Record42K)
	}
	if update.RecordWkg != nil {
		appendSet("record_wkg", *update.RecordWkg)
	}
	if update.StrydUser != nil {
		appendSet("stryd_user", *update.StrydUser)
	}
	if update.FinalSurgeUser != nil {
		appendSet("final_surge_user", *update.FinalSurgeUser)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id=$%d", strings.Join(sets, ", "), len(args))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.IDCard,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Gender,
		&user.Province,
		&user.BirthDate,
		&user.PhotoURL,
		&user.BloodType,
		&user.Allergies,
		&user.Diseases,
		&user.PastInjuries,
		&user.CurrentInjuries,
		&user.Height,
		&user.Weight,
		&user.FatPercentage,
		&user.FootwearType,
		&user.Record5K,
		&user.Record10K,
		&user.Record21K,
		&user.Record42K,
		&user.RecordWkg,
		&user.StrydUser,
		&user.FinalSurgeUser,
		&user.IsMember,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation. The intake workflow treats it as equivalent to the duplicate
// pre-check failing, which closes the check-then-act race.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// UniqueViolationField maps a unique violation to the colliding applicant
// field name, defaulting to email when the constraint is unrecognized.
func UniqueViolationField(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.Contains(pgErr.ConstraintName, "id_card") {
		return "idCard"
	}
	return "email"
}
