package repository

import (
	"context"
	"errors"
	"fmt"

	"donor-booking/internal/data/entity"
	"donor-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByPhone(ctx context.Context, phone string) (*entity.User, error)
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, name, dob, gender, city, district, ward, address,
	username, password, email, phone, blood_type, role, created_at, updated_at`

// Create inserts a new user. Unique violations on username/email/phone come back as ErrDuplicate.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.DOB,
		user.Gender,
		user.City,
		user.District,
		user.Ward,
		user.Address,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.Phone,
		user.BloodType,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if constraint, ok := uniqueViolation(err); ok {
		ur.log.Warn("Duplicate user rejected by constraint",
			zap.String("constraint", constraint),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("create user %s: %w (%s)", user.Username, ErrDuplicate, constraint)
	}
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return ur.findOne(ctx, "id", id)
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return ur.findOne(ctx, "email", email)
}

func (ur *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return ur.findOne(ctx, "username", username)
}

func (ur *userRepository) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	return ur.findOne(ctx, "phone", phone)
}

// findOne returns nil, nil when no row matches. column is always a package constant.
func (ur *userRepository) findOne(ctx context.Context, column string, value any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`

	var user entity.User
	err := ur.db.QueryRow(ctx, query, value).Scan(
		&user.ID,
		&user.Name,
		&user.DOB,
		&user.Gender,
		&user.City,
		&user.District,
		&user.Ward,
		&user.Address,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.Phone,
		&user.BloodType,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user",
			zap.Error(err),
			zap.String("by", column),
		)
		return nil, fmt.Errorf("find user by %s: %w", column, err)
	}

	return &user, nil
}
