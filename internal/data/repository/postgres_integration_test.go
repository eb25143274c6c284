package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"donor-booking/internal/data/entity"
	"donor-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Runs against a real database only when TEST_DATABASE_URL is set.
func openTestDB(t *testing.T) database.PgxIface {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Open(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, database.Migrate(ctx, db))
	return db
}

func seedUser(t *testing.T, repo UserRepository) *entity.User {
	t.Helper()
	suffix := uuid.NewString()[:8]
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         "Integration",
		DOB:          time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC),
		Gender:       entity.GenderFemale,
		City:         "Ha Noi",
		District:     "Ba Dinh",
		Ward:         "Kim Ma",
		Address:      "1 Kim Ma",
		Username:     "it_" + suffix,
		PasswordHash: "x",
		Email:        suffix + "@example.com",
		Phone:        "09" + suffix,
		BloodType:    entity.BloodTypeABNeg,
		Role:         entity.RoleDonor,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestPostgresUserRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db, zap.NewNop())
	ctx := context.Background()

	user := seedUser(t, repo)

	got, err := repo.FindByUsername(ctx, user.Username)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)

	dup := *user
	dup.ID = uuid.New()
	assert.ErrorIs(t, repo.Create(ctx, &dup), ErrDuplicate)
}

func TestPostgresActiveSlotIndex(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db, zap.NewNop())
	repo := NewAppointmentRepository(db, zap.NewNop())
	ctx := context.Background()

	owner := seedUser(t, users)
	// a far future day per run keeps reruns independent
	d := time.Date(2100+time.Now().Nanosecond()%800, 1, 1, 0, 0, 0, 0, time.UTC)

	first := newAppointment(owner.ID, d, "10:00")
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, newAppointment(owner.ID, d, "10:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)

	times, err := repo.FindBookedTimes(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, times)

	require.NoError(t, repo.UpdateStatus(ctx, first.ID, entity.AppointmentCancelled, time.Now().UTC()))

	second := newAppointment(owner.ID, d, "10:00")
	require.NoError(t, repo.Create(ctx, second))

	holder, err := repo.FindActiveBySlot(ctx, d, "10:00", uuid.Nil)
	require.NoError(t, err)
	require.NotNil(t, holder)
	assert.Equal(t, second.ID, holder.ID)

	// a stale copy written after the cancel must not revive it
	first.Notes = "late edit"
	first.Status = entity.AppointmentPending
	require.NoError(t, repo.Update(ctx, first))
	assert.Equal(t, entity.AppointmentCancelled, first.Status)

	mine, err := repo.FindByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
