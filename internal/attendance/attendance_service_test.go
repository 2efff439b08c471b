package attendance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-attend/internal/attendance"
	attendanceerrors "go-attend/internal/attendance/errors"
	"go-attend/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAttendanceRepository struct {
	withTxFn            func(tx *sql.Tx) attendance.Repository
	createFn            func(ctx context.Context, a *attendance.Attendance) error
	updateFn            func(ctx context.Context, a *attendance.Attendance) error
	findByUserAndDateFn func(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error)
	findByUserSinceFn   func(ctx context.Context, userID string, since time.Time) ([]attendance.Attendance, error)
	findAllSinceFn      func(ctx context.Context, since time.Time) ([]attendance.Attendance, error)
}

func (f *fakeAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeAttendanceRepository) Create(ctx context.Context, a *attendance.Attendance) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepository) Update(ctx context.Context, a *attendance.Attendance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	if f.findByUserAndDateFn != nil {
		return f.findByUserAndDateFn(ctx, userID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindByUserSince(ctx context.Context, userID string, since time.Time) ([]attendance.Attendance, error) {
	if f.findByUserSinceFn != nil {
		return f.findByUserSinceFn(ctx, userID, since)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) FindAllSince(ctx context.Context, since time.Time) ([]attendance.Attendance, error) {
	if f.findAllSinceFn != nil {
		return f.findAllSinceFn(ctx, since)
	}
	return nil, nil
}

type fakeUserRepository struct {
	findAllFn func(ctx context.Context) ([]user.User, error)
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepository) Delete(ctx context.Context, id string) error    { return nil }

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

type attendanceServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service attendance.Service
	repo    *fakeAttendanceRepository
	users   *fakeUserRepository
}

func setupAttendanceServiceTest(t *testing.T) *attendanceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeAttendanceRepository{}
	users := &fakeUserRepository{}
	svc := attendance.NewService(db, repo, users)

	return &attendanceServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		users:   users,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestAttendanceService_MarkArrival(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.createFn = func(ctx context.Context, a *attendance.Attendance) error {
			assert.Equal(t, uuid.MustParse(userID), a.UserID)
			assert.Equal(t, attendance.StatusPresent, a.Status)
			assert.NotNil(t, a.LoginTime)
			assert.Nil(t, a.LogoutTime)
			assert.Equal(t, "2026-08-28", a.Date.Format("2006-01-02"))
			return nil
		}

		resp, err := deps.service.MarkArrival(ctx, attendance.MarkRequest{
			UserID: userID,
			Date:   "2026-08-28",
		})

		assert.NoError(t, err)
		assert.Equal(t, "2026-08-28", resp.Date)
		assert.Equal(t, attendance.StatusPresent, resp.Status)
		assert.NotNil(t, resp.LoginTime)
		assert.Nil(t, resp.WorkingHours)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate arrival", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		login := time.Now()
		deps.repo.findByUserAndDateFn = func(ctx context.Context, uid string, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{
				UserID:    uuid.MustParse(userID),
				Date:      date,
				Status:    attendance.StatusPresent,
				LoginTime: &login,
			}, nil
		}

		_, err := deps.service.MarkArrival(ctx, attendance.MarkRequest{
			UserID: userID,
			Date:   "2026-08-28",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyArrived)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("excused day rejects arrival", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByUserAndDateFn = func(ctx context.Context, uid string, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{
				UserID: uuid.MustParse(userID),
				Date:   date,
				Status: attendance.StatusExcused,
			}, nil
		}

		_, err := deps.service.MarkArrival(ctx, attendance.MarkRequest{
			UserID: userID,
			Date:   "2026-08-28",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrDateExcused)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("bad date", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.MarkArrival(ctx, attendance.MarkRequest{
			UserID: userID,
			Date:   "28-08-2026",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
	})
}

func TestAttendanceService_MarkExit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("success computes worked hours", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		login := time.Now().Add(-8 * time.Hour)
		deps.repo.findByUserAndDateFn = func(ctx context.Context, uid string, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{
				ID:        uuid.New(),
				UserID:    uuid.MustParse(userID),
				Date:      date,
				Status:    attendance.StatusPresent,
				LoginTime: &login,
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, a *attendance.Attendance) error {
			assert.NotNil(t, a.LogoutTime)
			assert.NotNil(t, a.WorkingHours)
			return nil
		}

		resp, err := deps.service.MarkExit(ctx, attendance.MarkRequest{
			UserID: userID,
			Date:   "2026-08-28",
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp.WorkingHours)
		assert.InDelta(t, 8.0, *resp.WorkingHours, 0.01)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("no open record", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.MarkExit(ctx, attendance.MarkRequest{
			UserID: userID,
			Date:   "2026-08-28",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrNoOpenRecord)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("already exited", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		login := time.Now().Add(-9 * time.Hour)
		logout := time.Now().Add(-time.Hour)
		deps.repo.findByUserAndDateFn = func(ctx context.Context, uid string, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{
				UserID:     uuid.MustParse(userID),
				Date:       date,
				Status:     attendance.StatusPresent,
				LoginTime:  &login,
				LogoutTime: &logout,
			}, nil
		}

		_, err := deps.service.MarkExit(ctx, attendance.MarkRequest{
			UserID: userID,
			Date:   "2026-08-28",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyExited)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAttendanceService_MarkExcused(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("creates an excused record", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.createFn = func(ctx context.Context, a *attendance.Attendance) error {
			assert.Equal(t, attendance.StatusExcused, a.Status)
			assert.Nil(t, a.LoginTime)
			return nil
		}

		err := deps.service.MarkExcused(ctx, userID, "2026-08-28")

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("leaves a clocked-in day untouched", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		login := time.Now()
		updated := false
		deps.repo.findByUserAndDateFn = func(ctx context.Context, uid string, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{
				UserID:    uuid.MustParse(userID),
				Date:      date,
				Status:    attendance.StatusPresent,
				LoginTime: &login,
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, a *attendance.Attendance) error {
			updated = true
			return nil
		}

		err := deps.service.MarkExcused(ctx, userID, "2026-08-28")

		assert.NoError(t, err)
		assert.False(t, updated)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("upgrades an absent record", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByUserAndDateFn = func(ctx context.Context, uid string, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{
				UserID: uuid.MustParse(userID),
				Date:   date,
				Status: attendance.StatusAbsent,
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, a *attendance.Attendance) error {
			assert.Equal(t, attendance.StatusExcused, a.Status)
			return nil
		}

		err := deps.service.MarkExcused(ctx, userID, "2026-08-28")

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAttendanceService_GetAllEmployees(t *testing.T) {
	ctx := context.Background()

	t.Run("employees without records get an empty slice", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		idle := user.User{ID: uuid.New(), Username: "idle", Email: "idle@example.com", Role: "user"}
		busy := user.User{ID: uuid.New(), Username: "busy", Email: "busy@example.com", Role: "user"}

		deps.users.findAllFn = func(ctx context.Context) ([]user.User, error) {
			return []user.User{idle, busy}, nil
		}
		deps.repo.findAllSinceFn = func(ctx context.Context, since time.Time) ([]attendance.Attendance, error) {
			hours := 8.0
			return []attendance.Attendance{{
				ID:           uuid.New(),
				UserID:       busy.ID,
				Date:         time.Now(),
				Status:       attendance.StatusPresent,
				WorkingHours: &hours,
			}}, nil
		}

		resp, err := deps.service.GetAllEmployees(ctx, 30)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "idle", resp[0].User.Username)
		assert.NotNil(t, resp[0].Attendance)
		assert.Empty(t, resp[0].Attendance)
		assert.Len(t, resp[1].Attendance, 1)
	})
}
