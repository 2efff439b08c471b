package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	attendanceerrors "go-attend/internal/attendance/errors"
	"go-attend/internal/events"
	"go-attend/internal/messaging/kafka"
	"go-attend/internal/shared/contextutil"
	"go-attend/internal/shared/dateutil"
	"go-attend/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	GetHistory(ctx context.Context, userID string, days int) (HistoryResponse, error)
	GetAllEmployees(ctx context.Context, days int) ([]EmployeeAttendance, error)
	MarkArrival(ctx context.Context, req MarkRequest) (RecordResponse, error)
	MarkExit(ctx context.Context, req MarkRequest) (RecordResponse, error)
	MarkExcused(ctx context.Context, userID, dateKey string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	users  user.Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, users user.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, users, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	users user.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		users:  users,
		outbox: outboxRepo,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) GetHistory(ctx context.Context, userID string, days int) (HistoryResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return HistoryResponse{}, attendanceerrors.ErrInvalidUserID
	}

	now := s.now()
	since := now.AddDate(0, 0, -(days - 1))
	rows, err := s.repo.FindByUserSince(ctx, userID, since)
	if err != nil {
		return HistoryResponse{}, err
	}

	resp := HistoryResponse{
		Summary:    BuildSummary(rows, now, days),
		Attendance: make([]RecordResponse, len(rows)),
	}
	for i, r := range rows {
		resp.Attendance[i] = mapToResponse(r)
	}
	return resp, nil
}

func (s *service) GetAllEmployees(ctx context.Context, days int) ([]EmployeeAttendance, error) {
	now := s.now()
	since := now.AddDate(0, 0, -(days - 1))

	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.FindAllSince(ctx, since)
	if err != nil {
		return nil, err
	}

	byUser := make(map[string][]RecordResponse, len(users))
	for _, r := range rows {
		key := r.UserID.String()
		byUser[key] = append(byUser[key], mapToResponse(r))
	}

	// Every employee appears, including those with no records in the window.
	resp := make([]EmployeeAttendance, 0, len(users))
	for _, u := range users {
		records := byUser[u.ID.String()]
		if records == nil {
			records = []RecordResponse{}
		}
		resp = append(resp, EmployeeAttendance{
			User: user.UserResponse{
				ID:       u.ID.String(),
				Username: u.Username,
				Email:    u.Email,
				Role:     u.Role,
			},
			Attendance: records,
		})
	}
	return resp, nil
}

func (s *service) MarkArrival(ctx context.Context, req MarkRequest) (RecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("mark arrival requested",
		zap.String("request_id", rid),
		zap.String("user_id", req.UserID),
		zap.String("date", req.Date),
	)

	now := s.now()
	date, err := s.resolveDate(req.Date, now)
	if err != nil {
		return RecordResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByUserAndDate(ctx, req.UserID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return RecordResponse{}, err
	}
	if err == nil {
		if existing.Status == StatusExcused {
			return RecordResponse{}, attendanceerrors.ErrDateExcused
		}
		return RecordResponse{}, attendanceerrors.ErrAlreadyArrived
	}

	row := &Attendance{
		ID:        uuid.New(),
		UserID:    uuid.MustParse(req.UserID),
		Date:      date,
		Status:    StatusPresent,
		LoginTime: &now,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return RecordResponse{}, err
	}
	if err := s.enqueueEvent(ctx, tx, rid, events.EventAttendanceArrival, row); err != nil {
		return RecordResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return RecordResponse{}, err
	}

	s.logger.Info("arrival marked",
		zap.String("user_id", req.UserID),
		zap.String("date", dateutil.LocalKey(date)),
	)
	return mapToResponse(*row), nil
}

func (s *service) MarkExit(ctx context.Context, req MarkRequest) (RecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	now := s.now()
	date, err := s.resolveDate(req.Date, now)
	if err != nil {
		return RecordResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByUserAndDate(ctx, req.UserID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecordResponse{}, attendanceerrors.ErrNoOpenRecord
		}
		return RecordResponse{}, err
	}
	if row.LoginTime == nil {
		return RecordResponse{}, attendanceerrors.ErrNoOpenRecord
	}
	if row.LogoutTime != nil {
		return RecordResponse{}, attendanceerrors.ErrAlreadyExited
	}

	row.LogoutTime = &now
	hours := dateutil.Hours(*row.LoginTime, now)
	row.WorkingHours = &hours

	if err := qtx.Update(ctx, row); err != nil {
		return RecordResponse{}, err
	}
	if err := s.enqueueEvent(ctx, tx, rid, events.EventAttendanceExit, row); err != nil {
		return RecordResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return RecordResponse{}, err
	}

	s.logger.Info("exit marked",
		zap.String("user_id", req.UserID),
		zap.String("date", dateutil.LocalKey(date)),
		zap.Float64("working_hours", hours),
	)
	return mapToResponse(*row), nil
}

// MarkExcused upserts an Excused record for the given day. Called by the
// excuse module when a request is approved; an open Present record for the
// day is left alone so worked time is never silently erased.
func (s *service) MarkExcused(ctx context.Context, userID, dateKey string) error {
	date, err := dateutil.ParseKey(dateKey)
	if err != nil {
		return attendanceerrors.ErrInvalidDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByUserAndDate(ctx, userID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil {
		if existing.LoginTime != nil {
			return nil
		}
		existing.Status = StatusExcused
		if err := qtx.Update(ctx, existing); err != nil {
			return err
		}
		return tx.Commit()
	}

	row := &Attendance{
		ID:     uuid.New(),
		UserID: uuid.MustParse(userID),
		Date:   date,
		Status: StatusExcused,
	}
	if err := qtx.Create(ctx, row); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) resolveDate(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return dateutil.ParseKey(dateutil.LocalKey(now))
	}
	date, err := dateutil.ParseKey(raw)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDate
	}
	return date, nil
}

func (s *service) enqueueEvent(
	ctx context.Context,
	tx *sql.Tx,
	requestID, eventType string,
	row *Attendance,
) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.AttendanceMarkedEvent{
		EventType:    eventType,
		UserID:       row.UserID.String(),
		Date:         dateutil.LocalKey(row.Date),
		WorkingHours: row.WorkingHours,
		OccurredAt:   s.now(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     requestID,
		AggregateType: "attendance",
		AggregateID:   row.ID.String(),
		EventType:     eventType,
		Topic:         events.AttendanceMarkedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(a Attendance) RecordResponse {
	resp := RecordResponse{
		Date:         a.Date.Format(dateutil.DateLayout),
		Status:       a.Status,
		WorkingHours: a.WorkingHours,
	}
	if a.LoginTime != nil {
		v := a.LoginTime.Format(time.RFC3339)
		resp.LoginTime = &v
	}
	if a.LogoutTime != nil {
		v := a.LogoutTime.Format(time.RFC3339)
		resp.LogoutTime = &v
	}
	return resp
}
