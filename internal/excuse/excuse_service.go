package excuse

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-attend/internal/events"
	excuseerrors "go-attend/internal/excuse/errors"
	"go-attend/internal/messaging/kafka"
	"go-attend/internal/shared/contextutil"
	"go-attend/internal/shared/dateutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AttendanceMarker records an excused day once an excuse is approved.
type AttendanceMarker interface {
	MarkExcused(ctx context.Context, userID, dateKey string) error
}

//go:generate mockgen -source=excuse_service.go -destination=mock/excuse_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID, username, email string, req CreateExcuseRequest) (ExcuseResponse, error)
	GetMine(ctx context.Context, userID string) ([]ExcuseResponse, error)
	GetPending(ctx context.Context) ([]ExcuseResponse, error)
	Decide(ctx context.Context, actorID, id, status string) (ExcuseResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	marker AttendanceMarker
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, marker AttendanceMarker, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, marker, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	marker AttendanceMarker,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("excuse.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("excuse.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		marker: marker,
		outbox: outboxRepo,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, userID, username, email string, req CreateExcuseRequest) (ExcuseResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create excuse requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("date", req.Date),
	)

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return ExcuseResponse{}, excuseerrors.ErrInvalidUserID
	}
	if strings.TrimSpace(req.Message) == "" {
		return ExcuseResponse{}, excuseerrors.ErrMessageRequired
	}
	date, err := dateutil.ParseKey(req.Date)
	if err != nil {
		return ExcuseResponse{}, excuseerrors.ErrInvalidDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create excuse begin tx failed", zap.Error(err))
		return ExcuseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pending, err := qtx.HasPendingForDate(ctx, userID, date)
	if err != nil {
		s.logger.Error("create excuse pending check failed", zap.Error(err))
		return ExcuseResponse{}, err
	}
	if pending {
		return ExcuseResponse{}, excuseerrors.ErrDuplicatePending
	}

	e := &Excuse{
		ID:       uuid.New(),
		UserID:   userUUID,
		Username: username,
		Email:    email,
		Date:     date,
		Message:  strings.TrimSpace(req.Message),
		Status:   StatusPending,
	}
	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create excuse persist failed", zap.Error(err))
		return ExcuseResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create excuse commit failed", zap.Error(err))
		return ExcuseResponse{}, err
	}
	s.logger.Info("create excuse success",
		zap.String("excuse_id", e.ID.String()),
		zap.String("user_id", userID),
	)
	return mapToResponse(*e), nil
}

func (s *service) GetMine(ctx context.Context, userID string) ([]ExcuseResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, excuseerrors.ErrInvalidUserID
	}
	rows, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetPending(ctx context.Context) ([]ExcuseResponse, error) {
	rows, err := s.repo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Decide(ctx context.Context, actorID, id, status string) (ExcuseResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide excuse requested",
		zap.String("request_id", rid),
		zap.String("excuse_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", status),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ExcuseResponse{}, excuseerrors.ErrInvalidUserID
	}
	if _, err := uuid.Parse(id); err != nil {
		return ExcuseResponse{}, excuseerrors.ErrInvalidExcuseID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide excuse begin tx failed", zap.Error(err))
		return ExcuseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExcuseResponse{}, excuseerrors.ErrExcuseNotFound
		}
		return ExcuseResponse{}, err
	}
	if e.Status != StatusPending {
		s.logger.Warn("decide excuse already terminal",
			zap.String("excuse_id", id),
			zap.String("current_status", e.Status),
		)
		return ExcuseResponse{}, excuseerrors.ErrAlreadyDecided
	}

	now := s.now()
	e.Status = status
	e.DecidedBy = &actorUUID
	e.DecidedAt = &now

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("decide excuse persist failed",
			zap.String("excuse_id", id),
			zap.Error(err),
		)
		return ExcuseResponse{}, err
	}

	if err := s.enqueueEvent(ctx, tx, rid, e); err != nil {
		s.logger.Error("decide excuse outbox enqueue failed", zap.Error(err))
		return ExcuseResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide excuse commit failed", zap.Error(err))
		return ExcuseResponse{}, err
	}
	s.logger.Info("decide excuse success",
		zap.String("excuse_id", id),
		zap.String("status", status),
	)

	// Approval writes the excused day after the decision is durable. A
	// failure here leaves the decision standing and is surfaced in logs;
	// the dashboard reconciles on the next history read.
	if status == StatusApproved && s.marker != nil {
		if err := s.marker.MarkExcused(ctx, e.UserID.String(), dateutil.LocalKey(e.Date)); err != nil {
			s.logger.Error("mark excused day failed",
				zap.String("excuse_id", id),
				zap.String("user_id", e.UserID.String()),
				zap.Error(err),
			)
		}
	}

	return mapToResponse(*e), nil
}

func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, requestID string, e *Excuse) error {
	if s.outbox == nil {
		return nil
	}

	eventType := events.EventExcuseRejected
	if e.Status == StatusApproved {
		eventType = events.EventExcuseApproved
	}

	payload, err := json.Marshal(events.ExcuseDecidedEvent{
		EventType:  eventType,
		ExcuseID:   e.ID.String(),
		UserID:     e.UserID.String(),
		Date:       dateutil.LocalKey(e.Date),
		DecidedBy:  e.DecidedBy.String(),
		OccurredAt: s.now(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     requestID,
		AggregateType: "excuse",
		AggregateID:   e.ID.String(),
		EventType:     eventType,
		Topic:         events.ExcuseDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(e Excuse) ExcuseResponse {
	resp := ExcuseResponse{
		ID:       e.ID.String(),
		UserID:   e.UserID.String(),
		Username: e.Username,
		Email:    e.Email,
		Date:     e.Date.Format(dateutil.DateLayout),
		Message:  e.Message,
		Status:   e.Status,
	}
	if e.DecidedBy != nil {
		v := e.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if e.DecidedAt != nil {
		v := e.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(rows []Excuse) []ExcuseResponse {
	resp := make([]ExcuseResponse, len(rows))
	for i, e := range rows {
		resp[i] = mapToResponse(e)
	}
	return resp
}
