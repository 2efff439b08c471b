package rules

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	ruleserrors "go-attend/internal/rules/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	cacheKey = "rules:document"
	cacheTTL = 30 * time.Minute
)

//go:generate mockgen -source=rules_service.go -destination=mock/rules_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context) (RulesResponse, error)
	Update(ctx context.Context, actorID string, req UpdateRulesRequest) (RulesResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("rules.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rules.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Get(ctx context.Context) (RulesResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp RulesResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		doc, err := s.repo.Get(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Nothing published yet, serve an empty document.
				return RulesResponse{}, nil
			}
			return nil, err
		}

		resp := mapToResponse(doc)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, cacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return RulesResponse{}, err
	}
	return v.(RulesResponse), nil
}

func (s *service) Update(ctx context.Context, actorID string, req UpdateRulesRequest) (RulesResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RulesResponse{}, ruleserrors.ErrInvalidActorID
	}

	doc := &RulesDocument{
		ID:        1,
		Content:   req.Content,
		UpdatedBy: &actorUUID,
	}
	if err := s.repo.Upsert(ctx, doc); err != nil {
		s.logger.Error("update rules persist failed", zap.Error(err))
		return RulesResponse{}, err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Warn("rules cache invalidation failed",
				zap.String("cache_key", cacheKey),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("update rules success", zap.String("actor_id", actorID))
	return mapToResponse(doc), nil
}

func mapToResponse(doc *RulesDocument) RulesResponse {
	resp := RulesResponse{Content: doc.Content}
	if doc.UpdatedBy != nil {
		v := doc.UpdatedBy.String()
		resp.UpdatedBy = &v
	}
	if !doc.UpdatedAt.IsZero() {
		v := doc.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &v
	}
	return resp
}
