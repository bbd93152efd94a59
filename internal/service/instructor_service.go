package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/repository"
	"edu_platform_backend/internal/schema"
	"edu_platform_backend/internal/util"
	"edu_platform_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InstructorService struct {
	Repo *repository.InstructorRepository
}

func NewInstructorService(repo *repository.InstructorRepository) *InstructorService {
	return &InstructorService{Repo: repo}
}

// emailAvailable 邮箱不区分大小写唯一
func (s *InstructorService) emailAvailable(ctx context.Context, email, excludeID string) error {
	existing, err := s.Repo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID == excludeID {
		return nil
	}
	return util.ErrEmailTaken
}

func (s *InstructorService) Create(ctx context.Context, in *model.Instructor) (*model.Instructor, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := schema.Validate(in); err != nil {
		return nil, err
	}
	if err := s.emailAvailable(ctx, in.Email, ""); err != nil {
		return nil, err
	}
	in.ID = ""
	if err := s.Repo.Create(ctx, in); err != nil {
		return nil, fmt.Errorf("create instructor: %w", err)
	}
	logger.Log.Info("Instructor created", zap.String("instructorId", in.ID), zap.String("email", in.Email))
	return in, nil
}

func (s *InstructorService) Get(ctx context.Context, id string) (*model.Instructor, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *InstructorService) List(ctx context.Context, status model.InstructorStatus, expertise string, p model.Pagination) (*model.PageResult[model.Instructor], error) {
	if status != "" && !status.IsValid() {
		return nil, schema.ValidationErrors{{Field: "status", Rule: "enum", Message: fmt.Sprintf("unknown instructor status %q", status)}}
	}
	list, total, err := s.Repo.List(ctx, status, expertise, p)
	if err != nil {
		return nil, err
	}
	page := model.NewPageResult(list, total, p)
	return &page, nil
}

// Update 整体替换，统计字段 rating、totalStudents 由调用方维护
func (s *InstructorService) Update(ctx context.Context, id string, in *model.Instructor) (*model.Instructor, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := schema.Validate(in); err != nil {
		return nil, err
	}
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != existing.Email {
		if err := s.emailAvailable(ctx, in.Email, id); err != nil {
			return nil, err
		}
	}
	in.ID, in.CreatedAt = existing.ID, existing.CreatedAt
	if err := s.Repo.Save(ctx, in); err != nil {
		return nil, fmt.Errorf("update instructor: %w", err)
	}
	return in, nil
}

func (s *InstructorService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
