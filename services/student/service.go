package student

import (
	"context"
	"errors"
	"fmt"

	"tutorly/database/repository"
	"tutorly/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrStudentNotFound = errors.New("student not found")

// DefaultStudentService is the production roster service.
type DefaultStudentService struct {
	Repo   repository.StateRepository
	Logger *zap.Logger
}

func NewStudentService(repo repository.StateRepository, logger *zap.Logger) *DefaultStudentService {
	return &DefaultStudentService{Repo: repo, Logger: logger}
}

func (s *DefaultStudentService) List(ctx context.Context) []models.Student {
	return s.Repo.Students(ctx)
}

func (s *DefaultStudentService) Get(ctx context.Context, id string) (models.Student, error) {
	for _, st := range s.Repo.Students(ctx) {
		if st.ID == id {
			return st, nil
		}
	}
	return models.Student{}, ErrStudentNotFound
}

func (s *DefaultStudentService) Add(ctx context.Context, st models.Student) (models.Student, error) {
	if st.ID == "" {
		st.ID = "student-" + uuid.NewString()
	}
	if st.Status == "" {
		st.Status = models.StudentActive
	}

	students := s.Repo.Students(ctx)
	for _, existing := range students {
		if existing.ID == st.ID {
			return models.Student{}, fmt.Errorf("student %q already exists", st.ID)
		}
	}
	students = append(students, st)
	if err := s.Repo.SaveStudents(ctx, students); err != nil {
		return models.Student{}, fmt.Errorf("saving students: %w", err)
	}
	s.Logger.Info("student added", zap.String("id", st.ID), zap.String("name", st.Name))
	return st, nil
}

func (s *DefaultStudentService) Update(ctx context.Context, id string, update Update) (models.Student, error) {
	students := s.Repo.Students(ctx)
	for i := range students {
		if students[i].ID != id {
			continue
		}
		st := &students[i]
		if update.Initials != nil {
			st.Initials = *update.Initials
		}
		if update.Name != nil {
			st.Name = *update.Name
		}
		if update.Subject != nil {
			st.Subject = *update.Subject
		}
		if update.Progress != nil {
			st.Progress = *update.Progress
		}
		if update.NextSession != nil {
			st.NextSession = *update.NextSession
		}
		if update.Status != nil {
			st.Status = *update.Status
		}
		if update.Color != nil {
			st.Color = *update.Color
		}
		if update.WeeklySchedule != nil {
			st.WeeklySchedule = *update.WeeklySchedule
		}
		if update.PricePerHour != nil {
			st.PricePerHour = *update.PricePerHour
		}
		if err := s.Repo.SaveStudents(ctx, students); err != nil {
			return models.Student{}, fmt.Errorf("saving students: %w", err)
		}
		return *st, nil
	}
	return models.Student{}, ErrStudentNotFound
}

func (s *DefaultStudentService) Remove(ctx context.Context, id string) error {
	students := s.Repo.Students(ctx)
	for i, st := range students {
		if st.ID == id {
			students = append(students[:i], students[i+1:]...)
			if err := s.Repo.SaveStudents(ctx, students); err != nil {
				return fmt.Errorf("saving students: %w", err)
			}
			s.Logger.Info("student removed", zap.String("id", id))
			return nil
		}
	}
	return ErrStudentNotFound
}
