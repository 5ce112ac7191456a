package repository

import (
	"context"

	"tutorly/models"
)

func (r *DefaultStateRepo) Students(ctx context.Context) []models.Student {
	var students []models.Student
	r.loadJSON(ctx, KeyStudents, &students)
	return students
}

func (r *DefaultStateRepo) SaveStudents(ctx context.Context, students []models.Student) error {
	return r.saveJSON(ctx, KeyStudents, students)
}
