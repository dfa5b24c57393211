package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/store"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizRecord is the row shape of the quizzes table. Questions are stored as
// one JSONB document because quizzes are only ever replaced whole.
type QuizRecord struct {
	ID        string         `gorm:"primaryKey;size:36"`
	Title     string         `gorm:"not null;size:200"`
	Password  string         `gorm:"size:200"`
	Questions datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (QuizRecord) TableName() string {
	return "quizzes"
}

type QuizPostgreSQL struct {
	db *gorm.DB
}

func NewQuizPostgreSQL(db *gorm.DB) (store.RemoteStore, error) {
	if err := db.AutoMigrate(&QuizRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate quizzes table: %w", err)
	}
	return &QuizPostgreSQL{db: db}, nil
}

func (s *QuizPostgreSQL) Insert(ctx context.Context, quiz models.Quiz) (models.Quiz, error) {
	record, err := toRecord(quiz)
	if err != nil {
		return models.Quiz{}, err
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return models.Quiz{}, fmt.Errorf("failed to insert quiz: %w", err)
	}

	// Echo the stored row back, as the backend contract promises.
	var stored QuizRecord
	if err := s.db.WithContext(ctx).First(&stored, "id = ?", quiz.ID).Error; err != nil {
		return models.Quiz{}, fmt.Errorf("failed to read back inserted quiz: %w", err)
	}
	return fromRecord(stored)
}

func (s *QuizPostgreSQL) Update(ctx context.Context, id string, quiz models.Quiz) error {
	record, err := toRecord(quiz)
	if err != nil {
		return err
	}
	record.ID = id

	result := s.db.WithContext(ctx).Model(&QuizRecord{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":     record.Title,
		"password":  record.Password,
		"questions": record.Questions,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update quiz %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *QuizPostgreSQL) SelectAll(ctx context.Context) ([]models.Quiz, error) {
	var records []QuizRecord
	if err := s.db.WithContext(ctx).Order("created_at").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to select quizzes: %w", err)
	}

	quizzes := make([]models.Quiz, 0, len(records))
	for _, record := range records {
		quiz, err := fromRecord(record)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, nil
}

func toRecord(quiz models.Quiz) (QuizRecord, error) {
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return QuizRecord{}, fmt.Errorf("failed to marshal questions: %w", err)
	}
	return QuizRecord{
		ID:        quiz.ID,
		Title:     quiz.Title,
		Password:  quiz.Password,
		Questions: questions,
	}, nil
}

func fromRecord(record QuizRecord) (models.Quiz, error) {
	quiz := models.Quiz{
		ID:       record.ID,
		Title:    record.Title,
		Password: record.Password,
	}
	if err := json.Unmarshal(record.Questions, &quiz.Questions); err != nil {
		return models.Quiz{}, fmt.Errorf("failed to unmarshal questions for quiz %s: %w", record.ID, err)
	}
	return quiz, nil
}
