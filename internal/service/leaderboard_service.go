package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/curioscope-api/internal/domain/repository"
	"github.com/yourusername/curioscope-api/internal/handler/dto"
	apperrors "github.com/yourusername/curioscope-api/internal/pkg/errors"
)

const (
	// DefaultLeaderboardLimit — размер верхушки таблицы лидеров по умолчанию
	DefaultLeaderboardLimit = 10
	// MaxLeaderboardLimit ограничивает размер выборки
	MaxLeaderboardLimit = 100

	// Кэшируется только выборка размера по умолчанию: иных ключей
	// при сбросе кэша искать не приходится
	leaderboardCacheKey = "leaderboard:top"
	leaderboardCacheTTL = time.Minute
)

// LeaderboardService отдает верхушку таблицы лидеров с кэшированием в Redis
type LeaderboardService struct {
	scoreRepo repository.ScoreRepository
	cacheRepo repository.CacheRepository
}

func NewLeaderboardService(scoreRepo repository.ScoreRepository, cacheRepo repository.CacheRepository) *LeaderboardService {
	return &LeaderboardService{
		scoreRepo: scoreRepo,
		cacheRepo: cacheRepo,
	}
}

// Top возвращает limit лучших результатов, упорядоченных по убыванию очков;
// при равенстве очков раньше идет более ранняя запись
func (s *LeaderboardService) Top(limit int) ([]dto.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	if limit == DefaultLeaderboardLimit {
		var cached []dto.LeaderboardEntry
		err := s.cacheRepo.GetJSON(leaderboardCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[LeaderboardService] Ошибка чтения кэша: %v", err)
		}
	}

	scores, err := s.scoreRepo.Top(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(scores))
	for i, sc := range scores {
		entries = append(entries, dto.LeaderboardEntry{
			Rank:      i + 1,
			Username:  sc.Username,
			Score:     sc.Score,
			Timestamp: sc.Timestamp,
		})
	}

	if limit == DefaultLeaderboardLimit {
		if err := s.cacheRepo.SetJSON(leaderboardCacheKey, entries, leaderboardCacheTTL); err != nil {
			log.Printf("[LeaderboardService] Ошибка записи кэша: %v", err)
		}
	}
	return entries, nil
}

// ExportXLSX выгружает верхушку таблицы лидеров в книгу Excel
func (s *LeaderboardService) ExportXLSX(limit int) (*excelize.File, error) {
	entries, err := s.Top(limit)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Leaderboard"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []string{"Rank", "Username", "Score", "Timestamp"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, e := range entries {
		values := []interface{}{e.Rank, e.Username, e.Score, e.Timestamp.Format(time.RFC3339)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
