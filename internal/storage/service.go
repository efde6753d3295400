package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrResultNotFound = errors.New("результат анкеты не найден")

const (
	filePrefix = "interview_"
	fileExt    = ".json"
)

// Store хранит результаты анкет в JSON файлах
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// SaveResult сохраняет результат анкеты в JSON файл
func (s *Store) SaveResult(result *InterviewResult) error {
	if result.InterviewID == "" {
		return fmt.Errorf("у результата нет interview_id")
	}

	// Создаем директорию если её нет
	err := os.MkdirAll(s.dir, 0755)
	if err != nil {
		return fmt.Errorf("ошибка создания директории %s: %w", s.dir, err)
	}

	path := s.path(result.InterviewID)

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации результата: %w", err)
	}

	// Пишем во временный файл и переименовываем, чтобы не оставлять обрезанный JSON
	tmp := path + ".tmp"
	err = os.WriteFile(tmp, jsonData, 0644)
	if err != nil {
		return fmt.Errorf("ошибка записи файла %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("ошибка записи файла %s: %w", path, err)
	}

	return nil
}

// LoadResult загружает результат анкеты из JSON файла
func (s *Store) LoadResult(interviewID string) (*InterviewResult, error) {
	if !validID(interviewID) {
		return nil, ErrResultNotFound
	}

	path := s.path(interviewID)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", path, err)
	}

	var result InterviewResult
	err = json.Unmarshal(data, &result)
	if err != nil {
		return nil, fmt.Errorf("ошибка десериализации JSON: %w", err)
	}

	return &result, nil
}

// ListResults возвращает отсортированный список ID сохраненных анкет
func (s *Store) ListResults() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения директории %s: %w", s.dir, err)
	}

	results := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != fileExt || !strings.HasPrefix(name, filePrefix) {
			continue
		}
		results = append(results, strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileExt))
	}
	sort.Strings(results)

	return results, nil
}

func (s *Store) path(interviewID string) string {
	return filepath.Join(s.dir, filePrefix+interviewID+fileExt)
}

// validID отсекает ID с разделителями пути
func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && !strings.Contains(id, "..")
}
