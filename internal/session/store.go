package session

import (
	"sync"
)

// Store хранит сессии всех вошедших пользователей в памяти процесса.
// Сессии разных пользователей изолированы; выход удаляет сессию целиком.
type Store struct {
	mu       sync.RWMutex
	sessions map[uint]*Session
}

// NewStore создает пустое хранилище сессий
func NewStore() *Store {
	return &Store{
		sessions: make(map[uint]*Session),
	}
}

// GetOrCreate возвращает сессию пользователя, создавая ее при первом обращении.
// Создание при первом обращении покрывает и вход, и перезапуск сервера
// с еще валидным токеном: в обоих случаях пользователь начинает с Idle.
func (s *Store) GetOrCreate(userID uint, username string) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[userID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[userID]; ok {
		return sess
	}
	sess = New(userID, username)
	s.sessions[userID] = sess
	return sess
}

// Get возвращает сессию пользователя, если она есть
func (s *Store) Get(userID uint) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

// Delete удаляет сессию пользователя (выход из системы)
func (s *Store) Delete(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
