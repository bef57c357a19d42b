package chat

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// DefaultSessionTTL はアクセスのないチャットセッションを破棄するまでの時間です。
const DefaultSessionTTL = 30 * time.Minute

// ErrInvalidSessionID はセッション ID が UUID 形式でない場合に返されます。
var ErrInvalidSessionID = errors.New("invalid chat session id")

// Store は訪問者ごとの Assistant をセッション ID で管理します。
type Store struct {
	sessions     *cache.Cache
	group        singleflight.Group
	newAssistant func() *Assistant
}

// NewStore は Store を初期化します。ttl が 0 以下の場合は DefaultSessionTTL を使います。
func NewStore(ttl time.Duration, factory func() *Assistant) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Store{
		sessions:     cache.New(ttl, ttl*2),
		newAssistant: factory,
	}
}

// GetOrCreate は ID に対応する Assistant を返します。
// ID が空の場合は新しい ID を発行します。同じ ID への同時アクセスでも Assistant は1つだけ作られます。
func (s *Store) GetOrCreate(id string) (string, *Assistant, error) {
	if id == "" {
		id = uuid.NewString()
	} else if _, err := uuid.Parse(id); err != nil {
		return "", nil, fmt.Errorf("%w: %s", ErrInvalidSessionID, id)
	}

	if a, ok := s.Get(id); ok {
		return id, a, nil
	}

	v, err, _ := s.group.Do(id, func() (interface{}, error) {
		if a, ok := s.Get(id); ok {
			return a, nil
		}
		a := s.newAssistant()
		s.sessions.Set(id, a, cache.DefaultExpiration)
		return a, nil
	})
	if err != nil {
		return "", nil, err
	}

	a, ok := v.(*Assistant)
	if !ok {
		return "", nil, fmt.Errorf("unexpected return type from singleflight: %T", v)
	}
	return id, a, nil
}

// Get は ID に対応する Assistant を返し、有効期限を延長します。
func (s *Store) Get(id string) (*Assistant, bool) {
	v, ok := s.sessions.Get(id)
	if !ok {
		return nil, false
	}
	a, ok := v.(*Assistant)
	if !ok {
		return nil, false
	}
	s.sessions.Set(id, a, cache.DefaultExpiration)
	return a, true
}

// Delete はセッションを破棄します。
func (s *Store) Delete(id string) {
	s.sessions.Delete(id)
}

// Len は有効なセッション数を返します。
func (s *Store) Len() int {
	return s.sessions.ItemCount()
}
