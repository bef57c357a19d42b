package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/shouni/go-coloring-kit/pkg/domain"
)

// DefaultBookTTL は生成済みブックをメモリに保持する時間です。
const DefaultBookTTL = time.Hour

// BookStore は生成済みの塗り絵ブックを ID で保持する期限付きのメモリストアです。
type BookStore struct {
	books *cache.Cache
}

// NewBookStore は BookStore を初期化します。ttl が 0 以下の場合は DefaultBookTTL を使います。
func NewBookStore(ttl time.Duration) *BookStore {
	if ttl <= 0 {
		ttl = DefaultBookTTL
	}
	return &BookStore{books: cache.New(ttl, ttl*2)}
}

// Save はブックを保存し、ID を返します。ID が未設定の場合は新しく発行します。
func (s *BookStore) Save(book *domain.ColoringBook) string {
	if book.ID == "" {
		book.ID = uuid.NewString()
	}
	s.books.Set(book.ID, book, cache.DefaultExpiration)
	return book.ID
}

// Get は ID に対応するブックを返します。存在しない場合は domain.ErrBookNotFound です。
func (s *BookStore) Get(id string) (*domain.ColoringBook, error) {
	v, ok := s.books.Get(id)
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	book, ok := v.(*domain.ColoringBook)
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	return book, nil
}
