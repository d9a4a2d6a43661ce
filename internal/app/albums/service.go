// Package albums coordinates album workflows, including the cache-aside
// like counter. The cached count is a derived value: writes invalidate
// it and the next read recomputes from the store.
package albums

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"soundcrate/internal/apperr"
	"soundcrate/internal/cache"
	"soundcrate/internal/store"
)

// ErrAlreadyLiked signals a duplicate like for the (user, album) pair.
var ErrAlreadyLiked = apperr.Invariant("album already liked")

// likeCountTTL bounds how long a stale count can survive a missed
// invalidation.
const likeCountTTL = 30 * time.Minute

// Store captures the persistence needs for album workflows.
type Store interface {
	CreateAlbum(ctx context.Context, name string, year int) (string, error)
	GetAlbum(ctx context.Context, id string) (*store.Album, error)
	UpdateAlbum(ctx context.Context, id, name string, year int) error
	SetAlbumCover(ctx context.Context, id, url string) error
	DeleteAlbum(ctx context.Context, id string) error
	AlbumExists(ctx context.Context, id string) error

	HasAlbumLike(ctx context.Context, userID, albumID string) (bool, error)
	AddAlbumLike(ctx context.Context, userID, albumID string) (string, error)
	RemoveAlbumLike(ctx context.Context, userID, albumID string) error
	CountAlbumLikes(ctx context.Context, albumID string) (int, error)
}

// Provenance records whether a like count came from the cache or was
// freshly computed.
type Provenance string

const (
	ProvenanceCache  Provenance = "cache"
	ProvenanceServer Provenance = "server"
)

// LikeCount is an album's like total tagged with its provenance.
type LikeCount struct {
	Count  int
	Source Provenance
}

// Service coordinates album-related operations.
type Service interface {
	Create(ctx context.Context, name string, year int) (string, error)
	Get(ctx context.Context, id string) (*store.Album, error)
	Update(ctx context.Context, id, name string, year int) error
	SetCover(ctx context.Context, id, url string) error
	Delete(ctx context.Context, id string) error

	Like(ctx context.Context, userID, albumID string) error
	Unlike(ctx context.Context, userID, albumID string) error
	LikeCount(ctx context.Context, albumID string) (LikeCount, error)
}

type service struct {
	store Store
	cache cache.Cache
}

// New constructs a Service over the store and the like-count cache.
func New(st Store, c cache.Cache) Service {
	return &service{store: st, cache: c}
}

func likeKey(albumID string) string {
	return "likes:" + albumID
}

func (s *service) Create(ctx context.Context, name string, year int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.store.CreateAlbum(ctx, name, year)
}

func (s *service) Get(ctx context.Context, id string) (*store.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetAlbum(ctx, id)
}

func (s *service) Update(ctx context.Context, id, name string, year int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.UpdateAlbum(ctx, id, name, year)
}

func (s *service) SetCover(ctx context.Context, id, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.SetAlbumCover(ctx, id, url)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.DeleteAlbum(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// Like records one like per user per album. Uniqueness is enforced by
// check-then-insert; the schema carries no constraint for it.
func (s *service) Like(ctx context.Context, userID, albumID string) error {
	if err := s.store.AlbumExists(ctx, albumID); err != nil {
		return err
	}

	liked, err := s.store.HasAlbumLike(ctx, userID, albumID)
	if err != nil {
		return err
	}
	if liked {
		return ErrAlreadyLiked
	}

	if _, err := s.store.AddAlbumLike(ctx, userID, albumID); err != nil {
		return err
	}

	s.invalidate(ctx, albumID)
	return nil
}

func (s *service) Unlike(ctx context.Context, userID, albumID string) error {
	if err := s.store.AlbumExists(ctx, albumID); err != nil {
		return err
	}
	if err := s.store.RemoveAlbumLike(ctx, userID, albumID); err != nil {
		return err
	}

	s.invalidate(ctx, albumID)
	return nil
}

// LikeCount serves the cached count when present; otherwise it verifies
// the album, recomputes from the like rows and repopulates the cache.
// Any cache failure is treated as a miss.
func (s *service) LikeCount(ctx context.Context, albumID string) (LikeCount, error) {
	if val, err := s.cache.Get(ctx, likeKey(albumID)); err == nil {
		if count, convErr := strconv.Atoi(val); convErr == nil {
			return LikeCount{Count: count, Source: ProvenanceCache}, nil
		}
	}

	// Guards against caching counts for nonexistent albums.
	if err := s.store.AlbumExists(ctx, albumID); err != nil {
		return LikeCount{}, err
	}

	count, err := s.store.CountAlbumLikes(ctx, albumID)
	if err != nil {
		return LikeCount{}, err
	}

	if err := s.cache.Set(ctx, likeKey(albumID), strconv.Itoa(count), likeCountTTL); err != nil {
		log.Warn().Err(err).Str("album_id", albumID).Msg("cache like count")
	}

	return LikeCount{Count: count, Source: ProvenanceServer}, nil
}

// invalidate drops the cached count instead of updating it in place, so
// concurrent likes and unlikes cannot race the cached value. A failed
// delete leaves at worst one stale read until the TTL expires.
func (s *service) invalidate(ctx context.Context, albumID string) {
	if err := s.cache.Delete(ctx, likeKey(albumID)); err != nil {
		log.Warn().Err(err).Str("album_id", albumID).Msg("invalidate like count")
	}
}
