package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/peopledir/peopledir-api/internal/pkg/logger"
	"github.com/peopledir/peopledir-api/internal/pkg/token"
)

// BlockLister supplies the actor's outgoing block set for search exclusion
type BlockLister interface {
	ListBlockedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Service handles directory account business logic
type Service struct {
	repo   Repository
	cache  Cache // nil if Redis disabled
	tokens *token.Service
	blocks BlockLister
}

// NewService creates user service
func NewService(repo Repository, cache Cache, tokens *token.Service, blocks BlockLister) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		tokens: tokens,
		blocks: blocks,
	}
}

// SignUp creates a new account and issues its bearer token
func (s *Service) SignUp(ctx context.Context, req *SignUpRequest) (*SignUpResponse, error) {
	birthdate, err := time.Parse("2006-01-02", req.Birthdate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &User{
		ID:        uuid.New(),
		Name:      req.Name,
		Username:  req.Username,
		Birthdate: birthdate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Surname != "" {
		u.Surname = &req.Surname
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	tok, err := s.tokens.Generate(u.ID)
	if err != nil {
		return nil, err
	}

	return &SignUpResponse{User: NewUserResponse(u), Token: tok}, nil
}

// Current returns the caller's record via the cache-aside path: cache hit
// short-circuits the store; a miss reads the store and fills the cache.
// Absence is never cached.
func (s *Service) Current(ctx context.Context, userID uuid.UUID) (*User, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID)
		if err != nil {
			logger.FromContext(ctx).Warn().Err(err).Msg("user cache read failed, falling back to store")
		} else if cached != nil {
			return cached, nil
		}
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, u); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Msg("user cache fill failed")
		}
	}
	return u, nil
}

// Update applies a partial update to the caller's record and overwrites the
// cached snapshot so the change is visible immediately on the read path.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, req *UpdateRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Surname != nil {
		u.Surname = req.Surname
	}
	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Birthdate != nil {
		birthdate, err := time.Parse("2006-01-02", *req.Birthdate)
		if err != nil {
			return nil, err
		}
		u.Birthdate = birthdate
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	// Overwrite rather than invalidate: the read path is hot and the next
	// fetch should not pay a store round trip.
	if s.cache != nil {
		if err := s.cache.Set(ctx, u); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Msg("user cache refresh failed")
		}
	}
	return u, nil
}

// Delete removes the caller's account; the store cascades its block edges
func (s *Service) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, userID); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Msg("user cache evict failed")
		}
	}
	return nil
}

// List returns every account
func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

// Search returns users matching the options, never including the actor or
// anyone the actor has blocked.
func (s *Service) Search(ctx context.Context, actorID uuid.UUID, opts *SearchOptions) ([]*User, error) {
	blockedIDs, err := s.blocks.ListBlockedIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}

	bornAfter, bornBefore := birthdateWindow(opts.MinAge, opts.MaxAge, time.Now())

	filter := &SearchFilter{
		ExcludeIDs:       append(blockedIDs, actorID),
		UsernameFragment: opts.Username,
		BornAfter:        bornAfter,
		BornBefore:       bornBefore,
	}
	return s.repo.Search(ctx, filter)
}
