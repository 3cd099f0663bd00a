package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/raslen-der12/event-api-sub000/internal/matching"
	"github.com/raslen-der12/event-api-sub000/internal/models"
	"github.com/raslen-der12/event-api-sub000/internal/repository"
	"gorm.io/gorm"
)

var ErrActorNotFound = errors.New("actor profile not found")

// DefaultSuggestionLimit caps the result size when the caller does not ask
// for a specific count.
const DefaultSuggestionLimit = 10

// Suggestion is one ranked candidate.
type Suggestion struct {
	ActorID  string           `json:"actor_id"`
	Role     models.ActorRole `json:"role"`
	FullName string           `json:"full_name"`
	Headline string           `json:"headline,omitempty"`
	Score    float64          `json:"score"`
}

type SuggestOptions struct {
	Limit      int
	NameFilter string
}

// SuggestService ranks the other actors of the requester's event by mutual
// offer/need fit. It is read-only and stateless; determinism of the ranking
// is its only ordering requirement.
type SuggestService interface {
	Suggest(ctx context.Context, actorID string, opts SuggestOptions) ([]Suggestion, error)
}

type suggestService struct {
	profiles    repository.ProfileProvider
	connections repository.ConnectionRepository
}

func NewSuggestService(profiles repository.ProfileProvider, connections repository.ConnectionRepository) SuggestService {
	return &suggestService{profiles: profiles, connections: connections}
}

func (s *suggestService) Suggest(ctx context.Context, actorID string, opts SuggestOptions) ([]Suggestion, error) {
	me, err := s.profiles.Resolve(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("actor %s: %w", actorID, ErrActorNotFound)
		}
		return nil, fmt.Errorf("resolve actor: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	excluded, err := s.exclusions(ctx, me)
	if err != nil {
		return nil, err
	}

	// Text search and scored ranking are mutually exclusive modes.
	if opts.NameFilter != "" {
		return s.searchByName(ctx, me, opts.NameFilter, limit, excluded)
	}

	candidates, err := s.profiles.ListByEvent(ctx, me.EventID)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	myProfile := matching.NewProfile(me.LookingFor, me.Offering, me.Industries, me.Regions, me.Languages)

	// Exclusion happens before scoring so an excluded actor never consumes a
	// result slot. The primary pass honors open-to-meetings; the remainder is
	// kept aside to top up short results.
	var primary, fallback []Suggestion
	for i := range candidates {
		cand := &candidates[i]
		if _, skip := excluded[cand.ActorID]; skip {
			continue
		}
		sug := Suggestion{
			ActorID:  cand.ActorID,
			Role:     cand.Role,
			FullName: cand.FullName,
			Headline: cand.Headline,
			Score: matching.Score(myProfile, matching.NewProfile(
				cand.LookingFor, cand.Offering, cand.Industries, cand.Regions, cand.Languages,
			)),
		}
		if cand.OpenToMeetings {
			primary = append(primary, sug)
		} else {
			fallback = append(fallback, sug)
		}
	}

	sortByScore(primary)
	result := primary
	if len(result) < limit {
		sortByScore(fallback)
		result = append(result, fallback...)
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *suggestService) searchByName(ctx context.Context, me *models.ActorProfile, name string, limit int, excluded map[string]struct{}) ([]Suggestion, error) {
	matches, err := s.profiles.SearchByName(ctx, me.EventID, name)
	if err != nil {
		return nil, fmt.Errorf("search by name: %w", err)
	}

	var result []Suggestion
	for i := range matches {
		cand := &matches[i]
		if _, skip := excluded[cand.ActorID]; skip {
			continue
		}
		result = append(result, Suggestion{
			ActorID:  cand.ActorID,
			Role:     cand.Role,
			FullName: cand.FullName,
			Headline: cand.Headline,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return strings.ToLower(result[i].FullName) < strings.ToLower(result[j].FullName)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// exclusions collects the requester itself, its active contacts, and blocked
// actors in either direction.
func (s *suggestService) exclusions(ctx context.Context, me *models.ActorProfile) (map[string]struct{}, error) {
	contacts, err := s.connections.ActiveContactIDs(ctx, me.EventID, me.ActorID)
	if err != nil {
		return nil, fmt.Errorf("load contacts: %w", err)
	}
	blocked, err := s.connections.BlockedIDs(ctx, me.ActorID)
	if err != nil {
		return nil, fmt.Errorf("load blocks: %w", err)
	}

	excluded := make(map[string]struct{}, len(contacts)+len(blocked)+1)
	excluded[me.ActorID] = struct{}{}
	for id := range contacts {
		excluded[id] = struct{}{}
	}
	for id := range blocked {
		excluded[id] = struct{}{}
	}
	return excluded, nil
}

// sortByScore orders by descending score, breaking ties by case-insensitive
// name so repeated calls over the same data return identical rankings.
func sortByScore(list []Suggestion) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Score != list[j].Score {
			return list[i].Score > list[j].Score
		}
		return strings.ToLower(list[i].FullName) < strings.ToLower(list[j].FullName)
	})
}
