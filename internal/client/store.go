package client

import (
	"context"
	"slices"
	"sync"

	"github.com/01moynul/agencyhub/internal/models"
)

// Loading reports which collections have a fetch in flight.
type Loading struct {
	Plans    bool
	Projects bool
	Queries  bool
}

// Store caches the fetched collections. Mutations go to the API and then
// re-fetch the affected collection instead of patching local state.
type Store struct {
	client *Client

	mu       sync.RWMutex
	plans    []models.PricePlan
	projects []models.Project
	queries  []models.QueryWithPlan
	// in-flight fetch counts; a flag is only cleared by the last fetch out
	inflight struct{ plans, projects, queries int }
}

// NewStore creates an empty Store backed by c.
func NewStore(c *Client) *Store {
	return &Store{client: c}
}

// Client returns the underlying API client.
func (s *Store) Client() *Client { return s.client }

// --- Accessors ---

func (s *Store) Plans() []models.PricePlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.plans)
	for i := range out {
		out[i].Features = slices.Clone(out[i].Features)
	}
	return out
}

func (s *Store) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.projects)
	for i := range out {
		if out[i].Link != nil {
			link := *out[i].Link
			out[i].Link = &link
		}
	}
	return out
}

func (s *Store) Queries() []models.QueryWithPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.queries)
	for i := range out {
		if out[i].PriceCard != nil {
			card := *out[i].PriceCard
			card.Features = slices.Clone(card.Features)
			out[i].PriceCard = &card
		}
	}
	return out
}

func (s *Store) Loading() Loading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Loading{
		Plans:    s.inflight.plans > 0,
		Projects: s.inflight.projects > 0,
		Queries:  s.inflight.queries > 0,
	}
}

// --- Fetching ---

// LoadPlans replaces the cached plans. On error the previous cache is kept.
func (s *Store) LoadPlans(ctx context.Context) error {
	done := s.begin(&s.inflight.plans)
	defer done()

	plans, err := s.client.ListPrices(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.plans = plans
	s.mu.Unlock()
	return nil
}

func (s *Store) LoadProjects(ctx context.Context) error {
	done := s.begin(&s.inflight.projects)
	defer done()

	projects, err := s.client.ListProjects(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.projects = projects
	s.mu.Unlock()
	return nil
}

// LoadQueries needs an admin session.
func (s *Store) LoadQueries(ctx context.Context) error {
	done := s.begin(&s.inflight.queries)
	defer done()

	queries, err := s.client.ListQueries(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.queries = queries
	s.mu.Unlock()
	return nil
}

// begin counts a fetch in; the returned func counts it out.
func (s *Store) begin(counter *int) func() {
	s.mu.Lock()
	*counter++
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		*counter--
		s.mu.Unlock()
	}
}

// --- Mutations ---

func (s *Store) AddPlan(ctx context.Context, plan NewPlan) error {
	if _, err := s.client.AddPrice(ctx, plan); err != nil {
		return err
	}
	return s.LoadPlans(ctx)
}

func (s *Store) RemovePlan(ctx context.Context, id string) error {
	if err := s.client.RemovePrice(ctx, id); err != nil {
		return err
	}
	return s.LoadPlans(ctx)
}

func (s *Store) AddProject(ctx context.Context, p NewProject) error {
	if _, err := s.client.AddProject(ctx, p); err != nil {
		return err
	}
	return s.LoadProjects(ctx)
}

func (s *Store) RemoveProject(ctx context.Context, id string) error {
	if err := s.client.RemoveProject(ctx, id); err != nil {
		return err
	}
	return s.LoadProjects(ctx)
}

func (s *Store) RemoveQuery(ctx context.Context, id string) error {
	if err := s.client.RemoveQuery(ctx, id); err != nil {
		return err
	}
	return s.LoadQueries(ctx)
}

// SubmitQuery validates and posts the contact form. The inquiry list is
// only re-fetched when an admin session is present.
func (s *Store) SubmitQuery(ctx context.Context, contact Contact) error {
	if err := ValidateContact(contact); err != nil {
		return err
	}
	if err := s.client.SubmitQuery(ctx, contact); err != nil {
		return err
	}
	if s.client.Authenticated() {
		return s.LoadQueries(ctx)
	}
	return nil
}

// --- Session ---

func (s *Store) Login(ctx context.Context, email, password string) error {
	return s.client.Login(ctx, email, password)
}

// Logout clears the token and the admin-only cache.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.queries = nil
	s.mu.Unlock()
	return s.client.Logout()
}

func (s *Store) Authenticated() bool {
	return s.client.Authenticated()
}
