package handlers

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/01moynul/agencyhub/internal/auth"
	"github.com/01moynul/agencyhub/internal/database"
	"github.com/01moynul/agencyhub/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errBoom = errors.New("boom")

type memPrices struct {
	mu    sync.Mutex
	plans []*models.PricePlan
	err   error
}

func (m *memPrices) Create(_ context.Context, plan *models.PricePlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	plan.ID = uuid.NewString()
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = plan.CreatedAt
	cp := *plan
	m.plans = append(m.plans, &cp)
	return nil
}

func (m *memPrices) List(context.Context) ([]*models.PricePlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]*models.PricePlan(nil), m.plans...), nil
}

func (m *memPrices) Get(_ context.Context, id string) (*models.PricePlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.plans {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memPrices) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.plans {
		if p.ID == id {
			m.plans = append(m.plans[:i], m.plans[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memProjects struct {
	mu       sync.Mutex
	projects []*models.Project
	err      error
}

func (m *memProjects) Create(_ context.Context, p *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	cp := *p
	m.projects = append(m.projects, &cp)
	return nil
}

func (m *memProjects) List(context.Context) ([]*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Project(nil), m.projects...), nil
}

func (m *memProjects) Get(_ context.Context, id string) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memProjects) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.projects {
		if p.ID == id {
			m.projects = append(m.projects[:i], m.projects[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memQueries struct {
	mu      sync.Mutex
	queries []*models.Query
	prices  *memPrices
}

func (m *memQueries) Create(_ context.Context, q *models.Query) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q.ID = uuid.NewString()
	q.CreatedAt = time.Now()
	cp := *q
	m.queries = append(m.queries, &cp)
	return nil
}

func (m *memQueries) ListWithPlans(ctx context.Context) ([]*models.QueryWithPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.QueryWithPlan, 0, len(m.queries))
	for _, q := range m.queries {
		row := &models.QueryWithPlan{Query: *q}
		if plan, err := m.prices.Get(ctx, q.PriceCardID); err == nil {
			row.PriceCard = &models.PlanSummary{ID: plan.ID, Category: plan.Category, Price: plan.Price, Features: plan.Features}
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memQueries) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, q := range m.queries {
		if q.ID == id {
			m.queries = append(m.queries[:i], m.queries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memImages struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
	deleted   []string
}

func (m *memImages) Upload(_ context.Context, key string, body []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = body
	return "https://cdn.test/" + key, nil
}

func (m *memImages) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

type fakeNotifier struct {
	calls int
	err   error
}

func (n *fakeNotifier) QuerySubmitted(context.Context, *models.Query, *models.PricePlan) error {
	n.calls++
	return n.err
}

type testEnv struct {
	h        *Handlers
	router   *gin.Engine
	prices   *memPrices
	projects *memProjects
	queries  *memQueries
	images   *memImages
	notifier *fakeNotifier
}

const (
	testAdminEmail    = "admin@agency.dev"
	testAdminPassword = "s3cret"
)

// newTestEnv wires handlers onto bare routes; auth is covered by the router tests.
func newTestEnv() *testEnv {
	prices := &memPrices{}
	env := &testEnv{
		prices:   prices,
		projects: &memProjects{},
		queries:  &memQueries{prices: prices},
		images:   &memImages{},
		notifier: &fakeNotifier{},
	}
	env.h = &Handlers{
		Prices:         env.prices,
		Projects:       env.projects,
		Queries:        env.queries,
		Images:         env.images,
		Notifier:       env.notifier,
		Tokens:         auth.NewTokenManager("handlers-test-secret", time.Hour),
		Admin:          auth.AdminCredentials{Email: testAdminEmail, Password: testAdminPassword},
		Log:            zap.NewNop(),
		MaxUploadBytes: 1 << 20,
	}

	r := gin.New()
	r.GET("/api/health", env.h.HealthCheck)
	r.POST("/api/admin/login", env.h.Login)
	r.GET("/api/price/all", env.h.ListPrices)
	r.POST("/api/price/add", env.h.AddPrice)
	r.POST("/api/price/remove", env.h.RemovePrice)
	r.POST("/api/price/single", env.h.SinglePrice)
	r.POST("/api/project/all", env.h.ListProjects)
	r.POST("/api/project/add", env.h.AddProject)
	r.POST("/api/project/remove", env.h.RemoveProject)
	r.POST("/api/project/single", env.h.SingleProject)
	r.POST("/api/query/add", env.h.AddQuery)
	r.GET("/api/query/all", env.h.ListQueries)
	r.GET("/api/query/remove", env.h.RemoveQuery)
	env.router = r
	return env
}
