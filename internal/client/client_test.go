package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "tok-123"

// fakeAPI is a minimal stand-in for the agency API.
type fakeAPI struct {
	mu        sync.Mutex
	plans     []gin.H
	listCalls int
	lastAuth  string
	lastImage []byte
	lastTitle string
}

func (f *fakeAPI) router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	requireAdmin := func(c *gin.Context) {
		f.mu.Lock()
		f.lastAuth = c.GetHeader("Authorization")
		f.mu.Unlock()
		if c.GetHeader("Authorization") != "Bearer "+testToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized. Login Again"})
			return
		}
		c.Next()
	}

	r.POST("/api/admin/login", func(c *gin.Context) {
		var in struct{ Email, Password string }
		_ = c.ShouldBindJSON(&in)
		if in.Password != "pw" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid Cradentials"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "token": testToken, "expiresAt": time.Now().Add(time.Hour)})
	})
	r.GET("/api/price/all", func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.listCalls++
		c.JSON(http.StatusOK, gin.H{"success": true, "prices": f.plans})
	})
	r.POST("/api/price/single", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Price plan not found"})
	})
	r.POST("/api/price/add", requireAdmin, func(c *gin.Context) {
		var in map[string]any
		_ = c.ShouldBindJSON(&in)
		f.mu.Lock()
		in["id"] = "p" + string(rune('0'+len(f.plans)))
		f.plans = append(f.plans, in)
		f.mu.Unlock()
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Price plan added", "price": in})
	})
	r.POST("/api/project/add", requireAdmin, func(c *gin.Context) {
		fh, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image file is required"})
			return
		}
		file, _ := fh.Open()
		defer file.Close()
		data, _ := io.ReadAll(file)
		f.mu.Lock()
		f.lastImage = data
		f.lastTitle = c.PostForm("title")
		f.mu.Unlock()
		c.JSON(http.StatusCreated, gin.H{"success": true, "project": gin.H{"id": "pr1", "title": c.PostForm("title")}})
	})
	r.POST("/api/project/all", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "projects": []gin.H{{"id": "pr1", "title": "Bakery"}}})
	})
	r.GET("/api/query/all", requireAdmin, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "queries": []gin.H{{"id": "q1", "email": "a@b.com", "priceCard": nil}}})
	})
	r.POST("/api/query/add", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Query submitted successfully"})
	})
	return r
}

func newTestClient(t *testing.T) (*Client, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(api.router())
	t.Cleanup(srv.Close)
	return New(srv.URL), api
}

func TestLoginStoresToken(t *testing.T) {
	c, api := newTestClient(t)
	ctx := context.Background()

	assert.False(t, c.Authenticated())
	require.NoError(t, c.Login(ctx, "admin@agency.dev", "pw"))
	assert.True(t, c.Authenticated())

	_, err := c.AddPrice(ctx, NewPlan{Price: 10, Category: "Basic", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+testToken, api.lastAuth)

	require.NoError(t, c.Logout())
	assert.False(t, c.Authenticated())
}

func TestLoginFailure(t *testing.T) {
	c, _ := newTestClient(t)

	err := c.Login(context.Background(), "admin@agency.dev", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid Cradentials", apiErr.Message)
	assert.False(t, c.Authenticated())
}

func TestAdminCallWithoutTokenIsNotSent(t *testing.T) {
	c, api := newTestClient(t)

	_, err := c.AddPrice(context.Background(), NewPlan{Price: 1, Category: "c", Description: "d"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Empty(t, api.plans)
	assert.Empty(t, api.lastAuth)
}

func TestUnauthorizedClearsToken(t *testing.T) {
	ts := &MemoryTokenStore{}
	require.NoError(t, ts.Save(Session{Token: "stale"}))

	api := &fakeAPI{}
	srv := httptest.NewServer(api.router())
	defer srv.Close()
	c := New(srv.URL, WithTokenStore(ts))

	_, err := c.ListQueries(context.Background())
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.False(t, c.Authenticated())
}

func TestNotFoundIsAPIError(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.GetPrice(context.Background(), "missing")
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.Contains(t, err.Error(), "Price plan not found")
}

func TestAddProjectSendsMultipart(t *testing.T) {
	c, api := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, c.Login(ctx, "admin@agency.dev", "pw"))

	p, err := c.AddProject(ctx, NewProject{
		Title:       "Bakery",
		Description: "d",
		Category:    "Web",
		ImageName:   "/tmp/shot.png",
		Image:       strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Bakery", p.Title)
	assert.Equal(t, "Bakery", api.lastTitle)
	assert.Equal(t, []byte("png-bytes"), api.lastImage)

	_, err = c.AddProject(ctx, NewProject{Title: "No image"})
	assert.Error(t, err)
}

func TestStoreRefetchesAfterMutation(t *testing.T) {
	c, api := newTestClient(t)
	s := NewStore(c)
	ctx := context.Background()

	require.NoError(t, s.LoadPlans(ctx))
	assert.Empty(t, s.Plans())

	require.NoError(t, s.Login(ctx, "admin@agency.dev", "pw"))
	require.NoError(t, s.AddPlan(ctx, NewPlan{Price: 49, Category: "Starter", Description: "d", Features: []string{"SSL"}}))

	plans := s.Plans()
	require.Len(t, plans, 1)
	assert.Equal(t, 49.0, plans[0].Price)
	assert.Equal(t, 2, api.listCalls)
	assert.False(t, s.Loading().Plans)

	// Accessors hand out copies.
	plans[0].Features[0] = "changed"
	assert.Equal(t, "SSL", s.Plans()[0].Features[0])
}

func TestStoreFailedMutationKeepsCache(t *testing.T) {
	c, api := newTestClient(t)
	s := NewStore(c)
	ctx := context.Background()

	err := s.AddPlan(ctx, NewPlan{Price: 1, Category: "c", Description: "d"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Zero(t, api.listCalls)
}

func TestStoreQueriesAndLogout(t *testing.T) {
	c, _ := newTestClient(t)
	s := NewStore(c)
	ctx := context.Background()

	assert.ErrorIs(t, s.LoadQueries(ctx), ErrNotAuthenticated)

	require.NoError(t, s.Login(ctx, "admin@agency.dev", "pw"))
	require.NoError(t, s.LoadQueries(ctx))
	require.Len(t, s.Queries(), 1)
	assert.Nil(t, s.Queries()[0].PriceCard)

	require.NoError(t, s.LoadProjects(ctx))
	assert.Len(t, s.Projects(), 1)

	require.NoError(t, s.Logout())
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Queries())
}

func TestStoreSubmitQuery(t *testing.T) {
	c, _ := newTestClient(t)
	s := NewStore(c)
	ctx := context.Background()

	err := s.SubmitQuery(ctx, Contact{Email: "nope", PriceCardID: "p1", Message: "hi"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	require.NoError(t, s.SubmitQuery(ctx, Contact{Email: "a@b.com", PriceCardID: "p1", Message: "hi"}))
	assert.Empty(t, s.Queries())
}
