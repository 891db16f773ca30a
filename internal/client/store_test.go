package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAccessorsDeepCopy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/project/all", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "projects": []gin.H{
			{"id": "pr1", "title": "Bakery", "link": "https://bakery.example"},
		}})
	})
	r.GET("/api/query/all", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "queries": []gin.H{
			{"id": "q1", "email": "a@b.com", "priceCard": gin.H{"id": "p1", "category": "Starter", "price": 19, "features": []string{"SSL"}}},
		}})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	ts := &MemoryTokenStore{}
	require.NoError(t, ts.Save(Session{Token: "tok"}))
	s := NewStore(New(srv.URL, WithTokenStore(ts)))
	ctx := context.Background()
	require.NoError(t, s.LoadProjects(ctx))
	require.NoError(t, s.LoadQueries(ctx))

	projects := s.Projects()
	require.NotNil(t, projects[0].Link)
	*projects[0].Link = "changed"
	assert.Equal(t, "https://bakery.example", *s.Projects()[0].Link)

	queries := s.Queries()
	require.NotNil(t, queries[0].PriceCard)
	queries[0].PriceCard.Category = "changed"
	queries[0].PriceCard.Features[0] = "changed"
	card := s.Queries()[0].PriceCard
	assert.Equal(t, "Starter", card.Category)
	assert.Equal(t, []string{"SSL"}, card.Features)
}

func TestStoreLoadingWithOverlappingFetches(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var arrived atomic.Int32
	release := make(chan struct{})

	r := gin.New()
	r.GET("/api/price/all", func(c *gin.Context) {
		arrived.Add(1)
		<-release
		c.JSON(http.StatusOK, gin.H{"success": true, "prices": []gin.H{}})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	s := NewStore(New(srv.URL))
	ctx := context.Background()

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() { results <- s.LoadPlans(ctx) }()
	}
	require.Eventually(t, func() bool { return arrived.Load() == 2 }, 5*time.Second, 10*time.Millisecond)
	assert.True(t, s.Loading().Plans)

	release <- struct{}{}
	require.NoError(t, <-results)
	assert.True(t, s.Loading().Plans, "one fetch is still in flight")

	release <- struct{}{}
	require.NoError(t, <-results)
	assert.False(t, s.Loading().Plans)
}
