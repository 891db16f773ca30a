package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/01moynul/agencyhub/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.POST("/api/admin/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "token": "tok", "expiresAt": time.Now().Add(time.Hour)})
	})
	r.GET("/api/price/all", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "prices": []gin.H{
			{"id": "p1", "price": 99, "category": "Business", "description": "Store", "features": []string{"Payments"}},
			{"id": "p2", "price": 19, "category": "Starter", "description": "One pager", "features": []string{"SSL"}},
		}})
	})
	r.GET("/api/query/all", func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer tok" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized. Login Again"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "queries": []gin.H{
			{"id": "q1", "email": "a@b.com", "message": "Interested", "priceCard": gin.H{"id": "p2", "category": "Starter", "price": 19}},
		}})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPlansListSorted(t *testing.T) {
	srv := fakeServer(t)
	tokenFile := filepath.Join(t.TempDir(), "session.json")

	out, err := run(t, "--api", srv.URL, "--token-file", tokenFile, "plans", "list", "--sort", "price-asc")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Starter"), strings.Index(out, "Business"))
}

func TestQueriesNeedLogin(t *testing.T) {
	srv := fakeServer(t)
	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "session.json")

	_, err := run(t, "--api", srv.URL, "--token-file", tokenFile, "queries", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")

	_, err = run(t, "--api", srv.URL, "--token-file", tokenFile, "login", "--email", "admin@agency.dev", "--password", "pw")
	require.NoError(t, err)

	csvPath := filepath.Join(dir, "queries.csv")
	out, err := run(t, "--api", srv.URL, "--token-file", tokenFile, "queries", "list", "--csv", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 1 inquiries")

	raw, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "a@b.com,Starter,19,Interested")

	_, err = run(t, "--api", srv.URL, "--token-file", tokenFile, "logout")
	require.NoError(t, err)
	_, err = run(t, "--api", srv.URL, "--token-file", tokenFile, "queries", "list")
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "hash-password", "s3cret")
	require.NoError(t, err)

	creds := auth.AdminCredentials{Email: "admin@agency.dev", PasswordHash: strings.TrimSpace(out)}
	assert.NoError(t, creds.Verify("admin@agency.dev", "s3cret"))
}
