// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-signup/internal/common/config"
	"club-signup/internal/common/logger"
	"club-signup/internal/docstore"
	"club-signup/internal/models"
	"club-signup/internal/web"
)

const validApplication = `{"fullName":"Jane Doe","email":"jdoe@caldwell.edu","studentID":"123456"}`

func baseConfig(driver string) *config.Config {
	cfg := &config.Config{}
	cfg.Project = config.ProjectCredentials{
		APIKey:            "test-api-key",
		AuthDomain:        "club.example.com",
		ProjectID:         "caldwell-club-e2e",
		StorageBucket:     "caldwell-club-e2e.appspot.com",
		MessagingSenderID: "1234567890",
		AppID:             "1:1234567890:web:abc",
		MeasurementID:     "G-TEST",
	}
	cfg.Store.Driver = driver
	cfg.Store.Collection = "students"
	cfg.Store.WriteTimeout = 5000
	cfg.Server.RequestTimeout = 10000
	cfg.Form.Title = "Caldwell Computer Science Club"
	cfg.Form.ConfirmationImageURL = "/submitImage.jpg"
	return cfg
}

// startServer wires the store selected by cfg into a live HTTP server.
func startServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	log := logger.NewTestLogger(t)

	store, err := docstore.Open(context.Background(), cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	handler, err := web.NewHandler(store, web.ConfigFrom(cfg), log, nil)
	require.NoError(t, err)

	srv := httptest.NewServer(handler.Router())
	t.Cleanup(srv.Close)
	return srv
}

func TestSignupFlow_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := baseConfig("redis")
	cfg.Database.Redis.Address = mr.Addr()
	srv := startServer(t, cfg)

	// --- form page ---
	res, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "Join Today.")

	// --- invalid submit issues no write ---
	res, err = http.PostForm(srv.URL+"/apply", url.Values{
		models.FieldFullName:  {"Jane Doe"},
		models.FieldEmail:     {"jdoe@gmail.com"},
		models.FieldStudentID: {"123456"},
	})
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Empty(t, mr.Keys())

	// --- valid submit writes one document ---
	res, err = http.PostForm(srv.URL+"/apply", url.Values{
		models.FieldFullName:  {"Jane Doe"},
		models.FieldEmail:     {"jdoe@caldwell.edu"},
		models.FieldStudentID: {"123456"},
	})
	require.NoError(t, err)
	body, _ = io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "Thank you for your applying !!")

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "students:"))
	stored, err := mr.Get(keys[0])
	require.NoError(t, err)
	assert.JSONEq(t, validApplication, stored)

	// --- JSON API ---
	res, err = http.Post(srv.URL+"/api/applications", "application/json", strings.NewReader(validApplication))
	require.NoError(t, err)
	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.True(t, mr.Exists(docstore.Key("students", created.ID)))
	assert.Len(t, mr.Keys(), 2)

	// --- health follows the store ---
	res, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	mr.Close()
	res, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
}

// TestSignupFlow_LiveStores runs against real services on localhost. Set
// E2E_LIVE=1 to enable it.
func TestSignupFlow_LiveStores(t *testing.T) {
	if testing.Short() || os.Getenv("E2E_LIVE") == "" {
		t.Skip("set E2E_LIVE=1 to run against local postgres, redis and elasticsearch")
	}

	drivers := map[string]func(cfg *config.Config){
		"postgres": func(cfg *config.Config) {
			cfg.Database.Postgres = config.PostgresConfig{
				Host:     "localhost",
				Port:     5432,
				Database: envOr("DB_NAME", "club_signup"),
				User:     envOr("DB_USER", "postgres"),
				Password: os.Getenv("DB_PASSWORD"),
				SSLMode:  "disable",
			}
		},
		"redis": func(cfg *config.Config) {
			cfg.Database.Redis.Address = "localhost:6379"
		},
		"elasticsearch": func(cfg *config.Config) {
			cfg.Database.Elasticsearch.Addresses = []string{"http://localhost:9200"}
			cfg.Database.Elasticsearch.Refresh = "wait_for"
		},
	}

	for driver, configure := range drivers {
		t.Run(driver, func(t *testing.T) {
			cfg := baseConfig(driver)
			configure(cfg)
			srv := startServer(t, cfg)

			res, err := http.Post(srv.URL+"/api/applications", "application/json", strings.NewReader(validApplication))
			require.NoError(t, err)
			res.Body.Close()
			assert.Equal(t, http.StatusCreated, res.StatusCode)
		})
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
