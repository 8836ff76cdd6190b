package unit

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjcsl/director/pkg/api"
	"github.com/tjcsl/director/pkg/database/models"
	"github.com/tjcsl/director/pkg/forms"
)

// createSiteViaAPI creates a site through the HTTP API and returns the
// decoded response body.
func createSiteViaAPI(t *testing.T, server *api.Server, token, name string) models.Site {
	w := doJSON(t, server, "POST", "/api/v1/sites", token, map[string]interface{}{
		"name":    name,
		"type":    models.SiteTypeDynamic,
		"purpose": models.SitePurposeProject,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var site models.Site
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &site))
	return site
}

func TestCreateSite(t *testing.T) {
	server, db, jwtManager := setupTestAPIServer(t)
	user, token := createTestUser(t, db, jwtManager, "alice", false)

	t.Run("valid request", func(t *testing.T) {
		site := createSiteViaAPI(t, server, token, "my-site")
		assert.Equal(t, "my-site", site.Name)
		assert.Equal(t, models.SiteTypeDynamic, site.Type)
		assert.Equal(t, "my-site.sites.tjhsst.edu", site.GeneratedDomain(forms.GeneratedDomainSuffix))

		// The creator is always a member
		require.Len(t, site.Users, 1)
		assert.Equal(t, user.ID, site.Users[0].ID)
	})

	t.Run("invalid name", func(t *testing.T) {
		w := doJSON(t, server, "POST", "/api/v1/sites", token, map[string]interface{}{
			"name":    "My Site",
			"type":    models.SiteTypeStatic,
			"purpose": models.SitePurposeProject,
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Errors map[string][]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Errors, "name")
	})

	t.Run("duplicate name", func(t *testing.T) {
		w := doJSON(t, server, "POST", "/api/v1/sites", token, map[string]interface{}{
			"name":    "my-site",
			"type":    models.SiteTypeStatic,
			"purpose": models.SitePurposeProject,
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Errors map[string][]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Errors, "name")
	})

	t.Run("unknown member", func(t *testing.T) {
		w := doJSON(t, server, "POST", "/api/v1/sites", token, map[string]interface{}{
			"name":    "other-site",
			"type":    models.SiteTypeStatic,
			"purpose": models.SitePurposeProject,
			"users":   []string{"5a04c513-31b4-4a69-9c94-6e33a005b30f"},
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Errors map[string][]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Errors, "users")
	})
}

func TestListSitesAccessControl(t *testing.T) {
	server, db, jwtManager := setupTestAPIServer(t)
	_, aliceToken := createTestUser(t, db, jwtManager, "alice", false)
	_, bobToken := createTestUser(t, db, jwtManager, "bob", false)
	_, adminToken := createTestUser(t, db, jwtManager, "admin", true)

	site := createSiteViaAPI(t, server, aliceToken, "alices-site")

	listSites := func(token string) []models.Site {
		w := doJSON(t, server, "GET", "/api/v1/sites", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var page struct {
			Values []models.Site `json:"values"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		return page.Values
	}

	// Members see their sites, non-members see nothing, superusers see all
	require.Len(t, listSites(aliceToken), 1)
	assert.Empty(t, listSites(bobToken))
	require.Len(t, listSites(adminToken), 1)

	// Non-members get a 404 on direct access too
	w := doJSON(t, server, "GET", "/api/v1/sites/"+site.ID.String(), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, server, "GET", "/api/v1/sites/"+site.ID.String(), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRenameSite(t *testing.T) {
	server, db, jwtManager := setupTestAPIServer(t)
	_, token := createTestUser(t, db, jwtManager, "alice", false)

	site := createSiteViaAPI(t, server, token, "my-site")
	createSiteViaAPI(t, server, token, "taken")

	t.Run("valid rename", func(t *testing.T) {
		w := doJSON(t, server, "PUT", "/api/v1/sites/"+site.ID.String()+"/name", token, map[string]string{
			"name": "renamed-site",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var got models.Site
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "renamed-site", got.Name)
	})

	t.Run("name already taken", func(t *testing.T) {
		w := doJSON(t, server, "PUT", "/api/v1/sites/"+site.ID.String()+"/name", token, map[string]string{
			"name": "taken",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid name", func(t *testing.T) {
		w := doJSON(t, server, "PUT", "/api/v1/sites/"+site.ID.String()+"/name", token, map[string]string{
			"name": "a",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateSiteMeta(t *testing.T) {
	server, db, jwtManager := setupTestAPIServer(t)
	alice, aliceToken := createTestUser(t, db, jwtManager, "alice", false)
	bob, _ := createTestUser(t, db, jwtManager, "bob", false)

	site := createSiteViaAPI(t, server, aliceToken, "my-site")

	w := doJSON(t, server, "PUT", "/api/v1/sites/"+site.ID.String()+"/meta", aliceToken, map[string]interface{}{
		"description": "a shared site",
		"purpose":     models.SitePurposeActivity,
		"users":       []string{alice.ID.String(), bob.ID.String()},
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var got models.Site
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "a shared site", got.Description)
	assert.Equal(t, models.SitePurposeActivity, got.Purpose)
	assert.Len(t, got.Users, 2)
}

func TestDeleteSite(t *testing.T) {
	server, db, jwtManager := setupTestAPIServer(t)
	_, token := createTestUser(t, db, jwtManager, "alice", false)

	site := createSiteViaAPI(t, server, token, "doomed-site")

	w := doJSON(t, server, "DELETE", "/api/v1/sites/"+site.ID.String(), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, server, "GET", "/api/v1/sites/"+site.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
