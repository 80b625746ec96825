package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maya/media-user-api/internal/testutil"
)

func doList(t *testing.T, method, url, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "jwt "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestListHandler_FavouritesScenario(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().
		WithUserName("alice").
		WithPassword("pw1").
		BuildAndAuthenticate(t, ts)

	// Fresh user has no favourites
	resp := doList(t, http.MethodGet, ts.APIURL("/favourites"), token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.AssertList(t, resp, []string{})

	// Add an item
	resp = doList(t, http.MethodPut, ts.APIURL("/favourites/42"), token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.AssertList(t, resp, []string{"42"})

	// Adding it again does not duplicate it
	resp = doList(t, http.MethodPut, ts.APIURL("/favourites/42"), token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.AssertList(t, resp, []string{"42"})

	// Remove it
	resp = doList(t, http.MethodDelete, ts.APIURL("/favourites/42"), token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.AssertList(t, resp, []string{})
}

func TestListHandler_HistoryMirrorsFavourites(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := doList(t, http.MethodPut, ts.APIURL("/history/tt0133093"), token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.AssertList(t, resp, []string{"tt0133093"})

	// History writes do not leak into favourites
	resp = doList(t, http.MethodGet, ts.APIURL("/favourites"), token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.AssertList(t, resp, []string{})

	resp = doList(t, http.MethodDelete, ts.APIURL("/history/tt0133093"), token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.AssertList(t, resp, []string{})
}

func TestListHandler_OwnershipScoping(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, aliceToken := testutil.NewUserBuilder().WithUserName("scope_alice").BuildAndAuthenticate(t, ts)
	_, bobToken := testutil.NewUserBuilder().WithUserName("scope_bob").BuildAndAuthenticate(t, ts)

	resp := doList(t, http.MethodPut, ts.APIURL("/favourites/500"), aliceToken)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Bob sees only his own set
	resp = doList(t, http.MethodGet, ts.APIURL("/favourites"), bobToken)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.AssertList(t, resp, []string{})
}

func TestListHandler_AuthenticationRequired(t *testing.T) {
	ts := testutil.NewTestServer(t)

	endpoints := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/favourites"},
		{http.MethodPut, "/favourites/1"},
		{http.MethodDelete, "/favourites/1"},
		{http.MethodGet, "/history"},
		{http.MethodPut, "/history/1"},
		{http.MethodDelete, "/history/1"},
	}

	for _, ep := range endpoints {
		t.Run(fmt.Sprintf("%s %s", ep.method, ep.path), func(t *testing.T) {
			resp := doList(t, ep.method, ts.APIURL(ep.path), "")
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestListHandler_TokenOutlivesUserRow(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	// Delete the account behind the token's back
	require.NoError(t, ts.DB.DB.Exec("DELETE FROM users WHERE id = ?", user.ID).Error)

	// The token still authenticates (stateless verification), but the list
	// operation reports the missing user.
	resp := doList(t, http.MethodGet, ts.APIURL("/favourites"), token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
