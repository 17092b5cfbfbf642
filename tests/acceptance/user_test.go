package acceptance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/runwayrivets/pictopost-api/internal/domain"
	"github.com/runwayrivets/pictopost-api/internal/dto"
)

func (s *Suite) createUser(userID string) {
	body, _ := json.Marshal(dto.CreateUserRequest{UserID: userID})

	resp, err := http.Post(s.BaseURL+"/api/v1/users", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode)
}

func (s *Suite) TestCreateUser_Idempotent() {
	email := "seller@example.com"
	reqBody := dto.CreateUserRequest{UserID: "acc-user-1", Email: &email}
	body, _ := json.Marshal(reqBody)

	resp1, err := http.Post(s.BaseURL+"/api/v1/users", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	resp1.Body.Close()
	s.Equal(http.StatusOK, resp1.StatusCode)

	// Repeating the call returns the existing row with the original metadata
	other := "other@example.com"
	body, _ = json.Marshal(dto.CreateUserRequest{UserID: "acc-user-1", Email: &other})
	resp2, err := http.Post(s.BaseURL+"/api/v1/users", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp2.Body.Close()

	s.Equal(http.StatusOK, resp2.StatusCode)

	var userResp dto.UserResponse
	s.Require().NoError(json.NewDecoder(resp2.Body).Decode(&userResp))
	s.True(userResp.Success)
	s.Equal("acc-user-1", userResp.UserID)
	s.Require().NotNil(userResp.Email)
	s.Equal("seller@example.com", *userResp.Email)
}

func (s *Suite) TestGetUser_NotFound() {
	resp, err := http.Get(s.BaseURL + "/api/v1/users/ghost")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.False(errResp.Success)
	s.NotEmpty(errResp.Error)
}

func (s *Suite) TestUpdatePreferences() {
	s.createUser("acc-user-2")

	prefs := dto.UpdatePreferencesRequest{
		Preferences: domain.Preferences{
			Currency:      "EUR",
			MarketplaceID: "EBAY_DE",
		},
	}
	body, _ := json.Marshal(prefs)

	req, _ := http.NewRequest(http.MethodPut, s.BaseURL+"/api/v1/users/acc-user-2/preferences", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	getResp, err := http.Get(s.BaseURL + "/api/v1/users/acc-user-2")
	s.Require().NoError(err)
	defer getResp.Body.Close()

	var userResp dto.UserResponse
	s.Require().NoError(json.NewDecoder(getResp.Body).Decode(&userResp))
	s.Equal("EUR", userResp.Preferences.Currency)
	s.Equal("EBAY_DE", userResp.Preferences.MarketplaceID)
}

func (s *Suite) TestDeleteUser() {
	s.createUser("acc-user-3")

	req, _ := http.NewRequest(http.MethodDelete, s.BaseURL+"/api/v1/users/acc-user-3", nil)
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	getResp, err := http.Get(s.BaseURL + "/api/v1/users/acc-user-3")
	s.Require().NoError(err)
	getResp.Body.Close()
	s.Equal(http.StatusNotFound, getResp.StatusCode)
}

func (s *Suite) TestDeleteUser_CascadesListingsAndUsage() {
	s.createUser("acc-user-6")

	_, err := s.Postgres.DB.Exec(
		`INSERT INTO listings (user_id, title, status) VALUES ($1, $2, $3)`,
		"acc-user-6", "Vintage Brass Compass", "draft")
	s.Require().NoError(err)

	_, err = s.Postgres.DB.Exec(
		`INSERT INTO ai_usage (user_id, provider, request_type, success) VALUES ($1, $2, $3, $4)`,
		"acc-user-6", "openai", "listing_generation", true)
	s.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodDelete, s.BaseURL+"/api/v1/users/acc-user-6", nil)
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	// Dependent rows are removed with the user
	var count int
	s.Require().NoError(s.Postgres.DB.QueryRow(
		`SELECT COUNT(*) FROM listings WHERE user_id = $1`, "acc-user-6").Scan(&count))
	s.Equal(0, count)
	s.Require().NoError(s.Postgres.DB.QueryRow(
		`SELECT COUNT(*) FROM ai_usage WHERE user_id = $1`, "acc-user-6").Scan(&count))
	s.Equal(0, count)

	// Reusing the id starts from a clean slate
	s.createUser("acc-user-6")

	listResp, err := http.Get(s.BaseURL + "/api/v1/users/acc-user-6/listings")
	s.Require().NoError(err)
	defer listResp.Body.Close()
	var listings dto.ListingListResponse
	s.Require().NoError(json.NewDecoder(listResp.Body).Decode(&listings))
	s.Equal(0, listings.Count)

	usageResp, err := http.Get(s.BaseURL + "/api/v1/users/acc-user-6/ai-usage")
	s.Require().NoError(err)
	defer usageResp.Body.Close()
	var usage dto.AIUsageListResponse
	s.Require().NoError(json.NewDecoder(usageResp.Body).Decode(&usage))
	s.Equal(0, usage.Count)
}

func (s *Suite) TestUsageStats_EmptyUser() {
	s.createUser("acc-user-4")

	resp, err := http.Get(s.BaseURL + "/api/v1/users/acc-user-4/stats")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var statsResp dto.UsageStatsResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&statsResp))
	s.Require().NotNil(statsResp.Stats)
	s.Equal(0, statsResp.Stats.TotalListings)
	s.Equal(0, statsResp.Stats.AIRequests30d)
	s.Nil(statsResp.Stats.LastAIUsage)
}

func (s *Suite) TestSetEBayCredentials() {
	s.createUser("acc-user-5")

	body, _ := json.Marshal(dto.SetEBayCredentialsRequest{
		AppID:        "app-id",
		CertID:       "cert-id",
		RefreshToken: "refresh-token",
	})

	resp, err := http.Post(
		fmt.Sprintf("%s/api/v1/users/%s/ebay-credentials", s.BaseURL, "acc-user-5"),
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	// Credentials never appear in the user payload
	getResp, err := http.Get(s.BaseURL + "/api/v1/users/acc-user-5")
	s.Require().NoError(err)
	defer getResp.Body.Close()

	var raw map[string]any
	s.Require().NoError(json.NewDecoder(getResp.Body).Decode(&raw))
	s.NotContains(raw, "ebay_app_id")
	s.NotContains(raw, "ebay_refresh_token")
}
