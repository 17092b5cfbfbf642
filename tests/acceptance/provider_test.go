package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/runwayrivets/pictopost-api/internal/dto"
)

func (s *Suite) TestListProviders() {
	resp, err := http.Get(s.BaseURL + "/api/v1/ai/providers")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var listResp dto.ProviderListResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&listResp))
	s.True(listResp.Success)
	s.Equal(4, listResp.Count)

	ids := make([]string, 0, len(listResp.Providers))
	for _, p := range listResp.Providers {
		ids = append(ids, p.ID)
	}
	s.Equal([]string{"openai", "anthropic", "gemini", "ollama"}, ids)
}

func (s *Suite) TestValidateKey_Format() {
	body, _ := json.Marshal(dto.ValidateKeyRequest{
		Provider: "openai",
		APIKey:   "sk-proj-abcdefghijklmnopqrstuvwx",
	})

	resp, err := http.Post(s.BaseURL+"/api/v1/ai/validate", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var validateResp dto.ValidateKeyResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&validateResp))
	s.True(validateResp.IsValid)
}

func (s *Suite) TestValidateKey_BadFormat() {
	body, _ := json.Marshal(dto.ValidateKeyRequest{
		Provider: "anthropic",
		APIKey:   "not-a-key",
	})

	resp, err := http.Post(s.BaseURL+"/api/v1/ai/validate", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var validateResp dto.ValidateKeyResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&validateResp))
	s.False(validateResp.IsValid)
	s.NotEmpty(validateResp.Message)
}

func (s *Suite) TestValidateKey_UnknownProvider() {
	body, _ := json.Marshal(dto.ValidateKeyRequest{
		Provider: "mistral",
		APIKey:   "whatever-key-this-is-12345",
	})

	resp, err := http.Post(s.BaseURL+"/api/v1/ai/validate", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestSetAndGetAIProvider() {
	s.createUser("acc-provider-1")

	body, _ := json.Marshal(dto.SetAIProviderRequest{
		Provider: "gemini",
		APIKey:   "AIzaSyAbCdEfGhIjKlMnOpQrStUv",
	})

	resp, err := http.Post(
		s.BaseURL+"/api/v1/users/acc-provider-1/ai-provider",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	getResp, err := http.Get(s.BaseURL + "/api/v1/users/acc-provider-1/ai-provider")
	s.Require().NoError(err)
	defer getResp.Body.Close()

	var providerResp dto.AIProviderResponse
	s.Require().NoError(json.NewDecoder(getResp.Body).Decode(&providerResp))
	s.Equal("gemini", providerResp.Provider)
}

func (s *Suite) TestClearAIProvider() {
	s.createUser("acc-provider-3")

	body, _ := json.Marshal(dto.SetAIProviderRequest{
		Provider: "openai",
		APIKey:   "sk-proj-abcdefghijklmnopqrst",
	})
	resp, err := http.Post(
		s.BaseURL+"/api/v1/users/acc-provider-3/ai-provider",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodDelete, s.BaseURL+"/api/v1/users/acc-provider-3/ai-provider", nil)
	delResp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	delResp.Body.Close()
	s.Equal(http.StatusOK, delResp.StatusCode)

	getResp, err := http.Get(s.BaseURL + "/api/v1/users/acc-provider-3/ai-provider")
	s.Require().NoError(err)
	getResp.Body.Close()
	s.Equal(http.StatusBadRequest, getResp.StatusCode)
}

func (s *Suite) TestGetAIProvider_Unconfigured() {
	s.createUser("acc-provider-2")

	resp, err := http.Get(s.BaseURL + "/api/v1/users/acc-provider-2/ai-provider")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestEBayCategories() {
	resp, err := http.Get(s.BaseURL + "/api/v1/ebay/categories")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var raw map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&raw))
	s.Contains(raw, "category_mappings")
	s.Contains(raw, "condition_mappings")
	s.Contains(raw, "defaults")
}
