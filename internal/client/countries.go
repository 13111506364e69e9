package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

const restCountriesURL = "https://studies.cs.helsinki.fi/restcountries/api/all"

// Country is the subset of the REST Countries payload the lookup uses.
type Country struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Capital   []string          `json:"capital"`
	Area      float64           `json:"area"`
	Languages map[string]string `json:"languages"`
	Flags     struct {
		PNG string `json:"png"`
	} `json:"flags"`
}

type CountriesClient struct {
	baseURL string
	httpc   *http.Client
}

func NewCountriesClient(baseURL string) *CountriesClient {
	if baseURL == "" {
		baseURL = restCountriesURL
	}
	return &CountriesClient{baseURL: baseURL, httpc: http.DefaultClient}
}

func (c *CountriesClient) All(ctx context.Context) ([]Country, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode}
	}

	var countries []Country
	if err := json.NewDecoder(resp.Body).Decode(&countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// Search filters countries by a case-insensitive name substring.
func (c *CountriesClient) Search(ctx context.Context, filter string) ([]Country, error) {
	countries, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	return FilterCountries(countries, filter), nil
}

func FilterCountries(countries []Country, filter string) []Country {
	if filter == "" {
		return countries
	}
	needle := strings.ToLower(filter)
	matched := []Country{}
	for _, country := range countries {
		if strings.Contains(strings.ToLower(country.Name.Common), needle) {
			matched = append(matched, country)
		}
	}
	return matched
}
