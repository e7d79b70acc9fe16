package util

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Checks that a specs server answers "ok" on /health
func IsServerHealthy(serverBaseUrl string, httpClient *http.Client) error {
	url := fmt.Sprintf("%s/health", serverBaseUrl)
	resp, err := httpClient.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return errors.New(resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil || string(body) != "ok" {
		return errors.New(string(body))
	}

	return nil
}
