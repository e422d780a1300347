package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// performRequest sends a request to the server and prints the response.
// A non-nil body is sent as JSON. Responses outside 2xx are returned as errors
// after being printed.
func performRequest(out io.Writer, method, endpoint string, query url.Values, body any) error {
	if query == nil {
		query = url.Values{}
	}
	if verbose {
		query.Set("verbose", "true")
	}
	target := host + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	fmt.Fprintf(out, "Making request to %s %s\n", method, target)

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Fprintf(out, "Status Code: %d\n", resp.StatusCode)
	if len(respBody) > 0 {
		fmt.Fprintln(out, "Response Body:")
		fmt.Fprintln(out, prettyJSON(respBody))
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("server responded with %s", resp.Status)
	}
	return nil
}

func performGetRequest(out io.Writer, endpoint string) error {
	return performRequest(out, http.MethodGet, endpoint, nil, nil)
}

func prettyJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return string(body)
	}
	return buf.String()
}
