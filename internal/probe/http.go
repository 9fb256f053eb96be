package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	consts "stackaudit/internal/shared/constants"
)

// runHTTP performs a single GET or POST and classifies the response.
// Transport failures become Error outcomes; a response with any status is a
// completed probe judged against the definition's expectation.
func runHTTP(ctx context.Context, def CheckDefinition) Outcome {
	method := def.Method
	if method == "" {
		method = http.MethodGet
	}

	var reqBody io.Reader
	if method == http.MethodPost && def.Body != nil {
		payload, err := json.Marshal(def.Body)
		if err != nil {
			return errOutcome("bad request body", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, def.Target.URL, reqBody)
	if err != nil {
		return errOutcome("bad request", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return transportErr(ctx, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, consts.BodySnippetLimitBytes))
	_, _ = io.Copy(io.Discard, resp.Body)

	detail := map[string]any{"status_code": resp.StatusCode}
	if def.Description != "" {
		detail["description"] = def.Description
	}

	if def.Expect == ExpectLogin {
		return classifyLogin(resp.StatusCode, body, detail)
	}

	// A 5xx is a malfunctioning service, not a wrong answer: it lands in
	// the error bucket alongside transport failures.
	if resp.StatusCode >= http.StatusInternalServerError {
		return Outcome{
			Kind:   OutcomeError,
			Label:  fmt.Sprintf("server error %d", resp.StatusCode),
			Detail: detail,
		}
	}

	switch def.Expect {
	case ExpectOK:
		if resp.StatusCode != http.StatusOK {
			return failure(fmt.Sprintf("unexpected status %d", resp.StatusCode), detail)
		}
		if def.CountItems {
			detail["item_count"] = countJSONItems(body)
		}
		return success("running", detail)
	default: // ExpectReachable
		if def.CountItems {
			detail["item_count"] = countJSONItems(body)
		}
		return success("responded", detail)
	}
}

// classifyLogin applies the login policy: 200 is an accepted login, 401 is a
// correct rejection of bad credentials, anything else is a wrong answer.
func classifyLogin(status int, body []byte, detail map[string]any) Outcome {
	detail["has_token"] = strings.Contains(strings.ToLower(string(body)), "token")
	switch status {
	case http.StatusOK:
		return success("login accepted", detail)
	case http.StatusUnauthorized:
		return success("correctly rejected", detail)
	default:
		return failure(fmt.Sprintf("unexpected status %d", status), detail)
	}
}

// countJSONItems reports the length of a JSON array body, or zero when the
// body is not an array.
func countJSONItems(body []byte) int {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return 0
	}
	return len(items)
}
