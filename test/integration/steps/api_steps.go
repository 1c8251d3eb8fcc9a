package steps

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^a "([^"]*)" habit "([^"]*)" starting on "([^"]*)"$`, aHabitStartingOn)
	ctx.Step(`^"([^"]*)" was completed on "([^"]*)"$`, habitWasCompletedOn)
}

func theAPIServerIsRunning(ctx context.Context) error {
	tc, err := mustTestContext(ctx)
	if err != nil {
		return err
	}
	if tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	return send(ctx, method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) (context.Context, error) {
	return send(ctx, method, endpoint, []byte(body.Content))
}

func iSetHeaderTo(ctx context.Context, header, value string) (context.Context, error) {
	tc, err := mustTestContext(ctx)
	if err != nil {
		return ctx, err
	}
	tc.requestHeaders[header] = value
	return ctx, nil
}

// aHabitStartingOn creates a habit through the API.
func aHabitStartingOn(ctx context.Context, periodicity, name, startDate string) (context.Context, error) {
	body := fmt.Sprintf(`{"name":%q,"periodicity":%q,"start_date":%q}`, name, periodicity, startDate)
	ctx, err := send(ctx, http.MethodPost, "/api/v1/habits", []byte(body))
	if err != nil {
		return ctx, err
	}
	return ctx, expectStatus(ctx, http.StatusCreated)
}

// habitWasCompletedOn records one completion per comma-separated date.
func habitWasCompletedOn(ctx context.Context, name, dates string) (context.Context, error) {
	for _, d := range strings.Split(dates, ",") {
		body := fmt.Sprintf(`{"date":%q}`, strings.TrimSpace(d))
		var err error
		ctx, err = send(ctx, http.MethodPost, "/api/v1/habits/"+name+"/completions", []byte(body))
		if err != nil {
			return ctx, err
		}
		if err := expectStatus(ctx, http.StatusOK); err != nil {
			return ctx, err
		}
	}
	return ctx, nil
}

func send(ctx context.Context, method, endpoint string, payload []byte) (context.Context, error) {
	tc, err := mustTestContext(ctx)
	if err != nil {
		return ctx, err
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, tc.server.URL+endpoint, body)
	if err != nil {
		return ctx, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}

	resp, err := tc.server.Client().Do(req)
	if err != nil {
		return ctx, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	tc.statusCode = resp.StatusCode
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return ctx, fmt.Errorf("failed to read response body: %w", err)
	}
	return ctx, nil
}
