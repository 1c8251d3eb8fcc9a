package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, theResponseFieldShouldHaveItems)
	ctx.Step(`^the response should match json:$`, theResponseShouldMatchJSON)
}

func expectStatus(ctx context.Context, expected int) error {
	return theResponseStatusShouldBe(ctx, expected)
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc, err := mustTestContext(ctx)
	if err != nil {
		return err
	}
	if tc.statusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.statusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc, err := mustTestContext(ctx)
	if err != nil {
		return err
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc, err := mustTestContext(ctx)
	if err != nil {
		return err
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	value, err := responseField(ctx, field)
	if err != nil {
		return err
	}
	if actual := fmt.Sprintf("%v", value); actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	_, err := responseField(ctx, field)
	return err
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, count int) error {
	value, err := responseField(ctx, field)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, value)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func theResponseShouldMatchJSON(ctx context.Context, body *godog.DocString) error {
	tc, err := mustTestContext(ctx)
	if err != nil {
		return err
	}

	var expected, actual any
	if err := json.Unmarshal([]byte(body.Content), &expected); err != nil {
		return fmt.Errorf("failed to parse expected JSON: %w", err)
	}
	if err := json.Unmarshal(tc.responseBody, &actual); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	expectedJSON, _ := json.Marshal(expected)
	actualJSON, _ := json.Marshal(actual)
	if string(expectedJSON) != string(actualJSON) {
		return fmt.Errorf("expected JSON:\n%s\nactual JSON:\n%s", string(expectedJSON), string(actualJSON))
	}
	return nil
}

func responseField(ctx context.Context, field string) (any, error) {
	tc, err := mustTestContext(ctx)
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	value := getFieldValue(data, field)
	if value == nil {
		return nil, fmt.Errorf("field '%s' not found in response: %s", field, string(tc.responseBody))
	}
	return value, nil
}

// getFieldValue resolves a dot separated path such as "habits.0.name".
func getFieldValue(object map[string]any, dotSeparatedField string) any {
	var field any = object
	for _, current := range strings.Split(dotSeparatedField, ".") {
		switch v := field.(type) {
		case []any:
			i, err := strconv.Atoi(current)
			if err != nil || i < 0 || i >= len(v) {
				return nil
			}
			field = v[i]
		case map[string]any:
			field = v[current]
		default:
			return nil
		}
	}
	return field
}
