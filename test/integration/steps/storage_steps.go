package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/cucumber/godog"

	"github.com/habit-tracker/tracker/test/integration/mock"
)

func registerStorageSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the db should contain (\d+) objects? in the "([^"]*)" table$`, theDbShouldContainObjectsInTheTable)
	ctx.Step(`^the db should contain (\d+) objects? in "([^"]*)" with the values:$`, theDbShouldContainObjectsInWithTheValues)
	ctx.Step(`^the streak cache should hold (\d+) entr(?:y|ies)$`, theStreakCacheShouldHoldEntries)
}

func theDbShouldContainObjectsInTheTable(ctx context.Context, quantity int, table string) error {
	return countRows(ctx, quantity, table, nil)
}

func theDbShouldContainObjectsInWithTheValues(ctx context.Context, quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}
	return countRows(ctx, quantity, table, criteria)
}

func countRows(ctx context.Context, quantity int, table string, criteria map[string]any) error {
	tc, err := mustTestContext(ctx)
	if err != nil {
		return err
	}

	entity, ok := tc.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	rows := reflect.New(reflect.SliceOf(reflect.TypeOf(entity).Elem()))
	query := tc.db.DbConn.WithContext(ctx)
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}
	if err := query.Find(rows.Interface()).Error; err != nil {
		return err
	}

	if count := rows.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func theStreakCacheShouldHoldEntries(ctx context.Context, quantity int) error {
	if keys := mock.RedisKeys(); len(keys) != quantity {
		return fmt.Errorf("expected %d cached streaks, got %d: %v", quantity, len(keys), keys)
	}
	return nil
}
