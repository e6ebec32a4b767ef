package employee_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/employees-api/internal/model/employee"
)

func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }

func newInput(name string, salary float64) employee.Input {
	return employee.Input{Name: strPtr(name), Salary: floatPtr(salary)}
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	store := employee.NewMemoryStore(nil)

	first, err := store.Create(newInput("Luis Torres", 5435))
	require.NoError(t, err)
	second, err := store.Create(newInput("Ana Ramírez", 4800))
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, employee.Employee{ID: 1, Name: "Luis Torres", Salary: 5435}, first)
}

func TestCreateContinuesAfterSeed(t *testing.T) {
	store := employee.NewMemoryStore(employee.Seed())

	created, err := store.Create(newInput("New Hire", 1000))
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
}

func TestIDsAreNotReusedAfterDelete(t *testing.T) {
	store := employee.NewMemoryStore(nil)

	first, err := store.Create(newInput("A", 1))
	require.NoError(t, err)
	_, err = store.Delete(first.ID)
	require.NoError(t, err)

	second, err := store.Create(newInput("B", 2))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestListPreservesCreationOrder(t *testing.T) {
	store := employee.NewMemoryStore(nil)
	names := []string{"c", "a", "b", "d"}
	for i, name := range names {
		_, err := store.Create(newInput(name, float64(i)))
		require.NoError(t, err)
	}

	items := store.List()
	require.Len(t, items, len(names))
	for i, item := range items {
		assert.Equal(t, names[i], item.Name)
	}
}

func TestListEmptyIsNotNil(t *testing.T) {
	store := employee.NewMemoryStore(nil)
	assert.NotNil(t, store.List())
	assert.Empty(t, store.List())
}

func TestListReturnsCopy(t *testing.T) {
	store := employee.NewMemoryStore(employee.Seed())
	items := store.List()
	items[0].Name = "mutated"

	got, err := store.Get(items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Luis Torres", got.Name)
}

func TestGetReturnsCreatedRecord(t *testing.T) {
	store := employee.NewMemoryStore(nil)
	created, err := store.Create(newInput("Luis Torres", 5435))
	require.NoError(t, err)

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestUpdateSalaryOnly(t *testing.T) {
	store := employee.NewMemoryStore(nil)
	created, err := store.Create(newInput("Luis Torres", 5435))
	require.NoError(t, err)

	updated, err := store.Update(created.ID, employee.Patch{Salary: floatPtr(6000)})
	require.NoError(t, err)
	assert.Equal(t, "Luis Torres", updated.Name)
	assert.Equal(t, 6000.0, updated.Salary)

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateNameOnly(t *testing.T) {
	store := employee.NewMemoryStore(employee.Seed())

	updated, err := store.Update(2, employee.Patch{Name: strPtr("  Ana Ramírez Soto ")})
	require.NoError(t, err)
	assert.Equal(t, "Ana Ramírez Soto", updated.Name)
	assert.Equal(t, 4800.0, updated.Salary)
}

func TestEmptyPatchLeavesRecordUnchanged(t *testing.T) {
	store := employee.NewMemoryStore(employee.Seed())

	updated, err := store.Update(1, employee.Patch{})
	require.NoError(t, err)
	assert.Equal(t, employee.Seed()[0], updated)
}

func TestDeleteThenGetNotFound(t *testing.T) {
	store := employee.NewMemoryStore(employee.Seed())

	removed, err := store.Delete(2)
	require.NoError(t, err)
	assert.Equal(t, employee.Seed()[1], removed)

	_, err = store.Get(2)
	assert.ErrorIs(t, err, employee.ErrNotFound)

	items := store.List()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 3, items[1].ID)
}

func TestMissingIDYieldsNotFound(t *testing.T) {
	store := employee.NewMemoryStore(employee.Seed())

	_, err := store.Get(99)
	assert.ErrorIs(t, err, employee.ErrNotFound)

	_, err = store.Update(99, employee.Patch{Salary: floatPtr(1)})
	assert.ErrorIs(t, err, employee.ErrNotFound)

	_, err = store.Delete(99)
	assert.ErrorIs(t, err, employee.ErrNotFound)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	cases := map[string]employee.Input{
		"missing name":    {Salary: floatPtr(1)},
		"blank name":      newInput("   ", 1),
		"missing salary":  {Name: strPtr("x")},
		"negative salary": newInput("x", -1),
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			store := employee.NewMemoryStore(nil)
			_, err := store.Create(in)
			assert.ErrorIs(t, err, employee.ErrInvalidInput)
			assert.Empty(t, store.List())
		})
	}
}

func TestUpdateRejectsBlankName(t *testing.T) {
	store := employee.NewMemoryStore(employee.Seed())

	_, err := store.Update(1, employee.Patch{Name: strPtr("")})
	assert.ErrorIs(t, err, employee.ErrInvalidInput)

	got, err := store.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Luis Torres", got.Name)
}

func TestConcurrentCreatesProduceDistinctIDs(t *testing.T) {
	store := employee.NewMemoryStore(nil)
	const workers = 50

	var wg sync.WaitGroup
	ids := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := store.Create(newInput("same", 100))
			if err == nil {
				ids <- created.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool, workers)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
	assert.Len(t, store.List(), workers)
}

func TestDeleteReturnsLatestRecord(t *testing.T) {
	store := employee.NewMemoryStore(employee.Seed())

	_, err := store.Update(1, employee.Patch{Salary: floatPtr(9999)})
	require.NoError(t, err)

	removed, err := store.Delete(1)
	require.NoError(t, err)
	assert.Equal(t, 9999.0, removed.Salary)
}
