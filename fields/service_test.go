package fields_test

import (
	"context"
	"testing"

	"github.com/marcelsud/alert-relay/fields"
	"github.com/marcelsud/alert-relay/fields/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfigServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := mocks.NewConfigRepository(t)
		service := fields.NewService(repo)

		repo.On("Insert", ctx, mock.MatchedBy(func(c fields.FilterConfig) bool {
			return c.ID != "" && c.Name == "prtg-default"
		})).Return(nil)

		created, err := service.Create(ctx, fields.FilterConfig{
			Name:           "prtg-default",
			IncludedFields: []string{"devicename", "message"},
		})

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		repo.AssertExpectations(t)
	})

	t.Run("invalid config", func(t *testing.T) {
		repo := mocks.NewConfigRepository(t)
		service := fields.NewService(repo)

		_, err := service.Create(ctx, fields.FilterConfig{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "validating filter config")
	})
}

func TestConfigServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := mocks.NewConfigRepository(t)
		service := fields.NewService(repo)

		config := fields.FilterConfig{ID: "cfg-1", Name: "renamed"}
		repo.On("Update", ctx, config).Return(nil)

		err := service.Update(ctx, config)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("missing id", func(t *testing.T) {
		repo := mocks.NewConfigRepository(t)
		service := fields.NewService(repo)

		err := service.Update(ctx, fields.FilterConfig{Name: "no-id"})

		require.Error(t, err)
	})
}

func TestConfigServiceList(t *testing.T) {
	ctx := context.Background()

	repo := mocks.NewConfigRepository(t)
	service := fields.NewService(repo)

	stored := []fields.FilterConfig{
		{ID: "cfg-1", Name: "a"},
		{ID: "cfg-2", Name: "b"},
	}
	repo.On("GetAll", ctx).Return(stored, nil)

	configs, err := service.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, stored, configs)
	repo.AssertExpectations(t)
}
