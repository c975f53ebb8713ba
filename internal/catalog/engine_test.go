package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cucinanostrard/internal/fallback"
	"cucinanostrard/internal/gateway"
	"cucinanostrard/internal/model"
)

// MockProductGateway is a mock implementation of gateway.ProductGateway.
type MockProductGateway struct {
	mock.Mock
}

func (m *MockProductGateway) ListAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductGateway) ListFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductGateway) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductGateway) ListAvailable(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductGateway) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductGateway) Search(ctx context.Context, term string) ([]model.Product, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductGateway) Create(ctx context.Context, doc map[string]interface{}) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

func (m *MockProductGateway) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockProductGateway) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductGateway) CountByCategory(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockProductGateway) Subscribe(ctx context.Context, onChange func(gateway.Snapshot), onErr func(error)) (func(), error) {
	args := m.Called(ctx, onChange, onErr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

func (m *MockProductGateway) SubscribeFeatured(ctx context.Context, limit int, onChange func(gateway.Snapshot), onErr func(error)) (func(), error) {
	args := m.Called(ctx, limit, onChange, onErr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

func remoteCatalogue() []model.Product {
	return []model.Product{
		{ID: "p1", Name: "Cheesecake", Category: "tartas", Featured: true, Available: true},
		{ID: "p2", Name: "Brownie", Category: "brownies", Available: true},
	}
}

func TestEngine_LoadAll_Remote(t *testing.T) {
	mockGW := new(MockProductGateway)
	mockGW.On("ListAll", mock.Anything).Return(remoteCatalogue(), nil)
	eng := NewEngine(mockGW, zerolog.Nop())

	products := eng.LoadAll(context.Background())

	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, products, eng.Products())
	mockGW.AssertExpectations(t)
}

func TestEngine_LoadAll_FallbackOnError(t *testing.T) {
	mockGW := new(MockProductGateway)
	mockGW.On("ListAll", mock.Anything).Return(nil, errors.New("connection refused"))
	eng := NewEngine(mockGW, zerolog.Nop())

	products := eng.LoadAll(context.Background())

	require.NotEmpty(t, products)
	assert.Equal(t, fallback.Catalog(), products)
}

func TestEngine_LoadAll_FallbackOnEmpty(t *testing.T) {
	mockGW := new(MockProductGateway)
	mockGW.On("ListAll", mock.Anything).Return([]model.Product{}, nil)
	eng := NewEngine(mockGW, zerolog.Nop())

	products := eng.LoadAll(context.Background())

	require.NotEmpty(t, products)
	assert.Equal(t, fallback.Catalog(), products)
}

func TestEngine_LoadFeatured_FallbackCapped(t *testing.T) {
	mockGW := new(MockProductGateway)
	mockGW.On("ListFeatured", mock.Anything, FeaturedLimit).Return(nil, errors.New("down"))
	eng := NewEngine(mockGW, zerolog.Nop())

	featured := eng.LoadFeatured(context.Background())

	require.NotEmpty(t, featured)
	assert.LessOrEqual(t, len(featured), FeaturedLimit)
	for _, p := range featured {
		assert.True(t, p.Featured)
		assert.True(t, p.Available)
	}
	assert.Equal(t, featured, eng.Featured())
}

func TestEngine_Stats_TrackResidentList(t *testing.T) {
	mockGW := new(MockProductGateway)
	mockGW.On("ListAll", mock.Anything).Return(remoteCatalogue(), nil)
	eng := NewEngine(mockGW, zerolog.Nop())

	eng.LoadAll(context.Background())
	stats := eng.Stats()

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Featured)
	assert.Equal(t, 2, stats.Available)
	assert.Equal(t, map[string]int{"tartas": 1, "brownies": 1}, stats.Categories)
}

func TestEngine_Create_InvalidDraftSkipsGateway(t *testing.T) {
	mockGW := new(MockProductGateway)
	eng := NewEngine(mockGW, zerolog.Nop())

	id, err := eng.Create(context.Background(), &model.ProductDraft{Name: "sin precio"})

	assert.Empty(t, id)
	assert.Error(t, err)
	mockGW.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEngine_Create_Success(t *testing.T) {
	mockGW := new(MockProductGateway)
	mockGW.On("Create", mock.Anything, mock.MatchedBy(func(doc map[string]interface{}) bool {
		return doc["name"] == "Palmeras" && doc["category"] == "Hojaldre"
	})).Return("new-id", nil)
	mockGW.On("ListAll", mock.Anything).Return(remoteCatalogue(), nil)
	mockGW.On("ListFeatured", mock.Anything, FeaturedLimit).Return(remoteCatalogue()[:1], nil)
	eng := NewEngine(mockGW, zerolog.Nop())

	draft := &model.ProductDraft{
		Name:             "Palmeras",
		Description:      "Palmeras de hojaldre caramelizadas",
		ShortDescription: "Palmeras de hojaldre",
		Price:            9.5,
		Category:         model.CategoryOther,
		CustomCategory:   "Hojaldre",
		Images:           []string{"/images/palmeras.jpg"},
	}

	id, err := eng.Create(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, "new-id", id)
	// Both resident lists were refreshed after the write.
	assert.Len(t, eng.Products(), 2)
	assert.Len(t, eng.Featured(), 1)
	mockGW.AssertExpectations(t)
}

func TestEngine_Update_InvalidPatchSkipsGateway(t *testing.T) {
	mockGW := new(MockProductGateway)
	eng := NewEngine(mockGW, zerolog.Nop())

	err := eng.Update(context.Background(), "p1", model.ProductPatch{"price": -1.0})

	assert.Equal(t, model.ErrInvalidPrice, err)
	mockGW.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestEngine_Update_NormalizedPatchReachesGateway(t *testing.T) {
	mockGW := new(MockProductGateway)
	mockGW.On("Update", mock.Anything, "p1", mock.MatchedBy(func(patch map[string]interface{}) bool {
		_, hasID := patch["id"]
		return patch["category"] == "Alfajores" && !hasID
	})).Return(nil)
	mockGW.On("ListAll", mock.Anything).Return(remoteCatalogue(), nil)
	mockGW.On("ListFeatured", mock.Anything, FeaturedLimit).Return(remoteCatalogue()[:1], nil)
	eng := NewEngine(mockGW, zerolog.Nop())

	err := eng.Update(context.Background(), "p1", model.ProductPatch{
		"category":       model.CategoryOther,
		"customCategory": "Alfajores",
		"id":             "p1",
	})

	require.NoError(t, err)
	mockGW.AssertExpectations(t)
}

func TestEngine_Delete_OptimisticRemoval(t *testing.T) {
	mockGW := new(MockProductGateway)
	mockGW.On("ListAll", mock.Anything).Return(remoteCatalogue(), nil)
	mockGW.On("ListFeatured", mock.Anything, FeaturedLimit).Return(remoteCatalogue(), nil)
	mockGW.On("Delete", mock.Anything, "p1").Return(nil)
	eng := NewEngine(mockGW, zerolog.Nop())
	eng.LoadAll(context.Background())
	eng.LoadFeatured(context.Background())

	var observed []model.Product
	unsubscribe := eng.SubscribeAll(func(products []model.Product) {
		observed = products
	})
	defer unsubscribe()

	err := eng.Delete(context.Background(), "p1")

	require.NoError(t, err)
	require.Len(t, eng.Products(), 1)
	assert.Equal(t, "p2", eng.Products()[0].ID)
	require.Len(t, eng.Featured(), 1)
	assert.Equal(t, 1, eng.Stats().Total)

	// Observers saw the optimistic list without waiting for a snapshot.
	require.Len(t, observed, 1)
	assert.Equal(t, "p2", observed[0].ID)
}

func TestEngine_Delete_GatewayErrorLeavesListsIntact(t *testing.T) {
	mockGW := new(MockProductGateway)
	mockGW.On("ListAll", mock.Anything).Return(remoteCatalogue(), nil)
	mockGW.On("Delete", mock.Anything, "p1").Return(errors.New("permission denied"))
	eng := NewEngine(mockGW, zerolog.Nop())
	eng.LoadAll(context.Background())

	err := eng.Delete(context.Background(), "p1")

	assert.Error(t, err)
	assert.Len(t, eng.Products(), 2)
}

func TestEngine_Search_DegradesToFallback(t *testing.T) {
	mockGW := new(MockProductGateway)
	mockGW.On("Search", mock.Anything, "tiramisú").Return(nil, errors.New("down"))
	eng := NewEngine(mockGW, zerolog.Nop())

	results := eng.Search(context.Background(), "tiramisú")

	require.Len(t, results, 1)
	assert.Equal(t, "tiramisu-artesanal", results[0].ID)
}

func TestEngine_Search_RemoteEmptyIsEmpty(t *testing.T) {
	mockGW := new(MockProductGateway)
	mockGW.On("Search", mock.Anything, "sushi").Return([]model.Product{}, nil)
	eng := NewEngine(mockGW, zerolog.Nop())

	// A reachable remote with no matches is a real empty result, not a
	// fallback trigger.
	assert.Empty(t, eng.Search(context.Background(), "sushi"))
}

func TestEngine_GetByID(t *testing.T) {
	remote := &model.Product{ID: "p1", Name: "Cheesecake"}

	tests := []struct {
		name       string
		id         string
		mockReturn *model.Product
		mockError  error
		expectedID string
		expectNil  bool
	}{
		{
			name:       "remote hit",
			id:         "p1",
			mockReturn: remote,
			expectedID: "p1",
		},
		{
			name:       "remote miss falls back",
			id:         "tiramisu-artesanal",
			expectedID: "tiramisu-artesanal",
		},
		{
			name:       "remote error falls back",
			id:         "tarta-chocolate-premium",
			mockError:  errors.New("down"),
			expectedID: "tarta-chocolate-premium",
		},
		{
			name:      "absent everywhere",
			id:        "missing",
			expectNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockGW := new(MockProductGateway)
			mockGW.On("GetByID", mock.Anything, tt.id).Return(tt.mockReturn, tt.mockError)
			eng := NewEngine(mockGW, zerolog.Nop())

			product := eng.GetByID(context.Background(), tt.id)

			if tt.expectNil {
				assert.Nil(t, product)
			} else {
				require.NotNil(t, product)
				assert.Equal(t, tt.expectedID, product.ID)
			}
		})
	}
}

func TestEngine_ByCategory_DegradesToFallback(t *testing.T) {
	mockGW := new(MockProductGateway)
	mockGW.On("ListByCategory", mock.Anything, "tartas").Return(nil, errors.New("down"))
	eng := NewEngine(mockGW, zerolog.Nop())

	products := eng.ByCategory(context.Background(), "tartas")

	require.Len(t, products, 1)
	assert.Equal(t, "tarta-chocolate-premium", products[0].ID)
}

func TestEngine_Available_DegradesToFallback(t *testing.T) {
	mockGW := new(MockProductGateway)
	mockGW.On("ListAvailable", mock.Anything).Return(nil, errors.New("down"))
	eng := NewEngine(mockGW, zerolog.Nop())

	products := eng.Available(context.Background())

	// Every bundled product ships available.
	assert.Len(t, products, len(fallback.Catalog()))
}

func TestEngine_Available_UsesRemote(t *testing.T) {
	mockGW := new(MockProductGateway)
	remote := []model.Product{{ID: "p1", Name: "Hogaza", Available: true}}
	mockGW.On("ListAvailable", mock.Anything).Return(remote, nil)
	eng := NewEngine(mockGW, zerolog.Nop())

	products := eng.Available(context.Background())

	assert.Equal(t, remote, products)
}

func TestEngine_StartStop_WiresSubscriptions(t *testing.T) {
	mockGW := new(MockProductGateway)
	var pushAll func(gateway.Snapshot)
	allCancelled := false
	featCancelled := false

	mockGW.On("Subscribe", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			pushAll = args.Get(1).(func(gateway.Snapshot))
		}).
		Return(func() { allCancelled = true }, nil)
	mockGW.On("SubscribeFeatured", mock.Anything, FeaturedLimit, mock.Anything, mock.Anything).
		Return(func() { featCancelled = true }, nil)

	eng := NewEngine(mockGW, zerolog.Nop())
	require.NoError(t, eng.Start(context.Background()))

	// A pushed snapshot replaces the resident list wholesale.
	pushAll(remoteCatalogue())
	assert.Len(t, eng.Products(), 2)

	// An empty snapshot substitutes the bundled data.
	pushAll(gateway.Snapshot{})
	assert.Equal(t, fallback.Catalog(), eng.Products())

	eng.Stop()
	assert.True(t, allCancelled)
	assert.True(t, featCancelled)
}

func TestEngine_Start_FeaturedFailureCancelsAll(t *testing.T) {
	mockGW := new(MockProductGateway)
	allCancelled := false

	mockGW.On("Subscribe", mock.Anything, mock.Anything, mock.Anything).
		Return(func() { allCancelled = true }, nil)
	mockGW.On("SubscribeFeatured", mock.Anything, FeaturedLimit, mock.Anything, mock.Anything).
		Return(nil, errors.New("listen failed"))

	eng := NewEngine(mockGW, zerolog.Nop())

	err := eng.Start(context.Background())

	assert.Error(t, err)
	assert.True(t, allCancelled)
}

func TestEngine_Unsubscribe_StopsNotifications(t *testing.T) {
	mockGW := new(MockProductGateway)
	mockGW.On("ListAll", mock.Anything).Return(remoteCatalogue(), nil)
	eng := NewEngine(mockGW, zerolog.Nop())

	calls := 0
	unsubscribe := eng.SubscribeAll(func([]model.Product) { calls++ })

	eng.LoadAll(context.Background())
	assert.Equal(t, 1, calls)

	unsubscribe()
	eng.LoadAll(context.Background())
	assert.Equal(t, 1, calls)
}
