package factory

import (
	"time"

	"github.com/mcoot/dotsgame/internal/dependencies/mocks"
	"github.com/mcoot/dotsgame/internal/model"
	"github.com/mcoot/dotsgame/internal/services/board"
	"github.com/mcoot/dotsgame/internal/storage/memory"
	"github.com/mcoot/dotsgame/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	store := memory.NewWithClock(mockClock)

	app := newWithDependencies(store, mockClock, board.NewCache(), testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}

// Edges lists every edge of a fresh board, horizontals first, in row-major order
func Edges() []model.Edge {
	var edges []model.Edge
	for row := 0; row <= model.GridSize; row++ {
		for col := 0; col < model.GridSize; col++ {
			edges = append(edges, model.Edge{Orientation: model.Horizontal, Row: row, Col: col})
		}
	}
	for row := 0; row < model.GridSize; row++ {
		for col := 0; col <= model.GridSize; col++ {
			edges = append(edges, model.Edge{Orientation: model.Vertical, Row: row, Col: col})
		}
	}
	return edges
}
