package service

import (
	"bytes"
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tratlus/internal/db"
	"github.com/alexanderramin/tratlus/internal/llm"
	"github.com/alexanderramin/tratlus/internal/repository"
	"github.com/alexanderramin/tratlus/internal/testutil"
)

type testRepos struct {
	db          *sql.DB
	days        *repository.SQLiteDayRepo
	itineraries *repository.SQLiteItineraryRepo
	profiles    *repository.SQLiteProfileRepo
	uow         db.UnitOfWork
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		db:          database,
		days:        repository.NewSQLiteDayRepo(database),
		itineraries: repository.NewSQLiteItineraryRepo(database),
		profiles:    repository.NewSQLiteProfileRepo(database),
		uow:         testutil.NewTestUoW(database),
	}
}

// scriptedLLM answers Generate calls from a queue and records the requests.
type scriptedLLM struct {
	mu        sync.Mutex
	responses []string
	err       error
	requests  []llm.GenerateRequest
}

func (s *scriptedLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	var text string
	if len(s.responses) > 0 {
		text, s.responses = s.responses[0], s.responses[1:]
	}
	return &llm.GenerateResponse{Text: text, Model: "scripted"}, nil
}

func (s *scriptedLLM) Available(context.Context) bool { return true }

// recordingObserver keeps every event it sees.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last(t *testing.T) UseCaseEvent {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.events)
	return r.events[len(r.events)-1]
}

func logBuffer() (*bytes.Buffer, UseCaseObserver) {
	var buf bytes.Buffer
	return &buf, NewLogUseCaseObserver(&buf)
}
