package server

import (
	"context"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/discontent/discontent/internal/utils"
	"github.com/discontent/discontent/pkg/scores"
	"github.com/discontent/discontent/pkg/storage"
)

// Store is the vote persistence the backend needs. *storage.DB implements it.
type Store interface {
	RecordVote(ctx context.Context, hostname, userID string, value scores.Vote) (storage.VoteResult, error)
	Tallies(ctx context.Context, hostnames []string) (map[string]scores.Tally, error)
}

// Server is a local stand-in for the remote scoring API.
type Server struct {
	Store     Store
	Randomize bool // answer with random scores instead of tallies

	mu  sync.Mutex
	rnd *rand.Rand
}

func New(store Store, randomize bool) *Server {
	return &Server{
		Store:     store,
		Randomize: randomize,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/scores", s.cors(s.handleScores))
	mux.HandleFunc("POST /v1/vote", s.cors(s.handleVote))
	mux.HandleFunc("OPTIONS /v1/", s.cors(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	return mux
}

func (s *Server) Start(addr string) error {
	utils.Log.Infof("Starting scoring backend on %s (random scores: %v)", addr, s.Randomize)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) cors(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET")
		next(w, r)
	}
}

func (s *Server) randomScores(req scores.ScoresRequest) []scores.LinkScore {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return scores.Random(req, s.rnd)
}
