package server

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"crossgen/internal/config"
	"crossgen/internal/gridstate"
	"crossgen/internal/patternindex"
	"crossgen/internal/search"
	"crossgen/internal/sink"
	"crossgen/internal/store"
	"crossgen/internal/wordset"
)

// handlers holds the shared, process-lifetime state behind every
// route: the loaded dictionary, the pattern index built from it (kept
// in memory so repeated /api/generate calls skip re-indexing), the
// sqlite-backed index cache, the store and progress hub, and the admin
// auth service.
type handlers struct {
	cfg     config.Config
	st      *store.Store
	auth    *authService
	hub     *progressHub
	words   *wordset.Set
	idx     *patternindex.Index
	cache   *patternindex.Cache
	cacheDB *sql.DB
}

func newHandlers(cfg config.Config, st *store.Store, auth *authService, hub *progressHub) (*handlers, error) {
	words, err := wordset.Load(cfg.DictionaryPath, cfg.Alphabet)
	if err != nil {
		return nil, err
	}

	h := &handlers{cfg: cfg, st: st, auth: auth, hub: hub, words: words}

	if cfg.PatternCachePath != "" {
		cache, db, err := patternindex.OpenCache(cfg.PatternCachePath)
		if err != nil {
			return nil, err
		}
		h.cache = cache
		h.cacheDB = db
	}

	h.idx, err = h.loadOrBuildIndex()
	if err != nil {
		return nil, err
	}
	return h, nil
}

// loadOrBuildIndex returns the cached index for the current dictionary
// and config if present, building and caching it otherwise.
func (h *handlers) loadOrBuildIndex() (*patternindex.Index, error) {
	if h.cache == nil {
		return patternindex.Build(h.words, h.cfg.Alphabet), nil
	}

	hash := patternindex.HashDictionary(h.words)
	if idx, ok, err := h.cache.Get(hash, h.cfg.Alphabet); err != nil {
		log.Printf("server: pattern index cache read failed, rebuilding: %v", err)
	} else if ok {
		return idx, nil
	}

	idx := patternindex.Build(h.words, h.cfg.Alphabet)
	if err := h.cache.Put(hash, idx); err != nil {
		log.Printf("server: pattern index cache write failed: %v", err)
	}
	return idx, nil
}

// rebuildIndex forces a fresh build, bypassing any cached entry, and
// refreshes the cache with the result.
func (h *handlers) rebuildIndex() {
	idx := patternindex.Build(h.words, h.cfg.Alphabet)
	if h.cache != nil {
		if err := h.cache.Put(patternindex.HashDictionary(h.words), idx); err != nil {
			log.Printf("server: pattern index cache write failed: %v", err)
		}
	}
	h.idx = idx
}

// Close releases the cache's database handle, if one was opened.
func (h *handlers) Close() error {
	if h.cacheDB != nil {
		return h.cacheDB.Close()
	}
	return nil
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
}

func (h *handlers) metrics(c *gin.Context) {
	c.JSON(http.StatusOK, metricsSnapshot())
}

// hubSink adapts the progress hub into a gridstate.Sink so a single
// HTTP-triggered search can stream its close-call/solvable emissions
// to every connected websocket client, in addition to whatever
// file/Postgres/Redis sinks the deployment configured.
type hubSink struct {
	hub  *progressHub
	kind string
}

func (s *hubSink) EmitSolvable(g *gridstate.Grid) error  { return s.publish(g, "solvable") }
func (s *hubSink) EmitCloseCall(g *gridstate.Grid) error { return s.publish(g, "close_call") }

func (s *hubSink) publish(g *gridstate.Grid, kind string) error {
	words := make([]string, 0, len(g.Placements()))
	for _, p := range g.Placements() {
		words = append(words, p.Word)
	}
	payload, err := json.Marshal(gin.H{
		"kind":         kind,
		"signature":    g.Signature(),
		"filled_cells": g.FilledCells(),
		"grid_size":    g.Size(),
		"words":        words,
	})
	if err != nil {
		return err
	}
	s.hub.publish(payload)
	return nil
}

type generateResponse struct {
	Signature   string   `json:"signature"`
	GridSize    int      `json:"grid_size"`
	FilledCells int      `json:"filled_cells"`
	Complete    bool     `json:"complete"`
	Rows        []string `json:"rows"`
	Words       []string `json:"words"`
}

func (h *handlers) generate(c *gin.Context) {
	var req struct {
		Seed int64 `json:"seed"`
	}
	_ = c.ShouldBindJSON(&req)

	sinks := []gridstate.Sink{&hubSink{hub: h.hub}}
	if h.cfg.SolvableDir != "" {
		sinks = append(sinks, sink.NewFileSink(h.cfg.SolvableDir))
	}
	if h.st != nil && h.st.DB != nil {
		sinks = append(sinks, sink.NewPostgresSink(h.st))
	}
	if h.st != nil && h.st.Redis != nil {
		sinks = append(sinks, sink.NewRedisSink(h.st, "crossgen:progress"))
	}

	var visited search.VisitedSet
	if h.st != nil && h.st.Redis != nil {
		visited = store.NewRedisVisitedSet(h.st.Redis, "crossgen:visited")
	}

	searcher := search.New(h.idx, h.words, h.cfg.Alphabet, sink.NewMultiSink(sinks...), req.Seed, visited)
	g, err := searcher.Run()
	if err != nil {
		c.JSON(http.StatusAccepted, gin.H{"status": "exhausted", "error": err.Error(), "attempts": searcher.Attempts()})
		return
	}

	rows := make([]string, g.Size())
	for r := 0; r < g.Size(); r++ {
		rows[r] = g.RowState(r)
	}
	words := make([]string, 0, len(g.Placements()))
	for _, p := range g.Placements() {
		words = append(words, p.Word)
	}

	c.JSON(http.StatusOK, generateResponse{
		Signature:   g.Signature(),
		GridSize:    g.Size(),
		FilledCells: g.FilledCells(),
		Complete:    g.IsComplete(),
		Rows:        rows,
		Words:       words,
	})
}

func (h *handlers) progress(c *gin.Context) {
	serveProgressWs(h.hub, c.Writer, c.Request)
}

func (h *handlers) adminLogin(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if h.cfg.AdminPassword == "" || !h.auth.checkPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	token, err := h.auth.generateToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *handlers) rebuildIndexHandler(c *gin.Context) {
	words, err := wordset.Load(h.cfg.DictionaryPath, h.cfg.Alphabet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.words = words
	h.rebuildIndex()
	c.JSON(http.StatusOK, gin.H{
		"liner_count":             h.idx.LinerCount(),
		"real_intermediary_count": h.idx.RealIntermediaryCount(),
	})
}

func (h *handlers) purgeCache(c *gin.Context) {
	if h.st != nil && h.st.Redis != nil {
		if err := h.st.Redis.Del(c.Request.Context(), "crossgen:visited").Err(); err != nil {
			log.Printf("server: purge-cache: redis del failed: %v", err)
		}
	}
	if h.cache != nil {
		if err := h.cache.Delete(patternindex.HashDictionary(h.words)); err != nil {
			log.Printf("server: purge-cache: pattern index cache delete failed: %v", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "purged"})
}
