package core

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/qixiboss/gaitscore/internal/contract"
	"github.com/qixiboss/gaitscore/internal/ingest"
	"github.com/qixiboss/gaitscore/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheTTL bounds how long a parsed log stays valid
const cacheTTL = 7 * 24 * time.Hour

// cachedFrames is the JSON payload stored per parsed log.
type cachedFrames struct {
	Frames  map[int]map[schema.Joint]r3.Vec `json:"frames"`
	Summary ingest.Summary                  `json:"summary"`
}

// LoadFrameStore reads the configured joint log, using the parse cache when available.
func LoadFrameStore(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.FrameStore, ingest.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, ingest.Summary{}, err
	}
	content, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return nil, ingest.Summary{}, fmt.Errorf("failed to read joint log: %w", err)
	}

	var frames contract.CacheStore
	if mgr != nil {
		frames = mgr.GetFrameStore()
	}
	if frames == nil {
		// Fallback to direct parsing
		return ingest.Parse(bytes.NewReader(content), cfg.Units)
	}

	key := generateCacheKey(content, cfg.Units)

	// Check for cache hit
	if cached := checkCacheHit(frames, key); cached != nil {
		return schema.NewFrameStore(cached.Frames), cached.Summary, nil
	}

	// Cache miss: parse and store
	return computeAndStore(content, cfg.Units, frames, key)
}

// checkCacheHit attempts to retrieve and validate a cached parse
func checkCacheHit(frames contract.CacheStore, key string) *cachedFrames {
	data, version, ts, err := frames.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > cacheTTL {
		return nil
	}
	var cached cachedFrames
	if err := json.Unmarshal(data, &cached); err != nil || len(cached.Frames) == 0 {
		return nil
	}
	return &cached // Cache hit
}

// computeAndStore parses the log and stores the frames in cache
func computeAndStore(content []byte, units schema.Units, frames contract.CacheStore, key string) (*schema.FrameStore, ingest.Summary, error) {
	store, summary, err := ingest.Parse(bytes.NewReader(content), units)
	if err != nil {
		return nil, summary, err
	}

	data, err := json.Marshal(cachedFrames{Frames: store.Export(), Summary: summary})
	if err == nil {
		err = frames.Set(key, data, currentCacheVersion, time.Now().Unix())
	}
	if err != nil {
		contract.LogWarn("Failed to cache parsed joint log", err)
	}
	return store, summary, nil
}

// generateCacheKey creates a unique key from the log content and unit mode
func generateCacheKey(content []byte, units schema.Units) string {
	h := sha256.New()
	_, _ = h.Write(content)
	_, _ = fmt.Fprintf(h, ":%s:%d", units, currentCacheVersion)
	return fmt.Sprintf("%x", h.Sum(nil))
}
