// Command loadgen drives synthetic traffic against a running anticipation
// API. It keeps harvested ids in a parameter pool so later requests can
// reference entities created by earlier ones: pending request ids feed the
// approve/reject calls, decided ids feed deliberate invalid-transition calls,
// and creator ids are shared across the whole run.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/anticipay/tools/loadgen/internal/pool"
	"github.com/google/uuid"
)

type counters struct {
	created            atomic.Int64
	duplicateRejected  atomic.Int64
	belowMinRejected   atomic.Int64
	approved           atomic.Int64
	rejected           atomic.Int64
	invalidTransitions atomic.Int64
	simulated          atomic.Int64
	listed             atomic.Int64
	unexpected         atomic.Int64
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type requestView struct {
	ID        string `json:"id"`
	CreatorID string `json:"creatorId"`
	Status    string `json:"status"`
}

type generator struct {
	baseURL string
	client  *http.Client
	params  pool.ParameterPool
	stats   *counters
}

func main() {
	var (
		baseURL     string
		creators    int
		concurrency int
		duration    time.Duration
		timeout     time.Duration
	)

	flag.StringVar(&baseURL, "base-url", "http://localhost:8080", "Base URL of the anticipation API")
	flag.IntVar(&creators, "creators", 50, "Number of distinct creator ids to drive traffic with")
	flag.IntVar(&concurrency, "concurrency", 8, "Number of concurrent workers")
	flag.DurationVar(&duration, "duration", 30*time.Second, "How long to run")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "Per-request timeout")
	flag.Parse()

	logger := log.New(os.Stdout, "loadgen ", log.LstdFlags|log.Lmsgprefix)

	cfg := pool.DefaultPoolConfig()
	cfg.DefaultTTL = 0 // ids stay valid for the whole run
	params := pool.NewShardedParameterPool(cfg)
	defer params.Close()

	gen := &generator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		params:  params,
		stats:   &counters{},
	}

	// Seed the creator pool. The server never validates creator existence, so
	// freshly minted UUIDs are enough to stand in for real accounts.
	ctx := context.Background()
	for i := 0; i < creators; i++ {
		v := pool.NewParameterValue(uuid.NewString(), pool.SemanticTypeCreatorID, 0)
		if _, err := params.Add(ctx, v); err != nil {
			logger.Fatalf("seeding creator pool: %v", err)
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()

	logger.Printf("starting: url=%s creators=%d concurrency=%d duration=%s",
		baseURL, creators, concurrency, duration)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			gen.run(runCtx, rand.New(rand.NewSource(seed)))
		}(time.Now().UnixNano() + int64(i))
	}
	wg.Wait()
	elapsed := time.Since(start)

	gen.report(ctx, logger, elapsed)
}

// run is a single worker loop. Each iteration picks one scenario weighted
// toward creation so the pending pool keeps refilling.
func (g *generator) run(ctx context.Context, rng *rand.Rand) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		switch n := rng.Intn(100); {
		case n < 40:
			g.createRequest(ctx, rng)
		case n < 60:
			g.decideRequest(ctx, rng)
		case n < 80:
			g.simulateRequest(ctx, rng)
		default:
			g.listRequests(ctx, rng)
		}
	}
}

func (g *generator) createRequest(ctx context.Context, rng *rand.Rand) {
	creator, err := g.params.GetRandom(ctx, pool.SemanticTypeCreatorID)
	if err != nil || creator == nil {
		return
	}
	creatorID := creator.Value.(string)

	// A slice of the traffic deliberately goes below the minimum to exercise
	// the fail-fast rejection path.
	gross := 100 + rng.Float64()*9900
	if rng.Intn(10) == 0 {
		gross = rng.Float64() * 99
	}

	body, _ := json.Marshal(map[string]any{
		"creatorId":   creatorID,
		"grossAmount": float64(int(gross*100)) / 100,
	})

	resp, err := g.post(ctx, "/api/v1/anticipations", body)
	if err != nil {
		g.stats.unexpected.Add(1)
		return
	}

	switch {
	case resp.Success:
		var view requestView
		if err := json.Unmarshal(resp.Data, &view); err == nil && view.ID != "" {
			v := pool.NewParameterValue(view.ID, pool.SemanticTypePendingID, 0).
				WithSource("POST /anticipations", "$.data.id")
			_, _ = g.params.Add(ctx, v)
		}
		g.stats.created.Add(1)
	case resp.Error == "Creator already has a pending anticipation request":
		g.stats.duplicateRejected.Add(1)
	case resp.Error == "Gross amount must be at least 100.00":
		g.stats.belowMinRejected.Add(1)
	default:
		g.stats.unexpected.Add(1)
	}
}

func (g *generator) decideRequest(ctx context.Context, rng *rand.Rand) {
	// One decision in ten re-decides an already-decided request, which the
	// server must refuse.
	semantic := pool.SemanticTypePendingID
	if rng.Intn(10) == 0 {
		semantic = pool.SemanticTypeDecidedID
	}

	v, err := g.params.GetRandom(ctx, semantic)
	if err != nil || v == nil {
		return
	}
	id := v.Value.(string)

	action := "approve"
	if rng.Intn(2) == 0 {
		action = "reject"
	}

	resp, err := g.post(ctx, fmt.Sprintf("/api/v1/anticipations/%s/%s", id, action), nil)
	if err != nil {
		g.stats.unexpected.Add(1)
		return
	}

	switch {
	case resp.Success && semantic == pool.SemanticTypePendingID:
		if action == "approve" {
			g.stats.approved.Add(1)
		} else {
			g.stats.rejected.Add(1)
		}
		_, _ = g.params.Remove(ctx, v)
		decided := pool.NewParameterValue(id, pool.SemanticTypeDecidedID, 0).
			WithSource("POST /anticipations/{id}/"+action, "$.data.id")
		_, _ = g.params.Add(ctx, decided)
	case !resp.Success && semantic == pool.SemanticTypeDecidedID:
		g.stats.invalidTransitions.Add(1)
	case !resp.Success && semantic == pool.SemanticTypePendingID:
		// Another worker decided it first; move it out of the pending pool so
		// it stops being retried.
		_, _ = g.params.Remove(ctx, v)
		decided := pool.NewParameterValue(id, pool.SemanticTypeDecidedID, 0)
		_, _ = g.params.Add(ctx, decided)
		g.stats.invalidTransitions.Add(1)
	default:
		g.stats.unexpected.Add(1)
	}
}

func (g *generator) simulateRequest(ctx context.Context, rng *rand.Rand) {
	gross := 100 + rng.Float64()*9900
	url := fmt.Sprintf("%s/api/v1/anticipations/simulate?grossAmount=%.2f", g.baseURL, gross)

	resp, err := g.get(ctx, url)
	if err != nil || !resp.Success {
		g.stats.unexpected.Add(1)
		return
	}
	g.stats.simulated.Add(1)
}

func (g *generator) listRequests(ctx context.Context, rng *rand.Rand) {
	creator, err := g.params.GetRandom(ctx, pool.SemanticTypeCreatorID)
	if err != nil || creator == nil {
		return
	}

	url := fmt.Sprintf("%s/api/v1/anticipations?creatorId=%s", g.baseURL, creator.Value.(string))
	resp, err := g.get(ctx, url)
	if err != nil || !resp.Success {
		g.stats.unexpected.Add(1)
		return
	}
	g.stats.listed.Add(1)
}

func (g *generator) post(ctx context.Context, path string, body []byte) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return g.do(req)
}

func (g *generator) get(ctx context.Context, url string) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return g.do(req)
}

func (g *generator) do(req *http.Request) (*apiResponse, error) {
	httpResp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var resp apiResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("status %d: %w", httpResp.StatusCode, err)
	}
	return &resp, nil
}

func (g *generator) report(ctx context.Context, logger *log.Logger, elapsed time.Duration) {
	s := g.stats
	total := s.created.Load() + s.duplicateRejected.Load() + s.belowMinRejected.Load() +
		s.approved.Load() + s.rejected.Load() + s.invalidTransitions.Load() +
		s.simulated.Load() + s.listed.Load() + s.unexpected.Load()

	logger.Printf("finished in %s: %d requests (%.1f/s)", elapsed.Round(time.Millisecond), total,
		float64(total)/elapsed.Seconds())
	logger.Printf("  created=%d approved=%d rejected=%d simulated=%d listed=%d",
		s.created.Load(), s.approved.Load(), s.rejected.Load(), s.simulated.Load(), s.listed.Load())
	logger.Printf("  expected rejections: duplicate=%d below_min=%d invalid_transition=%d",
		s.duplicateRejected.Load(), s.belowMinRejected.Load(), s.invalidTransitions.Load())
	if n := s.unexpected.Load(); n > 0 {
		logger.Printf("  UNEXPECTED failures: %d", n)
	}

	if poolStats, err := g.params.Stats(ctx); err == nil {
		logger.Printf("  pool: values=%d adds=%d hit_rate=%.1f%% evictions=%d",
			poolStats.TotalValues, poolStats.AddCount, poolStats.HitRate(), poolStats.EvictionCount)
	}
}
