package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sarasmohod/hackathon-rift/internal/config"
	"github.com/sarasmohod/hackathon-rift/internal/detect"
	"github.com/sarasmohod/hackathon-rift/internal/domain"
	"github.com/sarasmohod/hackathon-rift/internal/graph"
	"github.com/sarasmohod/hackathon-rift/internal/pkg/logger"
)

// Engine is the detection-and-scoring core. One analysis run processes
// one uploaded dataset to completion; all state lives in the run and no
// global mutable state persists between runs.
type Engine struct {
	cycles   *detect.CycleDetector
	smurfing *detect.SmurfingDetector
	shells   *detect.ShellDetector

	scoring *config.ScoringConfig
	log     *logger.Logger
}

// NewEngine creates an analysis engine from configuration.
func NewEngine(cfg *config.Config, log *logger.Logger) *Engine {
	return &Engine{
		cycles:   detect.NewCycleDetector(&cfg.Detection, log),
		smurfing: detect.NewSmurfingDetector(&cfg.Detection, log),
		shells:   detect.NewShellDetector(&cfg.Detection, log),
		scoring:  &cfg.Scoring,
		log:      log.Named("analysis_engine"),
	}
}

// Analysis bundles the scored result with the graphs it was computed
// over. The directed graph backs the topology projection handed to the
// visualization layer; the undirected graph is the aggregated volume
// view reserved for community-style analysis.
type Analysis struct {
	ID         uuid.UUID
	Result     *domain.AnalysisResult
	Graph      *graph.DirectedGraph
	Aggregated *graph.UndirectedGraph
}

// Analyze runs one complete detection-and-scoring pass over the
// transaction table. The three detectors are read-only over the graph
// and table and run concurrently; aggregation is sequential because
// ring-id assignment and the last-ring-wins account semantics depend on
// the fixed order cycles, fan-in, fan-out, shells. On any failure a
// single structured error is returned and no partial result.
func (e *Engine) Analyze(ctx context.Context, txs []domain.Transaction, whitelist domain.Whitelist) (*Analysis, error) {
	start := time.Now()
	analysisID := uuid.New()

	e.log.AnalysisStarted(analysisID.String(), len(txs), len(whitelist))

	// The ledger pre-pass also guards the empty table before any
	// detector runs.
	ledger, err := newRingLedger(txs, e.scoring)
	if err != nil {
		e.log.AnalysisFailed(analysisID.String(), err)
		return nil, err
	}

	dg, ug, err := graph.Build(txs)
	if err != nil {
		e.log.AnalysisFailed(analysisID.String(), err)
		return nil, err
	}
	e.log.GraphBuilt(analysisID.String(), dg.NodeCount(), dg.EdgeCount())

	var (
		cycles        [][]string
		fanIn, fanOut []detect.SmurfRing
		chains        [][]string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		cycles, err = e.cycles.Detect(gctx, dg, whitelist)
		return err
	})
	g.Go(func() error {
		var err error
		fanIn, fanOut, err = e.smurfing.Detect(gctx, txs, whitelist)
		return err
	})
	g.Go(func() error {
		var err error
		chains, err = e.shells.Detect(gctx, dg, whitelist)
		return err
	})

	if err := g.Wait(); err != nil {
		e.log.AnalysisFailed(analysisID.String(), err)
		return nil, err
	}

	e.log.CycleDetectionCompleted(analysisID.String(), len(cycles))
	e.log.SmurfingDetectionCompleted(analysisID.String(), len(fanIn), len(fanOut))
	e.log.ShellDetectionCompleted(analysisID.String(), len(chains))

	ledger.recordCycles(cycles, txs)
	ledger.recordSmurfRings(fanIn)
	ledger.recordSmurfRings(fanOut)
	ledger.recordShellChains(chains)

	elapsed := time.Since(start)
	result := ledger.result(dg.NodeCount(), elapsed)

	e.log.AnalysisCompleted(
		analysisID.String(),
		result.Summary.SuspiciousAccountsFlagged,
		result.Summary.FraudRingsDetected,
		elapsed,
	)

	return &Analysis{
		ID:         analysisID,
		Result:     result,
		Graph:      dg,
		Aggregated: ug,
	}, nil
}
