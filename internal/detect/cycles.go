package detect

import (
	"context"

	"github.com/sarasmohod/hackathon-rift/internal/config"
	"github.com/sarasmohod/hackathon-rift/internal/domain"
	"github.com/sarasmohod/hackathon-rift/internal/graph"
	"github.com/sarasmohod/hackathon-rift/internal/pkg/logger"
)

// CycleDetector enumerates elementary directed cycles over the
// multi-edge account graph. A cycle is identified by its node sequence;
// parallel edges between the same pair do not create additional cycles.
// Enumeration is capped intrinsically at the configured maximum length
// rather than enumerating longer cycles only to discard them.
type CycleDetector struct {
	minLength int
	maxLength int
	log       *logger.Logger
}

// NewCycleDetector creates a cycle detector from detection config.
func NewCycleDetector(cfg *config.DetectionConfig, log *logger.Logger) *CycleDetector {
	return &CycleDetector{
		minLength: cfg.CycleMinLength,
		maxLength: cfg.CycleMaxLength,
		log:       log.Named("cycle_detector"),
	}
}

// Detect returns every elementary cycle whose length falls within the
// configured bounds and which touches no whitelisted account. Each
// cycle is reported once, rotated to start at its lowest-index node, so
// the result order is stable within one invocation.
func (d *CycleDetector) Detect(ctx context.Context, g *graph.DirectedGraph, whitelist domain.Whitelist) ([][]string, error) {
	var cycles [][]string

	s := &cycleSearch{
		graph:     g,
		whitelist: whitelist,
		minLength: d.minLength,
		maxLength: d.maxLength,
		onPath:    make(map[string]bool),
	}

	for _, start := range g.Nodes() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if whitelist.Contains(start) {
			continue
		}
		s.start = start
		s.startIndex = g.NodeIndex(start)
		s.path = s.path[:0]
		s.path = append(s.path, start)
		s.onPath[start] = true
		s.walk(start, &cycles)
		delete(s.onPath, start)
	}

	return cycles, nil
}

type cycleSearch struct {
	graph     *graph.DirectedGraph
	whitelist domain.Whitelist

	minLength int
	maxLength int

	start      string
	startIndex int
	path       []string
	onPath     map[string]bool
}

// walk extends the current path by one node at a time. Duplicate
// enumeration is avoided by never descending into nodes that precede
// the start node in insertion order: every cycle is discovered exactly
// once, from its lowest-index member.
func (s *cycleSearch) walk(current string, out *[][]string) {
	for _, next := range s.graph.Successors(current) {
		if next == s.start {
			if len(s.path) >= s.minLength {
				cycle := make([]string, len(s.path))
				copy(cycle, s.path)
				*out = append(*out, cycle)
			}
			continue
		}
		if len(s.path) >= s.maxLength {
			continue
		}
		if s.graph.NodeIndex(next) < s.startIndex {
			continue
		}
		if s.onPath[next] || s.whitelist.Contains(next) {
			continue
		}

		s.path = append(s.path, next)
		s.onPath[next] = true
		s.walk(next, out)
		delete(s.onPath, next)
		s.path = s.path[:len(s.path)-1]
	}
}
