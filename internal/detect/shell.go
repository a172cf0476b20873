package detect

import (
	"context"

	"github.com/sarasmohod/hackathon-rift/internal/config"
	"github.com/sarasmohod/hackathon-rift/internal/domain"
	"github.com/sarasmohod/hackathon-rift/internal/graph"
	"github.com/sarasmohod/hackathon-rift/internal/pkg/logger"
)

// ShellDetector enumerates layered shell chains: simple directed paths
// between non-whitelisted endpoints where every intermediate account is
// a low-activity node (total degree within the configured band) and not
// whitelisted. Each qualifying path is emitted as a separate chain even
// when paths overlap; absence of a path between a pair is not an error.
type ShellDetector struct {
	minPathNodes int
	maxHops      int
	degreeMin    int
	degreeMax    int
	log          *logger.Logger
}

// NewShellDetector creates a shell network detector from detection config.
func NewShellDetector(cfg *config.DetectionConfig, log *logger.Logger) *ShellDetector {
	return &ShellDetector{
		minPathNodes: cfg.ShellMinPathNodes,
		maxHops:      cfg.ShellMaxHops,
		degreeMin:    cfg.ShellDegreeMin,
		degreeMax:    cfg.ShellDegreeMax,
		log:          log.Named("shell_detector"),
	}
}

// Detect returns all qualifying shell chains in deterministic order:
// sources and targets are visited in node insertion order and paths are
// explored depth-first along first-seen adjacency.
func (d *ShellDetector) Detect(ctx context.Context, g *graph.DirectedGraph, whitelist domain.Whitelist) ([][]string, error) {
	lowActivity := make(map[string]bool, g.NodeCount())
	for _, n := range g.Nodes() {
		deg := g.Degree(n)
		if deg >= d.degreeMin && deg <= d.degreeMax {
			lowActivity[n] = true
		}
	}

	s := &shellSearch{
		graph:        g,
		whitelist:    whitelist,
		lowActivity:  lowActivity,
		minPathNodes: d.minPathNodes,
		maxHops:      d.maxHops,
		onPath:       make(map[string]bool),
	}

	var chains [][]string
	for _, source := range g.Nodes() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// Sources must be genuine endpoints, not shell accounts themselves.
		if lowActivity[source] || whitelist.Contains(source) {
			continue
		}
		for _, target := range g.Nodes() {
			if target == source || whitelist.Contains(target) {
				continue
			}
			s.target = target
			s.path = s.path[:0]
			s.path = append(s.path, source)
			s.onPath[source] = true
			s.walk(source, &chains)
			delete(s.onPath, source)
		}
	}

	return chains, nil
}

type shellSearch struct {
	graph       *graph.DirectedGraph
	whitelist   domain.Whitelist
	lowActivity map[string]bool

	minPathNodes int
	maxHops      int

	target string
	path   []string
	onPath map[string]bool
}

// walk explores simple paths toward the target, up to maxHops edges.
// Only nodes eligible as intermediaries are descended into, which
// prunes without losing any qualifying path: a chain whose interior
// contains a high-activity or whitelisted node is discarded anyway.
func (s *shellSearch) walk(current string, out *[][]string) {
	for _, next := range s.graph.Successors(current) {
		if next == s.target {
			if len(s.path)+1 >= s.minPathNodes {
				chain := make([]string, len(s.path)+1)
				copy(chain, s.path)
				chain[len(s.path)] = next
				*out = append(*out, chain)
			}
			continue
		}
		if len(s.path) >= s.maxHops {
			continue
		}
		if s.onPath[next] || !s.lowActivity[next] || s.whitelist.Contains(next) {
			continue
		}

		s.path = append(s.path, next)
		s.onPath[next] = true
		s.walk(next, out)
		delete(s.onPath, next)
		s.path = s.path[:len(s.path)-1]
	}
}
