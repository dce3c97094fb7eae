package arbor

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// logger receives debug-mode diagnostics: warnings at warn level, per-frame
// phase timings at debug level.
var logger = newLogger(os.Stderr, log.InfoLevel)

// newLogger creates a logger with the "arbor" prefix and millisecond timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          "arbor",
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// SetLogger replaces the package logger. Passing nil restores the default.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = newLogger(os.Stderr, log.InfoLevel)
	}
	logger = l
}

// Logger returns the package logger.
func Logger() *log.Logger {
	return logger
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// debugStats holds per-frame phase timings. Only populated in debug mode.
type debugStats struct {
	setupTime     time.Duration
	updateTime    time.Duration
	transformTime time.Duration
	deferTime     time.Duration
	nodeCount     int
}

// debugLog writes the frame's phase timings at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.setupTime + stats.updateTime + stats.transformTime + stats.deferTime
	logger.Debug("frame",
		"setup", stats.setupTime,
		"update", stats.updateTime,
		"transform", stats.transformTime,
		"deferred", stats.deferTime,
		"total", total,
		"nodes", stats.nodeCount,
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("arbor debug: %s on disposed node %q", op, n.name))
	}
}

// debugMaxTreeDepth is the depth above which a warning is logged.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := n.Depth() + 1
	if depth > debugMaxTreeDepth {
		logger.Warn("tree depth exceeds threshold",
			"node", n.name, "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

// debugMaxChildCount is the child count above which a warning is logged.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		logger.Warn("child count exceeds threshold",
			"node", n.name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}

// countNodes returns the number of nodes in n's subtree, n included.
func countNodes(n *Node) int {
	count := 1
	for _, c := range n.children {
		count += countNodes(c)
	}
	return count
}
