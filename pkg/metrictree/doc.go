/*
Package metrictree provides a hierarchical metrics registry: a tree of
named, typed value holders that can be mutated concurrently and dumped
as an indented text report.

# Overview

A tree is anchored by a Root, which is the factory for every node and
the owner of the single lock that serializes access to the atomic
leaves beneath it. Leaves hold one typed value each; traversal renders
every live leaf in append order, indented by depth.

Parents never own their children. Appending a node records a weak
reference: release the node's owning handle and the next report simply
skips it, with no tree surgery and no error. The same node may be
appended under several parents, so the structure is a DAG of weak
edges rather than a strict tree.

# Basic Usage

Create a root, hang storage nodes off it, commit values, and visit:

	root := metrictree.NewRoot()

	greeting := metrictree.NewAtomicStorage[string](root)
	root.Append(greeting)
	greeting.Commit("hello")

	count := metrictree.NewAtomicStorage[int](root)
	greeting.Append(count)
	count.Commit(2)

	root.Visit()

This writes to stdout:

	 -!- R E P O R T -!-
	 -  hello
	   -  2
	 -@- _ _ _ _ _ _ -@-

followed by two blank lines.

# Storage Kinds

Storage is unsynchronized: concurrent Commit and Visit on one instance
is undefined behavior, by contract. AtomicStorage serializes every
value read and write against the Root's shared lock, so a report can
never observe a torn write. All atomic nodes under one root share that
single lock; the critical section covers only the value replace or the
value read, never a recursive traversal step.

# Ownership and Release

The caller that creates a node is its sole strong owner. Releasing it
makes every weak reference to it resolve to nothing:

	temp := metrictree.NewAtomicStorage[string](root)
	root.Append(temp)
	temp.Commit("transient")
	root.Visit()   // renders "transient"
	temp.Release()
	root.Visit()   // the line is gone, no error

# Report Sinks and Styles

Visit writes to stdout by default; redirect it or reframe it per call:

	var buf bytes.Buffer
	err := root.Visit(
	    metrictree.WithWriter(&buf),
	    metrictree.WithStyle(style.Classic),
	)

A sink write failure abandons the traversal at the point of fault and
is returned from Visit; the footer is still written so a partial
report stays framed.

# Observability

Logging, metrics, and tracing are opt-in at root construction:

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	root := metrictree.NewRoot(
	    metrictree.WithLogger(logger),
	    metrictree.WithMetrics(true),
	    metrictree.WithTracing(true),
	)

Logs carry root_id, node_id, and duration_ms fields. OpenTelemetry
metrics: metrictree.report.runs, metrictree.report.latency_ms,
metrictree.commit.count, and friends. Tracing opens a
metrictree.report span per traversal.

# Thread Safety

  - Commit and Visit on AtomicStorage nodes are safe from any number
    of goroutines sharing one Root.
  - Commit and Visit on plain Storage nodes require external
    serialization.
  - Append, Release, and traversal may interleave freely; a node
    released mid-use is skipped at its next visit.

# Subpackages

  - config: file-backed report configuration (YAML/JSON)
  - event: in-process pub/sub for commit and report notifications
  - observability: logging, metrics, and tracing helpers
  - snapshot: report archives (memory, SQLite)
  - style: named report framing styles
*/
package metrictree
