package scoring

// Graph is the dependency graph of one batch. Edges run from a prerequisite
// to the tasks that depend on it, so reachability from a node answers "how
// many tasks does finishing this one unblock".
//
// Dependency ids that are not tasks in the batch are tracked as phantom
// nodes. They take part in cycle bookkeeping but are never scored.
type Graph struct {
	// order lists every tracked node in first-seen order: tasks in input
	// order, then unseen dependency ids as they are declared.
	order []string
	tasks map[string]bool
	// phantoms are dependency ids with no matching task.
	phantoms map[string]bool
	// dependents maps a node to the nodes that declared it as a dependency.
	// Repeated declarations produce repeated edges.
	dependents map[string][]string
	inDegree   map[string]int
}

// NewGraph builds the dependency graph for a normalized batch.
func NewGraph(records []TaskRecord) *Graph {
	g := &Graph{
		tasks:      make(map[string]bool, len(records)),
		phantoms:   make(map[string]bool),
		dependents: make(map[string][]string),
		inDegree:   make(map[string]int, len(records)),
	}
	for _, rec := range records {
		g.tasks[rec.ID] = true
		g.track(rec.ID)
	}
	for _, rec := range records {
		for _, dep := range rec.Dependencies {
			if !g.tasks[dep] && !g.phantoms[dep] {
				g.phantoms[dep] = true
				g.track(dep)
			}
			g.dependents[dep] = append(g.dependents[dep], rec.ID)
			g.inDegree[rec.ID]++
		}
	}
	return g
}

func (g *Graph) track(id string) {
	if _, ok := g.inDegree[id]; ok {
		return
	}
	g.inDegree[id] = 0
	g.order = append(g.order, id)
}

// Len returns the number of tracked nodes, phantoms included.
func (g *Graph) Len() int {
	return len(g.order)
}

// Phantoms returns the dependency ids that match no task, in first-seen order.
func (g *Graph) Phantoms() []string {
	var out []string
	for _, id := range g.order {
		if g.phantoms[id] {
			out = append(out, id)
		}
	}
	return out
}

// DetectCycles runs Kahn's algorithm over every tracked node. When not all
// nodes can be processed, each node whose in-degree stays above zero is
// reported: members of a cycle and everything downstream of one.
func (g *Graph) DetectCycles() (bool, map[string]bool) {
	inDegree := make(map[string]int, len(g.inDegree))
	for id, deg := range g.inDegree {
		inDegree[id] = deg
	}

	var queue []string
	for _, id := range g.order {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++

		for _, dependent := range g.dependents[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	cycleNodes := make(map[string]bool)
	if visited == len(g.order) {
		return false, cycleNodes
	}
	for _, id := range g.order {
		if inDegree[id] > 0 {
			cycleNodes[id] = true
		}
	}
	return true, cycleNodes
}

// DependencyFactor returns, for every task, the number of distinct nodes
// reachable downstream of it divided by the largest such count in the batch.
// A batch without dependencies maps every task to 0.
func (g *Graph) DependencyFactor() map[string]float64 {
	counts := make(map[string]int, len(g.tasks))
	maxCount := 0
	for _, id := range g.order {
		if !g.tasks[id] {
			continue
		}
		n := g.reachable(id)
		counts[id] = n
		if n > maxCount {
			maxCount = n
		}
	}

	factors := make(map[string]float64, len(counts))
	for id, n := range counts {
		if maxCount <= 0 {
			factors[id] = 0.0
			continue
		}
		factors[id] = float64(n) / float64(maxCount)
	}
	return factors
}

// reachable counts the nodes reachable from start. The start node itself is
// only counted when a cycle leads back to it. The visited set bounds the
// walk on cyclic graphs.
func (g *Graph) reachable(start string) int {
	visited := make(map[string]bool)
	stack := []string{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range g.dependents[cur] {
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
	return len(visited)
}
