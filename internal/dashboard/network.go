package dashboard

import (
	"fmt"
	"math"
)

const (
	MinNodes = 5
	MaxNodes = 200
)

type Node struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Platform  string  `json:"platform"`
	Kind      string  `json:"kind"`
	Cluster   int     `json:"cluster"`
	RiskScore int     `json:"riskScore"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Kind   string `json:"kind"`
	Weight int    `json:"weight"`
}

type Cluster struct {
	ID      int     `json:"id"`
	Label   string  `json:"label"`
	Size    int     `json:"size"`
	AvgRisk float64 `json:"avgRisk"`
}

type NetworkGraph struct {
	Nodes    []Node    `json:"nodes"`
	Edges    []Edge    `json:"edges"`
	Clusters []Cluster `json:"clusters"`
}

var edgeKinds = []string{"follows", "reposts", "mentions", "replies"}
var clusterLabels = []string{"Giveaway ring", "Follower farm", "Impersonators", "Amplifiers", "Organic"}

// NetworkMap lays out n accounts in a few circular clusters around a target account.
// Node 0 is always the monitored target; every other node links to at least one node.
func (g *Generator) NetworkMap(n int) NetworkGraph {
	n = clampInt(n, MinNodes, MaxNodes)
	clusterCount := clampInt(n/8, 2, len(clusterLabels))

	graph := NetworkGraph{}
	graph.Nodes = append(graph.Nodes, Node{ID: "n0", Username: g.username(), Platform: string(g.platform()), Kind: "target", Cluster: -1, X: 0, Y: 0})

	riskSums := make([]int, clusterCount)
	sizes := make([]int, clusterCount)
	for i := 1; i < n; i++ {
		c := g.rng.Intn(clusterCount)
		organic := clusterLabels[c] == "Organic"

		kind := "bot"
		risk := g.between(55, 99)
		switch {
		case organic:
			kind, risk = "genuine", g.between(1, 30)
		case g.rng.Intn(3) == 0:
			kind, risk = "suspicious", g.between(35, 75)
		}

		angle := 2 * math.Pi * float64(c) / float64(clusterCount)
		cx, cy := 300*math.Cos(angle), 300*math.Sin(angle)
		jitter := 2 * math.Pi * g.rng.Float64()
		r := 40 + 80*g.rng.Float64()

		graph.Nodes = append(graph.Nodes, Node{
			ID:        fmt.Sprintf("n%d", i),
			Username:  g.username(),
			Platform:  string(g.platform()),
			Kind:      kind,
			Cluster:   c,
			RiskScore: risk,
			X:         math.Round((cx+r*math.Cos(jitter))*10) / 10,
			Y:         math.Round((cy+r*math.Sin(jitter))*10) / 10,
		})
		riskSums[c] += risk
		sizes[c]++
	}

	for i := 1; i < n; i++ {
		graph.Edges = append(graph.Edges, Edge{
			Source: fmt.Sprintf("n%d", i),
			Target: "n0",
			Kind:   edgeKinds[g.rng.Intn(len(edgeKinds))],
			Weight: g.between(1, 10),
		})
		// extra intra-cluster links make the clusters visible
		for j := 1; j < n; j++ {
			if j == i || graph.Nodes[j].Cluster != graph.Nodes[i].Cluster || g.rng.Intn(6) != 0 {
				continue
			}
			graph.Edges = append(graph.Edges, Edge{
				Source: fmt.Sprintf("n%d", i),
				Target: fmt.Sprintf("n%d", j),
				Kind:   edgeKinds[g.rng.Intn(len(edgeKinds))],
				Weight: g.between(1, 5),
			})
		}
	}

	for c := 0; c < clusterCount; c++ {
		avg := 0.0
		if sizes[c] > 0 {
			avg = math.Round(float64(riskSums[c])/float64(sizes[c])*10) / 10
		}
		graph.Clusters = append(graph.Clusters, Cluster{ID: c, Label: clusterLabels[c], Size: sizes[c], AvgRisk: avg})
	}
	return graph
}
