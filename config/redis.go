package config

import "strings"

// RedisConfig contains the connection settings for the session store.
// Exactly one topology is used: cluster, sentinel, or a direct connection.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// Sanitize trims node lists and disables topologies that have no nodes.
func (r *RedisConfig) Sanitize() {
	r.URI = strings.TrimSpace(r.URI)
	r.SentinelNodes = compactNodes(r.SentinelNodes)
	r.ClusterNodes = compactNodes(r.ClusterNodes)
	if r.DB < 0 {
		r.DB = 0
	}
	if r.UseCluster && len(r.ClusterNodes) == 0 {
		r.UseCluster = false
	}
	if r.UseSentinel && len(r.SentinelNodes) == 0 {
		r.UseSentinel = false
	}
}

// Mode names the selected topology for logging.
func (r *RedisConfig) Mode() string {
	switch {
	case r.UseCluster:
		return "cluster"
	case r.UseSentinel:
		return "sentinel"
	default:
		return "direct"
	}
}

func compactNodes(nodes []string) []string {
	out := nodes[:0]
	for _, n := range nodes {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
