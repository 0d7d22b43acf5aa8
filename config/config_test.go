package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/moviekit/dataset"
	"github.com/rushteam/moviekit/recall"
	"github.com/rushteam/moviekit/store"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.SVD.Factors != 100 || cfg.SVD.Seed != 42 {
		t.Errorf("SVD defaults = %+v", cfg.SVD)
	}
	if cfg.TopN != 10 {
		t.Errorf("TopN = %d, want 10", cfg.TopN)
	}
	if cfg.Eval.SplitRatio != 0.2 || cfg.Eval.Threshold != 3.5 {
		t.Errorf("Eval defaults = %+v", cfg.Eval)
	}
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
data:
  path: /data/ratings.csv
server:
  addr: ":9090"
svd:
  factors: 50
top_n: 5
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MOVIEKIT_SERVER_ADDR", ":7070")
	t.Setenv("MOVIEKIT_TOP_N", "3")
	t.Setenv("MOVIEKIT_PIPELINE_PATH", "/etc/moviekit/pipeline.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Data.Path != "/data/ratings.csv" {
		t.Errorf("Data.Path = %q", cfg.Data.Path)
	}
	if cfg.SVD.Factors != 50 {
		t.Errorf("SVD.Factors = %d, want 50", cfg.SVD.Factors)
	}
	// Environment wins over the file.
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":7070")
	}
	if cfg.TopN != 3 {
		t.Errorf("TopN = %d, want 3", cfg.TopN)
	}
	if cfg.Pipeline.Path != "/etc/moviekit/pipeline.yaml" {
		t.Errorf("Pipeline.Path = %q", cfg.Pipeline.Path)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestDefaultFactory(t *testing.T) {
	table, err := dataset.New(
		[]dataset.Interaction{{UserID: 1, MovieID: 10, Rating: 4}},
		[]dataset.Movie{{ID: 10, Title: "Toy Story"}},
	)
	if err != nil {
		t.Fatal(err)
	}
	st := store.NewMemoryStore()
	defer st.Close()

	deps := Deps{Table: table, Store: st, Models: map[string]recall.Ranker{}}
	factory := DefaultFactory(deps)

	tests := []struct {
		nodeType string
		config   map[string]any
	}{
		{"recall.hot", map[string]any{"top_n": 5}},
		{"filter", map[string]any{"rule": `item.score >= 3.5`}},
		{"rerank.topn", map[string]any{"n": 10}},
		{"rerank.diversity", nil},
	}
	for _, tt := range tests {
		node, err := factory.Build(tt.nodeType, tt.config)
		if err != nil {
			t.Errorf("Build(%q) error = %v", tt.nodeType, err)
			continue
		}
		if node == nil {
			t.Errorf("Build(%q) returned nil node", tt.nodeType)
		}
	}

	if _, err := factory.Build("unknown.node", nil); err == nil {
		t.Error("Build(unknown) error = nil, want error")
	}

	// A model source requires the model to be registered in Deps.
	if _, err := factory.Build("recall.model", map[string]any{"model": "missing"}); err == nil {
		t.Error("Build(recall.model) with unknown model: error = nil, want error")
	}
}
