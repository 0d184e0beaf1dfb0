package population

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/Akodiat/treeCultivator/genome"
	"github.com/Akodiat/treeCultivator/params"
	"github.com/Akodiat/treeCultivator/scene"
)

type testMesh struct {
	id int
}

func (m *testMesh) SetRotationY(float64) {}

type testHost struct {
	attached []scene.Mesh
	detached []scene.Mesh
	current  scene.Mesh
}

func (h *testHost) Attach(m scene.Mesh) {
	h.attached = append(h.attached, m)
	h.current = m
}

func (h *testHost) Detach(m scene.Mesh) {
	h.detached = append(h.detached, m)
	if h.current == m {
		h.current = nil
	}
}

func (h *testHost) Rect() scene.Rect { return scene.Rect{} }

func countingBuilder() (scene.MeshBuilder, *int) {
	n := 0
	return scene.MeshBuilderFunc(func(params.Set) (scene.Mesh, error) {
		n++
		return &testMesh{id: n}, nil
	}), &n
}

func makeHosts(n int) ([]scene.Host, []*testHost) {
	hosts := make([]scene.Host, n)
	raw := make([]*testHost, n)
	for i := range hosts {
		raw[i] = &testHost{}
		hosts[i] = raw[i]
	}
	return hosts, raw
}

func makeGenomes(t *testing.T, n int, seed uint64) []*genome.Genome {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 0))
	out := make([]*genome.Genome, n)
	for i := range out {
		g, err := genome.New(genome.Template{}, rng)
		if err != nil {
			t.Fatalf("genome.New: %v", err)
		}
		out[i] = g
	}
	return out
}

func TestNewRequiresHosts(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrMissingHost) {
		t.Errorf("expected ErrMissingHost for no hosts, got %v", err)
	}

	hosts, _ := makeHosts(3)
	hosts[1] = nil
	if _, err := New(hosts); !errors.Is(err, ErrMissingHost) {
		t.Errorf("expected ErrMissingHost for nil host, got %v", err)
	}
}

func TestReplaceAllAttachesAndDetaches(t *testing.T) {
	hosts, raw := makeHosts(4)
	pop, err := New(hosts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if pop.Seeded() {
		t.Error("fresh population should not be seeded")
	}

	builder, built := countingBuilder()
	if err := pop.ReplaceAll(makeGenomes(t, 4, 1), builder); err != nil {
		t.Fatalf("first ReplaceAll: %v", err)
	}
	if !pop.Seeded() {
		t.Error("population should be seeded")
	}
	first := make([]scene.Mesh, 4)
	pop.Each(func(i int, s Slot) { first[i] = s.Mesh })

	if err := pop.ReplaceAll(makeGenomes(t, 4, 2), builder); err != nil {
		t.Fatalf("second ReplaceAll: %v", err)
	}
	if *built != 8 {
		t.Errorf("built %d meshes, want 8", *built)
	}

	for i, h := range raw {
		if len(h.attached) != 2 {
			t.Errorf("host %d: %d attaches, want 2", i, len(h.attached))
		}
		if len(h.detached) != 1 || h.detached[0] != first[i] {
			t.Errorf("host %d: old mesh not detached", i)
		}
		if h.current != pop.Slot(i).Mesh {
			t.Errorf("host %d: current mesh does not match slot", i)
		}
		if pop.Slot(i).Host != hosts[i] {
			t.Errorf("slot %d: host changed", i)
		}
	}
}

func TestReplaceAllSizeMismatch(t *testing.T) {
	hosts, _ := makeHosts(3)
	pop, _ := New(hosts)
	builder, _ := countingBuilder()

	err := pop.ReplaceAll(makeGenomes(t, 2, 1), builder)
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestReplaceAllIsAtomicOnBuilderFailure(t *testing.T) {
	hosts, raw := makeHosts(3)
	pop, _ := New(hosts)
	builder, _ := countingBuilder()
	before := makeGenomes(t, 3, 1)
	if err := pop.ReplaceAll(before, builder); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	boom := errors.New("boom")
	calls := 0
	flaky := scene.MeshBuilderFunc(func(params.Set) (scene.Mesh, error) {
		calls++
		if calls == 3 {
			return nil, boom
		}
		return &testMesh{}, nil
	})

	if err := pop.ReplaceAll(makeGenomes(t, 3, 2), flaky); !errors.Is(err, boom) {
		t.Fatalf("expected builder error, got %v", err)
	}
	for i := range before {
		if pop.Genome(i) != before[i] {
			t.Errorf("slot %d genome replaced despite failure", i)
		}
		if len(raw[i].detached) != 0 {
			t.Errorf("host %d touched despite failure", i)
		}
	}
}

func TestGenomesReturnsCopies(t *testing.T) {
	hosts, _ := makeHosts(2)
	pop, _ := New(hosts)
	builder, _ := countingBuilder()
	_ = pop.ReplaceAll(makeGenomes(t, 2, 3), builder)

	copies := pop.Genomes()
	copies[0].MutateWith(rand.New(rand.NewPCG(9, 9)), genome.Gaussian{StdDev: 1})
	if copies[0].Equal(pop.Genome(0)) {
		t.Error("mutating a copy affected the population")
	}
}
