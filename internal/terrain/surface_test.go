package terrain

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/void-scape/voxl/internal/config"
)

func defaultExtractor() Extractor {
	return Extractor{
		Primitive:      Gradient,
		ChunkSize:      DefaultChunkSize,
		TerrainScale:   DefaultTerrainScale,
		BaselineOffset: DefaultBaselineOffset,
	}
}

func TestExtractEmitsOneVoxelPerColumn(t *testing.T) {
	e := defaultExtractor()
	layers := []Layer{{Scale: 1, Weight: 80}, {Scale: 2, Weight: 40}}

	for _, coord := range [][2]int64{{0, 0}, {3, -2}, {-1, -1}} {
		positions, uvs := e.Extract(coord[0], coord[1], layers, nil, nil)
		if len(positions) != e.Columns() || len(uvs) != e.Columns() {
			t.Fatalf("chunk %v: got %d positions and %d uvs, want %d", coord, len(positions), len(uvs), e.Columns())
		}

		for lz := 0; lz < e.ChunkSize; lz++ {
			for lx := 0; lx < e.ChunkSize; lx++ {
				p := positions[lz*e.ChunkSize+lx]
				wantX := float32(coord[0]*DefaultChunkSize) + float32(lx)
				wantZ := float32(coord[1]*DefaultChunkSize) + float32(lz)
				if p[0] != wantX || p[2] != wantZ {
					t.Fatalf("chunk %v column (%d, %d) at %v, want x=%f z=%f", coord, lx, lz, p, wantX, wantZ)
				}
				uv := mgl32.Vec2{wantX / DefaultTerrainScale, wantZ / DefaultTerrainScale}
				if want := SurfaceHeight(Sample(uv, layers), DefaultBaselineOffset); p[1] != want {
					t.Fatalf("chunk %v column (%d, %d) height %f, want %f", coord, lx, lz, p[1], want)
				}
			}
		}
		for i, uv := range uvs {
			if uv != DefaultFaceUVs {
				t.Fatalf("voxel %d has face uvs %v, want default", i, uv)
			}
		}
	}
}

func TestExtractZeroWeightSitsOnBaseline(t *testing.T) {
	e := defaultExtractor()
	positions, _ := e.Extract(0, 0, []Layer{{Scale: 1, Weight: 0}}, nil, nil)
	for i, p := range positions {
		if p[1] != -DefaultBaselineOffset {
			t.Fatalf("voxel %d height %f, want %d", i, p[1], -DefaultBaselineOffset)
		}
	}
}

func TestExtractReusesStorage(t *testing.T) {
	e := defaultExtractor()
	positions := make([]mgl32.Vec3, 0, e.Columns())
	uvs := make([]FaceUVs, 0, e.Columns())

	first, firstUVs := e.Extract(0, 0, nil, positions, uvs)
	second, secondUVs := e.Extract(5, 5, nil, first, firstUVs)
	if &first[0] != &second[0] || &firstUVs[0] != &secondUVs[0] {
		t.Fatal("expected Extract to overwrite the provided storage")
	}
	if second[0][0] != 5*DefaultChunkSize {
		t.Fatalf("expected storage to hold chunk (5, 5), first voxel at %v", second[0])
	}
}

func TestNewExtractorFromConfig(t *testing.T) {
	cfg := config.Default().Terrain
	e, err := NewExtractor(cfg)
	if err != nil {
		t.Fatalf("NewExtractor: %v", err)
	}
	if e.ChunkSize != cfg.ChunkSize || e.TerrainScale != cfg.TerrainScale || e.BaselineOffset != cfg.BaselineOffset {
		t.Fatalf("extractor %+v does not match config %+v", e, cfg)
	}

	cfg.Primitive = "worley"
	if _, err := NewExtractor(cfg); err == nil {
		t.Fatal("expected unsupported primitive to fail")
	}
}
