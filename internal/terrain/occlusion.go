package terrain

import "github.com/go-gl/mathgl/mgl32"

type cell struct {
	x, y, z int64
}

func cellOf(p mgl32.Vec3) cell {
	return cell{x: int64(p[0]), y: int64(p[1]), z: int64(p[2])}
}

// Cull removes voxels whose whole 3x3x3 neighbourhood is occupied. Only the
// voxels passed in are consulted, so voxels on a chunk edge never see the
// neighbouring chunk and always survive. Removal swaps with the tail: the
// order of the survivors is not preserved. positions and uvs stay aligned.
func Cull(positions []mgl32.Vec3, uvs []FaceUVs) ([]mgl32.Vec3, []FaceUVs) {
	occupied := make(map[cell]struct{}, len(positions))
	for _, p := range positions {
		occupied[cellOf(p)] = struct{}{}
	}

	var hidden []int
	for i, p := range positions {
		if !exposed(occupied, cellOf(p)) {
			hidden = append(hidden, i)
		}
	}

	for k := len(hidden) - 1; k >= 0; k-- {
		i := hidden[k]
		last := len(positions) - 1
		positions[i] = positions[last]
		positions = positions[:last]
		uvs[i] = uvs[last]
		uvs = uvs[:last]
	}
	return positions, uvs
}

// exposed probes the neighbourhood z, y, x ascending. The first free cell is
// claimed in occupied and proves the voxel visible.
func exposed(occupied map[cell]struct{}, c cell) bool {
	for dz := int64(-1); dz <= 1; dz++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dx := int64(-1); dx <= 1; dx++ {
				n := cell{x: c.x + dx, y: c.y + dy, z: c.z + dz}
				if _, ok := occupied[n]; !ok {
					occupied[n] = struct{}{}
					return true
				}
			}
		}
	}
	return false
}
