package pursuit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"PurePursuit/internal/model"
)

func wp(x, y float64) model.Waypoint {
	return model.Waypoint{Position: model.Point{X: x, Y: y}}
}

func TestSelectNextWaypoint_EmptyPath(t *testing.T) {
	assert.Equal(t, -1, SelectNextWaypoint(nil, model.Pose{}, 5))
	assert.Equal(t, -1, SelectNextWaypoint(model.Path{}, model.Pose{}, 5))
}

func TestSelectNextWaypoint_FirstBeyondRadius(t *testing.T) {
	path := model.Path{wp(0, 0), wp(5, 0), wp(10, 0), wp(15, 0)}
	pose := model.Pose{}

	assert.Equal(t, 1, SelectNextWaypoint(path, pose, 3))
	assert.Equal(t, 2, SelectNextWaypoint(path, pose, 7))
}

func TestSelectNextWaypoint_FallbackToLast(t *testing.T) {
	// whole path inside the lookahead circle: the terminal waypoint is the
	// target, never -1
	path := model.Path{wp(0, 0), wp(1, 0), wp(2, 0)}
	pose := model.Pose{}

	assert.Equal(t, 2, SelectNextWaypoint(path, pose, 100))

	single := model.Path{wp(0.5, 0.5)}
	assert.Equal(t, 0, SelectNextWaypoint(single, pose, 100))
}

func TestSelectNextWaypoint_BoundaryNotBeyond(t *testing.T) {
	// a waypoint exactly at the lookahead distance is not "beyond" it
	path := model.Path{wp(7, 0), wp(20, 0)}
	assert.Equal(t, 1, SelectNextWaypoint(path, model.Pose{}, 7))
}
