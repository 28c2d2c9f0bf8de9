package ecs_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duskforge/ecs/ecs"
)

func TestTimePluginSeedsAndAdvancesTimeResource(t *testing.T) {
	app := ecs.NewApp()
	assert.NoError(t, app.Plugins.Add(ecs.TimePlugin{}))
	assert.NoError(t, app.Plugins.Build(app))

	assert.NoError(t, app.Update(0.5))
	tm, ok := ecs.GetResource[ecs.Time](app.Resources)
	assert.True(t, ok)
	assert.Equal(t, 0.5, tm.DeltaSeconds)
	assert.Equal(t, uint64(1), tm.FrameNumber)

	assert.NoError(t, app.Update(0.25))
	tm, ok = ecs.GetResource[ecs.Time](app.Resources)
	assert.True(t, ok)
	assert.Equal(t, 0.25, tm.DeltaSeconds)
	assert.Equal(t, uint64(2), tm.FrameNumber)
}

func TestStageStringNames(t *testing.T) {
	assert.Equal(t, "pre_update", ecs.StagePreUpdate.String())
	assert.Equal(t, "update", ecs.StageUpdate.String())
	assert.Equal(t, "post_update", ecs.StagePostUpdate.String())
	assert.Equal(t, "render", ecs.StageRender.String())
	assert.Equal(t, "cleanup", ecs.StageCleanup.String())
}

func ExampleApp_Update() {
	app := ecs.NewApp()
	app.Plugins.Add(ecs.TimePlugin{})
	app.Plugins.Build(app)

	app.Update(0.016)
	tm, _ := ecs.GetResource[ecs.Time](app.Resources)
	fmt.Println(tm.FrameNumber)
	// Output: 1
}
