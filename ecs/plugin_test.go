package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duskforge/ecs/ecs"
)

type recordingPlugin struct {
	name    string
	deps    []string
	built   *[]string
	enabled *[]string
}

func (p *recordingPlugin) Name() string { return p.name }
func (p *recordingPlugin) Dependencies() []string { return p.deps }
func (p *recordingPlugin) Build(app *ecs.App) { *p.built = append(*p.built, p.name) }
func (p *recordingPlugin) OnEnable(app *ecs.App) { *p.enabled = append(*p.enabled, p.name) }

func newRecordingPlugin(name string, built, enabled *[]string, deps ...string) *recordingPlugin {
	return &recordingPlugin{name: name, built: built, enabled: enabled, deps: deps}
}

func TestPluginManagerBuildsInAddedOrder(t *testing.T) {
	app := ecs.NewApp()
	var built, enabled []string

	assert.NoError(t, app.Plugins.Add(newRecordingPlugin("a", &built, &enabled)))
	assert.NoError(t, app.Plugins.Add(newRecordingPlugin("b", &built, &enabled)))

	assert.NoError(t, app.Plugins.Build(app))
	assert.Equal(t, []string{"a", "b"}, built)
	assert.Equal(t, []string{"a", "b"}, enabled)
}

func TestPluginManagerRejectsMissingDependency(t *testing.T) {
	app := ecs.NewApp()
	var built, enabled []string

	err := app.Plugins.Add(newRecordingPlugin("needs-a", &built, &enabled, "a"))
	assert.ErrorIs(t, err, ecs.ErrPluginDependency)
}

func TestPluginManagerAllowsDependencyAddedFirst(t *testing.T) {
	app := ecs.NewApp()
	var built, enabled []string

	assert.NoError(t, app.Plugins.Add(newRecordingPlugin("a", &built, &enabled)))
	assert.NoError(t, app.Plugins.Add(newRecordingPlugin("needs-a", &built, &enabled, "a")))
}

func TestPluginManagerAddBeforeAndAfter(t *testing.T) {
	app := ecs.NewApp()
	var built, enabled []string

	assert.NoError(t, app.Plugins.Add(newRecordingPlugin("base", &built, &enabled)))
	assert.NoError(t, app.Plugins.AddBefore(newRecordingPlugin("earlier", &built, &enabled), "base"))
	assert.NoError(t, app.Plugins.AddAfter(newRecordingPlugin("later", &built, &enabled), "base"))

	assert.Equal(t, []string{"earlier", "base", "later"}, app.Plugins.List())
}

func TestPluginManagerRejectsDuplicateName(t *testing.T) {
	app := ecs.NewApp()
	var built, enabled []string

	assert.NoError(t, app.Plugins.Add(newRecordingPlugin("dup", &built, &enabled)))
	err := app.Plugins.Add(newRecordingPlugin("dup", &built, &enabled))
	assert.ErrorIs(t, err, ecs.ErrDuplicatePlugin)
}

func TestPluginManagerRejectsMutationAfterBuild(t *testing.T) {
	app := ecs.NewApp()
	var built, enabled []string

	assert.NoError(t, app.Plugins.Build(app))
	err := app.Plugins.Add(newRecordingPlugin("late", &built, &enabled))
	assert.ErrorIs(t, err, ecs.ErrMutateAfterBuild)
}

func TestPluginManagerRejectsDoubleBuild(t *testing.T) {
	app := ecs.NewApp()
	assert.NoError(t, app.Plugins.Build(app))
	err := app.Plugins.Build(app)
	assert.ErrorIs(t, err, ecs.ErrAlreadyBuilt)
}

func TestPluginManagerRemoveBeforeBuild(t *testing.T) {
	app := ecs.NewApp()
	var built, enabled []string

	assert.NoError(t, app.Plugins.Add(newRecordingPlugin("a", &built, &enabled)))
	assert.NoError(t, app.Plugins.Remove("a"))
	assert.False(t, app.Plugins.Has("a"))
}
