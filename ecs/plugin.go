package ecs

// Plugin is an ordered registrar that contributes components, resources
// and systems to an App at build time (spec §4.8).
type Plugin interface {
	Name() string
	Build(app *App)
}

// PluginDependent plugins declare other plugins (by name) that must already
// have been added before they can be added themselves.
type PluginDependent interface {
	Dependencies() []string
}

// PluginEnabler plugins run OnEnable once, right after Build, when the
// plugin manager builds.
type PluginEnabler interface {
	OnEnable(app *App)
}

// PluginDisabler plugins run OnDisable when removed.
type PluginDisabler interface {
	OnDisable(app *App)
}

// PluginManager holds the ordered registration of plugins and enforces
// their declared dependencies. Plugin dependencies are resolved by strict
// add-time ordering (a dependency must already be registered), not a
// topological sort like the scheduler's system dependencies — plugins are
// wired once at startup, not re-resolved every stage.
type PluginManager struct {
	app    *App
	order  []Plugin
	byName map[string]Plugin
	built  bool
}

// NewPluginManager creates an empty plugin manager bound to app.
func NewPluginManager(app *App) *PluginManager {
	return &PluginManager{app: app, byName: make(map[string]Plugin)}
}

// Add registers plugin at the end of the build order. Fails if a plugin
// with the same name is already registered, if any of plugin's declared
// dependencies hasn't been added yet, or if the manager already built.
func (m *PluginManager) Add(plugin Plugin) error {
	if m.built {
		return ErrMutateAfterBuild
	}
	name := plugin.Name()
	if _, exists := m.byName[name]; exists {
		return ErrDuplicatePlugin
	}
	if pd, ok := plugin.(PluginDependent); ok {
		for _, dep := range pd.Dependencies() {
			if _, ok := m.byName[dep]; !ok {
				return ErrPluginDependency
			}
		}
	}

	m.byName[name] = plugin
	m.order = append(m.order, plugin)
	return nil
}

// AddBefore registers plugin immediately before the existing plugin named
// existingName in the build order.
func (m *PluginManager) AddBefore(plugin Plugin, existingName string) error {
	return m.addAt(plugin, existingName, 0)
}

// AddAfter registers plugin immediately after the existing plugin named
// existingName in the build order.
func (m *PluginManager) AddAfter(plugin Plugin, existingName string) error {
	return m.addAt(plugin, existingName, 1)
}

func (m *PluginManager) addAt(plugin Plugin, existingName string, offset int) error {
	if m.built {
		return ErrMutateAfterBuild
	}
	name := plugin.Name()
	if _, exists := m.byName[name]; exists {
		return ErrDuplicatePlugin
	}
	if pd, ok := plugin.(PluginDependent); ok {
		for _, dep := range pd.Dependencies() {
			if _, ok := m.byName[dep]; !ok {
				return ErrPluginDependency
			}
		}
	}

	idx := -1
	for i, p := range m.order {
		if p.Name() == existingName {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrPluginNotFound
	}

	pos := idx + offset
	m.order = append(m.order[:pos], append([]Plugin{plugin}, m.order[pos:]...)...)
	m.byName[name] = plugin
	return nil
}

// Build runs Build (then OnEnable, if present) for every plugin in order.
// Fails if already built.
func (m *PluginManager) Build(app *App) error {
	if m.built {
		return ErrAlreadyBuilt
	}
	for _, p := range m.order {
		p.Build(app)
		if e, ok := p.(PluginEnabler); ok {
			e.OnEnable(app)
		}
	}
	m.built = true
	return nil
}

// Has reports whether a plugin with the given name is registered.
func (m *PluginManager) Has(name string) bool {
	_, ok := m.byName[name]
	return ok
}

// Get returns the registered plugin by name.
func (m *PluginManager) Get(name string) (Plugin, bool) {
	p, ok := m.byName[name]
	return p, ok
}

// List returns every registered plugin's name, in build order.
func (m *PluginManager) List() []string {
	names := make([]string, len(m.order))
	for i, p := range m.order {
		names[i] = p.Name()
	}
	return names
}

// Remove unregisters the named plugin. Only valid before Build; fails
// after.
func (m *PluginManager) Remove(name string) error {
	if m.built {
		return ErrMutateAfterBuild
	}
	p, ok := m.byName[name]
	if !ok {
		return ErrPluginNotFound
	}
	if d, ok := p.(PluginDisabler); ok {
		d.OnDisable(m.app)
	}
	delete(m.byName, name)
	for i, op := range m.order {
		if op.Name() == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
