package vessel

// defaultContainer backs the package-level Default/SetDefault pair, the
// same pattern log/slog uses for its default logger. It starts out as a
// usable empty container rather than nil, so package-level Register/Get
// never panic on an unconfigured program.
var defaultContainer = New()

// SetDefault sets the container used by package-level Register/Get calls.
func SetDefault(c *Container) {
	defaultContainer = c
}

// Default returns the container set by SetDefault. It is never nil: a
// fresh, empty container backs it until SetDefault is called.
func Default() *Container {
	return defaultContainer
}

// Register registers name against the default container.
func Register(name string, value any, opts ...RegisterOption) error {
	return Default().Register(name, value, opts...)
}

// Get resolves name against the default container.
func Get(name string, extras ...any) (any, error) {
	return Default().Get(name, extras...)
}
