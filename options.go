package vessel

// Options configures a Container at construction time.
type Options struct {
	// OnDispose is called once for every tracked instance a container
	// disposes, in post-order. A nil OnDispose makes Dispose a pure
	// tree walk with no side effects.
	OnDispose func(instance any, serviceName string) error
}

// Option configures a Container. Use with New.
type Option func(*Options)

// WithOnDispose sets the hook called for every instance a container
// disposes.
func WithOnDispose(fn func(instance any, serviceName string) error) Option {
	return func(o *Options) {
		o.OnDispose = fn
	}
}

// registerOptions accumulates the RegisterOption values passed to
// Register.
type registerOptions struct {
	lifecycle Lifecycle
	dependsOn []string
}

// RegisterOption configures one Register call.
type RegisterOption func(*registerOptions)

// WithLifecycle sets the registration's lifecycle. The default, if this
// option is omitted, is PerRequest.
func WithLifecycle(l Lifecycle) RegisterOption {
	return func(o *registerOptions) {
		o.lifecycle = l
	}
}

// DependsOn declares the registration's ordered dependency list. Each
// name may carry the "?" (optional), "!" or trailing "Factory" suffix
// (factory) in any combination, e.g. DependsOn("logger", "config?",
// "widget!"). Replaces the teacher's side-channel struct-tag style
// dependency declaration with an explicit registration-time option.
func DependsOn(names ...string) RegisterOption {
	return func(o *registerOptions) {
		o.dependsOn = append(o.dependsOn, names...)
	}
}
